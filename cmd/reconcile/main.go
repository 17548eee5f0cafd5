// Command reconcile runs one allocation pass over the open donations and
// projects and prints a summary. Operators use it after manual data repairs.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"charityfund/internal/bootstrap"
	"charityfund/internal/infra"
)

func main() {
	timeout := flag.Duration("timeout", time.Minute, "give up after this long")
	verbose := flag.Bool("v", false, "print every transfer")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := infra.NewLogger("cli", cfg.LogLevel).With().Str("cmd", "reconcile").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	svc, err := bootstrap.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialise services")
	}
	defer svc.Close()

	result, err := svc.Allocator.Run(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("reconciliation failed")
		svc.Close()
		os.Exit(1)
	}

	if *verbose {
		for _, t := range result.Transfers {
			fmt.Printf("donation %d -> project %d: %d\n", t.DonationID, t.ProjectID, t.Amount)
		}
	}
	fmt.Printf("transfers=%d amount=%d donations_touched=%d projects_touched=%d\n",
		len(result.Transfers), result.Total(), len(result.Donations), len(result.Projects))
}
