// Command token issues bearer tokens signed with JWT_SECRET, for donors and
// additional superusers that the login endpoint does not cover.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"charityfund/internal/middleware"
)

func main() {
	_ = godotenv.Load()
	if err := run(os.Args[1:], os.Stdout, os.Getenv); err != nil {
		fmt.Fprintln(os.Stderr, "token:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer, getenv func(string) string) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	var (
		subFlag       string
		superuserFlag bool
		ttlFlag       time.Duration
	)
	fs.StringVar(&subFlag, "sub", "", "subject (user id) the token is issued to")
	fs.BoolVar(&superuserFlag, "superuser", false, "grant superuser rights")
	fs.DurationVar(&ttlFlag, "ttl", 24*time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sub := strings.TrimSpace(subFlag)
	if sub == "" {
		return errors.New("-sub is required")
	}
	if ttlFlag <= 0 {
		return errors.New("-ttl must be positive")
	}
	secret := getenv("JWT_SECRET")
	if secret == "" {
		return errors.New("JWT_SECRET is required")
	}

	token, err := middleware.SignJWT(secret, middleware.NewTokenClaims(sub, superuserFlag, ttlFlag))
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}
	_, err = fmt.Fprintln(stdout, token)
	return err
}
