package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"charityfund/internal/bootstrap"
	"charityfund/internal/http/handlers"
	httpapi "charityfund/internal/http/httpapi"
	"charityfund/internal/infra"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := bootstrap.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialise services")
	}
	defer svc.Close()

	app := handlers.NewApp(svc.Store, svc.Allocator, logger, cfg.AppTitle)
	app.Auth = handlers.AuthConfig{
		JWTSecret:         cfg.JWTSecret,
		TokenTTL:          cfg.TokenTTL,
		SuperuserEmail:    cfg.SuperuserEmail,
		SuperuserPassword: cfg.SuperuserPassword,
	}
	if cfg.SuperuserEmail == "" {
		logger.Warn().Msg("FIRST_SUPERUSER_EMAIL not set, login endpoint disabled")
	}
	router := httpapi.NewRouter(app, httpapi.Options{
		JWTSecret:       cfg.JWTSecret,
		RateLimitPerMin: cfg.RateLimitPerMin,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
		Logger:          logger,
	})

	server := infra.NewHTTPServer(cfg, router, logger)
	if err := server.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("http server failed")
		return
	}
}
