package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"fintrack/internal/app"
	"fintrack/internal/config"
	"fintrack/internal/log"
	"fintrack/internal/menu"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()
	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Component: log.ComponentApp,
		Handler: slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: log.ParseLevel(cfg.LogLevel),
		}),
	})
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err.Error())
		os.Exit(1)
	}

	a, err := app.Build(cfg, logger)
	if err != nil {
		logger.Error("Failed to build application", log.FieldError, err.Error())
		os.Exit(1)
	}
	defer a.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.SeedDefaultCategories {
		a.Seeder.Categories()
	}
	if cfg.SeedDemoData {
		if err := a.Seeder.DemoData(ctx); err != nil {
			logger.Error("Failed to seed demo data", log.FieldError, err.Error())
			os.Exit(1)
		}
	}

	m := menu.New(os.Stdin, os.Stdout, menu.Deps{
		Accounts:   a.Accounts,
		Categories: a.Categories,
		Operations: a.Operations,
		Analytics:  a.Analytics,
		Exporter:   a.Exporter,
		Loader:     a.Loader,
		ExportDir:  cfg.ExportDir,
		Logger:     logger,
	})
	m.Run(ctx)
}
