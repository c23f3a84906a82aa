package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"fintrack/internal/config"
	"fintrack/internal/events"
	"fintrack/internal/log"
	"fintrack/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()
	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Component: log.ComponentWorker,
		Handler: slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: log.ParseLevel(cfg.LogLevel),
		}),
	})
	log.SetDefault(logger)

	logger.Info("Starting fintrack-worker")

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err.Error())
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the audit worker")
		os.Exit(1)
	}

	client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err.Error())
		os.Exit(1)
	}
	defer client.Close()

	auditWorker, err := worker.NewAuditWorker(client, cfg.AuditLogPath, logger)
	if err != nil {
		logger.Error("Failed to open audit log", log.FieldError, err.Error(),
			log.FieldFile, cfg.AuditLogPath)
		os.Exit(1)
	}
	defer auditWorker.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("Consuming operation events",
		"queue", cfg.AMQPQueue,
		log.FieldFile, cfg.AuditLogPath)

	if err := auditWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker failed", log.FieldError, err.Error())
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully",
		log.FieldCount, auditWorker.Processed())
}
