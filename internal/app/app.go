// Package app wires the ledger's stores, services and collaborators
// into a ready-to-use object graph.
package app

import (
	"go.uber.org/dig"

	"fintrack/internal/config"
	"fintrack/internal/core"
	"fintrack/internal/events"
	"fintrack/internal/export"
	"fintrack/internal/log"
	"fintrack/internal/seed"
	"fintrack/internal/services"
	"fintrack/internal/store"
)

// App bundles the wired components the binaries run with.
type App struct {
	Config     *config.Config
	Logger     *log.Logger
	Stores     *store.Stores
	Accounts   *services.AccountService
	Categories *services.CategoryService
	Operations *services.OperationService
	Analytics  *services.AnalyticsService
	Exporter   *export.Exporter
	Loader     *export.Loader
	Seeder     *seed.Seeder
	Events     *events.Client
}

// Build constructs the full object graph. AMQP is optional: with no
// AMQP_URL configured the events client stays nil and the operation
// service skips publishing.
func Build(cfg *config.Config, logger *log.Logger) (*App, error) {
	c := dig.New()

	providers := []any{
		func() *config.Config { return cfg },
		func() *log.Logger { return logger },
		func() core.Factory { return core.NewFactory() },
		store.New,
		func(cfg *config.Config) services.BalancePolicy {
			return services.BalancePolicy{AllowNegative: cfg.AllowNegativeBalance}
		},
		newEventsClient,
		services.NewAccountService,
		services.NewCategoryService,
		services.NewOperationService,
		services.NewAnalyticsService,
		export.NewExporter,
		export.NewLoader,
		seed.New,
	}
	for _, p := range providers {
		if err := c.Provide(p); err != nil {
			return nil, err
		}
	}

	var app *App
	err := c.Invoke(func(
		stores *store.Stores,
		accounts *services.AccountService,
		categories *services.CategoryService,
		operations *services.OperationService,
		analytics *services.AnalyticsService,
		exporter *export.Exporter,
		loader *export.Loader,
		seeder *seed.Seeder,
		eventsClient *events.Client,
	) {
		app = &App{
			Config:     cfg,
			Logger:     logger,
			Stores:     stores,
			Accounts:   accounts,
			Categories: categories,
			Operations: operations,
			Analytics:  analytics,
			Exporter:   exporter,
			Loader:     loader,
			Seeder:     seeder,
			Events:     eventsClient,
		}
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}

// Close releases external resources held by the graph.
func (a *App) Close() error {
	if a.Events != nil {
		return a.Events.Close()
	}
	return nil
}

func newEventsClient(cfg *config.Config, logger *log.Logger) (*events.Client, error) {
	if cfg.AMQPURL == "" {
		return nil, nil
	}
	client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		// Events are best-effort; the ledger works without a broker.
		logger.WithComponent(log.ComponentAMQP).Warn("AMQP unavailable, events disabled",
			log.FieldError, err.Error())
		return nil, nil
	}
	return client, nil
}
