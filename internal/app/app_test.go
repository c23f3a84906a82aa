package app

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"fintrack/internal/config"
	"fintrack/internal/core"
	"fintrack/internal/log"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:                 "8081",
		AllowNegativeBalance: true,
		LogLevel:             "error",
	}
}

func testLogger() *log.Logger {
	return log.New(log.Config{
		Handler: slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}),
	})
}

func TestBuildWiresFullGraph(t *testing.T) {
	a, err := Build(testConfig(), testLogger())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer a.Close()

	if a.Stores == nil || a.Accounts == nil || a.Categories == nil ||
		a.Operations == nil || a.Analytics == nil ||
		a.Exporter == nil || a.Loader == nil || a.Seeder == nil {
		t.Fatalf("incomplete graph: %+v", a)
	}
	if a.Events != nil {
		t.Fatalf("events client must stay nil without AMQP_URL")
	}

	// The graph must be live: a created account is visible through the
	// wired services and analytics.
	acc := a.Accounts.CreateAccount("Wired")
	if _, ok := a.Accounts.GetAccount(acc.ID); !ok {
		t.Fatalf("account not visible through wired service")
	}
}

func TestBuildRespectsBalancePolicy(t *testing.T) {
	cfg := testConfig()
	cfg.AllowNegativeBalance = false

	a, err := Build(cfg, testLogger())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer a.Close()

	acc := a.Accounts.CreateAccount("Strict")
	cat := a.Categories.CreateCategory(core.Expense, "Groceries")
	amount, err := core.ParseAmount("10.00")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := a.Operations.CreateOperation(context.Background(), core.Expense, acc.ID, amount, cat.ID, ""); err == nil {
		t.Fatalf("expected overdraft refusal under strict policy")
	}
}
