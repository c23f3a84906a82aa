package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"fintrack/internal/core"

	"github.com/google/uuid"
)

func TestSnapshotAggregation(t *testing.T) {
	fx := newFixture(BalancePolicy{AllowNegative: true})
	ctx := context.Background()

	checking := fx.accounts.CreateAccount("Checking")
	savings := fx.accounts.CreateAccount("Savings")
	idle := fx.accounts.CreateAccount("Idle")
	salary := fx.categories.CreateCategory(core.Income, "Salary")
	food := fx.categories.CreateCategory(core.Expense, "Groceries")

	day := func(d int) time.Time { return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC) }

	fx.at(day(10))
	if _, err := fx.operations.CreateOperation(ctx, core.Income, checking.ID, amt("100"), salary.ID, ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	fx.at(day(12))
	if _, err := fx.operations.CreateOperation(ctx, core.Expense, checking.ID, amt("40"), food.ID, ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	// Savings nets out to zero inside the window and must be omitted.
	fx.at(day(14))
	if _, err := fx.operations.CreateOperation(ctx, core.Income, savings.ID, amt("25"), salary.ID, ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	fx.at(day(15))
	if _, err := fx.operations.CreateOperation(ctx, core.Expense, savings.ID, amt("25"), food.ID, ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	// Outside the window.
	fx.at(day(1).AddDate(0, -1, 0))
	if _, err := fx.operations.CreateOperation(ctx, core.Income, checking.ID, amt("999"), salary.ID, ""); err != nil {
		t.Fatalf("create: %v", err)
	}

	snap := fx.analytics.Snapshot(day(1), day(31))

	if got := snap.TotalIncome.String(); got != "125" {
		t.Fatalf("total income: expected 125, got %s", got)
	}
	if got := snap.TotalExpense.String(); got != "65" {
		t.Fatalf("total expense: expected 65, got %s", got)
	}
	if got := snap.Balance.String(); got != "60" {
		t.Fatalf("balance: expected 60, got %s", got)
	}
	if got := snap.IncomeByCategory["Salary"].String(); got != "125" {
		t.Fatalf("income by category: expected 125, got %s", got)
	}
	if got := snap.ExpenseByCategory["Groceries"].String(); got != "65" {
		t.Fatalf("expense by category: expected 65, got %s", got)
	}
	if got := snap.AccountBalances["Checking"].String(); got != "60" {
		t.Fatalf("account net: expected 60, got %s", got)
	}
	if _, ok := snap.AccountBalances["Savings"]; ok {
		t.Fatalf("zero-net account must be omitted")
	}
	if _, ok := snap.AccountBalances[idle.Name]; ok {
		t.Fatalf("inactive account must be omitted")
	}
	if len(snap.TopOperations) != 4 {
		t.Fatalf("expected 4 top operations, got %d", len(snap.TopOperations))
	}
	if got := snap.TopOperations[0].Amount.String(); got != "100" {
		t.Fatalf("top operations must be sorted by amount desc, first was %s", got)
	}
}

func TestTopOperationsLimit(t *testing.T) {
	fx := newFixture(BalancePolicy{AllowNegative: true})
	ctx := context.Background()

	acc := fx.accounts.CreateAccount("A")
	salary := fx.categories.CreateCategory(core.Income, "Salary")

	for i := 1; i <= topOperationsLimit+3; i++ {
		if _, err := fx.operations.CreateOperation(ctx, core.Income, acc.ID,
			amt(fmt.Sprintf("%d", i)), salary.ID, ""); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	start := fx.now.AddDate(-1, 0, 0)
	end := fx.now.AddDate(1, 0, 0)
	top := fx.analytics.topOperations(start, end)
	if len(top) != topOperationsLimit {
		t.Fatalf("expected %d operations, got %d", topOperationsLimit, len(top))
	}
	for i := 1; i < len(top); i++ {
		if top[i].Amount.GreaterThan(top[i-1].Amount) {
			t.Fatalf("not sorted descending at %d: %s > %s", i, top[i].Amount, top[i-1].Amount)
		}
	}
	if got := top[0].Amount.String(); got != "13" {
		t.Fatalf("expected largest amount 13 first, got %s", got)
	}
}

func TestCategoryStatisticsUnknownLabel(t *testing.T) {
	fx := newFixture(BalancePolicy{AllowNegative: true})
	ctx := context.Background()

	acc := fx.accounts.CreateAccount("A")
	food := fx.categories.CreateCategory(core.Expense, "Groceries")

	if _, err := fx.operations.CreateOperation(ctx, core.Expense, acc.ID, amt("10"), food.ID, ""); err != nil {
		t.Fatalf("create: %v", err)
	}

	// A row written around the collaborator layer can carry a category id
	// that never resolves; the statistics group it under "Unknown".
	fx.stores.Operations.Save(core.Operation{
		ID:         uuid.New(),
		Type:       core.Expense,
		AccountID:  acc.ID,
		Amount:     amt("7"),
		Date:       *fx.now,
		CategoryID: uuid.New(),
	})

	stats := fx.analytics.CategoryStatistics(core.Expense)
	if got := stats["Groceries"].String(); got != "10" {
		t.Fatalf("expected Groceries 10, got %s", got)
	}
	if got := stats[unknownCategoryLabel].String(); got != "7" {
		t.Fatalf("expected Unknown 7, got %s", got)
	}
}

func TestReportFormat(t *testing.T) {
	fx := newFixture(BalancePolicy{AllowNegative: true})
	ctx := context.Background()

	acc := fx.accounts.CreateAccount("Checking")
	salary := fx.categories.CreateCategory(core.Income, "Salary")
	food := fx.categories.CreateCategory(core.Expense, "Groceries")

	fx.at(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	if _, err := fx.operations.CreateOperation(ctx, core.Income, acc.ID, amt("100"), salary.ID, "march pay"); err != nil {
		t.Fatalf("create: %v", err)
	}
	fx.at(time.Date(2025, 3, 12, 18, 30, 0, 0, time.UTC))
	if _, err := fx.operations.CreateOperation(ctx, core.Expense, acc.ID, amt("40"), food.ID, "weekly shop"); err != nil {
		t.Fatalf("create: %v", err)
	}

	got := fx.analytics.Report(
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC))

	want := `=== FINANCIAL REPORT ===
Period: 2025-03-01 - 2025-03-31

SUMMARY:
Total income: 100.00
Total expense: 40.00
Period balance: 60.00

INCOME BY CATEGORY:
  Salary: 100.00

EXPENSE BY CATEGORY:
  Groceries: 40.00

ACCOUNT BALANCES:
  Checking: 60.00

TOP OPERATIONS:
  Income 100.00 (10.03.2025) - Salary
  Expense 40.00 (12.03.2025) - Groceries
`
	if got != want {
		t.Fatalf("report mismatch:\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestReportEmptySections(t *testing.T) {
	fx := newFixture(BalancePolicy{AllowNegative: true})

	got := fx.analytics.Report(
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC))

	for _, header := range []string{
		"INCOME BY CATEGORY:\n  no data",
		"EXPENSE BY CATEGORY:\n  no data",
		"ACCOUNT BALANCES:\n  no data",
		"TOP OPERATIONS:\n  no data",
	} {
		if !strings.Contains(got, header) {
			t.Fatalf("report missing %q:\n%s", header, got)
		}
	}
	if !strings.Contains(got, "Total income: 0.00") || !strings.Contains(got, "Period balance: 0.00") {
		t.Fatalf("empty report must render zero totals:\n%s", got)
	}
}
