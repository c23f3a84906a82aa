package export

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/store"

	"github.com/shopspring/decimal"
)

type ledger struct {
	accounts   *services.AccountService
	categories *services.CategoryService
	operations *services.OperationService
}

func newLedger() ledger {
	stores := store.New()
	factory := core.NewFactory()
	accounts := services.NewAccountService(stores, factory, services.BalancePolicy{AllowNegative: true})
	categories := services.NewCategoryService(stores, factory)
	operations := services.NewOperationService(stores, accounts, categories, factory, nil)
	return ledger{accounts: accounts, categories: categories, operations: operations}
}

func testLogger() *log.Logger {
	return log.New(log.Config{
		Handler: slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}),
	})
}

func seedLedger(t *testing.T, l ledger) {
	t.Helper()
	ctx := context.Background()

	acc := l.accounts.CreateAccount("Checking")
	salary := l.categories.CreateCategory(core.Income, "Salary")
	food := l.categories.CreateCategory(core.Expense, "Groceries")

	if _, err := l.operations.CreateOperationAt(ctx, core.Income, acc.ID, mustAmount(t, "1500.00"), salary.ID, "march pay",
		time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := l.operations.CreateOperationAt(ctx, core.Expense, acc.ID, mustAmount(t, "85.50"), food.ID, "weekly shop",
		time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func mustAmount(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := core.ParseAmount(s)
	if err != nil {
		t.Fatalf("parse amount %q: %v", s, err)
	}
	return d
}

func TestExportWritesOneFilePerEntity(t *testing.T) {
	l := newLedger()
	seedLedger(t, l)
	dir := t.TempDir()

	exporter := NewExporter(l.accounts, l.categories, l.operations, testLogger())
	paths, err := exporter.Export(dir, "ledger", CSVEncoder{})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("expected 3 files, got %d", len(paths))
	}

	for _, want := range []string{"ledger_accounts.csv", "ledger_categories.csv", "ledger_operations.csv"} {
		if _, err := os.Stat(filepath.Join(dir, want)); err != nil {
			t.Fatalf("missing %s: %v", want, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "ledger_operations.csv"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "type,amount,date,account,category,description\n") {
		t.Fatalf("missing header:\n%s", content)
	}
	if !strings.Contains(content, "INCOME,1500.00,2025-03-05,Checking,Salary,march pay") {
		t.Fatalf("missing income row:\n%s", content)
	}
	if !strings.Contains(content, "EXPENSE,85.50,2025-03-08,Checking,Groceries,weekly shop") {
		t.Fatalf("missing expense row:\n%s", content)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	formats := []string{"csv", "json", "yaml"}
	for _, format := range formats {
		t.Run(format, func(t *testing.T) {
			src := newLedger()
			seedLedger(t, src)
			dir := t.TempDir()

			enc, err := EncoderFor(format)
			if err != nil {
				t.Fatalf("encoder: %v", err)
			}
			exporter := NewExporter(src.accounts, src.categories, src.operations, testLogger())
			if _, err := exporter.Export(dir, "ledger", enc); err != nil {
				t.Fatalf("export: %v", err)
			}

			rows, err := ImportOperations(filepath.Join(dir, "ledger_operations."+format), format)
			if err != nil {
				t.Fatalf("import: %v", err)
			}
			if len(rows) != 2 {
				t.Fatalf("expected 2 rows, got %d", len(rows))
			}

			dst := newLedger()
			loader := NewLoader(dst.accounts, dst.categories, dst.operations, testLogger())
			imported, err := loader.LoadOperations(context.Background(), rows)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if imported != 2 {
				t.Fatalf("expected 2 imported, got %d", imported)
			}

			// The destination ledger must rebuild the same balance and
			// resolve entities by name.
			accounts := dst.accounts.GetAllAccounts()
			if len(accounts) != 1 || accounts[0].Name != "Checking" {
				t.Fatalf("expected one account Checking, got %+v", accounts)
			}
			if got := accounts[0].Balance.StringFixed(2); got != "1414.50" {
				t.Fatalf("expected balance 1414.50, got %s", got)
			}
			ops := dst.operations.GetAllOperations()
			if len(ops) != 2 {
				t.Fatalf("expected 2 operations, got %d", len(ops))
			}
			for _, op := range ops {
				if op.Date.Year() != 2025 || op.Date.Month() != time.March {
					t.Fatalf("import must preserve dates, got %v", op.Date)
				}
			}
		})
	}
}

func TestLoaderSkipsMalformedRows(t *testing.T) {
	l := newLedger()
	loader := NewLoader(l.accounts, l.categories, l.operations, testLogger())

	rows := []OperationRow{
		{Type: "INCOME", Amount: "50.00", Date: "2025-03-01", Account: "A", Category: "Salary"},
		{Type: "TRANSFER", Amount: "10.00", Date: "2025-03-01", Account: "A", Category: "Salary"},
		{Type: "EXPENSE", Amount: "-5.00", Date: "2025-03-01", Account: "A", Category: "Groceries"},
		{Type: "EXPENSE", Amount: "5.00", Date: "01.03.2025", Account: "A", Category: "Groceries"},
		{Type: "EXPENSE", Amount: "5.00", Date: "2025-03-02", Account: "", Category: "Groceries"},
	}
	imported, err := loader.LoadOperations(context.Background(), rows)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if imported != 1 {
		t.Fatalf("expected 1 imported row, got %d", imported)
	}
	if got := len(l.operations.GetAllOperations()); got != 1 {
		t.Fatalf("expected 1 persisted operation, got %d", got)
	}
}

func TestLoaderReusesExistingEntities(t *testing.T) {
	l := newLedger()
	acc := l.accounts.CreateAccount("Checking")
	cat := l.categories.CreateCategory(core.Income, "Salary")
	loader := NewLoader(l.accounts, l.categories, l.operations, testLogger())

	rows := []OperationRow{
		{Type: "INCOME", Amount: "10.00", Date: "2025-03-01", Account: "Checking", Category: "Salary"},
	}
	if _, err := loader.LoadOperations(context.Background(), rows); err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := len(l.accounts.GetAllAccounts()); got != 1 {
		t.Fatalf("loader must reuse the existing account, got %d accounts", got)
	}
	if got := len(l.categories.GetAllCategories()); got != 1 {
		t.Fatalf("loader must reuse the existing category, got %d categories", got)
	}
	ops := l.operations.GetOperationsByAccount(acc.ID)
	if len(ops) != 1 || ops[0].CategoryID != cat.ID {
		t.Fatalf("operation not linked to existing entities: %+v", ops)
	}
}

func TestEncoderForUnknownFormat(t *testing.T) {
	if _, err := EncoderFor("xml"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
	if _, err := ImportOperations("nope.xml", "xml"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}
