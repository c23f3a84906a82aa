package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type fixture struct {
	stores     *store.Stores
	accounts   *AccountService
	categories *CategoryService
	operations *OperationService
	analytics  *AnalyticsService
	now        *time.Time
}

// newFixture wires the full service stack over a fresh in-memory store.
// The clock is a settable cursor so tests control operation dates.
func newFixture(policy BalancePolicy) *fixture {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	fx := &fixture{stores: store.New(), now: &now}
	f := core.Factory{
		IDGen: uuid.New,
		Now:   func() time.Time { return *fx.now },
	}
	fx.accounts = NewAccountService(fx.stores, f, policy)
	fx.categories = NewCategoryService(fx.stores, f)
	fx.operations = NewOperationService(fx.stores, fx.accounts, fx.categories, f, nil)
	fx.analytics = NewAnalyticsService(fx.operations, fx.categories, fx.accounts)
	return fx
}

func (fx *fixture) at(t time.Time) { *fx.now = t }

func (fx *fixture) balance(t *testing.T, id uuid.UUID) decimal.Decimal {
	t.Helper()
	acc, ok := fx.accounts.GetAccount(id)
	if !ok {
		t.Fatalf("account %s vanished", id)
	}
	return acc.Balance
}

func amt(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCreateOperationValidatesForeignKeys(t *testing.T) {
	fx := newFixture(BalancePolicy{AllowNegative: true})
	ctx := context.Background()

	acc := fx.accounts.CreateAccount("A")
	cat := fx.categories.CreateCategory(core.Expense, "Groceries")

	// Account is checked first, independently of the category.
	_, err := fx.operations.CreateOperation(ctx, core.Expense, uuid.New(), amt("10"), uuid.New(), "")
	if !errors.Is(err, core.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	_, err = fx.operations.CreateOperation(ctx, core.Expense, acc.ID, amt("10"), uuid.New(), "")
	if !errors.Is(err, core.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
	_, err = fx.operations.CreateOperation(ctx, core.OperationType("TRANSFER"), acc.ID, amt("10"), cat.ID, "")
	if !errors.Is(err, core.ErrInvalidOperationType) {
		t.Fatalf("expected ErrInvalidOperationType, got %v", err)
	}

	// Failed creations must not touch the balance or the log.
	if !fx.balance(t, acc.ID).IsZero() {
		t.Fatalf("failed creation mutated the balance")
	}
	if len(fx.operations.GetAllOperations()) != 0 {
		t.Fatalf("failed creation persisted an operation")
	}
}

func TestBalanceInvariantAcrossCreateAndDelete(t *testing.T) {
	fx := newFixture(BalancePolicy{AllowNegative: true})
	ctx := context.Background()

	acc := fx.accounts.CreateAccount("A")
	salary := fx.categories.CreateCategory(core.Income, "Salary")
	food := fx.categories.CreateCategory(core.Expense, "Groceries")

	// After every step the balance must equal income minus expense over
	// the currently existing operations of this account.
	check := func(step string) {
		t.Helper()
		expected := decimal.Zero
		for _, op := range fx.operations.GetOperationsByAccount(acc.ID) {
			expected = expected.Add(op.Signed())
		}
		if got := fx.balance(t, acc.ID); !got.Equal(expected) {
			t.Fatalf("%s: balance %s != recomputed %s", step, got, expected)
		}
	}

	op1, err := fx.operations.CreateOperation(ctx, core.Income, acc.ID, amt("50"), salary.ID, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	check("income 50")

	if _, err := fx.operations.CreateOperation(ctx, core.Income, acc.ID, amt("30"), salary.ID, ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	check("income 30")

	if _, err := fx.operations.CreateOperation(ctx, core.Expense, acc.ID, amt("20"), food.ID, ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	check("expense 20")

	if got := fx.balance(t, acc.ID); got.String() != "60" {
		t.Fatalf("expected balance 60, got %s", got)
	}

	if !fx.operations.DeleteOperation(ctx, op1.ID) {
		t.Fatalf("delete failed")
	}
	check("deleted income 50")
	if got := fx.balance(t, acc.ID); got.String() != "10" {
		t.Fatalf("expected balance 10 after reversal, got %s", got)
	}
}

func TestCreateDeleteRoundTripRestoresBalance(t *testing.T) {
	fx := newFixture(BalancePolicy{AllowNegative: true})
	ctx := context.Background()

	acc := fx.accounts.CreateAccount("A")
	cat := fx.categories.CreateCategory(core.Expense, "Groceries")

	before := fx.balance(t, acc.ID)
	op, err := fx.operations.CreateOperation(ctx, core.Expense, acc.ID, amt("100.00"), cat.ID, "x")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// The core permits negative balances by default; nothing above the
	// collaborator layer stops a debit from overdrawing.
	if got := fx.balance(t, acc.ID); got.String() != "-100" {
		t.Fatalf("expected -100, got %s", got)
	}

	if !fx.operations.DeleteOperation(ctx, op.ID) {
		t.Fatalf("delete failed")
	}
	if got := fx.balance(t, acc.ID); !got.Equal(before) {
		t.Fatalf("round trip did not restore balance: %s != %s", got, before)
	}
	if fx.operations.DeleteOperation(ctx, op.ID) {
		t.Fatalf("second delete must report false")
	}
}

func TestOverdraftPolicyRefusesBeforePersisting(t *testing.T) {
	fx := newFixture(BalancePolicy{AllowNegative: false})
	ctx := context.Background()

	acc := fx.accounts.CreateAccount("A")
	cat := fx.categories.CreateCategory(core.Expense, "Groceries")
	salary := fx.categories.CreateCategory(core.Income, "Salary")

	_, err := fx.operations.CreateOperation(ctx, core.Expense, acc.ID, amt("1"), cat.ID, "")
	if !errors.Is(err, core.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	// The balance step runs before the save step; a refusal must leave
	// no trace in either place.
	if len(fx.operations.GetAllOperations()) != 0 {
		t.Fatalf("refused operation was persisted")
	}
	if !fx.balance(t, acc.ID).IsZero() {
		t.Fatalf("refused operation mutated the balance")
	}

	// Reversal is exempt from the policy: deleting an income is always
	// allowed even when it would not pass as a fresh debit.
	in, err := fx.operations.CreateOperation(ctx, core.Income, acc.ID, amt("50"), salary.ID, "")
	if err != nil {
		t.Fatalf("create income: %v", err)
	}
	if _, err := fx.operations.CreateOperation(ctx, core.Expense, acc.ID, amt("30"), cat.ID, ""); err != nil {
		t.Fatalf("create expense: %v", err)
	}
	if !fx.operations.DeleteOperation(ctx, in.ID) {
		t.Fatalf("delete income failed")
	}
	if got := fx.balance(t, acc.ID); got.String() != "-30" {
		t.Fatalf("reversal must bypass the overdraft policy, got %s", got)
	}
}

func TestUpdateAccountBalanceSilentNoOpWhenMissing(t *testing.T) {
	fx := newFixture(BalancePolicy{AllowNegative: true})

	// Must not panic or error; there is simply nothing to update.
	fx.accounts.UpdateAccountBalance(uuid.New(), amt("10"), core.Income)

	if res := fx.accounts.applyBalance(uuid.New(), amt("10"), core.Income, false); res != balanceAccountMissing {
		t.Fatalf("expected balanceAccountMissing, got %d", res)
	}
}

func TestDeleteGuardsAndCascadeOrder(t *testing.T) {
	fx := newFixture(BalancePolicy{AllowNegative: true})
	ctx := context.Background()

	acc := fx.accounts.CreateAccount("A")
	cat := fx.categories.CreateCategory(core.Income, "Salary")
	op, err := fx.operations.CreateOperation(ctx, core.Income, acc.ID, amt("5"), cat.ID, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if fx.accounts.DeleteAccount(acc.ID) {
		t.Fatalf("account delete must fail while referenced")
	}
	if fx.categories.DeleteCategory(cat.ID) {
		t.Fatalf("category delete must fail while referenced")
	}
	if _, ok := fx.accounts.GetAccount(acc.ID); !ok {
		t.Fatalf("refused delete must keep the account queryable")
	}

	if !fx.operations.DeleteOperation(ctx, op.ID) {
		t.Fatalf("operation delete failed")
	}
	if !fx.accounts.DeleteAccount(acc.ID) {
		t.Fatalf("account delete must succeed once unreferenced")
	}
	if !fx.categories.DeleteCategory(cat.ID) {
		t.Fatalf("category delete must succeed once unreferenced")
	}
}

func TestLoadDefaultCategoriesIsIdempotent(t *testing.T) {
	fx := newFixture(BalancePolicy{AllowNegative: true})

	fx.categories.LoadDefaultCategories()
	once := len(fx.categories.GetAllCategories())
	if once != len(defaultIncomeCategories)+len(defaultExpenseCategories) {
		t.Fatalf("expected %d categories, got %d",
			len(defaultIncomeCategories)+len(defaultExpenseCategories), once)
	}

	fx.categories.LoadDefaultCategories()
	if twice := len(fx.categories.GetAllCategories()); twice != once {
		t.Fatalf("second seed changed the set: %d != %d", twice, once)
	}

	// Same name with a different type is a distinct category, so it must
	// not block the seeded one ("Gifts" exists in both catalogues).
	income := len(fx.categories.GetCategoriesByType(core.Income))
	if income != len(defaultIncomeCategories) {
		t.Fatalf("expected %d income categories, got %d", len(defaultIncomeCategories), income)
	}
}

func TestPeriodTotals(t *testing.T) {
	fx := newFixture(BalancePolicy{AllowNegative: true})
	ctx := context.Background()

	acc := fx.accounts.CreateAccount("A")
	salary := fx.categories.CreateCategory(core.Income, "Salary")
	food := fx.categories.CreateCategory(core.Expense, "Groceries")

	day := func(d int) time.Time { return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC) }

	fx.at(day(1))
	if _, err := fx.operations.CreateOperation(ctx, core.Income, acc.ID, amt("50"), salary.ID, ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	fx.at(day(15))
	if _, err := fx.operations.CreateOperation(ctx, core.Income, acc.ID, amt("30"), salary.ID, ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	fx.at(day(31))
	if _, err := fx.operations.CreateOperation(ctx, core.Expense, acc.ID, amt("20"), food.ID, ""); err != nil {
		t.Fatalf("create: %v", err)
	}

	if got := fx.operations.GetTotalIncome(day(1), day(31)); got.String() != "80" {
		t.Fatalf("total income: expected 80, got %s", got)
	}
	if got := fx.operations.GetTotalExpense(day(1), day(31)); got.String() != "20" {
		t.Fatalf("total expense: expected 20, got %s", got)
	}
	if got := fx.operations.GetBalanceForPeriod(day(1), day(31)); got.String() != "60" {
		t.Fatalf("period balance: expected 60, got %s", got)
	}
	if got := fx.balance(t, acc.ID); got.String() != "60" {
		t.Fatalf("account balance: expected 60, got %s", got)
	}

	// A range excluding everything yields zero.
	empty := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := fx.operations.GetTotalIncome(empty, empty.AddDate(0, 1, 0)); !got.IsZero() {
		t.Fatalf("empty range income must be zero, got %s", got)
	}
	if got := fx.operations.GetTotalExpense(empty, empty.AddDate(0, 1, 0)); !got.IsZero() {
		t.Fatalf("empty range expense must be zero, got %s", got)
	}
}

func TestCalculateTotalBalance(t *testing.T) {
	fx := newFixture(BalancePolicy{AllowNegative: true})
	ctx := context.Background()

	if got := fx.accounts.CalculateTotalBalance(); !got.IsZero() {
		t.Fatalf("empty set must total zero, got %s", got)
	}

	a := fx.accounts.CreateAccount("A")
	b := fx.accounts.CreateAccount("B")
	salary := fx.categories.CreateCategory(core.Income, "Salary")
	food := fx.categories.CreateCategory(core.Expense, "Groceries")

	if _, err := fx.operations.CreateOperation(ctx, core.Income, a.ID, amt("100"), salary.ID, ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := fx.operations.CreateOperation(ctx, core.Expense, b.ID, amt("40"), food.ID, ""); err != nil {
		t.Fatalf("create: %v", err)
	}

	if got := fx.accounts.CalculateTotalBalance(); got.String() != "60" {
		t.Fatalf("expected 60, got %s", got)
	}
}
