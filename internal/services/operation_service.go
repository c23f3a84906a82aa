package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/events"
	"fintrack/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OperationService orchestrates operation creation and deletion so that
// the operation log and account balances move together. It is the only
// correct entry point for both: saving or deleting rows directly on the
// store leaves the referenced account's balance stale.
type OperationService struct {
	stores     *store.Stores
	accounts   *AccountService
	categories *CategoryService
	factory    core.Factory
	events     *events.Client
}

func NewOperationService(stores *store.Stores, accounts *AccountService, categories *CategoryService, factory core.Factory, eventsClient *events.Client) *OperationService {
	return &OperationService{
		stores:     stores,
		accounts:   accounts,
		categories: categories,
		factory:    factory,
		events:     eventsClient,
	}
}

// CreateOperation validates both foreign keys (account first), applies
// the balance change, then persists the operation. The two mutation
// steps are deliberately sequential and non-atomic; tests pin the
// ordering. The amount itself is not validated here — that is the
// caller's responsibility.
func (s *OperationService) CreateOperation(ctx context.Context, t core.OperationType, accountID uuid.UUID, amount decimal.Decimal, categoryID uuid.UUID, description string) (core.Operation, error) {
	return s.create(ctx, t, accountID, amount, categoryID, description, nil)
}

// CreateOperationAt is CreateOperation with an explicit date instead of
// the factory clock. Imports use it to preserve historical dates.
func (s *OperationService) CreateOperationAt(ctx context.Context, t core.OperationType, accountID uuid.UUID, amount decimal.Decimal, categoryID uuid.UUID, description string, date time.Time) (core.Operation, error) {
	return s.create(ctx, t, accountID, amount, categoryID, description, &date)
}

func (s *OperationService) create(ctx context.Context, t core.OperationType, accountID uuid.UUID, amount decimal.Decimal, categoryID uuid.UUID, description string, date *time.Time) (core.Operation, error) {
	if !t.Valid() {
		return core.Operation{}, fmt.Errorf("create operation: %w", core.ErrInvalidOperationType)
	}
	if _, ok := s.accounts.GetAccount(accountID); !ok {
		return core.Operation{}, fmt.Errorf("create operation: %w", core.ErrAccountNotFound)
	}
	if _, ok := s.categories.GetCategory(categoryID); !ok {
		return core.Operation{}, fmt.Errorf("create operation: %w", core.ErrCategoryNotFound)
	}

	op := s.factory.NewOperation(t, accountID, amount, categoryID, description)
	if date != nil {
		op.Date = *date
	}

	// Balance moves before the row exists. An interruption between the
	// two steps leaves the balance and the log divergent.
	if s.accounts.applyBalance(accountID, op.Amount, t, true) == balanceRefused {
		return core.Operation{}, fmt.Errorf("create operation: %w", core.ErrInsufficientFunds)
	}

	op = s.stores.Operations.Save(op)
	s.publish(ctx, events.ActionCreated, op)
	return op, nil
}

// DeleteOperation reverses the operation's balance effect and removes
// the row. A missing operation returns false. The reversal targets the
// original account id; if that account is gone the balance update is a
// silent no-op and the row is still removed.
func (s *OperationService) DeleteOperation(ctx context.Context, id uuid.UUID) bool {
	op, ok := s.stores.Operations.FindByID(id)
	if !ok {
		return false
	}

	s.accounts.applyBalance(op.AccountID, op.Amount, op.Type.Reverse(), false)

	deleted := s.stores.Operations.Delete(id)
	if deleted {
		s.publish(ctx, events.ActionDeleted, op)
	}
	return deleted
}

func (s *OperationService) GetOperation(id uuid.UUID) (core.Operation, bool) {
	return s.stores.Operations.FindByID(id)
}

func (s *OperationService) GetAllOperations() []core.Operation {
	return s.stores.Operations.FindAll()
}

func (s *OperationService) GetOperationsByAccount(accountID uuid.UUID) []core.Operation {
	return s.stores.Operations.FindByAccount(accountID)
}

func (s *OperationService) GetOperationsByCategory(categoryID uuid.UUID) []core.Operation {
	return s.stores.Operations.FindByCategory(categoryID)
}

func (s *OperationService) GetOperationsByType(t core.OperationType) []core.Operation {
	return s.stores.Operations.FindByType(t)
}

func (s *OperationService) GetOperationsByDateRange(start, end time.Time) []core.Operation {
	return s.stores.Operations.FindByDateRange(start, end)
}

// GetTotalIncome sums INCOME amounts inside the inclusive range.
func (s *OperationService) GetTotalIncome(start, end time.Time) decimal.Decimal {
	return s.sumByType(core.Income, start, end)
}

// GetTotalExpense sums EXPENSE amounts inside the inclusive range.
func (s *OperationService) GetTotalExpense(start, end time.Time) decimal.Decimal {
	return s.sumByType(core.Expense, start, end)
}

func (s *OperationService) GetBalanceForPeriod(start, end time.Time) decimal.Decimal {
	return s.GetTotalIncome(start, end).Sub(s.GetTotalExpense(start, end))
}

func (s *OperationService) sumByType(t core.OperationType, start, end time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, op := range s.stores.Operations.FindByDateRange(start, end) {
		if op.Type == t {
			total = total.Add(op.Amount)
		}
	}
	return total
}

// publish is nil-safe and failure-tolerant: the ledger mutation already
// happened, so a broker problem is logged and swallowed.
func (s *OperationService) publish(ctx context.Context, action string, op core.Operation) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishOperationEvent(ctx, events.NewOperationEvent(action, op)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish operation event",
			"action", action,
			"operation_id", op.ID,
			"error", err)
	}
}
