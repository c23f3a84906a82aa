package store

import (
	"time"

	"fintrack/internal/core"

	"github.com/google/uuid"
)

type operationRecord = core.Operation

// OperationStore is the relational hub: it owns the canonical operation
// rows and is the only authority the other stores query to materialize
// their operation views.
type OperationStore struct {
	raw        *entityStore[operationRecord]
	accounts   *AccountStore
	categories *CategoryStore
}

// Save resolves the referenced account and category and attaches them to
// the operation before persisting. The attachment is a convenience for
// consumers that want the resolved object without a second lookup; the
// stored ids stay authoritative and the attached copies may become stale.
func (s *OperationStore) Save(op core.Operation) core.Operation {
	if op.AccountID != uuid.Nil {
		if acc, ok := s.accounts.FindByID(op.AccountID); ok {
			op.Account = &acc
		}
	}
	if op.CategoryID != uuid.Nil {
		if cat, ok := s.categories.FindByID(op.CategoryID); ok {
			op.Category = &cat
		}
	}
	return s.raw.save(op.ID, op)
}

func (s *OperationStore) FindByID(id uuid.UUID) (core.Operation, bool) {
	return s.raw.find(id)
}

func (s *OperationStore) FindAll() []core.Operation {
	return s.raw.all()
}

func (s *OperationStore) Delete(id uuid.UUID) bool {
	return s.raw.remove(id)
}

func (s *OperationStore) FindByAccount(accountID uuid.UUID) []core.Operation {
	return s.filter(func(op core.Operation) bool { return op.AccountID == accountID })
}

func (s *OperationStore) FindByCategory(categoryID uuid.UUID) []core.Operation {
	return s.filter(func(op core.Operation) bool { return op.CategoryID == categoryID })
}

func (s *OperationStore) FindByType(t core.OperationType) []core.Operation {
	return s.filter(func(op core.Operation) bool { return op.Type == t })
}

// FindByDateRange returns operations with a date inside the inclusive
// range [start, end].
func (s *OperationStore) FindByDateRange(start, end time.Time) []core.Operation {
	return s.filter(func(op core.Operation) bool {
		return !op.Date.Before(start) && !op.Date.After(end)
	})
}

func (s *OperationStore) filter(keep func(core.Operation) bool) []core.Operation {
	var out []core.Operation
	for _, op := range s.raw.all() {
		if keep(op) {
			out = append(out, op)
		}
	}
	return out
}
