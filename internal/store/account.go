package store

import (
	"fintrack/internal/core"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// accountRecord is the raw stored shape. The derived Operations view is
// never persisted; it is rebuilt from the operation store on every read.
type accountRecord struct {
	ID      uuid.UUID
	Name    string
	Balance decimal.Decimal
}

// AccountStore keeps accounts and guards their referential integrity:
// an account referenced by any operation cannot be deleted.
type AccountStore struct {
	raw *entityStore[accountRecord]
	ops *OperationStore
}

func (s *AccountStore) Save(a core.Account) core.Account {
	s.raw.save(a.ID, accountRecord{ID: a.ID, Name: a.Name, Balance: a.Balance})
	return a
}

// FindByID returns a fresh value with its Operations hydrated from the
// operation store. Each call materializes a new snapshot; callers never
// share a cached instance.
func (s *AccountStore) FindByID(id uuid.UUID) (core.Account, bool) {
	rec, ok := s.raw.find(id)
	if !ok {
		return core.Account{}, false
	}
	return s.hydrate(rec), true
}

func (s *AccountStore) FindAll() []core.Account {
	recs := s.raw.all()
	out := make([]core.Account, 0, len(recs))
	for _, rec := range recs {
		out = append(out, s.hydrate(rec))
	}
	return out
}

// Delete refuses while any operation still references the account,
// returning false with the account retained.
func (s *AccountStore) Delete(id uuid.UUID) bool {
	if len(s.ops.FindByAccount(id)) > 0 {
		return false
	}
	return s.raw.remove(id)
}

func (s *AccountStore) hydrate(rec accountRecord) core.Account {
	return core.Account{
		ID:         rec.ID,
		Name:       rec.Name,
		Balance:    rec.Balance,
		Operations: s.ops.FindByAccount(rec.ID),
	}
}
