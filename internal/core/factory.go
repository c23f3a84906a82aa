package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Factory constructs entities with injected id generation and clock, so
// nothing in the ledger depends on a process-global generator.
type Factory struct {
	IDGen func() uuid.UUID
	Now   func() time.Time
}

// NewFactory returns a factory backed by random UUIDs and the wall clock.
func NewFactory() Factory {
	return Factory{IDGen: uuid.New, Now: time.Now}
}

func (f Factory) NewAccount(name string) Account {
	return Account{
		ID:      f.IDGen(),
		Name:    strings.TrimSpace(name),
		Balance: decimal.Zero,
	}
}

func (f Factory) NewCategory(t OperationType, name string) Category {
	return Category{
		ID:   f.IDGen(),
		Type: t,
		Name: strings.TrimSpace(name),
	}
}

// NewOperation stamps the operation with the factory clock. Amount is
// taken as given; the service boundary does not validate it (callers
// validate with ParseAmount before reaching the ledger).
func (f Factory) NewOperation(t OperationType, accountID uuid.UUID, amount decimal.Decimal, categoryID uuid.UUID, description string) Operation {
	return Operation{
		ID:          f.IDGen(),
		Type:        t,
		AccountID:   accountID,
		Amount:      amount.Round(2),
		Date:        f.Now(),
		Description: strings.TrimSpace(description),
		CategoryID:  categoryID,
	}
}
