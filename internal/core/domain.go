package core

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type (
	// Account is a ledger account. Balance is maintained incrementally by
	// the service layer; Operations is a derived view hydrated on read and
	// never authoritative.
	Account struct {
		ID         uuid.UUID       `json:"id" yaml:"id"`
		Name       string          `json:"name" yaml:"name"`
		Balance    decimal.Decimal `json:"balance" yaml:"balance"`
		Operations []Operation     `json:"-" yaml:"-"`
	}

	// Category tags operations as a kind of income or expense. Type is
	// fixed at construction; SetType exists for completeness but no
	// service calls it.
	Category struct {
		ID         uuid.UUID     `json:"id" yaml:"id"`
		Type       OperationType `json:"type" yaml:"type"`
		Name       string        `json:"name" yaml:"name"`
		Operations []Operation   `json:"-" yaml:"-"`
	}

	// Operation is a single ledger entry referencing exactly one account
	// and one category by id. The Account and Category pointers are a
	// best-effort denormalization attached by the operation store on save;
	// they may go stale and the ids stay authoritative.
	Operation struct {
		ID          uuid.UUID       `json:"id" yaml:"id"`
		Type        OperationType   `json:"type" yaml:"type"`
		AccountID   uuid.UUID       `json:"account_id" yaml:"account_id"`
		Account     *Account        `json:"-" yaml:"-"`
		Amount      decimal.Decimal `json:"amount" yaml:"amount"`
		Date        time.Time       `json:"date" yaml:"date"`
		Description string          `json:"description,omitempty" yaml:"description,omitempty"`
		CategoryID  uuid.UUID       `json:"category_id" yaml:"category_id"`
		Category    *Category       `json:"-" yaml:"-"`
	}
)

func (c *Category) SetType(t OperationType) error {
	if !t.Valid() {
		return ErrInvalidOperationType
	}
	c.Type = t
	return nil
}

func (o Operation) IsIncome() bool  { return o.Type == Income }
func (o Operation) IsExpense() bool { return o.Type == Expense }

// Signed returns the amount with the sign implied by the operation type.
func (o Operation) Signed() decimal.Decimal {
	if o.IsExpense() {
		return o.Amount.Neg()
	}
	return o.Amount
}
