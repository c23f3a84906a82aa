package core

import "errors"

// OperationType distinguishes money coming in from money going out.
type OperationType string

const (
	Income  OperationType = "INCOME"
	Expense OperationType = "EXPENSE"
)

// Valid reports whether t is one of the two known types.
func (t OperationType) Valid() bool {
	return t == Income || t == Expense
}

// Reverse returns the opposite type. Used to undo an operation's
// effect on an account balance.
func (t OperationType) Reverse() OperationType {
	if t == Income {
		return Expense
	}
	return Income
}

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidOperationType = errors.New("invalid operation type")
	ErrEmptyName            = errors.New("name is empty")
	ErrInsufficientFunds    = errors.New("insufficient funds")
)
