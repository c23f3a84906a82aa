// Package services implements the ledger's use cases on top of the
// in-memory stores. The operation service is the sole writer of derived
// state (account balances): every balance change flows through its
// ordered create/delete steps, and nothing here re-validates amounts —
// collaborators parse and validate input before calling in.
package services

import (
	"fintrack/internal/core"
	"fintrack/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalancePolicy decides whether debits may push an account below zero.
// The original design always allowed it; the policy exists so deployments
// can opt into overdraft refusal without touching the services.
type BalancePolicy struct {
	AllowNegative bool
}

// balanceResult is the explicit outcome of a balance mutation. The
// exported API keeps the historical silent-void contract; internally the
// outcome is always named.
type balanceResult int

const (
	balanceUpdated balanceResult = iota
	balanceAccountMissing
	balanceRefused
)

type AccountService struct {
	stores  *store.Stores
	factory core.Factory
	policy  BalancePolicy
}

func NewAccountService(stores *store.Stores, factory core.Factory, policy BalancePolicy) *AccountService {
	return &AccountService{stores: stores, factory: factory, policy: policy}
}

// CreateAccount persists a new zero-balance account.
func (s *AccountService) CreateAccount(name string) core.Account {
	return s.stores.Accounts.Save(s.factory.NewAccount(name))
}

func (s *AccountService) GetAccount(id uuid.UUID) (core.Account, bool) {
	return s.stores.Accounts.FindByID(id)
}

func (s *AccountService) GetAllAccounts() []core.Account {
	return s.stores.Accounts.FindAll()
}

// DeleteAccount inherits the store's referential-integrity guard: it
// returns false while operations still reference the account.
func (s *AccountService) DeleteAccount(id uuid.UUID) bool {
	return s.stores.Accounts.Delete(id)
}

// UpdateAccountBalance adds amount for INCOME and subtracts it for
// EXPENSE. A missing account is silently tolerated as a no-op; callers
// that need the distinction use the internal result.
func (s *AccountService) UpdateAccountBalance(id uuid.UUID, amount decimal.Decimal, t core.OperationType) {
	s.applyBalance(id, amount, t, false)
}

// applyBalance performs the actual mutation. enforcePolicy gates the
// overdraft check: operation creation enforces it, balance reversal on
// delete never does (an undo must always go through).
func (s *AccountService) applyBalance(id uuid.UUID, amount decimal.Decimal, t core.OperationType, enforcePolicy bool) balanceResult {
	acc, ok := s.stores.Accounts.FindByID(id)
	if !ok {
		return balanceAccountMissing
	}
	var next decimal.Decimal
	if t == core.Income {
		next = acc.Balance.Add(amount)
	} else {
		next = acc.Balance.Sub(amount)
	}
	if enforcePolicy && !s.policy.AllowNegative && next.IsNegative() {
		return balanceRefused
	}
	acc.Balance = next.Round(2)
	s.stores.Accounts.Save(acc)
	return balanceUpdated
}

// CalculateTotalBalance sums every account balance; zero for an empty
// account set.
func (s *AccountService) CalculateTotalBalance() decimal.Decimal {
	total := decimal.Zero
	for _, acc := range s.stores.Accounts.FindAll() {
		total = total.Add(acc.Balance)
	}
	return total
}
