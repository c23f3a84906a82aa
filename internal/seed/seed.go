// Package seed bootstraps a fresh ledger with the default category
// catalogue and, optionally, a small demo data set. Everything goes
// through the services so balances stay consistent with the operations.
package seed

import (
	"context"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/services"
)

type Seeder struct {
	accounts   *services.AccountService
	categories *services.CategoryService
	operations *services.OperationService
	logger     *log.Logger
}

func New(accounts *services.AccountService, categories *services.CategoryService, operations *services.OperationService, logger *log.Logger) *Seeder {
	return &Seeder{
		accounts:   accounts,
		categories: categories,
		operations: operations,
		logger:     logger.WithComponent(log.ComponentSeed),
	}
}

// Categories loads the default category catalogue. Safe to call on
// every startup; existing categories are left alone.
func (s *Seeder) Categories() {
	s.categories.LoadDefaultCategories()
	s.logger.Info("default categories loaded",
		log.FieldCount, len(s.categories.GetAllCategories()))
}

// DemoData creates two demo accounts with a month of activity. Intended
// for local runs; idempotence is not a goal here, calling it twice
// simply doubles the demo operations.
func (s *Seeder) DemoData(ctx context.Context) error {
	s.Categories()

	checking := s.accounts.CreateAccount("Checking")
	savings := s.accounts.CreateAccount("Savings")

	salary := s.findCategory(core.Income, "Salary")
	groceries := s.findCategory(core.Expense, "Groceries")
	transport := s.findCategory(core.Expense, "Transport")

	base := time.Now().AddDate(0, -1, 0)
	demo := []struct {
		t           core.OperationType
		account     core.Account
		amount      string
		category    core.Category
		description string
		day         int
	}{
		{core.Income, checking, "2500.00", salary, "monthly salary", 1},
		{core.Expense, checking, "120.40", groceries, "supermarket", 3},
		{core.Expense, checking, "45.00", transport, "metro card", 5},
		{core.Income, savings, "300.00", salary, "side project", 10},
		{core.Expense, checking, "89.90", groceries, "weekend shopping", 14},
	}

	for _, d := range demo {
		amount, err := core.ParseAmount(d.amount)
		if err != nil {
			return err
		}
		date := base.AddDate(0, 0, d.day)
		if _, err := s.operations.CreateOperationAt(ctx, d.t, d.account.ID, amount, d.category.ID, d.description, date); err != nil {
			return err
		}
	}

	s.logger.Info("demo data created",
		log.FieldCount, len(demo))
	return nil
}

func (s *Seeder) findCategory(t core.OperationType, name string) core.Category {
	for _, cat := range s.categories.GetCategoriesByType(t) {
		if cat.Name == name {
			return cat
		}
	}
	return s.categories.CreateCategory(t, name)
}
