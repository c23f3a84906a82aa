package services

import (
	"fintrack/internal/core"
	"fintrack/internal/store"

	"github.com/google/uuid"
)

// Default catalogues seeded by LoadDefaultCategories. Matching is by
// exact case-sensitive name plus type, so the seed is idempotent.
var defaultIncomeCategories = []string{
	"Salary", "Freelance", "Investments", "Gifts", "Debt repayment",
	"Cashback", "Deposit interest", "Scholarship", "Pension", "Rental income",
}

var defaultExpenseCategories = []string{
	"Groceries", "Transport", "Utilities", "Entertainment", "Clothing",
	"Health", "Education", "Restaurants", "Gifts", "Phone/Internet",
	"Loans", "Insurance", "Home repair", "Personal care", "Hobbies",
	"Pets", "Children", "Car", "Taxes", "Charity",
}

type CategoryService struct {
	stores  *store.Stores
	factory core.Factory
}

func NewCategoryService(stores *store.Stores, factory core.Factory) *CategoryService {
	return &CategoryService{stores: stores, factory: factory}
}

func (s *CategoryService) CreateCategory(t core.OperationType, name string) core.Category {
	return s.stores.Categories.Save(s.factory.NewCategory(t, name))
}

func (s *CategoryService) GetCategory(id uuid.UUID) (core.Category, bool) {
	return s.stores.Categories.FindByID(id)
}

func (s *CategoryService) GetAllCategories() []core.Category {
	return s.stores.Categories.FindAll()
}

func (s *CategoryService) GetCategoriesByType(t core.OperationType) []core.Category {
	return s.stores.Categories.FindByType(t)
}

// DeleteCategory returns false while operations still reference the
// category (store-level integrity guard).
func (s *CategoryService) DeleteCategory(id uuid.UUID) bool {
	return s.stores.Categories.Delete(id)
}

// LoadDefaultCategories ensures the fixed income and expense catalogues
// exist. Safe to call repeatedly; existing names of the same type are
// never duplicated.
func (s *CategoryService) LoadDefaultCategories() {
	for _, name := range defaultIncomeCategories {
		s.ensureCategory(core.Income, name)
	}
	for _, name := range defaultExpenseCategories {
		s.ensureCategory(core.Expense, name)
	}
}

func (s *CategoryService) ensureCategory(t core.OperationType, name string) {
	for _, c := range s.stores.Categories.FindAll() {
		if c.Type == t && c.Name == name {
			return
		}
	}
	s.CreateCategory(t, name)
}
