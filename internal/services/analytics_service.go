package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"fintrack/internal/core"

	"github.com/shopspring/decimal"
)

// unknownCategoryLabel is used when a statistic references a category id
// that no longer resolves.
const unknownCategoryLabel = "Unknown"

const topOperationsLimit = 10

// AnalyticsService is the read-only aggregation layer. It never mutates
// anything; everything it reports is recomputed from the operation log.
type AnalyticsService struct {
	operations *OperationService
	categories *CategoryService
	accounts   *AccountService
}

func NewAnalyticsService(operations *OperationService, categories *CategoryService, accounts *AccountService) *AnalyticsService {
	return &AnalyticsService{operations: operations, categories: categories, accounts: accounts}
}

// Snapshot is the full-period aggregate. Category maps only carry
// positive totals; account balances only nonzero period nets.
type Snapshot struct {
	Start             time.Time
	End               time.Time
	TotalIncome       decimal.Decimal
	TotalExpense      decimal.Decimal
	Balance           decimal.Decimal
	IncomeByCategory  map[string]decimal.Decimal
	ExpenseByCategory map[string]decimal.Decimal
	AccountBalances   map[string]decimal.Decimal
	TopOperations     []core.Operation
}

func (s *AnalyticsService) Snapshot(start, end time.Time) Snapshot {
	snap := Snapshot{
		Start:             start,
		End:               end,
		TotalIncome:       s.operations.GetTotalIncome(start, end),
		TotalExpense:      s.operations.GetTotalExpense(start, end),
		Balance:           s.operations.GetBalanceForPeriod(start, end),
		IncomeByCategory:  s.byCategory(core.Income, start, end),
		ExpenseByCategory: s.byCategory(core.Expense, start, end),
		AccountBalances:   s.accountNets(start, end),
		TopOperations:     s.topOperations(start, end),
	}
	return snap
}

func (s *AnalyticsService) byCategory(t core.OperationType, start, end time.Time) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, cat := range s.categories.GetCategoriesByType(t) {
		total := decimal.Zero
		for _, op := range s.operations.GetOperationsByCategory(cat.ID) {
			if inRange(op.Date, start, end) {
				total = total.Add(op.Amount)
			}
		}
		if total.IsPositive() {
			out[cat.Name] = total
		}
	}
	return out
}

func (s *AnalyticsService) accountNets(start, end time.Time) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, acc := range s.accounts.GetAllAccounts() {
		net := decimal.Zero
		for _, op := range s.operations.GetOperationsByAccount(acc.ID) {
			if inRange(op.Date, start, end) {
				net = net.Add(op.Signed())
			}
		}
		if !net.IsZero() {
			out[acc.Name] = net
		}
	}
	return out
}

// topOperations returns at most topOperationsLimit operations by amount
// descending. The sort is stable over the store's order, so ties keep
// an arbitrary but consistent ranking within one call.
func (s *AnalyticsService) topOperations(start, end time.Time) []core.Operation {
	ops := s.operations.GetOperationsByDateRange(start, end)
	sort.SliceStable(ops, func(i, j int) bool {
		return ops[i].Amount.GreaterThan(ops[j].Amount)
	})
	if len(ops) > topOperationsLimit {
		ops = ops[:topOperationsLimit]
	}
	return ops
}

// CategoryStatistics sums amounts per category of the given type across
// all time (not windowed), keyed by resolved category name. Ids that no
// longer resolve are grouped under the "Unknown" label.
func (s *AnalyticsService) CategoryStatistics(t core.OperationType) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, op := range s.operations.GetOperationsByType(t) {
		name := unknownCategoryLabel
		if cat, ok := s.categories.GetCategory(op.CategoryID); ok {
			name = cat.Name
		}
		totals[name] = totals[name].Add(op.Amount)
	}
	return totals
}

// Report renders the period snapshot as a fixed-format text block. Empty
// sections state "no data" instead of disappearing; map-backed sections
// are sorted by name so the output is deterministic.
func (s *AnalyticsService) Report(start, end time.Time) string {
	snap := s.Snapshot(start, end)

	var b strings.Builder
	b.WriteString("=== FINANCIAL REPORT ===\n")
	fmt.Fprintf(&b, "Period: %s - %s\n\n", start.Format("2006-01-02"), end.Format("2006-01-02"))

	b.WriteString("SUMMARY:\n")
	fmt.Fprintf(&b, "Total income: %s\n", snap.TotalIncome.StringFixed(2))
	fmt.Fprintf(&b, "Total expense: %s\n", snap.TotalExpense.StringFixed(2))
	fmt.Fprintf(&b, "Period balance: %s\n\n", snap.Balance.StringFixed(2))

	writeAmountSection(&b, "INCOME BY CATEGORY:", snap.IncomeByCategory)
	b.WriteString("\n")
	writeAmountSection(&b, "EXPENSE BY CATEGORY:", snap.ExpenseByCategory)
	b.WriteString("\n")
	writeAmountSection(&b, "ACCOUNT BALANCES:", snap.AccountBalances)

	b.WriteString("\nTOP OPERATIONS:\n")
	if len(snap.TopOperations) == 0 {
		b.WriteString("  no data\n")
	} else {
		for _, op := range snap.TopOperations {
			name := unknownCategoryLabel
			if cat, ok := s.categories.GetCategory(op.CategoryID); ok {
				name = cat.Name
			}
			fmt.Fprintf(&b, "  %s %s (%s) - %s\n",
				opTypeLabel(op.Type), op.Amount.StringFixed(2),
				op.Date.Format("02.01.2006"), name)
		}
	}

	return b.String()
}

func writeAmountSection(b *strings.Builder, header string, amounts map[string]decimal.Decimal) {
	b.WriteString(header + "\n")
	if len(amounts) == 0 {
		b.WriteString("  no data\n")
		return
	}
	names := make([]string, 0, len(amounts))
	for name := range amounts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(b, "  %s: %s\n", name, amounts[name].StringFixed(2))
	}
}

func opTypeLabel(t core.OperationType) string {
	if t == core.Income {
		return "Income"
	}
	return "Expense"
}

func inRange(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}
