package httpapi

import (
	"net/http"
	"sort"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/services"

	"github.com/shopspring/decimal"
)

type snapshotDTO struct {
	Start             string            `json:"start"`
	End               string            `json:"end"`
	TotalIncome       string            `json:"total_income"`
	TotalExpense      string            `json:"total_expense"`
	Balance           string            `json:"balance"`
	IncomeByCategory  map[string]string `json:"income_by_category"`
	ExpenseByCategory map[string]string `json:"expense_by_category"`
	AccountBalances   map[string]string `json:"account_balances"`
	TopOperations     []operationDTO    `json:"top_operations"`
}

func toSnapshotDTO(snap services.Snapshot) snapshotDTO {
	top := make([]operationDTO, 0, len(snap.TopOperations))
	for _, op := range snap.TopOperations {
		top = append(top, toOperationDTO(op))
	}
	return snapshotDTO{
		Start:             snap.Start.Format("2006-01-02"),
		End:               snap.End.Format("2006-01-02"),
		TotalIncome:       snap.TotalIncome.StringFixed(2),
		TotalExpense:      snap.TotalExpense.StringFixed(2),
		Balance:           snap.Balance.StringFixed(2),
		IncomeByCategory:  amountsToStrings(snap.IncomeByCategory),
		ExpenseByCategory: amountsToStrings(snap.ExpenseByCategory),
		AccountBalances:   amountsToStrings(snap.AccountBalances),
		TopOperations:     top,
	}
}

func amountsToStrings(in map[string]decimal.Decimal) map[string]string {
	out := make(map[string]string, len(in))
	for name, amount := range in {
		out[name] = amount.StringFixed(2)
	}
	return out
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	start, end, err := parsePeriod(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	key := periodCacheKey(start, end)
	snap, ok := s.snapshotCache.Get(key)
	if !ok {
		snap = s.analytics.Snapshot(start, end)
		s.snapshotCache.Set(key, snap)
	}
	NewResponse().JSON(toSnapshotDTO(snap)).Write(w)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	start, end, err := parsePeriod(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	key := periodCacheKey(start, end)
	report, ok := s.reportCache.Get(key)
	if !ok {
		report = s.analytics.Report(start, end)
		s.reportCache.Set(key, report)
	}
	NewResponse().
		Header("Content-Type", "text/plain; charset=utf-8").
		Text(report).
		Write(w)
}

func periodCacheKey(start, end time.Time) string {
	return start.Format(time.RFC3339Nano) + "|" + end.Format(time.RFC3339Nano)
}

type categoryStatDTO struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

func (s *Server) handleCategoryStatistics(w http.ResponseWriter, r *http.Request) {
	t := core.OperationType(r.URL.Query().Get("type"))
	if !t.Valid() {
		BadRequestError("type must be INCOME or EXPENSE").Write(w)
		return
	}

	stats := s.analytics.CategoryStatistics(t)
	dtos := make([]categoryStatDTO, 0, len(stats))
	for name, total := range stats {
		dtos = append(dtos, categoryStatDTO{Category: name, Total: total.StringFixed(2)})
	}
	sort.Slice(dtos, func(i, j int) bool { return dtos[i].Category < dtos[j].Category })
	NewResponse().JSON(dtos).Write(w)
}
