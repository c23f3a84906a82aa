package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"fintrack/internal/log"
	"fintrack/internal/services"

	"github.com/google/uuid"
)

const unknownName = "Unknown"

// Exporter renders the full ledger through the services and writes one
// file per entity kind: <base>_accounts, <base>_categories and
// <base>_operations, with the encoder's extension.
type Exporter struct {
	accounts   *services.AccountService
	categories *services.CategoryService
	operations *services.OperationService
	logger     *log.Logger
}

func NewExporter(accounts *services.AccountService, categories *services.CategoryService, operations *services.OperationService, logger *log.Logger) *Exporter {
	return &Exporter{
		accounts:   accounts,
		categories: categories,
		operations: operations,
		logger:     logger.WithComponent(log.ComponentExport),
	}
}

// Export writes the three entity files into dir and returns their paths.
func (e *Exporter) Export(dir, base string, enc Encoder) ([]string, error) {
	files := []struct {
		kind   string
		encode func() ([]byte, error)
	}{
		{"accounts", func() ([]byte, error) { return enc.EncodeAccounts(e.accountRows()) }},
		{"categories", func() ([]byte, error) { return enc.EncodeCategories(e.categoryRows()) }},
		{"operations", func() ([]byte, error) { return enc.EncodeOperations(e.operationRows()) }},
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		data, err := f.encode()
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", f.kind, err)
		}
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.%s", base, f.kind, enc.Extension()))
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", f.kind, err)
		}
		e.logger.Info("exported ledger file",
			log.FieldFile, path,
			log.FieldFormat, enc.Extension())
		paths = append(paths, path)
	}
	return paths, nil
}

func (e *Exporter) accountRows() []AccountRow {
	accounts := e.accounts.GetAllAccounts()
	rows := make([]AccountRow, 0, len(accounts))
	for _, acc := range accounts {
		rows = append(rows, AccountRow{
			Name:    acc.Name,
			Balance: acc.Balance.StringFixed(2),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows
}

func (e *Exporter) categoryRows() []CategoryRow {
	categories := e.categories.GetAllCategories()
	rows := make([]CategoryRow, 0, len(categories))
	for _, cat := range categories {
		rows = append(rows, CategoryRow{
			Type: string(cat.Type),
			Name: cat.Name,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Type != rows[j].Type {
			return rows[i].Type < rows[j].Type
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

func (e *Exporter) operationRows() []OperationRow {
	ops := e.operations.GetAllOperations()

	accountNames := map[uuid.UUID]string{}
	accountName := func(id uuid.UUID) string {
		if name, ok := accountNames[id]; ok {
			return name
		}
		name := unknownName
		if acc, ok := e.accounts.GetAccount(id); ok {
			name = acc.Name
		}
		accountNames[id] = name
		return name
	}

	categoryNames := map[uuid.UUID]string{}
	categoryName := func(id uuid.UUID) string {
		if name, ok := categoryNames[id]; ok {
			return name
		}
		name := unknownName
		if cat, ok := e.categories.GetCategory(id); ok {
			name = cat.Name
		}
		categoryNames[id] = name
		return name
	}

	rows := make([]OperationRow, 0, len(ops))
	for _, op := range ops {
		rows = append(rows, OperationRow{
			Type:        string(op.Type),
			Amount:      op.Amount.StringFixed(2),
			Date:        op.Date.Format(dateLayout),
			Account:     accountName(op.AccountID),
			Category:    categoryName(op.CategoryID),
			Description: op.Description,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		return rows[i].Amount < rows[j].Amount
	})
	return rows
}
