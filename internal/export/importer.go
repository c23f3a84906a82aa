package export

import (
	"context"
	"fmt"
	"os"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/services"

	"github.com/google/uuid"
)

// parser is the format-specific step of the import template: raw bytes
// in, neutral rows out.
type parser interface {
	parse(data []byte) ([]OperationRow, error)
}

// BaseImporter implements the shared import skeleton: read the file,
// hand the bytes to the format parser, return the rows. Converting rows
// into ledger operations is the Loader's job.
type BaseImporter struct {
	parser parser
}

func (b BaseImporter) Import(path string) ([]OperationRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return b.parser.parse(data)
}

// Loader turns neutral operation rows into ledger operations. Accounts
// and categories are resolved by name and created when missing, and
// every operation goes through the OperationService so balances move
// with the rows. Malformed rows are skipped, not fatal.
type Loader struct {
	accounts   *services.AccountService
	categories *services.CategoryService
	operations *services.OperationService
	logger     *log.Logger
}

func NewLoader(accounts *services.AccountService, categories *services.CategoryService, operations *services.OperationService, logger *log.Logger) *Loader {
	return &Loader{
		accounts:   accounts,
		categories: categories,
		operations: operations,
		logger:     logger.WithComponent(log.ComponentExport),
	}
}

// LoadOperations applies the rows and returns how many were imported.
func (l *Loader) LoadOperations(ctx context.Context, rows []OperationRow) (int, error) {
	imported := 0
	for i, row := range rows {
		op, err := l.loadRow(ctx, row)
		if err != nil {
			l.logger.Warn("skipping import row",
				"row", i+1,
				log.FieldError, err.Error())
			continue
		}
		l.logger.Debug("imported operation",
			log.FieldOperationID, op.ID.String(),
			log.FieldOperationType, string(op.Type),
			log.FieldAmount, op.Amount.StringFixed(2))
		imported++
	}
	l.logger.Info("import finished",
		log.FieldCount, imported,
		"skipped", len(rows)-imported)
	return imported, nil
}

func (l *Loader) loadRow(ctx context.Context, row OperationRow) (core.Operation, error) {
	t := core.OperationType(row.Type)
	if !t.Valid() {
		return core.Operation{}, fmt.Errorf("unknown operation type %q", row.Type)
	}
	amount, err := core.ParseAmount(row.Amount)
	if err != nil {
		return core.Operation{}, fmt.Errorf("amount %q: %w", row.Amount, err)
	}
	date, err := time.Parse(dateLayout, row.Date)
	if err != nil {
		return core.Operation{}, fmt.Errorf("date %q: %w", row.Date, err)
	}
	if row.Account == "" {
		return core.Operation{}, fmt.Errorf("empty account name")
	}
	if row.Category == "" {
		return core.Operation{}, fmt.Errorf("empty category name")
	}

	accountID := l.resolveAccount(row.Account)
	categoryID := l.resolveCategory(t, row.Category)

	return l.operations.CreateOperationAt(ctx, t, accountID, amount, categoryID, row.Description, date)
}

func (l *Loader) resolveAccount(name string) uuid.UUID {
	for _, acc := range l.accounts.GetAllAccounts() {
		if acc.Name == name {
			return acc.ID
		}
	}
	return l.accounts.CreateAccount(name).ID
}

func (l *Loader) resolveCategory(t core.OperationType, name string) uuid.UUID {
	for _, cat := range l.categories.GetCategoriesByType(t) {
		if cat.Name == name {
			return cat.ID
		}
	}
	return l.categories.CreateCategory(t, name).ID
}
