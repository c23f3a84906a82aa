package menu

import (
	"context"
	"fmt"
	"sort"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/export"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (m *Menu) actionCreateAccount(ctx context.Context) error {
	name, err := m.readLine("Account name: ")
	if err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("account name must not be empty")
	}
	acc := m.accounts.CreateAccount(name)
	fmt.Fprintf(m.out, "Account %q created (id %s)\n", acc.Name, acc.ID)
	return nil
}

func (m *Menu) actionListAccounts(ctx context.Context) error {
	accounts := m.accounts.GetAllAccounts()
	if len(accounts) == 0 {
		fmt.Fprintln(m.out, "No accounts")
		return nil
	}
	fmt.Fprintln(m.out, "=== Accounts ===")
	for _, acc := range accounts {
		fmt.Fprintf(m.out, "  %s: %s (%d operations)\n",
			acc.Name, acc.Balance.StringFixed(2), len(acc.Operations))
	}
	fmt.Fprintf(m.out, "Total: %s\n", m.accounts.CalculateTotalBalance().StringFixed(2))
	return nil
}

func (m *Menu) actionDeleteAccount(ctx context.Context) error {
	acc, err := m.chooseAccount()
	if err != nil {
		return err
	}
	if !m.accounts.DeleteAccount(acc.ID) {
		return fmt.Errorf("account %q still has operations, delete them first", acc.Name)
	}
	fmt.Fprintf(m.out, "Account %q deleted\n", acc.Name)
	return nil
}

func (m *Menu) actionCreateCategory(ctx context.Context) error {
	t, err := m.readOperationType()
	if err != nil {
		return err
	}
	name, err := m.readLine("Category name: ")
	if err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("category name must not be empty")
	}
	cat := m.categories.CreateCategory(t, name)
	fmt.Fprintf(m.out, "Category %q (%s) created\n", cat.Name, cat.Type)
	return nil
}

func (m *Menu) actionListCategories(ctx context.Context) error {
	categories := m.categories.GetAllCategories()
	if len(categories) == 0 {
		fmt.Fprintln(m.out, "No categories")
		return nil
	}
	fmt.Fprintln(m.out, "=== Categories ===")
	for _, t := range []core.OperationType{core.Income, core.Expense} {
		fmt.Fprintf(m.out, "%s:\n", t)
		for _, cat := range m.categories.GetCategoriesByType(t) {
			fmt.Fprintf(m.out, "  %s\n", cat.Name)
		}
	}
	return nil
}

func (m *Menu) actionAddIncome(ctx context.Context) error {
	return m.addOperation(ctx, core.Income, "Income amount (e.g. 1500.00): ")
}

func (m *Menu) actionAddExpense(ctx context.Context) error {
	return m.addOperation(ctx, core.Expense, "Expense amount (e.g. 250.55): ")
}

func (m *Menu) addOperation(ctx context.Context, t core.OperationType, amountPrompt string) error {
	acc, err := m.chooseAccount()
	if err != nil {
		return err
	}
	cat, err := m.chooseCategory(t)
	if err != nil {
		return err
	}
	amount, err := m.readAmount(amountPrompt)
	if err != nil {
		return err
	}
	date, err := m.readDate("Date")
	if err != nil {
		return err
	}
	description, err := m.readLine("Description (optional): ")
	if err != nil {
		return err
	}

	op, err := m.operations.CreateOperationAt(ctx, t, acc.ID, amount, cat.ID, description, date)
	if err != nil {
		return err
	}

	updated, _ := m.accounts.GetAccount(acc.ID)
	fmt.Fprintf(m.out, "%s of %s recorded, %s balance is now %s\n",
		opLabel(op.Type), op.Amount.StringFixed(2), acc.Name, updated.Balance.StringFixed(2))
	return nil
}

func (m *Menu) actionListOperations(ctx context.Context) error {
	ops := m.operations.GetAllOperations()
	if len(ops) == 0 {
		fmt.Fprintln(m.out, "No operations")
		return nil
	}
	fmt.Fprintln(m.out, "=== Operations ===")
	for i, op := range ops {
		fmt.Fprintf(m.out, "%d) %s %s (%s) %s - %s\n",
			i+1, opLabel(op.Type), op.Amount.StringFixed(2),
			op.Date.Format("2006-01-02"), m.categoryLabel(op.CategoryID), op.Description)
	}
	return nil
}

func (m *Menu) actionDeleteOperation(ctx context.Context) error {
	ops := m.operations.GetAllOperations()
	if len(ops) == 0 {
		return fmt.Errorf("no operations to delete")
	}
	fmt.Fprintln(m.out, "Operations:")
	for i, op := range ops {
		fmt.Fprintf(m.out, "%d) %s %s (%s) - %s\n",
			i+1, opLabel(op.Type), op.Amount.StringFixed(2),
			op.Date.Format("2006-01-02"), op.Description)
	}
	idx, err := m.readIndex(len(ops))
	if err != nil {
		return err
	}
	if idx == 0 {
		return fmt.Errorf("cancelled")
	}
	op := ops[idx-1]
	if !m.operations.DeleteOperation(ctx, op.ID) {
		return fmt.Errorf("operation already gone")
	}
	fmt.Fprintln(m.out, "Operation deleted, balance restored")
	return nil
}

func (m *Menu) actionReport(ctx context.Context) error {
	start, end, err := m.readPeriod()
	if err != nil {
		return err
	}
	fmt.Fprint(m.out, m.analytics.Report(start, end))
	return nil
}

func (m *Menu) actionCategoryStatistics(ctx context.Context) error {
	t, err := m.readOperationType()
	if err != nil {
		return err
	}
	stats := m.analytics.CategoryStatistics(t)
	if len(stats) == 0 {
		fmt.Fprintln(m.out, "No operations of this type")
		return nil
	}
	fmt.Fprintf(m.out, "=== %s by category ===\n", opLabel(t))
	for _, name := range sortedKeys(stats) {
		fmt.Fprintf(m.out, "  %s: %s\n", name, stats[name].StringFixed(2))
	}
	return nil
}

func (m *Menu) actionExport(ctx context.Context) error {
	format, err := m.readLine("Format (csv/json/yaml): ")
	if err != nil {
		return err
	}
	enc, err := export.EncoderFor(format)
	if err != nil {
		return err
	}
	paths, err := m.exporter.Export(m.exportDir, "ledger", enc)
	if err != nil {
		return err
	}
	fmt.Fprintln(m.out, "Exported:")
	for _, p := range paths {
		fmt.Fprintf(m.out, "  %s\n", p)
	}
	return nil
}

func (m *Menu) actionImport(ctx context.Context) error {
	format, err := m.readLine("Format (csv/json/yaml): ")
	if err != nil {
		return err
	}
	path, err := m.readLine("File path: ")
	if err != nil {
		return err
	}
	rows, err := export.ImportOperations(path, format)
	if err != nil {
		return err
	}
	imported, err := m.loader.LoadOperations(ctx, rows)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Imported %d of %d operations\n", imported, len(rows))
	return nil
}

// readPeriod reads a start and end date, defaulting to the last 30 days.
func (m *Menu) readPeriod() (start, end time.Time, err error) {
	now := time.Now()
	s, err := m.readLine("Start date (YYYY-MM-DD, empty = 30 days ago): ")
	if err != nil {
		return start, end, err
	}
	if s == "" {
		start = now.AddDate(0, 0, -30)
	} else if start, err = time.Parse("2006-01-02", s); err != nil {
		return start, end, fmt.Errorf("invalid date %q", s)
	}

	s, err = m.readLine("End date (YYYY-MM-DD, empty = today): ")
	if err != nil {
		return start, end, err
	}
	if s == "" {
		end = now
	} else if end, err = time.Parse("2006-01-02", s); err != nil {
		return start, end, fmt.Errorf("invalid date %q", s)
	}
	return start, end, nil
}

func (m *Menu) categoryLabel(id uuid.UUID) string {
	if cat, ok := m.categories.GetCategory(id); ok {
		return cat.Name
	}
	return "Unknown"
}

func sortedKeys(amounts map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(amounts))
	for k := range amounts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func opLabel(t core.OperationType) string {
	if t == core.Income {
		return "Income"
	}
	return "Expense"
}
