package menu

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fintrack/internal/core"

	"github.com/shopspring/decimal"
)

func (m *Menu) readLine(prompt string) (string, error) {
	fmt.Fprint(m.out, prompt)
	line, err := m.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (m *Menu) readIndex(count int) (int, error) {
	s, err := m.readLine(fmt.Sprintf("Choice (0..%d): ", count))
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > count {
		return 0, fmt.Errorf("enter a number between 0 and %d", count)
	}
	return n, nil
}

func (m *Menu) readAmount(prompt string) (decimal.Decimal, error) {
	s, err := m.readLine(prompt)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return core.ParseAmount(s)
}

// readDate reads a YYYY-MM-DD date; empty input means today.
func (m *Menu) readDate(prompt string) (time.Time, error) {
	s, err := m.readLine(prompt + " (YYYY-MM-DD, empty = today): ")
	if err != nil {
		return time.Time{}, err
	}
	if s == "" {
		return time.Now(), nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return d, nil
}

// chooseAccount lists the accounts and returns the selected one.
func (m *Menu) chooseAccount() (core.Account, error) {
	accounts := m.accounts.GetAllAccounts()
	if len(accounts) == 0 {
		return core.Account{}, fmt.Errorf("no accounts yet, create one first")
	}
	fmt.Fprintln(m.out, "Accounts:")
	for i, acc := range accounts {
		fmt.Fprintf(m.out, "%d) %s (%s)\n", i+1, acc.Name, acc.Balance.StringFixed(2))
	}
	idx, err := m.readIndex(len(accounts))
	if err != nil {
		return core.Account{}, err
	}
	if idx == 0 {
		return core.Account{}, fmt.Errorf("cancelled")
	}
	return accounts[idx-1], nil
}

// chooseCategory lists the categories of one type and returns the
// selected one.
func (m *Menu) chooseCategory(t core.OperationType) (core.Category, error) {
	categories := m.categories.GetCategoriesByType(t)
	if len(categories) == 0 {
		return core.Category{}, fmt.Errorf("no %s categories yet, create one first", strings.ToLower(string(t)))
	}
	fmt.Fprintln(m.out, "Categories:")
	for i, cat := range categories {
		fmt.Fprintf(m.out, "%d) %s\n", i+1, cat.Name)
	}
	idx, err := m.readIndex(len(categories))
	if err != nil {
		return core.Category{}, err
	}
	if idx == 0 {
		return core.Category{}, fmt.Errorf("cancelled")
	}
	return categories[idx-1], nil
}

func (m *Menu) readOperationType() (core.OperationType, error) {
	s, err := m.readLine("Type (income/expense): ")
	if err != nil {
		return "", err
	}
	switch strings.ToLower(s) {
	case "income", "i":
		return core.Income, nil
	case "expense", "e":
		return core.Expense, nil
	default:
		return "", fmt.Errorf("unknown type %q", s)
	}
}
