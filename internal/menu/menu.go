// Package menu drives the ledger from an interactive console session.
// Input and output are injected so the loop is testable with scripted
// sessions.
package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"fintrack/internal/export"
	"fintrack/internal/log"
	"fintrack/internal/services"
)

type action struct {
	title string
	run   func(ctx context.Context) error
}

// Menu is the interactive console loop over the ledger services.
type Menu struct {
	in  *bufio.Reader
	out io.Writer

	accounts   *services.AccountService
	categories *services.CategoryService
	operations *services.OperationService
	analytics  *services.AnalyticsService
	exporter   *export.Exporter
	loader     *export.Loader
	exportDir  string
	logger     *log.Logger

	actions []action
}

type Deps struct {
	Accounts   *services.AccountService
	Categories *services.CategoryService
	Operations *services.OperationService
	Analytics  *services.AnalyticsService
	Exporter   *export.Exporter
	Loader     *export.Loader
	ExportDir  string
	Logger     *log.Logger
}

func New(in io.Reader, out io.Writer, deps Deps) *Menu {
	m := &Menu{
		in:         bufio.NewReader(in),
		out:        out,
		accounts:   deps.Accounts,
		categories: deps.Categories,
		operations: deps.Operations,
		analytics:  deps.Analytics,
		exporter:   deps.Exporter,
		loader:     deps.Loader,
		exportDir:  deps.ExportDir,
		logger:     deps.Logger.WithComponent(log.ComponentMenu),
	}

	m.actions = []action{
		{"Create account", m.actionCreateAccount},
		{"List accounts", m.actionListAccounts},
		{"Delete account", m.actionDeleteAccount},
		{"Create category", m.actionCreateCategory},
		{"List categories", m.actionListCategories},
		{"Add income", m.actionAddIncome},
		{"Add expense", m.actionAddExpense},
		{"List operations", m.actionListOperations},
		{"Delete operation", m.actionDeleteOperation},
		{"Period report", m.actionReport},
		{"Category statistics", m.actionCategoryStatistics},
		{"Export ledger", m.actionExport},
		{"Import operations", m.actionImport},
	}
	return m
}

// Run loops until the user picks exit or the context is cancelled.
func (m *Menu) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		m.draw()
		idx, err := m.readIndex(len(m.actions))
		if err != nil {
			if err == io.EOF {
				return
			}
			fmt.Fprintln(m.out, "Invalid choice")
			continue
		}
		if idx == 0 {
			fmt.Fprintln(m.out, "Bye!")
			return
		}

		act := m.actions[idx-1]
		if err := act.run(ctx); err != nil {
			if err == io.EOF {
				return
			}
			fmt.Fprintln(m.out, "Error:", err)
			m.logger.Warn("menu action failed",
				"action", act.title,
				log.FieldError, err.Error())
		}
		fmt.Fprintln(m.out)
	}
}

func (m *Menu) draw() {
	fmt.Fprintln(m.out, "==== Finance Tracker ====")
	for i, act := range m.actions {
		fmt.Fprintf(m.out, "%d) %s\n", i+1, act.title)
	}
	fmt.Fprintln(m.out, "0) Exit")
}
