// Package export writes and reads ledger snapshots as CSV, JSON or
// YAML files, one file per entity kind. Rows reference accounts and
// categories by name so exported files stay readable and portable
// across ledger instances with different ids.
package export

// AccountRow is the neutral export record for an account.
type AccountRow struct {
	Name    string `json:"name" yaml:"name"`
	Balance string `json:"balance" yaml:"balance"`
}

// CategoryRow is the neutral export record for a category.
type CategoryRow struct {
	Type string `json:"type" yaml:"type"` // INCOME or EXPENSE
	Name string `json:"name" yaml:"name"`
}

// OperationRow is the neutral record for an operation, used for both
// export and import.
type OperationRow struct {
	Type        string `json:"type" yaml:"type"`     // INCOME or EXPENSE
	Amount      string `json:"amount" yaml:"amount"` // "123.45"
	Date        string `json:"date" yaml:"date"`     // "2006-01-02"
	Account     string `json:"account" yaml:"account"`
	Category    string `json:"category" yaml:"category"`
	Description string `json:"description" yaml:"description"`
}

// Encoder is the strategy for rendering rows in one output format.
type Encoder interface {
	Extension() string
	EncodeAccounts([]AccountRow) ([]byte, error)
	EncodeCategories([]CategoryRow) ([]byte, error)
	EncodeOperations([]OperationRow) ([]byte, error)
}

const dateLayout = "2006-01-02"
