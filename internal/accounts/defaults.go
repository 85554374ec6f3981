package accounts

import "github.com/recat-dev/recat/internal/model"

// Spec describes one account to create when bootstrapping a store.
// Path is colon-delimited; parents are created before children.
type Spec struct {
	Path string
	Type model.AccountType
}

// DefaultTree returns the skeleton chart of accounts for a fresh store,
// including the imbalance holding account for the given currency.
func DefaultTree(currency string) []Spec {
	return []Spec{
		{Path: "Assets", Type: model.AccountTypeAsset},
		{Path: "Assets:Checking", Type: model.AccountTypeAsset},
		{Path: "Assets:Savings", Type: model.AccountTypeAsset},
		{Path: "Liabilities", Type: model.AccountTypeLiability},
		{Path: "Liabilities:Credit Card", Type: model.AccountTypeLiability},
		{Path: "Equity", Type: model.AccountTypeEquity},
		{Path: "Equity:Opening Balances", Type: model.AccountTypeEquity},
		{Path: "Income", Type: model.AccountTypeIncome},
		{Path: "Income:Salary", Type: model.AccountTypeIncome},
		{Path: "Expenses", Type: model.AccountTypeExpense},
		{Path: "Expenses:Dining", Type: model.AccountTypeExpense},
		{Path: "Expenses:Groceries", Type: model.AccountTypeExpense},
		{Path: "Expenses:Transport", Type: model.AccountTypeExpense},
		{Path: "Expenses:Utilities", Type: model.AccountTypeExpense},
		{Path: "Imbalance-" + currency, Type: model.AccountTypeEquity},
	}
}
