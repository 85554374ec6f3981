package model

import "strings"

// AccountType classifies accounts in the hierarchy.
type AccountType string

const (
	AccountTypeRoot      AccountType = "root"
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeIncome    AccountType = "income"
	AccountTypeExpense   AccountType = "expense"
)

// Account is one node in the ledger's account tree. The tree is rooted at a
// single top-level account whose name never appears in full paths.
type Account struct {
	GUID     string
	Name     string
	Type     AccountType
	Parent   *Account
	Children []*Account
}

// AddChild links c under a. Child order is insertion order.
func (a *Account) AddChild(c *Account) {
	c.Parent = a
	a.Children = append(a.Children, c)
}

// Child returns the direct child with the given name, or nil. Name matching
// is exact and case-sensitive.
func (a *Account) Child(name string) *Account {
	for _, c := range a.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// IsRoot reports whether a is the top of the tree.
func (a *Account) IsRoot() bool {
	return a.Parent == nil
}

// FullName returns the colon-joined path from (but excluding) the root,
// e.g. "Expenses:Dining". The root itself yields "".
func (a *Account) FullName() string {
	if a.IsRoot() {
		return ""
	}
	var segments []string
	for n := a; n != nil && !n.IsRoot(); n = n.Parent {
		segments = append(segments, n.Name)
	}
	// Collected leaf-first; reverse.
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, ":")
}
