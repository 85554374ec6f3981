// Package classify maps transaction text to a target account by scanning an
// ordered rule set and resolving the winning rule's account path.
package classify

import (
	"fmt"

	"github.com/recat-dev/recat/internal/accounts"
	"github.com/recat-dev/recat/internal/model"
	"github.com/recat-dev/recat/internal/rules"
)

// Match is the outcome of a successful classification: the resolved target
// account and the rule that selected it.
type Match struct {
	Account *model.Account
	Rule    rules.Rule
}

// Classify scans rs in order and returns the first rule matching searchText,
// with its account path resolved against root. ok is false when no rule
// matches; that is an expected outcome, not an error. A matching rule whose
// account path does not resolve is a configuration defect and returns an
// error.
func Classify(searchText string, rs *rules.RuleSet, root *model.Account) (Match, bool, error) {
	rule, ok := rs.Match(searchText)
	if !ok {
		return Match{}, false, nil
	}

	acct, err := accounts.Resolve(root, accounts.SplitPath(rule.Account))
	if err != nil {
		return Match{}, false, fmt.Errorf("rule line %d (pattern %q): %w", rule.Line, rule.Pattern.String(), err)
	}
	return Match{Account: acct, Rule: rule}, true, nil
}
