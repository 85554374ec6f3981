// Package fixup drives one re-categorization pass over the transactions
// touching a source account: every split still sitting in an imbalance
// holding account is classified against the rule set and, on a match,
// reassigned.
package fixup

import (
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/recat-dev/recat/internal/auditlog"
	"github.com/recat-dev/recat/internal/classify"
	"github.com/recat-dev/recat/internal/ledger"
	"github.com/recat-dev/recat/internal/model"
	"github.com/recat-dev/recat/internal/rules"
)

// Options is the run configuration handed to the driver.
type Options struct {
	// UseMemo matches rules against the transaction memo instead of the
	// description.
	UseMemo bool
	// Imbalance decides which current account names are eligible for
	// reassignment. Unanchored search; splits whose account name does not
	// match are never touched.
	Imbalance *regexp.Regexp
}

// Stats are the per-run counters, incremented exactly once per split.
type Stats struct {
	Total     int // splits inspected
	Imbalance int // splits whose account matched the imbalance predicate
	Fixed     int // splits reassigned
}

// Run inspects every split of every transaction touching source and
// reassigns the ones that sit in an imbalance account and match a rule.
// Changes accumulate in the session; the caller decides whether to Save.
// Returns the counters and an audit entry per reassignment. A rule naming an
// unresolvable account aborts the run.
func Run(sess *ledger.Session, source *model.Account, rs *rules.RuleSet, opts Options) (Stats, []auditlog.Entry, error) {
	var stats Stats
	var audit []auditlog.Entry

	txns, err := sess.TransactionsOf(source)
	if err != nil {
		return stats, nil, err
	}

	now := time.Now()
	for _, txn := range txns {
		searchText := txn.Description
		if opts.UseMemo {
			searchText = txn.Memo
		}
		slog.Debug("inspecting transaction",
			"date", txn.Date.Format("2006-01-02"),
			"description", txn.Description,
			"splits", len(txn.Splits))

		// Every split of the transaction is a candidate, not just the one
		// opposite the source account; imports can produce multi-split
		// transactions with several imbalance legs.
		for _, sp := range txn.Splits {
			stats.Total++
			current := sp.Account
			if !opts.Imbalance.MatchString(current.Name) {
				continue
			}
			stats.Imbalance++

			match, ok, err := classify.Classify(searchText, rs, sess.Root())
			if err != nil {
				return stats, audit, fmt.Errorf("classifying %q: %w", searchText, err)
			}
			if !ok {
				// No applicable rule; leave the split alone.
				continue
			}

			sess.SetAccount(sp, match.Account)
			stats.Fixed++
			slog.Info("reassigned split",
				"description", txn.Description,
				"from", current.FullName(),
				"to", match.Account.FullName())
			audit = append(audit, auditlog.Entry{
				Timestamp:   now,
				Date:        txn.Date,
				Description: txn.Description,
				FromAccount: current.FullName(),
				ToAccount:   match.Account.FullName(),
				Pattern:     match.Rule.Pattern.String(),
			})
		}
	}

	return stats, audit, nil
}
