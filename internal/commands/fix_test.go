package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recat-dev/recat/internal/accounts"
	"github.com/recat-dev/recat/internal/auditlog"
	"github.com/recat-dev/recat/internal/config"
	"github.com/recat-dev/recat/internal/ledger"
	"github.com/recat-dev/recat/internal/model"
)

func writeRules(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.txt")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func seedStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "books.db")
	sess, err := ledger.Create(path)
	require.NoError(t, err)
	defer sess.Close()

	liabilities, err := sess.CreateAccount(sess.Root(), "Liabilities", model.AccountTypeLiability)
	require.NoError(t, err)
	card, err := sess.CreateAccount(liabilities, "Credit Card", model.AccountTypeLiability)
	require.NoError(t, err)
	imbalance, err := sess.CreateAccount(sess.Root(), "Imbalance-USD", model.AccountTypeEquity)
	require.NoError(t, err)
	expenses, err := sess.CreateAccount(sess.Root(), "Expenses", model.AccountTypeExpense)
	require.NoError(t, err)
	_, err = sess.CreateAccount(expenses, "Dining", model.AccountTypeExpense)
	require.NoError(t, err)

	amount := decimal.NewFromInt(25)
	_, err = sess.AddTransaction(
		time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), "PIZZA PALACE", "", []ledger.Leg{
			{Account: card, Amount: amount.Neg()},
			{Account: imbalance, Amount: amount},
		})
	require.NoError(t, err)
	return path
}

func imbalanceSplitAccount(t *testing.T, storePath string) string {
	t.Helper()
	sess, err := ledger.Open(storePath, true)
	require.NoError(t, err)
	defer sess.Close()

	card, err := accounts.Resolve(sess.Root(), []string{"Liabilities", "Credit Card"})
	require.NoError(t, err)
	txns, err := sess.TransactionsOf(card)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	return txns[0].Splits[1].Account.FullName()
}

func TestRunFixPersists(t *testing.T) {
	store := seedStore(t)
	rules := writeRules(t, "Expenses:Dining ^PIZZA\n")
	audit := filepath.Join(t.TempDir(), "audit.csv")

	cfg := config.Default()
	cfg.AuditLog = audit
	require.NoError(t, runFix("Liabilities:Credit Card", rules, store, cfg, false, true))

	assert.Equal(t, "Expenses:Dining", imbalanceSplitAccount(t, store))

	entries, err := auditlog.Read(audit)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "PIZZA PALACE", entries[0].Description)
}

func TestRunFixDryRun(t *testing.T) {
	store := seedStore(t)
	rules := writeRules(t, "Expenses:Dining ^PIZZA\n")
	audit := filepath.Join(t.TempDir(), "audit.csv")

	cfg := config.Default()
	cfg.AuditLog = audit
	require.NoError(t, runFix("Liabilities:Credit Card", rules, store, cfg, true, true))

	assert.Equal(t, "Imbalance-USD", imbalanceSplitAccount(t, store),
		"dry run leaves the stored state unchanged")

	_, err := os.Stat(audit)
	assert.True(t, os.IsNotExist(err), "dry run writes no audit entries")
}

func TestRunFixNoMatchesIsNotAnError(t *testing.T) {
	store := seedStore(t)
	rules := writeRules(t, "Expenses:Dining ^SUSHI\n")

	require.NoError(t, runFix("Liabilities:Credit Card", rules, store, config.Default(), false, true))
	assert.Equal(t, "Imbalance-USD", imbalanceSplitAccount(t, store))
}

func TestRunFixBadStartingAccount(t *testing.T) {
	store := seedStore(t)
	rules := writeRules(t, "Expenses:Dining ^PIZZA\n")

	err := runFix("Liabilities:NoSuchCard", rules, store, config.Default(), false, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Liabilities:NoSuchCard")
}

func TestRunFixBadRuleAccount(t *testing.T) {
	store := seedStore(t)
	rules := writeRules(t, "Expenses:NoSuchSub ^PIZZA\n")

	err := runFix("Liabilities:Credit Card", rules, store, config.Default(), false, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expenses:NoSuchSub")

	assert.Equal(t, "Imbalance-USD", imbalanceSplitAccount(t, store),
		"nothing persisted after a fatal classification error")
}

func TestRunFixBadImbalancePattern(t *testing.T) {
	store := seedStore(t)
	rules := writeRules(t, "Expenses:Dining ^PIZZA\n")

	cfg := config.Default()
	cfg.ImbalancePattern = "[unclosed"
	err := runFix("Liabilities:Credit Card", rules, store, cfg, false, true)
	require.Error(t, err)
}

func TestRunCheck(t *testing.T) {
	store := seedStore(t)

	good := writeRules(t, "Expenses:Dining ^PIZZA\n")
	require.NoError(t, runCheck(good, store))

	bad := writeRules(t, "Expenses:Dining ^PIZZA\nExpenses:NoSuchSub MART\n")
	err := runCheck(bad, store)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 rules")
}

func TestRunInit(t *testing.T) {
	store := filepath.Join(t.TempDir(), "fresh.db")
	require.NoError(t, runInit(store, "EUR"))

	sess, err := ledger.Open(store, true)
	require.NoError(t, err)
	defer sess.Close()

	_, err = accounts.Resolve(sess.Root(), []string{"Imbalance-EUR"})
	require.NoError(t, err)
	_, err = accounts.Resolve(sess.Root(), []string{"Expenses", "Dining"})
	require.NoError(t, err)

	assert.Error(t, runInit(store, "EUR"), "refuses to clobber an existing store")
}
