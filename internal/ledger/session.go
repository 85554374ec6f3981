// Package ledger provides a session against a SQLite ledger store: a single
// account hierarchy plus the transactions and splits recorded under it. The
// session is single-writer and not safe for concurrent use.
package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/shopspring/decimal"

	"github.com/recat-dev/recat/internal/model"
)

// ErrReadOnly is returned by mutating calls on a session opened with the
// no-persist flag.
var ErrReadOnly = errors.New("ledger: session is read-only")

// Session is an open handle on a ledger store. The account tree is loaded
// eagerly at open; transactions are loaded on demand. Reassignments
// accumulate in memory until Save.
type Session struct {
	db       *sql.DB
	path     string
	readOnly bool

	root   *model.Account
	byGUID map[string]*model.Account

	dirty map[string]*model.Split // split GUID -> split with a changed account
}

// Create initializes a brand-new store at path (schema plus root account)
// and returns an open writable session for it.
func Create(path string) (*Session, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	root := &model.Account{GUID: uuid.NewString(), Name: "Root", Type: model.AccountTypeRoot}
	if _, err := db.Exec(
		`INSERT INTO accounts (guid, name, account_type, parent_guid) VALUES (?, ?, ?, NULL)`,
		root.GUID, root.Name, string(root.Type),
	); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating root account: %w", err)
	}

	return &Session{
		db:     db,
		path:   path,
		root:   root,
		byGUID: map[string]*model.Account{root.GUID: root},
		dirty:  make(map[string]*model.Split),
	}, nil
}

// Open opens an existing store. With readOnly set, Save becomes a no-op and
// CreateAccount/AddTransaction are rejected; in-memory reassignment via
// SetAccount still works, so a dry run behaves identically up to persistence.
func Open(path string, readOnly bool) (*Session, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}

	s := &Session{
		db:       db,
		path:     path,
		readOnly: readOnly,
		dirty:    make(map[string]*model.Split),
	}
	if err := s.loadAccounts(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening store %s: %w", path, err)
	}
	return db, nil
}

// loadAccounts reads the whole account table and links the tree in memory.
func (s *Session) loadAccounts() error {
	rows, err := s.db.Query(`SELECT guid, name, account_type, parent_guid FROM accounts`)
	if err != nil {
		return fmt.Errorf("reading accounts: %w", err)
	}
	defer rows.Close()

	type row struct {
		acct   *model.Account
		parent sql.NullString
	}
	var all []row
	byGUID := make(map[string]*model.Account)
	for rows.Next() {
		var guid, name, typ string
		var parent sql.NullString
		if err := rows.Scan(&guid, &name, &typ, &parent); err != nil {
			return fmt.Errorf("scanning account: %w", err)
		}
		a := &model.Account{GUID: guid, Name: name, Type: model.AccountType(typ)}
		byGUID[guid] = a
		all = append(all, row{acct: a, parent: parent})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("reading accounts: %w", err)
	}

	var root *model.Account
	for _, r := range all {
		if !r.parent.Valid {
			if root != nil {
				return fmt.Errorf("store %s has multiple root accounts", s.path)
			}
			root = r.acct
			continue
		}
		p, ok := byGUID[r.parent.String]
		if !ok {
			return fmt.Errorf("account %q references missing parent %s", r.acct.Name, r.parent.String)
		}
		p.AddChild(r.acct)
	}
	if root == nil {
		return fmt.Errorf("store %s has no root account (not a ledger store?)", s.path)
	}

	s.root = root
	s.byGUID = byGUID
	return nil
}

// Root returns the top of the account tree.
func (s *Session) Root() *model.Account {
	return s.root
}

// TransactionsOf returns every transaction with at least one split assigned
// to acct, ordered by post date then GUID, each with all of its splits
// attached (not just the ones touching acct).
func (s *Session) TransactionsOf(acct *model.Account) ([]*model.Transaction, error) {
	rows, err := s.db.Query(`
		SELECT t.guid, t.post_date, t.description, t.memo
		FROM transactions t
		WHERE t.guid IN (SELECT tx_guid FROM splits WHERE account_guid = ?)
		ORDER BY t.post_date, t.guid`, acct.GUID)
	if err != nil {
		return nil, fmt.Errorf("reading transactions of %s: %w", acct.FullName(), err)
	}
	defer rows.Close()

	var txns []*model.Transaction
	for rows.Next() {
		var guid, postDate, desc, memo string
		if err := rows.Scan(&guid, &postDate, &desc, &memo); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		date, err := time.Parse(postDateFormat, postDate)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: parsing post date %q: %w", guid, postDate, err)
		}
		txns = append(txns, &model.Transaction{GUID: guid, Date: date, Description: desc, Memo: memo})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading transactions of %s: %w", acct.FullName(), err)
	}

	for _, txn := range txns {
		if err := s.loadSplits(txn); err != nil {
			return nil, err
		}
	}
	return txns, nil
}

func (s *Session) loadSplits(txn *model.Transaction) error {
	rows, err := s.db.Query(
		`SELECT guid, account_guid, amount FROM splits WHERE tx_guid = ? ORDER BY rowid`, txn.GUID)
	if err != nil {
		return fmt.Errorf("reading splits of transaction %s: %w", txn.GUID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var guid, acctGUID, amount string
		if err := rows.Scan(&guid, &acctGUID, &amount); err != nil {
			return fmt.Errorf("scanning split: %w", err)
		}
		acct, ok := s.byGUID[acctGUID]
		if !ok {
			return fmt.Errorf("split %s references missing account %s", guid, acctGUID)
		}
		amt, err := decimal.NewFromString(amount)
		if err != nil {
			return fmt.Errorf("split %s: parsing amount %q: %w", guid, amount, err)
		}
		sp := &model.Split{GUID: guid, Account: acct, Transaction: txn, Amount: amt}
		txn.Splits = append(txn.Splits, sp)
	}
	return rows.Err()
}

// SetAccount reassigns a split's account in memory. The change reaches the
// store only on the next successful Save.
func (s *Session) SetAccount(sp *model.Split, target *model.Account) {
	sp.Account = target
	s.dirty[sp.GUID] = sp
}

// Dirty returns the number of pending reassignments.
func (s *Session) Dirty() int {
	return len(s.dirty)
}

// CreateAccount inserts a new account under parent and links it into the
// in-memory tree.
func (s *Session) CreateAccount(parent *model.Account, name string, typ model.AccountType) (*model.Account, error) {
	if s.readOnly {
		return nil, ErrReadOnly
	}
	a := &model.Account{GUID: uuid.NewString(), Name: name, Type: typ}
	if _, err := s.db.Exec(
		`INSERT INTO accounts (guid, name, account_type, parent_guid) VALUES (?, ?, ?, ?)`,
		a.GUID, a.Name, string(a.Type), parent.GUID,
	); err != nil {
		return nil, fmt.Errorf("creating account %q: %w", name, err)
	}
	parent.AddChild(a)
	s.byGUID[a.GUID] = a
	return a, nil
}

// Leg describes one split of a transaction to be added.
type Leg struct {
	Account *model.Account
	Amount  decimal.Decimal
}

// AddTransaction inserts a transaction and its splits. No balancing check is
// performed; the store records whatever it is given.
func (s *Session) AddTransaction(date time.Time, description, memo string, legs []Leg) (*model.Transaction, error) {
	if s.readOnly {
		return nil, ErrReadOnly
	}
	if len(legs) == 0 {
		return nil, fmt.Errorf("transaction %q has no splits", description)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	txn := &model.Transaction{
		GUID:        uuid.NewString(),
		Date:        date,
		Description: description,
		Memo:        memo,
	}
	if _, err := tx.Exec(
		`INSERT INTO transactions (guid, post_date, description, memo) VALUES (?, ?, ?, ?)`,
		txn.GUID, date.Format(postDateFormat), description, memo,
	); err != nil {
		return nil, fmt.Errorf("inserting transaction %q: %w", description, err)
	}
	for _, leg := range legs {
		sp := &model.Split{
			GUID:        uuid.NewString(),
			Account:     leg.Account,
			Transaction: txn,
			Amount:      leg.Amount,
		}
		if _, err := tx.Exec(
			`INSERT INTO splits (guid, tx_guid, account_guid, amount) VALUES (?, ?, ?, ?)`,
			sp.GUID, txn.GUID, leg.Account.GUID, leg.Amount.String(),
		); err != nil {
			return nil, fmt.Errorf("inserting split for %q: %w", description, err)
		}
		txn.Splits = append(txn.Splits, sp)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction %q: %w", description, err)
	}
	return txn, nil
}

// Save persists pending reassignments in a single SQL transaction. On a
// read-only session it is a silent no-op and pending changes stay in memory.
func (s *Session) Save() error {
	if s.readOnly || len(s.dirty) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning save: %w", err)
	}
	defer tx.Rollback()

	for guid, sp := range s.dirty {
		if _, err := tx.Exec(
			`UPDATE splits SET account_guid = ? WHERE guid = ?`, sp.Account.GUID, guid,
		); err != nil {
			return fmt.Errorf("saving split %s: %w", guid, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save: %w", err)
	}

	s.dirty = make(map[string]*model.Split)
	return nil
}

// Close releases the underlying database handle. Pending unsaved changes are
// discarded.
func (s *Session) Close() error {
	return s.db.Close()
}
