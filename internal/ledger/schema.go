package ledger

// Schema defines the store's tables. GUID-keyed, one row per account,
// transaction, and split; amounts are decimal strings.
const Schema = `
CREATE TABLE IF NOT EXISTS accounts (
	guid         TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	account_type TEXT NOT NULL,
	parent_guid  TEXT REFERENCES accounts(guid)
);

CREATE TABLE IF NOT EXISTS transactions (
	guid        TEXT PRIMARY KEY,
	post_date   TEXT NOT NULL,
	description TEXT NOT NULL,
	memo        TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS splits (
	guid         TEXT PRIMARY KEY,
	tx_guid      TEXT NOT NULL REFERENCES transactions(guid),
	account_guid TEXT NOT NULL REFERENCES accounts(guid),
	amount       TEXT NOT NULL DEFAULT '0'
);

CREATE INDEX IF NOT EXISTS idx_splits_account ON splits(account_guid);
CREATE INDEX IF NOT EXISTS idx_splits_tx ON splits(tx_guid);
`

// postDateFormat is how transaction dates are stored.
const postDateFormat = "2006-01-02"
