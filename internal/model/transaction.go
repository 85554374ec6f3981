package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction groups the splits that record one financial event. Its text
// fields are read-only matching input for the categorizer.
type Transaction struct {
	GUID        string
	Date        time.Time
	Description string
	Memo        string
	Splits      []*Split
}

// Split is one leg of a transaction, assigned to exactly one account. The
// account assignment is the only thing the fix-up ever mutates.
type Split struct {
	GUID        string
	Account     *Account
	Transaction *Transaction
	Amount      decimal.Decimal // negative = credit side
}
