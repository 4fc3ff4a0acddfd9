package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single persisted ledger entry. Transactions are created
// in batches by the import path and are never updated or deleted.
type Transaction struct {
	ID          int64
	Date        time.Time
	Description string
	Amount      decimal.Decimal // negative = spend, positive = income
	AccountID   int64
}

// Draft is a validated transaction candidate produced by a file parser.
// It exists only between parse time and the moment the import commits it
// as a Transaction.
type Draft struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	AccountID   int64
}
