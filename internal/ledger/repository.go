// Package ledger holds the account and transaction services plus the
// repository and unit-of-work contracts they depend on. Concrete
// persistence lives in internal/store; services stay testable against any
// implementation of these interfaces.
package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/milinsoft/bankapp/internal/model"
)

// ErrCreditLimitExceeded reports an import whose resulting balance would
// fall below the account's credit limit. The wrapped message carries the
// limit that would be breached.
var ErrCreditLimitExceeded = errors.New("account balance would fall below the credit limit")

// TransactionFilter narrows transaction queries to one account and an
// optional closed date range. A zero From or To leaves that bound open.
type TransactionFilter struct {
	AccountID int64
	From      time.Time
	To        time.Time
}

// Order selects result ordering for transaction queries.
type Order int

const (
	OrderDateAsc Order = iota
	OrderDateDesc
)

// AccountRepository provides persistence for accounts. Lookups that find
// nothing return a nil account, not an error.
type AccountRepository interface {
	CreateOne(ctx context.Context, acc model.Account) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.Account, error)
	GetByKind(ctx context.Context, kind model.AccountKind) (*model.Account, error)

	// UpdateBalance loads the account row under an exclusive lock, adds
	// delta, enforces the credit-limit invariant and persists the result.
	// A limit breach fails with ErrCreditLimitExceeded, which must abort
	// the enclosing unit of work.
	UpdateBalance(ctx context.Context, accountID int64, delta decimal.Decimal) (decimal.Decimal, error)
}

// TransactionRepository provides persistence for transactions.
type TransactionRepository interface {
	// CreateMany bulk-inserts drafts and returns the generated ids in
	// insertion order.
	CreateMany(ctx context.Context, drafts []model.Draft) ([]int64, error)
	GetAll(ctx context.Context, f TransactionFilter, order Order) ([]model.Transaction, error)
	// SumAmount returns the sum of matching transaction amounts, zero if
	// none match.
	SumAmount(ctx context.Context, f TransactionFilter) (decimal.Decimal, error)
}

// Repos is the repository set bound to one transactional session.
type Repos struct {
	Accounts     AccountRepository
	Transactions TransactionRepository
}

// UnitOfWork scopes repository operations to a single commit/rollback
// boundary: fn returning nil commits every write it made, any error rolls
// them all back. The session is released on every exit path.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(r Repos) error) error
}
