package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/milinsoft/bankapp/internal/ledger"
)

// unitOfWork binds the repositories to one database transaction per Do call.
type unitOfWork struct {
	db *gorm.DB
}

// UnitOfWork returns a ledger.UnitOfWork backed by this store.
func (s *Store) UnitOfWork() ledger.UnitOfWork {
	return &unitOfWork{db: s.db}
}

// Do runs fn inside a single database transaction. A nil return commits,
// any error (or panic) rolls back every write fn made through the bound
// repositories.
func (u *unitOfWork) Do(ctx context.Context, fn func(r ledger.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ledger.Repos{
			Accounts:     &accountRepo{tx: tx},
			Transactions: &transactionRepo{tx: tx},
		})
	})
}
