package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/milinsoft/bankapp/internal/model"
	"github.com/milinsoft/bankapp/internal/money"
)

// TransactionService implements transaction queries and the atomic import.
type TransactionService struct {
	uow UnitOfWork
	log *logrus.Logger
}

// NewTransactionService creates a TransactionService.
func NewTransactionService(uow UnitOfWork, log *logrus.Logger) *TransactionService {
	return &TransactionService{uow: uow, log: log}
}

// ByDateRange returns the account's transactions between from and to
// inclusive, most recent first. A zero from means the minimum date, a zero
// to means today; a future to fails with money.ErrFutureDate.
func (s *TransactionService) ByDateRange(ctx context.Context, accountID int64, from, to time.Time) ([]model.Transaction, error) {
	if from.IsZero() {
		from = money.MinDate
	}
	if to.IsZero() {
		to = money.Today()
	} else if err := money.EnsureNotFuture(to); err != nil {
		return nil, err
	}

	var txns []model.Transaction
	err := s.uow.Do(ctx, func(r Repos) error {
		var err error
		txns, err = r.Transactions.GetAll(ctx, TransactionFilter{AccountID: accountID, From: from, To: to}, OrderDateDesc)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("searching transactions of account %d: %w", accountID, err)
	}
	return txns, nil
}

// Import persists drafts as transactions of the account and applies their
// summed amount to its balance, all inside one unit of work. If the new
// balance would fall below the account's credit limit the whole batch is
// rolled back with ErrCreditLimitExceeded. An empty batch is a no-op that
// reports the current balance.
func (s *TransactionService) Import(ctx context.Context, accountID int64, drafts []model.Draft) ([]int64, decimal.Decimal, error) {
	batchID := uuid.New()

	var (
		ids        []int64
		newBalance decimal.Decimal
	)
	err := s.uow.Do(ctx, func(r Repos) error {
		if len(drafts) == 0 {
			acc, err := r.Accounts.GetByID(ctx, accountID)
			if err != nil {
				return err
			}
			if acc == nil {
				return fmt.Errorf("account %d not found", accountID)
			}
			newBalance = acc.Balance
			return nil
		}

		deltaSum := decimal.Zero
		bound := make([]model.Draft, len(drafts))
		for i, d := range drafts {
			d.AccountID = accountID
			bound[i] = d
			deltaSum = deltaSum.Add(d.Amount)
		}

		var err error
		ids, err = r.Transactions.CreateMany(ctx, bound)
		if err != nil {
			return err
		}
		// The balance update locks the account row, so concurrent imports
		// against the same account serialize here and each sees the
		// other's committed effect before the limit check.
		newBalance, err = r.Accounts.UpdateBalance(ctx, accountID, deltaSum)
		return err
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"account_id": accountID,
			"batch_id":   batchID,
			"count":      len(drafts),
		}).WithError(err).Warn("transaction import rolled back")
		return nil, decimal.Zero, err
	}

	s.log.WithFields(logrus.Fields{
		"account_id": accountID,
		"batch_id":   batchID,
		"count":      len(ids),
		"balance":    newBalance.StringFixed(2),
	}).Info("imported transactions")
	return ids, newBalance, nil
}
