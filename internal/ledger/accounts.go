package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/milinsoft/bankapp/internal/model"
	"github.com/milinsoft/bankapp/internal/money"
)

// AccountService implements account lookup, creation and balance queries.
type AccountService struct {
	uow                UnitOfWork
	log                *logrus.Logger
	defaultCreditLimit decimal.Decimal
}

// NewAccountService creates an AccountService. defaultCreditLimit is the
// (negative) limit assigned to newly created credit accounts.
func NewAccountService(uow UnitOfWork, log *logrus.Logger, defaultCreditLimit decimal.Decimal) *AccountService {
	return &AccountService{uow: uow, log: log, defaultCreditLimit: defaultCreditLimit}
}

// CreateDefault persists a fresh account of the given kind with a generated
// name, zero balance and the default credit limit for its kind, returning
// its id. Callers wanting one account per kind should check GetByKind first.
func (s *AccountService) CreateDefault(ctx context.Context, kind model.AccountKind) (int64, error) {
	limit := decimal.Zero
	if kind == model.KindCredit {
		limit = s.defaultCreditLimit
	}
	acc := model.Account{
		Name:        kind.Title() + " Account",
		Kind:        kind,
		CreditLimit: limit,
		Balance:     decimal.Zero,
	}
	if err := acc.CheckInvariant(); err != nil {
		return 0, err
	}

	var id int64
	err := s.uow.Do(ctx, func(r Repos) error {
		var err error
		id, err = r.Accounts.CreateOne(ctx, acc)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("creating %s account: %w", kind, err)
	}

	s.log.WithFields(logrus.Fields{"account_id": id, "kind": kind.String()}).
		Info("created default account")
	return id, nil
}

// GetByKind returns the first account of the given kind, or nil if none
// exists yet.
func (s *AccountService) GetByKind(ctx context.Context, kind model.AccountKind) (*model.Account, error) {
	var acc *model.Account
	err := s.uow.Do(ctx, func(r Repos) error {
		var err error
		acc, err = r.Accounts.GetByKind(ctx, kind)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("looking up %s account: %w", kind, err)
	}
	return acc, nil
}

// GetByID returns the account with the given id, or nil if absent.
func (s *AccountService) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	var acc *model.Account
	err := s.uow.Do(ctx, func(r Repos) error {
		var err error
		acc, err = r.Accounts.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("looking up account %d: %w", id, err)
	}
	return acc, nil
}

// BalanceAsOf returns the sum of all transaction amounts for the account
// dated on or before asOf. A zero asOf means today; a future asOf fails
// with money.ErrFutureDate. The cached account balance column is never
// consulted: the transaction log is the source of truth for dated queries.
func (s *AccountService) BalanceAsOf(ctx context.Context, accountID int64, asOf time.Time) (decimal.Decimal, error) {
	if asOf.IsZero() {
		asOf = money.Today()
	} else if err := money.EnsureNotFuture(asOf); err != nil {
		return decimal.Zero, err
	}

	var balance decimal.Decimal
	err := s.uow.Do(ctx, func(r Repos) error {
		var err error
		balance, err = r.Transactions.SumAmount(ctx, TransactionFilter{AccountID: accountID, To: asOf})
		return err
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("computing balance of account %d: %w", accountID, err)
	}
	return balance, nil
}
