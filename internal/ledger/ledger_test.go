package ledger_test

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milinsoft/bankapp/internal/importer"
	"github.com/milinsoft/bankapp/internal/ledger"
	"github.com/milinsoft/bankapp/internal/model"
	"github.com/milinsoft/bankapp/internal/money"
	"github.com/milinsoft/bankapp/internal/store"
)

const dateLayout = "2006-01-02"

func newServices(t *testing.T) (*ledger.AccountService, *ledger.TransactionService) {
	t.Helper()
	s, err := store.Open(store.Config{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate())

	log := logrus.New()
	log.SetOutput(io.Discard)

	uow := s.UnitOfWork()
	return ledger.NewAccountService(uow, log, dec("-3000")), ledger.NewTransactionService(uow, log)
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func parseTestFile(t *testing.T, accountID int64) []model.Draft {
	t.Helper()
	reg := importer.DefaultRegistry(dateLayout, money.RoundHalfUp)
	drafts, err := reg.ParseFile("../../testdata/transactions.csv", accountID)
	require.NoError(t, err)
	require.Len(t, drafts, 7)
	return drafts
}

func TestAccountService_CreateDefault(t *testing.T) {
	accSvc, _ := newServices(t)
	ctx := context.Background()

	debitID, err := accSvc.CreateDefault(ctx, model.KindDebit)
	require.NoError(t, err)
	creditID, err := accSvc.CreateDefault(ctx, model.KindCredit)
	require.NoError(t, err)

	debit, err := accSvc.GetByID(ctx, debitID)
	require.NoError(t, err)
	require.NotNil(t, debit)
	assert.Equal(t, "Debit Account", debit.Name)
	assert.True(t, debit.CreditLimit.IsZero())
	assert.True(t, debit.Balance.IsZero())
	assert.NoError(t, debit.CheckInvariant())

	credit, err := accSvc.GetByID(ctx, creditID)
	require.NoError(t, err)
	require.NotNil(t, credit)
	assert.Equal(t, "Credit Account", credit.Name)
	assert.Equal(t, "-3000.00", credit.CreditLimit.StringFixed(2))
	assert.NoError(t, credit.CheckInvariant())
}

func TestAccountService_GetByKind_Absent(t *testing.T) {
	accSvc, _ := newServices(t)
	ctx := context.Background()

	acc, err := accSvc.GetByKind(ctx, model.KindCredit)
	require.NoError(t, err)
	assert.Nil(t, acc, "absence is not an error")

	id, err := accSvc.CreateDefault(ctx, model.KindCredit)
	require.NoError(t, err)

	acc, err = accSvc.GetByKind(ctx, model.KindCredit)
	require.NoError(t, err)
	require.NotNil(t, acc)
	assert.Equal(t, id, acc.ID)
}

func TestImport_RunningBalancePerDate(t *testing.T) {
	accSvc, txSvc := newServices(t)
	ctx := context.Background()

	accID, err := accSvc.CreateDefault(ctx, model.KindDebit)
	require.NoError(t, err)

	drafts := parseTestFile(t, accID)
	ids, newBalance, err := txSvc.Import(ctx, accID, drafts)
	require.NoError(t, err)
	assert.Len(t, ids, 7)
	assert.Equal(t, "296523.00", newBalance.StringFixed(2))

	running := []struct {
		date    time.Time
		balance string
	}{
		{day(2023, 4, 1), "100000.00"},
		{day(2023, 4, 21), "99987.75"},
		{day(2023, 5, 22), "99967.50"},
		{day(2023, 6, 23), "99761.50"},
		{day(2023, 7, 23), "99761.51"},
		{day(2023, 8, 23), "96523.00"},
		{day(2023, 8, 24), "296523.00"},
	}
	for _, step := range running {
		got, err := accSvc.BalanceAsOf(ctx, accID, step.date)
		require.NoError(t, err)
		assert.Equal(t, step.balance, got.StringFixed(2), "balance as of %s", step.date.Format(dateLayout))
	}

	// Before any transaction the balance is zero.
	before, err := accSvc.BalanceAsOf(ctx, accID, money.MinDate)
	require.NoError(t, err)
	assert.True(t, before.IsZero())

	// Default (zero) date means today, which covers everything here.
	today, err := accSvc.BalanceAsOf(ctx, accID, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "296523.00", today.StringFixed(2))
}

func TestBalanceAsOf_FutureDate(t *testing.T) {
	accSvc, _ := newServices(t)
	ctx := context.Background()

	accID, err := accSvc.CreateDefault(ctx, model.KindDebit)
	require.NoError(t, err)

	_, err = accSvc.BalanceAsOf(ctx, accID, money.Today().AddDate(0, 0, 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, money.ErrFutureDate)
}

func TestImport_CreditLimitExceededRollsBack(t *testing.T) {
	accSvc, txSvc := newServices(t)
	ctx := context.Background()

	accID, err := accSvc.CreateDefault(ctx, model.KindDebit)
	require.NoError(t, err)

	_, balance, err := txSvc.Import(ctx, accID, parseTestFile(t, accID))
	require.NoError(t, err)

	txnsBefore, err := txSvc.ByDateRange(ctx, accID, time.Time{}, time.Time{})
	require.NoError(t, err)

	// A batch whose sum drives the balance below zero must fail...
	_, _, err = txSvc.Import(ctx, accID, []model.Draft{
		{Date: day(2023, 9, 1), Description: "Refund", Amount: dec("0.05")},
		{Date: day(2023, 9, 2), Description: "House", Amount: dec("-400000.00")},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrCreditLimitExceeded)
	assert.Contains(t, err.Error(), "0.00", "message reports the breached limit")

	// ...and leave no trace: same row count, same balance.
	txnsAfter, err := txSvc.ByDateRange(ctx, accID, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, txnsAfter, len(txnsBefore))

	acc, err := accSvc.GetByID(ctx, accID)
	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(balance))
	assert.NoError(t, acc.CheckInvariant())
}

func TestImport_CreditAccountLimit(t *testing.T) {
	accSvc, txSvc := newServices(t)
	ctx := context.Background()

	accID, err := accSvc.CreateDefault(ctx, model.KindCredit)
	require.NoError(t, err)

	// Spending exactly down to the limit is allowed.
	_, balance, err := txSvc.Import(ctx, accID, []model.Draft{
		{Date: day(2023, 4, 1), Description: "Laptop", Amount: dec("-3000.00")},
	})
	require.NoError(t, err)
	assert.Equal(t, "-3000.00", balance.StringFixed(2))

	// One cent further is not.
	_, _, err = txSvc.Import(ctx, accID, []model.Draft{
		{Date: day(2023, 4, 2), Description: "Coffee", Amount: dec("-0.01")},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrCreditLimitExceeded)
	assert.Contains(t, err.Error(), "-3000.00")
}

func TestImport_EmptyBatchIsNoOp(t *testing.T) {
	accSvc, txSvc := newServices(t)
	ctx := context.Background()

	accID, err := accSvc.CreateDefault(ctx, model.KindDebit)
	require.NoError(t, err)
	_, balance, err := txSvc.Import(ctx, accID, []model.Draft{
		{Date: day(2023, 4, 1), Description: "Salary", Amount: dec("42.00")},
	})
	require.NoError(t, err)

	ids, current, err := txSvc.Import(ctx, accID, nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.True(t, current.Equal(balance))
}

func TestImport_UnknownAccount(t *testing.T) {
	_, txSvc := newServices(t)

	_, _, err := txSvc.Import(context.Background(), 42, nil)
	require.Error(t, err)
}

func TestByDateRange_OrderingAndNarrowing(t *testing.T) {
	accSvc, txSvc := newServices(t)
	ctx := context.Background()

	accID, err := accSvc.CreateDefault(ctx, model.KindDebit)
	require.NoError(t, err)

	drafts := parseTestFile(t, accID)
	_, _, err = txSvc.Import(ctx, accID, drafts)
	require.NoError(t, err)

	all, err := txSvc.ByDateRange(ctx, accID, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, all, 7)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i-1].Date.Before(all[i].Date), "results must be date-descending")
	}

	// One transaction per date: narrowing the end date to the Nth date
	// returns exactly N results.
	for n, d := range []time.Time{
		day(2023, 4, 1), day(2023, 4, 21), day(2023, 5, 22), day(2023, 6, 23),
		day(2023, 7, 23), day(2023, 8, 23), day(2023, 8, 24),
	} {
		got, err := txSvc.ByDateRange(ctx, accID, time.Time{}, d)
		require.NoError(t, err)
		assert.Len(t, got, n+1, "end date %s", d.Format(dateLayout))
	}

	none, err := txSvc.ByDateRange(ctx, accID, time.Time{}, money.MinDate)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = txSvc.ByDateRange(ctx, accID, time.Time{}, money.Today().AddDate(0, 0, 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, money.ErrFutureDate)
}

func TestImport_SequentialBatchesPreserveInvariant(t *testing.T) {
	accSvc, txSvc := newServices(t)
	ctx := context.Background()

	accID, err := accSvc.CreateDefault(ctx, model.KindCredit)
	require.NoError(t, err)

	batches := [][]model.Draft{
		{{Date: day(2023, 4, 1), Description: "Groceries", Amount: dec("-1000.00")}},
		{{Date: day(2023, 4, 2), Description: "Salary", Amount: dec("500.00")}},
		{{Date: day(2023, 4, 3), Description: "Rent", Amount: dec("-2500.00")}},
	}
	for _, batch := range batches {
		if _, _, err := txSvc.Import(ctx, accID, batch); err != nil {
			assert.ErrorIs(t, err, ledger.ErrCreditLimitExceeded)
		}
		acc, err := accSvc.GetByID(ctx, accID)
		require.NoError(t, err)
		assert.NoError(t, acc.CheckInvariant(), "invariant must hold after every batch")
	}
}
