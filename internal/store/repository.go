package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/milinsoft/bankapp/internal/ledger"
	"github.com/milinsoft/bankapp/internal/model"
)

type accountRepo struct {
	tx *gorm.DB
}

func (r *accountRepo) CreateOne(ctx context.Context, acc model.Account) (int64, error) {
	row := accountRowFrom(acc)
	if err := r.tx.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, fmt.Errorf("inserting account: %w", err)
	}
	return row.ID, nil
}

func (r *accountRepo) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	var row accountRow
	err := r.tx.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("selecting account %d: %w", id, err)
	}
	return row.toModel(), nil
}

func (r *accountRepo) GetByKind(ctx context.Context, kind model.AccountKind) (*model.Account, error) {
	var row accountRow
	err := r.tx.WithContext(ctx).
		Where("kind = ?", int16(kind)).
		Order("id").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("selecting %s account: %w", kind, err)
	}
	return row.toModel(), nil
}

// UpdateBalance is the critical section of the import: it reads the account
// row under SELECT ... FOR UPDATE so concurrent imports against the same
// account serialize, recomputes the balance from the locked value and
// enforces the credit-limit floor before persisting.
func (r *accountRepo) UpdateBalance(ctx context.Context, accountID int64, delta decimal.Decimal) (decimal.Decimal, error) {
	q := r.tx.WithContext(ctx)
	// SQLite rejects FOR UPDATE syntax; its database-level write lock
	// already serializes balance updates.
	if r.tx.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var row accountRow
	if err := q.First(&row, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, fmt.Errorf("account %d not found", accountID)
		}
		return decimal.Zero, fmt.Errorf("locking account %d: %w", accountID, err)
	}

	newBalance := row.Balance.Add(delta)
	if newBalance.LessThan(row.CreditLimit) {
		return decimal.Zero, fmt.Errorf(
			"%w: balance would go less than %s",
			ledger.ErrCreditLimitExceeded, row.CreditLimit.StringFixed(2),
		)
	}

	err := r.tx.WithContext(ctx).
		Model(&accountRow{}).
		Where("id = ?", accountID).
		Update("balance", newBalance).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("updating balance of account %d: %w", accountID, err)
	}
	return newBalance, nil
}

type transactionRepo struct {
	tx *gorm.DB
}

func (r *transactionRepo) CreateMany(ctx context.Context, drafts []model.Draft) ([]int64, error) {
	if len(drafts) == 0 {
		return nil, nil
	}
	rows := make([]transactionRow, len(drafts))
	for i, d := range drafts {
		rows[i] = transactionRowFrom(d)
	}
	if err := r.tx.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, fmt.Errorf("inserting %d transactions: %w", len(rows), err)
	}
	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	return ids, nil
}

func (r *transactionRepo) GetAll(ctx context.Context, f ledger.TransactionFilter, order ledger.Order) ([]model.Transaction, error) {
	dir := "date"
	if order == ledger.OrderDateDesc {
		dir = "date DESC"
	}

	var rows []transactionRow
	err := applyFilter(r.tx.WithContext(ctx), f).Order(dir).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("selecting transactions: %w", err)
	}

	txns := make([]model.Transaction, len(rows))
	for i := range rows {
		txns[i] = rows[i].toModel()
	}
	return txns, nil
}

func (r *transactionRepo) SumAmount(ctx context.Context, f ledger.TransactionFilter) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	row := applyFilter(r.tx.WithContext(ctx), f).
		Select("SUM(amount)").
		Row()
	if err := row.Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("aggregating transaction amounts: %w", err)
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

func applyFilter(tx *gorm.DB, f ledger.TransactionFilter) *gorm.DB {
	q := tx.Model(&transactionRow{}).Where("account_id = ?", f.AccountID)
	if !f.From.IsZero() {
		q = q.Where("date >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("date <= ?", f.To)
	}
	return q
}
