package store

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/milinsoft/bankapp/internal/model"
)

type accountRow struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	Name        string          `gorm:"not null"`
	Kind        int16           `gorm:"index;not null"`
	CreditLimit decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Balance     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

func (*accountRow) TableName() string { return "accounts" }

func (r *accountRow) toModel() *model.Account {
	return &model.Account{
		ID:          r.ID,
		Name:        r.Name,
		Kind:        model.AccountKind(r.Kind),
		CreditLimit: r.CreditLimit,
		Balance:     r.Balance,
	}
}

func accountRowFrom(acc model.Account) accountRow {
	return accountRow{
		ID:          acc.ID,
		Name:        acc.Name,
		Kind:        int16(acc.Kind),
		CreditLimit: acc.CreditLimit,
		Balance:     acc.Balance,
	}
}

type transactionRow struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	Date        time.Time       `gorm:"index;not null"`
	Description string          `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	AccountID   int64           `gorm:"index;not null"`
}

func (*transactionRow) TableName() string { return "transactions" }

func (r *transactionRow) toModel() model.Transaction {
	return model.Transaction{
		ID:          r.ID,
		Date:        r.Date,
		Description: r.Description,
		Amount:      r.Amount,
		AccountID:   r.AccountID,
	}
}

func transactionRowFrom(d model.Draft) transactionRow {
	return transactionRow{
		Date:        d.Date,
		Description: d.Description,
		Amount:      d.Amount,
		AccountID:   d.AccountID,
	}
}
