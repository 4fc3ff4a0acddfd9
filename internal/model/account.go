package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AccountKind classifies an account as credit or debit. The numeric values
// are what gets stored in the account table, so they must stay stable.
type AccountKind int16

const (
	KindCredit AccountKind = 1
	KindDebit  AccountKind = 2
)

func (k AccountKind) String() string {
	switch k {
	case KindCredit:
		return "credit"
	case KindDebit:
		return "debit"
	default:
		return fmt.Sprintf("unknown(%d)", int16(k))
	}
}

// Title returns the capitalized kind name, e.g. "Debit".
func (k AccountKind) Title() string {
	s := k.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseKind converts "credit" or "debit" (any case) to an AccountKind.
func ParseKind(s string) (AccountKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "credit":
		return KindCredit, nil
	case "debit":
		return KindDebit, nil
	default:
		return 0, fmt.Errorf("unknown account kind %q", s)
	}
}

// Account is a single bank account tracked by the ledger. Balance is the
// cached running total maintained by the import path; CreditLimit is the
// most negative balance a credit account may reach and is always zero for
// debit accounts.
type Account struct {
	ID          int64
	Name        string
	Kind        AccountKind
	CreditLimit decimal.Decimal
	Balance     decimal.Decimal
}

// CheckInvariant verifies the balance/credit-limit constraints: debit
// accounts have a zero limit and a non-negative balance, credit accounts
// have a negative limit and a balance at or above it.
func (a Account) CheckInvariant() error {
	switch a.Kind {
	case KindDebit:
		if !a.CreditLimit.IsZero() {
			return fmt.Errorf("debit account %d has non-zero credit limit %s", a.ID, a.CreditLimit)
		}
		if a.Balance.IsNegative() {
			return fmt.Errorf("debit account %d has negative balance %s", a.ID, a.Balance)
		}
	case KindCredit:
		if !a.CreditLimit.IsNegative() {
			return fmt.Errorf("credit account %d has non-negative credit limit %s", a.ID, a.CreditLimit)
		}
		if a.Balance.LessThan(a.CreditLimit) {
			return fmt.Errorf("credit account %d balance %s is below credit limit %s", a.ID, a.Balance, a.CreditLimit)
		}
	default:
		return fmt.Errorf("account %d has invalid kind %d", a.ID, a.Kind)
	}
	return nil
}
