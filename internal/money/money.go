// Package money normalizes raw amount and date strings into validated
// decimals and calendar dates before they are allowed near the ledger.
package money

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount reports a non-numeric amount or one that rounds to zero.
	ErrInvalidAmount = errors.New("incorrect transaction amount")
	// ErrInvalidDate reports a date string that does not match the layout.
	ErrInvalidDate = errors.New("wrong date format")
	// ErrFutureDate reports a date strictly after today.
	ErrFutureDate = errors.New("date is in the future")
)

// RoundingMode selects how amounts are rounded to two decimal places.
type RoundingMode string

const (
	RoundHalfUp   RoundingMode = "half_up"
	RoundHalfEven RoundingMode = "half_even"
)

// Valid reports whether m is a known rounding mode.
func (m RoundingMode) Valid() bool {
	return m == RoundHalfUp || m == RoundHalfEven
}

// ParseAmount parses raw as a decimal number and rounds it to exactly two
// fractional digits. A non-numeric value, or one whose rounded result is
// zero, fails with ErrInvalidAmount.
func ParseAmount(raw string, mode RoundingMode) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	if mode == RoundHalfEven {
		d = d.RoundBank(2)
	} else {
		d = d.Round(2) // round half away from zero
	}
	if d.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: %q rounds to zero", ErrInvalidAmount, raw)
	}
	return d, nil
}

// ParseDate parses raw against layout and rejects dates after today.
func ParseDate(raw, layout string) (time.Time, error) {
	d, err := time.Parse(layout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: provided %q, please use %s", ErrInvalidDate, raw, layout)
	}
	if err := EnsureNotFuture(d); err != nil {
		return time.Time{}, err
	}
	return d, nil
}

// EnsureNotFuture fails with ErrFutureDate if t falls on a calendar day
// strictly after today.
func EnsureNotFuture(t time.Time) error {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if day.After(Today()) {
		return fmt.Errorf("%w: %s", ErrFutureDate, t.Format("2006-01-02"))
	}
	return nil
}

// Today returns the current date at midnight UTC.
func Today() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MinDate is the lower bound used when a range query has no start date.
var MinDate = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
