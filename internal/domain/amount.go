package domain

import "github.com/shopspring/decimal"

// Amount is a monetary value in minor currency units (cents).
type Amount struct {
	value int64
}

// NewAmount returns a zero Amount.
func NewAmount() *Amount {
	return &Amount{}
}

// AmountFrom wraps an already-persisted value. No range validation happens
// here: restoring historical state never re-validates it.
func AmountFrom(cents int64) *Amount {
	return &Amount{value: cents}
}

// Value returns the value in cents.
func (a *Amount) Value() int64 {
	return a.value
}

// Formatted renders the value as a decimal string with exactly two fraction
// digits.
func (a *Amount) Formatted() string {
	return decimal.New(a.value, -2).StringFixed(2)
}

// Add increases the value by delta. Deltas must be strictly positive.
func (a *Amount) Add(delta int64) error {
	if delta <= 0 {
		return NewError(KindAmountInvalid, "amount must be greater than zero")
	}

	a.value += delta

	return nil
}

// Subtract decreases the value by delta. Deltas must be strictly positive.
// No lower-bound check: keeping the result non-negative is the caller's
// responsibility.
func (a *Amount) Subtract(delta int64) error {
	if delta <= 0 {
		return NewError(KindAmountInvalid, "amount must be greater than zero")
	}

	a.value -= delta

	return nil
}
