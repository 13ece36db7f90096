package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Money represents a non-negative monetary amount in the marketplace currency.
// Amounts are kept as float64 to match the pricing payloads on the wire; all
// arithmetic on them happens through Add so negative results cannot appear.
type Money struct {
	amount float64
}

// NewMoney creates a Money value. The amount must not be negative.
func NewMoney(amount float64) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%f is negative", amount))
	}
	return Money{amount: amount}, nil
}

// Amount returns the raw amount.
func (m Money) Amount() float64 {
	return m.amount
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount + other.amount}
}

// IsEqual compares two amounts for exact equality.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount
}

// String returns the amount formatted with two decimal places.
func (m Money) String() string {
	return fmt.Sprintf("%.2f", m.amount)
}
