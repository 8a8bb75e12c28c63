package kernel

import (
	"fmt"

	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits every amount is kept at.
const MoneyScale = 2

// Money is a non-negative monetary amount in the single currency of the shop.
// Arithmetic is exact decimal arithmetic; amounts never pass through float64.
//
// The zero value is a valid amount of 0.00, which is what an order without items
// or without delivery charge carries.
//
// Example:
//
//	price, err := kernel.MoneyFromString("10.00")
//	if err != nil {
//	    return err
//	}
//	qty, _ := kernel.NewQuantity(2)
//	fmt.Println(price.Mul(qty)) // 20.00
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns 0.00.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney validates amount and wraps it.
//
// Rules:
//   - amount must not be negative
//   - amount must not carry more than MoneyScale fractional digits
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), "0", "unbounded")
	}
	if !amount.Equal(amount.Round(MoneyScale)) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s has more than %d fractional digits", amount.String(), MoneyScale),
		)
	}
	return Money{amount: amount}, nil
}

// MoneyFromString parses a decimal string such as "7.50" and validates it like NewMoney.
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(amount)
}

// Decimal exposes the amount for persistence and presentation.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Add returns m + other. The sum of two non-negative amounts stays valid.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Mul returns m × q.
func (m Money) Mul(q Quantity) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(q.Int())))}
}

// IsZero reports whether the amount is 0.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Equal compares amounts numerically, so 5 and 5.00 are equal.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount with exactly MoneyScale fractional digits.
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}
