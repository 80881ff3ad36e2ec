package kernel

import (
	"fmt"

	"pizzeria/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is an immutable value object for monetary amounts. All arithmetic is
// fixed-point decimal so totals never accumulate binary floating point drift.
// Amounts are non-negative; the zero value is a valid zero amount.
//
// Example:
//
//	base, _ := kernel.NewMoneyFromString("10.00")
//	total := base.MulRatio(13, 10).Add(kernel.MoneyFromCents(350)).Round2()
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns a zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoneyFromString parses a decimal string such as "12.50".
// Returns an error if the string is not a valid decimal or is negative.
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", err)
	}
	return MoneyFromDecimal(d)
}

// MoneyFromDecimal wraps a decimal amount.
// Returns an error if the amount is negative.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("%s is negative", d.String()))
	}
	return Money{amount: d}, nil
}

// MoneyFromCents creates an amount from an integer number of cents.
// Negative cents yield a zero amount with no error path; callers holding
// signed cents must validate before converting.
func MoneyFromCents(cents int64) Money {
	if cents < 0 {
		return ZeroMoney()
	}
	return Money{amount: decimal.NewFromInt(cents).Shift(-2)}
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns the difference of two amounts. Unlike the constructors, the
// result may be negative: price deltas (a small size against the base price)
// are legitimate negative components.
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// MulInt returns the amount multiplied by an integer factor.
func (m Money) MulInt(n int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(n)))}
}

// MulRatio returns the amount multiplied by num/den, exact in decimal.
// Used for size multipliers (13/10 for large) and the tax rate (8/100).
func (m Money) MulRatio(num, den int64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(num)).Div(decimal.NewFromInt(den))}
}

// Round2 rounds half away from zero to two decimal places.
func (m Money) Round2() Money {
	return Money{amount: m.amount.Round(2)}
}

// IsEqual reports whether two amounts are numerically equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Decimal returns the underlying decimal amount.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String returns the amount with exactly two decimal places, e.g. "38.60".
func (m Money) String() string {
	return m.amount.StringFixed(2)
}
