package kernel

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrMoneyIsNotConstructed is returned when a Money value bypassed its constructors.
var ErrMoneyIsNotConstructed = errors.New("Money must be created via NewMoney or MoneyFromString")

// minorUnits is the number of decimal places money is rounded to.
const minorUnits = 2

var hundred = decimal.NewFromInt(100)

// Money is a non-negative monetary amount backed by an arbitrary-precision
// decimal. Arithmetic never rounds; Round is applied explicitly where a
// policy requires it (tax splitting).
type Money struct {
	amount        decimal.Decimal
	isConstructed bool
}

// NewMoney validates amount is not negative.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), 0, "unbounded")
	}
	return Money{amount: amount, isConstructed: true}, nil
}

// MoneyFromString parses a decimal literal such as "10.50".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d)
}

// ZeroMoney returns a constructed zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, isConstructed: true}
}

// Validate rejects zero-value Money.
func (m Money) Validate() error {
	if !m.isConstructed {
		return ErrMoneyIsNotConstructed
	}
	return nil
}

// Amount exposes the underlying decimal for adapters.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), isConstructed: true}
}

// Sub returns m - other clamped at zero.
func (m Money) Sub(other Money) Money {
	d := m.amount.Sub(other.amount)
	if d.IsNegative() {
		d = decimal.Zero
	}
	return Money{amount: d, isConstructed: true}
}

// MulQuantity returns m multiplied by an item count.
func (m Money) MulQuantity(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity))), isConstructed: true}
}

// InclusiveTax backs the tax portion out of a tax-inclusive amount:
// m * rate / (100 + rate), rounded half away from zero to cents.
// A non-positive rate yields zero.
func (m Money) InclusiveTax(ratePercent decimal.Decimal) Money {
	if !ratePercent.IsPositive() {
		return ZeroMoney()
	}
	tax := m.amount.Mul(ratePercent).Div(hundred.Add(ratePercent)).Round(minorUnits)
	return Money{amount: tax, isConstructed: true}
}

// Round rounds to cents.
func (m Money) Round() Money {
	return Money{amount: m.amount.Round(minorUnits), isConstructed: true}
}

// IsEqual compares amounts numerically, so 10 equals 10.00.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// IsZero reports a zero amount.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// String formats with two decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(minorUnits)
}

// GoString keeps test failure output readable.
func (m Money) GoString() string {
	return fmt.Sprintf("kernel.Money(%s)", m.String())
}
