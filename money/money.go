package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Money is a monetary amount in satoshis, the integer minor unit used on
// every internal interface. Conversion to and from BTC decimals happens only
// at the wallet gateway boundary.
type Money uint64

// ErrNegativeAmount is returned when trying to create a Money with a negative amount.
var ErrNegativeAmount = errors.New("amount cannot be negative")

func NewFromBtc(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return 0, ErrNegativeAmount
	}

	return Money(amount.Mul(decimal.NewFromInt(1e8)).IntPart()), nil // nolint:gosec
}

func (m Money) ToBtc() decimal.Decimal {
	return decimal.NewFromUint64(uint64(m)).Div(decimal.NewFromInt(1e8))
}

// Ptr returns a pointer to m, for optional amount fields.
func (m Money) Ptr() *Money {
	return &m
}
