package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a non-negative amount in yen.
type Money int64

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return m + o
}

// Sub returns m - o, or ErrNegativeAmount when o is larger than m.
func (m Money) Sub(o Money) (Money, error) {
	if o > m {
		return 0, fmt.Errorf("%w: %d - %d", ErrNegativeAmount, m, o)
	}
	return m - o, nil
}

// Scale multiplies m by rate and truncates the result down to a multiple of 10.
// Every multiplication in the pricing pipeline goes through here, including
// multiplication by head counts and by the round-trip factor.
func (m Money) Scale(rate decimal.Decimal) Money {
	v := decimal.NewFromInt(int64(m)).Mul(rate).IntPart()
	return Money(v / 10 * 10)
}

// Times scales m by an integer count.
func (m Money) Times(n int) Money {
	return m.Scale(decimal.NewFromInt(int64(n)))
}
