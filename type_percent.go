package metalsim

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a rate expressed in percentage points (2.5 means 2.5%).
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" {
		return "-"
	}
	return res
}

// Rate returns the percent as a decimal fraction (2.5% -> 0.025).
func (p Percent) Rate() decimal.Decimal {
	return decimal.NewFromFloat(float64(p)).Shift(-2)
}

// Of returns the given fraction of a money amount.
func (p Percent) Of(m Money) Money {
	return Money{value: m.value.Mul(p.Rate()), cur: m.cur}
}
