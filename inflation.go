package metalsim

import "math"

// defaultInflation is the fallback annual inflation per currency when no
// yearly figure is available.
var defaultInflation = map[string]Percent{
	"PLN": 6.0,
	"EUR": 2.0,
	"USD": 2.5,
}

// InflationTable holds annual inflation rates per year, with a per-currency
// fallback for missing years.
type InflationTable struct {
	rates    map[int]Percent
	fallback Percent
}

// NewInflationTable returns a table that answers the given fallback rate for
// every year not explicitly set.
func NewInflationTable(fallback Percent) *InflationTable {
	return &InflationTable{rates: make(map[int]Percent), fallback: fallback}
}

// DefaultInflationTable returns a table with the default fallback rate for a
// currency (2% when the currency is unknown).
func DefaultInflationTable(currency string) *InflationTable {
	fallback, ok := defaultInflation[currency]
	if !ok {
		fallback = 2.0
	}
	return NewInflationTable(fallback)
}

// Set records the annual inflation rate for a year.
func (t *InflationTable) Set(year int, rate Percent) { t.rates[year] = rate }

// RateFor returns the annual inflation rate for a year.
func (t *InflationTable) RateFor(year int) Percent {
	if rate, ok := t.rates[year]; ok {
		return rate
	}
	return t.fallback
}

// RealReturn deflates a nominal total return over a window by the compounded
// annual inflation of the years it spans. Partial years compound pro-rata.
func (t *InflationTable) RealReturn(nominal Percent, window Range) Percent {
	years := window.Years()
	if years <= 0 {
		return nominal
	}
	deflator := 1.0
	remaining := years
	for year := window.From.Year(); remaining > 0; year++ {
		span := math.Min(remaining, 1)
		deflator *= math.Pow(1+float64(t.RateFor(year))/100, span)
		remaining -= span
	}
	real := (1 + float64(nominal)/100) / deflator
	return Percent((real - 1) * 100)
}
