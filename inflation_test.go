package metalsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInflationRateFor(t *testing.T) {
	table := DefaultInflationTable("PLN")
	assert.True(t, table.RateFor(2019).Equal(6.0), "fallback rate")

	table.Set(2022, 14.4)
	assert.True(t, table.RateFor(2022).Equal(14.4), "explicit rate")
	assert.True(t, table.RateFor(2023).Equal(6.0), "other years keep the fallback")

	assert.True(t, DefaultInflationTable("EUR").RateFor(2020).Equal(2.0))
	assert.True(t, DefaultInflationTable("XXX").RateFor(2020).Equal(2.0), "unknown currency")
}

func TestRealReturn(t *testing.T) {
	table := NewInflationTable(2.0)
	window := NewRange(MustParseDate("2020-01-01"), MustParseDate("2021-01-01"))

	// 10% nominal deflated by ~2% inflation is ~7.8% real.
	real := table.RealReturn(10, window)
	assert.InDelta(t, 7.84, float64(real), 0.05)

	// Inflation above the nominal return turns it negative.
	table.Set(2020, 15)
	real = table.RealReturn(10, window)
	assert.Less(t, float64(real), 0.0)
}

func TestRealReturnZeroWindow(t *testing.T) {
	table := NewInflationTable(2.0)
	on := MustParseDate("2024-06-01")
	window := Range{From: on, To: on}
	assert.True(t, table.RealReturn(10, window).Equal(10), "a zero-length window deflates nothing")
}
