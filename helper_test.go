package metalsim

import "testing"

// dayQuote is a compact fixture for one quoted day.
type dayQuote struct {
	on           string
	g, s, pt, pd float64
}

// testSeries builds a EUR price series from compact fixtures.
func testSeries(t *testing.T, days ...dayQuote) *PriceSeries {
	t.Helper()
	series := NewPriceSeries("EUR")
	for _, d := range days {
		err := series.Append(MustParseDate(d.on), map[Metal]Money{
			Gold:      M(d.g, "EUR"),
			Silver:    M(d.s, "EUR"),
			Platinum:  M(d.pt, "EUR"),
			Palladium: M(d.pd, "EUR"),
		})
		if err != nil {
			t.Fatalf("testSeries: %v", err)
		}
	}
	return series
}

// eur is shorthand for an exact EUR amount.
func eur(v float64) Money { return M(v, "EUR") }
