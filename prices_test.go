package metalsim

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestPriceAtCarryForward(t *testing.T) {
	series := testSeries(t,
		dayQuote{"2024-01-01", 100, 25, 60, 80},
		dayQuote{"2024-01-03", 110, 20, 66, 96},
	)

	// Exact date.
	got, err := series.PriceAt(MustParseDate("2024-01-01"), Gold)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(eur(100)) {
		t.Errorf("PriceAt(2024-01-01, gold) = %s, want %s", got, eur(100))
	}

	// A non-trading day carries the previous quote forward.
	got, err = series.PriceAt(MustParseDate("2024-01-02"), Gold)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(eur(100)) {
		t.Errorf("PriceAt(2024-01-02, gold) = %s, want carried-forward %s", got, eur(100))
	}

	// After the last quote the last price keeps carrying forward.
	got, err = series.PriceAt(MustParseDate("2024-02-15"), Silver)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(eur(20)) {
		t.Errorf("PriceAt(2024-02-15, silver) = %s, want %s", got, eur(20))
	}
}

func TestPriceAtBeforeHistory(t *testing.T) {
	series := testSeries(t, dayQuote{"2024-01-10", 100, 25, 60, 80})

	_, err := series.PriceAt(MustParseDate("2024-01-09"), Gold)
	var oor *OutOfRangeError
	if !errors.As(err, &oor) {
		t.Fatalf("PriceAt before history = %v, want *OutOfRangeError", err)
	}
	if oor.Requested != MustParseDate("2024-01-09") {
		t.Errorf("Requested = %s, want 2024-01-09", oor.Requested)
	}
}

func TestAppendRejectsBadQuotes(t *testing.T) {
	series := testSeries(t, dayQuote{"2024-01-02", 100, 25, 60, 80})

	// Not strictly after the last quoted date.
	err := series.Append(MustParseDate("2024-01-02"), map[Metal]Money{
		Gold: eur(1), Silver: eur(1), Platinum: eur(1), Palladium: eur(1),
	})
	if err == nil {
		t.Error("Append on a duplicate date should fail")
	}

	// Missing metal.
	err = series.Append(MustParseDate("2024-01-03"), map[Metal]Money{
		Gold: eur(1), Silver: eur(1), Platinum: eur(1),
	})
	if err == nil {
		t.Error("Append with a missing palladium price should fail")
	}

	// Non-positive price.
	err = series.Append(MustParseDate("2024-01-03"), map[Metal]Money{
		Gold: eur(0), Silver: eur(1), Platinum: eur(1), Palladium: eur(1),
	})
	if err == nil {
		t.Error("Append with a zero gold price should fail")
	}

	if series.Len() != 1 {
		t.Errorf("rejected quotes must not grow the series, Len = %d", series.Len())
	}
}

func TestDecodePrices(t *testing.T) {
	in := `date,gold,silver,platinum,palladium
2024-01-01,100,25,60,80
2024-01-03,110.5,20.25,66,96
`
	series, err := DecodePrices(strings.NewReader(in), "EUR")
	if err != nil {
		t.Fatal(err)
	}
	if series.Len() != 2 {
		t.Fatalf("Len = %d, want 2", series.Len())
	}
	if series.First() != MustParseDate("2024-01-01") || series.Last() != MustParseDate("2024-01-03") {
		t.Errorf("range = [%s, %s], want [2024-01-01, 2024-01-03]", series.First(), series.Last())
	}
	p, err := series.PriceAt(MustParseDate("2024-01-03"), Gold)
	if err != nil {
		t.Fatal(err)
	}
	if !p.Equal(eur(110.5)) {
		t.Errorf("gold on 2024-01-03 = %s, want %s", p, eur(110.5))
	}
}

func TestDecodePricesErrors(t *testing.T) {
	testCases := []struct {
		name string
		in   string
	}{
		{"empty history", "date,gold,silver,platinum,palladium\n"},
		{"bad header", "date,gold\n2024-01-01,100\n"},
		{"bad date", "date,gold,silver,platinum,palladium\nyesterday,100,25,60,80\n"},
		{"bad price", "date,gold,silver,platinum,palladium\n2024-01-01,cheap,25,60,80\n"},
		{"unsorted", "date,gold,silver,platinum,palladium\n2024-01-02,100,25,60,80\n2024-01-01,100,25,60,80\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodePrices(strings.NewReader(tc.in), "EUR"); err == nil {
				t.Error("DecodePrices should fail")
			}
		})
	}
}

func TestEncodeDecodePricesRoundtrip(t *testing.T) {
	series := testSeries(t,
		dayQuote{"2024-01-01", 100, 25.5, 60, 80},
		dayQuote{"2024-01-02", 110, 20, 66.75, 96},
	)

	var buf bytes.Buffer
	if err := EncodePrices(&buf, series); err != nil {
		t.Fatal(err)
	}
	back, err := DecodePrices(&buf, "EUR")
	if err != nil {
		t.Fatal(err)
	}
	if back.Len() != series.Len() {
		t.Fatalf("roundtrip Len = %d, want %d", back.Len(), series.Len())
	}
	for _, q := range series.Quotes() {
		for _, metal := range AllMetals {
			p, err := back.PriceAt(q.On, metal)
			if err != nil {
				t.Fatal(err)
			}
			if !p.Equal(q.Prices[metal]) {
				t.Errorf("roundtrip %s on %s = %s, want %s", metal, q.On, p, q.Prices[metal])
			}
		}
	}
}
