package metalsim

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
)

// Quote holds the spot price of every metal on a single day.
type Quote struct {
	On     Date
	Prices map[Metal]Money
}

// PriceSeries is an ordered, date-indexed sequence of per-metal spot prices.
// Dates are strictly increasing with no duplicates. It is built once from
// historical data and immutable afterwards; lookups are pure.
type PriceSeries struct {
	currency string
	days     []Date
	quotes   []map[Metal]Money // parallel to days
}

// NewPriceSeries returns an empty series quoting in the given base currency.
func NewPriceSeries(currency string) *PriceSeries {
	return &PriceSeries{currency: currency}
}

// Currency returns the base currency prices are quoted in.
func (s *PriceSeries) Currency() string { return s.currency }

// Len returns the number of quoted days.
func (s *PriceSeries) Len() int { return len(s.days) }

// First returns the first quoted date, or the zero date if the series is empty.
func (s *PriceSeries) First() Date {
	if len(s.days) == 0 {
		return Date{}
	}
	return s.days[0]
}

// Last returns the last quoted date, or the zero date if the series is empty.
func (s *PriceSeries) Last() Date {
	if len(s.days) == 0 {
		return Date{}
	}
	return s.days[len(s.days)-1]
}

// Append adds a quote at the end of the series. The date must be strictly
// after the last quoted date.
func (s *PriceSeries) Append(on Date, prices map[Metal]Money) error {
	if len(s.days) > 0 && !on.After(s.days[len(s.days)-1]) {
		return fmt.Errorf("quote on %s is not after the last quoted date %s", on, s.Last())
	}
	for _, metal := range AllMetals {
		p, ok := prices[metal]
		if !ok {
			return fmt.Errorf("quote on %s is missing a %s price", on, metal)
		}
		if !p.IsPositive() {
			return fmt.Errorf("quote on %s has non-positive %s price %s", on, metal, p)
		}
	}
	copied := make(map[Metal]Money, len(AllMetals))
	for _, metal := range AllMetals {
		copied[metal] = prices[metal]
	}
	s.days = append(s.days, on)
	s.quotes = append(s.quotes, copied)
	return nil
}

// asOf returns the index of the quote on 'on', or the most recent one before it.
func (s *PriceSeries) asOf(on Date) (int, bool) {
	i, found := slices.BinarySearchFunc(s.days, on, Date.Compare)
	if found {
		return i, true
	}
	if i == 0 {
		return 0, false // no quote on or before 'on'
	}
	return i - 1, true
}

// PriceAt returns the spot price of a metal on a given date. Markets are not
// open every day: when the exact date is not quoted, the most recent prior
// quote is carried forward. It fails with *OutOfRangeError when the date
// precedes the first quoted date.
func (s *PriceSeries) PriceAt(on Date, metal Metal) (Money, error) {
	i, ok := s.asOf(on)
	if !ok {
		return Money{}, &OutOfRangeError{Requested: on, First: s.First(), Last: s.Last()}
	}
	return s.quotes[i][metal], nil
}

// QuoteAt returns the full carried-forward quote on a given date.
func (s *PriceSeries) QuoteAt(on Date) (Quote, error) {
	i, ok := s.asOf(on)
	if !ok {
		return Quote{}, &OutOfRangeError{Requested: on, First: s.First(), Last: s.Last()}
	}
	return Quote{On: s.days[i], Prices: s.quotes[i]}, nil
}

// Quotes returns the quoted days in chronological order. The returned quote
// maps are shared: callers must not modify them.
func (s *PriceSeries) Quotes() []Quote {
	out := make([]Quote, len(s.days))
	for i, on := range s.days {
		out[i] = Quote{On: on, Prices: s.quotes[i]}
	}
	return out
}

// csvHeader is the expected column layout of a price history file.
var csvHeader = []string{"date", "gold", "silver", "platinum", "palladium"}

// DecodePrices reads a price history from a CSV stream with columns
// date,gold,silver,platinum,palladium. Rows must be pre-cleaned: sorted by
// date with no duplicates, prices in the given base currency.
func DecodePrices(r io.Reader, currency string) (*PriceSeries, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read price history header: %w", err)
	}
	if len(header) != len(csvHeader) {
		return nil, fmt.Errorf("price history header has %d columns, want %d (%v)", len(header), len(csvHeader), csvHeader)
	}

	series := NewPriceSeries(currency)
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("cannot read price history line %d: %w", line, err)
		}
		on, err := ParseDate(record[0])
		if err != nil {
			return nil, fmt.Errorf("invalid date on line %d: %w", line, err)
		}
		prices := make(map[Metal]Money, len(AllMetals))
		for i, metal := range AllMetals {
			v, err := strconv.ParseFloat(record[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid %s price on line %d: %w", metal, line, err)
			}
			prices[metal] = M(v, currency)
		}
		if err := series.Append(on, prices); err != nil {
			return nil, fmt.Errorf("invalid price history on line %d: %w", line, err)
		}
	}
	if series.Len() == 0 {
		return nil, fmt.Errorf("price history is empty")
	}
	return series, nil
}

// EncodePrices writes the series back in the canonical CSV layout.
func EncodePrices(w io.Writer, s *PriceSeries) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, q := range s.Quotes() {
		record := make([]string, 0, len(csvHeader))
		record = append(record, q.On.String())
		for _, metal := range AllMetals {
			record = append(record, q.Prices[metal].value.String())
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
