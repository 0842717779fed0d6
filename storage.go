package metalsim

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FeeBasis selects what a storage fee is computed on.
type FeeBasis int

const (
	// BasisMarketValue charges on the current market value of the holdings.
	BasisMarketValue FeeBasis = iota
	// BasisInvestedCash charges on the cumulative cash invested so far.
	BasisInvestedCash
)

func (b FeeBasis) String() string {
	switch b {
	case BasisMarketValue:
		return "market-value"
	case BasisInvestedCash:
		return "invested-cash"
	default:
		return fmt.Sprintf("basis(%d)", int(b))
	}
}

// ParseFeeBasis parses a fee basis name.
func ParseFeeBasis(s string) (FeeBasis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "market-value", "value":
		return BasisMarketValue, nil
	case "invested-cash", "invested":
		return BasisInvestedCash, nil
	default:
		return 0, fmt.Errorf("unknown fee basis %q", s)
	}
}

// FeeFunding selects how a storage fee is paid.
type FeeFunding int

const (
	// FundFromCash pays the fee from an external cash buffer; holdings stay intact.
	FundFromCash FeeFunding = iota
	// FundSellProportional raises the fee by selling each held metal in
	// proportion to its share of the portfolio's market value, so fee
	// deduction alone never drifts the allocation.
	FundSellProportional
)

func (f FeeFunding) String() string {
	switch f {
	case FundFromCash:
		return "cash"
	case FundSellProportional:
		return "sell-proportional"
	default:
		return fmt.Sprintf("funding(%d)", int(f))
	}
}

// ParseFeeFunding parses a fee funding method name.
func ParseFeeFunding(s string) (FeeFunding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash":
		return FundFromCash, nil
	case "sell-proportional", "sell", "metals":
		return FundSellProportional, nil
	default:
		return 0, fmt.Errorf("unknown fee funding %q", s)
	}
}

// StorageCostConfig models the periodic depositary fee for holding physical
// metal in custody. Immutable during a run.
type StorageCostConfig struct {
	Rate      Percent // annualized rate
	Basis     FeeBasis
	Funding   FeeFunding
	Frequency Period  // Monthly or Yearly deduction
	VATRate   Percent // tax applied on top of the net fee, 0 for none
}

// Validate rejects configurations that would misbehave deep in a run.
func (c StorageCostConfig) Validate() error {
	if c.Rate < 0 {
		return fmt.Errorf("storage rate %s is negative", c.Rate)
	}
	if c.VATRate < 0 {
		return fmt.Errorf("storage VAT rate %s is negative", c.VATRate)
	}
	if c.Frequency != Monthly && c.Frequency != Yearly {
		return fmt.Errorf("storage fee frequency must be monthly or yearly, got %q", c.Frequency)
	}
	return nil
}

// periodsPerYear returns how many deductions happen per year.
func (c StorageCostConfig) periodsPerYear() int {
	if c.Frequency == Monthly {
		return 12
	}
	return 1
}

// FeeFor computes the fee due on a date: the annualized rate pro-rated for
// one deduction period, applied to the configured basis, plus VAT. It is a
// pure function of the passed-in state.
func (c StorageCostConfig) FeeFor(on Date, holdings Holdings, prices *PriceSeries, invested Money) (Money, error) {
	var base Money
	switch c.Basis {
	case BasisMarketValue:
		v, err := holdings.Value(on, prices)
		if err != nil {
			return Money{}, err
		}
		base = v
	case BasisInvestedCash:
		base = invested
	default:
		return Money{}, fmt.Errorf("unknown fee basis %d", c.Basis)
	}
	// Pro-rate in decimal: 1.2%/year deducted monthly must be exactly 0.1%.
	periodRate := c.Rate.Rate().Div(decimal.NewFromInt(int64(c.periodsPerYear())))
	net := Money{value: base.value.Mul(periodRate), cur: base.cur}
	vat := c.VATRate.Of(net)
	return net.Add(vat), nil
}
