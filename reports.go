package metalsim

import "fmt"

// SimulationReport is the presentation-ready view of a completed run,
// consumed by the renderer package (markdown, chart, PDF).
type SimulationReport struct {
	Name        string
	Currency    string
	Window      Range
	Performance *Performance
	Risk        *RiskMetrics // nil when the ledger is too short
	RealReturn  Percent      // inflation-adjusted ROI
	// Liquidation is the cash the final holdings would raise at the cost
	// model's sell prices. Zero when the run traded without a cost model.
	Liquidation Money
	Positions   []PositionEntry
	Timeline    []TimelineEntry
}

// PositionEntry is the final state of one metal position.
type PositionEntry struct {
	Metal    Metal
	Quantity Quantity
	Value    Money
	Weight   Percent // share of the final portfolio value
}

// TimelineEntry is one row of the portfolio history table.
type TimelineEntry struct {
	Date     Date
	Total    Money
	Invested Money
	FeesPaid Money
	Tag      EventTag
}

// LiquidationValue estimates the cash raised by selling the holdings of a
// snapshot at the cost model's sell prices. The ledger itself always values
// positions at spot; the dealer's sale spread only matters when cashing out.
func LiquidationValue(final Snapshot, prices *PriceSeries, costs CostModel) (Money, error) {
	if costs == nil {
		costs = NoCost{}
	}
	total := M(0, prices.Currency())
	for _, metal := range AllMetals {
		spot, err := prices.PriceAt(final.On, metal)
		if err != nil {
			return Money{}, err
		}
		total = total.Add(costs.SellPrice(metal, spot).Mul(final.Holdings[metal]))
	}
	return total, nil
}

// NewSimulationReport derives the report from a completed ledger. A nil
// inflation table skips the real-return figure.
func NewSimulationReport(name string, ledger []Snapshot, inflation *InflationTable) (*SimulationReport, error) {
	perf, err := Analyze(ledger)
	if err != nil {
		return nil, fmt.Errorf("cannot report on run %q: %w", name, err)
	}
	final := ledger[len(ledger)-1]

	report := &SimulationReport{
		Name:        name,
		Currency:    final.Total.Currency(),
		Window:      perf.Window,
		Performance: perf,
		RealReturn:  perf.ROI,
	}
	if inflation != nil {
		report.RealReturn = inflation.RealReturn(perf.ROI, perf.Window)
	}
	if risk, err := Risk(ledger); err == nil {
		report.Risk = risk
	}

	for _, metal := range AllMetals {
		entry := PositionEntry{
			Metal:    metal,
			Quantity: final.Holdings[metal],
			Value:    final.Values[metal],
		}
		if final.Total.IsPositive() {
			entry.Weight = Percent(entry.Value.InexactFloat64() / final.Total.InexactFloat64() * 100)
		}
		report.Positions = append(report.Positions, entry)
	}

	for _, snap := range ledger {
		report.Timeline = append(report.Timeline, TimelineEntry{
			Date:     snap.On,
			Total:    snap.Total,
			Invested: snap.Invested,
			FeesPaid: snap.FeesPaid,
			Tag:      snap.Tag,
		})
	}
	return report, nil
}
