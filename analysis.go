package metalsim

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Performance summarizes the outcome of a simulation ledger.
type Performance struct {
	Window     Range
	FinalValue Money
	Invested   Money
	FeesPaid   Money
	ProfitLoss Money
	ROI        Percent // simple return on invested cash
	Annualized Percent // compound annual growth rate over the window
}

// Analyze computes the performance summary of a completed ledger.
func Analyze(ledger []Snapshot) (*Performance, error) {
	if len(ledger) == 0 {
		return nil, fmt.Errorf("cannot analyze an empty ledger")
	}
	first, last := ledger[0], ledger[len(ledger)-1]
	p := &Performance{
		Window:     Range{From: first.On, To: last.On},
		FinalValue: last.Total,
		Invested:   last.Invested,
		FeesPaid:   last.FeesPaid,
		ProfitLoss: last.Total.Sub(last.Invested),
	}
	if !last.Invested.IsPositive() {
		return p, nil
	}
	ratio := last.Total.InexactFloat64() / last.Invested.InexactFloat64()
	p.ROI = Percent((ratio - 1) * 100)
	if years := p.Window.Years(); years > 0 {
		p.Annualized = Percent((math.Pow(ratio, 1/years) - 1) * 100)
	}
	return p, nil
}

// RiskMetrics describes the variability of the portfolio value across the
// ledger. Returns are computed between consecutive snapshots, so with an
// event-driven walk they measure event-to-event variability.
type RiskMetrics struct {
	Volatility  Percent // standard deviation of periodic returns
	MaxDrawdown Percent // worst peak-to-trough decline of the total value
}

// Risk computes risk metrics over a ledger. It needs at least two snapshots.
func Risk(ledger []Snapshot) (*RiskMetrics, error) {
	if len(ledger) < 2 {
		return nil, fmt.Errorf("risk metrics need at least two snapshots, got %d", len(ledger))
	}

	returns := make([]float64, 0, len(ledger)-1)
	for i := 1; i < len(ledger); i++ {
		prev := ledger[i-1].Total.InexactFloat64()
		// Exclude external cash flows: compare values net of the cash added
		// between the two snapshots.
		flow := ledger[i].Invested.InexactFloat64() - ledger[i-1].Invested.InexactFloat64()
		cur := ledger[i].Total.InexactFloat64() - flow
		if prev > 0 {
			returns = append(returns, cur/prev-1)
		}
	}

	m := &RiskMetrics{}
	if len(returns) > 1 {
		m.Volatility = Percent(stat.StdDev(returns, nil) * 100)
	}

	peak := ledger[0].Total.InexactFloat64()
	worst := 0.0
	for _, snap := range ledger[1:] {
		v := snap.Total.InexactFloat64()
		if v > peak {
			peak = v
		} else if peak > 0 {
			if dd := (peak - v) / peak; dd > worst {
				worst = dd
			}
		}
	}
	m.MaxDrawdown = Percent(worst * 100)
	return m, nil
}
