package metalsim

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// allocationTolerance is how far the weight sum may drift from 1.
var allocationTolerance = decimal.NewFromFloat(1e-6)

// AllocationPolicy holds the target weight of each metal in the portfolio.
// Weights are fractions in [0,1] and sum to 1 within a small tolerance; both
// invariants are enforced at construction.
type AllocationPolicy struct {
	weights map[Metal]decimal.Decimal
}

// NewAllocationPolicy builds a policy from metal target weights. Metals absent
// from the map have weight zero. It fails with *InvalidAllocationError when a
// weight is outside [0,1] or the sum is not 1 ± 1e-6.
func NewAllocationPolicy(weights map[Metal]float64) (*AllocationPolicy, error) {
	p := &AllocationPolicy{weights: make(map[Metal]decimal.Decimal, len(weights))}
	sum := decimal.Zero
	for metal, w := range weights {
		d := decimal.NewFromFloat(w)
		if d.IsNegative() {
			return nil, &InvalidAllocationError{Reason: fmt.Sprintf("%s weight %v is negative", metal, w)}
		}
		if d.GreaterThan(decimal.New(1, 0)) {
			return nil, &InvalidAllocationError{Reason: fmt.Sprintf("%s weight %v exceeds 1", metal, w)}
		}
		p.weights[metal] = d
		sum = sum.Add(d)
	}
	if sum.Sub(decimal.New(1, 0)).Abs().GreaterThan(allocationTolerance) {
		return nil, &InvalidAllocationError{Reason: fmt.Sprintf("weights sum to %s, want 1", sum)}
	}
	return p, nil
}

// DefaultAllocation is the classic 40/30/15/15 gold-heavy split.
func DefaultAllocation() *AllocationPolicy {
	p, err := NewAllocationPolicy(map[Metal]float64{
		Gold:      0.40,
		Silver:    0.30,
		Platinum:  0.15,
		Palladium: 0.15,
	})
	if err != nil {
		panic(err) // static weights, cannot fail
	}
	return p
}

// Weight returns the target weight of a metal as a fraction.
func (p *AllocationPolicy) Weight(metal Metal) decimal.Decimal {
	return p.weights[metal]
}

// TargetValue returns the slice of a total portfolio value that the policy
// assigns to a metal.
func (p *AllocationPolicy) TargetValue(metal Metal, total Money) Money {
	return Money{value: total.value.Mul(p.weights[metal]), cur: total.cur}
}

// Metals returns the metals with a positive target weight, in canonical order.
func (p *AllocationPolicy) Metals() []Metal {
	out := make([]Metal, 0, len(p.weights))
	for _, metal := range AllMetals {
		if w, ok := p.weights[metal]; ok && w.IsPositive() {
			out = append(out, metal)
		}
	}
	return out
}
