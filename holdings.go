package metalsim

import "fmt"

// Holdings maps each metal to the quantity held. Quantities are never
// negative; zero is a valid holding.
type Holdings map[Metal]Quantity

// NewHoldings returns an empty position in every metal.
func NewHoldings() Holdings {
	h := make(Holdings, len(AllMetals))
	for _, metal := range AllMetals {
		h[metal] = Q(0)
	}
	return h
}

// Clone returns an independent copy of the holdings.
func (h Holdings) Clone() Holdings {
	out := make(Holdings, len(h))
	for metal, q := range h {
		out[metal] = q
	}
	return out
}

// Add increases the position in a metal. A negative delta reduces it; reducing
// below zero is an error.
func (h Holdings) Add(metal Metal, delta Quantity) error {
	q := h[metal].Add(delta)
	if q.IsNegative() {
		return fmt.Errorf("cannot hold %s %s", q, metal)
	}
	h[metal] = q
	return nil
}

// Value returns the market value of the holdings at the given date's prices.
func (h Holdings) Value(on Date, prices *PriceSeries) (Money, error) {
	total := M(0, prices.Currency())
	for _, metal := range AllMetals {
		v, err := h.MetalValue(on, prices, metal)
		if err != nil {
			return Money{}, err
		}
		total = total.Add(v)
	}
	return total, nil
}

// MetalValue returns the market value of one metal position at the given
// date's prices.
func (h Holdings) MetalValue(on Date, prices *PriceSeries, metal Metal) (Money, error) {
	price, err := prices.PriceAt(on, metal)
	if err != nil {
		return Money{}, err
	}
	return price.Mul(h[metal]), nil
}
