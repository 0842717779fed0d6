package metalsim

import "fmt"

// EventTag marks what happened on a snapshot's date. When several events fall
// on the same date the snapshot carries the dominant one:
// rebalance > fee > purchase > none.
type EventTag int

const (
	TagNone EventTag = iota
	TagPurchase
	TagFee
	TagRebalance
)

func (t EventTag) String() string {
	switch t {
	case TagNone:
		return "none"
	case TagPurchase:
		return "purchase"
	case TagFee:
		return "fee-deduction"
	case TagRebalance:
		return "rebalance"
	default:
		return fmt.Sprintf("event(%d)", int(t))
	}
}

// ParseEventTag parses an event tag name as written by EncodeLedger.
func ParseEventTag(s string) (EventTag, error) {
	switch s {
	case "none":
		return TagNone, nil
	case "purchase":
		return TagPurchase, nil
	case "fee-deduction":
		return TagFee, nil
	case "rebalance":
		return TagRebalance, nil
	default:
		return 0, fmt.Errorf("unknown event tag %q", s)
	}
}

// dominates reports whether t outranks o in snapshot tagging.
func (t EventTag) dominates(o EventTag) bool { return t > o }

// Snapshot is a point-in-time record of the simulated portfolio. Snapshots
// are created once per simulated date and immutable afterwards; the ledger
// returned by a run is an append-only ordered sequence of them.
type Snapshot struct {
	On       Date
	Holdings Holdings
	Values   map[Metal]Money // market value per metal at On's prices
	Total    Money           // total portfolio market value
	Invested Money           // cumulative cash invested so far
	FeesPaid Money           // cumulative cash withdrawn for storage fees
	Tag      EventTag
}

// snapshot values the holdings at the given date and freezes the state.
func snapshot(on Date, h Holdings, prices *PriceSeries, invested, feesPaid Money, tag EventTag) (Snapshot, error) {
	values := make(map[Metal]Money, len(AllMetals))
	total := M(0, prices.Currency())
	for _, metal := range AllMetals {
		v, err := h.MetalValue(on, prices, metal)
		if err != nil {
			return Snapshot{}, err
		}
		values[metal] = v
		total = total.Add(v)
	}
	return Snapshot{
		On:       on,
		Holdings: h.Clone(),
		Values:   values,
		Total:    total,
		Invested: invested,
		FeesPaid: feesPaid,
		Tag:      tag,
	}, nil
}
