package metalsim

import (
	"fmt"
	"slices"
)

// Simulation is a deterministic forward walk of a precious-metals portfolio
// over a historical price path. All inputs are static; Run holds no shared
// state, so independent simulations can run concurrently.
type Simulation struct {
	Prices     *PriceSeries
	Allocation *AllocationPolicy
	Window     Range

	// InitialCapital is invested on the window's first day, allocated to
	// target weights. Zero means no initial purchase.
	InitialCapital Money

	// Schedule generates systematic purchases. Optional.
	Schedule *PurchaseSchedule

	// Rebalances are the dates (at most two) at which holdings are forced
	// back to target weights at current prices.
	Rebalances []Date

	// Storage models the periodic depositary fee. Optional.
	Storage *StorageCostConfig

	// Costs is the transaction-cost hook. Nil means trading at spot.
	Costs CostModel
}

// dayEvents collects what is due on a single simulated date.
type dayEvents struct {
	purchase  Money
	rebalance bool
	fee       bool
}

// Validate rejects a misconfigured simulation before any computation starts.
func (s *Simulation) Validate() error {
	if s.Prices == nil || s.Prices.Len() == 0 {
		return fmt.Errorf("simulation needs a non-empty price series")
	}
	if s.Allocation == nil {
		return fmt.Errorf("simulation needs an allocation policy")
	}
	if s.InitialCapital.IsNegative() {
		return fmt.Errorf("initial capital %s is negative", s.InitialCapital)
	}
	if s.Window.From.After(s.Prices.Last()) || s.Window.From.Before(s.Prices.First()) {
		return &OutOfRangeError{Requested: s.Window.From, First: s.Prices.First(), Last: s.Prices.Last()}
	}
	if len(s.Rebalances) > 2 {
		return fmt.Errorf("at most two rebalance dates are supported, got %d", len(s.Rebalances))
	}
	for i, on := range s.Rebalances {
		if !s.Window.Contains(on) {
			return fmt.Errorf("rebalance date %s is outside the simulation window [%s, %s]", on, s.Window.From, s.Window.To)
		}
		if i > 0 && !s.Rebalances[i-1].Before(on) {
			return fmt.Errorf("rebalance dates must be distinct and chronological, got %s then %s", s.Rebalances[i-1], on)
		}
	}
	if s.Storage != nil {
		if err := s.Storage.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Run walks the simulation window and returns the complete ordered ledger of
// snapshots: one per event date, plus the window's first and last day. Any
// failure mid-walk abandons the run and surfaces as *SimulationError; no
// partial ledger is returned.
func (s *Simulation) Run() ([]Snapshot, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	costs := s.Costs
	if costs == nil {
		costs = NoCost{}
	}

	events := s.plan()
	days := make([]Date, 0, len(events))
	for on := range events {
		days = append(days, on)
	}
	slices.SortFunc(days, Date.Compare)

	currency := s.Prices.Currency()
	holdings := NewHoldings()
	invested := M(0, currency)
	feesPaid := M(0, currency)
	ledger := make([]Snapshot, 0, len(days))

	for _, on := range days {
		due := events[on]
		tag := TagNone

		if due.purchase.IsPositive() {
			if err := s.applyPurchase(on, due.purchase, holdings, costs); err != nil {
				return nil, &SimulationError{On: on, Err: err}
			}
			invested = invested.Add(due.purchase)
			tag = TagPurchase
		}
		if due.rebalance {
			if err := s.applyRebalance(on, holdings, costs); err != nil {
				return nil, &SimulationError{On: on, Err: err}
			}
			tag = TagRebalance
		}
		if due.fee {
			fee, err := s.applyFee(on, holdings, invested)
			if err != nil {
				return nil, &SimulationError{On: on, Err: err}
			}
			feesPaid = feesPaid.Add(fee)
			if TagFee.dominates(tag) {
				tag = TagFee
			}
		}

		snap, err := snapshot(on, holdings, s.Prices, invested, feesPaid, tag)
		if err != nil {
			return nil, &SimulationError{On: on, Err: err}
		}
		ledger = append(ledger, snap)
	}
	return ledger, nil
}

// plan collects every date the walk must visit and what is due there.
func (s *Simulation) plan() map[Date]*dayEvents {
	events := make(map[Date]*dayEvents)
	at := func(on Date) *dayEvents {
		e, ok := events[on]
		if !ok {
			e = &dayEvents{purchase: M(0, s.Prices.Currency())}
			events[on] = e
		}
		return e
	}

	// The window boundaries are always snapshotted, even without events.
	at(s.Window.From)
	at(s.Window.To)

	if s.InitialCapital.IsPositive() {
		e := at(s.Window.From)
		e.purchase = e.purchase.Add(s.InitialCapital)
	}
	if s.Schedule != nil {
		for ev := range s.Schedule.Events() {
			if !s.Window.Contains(ev.On) {
				continue
			}
			e := at(ev.On)
			e.purchase = e.purchase.Add(ev.Amount)
		}
	}
	for _, on := range s.Rebalances {
		at(on).rebalance = true
	}
	if s.Storage != nil {
		for on := range s.feeDates() {
			at(on).fee = true
		}
	}
	return events
}

// feeDates yields the storage-fee deduction dates: the last day of each fee
// period that ends inside the window.
func (s *Simulation) feeDates() map[Date]bool {
	out := make(map[Date]bool)
	on := s.Window.From.EndOf(s.Storage.Frequency)
	for !on.After(s.Window.To) {
		out[on] = true
		on = on.Add(1).EndOf(s.Storage.Frequency)
	}
	return out
}

// applyPurchase converts cash into metal at current prices. New cash is always
// allocated to the policy's target weights, never to the current drifted
// weights, so systematic purchases keep buying toward target.
func (s *Simulation) applyPurchase(on Date, amount Money, holdings Holdings, costs CostModel) error {
	for _, metal := range s.Allocation.Metals() {
		slice := s.Allocation.TargetValue(metal, amount)
		spot, err := s.Prices.PriceAt(on, metal)
		if err != nil {
			return err
		}
		price := costs.BuyPrice(metal, spot)
		if err := holdings.Add(metal, slice.DivPrice(price)); err != nil {
			return err
		}
	}
	return nil
}

// applyRebalance buys and sells so that post-rebalance market values match the
// target weights at current prices. Sales execute at spot so the reduced
// position lands exactly on target; purchases pay the cost model's buy price,
// which with a dealer spread leaves the bought position slightly under target.
func (s *Simulation) applyRebalance(on Date, holdings Holdings, costs CostModel) error {
	total, err := holdings.Value(on, s.Prices)
	if err != nil {
		return err
	}
	if !total.IsPositive() {
		return nil // nothing to rebalance
	}
	for _, metal := range AllMetals {
		spot, err := s.Prices.PriceAt(on, metal)
		if err != nil {
			return err
		}
		target := s.Allocation.TargetValue(metal, total)
		current := spot.Mul(holdings[metal])
		diff := target.Sub(current)
		switch {
		case diff.IsPositive():
			price := costs.BuyPrice(metal, spot)
			if err := holdings.Add(metal, diff.DivPrice(price)); err != nil {
				return err
			}
		case diff.IsNegative():
			if err := holdings.Add(metal, diff.Abs().DivPrice(spot).Neg()); err != nil {
				return err
			}
		}
	}
	return nil
}

// applyFee computes the storage fee due on a date and deducts it per the
// configured funding method. With proportional metal sale, every held metal
// loses the same fraction of its market value, so the relative allocation is
// preserved up to rounding.
func (s *Simulation) applyFee(on Date, holdings Holdings, invested Money) (Money, error) {
	fee, err := s.Storage.FeeFor(on, holdings, s.Prices, invested)
	if err != nil {
		return Money{}, err
	}
	if !fee.IsPositive() {
		return M(0, s.Prices.Currency()), nil
	}
	if s.Storage.Funding == FundSellProportional {
		total, err := holdings.Value(on, s.Prices)
		if err != nil {
			return Money{}, err
		}
		if total.LessThan(fee) {
			return Money{}, fmt.Errorf("storage fee %s exceeds portfolio value %s", fee, total)
		}
		fraction := fee.DivPrice(total)
		for _, metal := range AllMetals {
			sold := holdings[metal].Mul(fraction)
			if sold.IsZero() {
				continue
			}
			if err := holdings.Add(metal, sold.Neg()); err != nil {
				return Money{}, err
			}
		}
	}
	return fee, nil
}
