package metalsim

import (
	"fmt"
	"iter"
	"time"

	"github.com/robfig/cron/v3"
)

// PurchaseEvent is one systematic purchase: a cash amount invested on a date.
type PurchaseEvent struct {
	On     Date
	Amount Money
}

// PurchaseSchedule generates the ordered sequence of systematic-purchase
// events inside a date window. The sequence is lazy, finite and restartable:
// Events can be ranged over any number of times.
type PurchaseSchedule struct {
	freq   Period
	anchor int // weekday for Weekly, day-of-month for Monthly/Quarterly
	amount Money
	window Range
	cron   cron.Schedule // set instead of freq/anchor for custom specs
}

// NewPurchaseSchedule builds a recurring purchase plan.
//
// For Weekly, anchor is a weekday (time.Sunday..time.Saturday as int). For
// Monthly and Quarterly, anchor is a day of month in [1,31]; an anchor day
// missing from a month (the 31st of February) is clamped to that month's last
// valid day, never silently skipped.
func NewPurchaseSchedule(freq Period, anchor int, amount Money, window Range) (*PurchaseSchedule, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("purchase amount %s must be positive", amount)
	}
	switch freq {
	case Weekly:
		if anchor < 0 || anchor > 6 {
			return nil, fmt.Errorf("weekly anchor %d must be a weekday in [0,6]", anchor)
		}
	case Monthly, Quarterly:
		if anchor < 1 || anchor > 31 {
			return nil, fmt.Errorf("%s anchor %d must be a day of month in [1,31]", freq, anchor)
		}
	default:
		return nil, fmt.Errorf("unsupported purchase frequency %q", freq)
	}
	return &PurchaseSchedule{freq: freq, anchor: anchor, amount: amount, window: window}, nil
}

// NewCronPurchaseSchedule builds a purchase plan from a standard 5-field cron
// expression (e.g. "0 0 1 */2 *" for the 1st of every other month). Multiple
// activations on the same day collapse into a single event.
func NewCronPurchaseSchedule(spec string, amount Money, window Range) (*PurchaseSchedule, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("purchase amount %s must be positive", amount)
	}
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	return &PurchaseSchedule{cron: sched, amount: amount, window: window}, nil
}

// Amount returns the cash amount of each purchase.
func (s *PurchaseSchedule) Amount() Money { return s.amount }

// Window returns the date window events are generated in.
func (s *PurchaseSchedule) Window() Range { return s.window }

// Events returns the purchase events in strictly increasing date order.
func (s *PurchaseSchedule) Events() iter.Seq[PurchaseEvent] {
	return func(yield func(PurchaseEvent) bool) {
		if s.cron != nil {
			s.cronDates(yield)
			return
		}
		switch s.freq {
		case Weekly:
			s.weeklyDates(yield)
		case Monthly, Quarterly:
			s.monthlyDates(yield)
		}
	}
}

func (s *PurchaseSchedule) weeklyDates(yield func(PurchaseEvent) bool) {
	on := s.window.From
	offset := (s.anchor - int(on.Weekday()) + 7) % 7
	on = on.Add(offset)
	for !on.After(s.window.To) {
		if !yield(PurchaseEvent{On: on, Amount: s.amount}) {
			return
		}
		on = on.Add(7)
	}
}

func (s *PurchaseSchedule) monthlyDates(yield func(PurchaseEvent) bool) {
	step := s.freq.Months()
	// Stepping is anchored at the window's first month, not at calendar
	// quarters: a quarterly plan starting in February buys in Feb, May, Aug
	// and Nov. An anchor day before the window start is skipped, not caught up.
	for month := s.window.From.StartOf(Monthly); !month.After(s.window.To); month = month.AddMonth(step) {
		on := ClampedDate(month.Year(), month.Month(), s.anchor)
		if !s.window.Contains(on) {
			continue
		}
		if !yield(PurchaseEvent{On: on, Amount: s.amount}) {
			return
		}
	}
}

func (s *PurchaseSchedule) cronDates(yield func(PurchaseEvent) bool) {
	// Start just before midnight so an activation on From itself is found.
	t := s.window.From.Time().Add(-time.Second)
	end := s.window.To.Time().Add(24 * time.Hour)
	previous := Date{}
	for {
		t = s.cron.Next(t)
		if t.IsZero() || !t.Before(end) {
			return
		}
		on := NewDate(t.Date())
		if on == previous {
			continue
		}
		previous = on
		if !yield(PurchaseEvent{On: on, Amount: s.amount}) {
			return
		}
	}
}
