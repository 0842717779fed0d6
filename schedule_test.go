package metalsim

import (
	"slices"
	"testing"
	"time"
)

func collectDates(s *PurchaseSchedule) []string {
	var out []string
	for ev := range s.Events() {
		out = append(out, ev.On.String())
	}
	return out
}

func TestWeeklySchedule(t *testing.T) {
	window := NewRange(MustParseDate("2024-01-01"), MustParseDate("2024-01-31"))
	// 2024-01-01 is a Monday; anchor on Fridays.
	s, err := NewPurchaseSchedule(Weekly, int(time.Friday), eur(100), window)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2024-01-05", "2024-01-12", "2024-01-19", "2024-01-26"}
	if got := collectDates(s); !slices.Equal(got, want) {
		t.Errorf("weekly events = %v, want %v", got, want)
	}
}

func TestMonthlyScheduleClampsAnchor(t *testing.T) {
	window := NewRange(MustParseDate("2024-01-01"), MustParseDate("2024-04-30"))
	s, err := NewPurchaseSchedule(Monthly, 31, eur(100), window)
	if err != nil {
		t.Fatal(err)
	}
	// February 31st does not exist; the event lands on the 29th (leap year),
	// never skips the month.
	want := []string{"2024-01-31", "2024-02-29", "2024-03-31", "2024-04-30"}
	if got := collectDates(s); !slices.Equal(got, want) {
		t.Errorf("monthly events = %v, want %v", got, want)
	}
}

func TestQuarterlySchedule(t *testing.T) {
	// Quarterly stepping follows the window's start month, not calendar
	// quarters: a plan starting in February buys in Feb, May, Aug and Nov.
	window := NewRange(MustParseDate("2024-02-01"), MustParseDate("2024-12-31"))
	s, err := NewPurchaseSchedule(Quarterly, 15, eur(100), window)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2024-02-15", "2024-05-15", "2024-08-15", "2024-11-15"}
	if got := collectDates(s); !slices.Equal(got, want) {
		t.Errorf("quarterly events = %v, want %v", got, want)
	}
}

func TestQuarterlyScheduleSkipsAnchorBeforeStart(t *testing.T) {
	// The anchor day of the first month falls before the window start; it is
	// dropped, and the next purchase is three months later.
	window := NewRange(MustParseDate("2024-02-20"), MustParseDate("2024-12-31"))
	s, err := NewPurchaseSchedule(Quarterly, 15, eur(100), window)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2024-05-15", "2024-08-15", "2024-11-15"}
	if got := collectDates(s); !slices.Equal(got, want) {
		t.Errorf("quarterly events = %v, want %v", got, want)
	}
}

func TestScheduleIsRestartable(t *testing.T) {
	window := NewRange(MustParseDate("2024-01-01"), MustParseDate("2024-03-31"))
	s, err := NewPurchaseSchedule(Monthly, 1, eur(100), window)
	if err != nil {
		t.Fatal(err)
	}
	first := collectDates(s)
	second := collectDates(s)
	if !slices.Equal(first, second) {
		t.Errorf("second iteration = %v, want %v", second, first)
	}
}

func TestCronSchedule(t *testing.T) {
	window := NewRange(MustParseDate("2024-01-01"), MustParseDate("2024-03-31"))
	s, err := NewCronPurchaseSchedule("0 0 15 * *", eur(100), window)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2024-01-15", "2024-02-15", "2024-03-15"}
	if got := collectDates(s); !slices.Equal(got, want) {
		t.Errorf("cron events = %v, want %v", got, want)
	}
}

func TestCronScheduleIncludesWindowStart(t *testing.T) {
	window := NewRange(MustParseDate("2024-01-15"), MustParseDate("2024-02-28"))
	s, err := NewCronPurchaseSchedule("0 0 15 * *", eur(100), window)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2024-01-15", "2024-02-15"}
	if got := collectDates(s); !slices.Equal(got, want) {
		t.Errorf("cron events = %v, want %v", got, want)
	}
}

func TestScheduleRejectsBadInput(t *testing.T) {
	window := NewRange(MustParseDate("2024-01-01"), MustParseDate("2024-12-31"))
	testCases := []struct {
		name   string
		build  func() (*PurchaseSchedule, error)
	}{
		{"zero amount", func() (*PurchaseSchedule, error) {
			return NewPurchaseSchedule(Monthly, 1, eur(0), window)
		}},
		{"negative amount", func() (*PurchaseSchedule, error) {
			return NewPurchaseSchedule(Weekly, 1, eur(-10), window)
		}},
		{"weekday out of range", func() (*PurchaseSchedule, error) {
			return NewPurchaseSchedule(Weekly, 7, eur(100), window)
		}},
		{"day of month out of range", func() (*PurchaseSchedule, error) {
			return NewPurchaseSchedule(Monthly, 0, eur(100), window)
		}},
		{"daily unsupported", func() (*PurchaseSchedule, error) {
			return NewPurchaseSchedule(Daily, 1, eur(100), window)
		}},
		{"invalid cron spec", func() (*PurchaseSchedule, error) {
			return NewCronPurchaseSchedule("not a cron spec", eur(100), window)
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.build(); err == nil {
				t.Error("want an error")
			}
		})
	}
}
