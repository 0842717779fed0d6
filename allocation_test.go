package metalsim

import (
	"errors"
	"slices"
	"testing"
)

func TestNewAllocationPolicy(t *testing.T) {
	testCases := []struct {
		name    string
		weights map[Metal]float64
		valid   bool
	}{
		{"default split", map[Metal]float64{Gold: 0.4, Silver: 0.3, Platinum: 0.15, Palladium: 0.15}, true},
		{"single metal", map[Metal]float64{Gold: 1}, true},
		{"within tolerance", map[Metal]float64{Gold: 0.5, Silver: 0.5000001}, true},
		{"sum below one", map[Metal]float64{Gold: 0.5, Silver: 0.4}, false},
		{"sum above one", map[Metal]float64{Gold: 0.6, Silver: 0.6}, false},
		{"negative weight", map[Metal]float64{Gold: 1.5, Silver: -0.5}, false},
		{"weight above one", map[Metal]float64{Gold: 1.2}, false},
		{"empty", map[Metal]float64{}, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewAllocationPolicy(tc.weights)
			if tc.valid && err != nil {
				t.Errorf("NewAllocationPolicy(%v) = %v, want ok", tc.weights, err)
			}
			if !tc.valid {
				var invalid *InvalidAllocationError
				if !errors.As(err, &invalid) {
					t.Errorf("NewAllocationPolicy(%v) = %v, want *InvalidAllocationError", tc.weights, err)
				}
			}
		})
	}
}

func TestTargetValue(t *testing.T) {
	policy := DefaultAllocation()
	total := eur(100000)
	testCases := []struct {
		metal Metal
		want  Money
	}{
		{Gold, eur(40000)},
		{Silver, eur(30000)},
		{Platinum, eur(15000)},
		{Palladium, eur(15000)},
	}
	for _, tc := range testCases {
		if got := policy.TargetValue(tc.metal, total); !got.Equal(tc.want) {
			t.Errorf("TargetValue(%s, %s) = %s, want %s", tc.metal, total, got, tc.want)
		}
	}
}

func TestAllocationMetals(t *testing.T) {
	policy, err := NewAllocationPolicy(map[Metal]float64{Silver: 0.7, Gold: 0.3, Platinum: 0})
	if err != nil {
		t.Fatal(err)
	}
	// Zero-weight metals are dropped; the rest come back in canonical order.
	want := []Metal{Gold, Silver}
	if got := policy.Metals(); !slices.Equal(got, want) {
		t.Errorf("Metals() = %v, want %v", got, want)
	}
}
