package metalsim

import (
	"testing"
	"time"
)

func TestClampedDate(t *testing.T) {
	testCases := []struct {
		name  string
		year  int
		month time.Month
		day   int
		want  string
	}{
		{"regular day", 2024, time.March, 15, "2024-03-15"},
		{"day 31 in february (leap)", 2024, time.February, 31, "2024-02-29"},
		{"day 31 in february", 2023, time.February, 31, "2023-02-28"},
		{"day 31 in april", 2023, time.April, 31, "2023-04-30"},
		{"day 31 in january", 2023, time.January, 31, "2023-01-31"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClampedDate(tc.year, tc.month, tc.day)
			if got.String() != tc.want {
				t.Errorf("ClampedDate(%d, %s, %d) = %s, want %s", tc.year, tc.month, tc.day, got, tc.want)
			}
		})
	}
}

func TestStartEndOf(t *testing.T) {
	d := MustParseDate("2024-05-15") // a Wednesday
	testCases := []struct {
		period     Period
		start, end string
	}{
		{Daily, "2024-05-15", "2024-05-15"},
		{Weekly, "2024-05-13", "2024-05-19"},
		{Monthly, "2024-05-01", "2024-05-31"},
		{Quarterly, "2024-04-01", "2024-06-30"},
		{Yearly, "2024-01-01", "2024-12-31"},
	}
	for _, tc := range testCases {
		t.Run(tc.period.String(), func(t *testing.T) {
			if got := d.StartOf(tc.period); got.String() != tc.start {
				t.Errorf("StartOf(%s) = %s, want %s", tc.period, got, tc.start)
			}
			if got := d.EndOf(tc.period); got.String() != tc.end {
				t.Errorf("EndOf(%s) = %s, want %s", tc.period, got, tc.end)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	testCases := []struct {
		in        string
		want      string
		expectErr bool
	}{
		{"2024-01-02", "2024-01-02", false},
		{"2024-1-2", "2024-01-02", false},
		{" 2024-01-02 ", "2024-01-02", false},
		{"02/01/2024", "", true},
		{"", "", true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDate(tc.in)
			if (err != nil) != tc.expectErr {
				t.Fatalf("ParseDate(%q) error = %v, want error: %v", tc.in, err, tc.expectErr)
			}
			if err == nil && got.String() != tc.want {
				t.Errorf("ParseDate(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestRangeYears(t *testing.T) {
	r := Range{From: MustParseDate("2020-01-01"), To: MustParseDate("2021-01-01")}
	years := r.Years()
	if years < 0.99 || years > 1.01 {
		t.Errorf("Years() = %v, want ~1", years)
	}
}
