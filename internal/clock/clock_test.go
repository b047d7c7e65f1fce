package clock

import (
	"testing"
	"time"
)

func TestIsLastDayOfMonth(t *testing.T) {
	tests := []struct {
		date string
		want bool
	}{
		{"2026-08-31", true},
		{"2026-08-30", false},
		{"2026-02-28", true},
		{"2028-02-28", false}, // leap year
		{"2028-02-29", true},
		{"2026-12-31", true},
		{"2026-01-01", false},
	}

	for _, tt := range tests {
		d, err := time.Parse("2006-01-02", tt.date)
		if err != nil {
			t.Fatalf("Failed to parse %s: %v", tt.date, err)
		}
		if got := IsLastDayOfMonth(d); got != tt.want {
			t.Errorf("IsLastDayOfMonth(%s) = %v, want %v", tt.date, got, tt.want)
		}
	}
}

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds(2026, time.February, time.UTC)

	if got := start.Format("2006-01-02"); got != "2026-02-01" {
		t.Errorf("Expected start 2026-02-01, got %s", got)
	}
	if got := end.Format("2006-01-02"); got != "2026-02-28" {
		t.Errorf("Expected end 2026-02-28, got %s", got)
	}
}

func TestMidnight(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("Failed to load location: %v", err)
	}

	noon := time.Date(2026, 8, 20, 12, 34, 56, 789, loc)
	m := Midnight(noon)

	if m.Hour() != 0 || m.Minute() != 0 || m.Second() != 0 || m.Nanosecond() != 0 {
		t.Errorf("Expected midnight, got %v", m)
	}
	if m.Location() != loc {
		t.Errorf("Expected location preserved, got %v", m.Location())
	}
}

func TestFixedClock(t *testing.T) {
	instant := time.Date(2026, 8, 20, 15, 30, 0, 0, time.UTC)
	clk := Fixed(instant)

	if !clk.Now().Equal(instant) {
		t.Errorf("Expected pinned instant, got %v", clk.Now())
	}
	if got := clk.Today().Format("2006-01-02 15:04:05"); got != "2026-08-20 00:00:00" {
		t.Errorf("Expected midnight of the pinned day, got %s", got)
	}
}
