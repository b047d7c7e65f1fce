// Package clock supplies the current trading date in the reference timezone.
// All "today" decisions in the system (trade date defaults, snapshot dates,
// month-end detection) go through a Clock so tests can pin time.
package clock

import "time"

// DefaultTimezone is the reference market timezone.
const DefaultTimezone = "America/New_York"

// Clock provides the current trading date and time.
type Clock interface {
	// Now returns the current instant in the reference timezone.
	Now() time.Time
	// Today returns the current date in the reference timezone,
	// truncated to midnight.
	Today() time.Time
	// Location returns the reference timezone.
	Location() *time.Location
}

type marketClock struct {
	loc *time.Location
}

// New returns a Clock for the given timezone name.
func New(timezone string) (Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return &marketClock{loc: loc}, nil
}

func (c *marketClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *marketClock) Today() time.Time {
	return Midnight(c.Now())
}

func (c *marketClock) Location() *time.Location {
	return c.loc
}

// fixedClock always reports the same instant. Used by tests and by jobs that
// must evaluate a full run against a single point in time.
type fixedClock struct {
	t time.Time
}

// Fixed returns a Clock pinned to t.
func Fixed(t time.Time) Clock {
	return &fixedClock{t: t}
}

func (c *fixedClock) Now() time.Time           { return c.t }
func (c *fixedClock) Today() time.Time         { return Midnight(c.t) }
func (c *fixedClock) Location() *time.Location { return c.t.Location() }

// Midnight truncates t to the start of its calendar day, keeping the location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsLastDayOfMonth reports whether t falls on the last calendar day of its month.
func IsLastDayOfMonth(t time.Time) bool {
	return t.AddDate(0, 0, 1).Day() == 1
}

// MonthBounds returns the first and last calendar day of the given month.
func MonthBounds(year int, month time.Month, loc *time.Location) (start, end time.Time) {
	start = time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end = start.AddDate(0, 1, -1)
	return start, end
}
