// Package clock abstracts wall-clock time so timer-driven progression
// logic can be tested deterministically.
package clock

import "time"

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// System reads time from the system clock.
type System struct{}

// Now returns the current system time.
func (System) Now() time.Time {
	return time.Now()
}

// Manual is a hand-advanced clock for tests.
type Manual struct {
	current time.Time
}

// NewManual creates a manual clock starting at the given instant.
func NewManual(start time.Time) *Manual {
	return &Manual{current: start}
}

// Now returns the manual clock's current instant.
func (m *Manual) Now() time.Time {
	return m.current
}

// Advance moves the clock forward by d and returns the new instant.
func (m *Manual) Advance(d time.Duration) time.Time {
	m.current = m.current.Add(d)
	return m.current
}

// Set moves the clock to an absolute instant.
func (m *Manual) Set(t time.Time) {
	m.current = t
}
