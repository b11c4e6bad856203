// Package clock abstracts the time source so services can be tested with a
// frozen clock.
package clock

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock in UTC.
type System struct{}

// Now implements Clock.
func (System) Now() time.Time {
	return time.Now().UTC()
}

// Fixed always returns the wrapped instant. Intended for tests.
type Fixed struct {
	Instant time.Time
}

// Now implements Clock.
func (f Fixed) Now() time.Time {
	return f.Instant
}
