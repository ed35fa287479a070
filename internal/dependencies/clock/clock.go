package clock

import "time"

// Clock provides the current time and can be swapped for a mock in tests
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time in UTC. All persisted timestamps are UTC.
func (c *RealClock) Now() time.Time {
	return time.Now().UTC()
}
