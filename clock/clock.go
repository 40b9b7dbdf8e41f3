// Package clock provides the time sources timers are driven by.
//
// Real reads the system monotonic clock, Mock is advanced by hand in tests and
// Pausable wraps another Clock and freezes its reading while paused.
package clock

import "time"

// Clock is the time source consumed by timers and the refresh loop
type Clock interface {
	// Now returns the current time, with monotonic reading where available
	Now() time.Time

	// Since returns the time elapsed since t as seen by this clock
	Since(t time.Time) time.Duration

	// After waits for d to elapse and then sends the current time
	After(d time.Duration) <-chan time.Time
}

// Real provides the system time with monotonic clock readings
type Real struct{}

// NewReal creates a new monotonic time source
func NewReal() *Real {
	return &Real{}
}

// Now returns the current time with monotonic clock reading
func (Real) Now() time.Time {
	return time.Now()
}

// Since returns monotonic elapsed time since t
func (Real) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// After delegates to time.After
func (Real) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
