// Package timer implements the two time-keeping models behind the display.
//
// # Coarse timer
//
// CoarseTimer counts whole seconds. Each update call blocks until one
// threshold (one second by default) has passed since the start instant the
// caller supplies, then moves the value by exactly one second, carrying or
// borrowing between seconds, minutes and hours. A countdown saturates at zero.
// The wait sleeps on the injected clock.Clock until the deadline instead of
// spinning, and can be abandoned through its context.
//
// # Precise timer
//
// PreciseTimer never accumulates. It keeps a fixed anchor duration and the most
// recent elapsed sample, and derives the displayed time from them on demand:
// anchor+elapsed counting up, max(0, anchor-elapsed) counting down. Sampling
// overwrites the previous sample, so repeated refreshes cannot drift.
//
// Neither timer is safe for concurrent use; each instance belongs to the loop
// that drives it.
package timer
