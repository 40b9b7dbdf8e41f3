package timer

import (
	"context"
	"time"

	"github.com/lixenwraith/vi-timer/clock"
)

// CoarseTimer accumulates whole seconds, one per gated update
type CoarseTimer struct {
	value     Value
	clock     clock.Clock
	threshold time.Duration
}

// FromTotalSeconds creates a coarse timer holding n seconds
func FromTotalSeconds(n int, opts ...Option) *CoarseTimer {
	o := buildOptions(opts)
	return &CoarseTimer{
		value:     Decompose(n),
		clock:     o.clock,
		threshold: o.threshold,
	}
}

// NewCoarse creates a coarse timer from explicit fields
// Minutes and seconds must be 0-59 and no field may be negative
func NewCoarse(hours, minutes, seconds int, opts ...Option) (*CoarseTimer, error) {
	v := Value{Hours: hours, Minutes: minutes, Seconds: seconds}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	return &CoarseTimer{
		value:     v,
		clock:     o.clock,
		threshold: o.threshold,
	}, nil
}

// Value returns the current reading
func (t *CoarseTimer) Value() Value {
	return t.value
}

// Digits returns hours, minutes and seconds
func (t *CoarseTimer) Digits() (hours, minutes, seconds int) {
	return t.value.Hours, t.value.Minutes, t.value.Seconds
}

// TotalSeconds returns the reading as a second count
func (t *CoarseTimer) TotalSeconds() int {
	return t.value.TotalSeconds()
}

// Done reports whether the reading is zero
func (t *CoarseTimer) Done() bool {
	return t.value.IsZero()
}

// TickUp waits for the gate, then adds one second to the total and
// re-derives every field from it
func (t *CoarseTimer) TickUp(ctx context.Context, start time.Time) error {
	if err := t.gate(ctx, start); err != nil {
		return err
	}
	t.value = Decompose(t.value.TotalSeconds() + 1)
	return nil
}

// CountUp waits for the gate, then increments seconds with carry
func (t *CoarseTimer) CountUp(ctx context.Context, start time.Time) error {
	if err := t.gate(ctx, start); err != nil {
		return err
	}
	t.increment()
	return nil
}

// CountDown waits for the gate, then decrements seconds with borrow
// A zero reading stays at zero
func (t *CoarseTimer) CountDown(ctx context.Context, start time.Time) error {
	if err := t.gate(ctx, start); err != nil {
		return err
	}
	t.decrement()
	return nil
}

func (t *CoarseTimer) increment() {
	v := &t.value
	if v.Seconds < MaxSeconds {
		v.Seconds++
		return
	}
	v.Seconds = 0
	if v.Minutes < MaxMinutes {
		v.Minutes++
		return
	}
	v.Minutes = 0
	v.Hours++
}

func (t *CoarseTimer) decrement() {
	v := &t.value
	switch {
	case v.Seconds > 0:
		v.Seconds--
	case v.Minutes > 0:
		v.Minutes--
		v.Seconds = MaxSeconds
	case v.Hours > 0:
		v.Hours--
		v.Minutes = MaxMinutes
		v.Seconds = MaxSeconds
	}
}

// gate blocks until threshold has elapsed since start on the timer's clock
// The elapsed time is re-read after every wake, so an early wake only
// results in another, shorter wait
func (t *CoarseTimer) gate(ctx context.Context, start time.Time) error {
	for {
		remaining := t.threshold - t.clock.Since(start)
		if remaining <= 0 {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.clock.After(remaining):
		}
	}
}
