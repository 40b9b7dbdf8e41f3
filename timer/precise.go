package timer

import (
	"log/slog"
	"time"

	"github.com/lixenwraith/vi-timer/clock"
)

// resolution is the finest unit the precise timer keeps
const resolution = time.Microsecond

const day = 24 * time.Hour

// PreciseTimer derives its reading from a fixed anchor and the latest
// elapsed sample instead of accumulating ticks
type PreciseTimer struct {
	anchor    time.Duration
	elapsed   time.Duration
	direction Direction
	clock     clock.Clock

	// wrap bounds the counting-up reading; zero means unbounded
	wrap time.Duration
}

// PreciseFromTotalSeconds anchors a precise timer at n seconds
func PreciseFromTotalSeconds(n int, dir Direction, opts ...Option) *PreciseTimer {
	if n < 0 {
		n = 0
	}
	o := buildOptions(opts)
	return &PreciseTimer{
		anchor:    time.Duration(n) * time.Second,
		direction: dir,
		clock:     o.clock,
	}
}

// NewPrecise anchors a precise timer at the given fields
// Minutes and seconds must be 0-59 and no field may be negative
func NewPrecise(hours, minutes, seconds int, dir Direction, opts ...Option) (*PreciseTimer, error) {
	v := Value{Hours: hours, Minutes: minutes, Seconds: seconds}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return PreciseFromTotalSeconds(v.TotalSeconds(), dir, opts...), nil
}

// PreciseNow anchors a precise timer at the current local time of day,
// read once from the clock
// Counting up, the reading wraps to zero at midnight
// A clock reading before the Unix epoch is treated as unusable: the anchor
// falls back to zero and a warning is logged
func PreciseNow(dir Direction, opts ...Option) *PreciseTimer {
	o := buildOptions(opts)
	now := o.clock.Now()

	var anchor time.Duration
	sinceEpoch := now.Sub(time.Unix(0, 0))
	if sinceEpoch < 0 {
		o.logger.Warn("wall clock before unix epoch, anchoring at zero",
			slog.Time("now", now),
			slog.String("direction", dir.String()),
		)
	} else {
		_, offset := now.Zone()
		anchor = (sinceEpoch + time.Duration(offset)*time.Second) % day
	}

	return &PreciseTimer{
		anchor:    anchor.Truncate(resolution),
		direction: dir,
		clock:     o.clock,
		wrap:      day,
	}
}

// Sample replaces the elapsed sample with the time since start
// It never blocks and may be called any number of times
func (t *PreciseTimer) Sample(start time.Time) {
	elapsed := t.clock.Since(start)
	if elapsed < 0 {
		elapsed = 0
	}
	t.elapsed = elapsed.Truncate(resolution)
}

// Direction returns the counting direction
func (t *PreciseTimer) Direction() Direction {
	return t.direction
}

// Anchor returns the starting duration
func (t *PreciseTimer) Anchor() time.Duration {
	return t.anchor
}

// Elapsed returns the last sample
func (t *PreciseTimer) Elapsed() time.Duration {
	return t.elapsed
}

// Displayed returns anchor+elapsed counting up, max(0, anchor-elapsed) counting down
// A time-of-day timer counting up is reduced modulo 24h
func (t *PreciseTimer) Displayed() time.Duration {
	if t.direction == Down {
		if t.elapsed >= t.anchor {
			return 0
		}
		return t.anchor - t.elapsed
	}
	if t.wrap > 0 {
		return (t.anchor + t.elapsed) % t.wrap
	}
	return t.anchor + t.elapsed
}

// Seconds returns the displayed whole seconds
func (t *PreciseTimer) Seconds() int {
	return int(t.Displayed() / time.Second)
}

// Digits returns displayed hours, minutes and seconds
func (t *PreciseTimer) Digits() (hours, minutes, seconds int) {
	v := Decompose(t.Seconds())
	return v.Hours, v.Minutes, v.Seconds
}

// Milliseconds returns the displayed sub-second part, 0-999
func (t *PreciseTimer) Milliseconds() int {
	return int((t.Displayed() % time.Second) / time.Millisecond)
}

// Value returns the displayed reading including milliseconds
func (t *PreciseTimer) Value() Value {
	v := Decompose(t.Seconds())
	v.Milliseconds = t.Milliseconds()
	return v
}

// Done reports whether a countdown has reached zero
// Counting up never finishes
func (t *PreciseTimer) Done() bool {
	return t.direction == Down && t.elapsed >= t.anchor
}
