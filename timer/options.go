package timer

import (
	"log/slog"
	"time"

	"github.com/lixenwraith/vi-timer/clock"
)

// DefaultThreshold is the coarse timer's wait per update
const DefaultThreshold = time.Second

type options struct {
	clock     clock.Clock
	threshold time.Duration
	logger    *slog.Logger
}

// Option configures a timer at construction
type Option func(*options)

// WithClock sets the time source; defaults to the real monotonic clock
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithThreshold sets how long a coarse update waits before stepping
func WithThreshold(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.threshold = d
		}
	}
}

// WithLogger sets where clock anomalies are reported
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		clock:     clock.NewReal(),
		threshold: DefaultThreshold,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
