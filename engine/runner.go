// Package engine runs a timer and hands every refresh to an Output.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/vi-timer/clock"
	"github.com/lixenwraith/vi-timer/status"
	"github.com/lixenwraith/vi-timer/timer"
)

// ErrUnknownRunMode is returned by ParseRunMode
var ErrUnknownRunMode = errors.New("unknown run mode")

// RunMode selects what the runner drives
type RunMode uint8

const (
	// ModeUp counts up from the start value
	ModeUp RunMode = iota
	// ModeDown counts down to zero, then rings
	ModeDown
	// ModeTick re-derives the reading from a whole-second total each step
	ModeTick
	// ModeClock shows the local time of day
	ModeClock
)

// String returns the lowercase mode name
func (m RunMode) String() string {
	switch m {
	case ModeUp:
		return "up"
	case ModeDown:
		return "down"
	case ModeTick:
		return "tick"
	case ModeClock:
		return "clock"
	default:
		return fmt.Sprintf("runmode(%d)", uint8(m))
	}
}

// ParseRunMode accepts up, down, tick or clock
func ParseRunMode(s string) (RunMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return ModeUp, nil
	case "down":
		return ModeDown, nil
	case "tick":
		return ModeTick, nil
	case "clock":
		return ModeClock, nil
	}
	return ModeUp, fmt.Errorf("%w: %q", ErrUnknownRunMode, s)
}

// direction maps a run mode to the timer direction it counts in
func (m RunMode) direction() timer.Direction {
	if m == ModeDown {
		return timer.Down
	}
	return timer.Up
}

// Frame is one refresh handed to an Output
type Frame struct {
	Value     timer.Value
	Direction timer.Direction
	Paused    bool
	Finished  bool
}

// Output presents frames; implementations print or draw
type Output interface {
	Present(f Frame) error
}

// Bell is rung once when a countdown finishes
type Bell interface {
	Ring()
}

type nopBell struct{}

func (nopBell) Ring() {}

// pauser is implemented by clocks that can be paused
type pauser interface {
	IsPaused() bool
}

// Options configures a Runner; zero values pick defaults
type Options struct {
	Mode    RunMode
	Precise bool
	Start   timer.Value

	// Refresh is the precise loop's redraw interval
	Refresh time.Duration

	Clock  clock.Clock
	Bell   Bell
	Logger *slog.Logger
	Status *status.Registry
}

// DefaultRefresh is used when Options.Refresh is zero
const DefaultRefresh = 100 * time.Millisecond

// Runner drives one timer and presents every refresh
// It owns its timer; Run must not be called concurrently
type Runner struct {
	opts Options
	out  Output

	clock  clock.Clock
	bell   Bell
	logger *slog.Logger

	// Cached metric pointers
	statRefreshes *atomic.Int64
	statPaused    *atomic.Bool
	statFinished  *atomic.Bool
}

// NewRunner creates a runner presenting to out
func NewRunner(opts Options, out Output) *Runner {
	if opts.Refresh <= 0 {
		opts.Refresh = DefaultRefresh
	}
	if opts.Clock == nil {
		opts.Clock = clock.NewReal()
	}
	if opts.Bell == nil {
		opts.Bell = nopBell{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Status == nil {
		opts.Status = status.NewRegistry()
	}
	// Tick only exists as a whole-second model, clock only as a precise one
	switch opts.Mode {
	case ModeTick:
		opts.Precise = false
	case ModeClock:
		opts.Precise = true
	}

	reg := opts.Status
	model := "coarse"
	if opts.Precise {
		model = "precise"
	}
	reg.Strings.Get(status.KeyMode).Store(model)
	reg.Strings.Get(status.KeyDirection).Store(opts.Mode.String())

	return &Runner{
		opts:          opts,
		out:           out,
		clock:         opts.Clock,
		bell:          opts.Bell,
		logger:        opts.Logger,
		statRefreshes: reg.Ints.Get(status.KeyRefreshes),
		statPaused:    reg.Bools.Get(status.KeyPaused),
		statFinished:  reg.Bools.Get(status.KeyFinished),
	}
}

// Run refreshes until a countdown finishes or ctx is cancelled
// Cancellation is a normal end and returns nil; output errors are returned
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Info("timer started",
		slog.String("mode", r.opts.Mode.String()),
		slog.Bool("precise", r.opts.Precise),
		slog.String("start", r.opts.Start.Text()),
	)

	var err error
	if r.opts.Precise {
		err = r.runPrecise(ctx)
	} else {
		err = r.runCoarse(ctx)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		r.logger.Info("timer stopped", slog.Int64("refreshes", r.statRefreshes.Load()))
		return nil
	}
	return err
}

// runCoarse steps a CoarseTimer once per second
// Each step's start instant is derived from the loop anchor rather than read
// after drawing, so the gate deadlines stay one threshold apart and slow
// output does not accumulate drift
func (r *Runner) runCoarse(ctx context.Context) error {
	tm := timer.FromTotalSeconds(r.opts.Start.TotalSeconds(), timer.WithClock(r.clock))
	dir := r.opts.Mode.direction()

	if err := r.present(tm.Value(), dir, false); err != nil {
		return err
	}
	if r.opts.Mode == ModeDown && tm.Done() {
		return r.finish(tm.Value(), dir)
	}

	anchor := r.clock.Now()
	for step := 0; ; step++ {
		start := anchor.Add(time.Duration(step) * timer.DefaultThreshold)

		var err error
		switch r.opts.Mode {
		case ModeTick:
			err = tm.TickUp(ctx, start)
		case ModeDown:
			err = tm.CountDown(ctx, start)
		default:
			err = tm.CountUp(ctx, start)
		}
		if err != nil {
			return err
		}

		if r.opts.Mode == ModeDown && tm.Done() {
			return r.finish(tm.Value(), dir)
		}
		if err := r.present(tm.Value(), dir, false); err != nil {
			return err
		}
	}
}

// runPrecise samples a PreciseTimer every refresh interval
func (r *Runner) runPrecise(ctx context.Context) error {
	dir := r.opts.Mode.direction()

	var tm *timer.PreciseTimer
	if r.opts.Mode == ModeClock {
		tm = timer.PreciseNow(dir, timer.WithClock(r.clock), timer.WithLogger(r.logger))
	} else {
		tm = timer.PreciseFromTotalSeconds(r.opts.Start.TotalSeconds(), dir, timer.WithClock(r.clock))
	}

	anchor := r.clock.Now()
	for {
		tm.Sample(anchor)
		if tm.Done() {
			return r.finish(tm.Value(), dir)
		}
		if err := r.present(tm.Value(), dir, false); err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.clock.After(r.opts.Refresh):
		}
	}
}

func (r *Runner) present(v timer.Value, dir timer.Direction, finished bool) error {
	paused := false
	if p, ok := r.clock.(pauser); ok {
		paused = p.IsPaused()
	}
	r.statPaused.Store(paused)
	r.statRefreshes.Add(1)

	return r.out.Present(Frame{
		Value:     v,
		Direction: dir,
		Paused:    paused,
		Finished:  finished,
	})
}

func (r *Runner) finish(v timer.Value, dir timer.Direction) error {
	r.statFinished.Store(true)
	if err := r.present(v, dir, true); err != nil {
		return err
	}
	r.logger.Info("countdown finished", slog.Int64("refreshes", r.statRefreshes.Load()))
	r.bell.Ring()
	return nil
}
