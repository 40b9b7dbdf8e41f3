package clock

import (
	"sync"
	"sync/atomic"
	"time"
)

// Pausable provides pausable timer time with pause duration tracking
type Pausable struct {
	mu sync.RWMutex

	base Clock

	// Base time tracking
	realStartTime time.Time // When clock was created (base time)
	timerStart    time.Time // Timer epoch (adjusted for pauses)

	// Pause state
	isPaused        atomic.Bool
	pauseStartTime  time.Time     // When current pause started (base time)
	totalPausedTime time.Duration // Cumulative pause duration
}

// NewPausable creates a new pausable clock on top of base
// A nil base uses the real system clock
func NewPausable(base Clock) *Pausable {
	if base == nil {
		base = NewReal()
	}
	now := base.Now()
	return &Pausable{
		base:          base,
		realStartTime: now,
		timerStart:    now,
	}
}

// Now returns current timer time (affected by pause)
func (pc *Pausable) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.isPaused.Load() {
		// During pause: return frozen time at pause point
		return pc.timerStart.Add(pc.pauseStartTime.Sub(pc.realStartTime) - pc.totalPausedTime)
	}

	// Timer elapsed = base elapsed - total paused time
	realElapsed := pc.base.Now().Sub(pc.realStartTime)
	return pc.timerStart.Add(realElapsed - pc.totalPausedTime)
}

// Since returns paused-adjusted elapsed time since t
func (pc *Pausable) Since(t time.Time) time.Duration {
	return pc.Now().Sub(t)
}

// After waits on the base clock; pauses do not shorten or extend the wait itself
func (pc *Pausable) After(d time.Duration) <-chan time.Time {
	return pc.base.After(d)
}

// RealTime returns base clock time (unaffected by pause)
func (pc *Pausable) RealTime() time.Time {
	return pc.base.Now()
}

// Pause stops timer time advancement
func (pc *Pausable) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.isPaused.CompareAndSwap(false, true) {
		pc.pauseStartTime = pc.base.Now()
	}
}

// Resume continues timer time advancement
func (pc *Pausable) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.isPaused.CompareAndSwap(true, false) {
		if !pc.pauseStartTime.IsZero() {
			pc.totalPausedTime += pc.base.Now().Sub(pc.pauseStartTime)
			pc.pauseStartTime = time.Time{}
		}
	}
}

// Toggle flips pause state and reports whether the clock is now paused
func (pc *Pausable) Toggle() bool {
	if pc.isPaused.Load() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

// IsPaused returns current pause state
func (pc *Pausable) IsPaused() bool {
	return pc.isPaused.Load()
}

// TotalPauseDuration returns cumulative pause time, including a pause in progress
func (pc *Pausable) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPausedTime
	if pc.isPaused.Load() && !pc.pauseStartTime.IsZero() {
		total += pc.base.Now().Sub(pc.pauseStartTime)
	}
	return total
}
