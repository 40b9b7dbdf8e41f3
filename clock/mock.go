package clock

import (
	"sync"
	"time"
)

// Mock provides a controllable time source for testing
// After advances the mock by the requested duration and fires immediately,
// so code waiting on the clock runs without real delays
type Mock struct {
	mu          sync.RWMutex
	currentTime time.Time
	waited      time.Duration
}

// NewMock creates a new mock clock with the given start time
func NewMock(startTime time.Time) *Mock {
	return &Mock{
		currentTime: startTime,
	}
}

// Now returns the current mocked time
func (m *Mock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// Since returns mocked elapsed time since t
func (m *Mock) Since(t time.Time) time.Duration {
	return m.Now().Sub(t)
}

// After advances the mock by d and returns an already fired channel
func (m *Mock) After(d time.Duration) <-chan time.Time {
	m.mu.Lock()
	if d > 0 {
		m.currentTime = m.currentTime.Add(d)
		m.waited += d
	}
	now := m.currentTime
	m.mu.Unlock()

	ch := make(chan time.Time, 1)
	ch <- now
	return ch
}

// SetTime sets the current time for the mock
func (m *Mock) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

// Advance advances the current time by the given duration
func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// Waited returns the total duration consumed through After
func (m *Mock) Waited() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.waited
}
