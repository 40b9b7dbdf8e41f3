// Package status holds live run metrics shared between the refresh loop and
// whatever draws the status line
package status

import (
	"strconv"
	"strings"
	"sync/atomic"
)

// Well-known metric keys
const (
	KeyMode      = "mode"
	KeyDirection = "dir"
	KeyRefreshes = "refreshes"
	KeyPaused    = "paused"
	KeyFinished  = "finished"
)

// MaxStringLen is the maximum length for atomic strings
const MaxStringLen = 20

// AtomicString provides atomic string access with fixed max length
// Zero value is ready to use (represents empty string)
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store sets the string value, truncating to MaxStringLen
func (s *AtomicString) Store(val string) {
	if len(val) > MaxStringLen {
		val = val[:MaxStringLen]
	}
	s.ptr.Store(&val)
}

// Load returns the current string value
func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}

// Registry is the central metrics facade
// The runner caches pointers once; update loops write directly to atomics
type Registry struct {
	Strings *MetricMap[AtomicString]
	Ints    *MetricMap[atomic.Int64]
	Bools   *MetricMap[atomic.Bool]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Strings: NewMetricMap[AtomicString](),
		Ints:    NewMetricMap[atomic.Int64](),
		Bools:   NewMetricMap[atomic.Bool](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Strings.Count() + r.Ints.Count() + r.Bools.Count()
}

// Line renders all metrics as "key=value" pairs: strings, then ints, then
// set bools by name only
func (r *Registry) Line() string {
	parts := make([]string, 0, r.TotalCount())
	r.Strings.Range(func(k string, s *AtomicString) {
		parts = append(parts, k+"="+s.Load())
	})
	r.Ints.Range(func(k string, n *atomic.Int64) {
		parts = append(parts, k+"="+strconv.FormatInt(n.Load(), 10))
	})
	r.Bools.Range(func(k string, b *atomic.Bool) {
		if b.Load() {
			parts = append(parts, k)
		}
	})
	return strings.Join(parts, " ")
}
