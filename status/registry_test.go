package status

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestMetricMapGetCachesPointer(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()
	a := m.Get("refreshes")
	b := m.Get("refreshes")
	if a != b {
		t.Error("Expected Get to return the cached pointer")
	}
	if m.Count() != 1 {
		t.Errorf("Expected 1 metric, got %d", m.Count())
	}
	if !m.Has("refreshes") || m.Has("missing") {
		t.Error("Has reported wrong membership")
	}
}

func TestMetricMapRangeRegistrationOrder(t *testing.T) {
	m := NewMetricMap[atomic.Bool]()
	for _, k := range []string{"zeta", "alpha", "mid"} {
		m.Get(k)
	}

	var got []string
	m.Range(func(k string, _ *atomic.Bool) { got = append(got, k) })

	want := []string{"zeta", "alpha", "mid"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, got)
		}
	}
}

func TestMetricMapConcurrentGet(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Get("refreshes").Add(1)
			}
		}()
	}
	wg.Wait()

	if got := m.Get("refreshes").Load(); got != 1000 {
		t.Errorf("Expected 1000, got %d", got)
	}
	if m.Count() != 1 {
		t.Errorf("Expected 1 metric, got %d", m.Count())
	}
}

func TestAtomicStringTruncates(t *testing.T) {
	var s AtomicString
	if s.Load() != "" {
		t.Error("Expected zero value to be empty")
	}
	s.Store("abcdefghijklmnopqrstuvwxyz")
	if got := s.Load(); len(got) != MaxStringLen {
		t.Errorf("Expected truncation to %d, got %q", MaxStringLen, got)
	}
}

func TestRegistryLine(t *testing.T) {
	r := NewRegistry()
	r.Strings.Get(KeyMode).Store("precise")
	r.Strings.Get(KeyDirection).Store("down")
	r.Ints.Get(KeyRefreshes).Store(42)
	r.Bools.Get(KeyPaused).Store(true)
	r.Bools.Get(KeyFinished)

	want := "mode=precise dir=down refreshes=42 paused"
	if got := r.Line(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if r.TotalCount() != 5 {
		t.Errorf("Expected 5 metrics, got %d", r.TotalCount())
	}
}
