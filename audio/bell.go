// Package audio plays the countdown-finished bell through the system speaker.
package audio

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)

	// BellFrequency is the fundamental of the bell tone in Hz
	BellFrequency = 880.0

	// BellDuration is how long one strike rings
	BellDuration = 1200 * time.Millisecond

	strikeGap = 200 * time.Millisecond
)

// Bell strikes a short decaying tone, once per Ring
type Bell struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	strikes     int
	initialized bool

	rings atomic.Int64
}

// NewBell creates a bell at volume 0.0-1.0; out of range values are clamped
// strikes is the number of tones per Ring, at least one
func NewBell(volume float64, strikes int) *Bell {
	if strikes < 1 {
		strikes = 1
	}
	return &Bell{
		mixer:   &beep.Mixer{},
		volume:  math.Max(0, math.Min(1, volume)),
		strikes: strikes,
	}
}

// Initialize sets up the speaker
func (b *Bell) Initialize() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(b.mixer)
	b.initialized = true
	return nil
}

// Cleanup silences anything still ringing and closes the speaker
func (b *Bell) Cleanup() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}

	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	b.initialized = false
}

// Ring queues the configured strikes; without a speaker it only counts
func (b *Bell) Ring() {
	b.rings.Add(1)

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized || b.volume == 0 {
		return
	}

	speaker.Lock()
	b.mixer.Add(b.streamer())
	speaker.Unlock()
}

// Rings returns how many times Ring was called
func (b *Bell) Rings() int64 {
	return b.rings.Load()
}

// Duration is how long one Ring plays, gaps included
func (b *Bell) Duration() time.Duration {
	return time.Duration(b.strikes)*BellDuration + time.Duration(b.strikes-1)*strikeGap
}

// streamer builds the strike sequence with a short gap between strikes
func (b *Bell) streamer() beep.Streamer {
	parts := make([]beep.Streamer, 0, 2*b.strikes)
	for i := 0; i < b.strikes; i++ {
		parts = append(parts, beep.Take(sampleRate.N(BellDuration), NewBellGenerator(sampleRate, BellFrequency)))
		if i < b.strikes-1 {
			parts = append(parts, beep.Silence(sampleRate.N(strikeGap)))
		}
	}
	return &effects.Volume{
		Streamer: beep.Seq(parts...),
		Base:     2,
		Volume:   math.Log2(b.volume),
	}
}

// BellGenerator generates a struck bell: a decaying fundamental with two
// inharmonic partials
type BellGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewBellGenerator creates a bell tone generator
func NewBellGenerator(sr beep.SampleRate, freq float64) *BellGenerator {
	return &BellGenerator{
		sr:   sr,
		freq: freq,
	}
}

func (g *BellGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.0
		sample += 0.5 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.25 * math.Sin(2*math.Pi*g.freq*2.76*t)
		sample += 0.12 * math.Sin(2*math.Pi*g.freq*5.4*t)

		// 5ms attack, exponential decay
		attack := math.Min(t/0.005, 1.0)
		sample *= attack * math.Exp(-3*t) * 0.4

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BellGenerator) Err() error {
	return nil
}
