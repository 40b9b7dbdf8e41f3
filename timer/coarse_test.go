package timer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-timer/clock"
)

func newMockClock() *clock.Mock {
	return clock.NewMock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
}

func TestNewCoarseRejectsUnnormalized(t *testing.T) {
	_, err := NewCoarse(0, 60, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = NewCoarse(0, 0, 75)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = NewCoarse(-1, 0, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)

	tm, err := NewCoarse(1, 2, 3)
	require.NoError(t, err)
	h, m, s := tm.Digits()
	assert.Equal(t, [3]int{1, 2, 3}, [3]int{h, m, s})
}

func TestCoarseStepsByOne(t *testing.T) {
	ctx := context.Background()

	for _, n := range []int{0, 1, 58, 59, 60, 3599, 3600, 3661, 86399} {
		mc := newMockClock()

		up := FromTotalSeconds(n, WithClock(mc))
		require.NoError(t, up.CountUp(ctx, mc.Now()))
		assert.Equal(t, n+1, up.TotalSeconds(), "count up from %d", n)
		assert.NoError(t, up.Value().Validate())

		tick := FromTotalSeconds(n, WithClock(mc))
		require.NoError(t, tick.TickUp(ctx, mc.Now()))
		assert.Equal(t, n+1, tick.TotalSeconds(), "tick up from %d", n)

		if n > 0 {
			down := FromTotalSeconds(n, WithClock(mc))
			require.NoError(t, down.CountDown(ctx, mc.Now()))
			assert.Equal(t, n-1, down.TotalSeconds(), "count down from %d", n)
			assert.NoError(t, down.Value().Validate())
		}
	}
}

func TestCoarseCarryAndBorrow(t *testing.T) {
	ctx := context.Background()
	mc := newMockClock()

	tm, err := NewCoarse(0, 59, 59, WithClock(mc))
	require.NoError(t, err)
	require.NoError(t, tm.CountUp(ctx, mc.Now()))
	assert.Equal(t, Value{Hours: 1}, tm.Value())

	require.NoError(t, tm.CountDown(ctx, mc.Now()))
	assert.Equal(t, Value{Minutes: 59, Seconds: 59}, tm.Value())
}

func TestCoarseCountDownSaturates(t *testing.T) {
	ctx := context.Background()
	mc := newMockClock()

	tm := FromTotalSeconds(1, WithClock(mc))
	require.NoError(t, tm.CountDown(ctx, mc.Now()))
	assert.True(t, tm.Done())

	for i := 0; i < 3; i++ {
		require.NoError(t, tm.CountDown(ctx, mc.Now()))
	}
	assert.Equal(t, 0, tm.TotalSeconds())
}

func TestCoarseGateWaitsForThreshold(t *testing.T) {
	ctx := context.Background()
	mc := newMockClock()
	start := mc.Now()

	tm := FromTotalSeconds(0, WithClock(mc))
	mc.Advance(300 * time.Millisecond)
	require.NoError(t, tm.CountUp(ctx, start))

	assert.Equal(t, 700*time.Millisecond, mc.Waited(), "gate waits only for the remainder")
	assert.GreaterOrEqual(t, mc.Since(start), time.Second)

	// A start instant older than the threshold passes the gate immediately
	mc.Advance(5 * time.Second)
	require.NoError(t, tm.CountUp(ctx, start))
	assert.Equal(t, 700*time.Millisecond, mc.Waited())
	assert.Equal(t, 2, tm.TotalSeconds())
}

func TestCoarseGateRealClock(t *testing.T) {
	tm := FromTotalSeconds(0, WithThreshold(20*time.Millisecond))
	start := time.Now()
	require.NoError(t, tm.TickUp(context.Background(), start))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	assert.Equal(t, 1, tm.TotalSeconds())
}

func TestCoarseGateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tm := FromTotalSeconds(10)
	err := tm.CountDown(ctx, time.Now())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 10, tm.TotalSeconds(), "cancelled update must not step")
}
