package ticker

import (
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/daylight/internal/clock"
)

// TestTicker_FiresEveryPeriod verifies the callback cadence on a fake clock.
func TestTicker_FiresEveryPeriod(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	fake := clock.NewFake(start)

	var ticks []time.Time

	tk := New(fake, time.Second, func(now time.Time) { ticks = append(ticks, now) })
	defer tk.Stop()

	fake.Advance(3500 * time.Millisecond)

	require.Len(t, ticks, 3)
	require.Equal(t, start.Add(time.Second), ticks[0])
	require.Equal(t, start.Add(3*time.Second), ticks[2])
}

// TestTicker_StopSuppressesPending ensures no callback runs after Stop and Stop is idempotent.
func TestTicker_StopSuppressesPending(t *testing.T) {
	t.Parallel()

	fake := clock.NewFake(time.Unix(0, 0))
	count := 0

	tk := New(fake, 10*time.Millisecond, func(time.Time) { count++ })
	fake.Advance(25 * time.Millisecond)

	tk.Stop()
	tk.Stop()

	fake.Advance(time.Second)

	require.Equal(t, 2, count)
	require.True(t, tk.Stopped())
	require.Zero(t, fake.Pending())
}

// TestTicker_StopFromCallback verifies a callback can cancel its own ticker.
func TestTicker_StopFromCallback(t *testing.T) {
	t.Parallel()

	fake := clock.NewFake(time.Unix(0, 0))
	count := 0

	var tk *Ticker
	tk = New(fake, time.Second, func(time.Time) {
		count++
		if count == 2 {
			tk.Stop()
		}
	})

	fake.Advance(10 * time.Second)

	require.Equal(t, 2, count)
	require.Zero(t, fake.Pending())
}

// TestTicker_NilStop checks Stop on a nil ticker is a no-op.
func TestTicker_NilStop(t *testing.T) {
	t.Parallel()

	var tk *Ticker

	require.NotPanics(t, tk.Stop)
}

// TestTicker_RealClock runs the ticker over the real clock inside a synctest bubble.
func TestTicker_RealClock(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		var calls atomic.Int32

		tk := New(clock.NewReal(), time.Second, func(time.Time) { calls.Add(1) })

		time.Sleep(3500 * time.Millisecond)
		synctest.Wait()
		require.Equal(t, int32(3), calls.Load())

		tk.Stop()
		time.Sleep(5 * time.Second)
		synctest.Wait()
		require.Equal(t, int32(3), calls.Load())
		require.True(t, tk.Stopped())
	})
}
