package stopwatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/daylight/internal/clock"
)

func newEngine(t *testing.T, opts ...Option) (*Engine, *clock.Fake) {
	t.Helper()

	fake := clock.NewFake(time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC))
	engine := New(t.Context(), fake, opts...)

	t.Cleanup(engine.Close)

	return engine, fake
}

func TestEngine_ElapsedIsDriftFree(t *testing.T) {
	t.Parallel()

	for _, period := range []time.Duration{RefreshPeriod, 7 * time.Millisecond, time.Second} {
		var ticks int

		engine, fake := newEngine(t,
			WithRefreshPeriod(period),
			WithOnTick(func(Snapshot) { ticks++ }),
		)

		engine.Start()
		fake.Advance(1500 * time.Millisecond)

		snapshot := engine.Stop()
		require.False(t, snapshot.Running)
		require.Equal(t, 1500*time.Millisecond, snapshot.Elapsed, "period %s", period)
		require.Equal(t, "00:01:50", snapshot.String())
		require.Positive(t, ticks)
	}
}

func TestEngine_ResumeKeepsElapsed(t *testing.T) {
	t.Parallel()

	engine, fake := newEngine(t)

	engine.Start()
	fake.Advance(time.Second)
	engine.Stop()

	// Time spent stopped is not measured.
	fake.Advance(time.Minute)
	require.Equal(t, time.Second, engine.Elapsed())

	engine.Start()
	fake.Advance(250 * time.Millisecond)
	require.Equal(t, 1250*time.Millisecond, engine.Elapsed())
	require.True(t, engine.Snapshot().Running)
}

func TestEngine_StopAndStartAreIdempotent(t *testing.T) {
	t.Parallel()

	engine, fake := newEngine(t)

	require.Equal(t, Snapshot{}, engine.Stop())

	engine.Start()
	fake.Advance(300 * time.Millisecond)
	engine.Start()
	fake.Advance(300 * time.Millisecond)

	first := engine.Stop()
	second := engine.Stop()
	require.Equal(t, first, second)
	require.Equal(t, 600*time.Millisecond, second.Elapsed)
	require.Zero(t, fake.Pending())
}

func TestEngine_LapsAndReset(t *testing.T) {
	t.Parallel()

	engine, fake := newEngine(t)

	_, ok := engine.Lap()
	require.False(t, ok)

	engine.Start()
	fake.Advance(2 * time.Second)

	split, ok := engine.Lap()
	require.True(t, ok)
	require.Equal(t, 2*time.Second, split)

	fake.Advance(3 * time.Second)

	_, ok = engine.Lap()
	require.True(t, ok)

	laps := engine.Laps()
	require.Equal(t, []time.Duration{2 * time.Second, 5 * time.Second}, laps)

	// Returned laps are copies.
	laps[0] = 0
	require.Equal(t, 2*time.Second, engine.Laps()[0])

	snapshot := engine.Reset()
	require.Equal(t, Snapshot{}, snapshot)
	require.Empty(t, engine.Laps())
	require.Zero(t, fake.Pending())
}
