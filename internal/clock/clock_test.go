package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestReal_Now verifies the real clock returns the wall time.
func TestReal_Now(t *testing.T) {
	t.Parallel()

	before := time.Now()
	got := NewReal().Now()

	require.False(t, got.Before(before))
}

// TestReal_AfterFuncStop verifies a stopped real timer never fires.
func TestReal_AfterFuncStop(t *testing.T) {
	t.Parallel()

	fired := make(chan struct{}, 1)
	timer := NewReal().AfterFunc(time.Hour, func() { fired <- struct{}{} })

	require.True(t, timer.Stop())
	require.False(t, timer.Stop())
	require.Empty(t, fired)
}

// TestFake_FiresInDeadlineOrder checks Advance runs due callbacks in order with Now at their deadline.
func TestFake_FiresInDeadlineOrder(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	fake := NewFake(start)

	var seen []time.Duration

	fake.AfterFunc(2*time.Second, func() { seen = append(seen, fake.Now().Sub(start)) })
	fake.AfterFunc(time.Second, func() { seen = append(seen, fake.Now().Sub(start)) })
	fake.AfterFunc(5*time.Second, func() { seen = append(seen, fake.Now().Sub(start)) })

	fake.Advance(3 * time.Second)

	require.Equal(t, []time.Duration{time.Second, 2 * time.Second}, seen)
	require.Equal(t, start.Add(3*time.Second), fake.Now())
	require.Equal(t, 1, fake.Pending())
}

// TestFake_RescheduleInsideCallback ensures callbacks may register new timers that fire in the same Advance.
func TestFake_RescheduleInsideCallback(t *testing.T) {
	t.Parallel()

	fake := NewFake(time.Unix(0, 0))
	count := 0

	var schedule func()
	schedule = func() {
		fake.AfterFunc(time.Second, func() {
			count++
			schedule()
		})
	}

	schedule()
	fake.Advance(10 * time.Second)

	require.Equal(t, 10, count)
	require.Equal(t, 1, fake.Pending())
}

// TestFake_Stop verifies stopped timers are dropped.
func TestFake_Stop(t *testing.T) {
	t.Parallel()

	fake := NewFake(time.Unix(0, 0))
	fired := false
	timer := fake.AfterFunc(time.Second, func() { fired = true })

	require.True(t, timer.Stop())
	require.False(t, timer.Stop())

	fake.Advance(time.Minute)
	require.False(t, fired)
}
