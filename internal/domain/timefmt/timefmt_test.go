package timefmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestElapsed covers zero, the centisecond split and unclamped minutes.
func TestElapsed(t *testing.T) {
	t.Parallel()

	cases := map[time.Duration]string{
		0:                        "00:00:00",
		65432 * time.Millisecond: "01:05:43",
		9 * time.Millisecond:     "00:00:00",
		999 * time.Millisecond:   "00:00:99",
		59999 * time.Millisecond: "00:59:99",
		125 * time.Minute:        "125:00:00",
		-5 * time.Second:         "00:00:00",
		1500 * time.Millisecond:  "00:01:50",
		187 * time.Second:        "03:07:00",
	}

	for d, want := range cases {
		require.Equal(t, want, Elapsed(d), "duration %s", d)
	}
}

// TestCountdown verifies integer division into hours, minutes and seconds.
func TestCountdown(t *testing.T) {
	t.Parallel()

	cases := map[int]string{
		0:     "00:00:00",
		3661:  "01:01:01",
		59:    "00:00:59",
		3600:  "01:00:00",
		86399: "23:59:59",
		-1:    "00:00:00",
	}

	for seconds, want := range cases {
		require.Equal(t, want, Countdown(seconds), "seconds %d", seconds)
	}
}

// TestDigital renders 24-hour wall-clock time.
func TestDigital(t *testing.T) {
	t.Parallel()

	require.Equal(t, "07:05:09", Digital(time.Date(2024, 1, 1, 7, 5, 9, 0, time.UTC)))
	require.Equal(t, "23:59:00", Digital(time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)))
}

// TestHandAngles checks representative times including the half-degree hour drift.
func TestHandAngles(t *testing.T) {
	t.Parallel()

	day := func(h, m, s int) time.Time { return time.Date(2024, 1, 1, h, m, s, 0, time.UTC) }

	require.Equal(t, Angles{Hour: 90, Minute: 0, Second: 0}, HandAngles(day(3, 0, 0)))
	require.Equal(t, Angles{Hour: 90, Minute: 0, Second: 0}, HandAngles(day(15, 0, 0)))
	require.Equal(t, Angles{Hour: 0, Minute: 0, Second: 0}, HandAngles(day(0, 0, 0)))
	require.Equal(t, Angles{Hour: 285, Minute: 180, Second: 270}, HandAngles(day(21, 30, 45)))

	for h := range 24 {
		for m := range 60 {
			a := HandAngles(day(h, m, 59))
			require.GreaterOrEqual(t, a.Hour, 0.0)
			require.Less(t, a.Hour, 360.0)
			require.Less(t, a.Minute, 360.0)
			require.Less(t, a.Second, 360.0)
		}
	}
}
