// Package timefmt renders clock, stopwatch and countdown values and computes
// analog clock-hand angles. Every function is pure.
package timefmt

import (
	"fmt"
	"time"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
	hoursOnDial      = 12

	degreesPerSecondTick = 6.0
	degreesPerMinuteTick = 6.0
	degreesPerHour       = 30.0
	degreesPerMinuteHour = 0.5
)

// Angles holds clock-hand rotations in degrees, clockwise from twelve o'clock.
type Angles struct {
	Hour   float64
	Minute float64
	Second float64
}

// Digital renders a wall-clock time as HH:MM:SS in 24-hour form.
func Digital(t time.Time) string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

// Elapsed renders a duration as MM:SS:CS. Minutes are not clamped;
// negative durations render as zero.
func Elapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	ms := d.Milliseconds()
	totalSeconds := ms / 1000

	return fmt.Sprintf(
		"%02d:%02d:%02d",
		totalSeconds/secondsPerMinute,
		totalSeconds%secondsPerMinute,
		(ms%1000)/10,
	)
}

// Countdown renders a number of seconds as HH:MM:SS using integer division.
// Negative values render as zero.
func Countdown(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}

	return fmt.Sprintf(
		"%02d:%02d:%02d",
		totalSeconds/secondsPerHour,
		(totalSeconds%secondsPerHour)/secondsPerMinute,
		totalSeconds%secondsPerMinute,
	)
}

// HandAngles computes the clock-hand rotations for a wall-clock time.
// The hour hand advances half a degree per minute; second and minute hands move in whole ticks.
func HandAngles(t time.Time) Angles {
	minutes := t.Minute()

	return Angles{
		Hour:   float64(t.Hour()%hoursOnDial)*degreesPerHour + float64(minutes)*degreesPerMinuteHour,
		Minute: float64(minutes) * degreesPerMinuteTick,
		Second: float64(t.Second()) * degreesPerSecondTick,
	}
}
