package alarm

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	hoursPerDay      = 24
	minutesPerHour   = 60
	hoursPerHalfDay  = 12
	minTwelveHour    = 1
	maxTwelveHourArg = 12
)

var (
	// ErrParse is returned when an alarm string does not describe a time of day.
	ErrParse = errors.New("unable to parse alarm time")
	// ErrInvalidAlarmTime is returned when an alarm target is not strictly in the future today.
	ErrInvalidAlarmTime = errors.New("alarm time must be later today")
)

// alarmTimePattern accepts H:MM or HH:MM with an optional AM/PM suffix.
//
//nolint:gochecknoglobals // Compiled once.
var alarmTimePattern = regexp.MustCompile(`(?i)^(\d{1,2}):(\d{2})\s*(AM|PM)?$`)

// TimeOfDay is an hour and minute on a 24-hour clock.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// NewTimeOfDay validates the fields and returns a TimeOfDay.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour >= hoursPerDay {
		return TimeOfDay{}, fmt.Errorf("%w: hour %d out of range", ErrParse, hour)
	}

	if minute < 0 || minute >= minutesPerHour {
		return TimeOfDay{}, fmt.Errorf("%w: minute %d out of range", ErrParse, minute)
	}

	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// ParseTimeOfDay parses "7:45", "07:45 AM", "7:45pm" or "19:30".
// With an AM/PM suffix the hour must be 1-12; without one it must be 0-23.
func ParseTimeOfDay(input string) (TimeOfDay, error) {
	match := alarmTimePattern.FindStringSubmatch(strings.TrimSpace(input))
	if match == nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q, expected HH:MM or HH:MM AM/PM", ErrParse, input)
	}

	// The pattern guarantees digits, so Atoi cannot fail.
	hour, _ := strconv.Atoi(match[1])
	minute, _ := strconv.Atoi(match[2])

	if period := strings.ToUpper(match[3]); period != "" {
		if hour < minTwelveHour || hour > maxTwelveHourArg {
			return TimeOfDay{}, fmt.Errorf("%w: hour %d is not valid with %s", ErrParse, hour, period)
		}

		switch {
		case period == "PM" && hour != hoursPerHalfDay:
			hour += hoursPerHalfDay
		case period == "AM" && hour == hoursPerHalfDay:
			hour = 0
		}
	}

	return NewTimeOfDay(hour, minute)
}

// String renders the time of day as HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On returns the instant at this time of day, second zero, on the calendar day of day.
func (t TimeOfDay) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, day.Location())
}

// Matches reports whether now falls inside this minute of the day.
func (t TimeOfDay) Matches(now time.Time) bool {
	return now.Hour() == t.Hour && now.Minute() == t.Minute
}

// ValidateFuture returns ErrInvalidAlarmTime unless the target is strictly after now on now's calendar day.
func (t TimeOfDay) ValidateFuture(now time.Time) error {
	if !t.On(now).After(now) {
		return fmt.Errorf("%w: %s is not after %s", ErrInvalidAlarmTime, t, now.Format(time.TimeOnly))
	}

	return nil
}
