package session

import (
	"context"

	domain "github.com/oshokin/daylight/internal/domain/alarm"
)

// ArmAlarm parses input and arms the alarm on behalf of actor.
func (s *Session) ArmAlarm(ctx context.Context, input string, actor *domain.Actor) error {
	_, err := s.alarm.ArmString(ctx, input, actor)

	return err
}

// CancelAlarm disarms the alarm.
func (s *Session) CancelAlarm(ctx context.Context) {
	s.alarm.Cancel(ctx)
}

// StopAlarm silences a ringing alarm.
func (s *Session) StopAlarm() {
	s.alarm.Stop()
}

// SetAlarmEnabled toggles alarm evaluation.
func (s *Session) SetAlarmEnabled(ctx context.Context, enabled bool) {
	s.alarm.SetEnabled(ctx, enabled)
}

// ConfigureCountdown sets the countdown duration.
func (s *Session) ConfigureCountdown(hours, minutes, seconds int) error {
	_, err := s.countdown.Configure(hours, minutes, seconds)

	return err
}

// StartCountdown starts the countdown.
func (s *Session) StartCountdown() {
	s.countdown.Start()
}

// StopCountdown pauses the countdown.
func (s *Session) StopCountdown() {
	s.countdown.Stop()
}

// ResetCountdown restores the configured duration.
func (s *Session) ResetCountdown() {
	s.countdown.Reset()
}

// StartStopwatch starts or resumes the stopwatch.
func (s *Session) StartStopwatch() {
	s.stopwatch.Start()
}

// StopStopwatch freezes the stopwatch.
func (s *Session) StopStopwatch() {
	s.stopwatch.Stop()
}

// ResetStopwatch clears the stopwatch.
func (s *Session) ResetStopwatch() {
	s.stopwatch.Reset()
}

// LapStopwatch records a lap; false when the stopwatch is not running.
func (s *Session) LapStopwatch() bool {
	_, ok := s.stopwatch.Lap()

	return ok
}
