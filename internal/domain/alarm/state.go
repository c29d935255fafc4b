package alarm

import (
	"fmt"
	"time"
)

// Actor identifies who performed an action in the system.
type Actor struct {
	// Hostname is the machine name where the action was performed.
	Hostname string
	// Username is the system user who triggered the action.
	Username string
}

// Clone returns a deep copy of the actor.
func (a *Actor) Clone() *Actor {
	if a == nil {
		return nil
	}

	cloned := *a

	return &cloned
}

// String renders the actor as username@hostname.
func (a *Actor) String() string {
	if a == nil {
		return "<unknown>"
	}

	return fmt.Sprintf("%s@%s", a.Username, a.Hostname)
}

// Status is the position of the alarm in its state machine.
type Status int

const (
	// StatusUnarmed means no target is awaiting a match.
	StatusUnarmed Status = iota
	// StatusArmed means a target is awaiting a match.
	StatusArmed
	// StatusTriggered means the alarm fired and is ringing.
	StatusTriggered
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusArmed:
		return "armed"
	case StatusTriggered:
		return "triggered"
	default:
		return "unarmed"
	}
}

// State represents the alarm at a specific point in time.
type State struct {
	// ID identifies the armed alarm; it changes on every Arm.
	ID string
	// Target is the time of day the alarm waits for.
	Target TimeOfDay
	// Label is the text shown when the alarm fires.
	Label string
	// ArmedAt is when the alarm was last armed.
	ArmedAt time.Time
	// ArmedBy is the user who armed the alarm, nil for local input.
	ArmedBy *Actor
	// IsArmed indicates the target is awaiting a match.
	IsArmed bool
	// IsEnabled indicates matches are evaluated; disabling keeps the target.
	IsEnabled bool
	// IsPlaying indicates the alarm sound is active.
	IsPlaying bool
}

// Status derives the state-machine position from the flags.
func (s *State) Status() Status {
	switch {
	case s.IsPlaying:
		return StatusTriggered
	case s.IsArmed:
		return StatusArmed
	default:
		return StatusUnarmed
	}
}

// Clone returns a copy of the state to avoid leaking internal references.
func (s *State) Clone() *State {
	cloned := *s
	cloned.ArmedBy = s.ArmedBy.Clone()

	return &cloned
}
