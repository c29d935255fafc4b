package alarm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestActorClone verifies that Clone returns a deep copy and handles nil safely.
func TestActorClone(t *testing.T) {
	t.Parallel()
	require.Nil(t, (*Actor)(nil).Clone())

	a := &Actor{
		Hostname: "workstation-7",
		Username: "o.shokin",
	}

	b := a.Clone()

	require.Equal(t, a, b)
	require.NotSame(t, a, b)
	require.Equal(t, "o.shokin@workstation-7", a.String())
	require.Equal(t, "<unknown>", (*Actor)(nil).String())
}

// TestStateClone verifies that State.Clone copies fields and deep-copies ArmedBy.
func TestStateClone(t *testing.T) {
	t.Parallel()

	s := State{
		ID:        "a1",
		Target:    TimeOfDay{Hour: 7, Minute: 45},
		ArmedAt:   time.Now().UTC().Truncate(time.Second),
		ArmedBy:   &Actor{Hostname: "workstation-7", Username: "o.shokin"},
		IsArmed:   true,
		IsEnabled: true,
	}

	c := s.Clone()
	require.Equal(t, s, *c)

	// Ensure actor pointer is cloned.
	require.NotSame(t, s.ArmedBy, c.ArmedBy)
}

// TestStateStatus derives the state-machine position from the flags.
func TestStateStatus(t *testing.T) {
	t.Parallel()

	require.Equal(t, StatusUnarmed, (&State{}).Status())
	require.Equal(t, StatusArmed, (&State{IsArmed: true}).Status())
	require.Equal(t, StatusArmed, (&State{IsArmed: true, IsEnabled: false}).Status())
	require.Equal(t, StatusTriggered, (&State{IsPlaying: true}).Status())
	require.Equal(t, "triggered", StatusTriggered.String())
	require.Equal(t, "unarmed", StatusUnarmed.String())
}
