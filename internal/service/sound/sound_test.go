package sound

import (
	"bytes"
	"context"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for concurrent use.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

// TestBellPlayer_RingsUntilStopped verifies the bell loop and its release on Stop.
func TestBellPlayer_RingsUntilStopped(t *testing.T) {
	t.Parallel()

	out := new(syncBuffer)
	player := NewBellPlayer(out, 5*time.Millisecond)

	playback, err := player.Play(context.Background())
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return strings.Count(out.String(), bellCharacter) >= 3
	}, time.Second, time.Millisecond)

	playback.Stop()
	playback.Stop()

	rung := out.String()

	time.Sleep(20 * time.Millisecond)
	require.Equal(t, rung, out.String())
}

// TestBellPlayer_ContextCancel stops ringing when the parent context ends.
func TestBellPlayer_ContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	player := NewBellPlayer(new(syncBuffer), 0)

	playback, err := player.Play(ctx)
	require.NoError(t, err)

	cancel()

	stopped := make(chan struct{})

	go func() {
		playback.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("playback did not stop after context cancel")
	}
}

// TestCommandPlayer_MissingExecutable fails fast when the player is not installed.
func TestCommandPlayer_MissingExecutable(t *testing.T) {
	t.Parallel()

	player, err := NewCommandPlayer("alarm.wav", []string{"definitely-not-an-audio-player-binary"})
	require.NoError(t, err)

	playback, err := player.Play(context.Background())
	require.Error(t, err)
	require.Nil(t, playback)
}

// TestCommandPlayer_StopKillsProcess checks Stop terminates a long-running player.
func TestCommandPlayer_StopKillsProcess(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("uses the sleep utility")
	}

	player, err := NewCommandPlayer("30", []string{"sleep"})
	require.NoError(t, err)

	playback, err := player.Play(context.Background())
	require.NoError(t, err)

	stopped := make(chan struct{})

	go func() {
		playback.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("playback did not release the player process")
	}
}

// TestDefaultCommand returns a command on supported systems.
func TestDefaultCommand(t *testing.T) {
	t.Parallel()

	command, err := DefaultCommand()

	switch runtime.GOOS {
	case "linux", "darwin", "windows":
		require.NoError(t, err)
		require.NotEmpty(t, command)
	default:
		require.ErrorIs(t, err, ErrUnsupportedOS)
	}
}
