package sound

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/oshokin/daylight/internal/logger"
)

// Player starts looped alarm playback.
type Player interface {
	// Play starts looping the alarm sound and returns immediately.
	Play(ctx context.Context) (Playback, error)
}

// Playback is an active, looping sound. Stop releases it and waits until the
// underlying process or writer is no longer in use. Stop is idempotent.
type Playback interface {
	Stop()
}

// defaultRestartDelay throttles the loop when the player command exits immediately.
const defaultRestartDelay = 250 * time.Millisecond

// ErrUnsupportedOS indicates no built-in player exists for the current OS.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// CommandPlayer loops an external audio player over a sound file.
type CommandPlayer struct {
	// command is the executable followed by its arguments; the file path is appended.
	command []string
	// file is the sound file to play.
	file string
	// restartDelay is the pause between consecutive runs of the command.
	restartDelay time.Duration
}

// NewCommandPlayer returns a player for file. A non-empty command overrides the
// OS default (the file path is appended to it).
func NewCommandPlayer(file string, command []string) (*CommandPlayer, error) {
	if len(command) == 0 {
		var err error

		command, err = DefaultCommand()
		if err != nil {
			return nil, err
		}
	}

	return &CommandPlayer{
		command:      append([]string(nil), command...),
		file:         file,
		restartDelay: defaultRestartDelay,
	}, nil
}

// DefaultCommand returns the built-in audio player of the current OS:
// - Linux:   `paplay <file>`
// - macOS:   `afplay <file>`
// - Windows: PowerShell SoundPlayer (WAV only).
func DefaultCommand() ([]string, error) {
	osName := strings.ToLower(runtime.GOOS)

	switch {
	case strings.Contains(osName, "linux"):
		return []string{"paplay"}, nil
	case strings.Contains(osName, "darwin"):
		return []string{"afplay"}, nil
	case strings.Contains(osName, "windows"):
		return []string{
			"powershell.exe", "-NoProfile", "-Command",
			"(New-Object Media.SoundPlayer $args[0]).PlaySync()",
		}, nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s: %w", runtime.GOOS, ErrUnsupportedOS)
	}
}

// Play runs the player command in a loop until the playback is stopped or ctx ends.
//
//nolint:ireturn // Playback is the abstraction callers depend on.
func (p *CommandPlayer) Play(ctx context.Context) (Playback, error) {
	if _, err := exec.LookPath(p.command[0]); err != nil {
		return nil, fmt.Errorf("find audio player %q: %w", p.command[0], err)
	}

	loopCtx, cancel := context.WithCancel(ctx)
	playback := &loopPlayback{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(playback.done)

		p.loop(loopCtx)
	}()

	return playback, nil
}

// loop restarts the command until ctx is canceled; the running process is killed on cancel.
func (p *CommandPlayer) loop(ctx context.Context) {
	args := append(append([]string(nil), p.command[1:]...), p.file)

	for ctx.Err() == nil {
		//nolint:gosec // The command comes from local configuration.
		cmd := exec.CommandContext(ctx, p.command[0], args...)
		if err := cmd.Run(); err != nil && ctx.Err() == nil {
			logger.WarnKV(ctx, "Audio player exited", "command", p.command[0], "error", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(p.restartDelay):
		}
	}
}

// loopPlayback is a Playback backed by a goroutine.
type loopPlayback struct {
	// cancel stops the loop goroutine.
	cancel context.CancelFunc
	// done is closed once the goroutine exited.
	done chan struct{}
	// once guards Stop.
	once sync.Once
}

// Stop cancels the loop and waits for it to exit.
func (p *loopPlayback) Stop() {
	p.once.Do(func() {
		p.cancel()
		<-p.done
	})
}
