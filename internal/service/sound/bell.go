package sound

import (
	"context"
	"io"
	"sync"
	"time"
)

// bellCharacter makes terminals beep.
const bellCharacter = "\a"

// DefaultBellInterval is the pause between two bells.
const DefaultBellInterval = time.Second

// BellPlayer rings the terminal bell on a writer. It is the fallback when no
// sound file is configured.
type BellPlayer struct {
	// out receives the bell characters.
	out io.Writer
	// interval is the pause between bells.
	interval time.Duration
	// mu serializes writes from overlapping playbacks.
	mu sync.Mutex
}

// NewBellPlayer returns a player ringing on out every interval.
func NewBellPlayer(out io.Writer, interval time.Duration) *BellPlayer {
	if interval <= 0 {
		interval = DefaultBellInterval
	}

	return &BellPlayer{
		out:      out,
		interval: interval,
	}
}

// Play rings immediately and then once per interval until stopped.
//
//nolint:ireturn // Playback is the abstraction callers depend on.
func (p *BellPlayer) Play(ctx context.Context) (Playback, error) {
	loopCtx, cancel := context.WithCancel(ctx)
	playback := &loopPlayback{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(playback.done)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			p.ring()

			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	return playback, nil
}

func (p *BellPlayer) ring() {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, _ = io.WriteString(p.out, bellCharacter)
}
