package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/containrrr/shoutrrr"
	"github.com/containrrr/shoutrrr/pkg/router"
	"github.com/containrrr/shoutrrr/pkg/types"

	"github.com/oshokin/daylight/internal/logger"
)

// DefaultThrottle is the minimal interval between two notifications with the same title.
const DefaultThrottle = 5 * time.Second

// ErrThrottled is returned when a notification is dropped because an identical title was sent recently.
var ErrThrottled = errors.New("notification throttled")

// Nop discards every notification.
type Nop struct{}

// Notify implements the engines' Notifier.
func (Nop) Notify(context.Context, string, string) error { return nil }

// Shoutrrr fans a notification out to every configured shoutrrr service URL.
type Shoutrrr struct {
	// sender routes messages to the configured services.
	sender *router.ServiceRouter
	// services is the number of configured URLs.
	services int
	// throttle is the minimal interval between notifications with the same title.
	throttle time.Duration
	// lastSent tracks the last delivery per title.
	lastSent map[string]time.Time
	// now is the time source used for throttling.
	now func() time.Time
	// mu protects lastSent.
	mu sync.Mutex
}

// Option configures the Shoutrrr notifier.
type Option func(*Shoutrrr)

// WithThrottle overrides DefaultThrottle. Zero disables throttling.
func WithThrottle(d time.Duration) Option {
	return func(s *Shoutrrr) {
		s.throttle = d
	}
}

// WithNow overrides the time source used for throttling.
func WithNow(now func() time.Time) Option {
	return func(s *Shoutrrr) {
		if now != nil {
			s.now = now
		}
	}
}

// NewShoutrrr validates the service URLs and builds the notifier.
func NewShoutrrr(urls []string, opts ...Option) (*Shoutrrr, error) {
	if len(urls) == 0 {
		return nil, errors.New("no notification urls configured")
	}

	sender, err := shoutrrr.CreateSender(urls...)
	if err != nil {
		return nil, fmt.Errorf("create notification sender: %w", err)
	}

	s := &Shoutrrr{
		sender:   sender,
		services: len(urls),
		throttle: DefaultThrottle,
		lastSent: make(map[string]time.Time),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Notify sends message to every service. It returns when all services answered or ctx is done.
func (s *Shoutrrr) Notify(ctx context.Context, title, message string) error {
	if !s.allow(title) {
		return ErrThrottled
	}

	done := make(chan error, 1)

	go func() {
		done <- errors.Join(s.sender.Send(message, &types.Params{"title": title})...)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send notification: %w", err)
		}

		logger.DebugKV(ctx, "Notification sent", "title", title, "services", s.services)

		return nil
	case <-ctx.Done():
		return fmt.Errorf("send notification: %w", ctx.Err())
	}
}

func (s *Shoutrrr) allow(title string) bool {
	if s.throttle <= 0 {
		return true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if last, ok := s.lastSent[title]; ok && now.Sub(last) < s.throttle {
		return false
	}

	s.lastSent[title] = now

	return true
}
