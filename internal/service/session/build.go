package session

import (
	"context"
	"fmt"
	"io"

	"github.com/oshokin/daylight/internal/config"
	"github.com/oshokin/daylight/internal/domain/theme"
	"github.com/oshokin/daylight/internal/logger"
	"github.com/oshokin/daylight/internal/metrics"
	"github.com/oshokin/daylight/internal/service/alarm"
	"github.com/oshokin/daylight/internal/service/notify"
	"github.com/oshokin/daylight/internal/service/sound"
)

// Environment holds the process-specific collaborators of a session built from settings.
type Environment struct {
	// Preference is the detected system colour preference.
	Preference theme.Preference
	// Bell receives terminal bell characters when no sound file is configured; nil keeps the alarm silent.
	Bell io.Writer
	// Metrics records engine activity.
	Metrics *metrics.Service
}

// FromConfig builds a session from settings: palettes, theme mode, sound player and notifiers.
func FromConfig(ctx context.Context, settings *config.Config, env Environment) (*Session, error) {
	mode, err := theme.ParseMode(settings.Theme.Mode)
	if err != nil {
		return nil, err
	}

	palettes, err := theme.LoadPalettes(settings.Theme.PaletteFile)
	if err != nil {
		return nil, fmt.Errorf("load palettes: %w", err)
	}

	player, err := newPlayer(settings.Alarm, env.Bell)
	if err != nil {
		return nil, err
	}

	var notifier alarm.Notifier

	if len(settings.Alarm.NotifyURLs) > 0 {
		notifier, err = notify.NewShoutrrr(settings.Alarm.NotifyURLs)
		if err != nil {
			return nil, err
		}

		logger.InfoKV(ctx, "Notifications enabled", "services", len(settings.Alarm.NotifyURLs))
	}

	return New(ctx, Options{
		Player:        player,
		Notifier:      notifier,
		Metrics:       env.Metrics,
		PlaybackLimit: settings.Alarm.PlaybackLimit,
		Mode:          mode,
		Preference:    env.Preference,
		Palettes:      palettes,
	}), nil
}

//nolint:ireturn // The player kind depends on settings.
func newPlayer(settings config.Alarm, bell io.Writer) (sound.Player, error) {
	if settings.SoundFile == "" {
		if bell == nil {
			return nil, nil //nolint:nilnil // No player keeps the alarm silent.
		}

		return sound.NewBellPlayer(bell, 0), nil
	}

	player, err := sound.NewCommandPlayer(settings.SoundFile, settings.Player)
	if err != nil {
		return nil, fmt.Errorf("create sound player: %w", err)
	}

	return player, nil
}
