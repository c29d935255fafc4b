package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks required fields, format validations and defaults.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Missing address.
	err := Validate(new(Config))
	require.Error(t, err)

	// Bad address.
	settings := &Config{ServerAddress: "bad:address"}
	require.Error(t, Validate(settings))

	// Bad HTTP address.
	settings = &Config{ServerAddress: "127.0.0.1:0", HTTPAddress: "nowhere"}
	require.Error(t, Validate(settings))

	// Bad log level.
	settings = &Config{ServerAddress: "127.0.0.1:0", LogLevel: "loud"}
	require.Error(t, Validate(settings))

	// Bad theme mode.
	settings = &Config{ServerAddress: "127.0.0.1:0", Theme: Theme{Mode: "sepia"}}
	require.Error(t, Validate(settings))

	// Okay, defaults filled.
	settings = &Config{ServerAddress: "127.0.0.1:0", Theme: Theme{Mode: "GREEN"}}
	require.NoError(t, Validate(settings))
	require.Equal(t, DefaultTimeout, settings.Timeout)
	require.Equal(t, DefaultPlaybackLimit, settings.Alarm.PlaybackLimit)
	require.Equal(t, "green", settings.Theme.Mode)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")

	settings := Default()
	settings.ServerAddress = "127.0.0.1:50099"
	settings.Alarm.SoundFile = "/usr/share/sounds/alarm.wav"
	settings.Alarm.PlaybackLimit = 30 * time.Second
	settings.Alarm.NotifyURLs = []string{"generic://example.com/hook"}

	require.NoError(t, Save(path, settings))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, settings, loaded)

	// File exists.
	_, err = os.Stat(path)
	require.NoError(t, err)

	require.Error(t, Save(path, nil))
}

// TestLoad_PartialFileKeepsDefaults verifies unspecified keys keep default values.
func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme:\n  mode: dark\n"), DefaultFilePermissions))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "dark", loaded.Theme.Mode)
	require.True(t, loaded.Theme.FollowSystem)
	require.Equal(t, DefaultServerAddress, loaded.ServerAddress)
	require.Equal(t, DefaultPlaybackLimit, loaded.Alarm.PlaybackLimit)
}

// TestLoadOrDefault falls back to defaults only for missing files.
func TestLoadOrDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := LoadOrDefault(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("server_addr: [\n"), DefaultFilePermissions))

	_, err = LoadOrDefault(broken)
	require.Error(t, err)
}
