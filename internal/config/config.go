package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/daylight/internal/domain/theme"
	"github.com/oshokin/daylight/internal/logger"
)

// Config holds the settings shared by the daylight binaries.
type Config struct {
	// ServerAddress is the gRPC control API address.
	ServerAddress string `yaml:"server_addr"`
	// HTTPAddress is the status/metrics HTTP address; empty disables it.
	HTTPAddress string `yaml:"http_addr"`
	// Timeout is the duration for RPC calls.
	Timeout time.Duration `yaml:"timeout"`
	// LogLevel is the minimum zap level (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
	// LogFile, when set, sends logs to a rotated file instead of stdout.
	LogFile string `yaml:"log_file"`
	// Theme controls colour theme selection.
	Theme Theme `yaml:"theme"`
	// Alarm controls alarm playback and notifications.
	Alarm Alarm `yaml:"alarm"`
}

// Theme holds colour theme settings.
type Theme struct {
	// Mode is auto, light, green or dark.
	Mode string `yaml:"mode"`
	// FollowSystem makes a dark terminal background force the dark theme.
	FollowSystem bool `yaml:"follow_system"`
	// PaletteFile is an optional TOML file overriding palette colours.
	PaletteFile string `yaml:"palette_file"`
}

// Alarm holds alarm playback and notification settings.
type Alarm struct {
	// SoundFile is played in a loop when the alarm fires; empty rings the terminal bell.
	SoundFile string `yaml:"sound_file"`
	// Player overrides the OS audio player command; the sound file is appended.
	Player []string `yaml:"player,omitempty"`
	// PlaybackLimit stops the sound automatically.
	PlaybackLimit time.Duration `yaml:"playback_limit"`
	// NotifyURLs are shoutrrr service URLs notified when an alarm or timer fires.
	NotifyURLs []string `yaml:"notify_urls,omitempty"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "daylight-settings.yaml"

	// DefaultServerAddress is the default gRPC control address.
	DefaultServerAddress = "127.0.0.1:50061"

	// DefaultHTTPAddress is the default status/metrics address.
	DefaultHTTPAddress = "127.0.0.1:8061"

	// DefaultTimeout is the default duration for RPC calls.
	DefaultTimeout = 5 * time.Second

	// DefaultPlaybackLimit stops a ringing alarm after this long.
	DefaultPlaybackLimit = 45 * time.Second

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errServerAddressRequired is returned when server address is missing.
	errServerAddressRequired = errors.New("server address must be provided")
	// errUnknownLogLevel is returned for unsupported log levels.
	errUnknownLogLevel = errors.New("unknown log level")
)

// Default returns the settings used when no file exists.
func Default() *Config {
	return &Config{
		ServerAddress: DefaultServerAddress,
		HTTPAddress:   DefaultHTTPAddress,
		Timeout:       DefaultTimeout,
		LogLevel:      "info",
		Theme: Theme{
			Mode:         string(theme.ModeAuto),
			FollowSystem: true,
		},
		Alarm: Alarm{
			PlaybackLimit: DefaultPlaybackLimit,
		},
	}
}

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault behaves like Load but returns Default when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	return cfg, err
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings and fills defaults for optional fields.
func Validate(settings *Config) error {
	if settings.ServerAddress == "" {
		return errServerAddressRequired
	}

	if _, err := net.ResolveTCPAddr("tcp", settings.ServerAddress); err != nil {
		return fmt.Errorf("invalid server address: %w", err)
	}

	if settings.HTTPAddress != "" {
		if _, err := net.ResolveTCPAddr("tcp", settings.HTTPAddress); err != nil {
			return fmt.Errorf("invalid http address: %w", err)
		}
	}

	if _, ok := logger.ParseLogLevel(settings.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, settings.LogLevel)
	}

	mode, err := theme.ParseMode(settings.Theme.Mode)
	if err != nil {
		return fmt.Errorf("invalid theme: %w", err)
	}

	settings.Theme.Mode = string(mode)

	// Set default timeout if not specified
	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	if settings.Alarm.PlaybackLimit <= 0 {
		settings.Alarm.PlaybackLimit = DefaultPlaybackLimit
	}

	return nil
}
