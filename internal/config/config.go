package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	AppName      = "keys-countdown"
	CfgFile      = "config.toml"
	LogFile      = "keys-countdown.log"
	TargetLayout = "2006-01-02T15:04:05"

	DefaultTarget     = "2026-02-15T00:00:00"
	DefaultSampleRate = 44100
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Target string       `toml:"target"`
	Page   PageConfig   `toml:"page"`
	Audio  AudioConfig  `toml:"audio"`
	Window WindowConfig `toml:"window"`
	Notify NotifyConfig `toml:"notify"`
}

type WindowConfig struct {
	Width      int  `toml:"width"`
	Height     int  `toml:"height"`
	Fullscreen bool `toml:"fullscreen"`
}

type AudioConfig struct {
	Backend    string `toml:"backend"`
	SampleRate int    `toml:"sample_rate"`
}

type NotifyConfig struct {
	OnArrival bool `toml:"on_arrival"`
}

type PageConfig struct {
	Title      string `toml:"title"`
	Heading    string `toml:"heading"`
	Weather    string `toml:"weather"`
	Footer     string `toml:"footer"`
	StatusPath string `toml:"status_path"`
	StatusNote string `toml:"status_note"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Target: DefaultTarget,
		Window: WindowConfig{
			Width:  800,
			Height: 720,
		},
		Audio: AudioConfig{
			Backend:    "speaker",
			SampleRate: DefaultSampleRate,
		},
		Notify: NotifyConfig{
			OnArrival: true,
		},
		Page: PageConfig{
			Title:      "MarathonCountdown.exe",
			Heading:    "MARATHON, FL",
			Weather:    "CURRENT TEMP: 77F - PERFECT BEACH WEATHER",
			Footer:     "MARATHON - THE HEART OF THE KEYS",
			StatusPath: `C:\VACATIONS\MARATHON_2026`,
			StatusNote: "77F Marathon, FL",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(fs afero.Fs, path string) (Config, error) {
	cfg := Default()

	data, err := afero.ReadFile(fs, filepath.Clean(path))
	if errors.Is(err, os.ErrNotExist) {
		log.Debug().Str("path", path).Msg("no config file, using defaults")
		return cfg, nil
	} else if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	log.Info().Str("path", path).Msg("loaded config")
	return cfg, nil
}

// Validate checks every field that has a constrained range.
func (c Config) Validate() error {
	if _, err := c.TargetTime(); err != nil {
		return fmt.Errorf("%w: target %q: %w", ErrInvalid, c.Target, err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	switch c.Audio.Backend {
	case "speaker", "malgo":
	default:
		return fmt.Errorf("%w: audio backend %q", ErrInvalid, c.Audio.Backend)
	}
	if c.Audio.SampleRate < 8000 || c.Audio.SampleRate > 192000 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalid, c.Audio.SampleRate)
	}
	return nil
}

// TargetTime parses Target as local wall time.
func (c Config) TargetTime() (time.Time, error) {
	t, err := time.ParseInLocation(TargetLayout, c.Target, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse target: %w", err)
	}
	return t, nil
}

// Dir is the per-user directory holding the config file.
func Dir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppName)
	}
	return filepath.Join(dir, AppName)
}

// LogDir is where the rotating log file lives.
func LogDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppName)
	}
	return filepath.Join(dir, AppName)
}
