// Package config loads game settings from defaults and an optional YAML file
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/tstris/constant"
	"github.com/lixenwraith/tstris/game"
	"github.com/lixenwraith/tstris/input"
)

// Config is the user-facing settings file
type Config struct {
	Width       int           `yaml:"width"`
	Height      int           `yaml:"height"`
	Mode        string        `yaml:"mode"`
	StartLevel  int           `yaml:"start_level"`
	SprintLines int           `yaml:"sprint_lines"`
	Preview     int           `yaml:"preview"`
	Randomizer  string        `yaml:"randomizer"`
	WallKicks   bool          `yaml:"wall_kicks"`
	Ghost       bool          `yaml:"ghost"`
	LockDelay   time.Duration `yaml:"lock_delay"`
	Countdown   int           `yaml:"countdown"`
	Seed        uint64        `yaml:"seed"`

	// WaitForStart shows a ready screen until hard drop is pressed
	WaitForStart bool `yaml:"wait_for_start"`

	Sound  bool    `yaml:"sound"`
	Volume float64 `yaml:"volume"`

	// Keys maps action names to key names; a listed action replaces all its default keys
	Keys map[string][]string `yaml:"keys"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Width:       constant.BoardWidth,
		Height:      constant.BoardHeight,
		Mode:        game.ModeMarathon.String(),
		StartLevel:  constant.MinLevel,
		SprintLines: constant.DefaultSprintLines,
		Preview:     constant.DefaultPreview,
		Randomizer:  game.RandomizerBag.String(),
		Ghost:       true,
		LockDelay:   constant.DefaultLockDelay,
		Countdown:   constant.DefaultCountdown,
		Sound:       true,
		Volume:      constant.DefaultVolume,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/tstris/config.yaml, falling back to the OS config dir
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			return ""
		}
	}
	return filepath.Join(dir, "tstris", "config.yaml")
}

// Load reads path over the defaults
// A missing file yields the defaults; a malformed or invalid one is an error
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, keeping fields absent from raw, and validates the result
func Parse(raw []byte, cfg *Config) error {
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return cfg.Validate()
}

// Validate reports the first field outside its accepted range
func (c Config) Validate() error {
	if c.Width < constant.MinBoardSize || c.Width > constant.MaxBoardWidth {
		return fmt.Errorf("width: %d not in [%d,%d]", c.Width, constant.MinBoardSize, constant.MaxBoardWidth)
	}
	if c.Height < constant.MinBoardSize || c.Height > constant.MaxBoardHeight {
		return fmt.Errorf("height: %d not in [%d,%d]", c.Height, constant.MinBoardSize, constant.MaxBoardHeight)
	}
	if _, err := game.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("mode: %w", err)
	}
	if c.StartLevel < constant.MinLevel {
		return fmt.Errorf("start_level: %d below %d", c.StartLevel, constant.MinLevel)
	}
	if c.SprintLines <= 0 {
		return fmt.Errorf("sprint_lines: must be positive, got %d", c.SprintLines)
	}
	if c.Preview < 0 || c.Preview > constant.MaxPreview {
		return fmt.Errorf("preview: %d not in [0,%d]", c.Preview, constant.MaxPreview)
	}
	if _, err := game.ParseRandomizer(c.Randomizer); err != nil {
		return fmt.Errorf("randomizer: %w", err)
	}
	if c.LockDelay < 0 {
		return fmt.Errorf("lock_delay: negative %v", c.LockDelay)
	}
	if c.Countdown < 0 {
		return fmt.Errorf("countdown: negative %d", c.Countdown)
	}
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("volume: %v not in [0,1]", c.Volume)
	}
	if _, err := c.KeyTable(); err != nil {
		return err
	}
	return nil
}

// GameOptions converts the settings into game options; Validate must have passed
func (c Config) GameOptions() game.Options {
	mode, _ := game.ParseMode(c.Mode)
	kind, _ := game.ParseRandomizer(c.Randomizer)
	return game.Options{
		Width:       c.Width,
		Height:      c.Height,
		Mode:        mode,
		StartLevel:  c.StartLevel,
		SprintLines: c.SprintLines,
		Preview:     c.Preview,
		Randomizer:  kind,
		WallKicks:   c.WallKicks,
		Ghost:       c.Ghost,
		LockDelay:   c.LockDelay,
		Countdown:   c.Countdown,
		Seed:        c.Seed,

		WaitForStart: c.WaitForStart,
	}
}

// KeyTable returns the default bindings with Keys applied
func (c Config) KeyTable() (*input.KeyTable, error) {
	return input.ApplyBindings(input.DefaultKeyTable(), c.Keys)
}
