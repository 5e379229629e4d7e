// Package config loads the settings file and environment overrides
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/git-conflict/constants"
	"github.com/lixenwraith/git-conflict/engine"
)

// Environment overrides, applied after the file is read
const (
	EnvAudioEnabled = "GIT_CONFLICT_AUDIO_ENABLED"
	EnvMasterVolume = "GIT_CONFLICT_MASTER_VOLUME" // 0-100
	EnvLives        = "GIT_CONFLICT_LIVES"
)

// Config is the settings file
type Config struct {
	Game       GameConfig    `yaml:"game"`
	Audio      AudioConfig   `yaml:"audio"`
	Display    DisplayConfig `yaml:"display"`
	LevelsFile string        `yaml:"levels_file,omitempty"`

	// Keys overrides bindings per input mode ("global", "menu", "play", "conflict", "merge", "ended"),
	// mapping a key name or rune to an action name
	Keys map[string]map[string]string `yaml:"keys,omitempty"`

	path string
	// file is the settings as read from path, before env and flag overrides
	file *Config
}

type GameConfig struct {
	Lives             int      `yaml:"lives"`
	PointsPerConflict int      `yaml:"points_per_conflict"`
	ManualMergeBonus  int      `yaml:"manual_merge_bonus"`
	AutoResolvePoints int      `yaml:"auto_resolve_points"`
	PowerupPoints     int      `yaml:"powerup_points"`
	PointsPerLevel    int      `yaml:"points_per_level"`
	BugPenalty        int      `yaml:"bug_penalty"`
	FrameInterval     Duration `yaml:"frame_interval"`
	BugMoveInterval   Duration `yaml:"bug_move_interval"`
	ImmunityDuration  Duration `yaml:"immunity_duration"`
	RestoreDelay      Duration `yaml:"restore_delay"`
}

type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"`
	MasterVolume float64 `yaml:"master_volume"` // 0.0-1.0
	SampleRate   int     `yaml:"sample_rate"`
}

type DisplayConfig struct {
	Debug bool  `yaml:"debug"`
	Theme Theme `yaml:"theme"`
}

// Theme holds "#rrggbb" colors for tiles and text
type Theme struct {
	Empty    string `yaml:"empty"`
	Wall     string `yaml:"wall"`
	Conflict string `yaml:"conflict"`
	Bug      string `yaml:"bug"`
	Powerup  string `yaml:"powerup"`
	Commit   string `yaml:"commit"`
	Player   string `yaml:"player"`
	Text     string `yaml:"text"`
	Dim      string `yaml:"dim"`
}

// Default returns the stock settings
func Default() *Config {
	r := engine.DefaultRules()
	return &Config{
		Game: GameConfig{
			Lives:             r.InitialLives,
			PointsPerConflict: r.PointsPerConflict,
			ManualMergeBonus:  r.ManualMergeBonus,
			AutoResolvePoints: r.AutoResolvePoints,
			PowerupPoints:     r.PowerupPoints,
			PointsPerLevel:    r.PointsPerLevel,
			BugPenalty:        r.BugPenalty,
			FrameInterval:     Duration(r.FrameInterval),
			BugMoveInterval:   Duration(r.BugMoveInterval),
			ImmunityDuration:  Duration(r.ImmunityDuration),
			RestoreDelay:      Duration(r.RestoreDelay),
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: constants.DefaultMasterVolume,
			SampleRate:   constants.AudioSampleRate,
		},
		Display: DisplayConfig{
			Theme: Theme{
				Empty:    constants.ColorEmpty,
				Wall:     constants.ColorWall,
				Conflict: constants.ColorConflict,
				Bug:      constants.ColorBug,
				Powerup:  constants.ColorPowerup,
				Commit:   constants.ColorCommit,
				Player:   constants.ColorPlayer,
				Text:     constants.ColorText,
				Dim:      constants.ColorDim,
			},
		},
	}
}

// Load reads path over the defaults; a missing file yields the defaults
// The path is remembered for Save
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg.keepFile()
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.keepFile()
	return cfg, nil
}

// keepFile snapshots the current values as the on-disk baseline
func (c *Config) keepFile() {
	file := *c
	file.file = nil
	c.file = &file
}

// Path is the file Save writes to
func (c *Config) Path() string {
	return c.path
}

// Save writes the settings back to the file they were loaded from
func (c *Config) Save() error {
	if c.path == "" {
		return errors.New("config has no file path")
	}
	return c.SaveTo(c.path)
}

// SaveTo writes the settings to path, creating parent directories
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	c.path = path
	c.keepFile()
	return nil
}

// ApplyEnv overlays the environment overrides, malformed values are ignored
func (c *Config) ApplyEnv() {
	if enabled := os.Getenv(EnvAudioEnabled); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			c.Audio.Enabled = val
		}
	}

	// Master volume is given as 0-100
	if volume := os.Getenv(EnvMasterVolume); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			c.Audio.MasterVolume = min(1, max(0, float64(val)/100.0))
		}
	}

	if lives := os.Getenv(EnvLives); lives != "" {
		if val, err := strconv.Atoi(lives); err == nil && val > 0 {
			c.Game.Lives = val
		}
	}
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate rejects settings the game cannot run with
func (c *Config) Validate() error {
	if err := c.Rules().Validate(); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	if c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1 {
		return fmt.Errorf("audio: master volume %.2f outside 0-1", c.Audio.MasterVolume)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio: sample rate must be positive, got %d", c.Audio.SampleRate)
	}
	t := c.Display.Theme
	for name, v := range map[string]string{
		"empty": t.Empty, "wall": t.Wall, "conflict": t.Conflict, "bug": t.Bug,
		"powerup": t.Powerup, "commit": t.Commit, "player": t.Player, "text": t.Text, "dim": t.Dim,
	} {
		if !hexColor.MatchString(v) {
			return fmt.Errorf("display: theme color %s %q is not #rrggbb", name, v)
		}
	}
	return nil
}

// Rules converts the game section for the engine
func (c *Config) Rules() engine.Rules {
	g := c.Game
	return engine.Rules{
		InitialLives:      g.Lives,
		PointsPerConflict: g.PointsPerConflict,
		ManualMergeBonus:  g.ManualMergeBonus,
		AutoResolvePoints: g.AutoResolvePoints,
		PowerupPoints:     g.PowerupPoints,
		PointsPerLevel:    g.PointsPerLevel,
		BugPenalty:        g.BugPenalty,
		FrameInterval:     g.FrameInterval.Std(),
		BugMoveInterval:   g.BugMoveInterval.Std(),
		ImmunityDuration:  g.ImmunityDuration.Std(),
		RestoreDelay:      g.RestoreDelay.Std(),
	}
}
