package config

import (
	"fmt"
	"path/filepath"

	"github.com/lixenwraith/git-conflict/audio"
	"github.com/lixenwraith/git-conflict/level"
)

// LoadLevels returns the level pack named by override or levels_file, the built-in pack when neither is set
// A relative levels_file is resolved against the settings file's directory
func (c *Config) LoadLevels(override string) (*level.Pack, error) {
	path := override
	if path == "" && c.LevelsFile != "" {
		path = c.LevelsFile
		if !filepath.IsAbs(path) && c.path != "" {
			path = filepath.Join(filepath.Dir(c.path), path)
		}
	}
	if path == "" {
		return level.Builtin(), nil
	}
	pack, err := level.LoadPack(path)
	if err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}
	return pack, nil
}

// SoundSettings converts the audio section for the sound manager
func (c *Config) SoundSettings() *audio.Settings {
	s := audio.DefaultSettings()
	s.Enabled = c.Audio.Enabled
	s.MasterVolume = c.Audio.MasterVolume
	s.SampleRate = c.Audio.SampleRate
	return s
}

// SetSoundEnabled records the sound toggle and persists it when the settings have a file
// Only the toggle is written; env and flag overrides applied after Load stay in memory
func (c *Config) SetSoundEnabled(enabled bool) error {
	c.Audio.Enabled = enabled
	if c.path == "" {
		return nil
	}
	if c.file == nil {
		c.file = Default()
	}
	c.file.Audio.Enabled = enabled
	return c.file.SaveTo(c.path)
}
