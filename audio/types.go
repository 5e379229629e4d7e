package audio

import (
	"github.com/lixenwraith/git-conflict/constants"
)

// SoundType represents different sound effects
type SoundType int

const (
	SoundMove     SoundType = iota // Player step
	SoundConflict                  // Conflict modal opens
	SoundPowerup                   // Powerup pickup
	SoundBug                       // Bug hit
	SoundWin                       // Level or game complete
	SoundLose                      // Game over
	SoundCommit                    // Conflict resolved
	soundTypeCount
)

var soundNames = [soundTypeCount]string{"move", "conflict", "powerup", "bug", "win", "lose", "commit"}

func (s SoundType) String() string {
	if s < 0 || s >= soundTypeCount {
		return "unknown"
	}
	return soundNames[s]
}

// Settings describes playback levels
type Settings struct {
	Enabled       bool
	MasterVolume  float64 // 0.0-1.0
	SampleRate    int
	EffectVolumes map[SoundType]float64
}

// DefaultSettings returns the stock mix
func DefaultSettings() *Settings {
	return &Settings{
		Enabled:      true,
		MasterVolume: constants.DefaultMasterVolume,
		SampleRate:   constants.AudioSampleRate,
		EffectVolumes: map[SoundType]float64{
			SoundMove:     0.25,
			SoundConflict: 0.7,
			SoundPowerup:  0.8,
			SoundBug:      0.9,
			SoundWin:      0.8,
			SoundLose:     0.9,
			SoundCommit:   0.8,
		},
	}
}

// volume is the final gain of one cue
func (s *Settings) volume(st SoundType) float64 {
	v, ok := s.EffectVolumes[st]
	if !ok {
		v = 1
	}
	return v * s.MasterVolume
}
