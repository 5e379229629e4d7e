package constants

import "time"

// Audio Defaults
const (
	// AudioSampleRate is the default playback sample rate
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond

	// DefaultMasterVolume is the default master gain (0.0-1.0)
	DefaultMasterVolume = 0.3
)

// Move Sound Timing
const (
	MoveSoundDuration = 40 * time.Millisecond
	MoveSoundAttack   = 2 * time.Millisecond
	MoveSoundRelease  = 20 * time.Millisecond
)

// Conflict Sound Timing
const (
	ConflictSoundDuration = 250 * time.Millisecond
	ConflictSoundAttack   = 5 * time.Millisecond
	ConflictSoundRelease  = 80 * time.Millisecond
)

// Powerup Sound Timing
const (
	PowerupSoundNoteDuration = 90 * time.Millisecond
	PowerupSoundAttack       = 5 * time.Millisecond
	PowerupSoundRelease      = 40 * time.Millisecond
)

// Bug Sound Timing
const (
	BugSoundDuration = 200 * time.Millisecond
	BugSoundAttack   = 5 * time.Millisecond
	BugSoundRelease  = 60 * time.Millisecond
)

// Commit/Win/Lose Sound Timing
const (
	CommitSoundDuration = 500 * time.Millisecond
	CommitSoundAttack   = 5 * time.Millisecond
	CommitSoundRelease  = 400 * time.Millisecond
	JingleNoteDuration  = 150 * time.Millisecond
	JingleNoteAttack    = 5 * time.Millisecond
	JingleNoteRelease   = 60 * time.Millisecond
	LoseSoundDuration   = 700 * time.Millisecond
	LoseSoundAttack     = 10 * time.Millisecond
	LoseSoundRelease    = 300 * time.Millisecond
)
