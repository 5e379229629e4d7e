package constants

import "time"

// Player Defaults
const (
	// InitialLives is the number of lives a new session starts with
	InitialLives = 3
)

// Scoring
const (
	// PointsPerConflict is awarded for every resolved conflict
	PointsPerConflict = 100

	// ManualMergeBonus is added when a manual merge matches the canonical solution
	ManualMergeBonus = PointsPerConflict / 2

	// AutoResolvePoints is awarded when a cherry-pick resolves a conflict
	AutoResolvePoints = 50

	// PowerupPoints is awarded for picking up any powerup
	PowerupPoints = 50

	// PointsPerLevel is the bonus for reaching the commit tile
	PointsPerLevel = 500

	// BugPenalty is subtracted from the score on a bug hit (score floors at zero)
	BugPenalty = 50
)

// Powerup Timing
const (
	// ImmunityDuration is how long a stash keeps bugs from hurting the player
	ImmunityDuration = 10 * time.Second

	// RestoreDelay is how long a rebase keeps the bugs off the grid
	RestoreDelay = 5 * time.Second
)
