package engine

import (
	"fmt"
	"time"

	"github.com/lixenwraith/git-conflict/constants"
)

// Rules are the tunable numbers of a session
type Rules struct {
	InitialLives      int
	PointsPerConflict int
	ManualMergeBonus  int
	AutoResolvePoints int
	PowerupPoints     int
	PointsPerLevel    int
	BugPenalty        int

	FrameInterval    time.Duration
	BugMoveInterval  time.Duration
	ImmunityDuration time.Duration
	RestoreDelay     time.Duration
}

// DefaultRules returns the stock game rules
func DefaultRules() Rules {
	return Rules{
		InitialLives:      constants.InitialLives,
		PointsPerConflict: constants.PointsPerConflict,
		ManualMergeBonus:  constants.ManualMergeBonus,
		AutoResolvePoints: constants.AutoResolvePoints,
		PowerupPoints:     constants.PowerupPoints,
		PointsPerLevel:    constants.PointsPerLevel,
		BugPenalty:        constants.BugPenalty,
		FrameInterval:     constants.FrameUpdateInterval,
		BugMoveInterval:   constants.BugMoveInterval,
		ImmunityDuration:  constants.ImmunityDuration,
		RestoreDelay:      constants.RestoreDelay,
	}
}

// Validate rejects rules the engine cannot run with
func (r Rules) Validate() error {
	if r.InitialLives <= 0 {
		return fmt.Errorf("initial lives must be positive, got %d", r.InitialLives)
	}
	for name, d := range map[string]time.Duration{
		"frame interval":    r.FrameInterval,
		"bug move interval": r.BugMoveInterval,
		"immunity duration": r.ImmunityDuration,
		"restore delay":     r.RestoreDelay,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %v", name, d)
		}
	}
	for name, v := range map[string]int{
		"points per conflict": r.PointsPerConflict,
		"manual merge bonus":  r.ManualMergeBonus,
		"auto resolve points": r.AutoResolvePoints,
		"powerup points":      r.PowerupPoints,
		"points per level":    r.PointsPerLevel,
		"bug penalty":         r.BugPenalty,
	} {
		if v < 0 {
			return fmt.Errorf("%s must not be negative, got %d", name, v)
		}
	}
	return nil
}
