package events

import (
	"github.com/lixenwraith/git-conflict/grid"
	"github.com/lixenwraith/git-conflict/level"
)

// PlayerMovedPayload carries the accepted move
type PlayerMovedPayload struct {
	From grid.Point
	To   grid.Point
}

// ConflictPayload identifies the conflict that opened the merge modal
type ConflictPayload struct {
	At     grid.Point
	Puzzle int
	Name   string
}

// ConflictResolvedPayload reports points awarded for a resolved conflict
type ConflictResolvedPayload struct {
	At     grid.Point
	Points int
	Auto   bool // Resolved by the AutoResolve latch
	Exact  bool // Manual merge matched the canonical solution
}

// PowerupPayload names the powerup picked up or expired
type PowerupPayload struct {
	At   grid.Point
	Kind level.PowerupKind
}

// BugHitPayload reports the collision cell and remaining lives
type BugHitPayload struct {
	At             grid.Point
	LivesRemaining int
}

// BugsRestoredPayload reports how many bug tiles came back
type BugsRestoredPayload struct {
	Count int
}

// LevelPayload describes the level just entered
type LevelPayload struct {
	Index   int
	Name    string
	Message string
}

// ScorePayload carries the score at a level or game boundary
type ScorePayload struct {
	Level int
	Score int
}

// StateChangedPayload carries state names as reported by the state machine
type StateChangedPayload struct {
	From string
	To   string
}
