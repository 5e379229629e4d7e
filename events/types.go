package events

import (
	"fmt"
	"time"
)

// EventType represents the type of game event
type EventType int

const (
	// EventPlayerMoved signals an accepted player move
	// Trigger: Game.Move | Payload: *PlayerMovedPayload
	EventPlayerMoved EventType = iota

	// EventConflictEncountered signals the player stepped on an unsolved conflict
	// Trigger: collision check, AutoResolve not latched
	// Consumer: merge modal, audio | Payload: *ConflictPayload
	EventConflictEncountered

	// EventConflictResolved signals a conflict cleared by a choice or by AutoResolve
	// Trigger: Game.Resolve, collision check | Payload: *ConflictResolvedPayload
	EventConflictResolved

	// EventPowerupCollected signals a powerup pickup
	// Consumer: notification, audio | Payload: *PowerupPayload
	EventPowerupCollected

	// EventPowerupExpired signals a timed effect ending
	// Trigger: level-scoped expiry timer | Payload: *PowerupPayload
	EventPowerupExpired

	// EventBugHit signals a bug collision that cost a life
	// Trigger: collision check, bug mover | Payload: *BugHitPayload
	EventBugHit

	// EventBugsRestored signals the end of a RemoveBugs effect
	// Trigger: restore timer or re-entry into Playing | Payload: *BugsRestoredPayload
	EventBugsRestored

	// EventLevelStarted signals a fresh level instance
	// Consumer: level banner | Payload: *LevelPayload
	EventLevelStarted

	// EventLevelCompleted signals the commit tile was reached on a non-final level
	// Payload: *ScorePayload
	EventLevelCompleted

	// EventGameOver signals the last life was lost
	// Payload: *ScorePayload
	EventGameOver

	// EventGameCompleted signals the commit tile was reached on the final level
	// Payload: *ScorePayload
	EventGameCompleted

	// EventStateChanged signals a game state transition
	// Payload: *StateChangedPayload
	EventStateChanged

	eventTypeCount
)

var eventNames = [eventTypeCount]string{
	"PlayerMoved",
	"ConflictEncountered",
	"ConflictResolved",
	"PowerupCollected",
	"PowerupExpired",
	"BugHit",
	"BugsRestored",
	"LevelStarted",
	"LevelCompleted",
	"GameOver",
	"GameCompleted",
	"StateChanged",
}

func (t EventType) String() string {
	if t < 0 || t >= eventTypeCount {
		return fmt.Sprintf("EventType(%d)", int(t))
	}
	return eventNames[t]
}

// ParseEventType resolves an event name as printed by String
func ParseEventType(name string) (EventType, bool) {
	for i, n := range eventNames {
		if n == name {
			return EventType(i), true
		}
	}
	return 0, false
}

// GameEvent represents a single game event with metadata
type GameEvent struct {
	Type      EventType
	Payload   any
	Frame     int64 // Frame driver count at emission
	Timestamp time.Time
}
