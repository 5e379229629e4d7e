package audio

import (
	"github.com/lixenwraith/git-conflict/events"
)

// cueMap binds game events to the sound they trigger
var cueMap = map[events.EventType]SoundType{
	events.EventPlayerMoved:         SoundMove,
	events.EventConflictEncountered: SoundConflict,
	events.EventConflictResolved:    SoundCommit,
	events.EventPowerupCollected:    SoundPowerup,
	events.EventBugHit:              SoundBug,
	events.EventLevelCompleted:      SoundWin,
	events.EventGameCompleted:       SoundWin,
	events.EventGameOver:            SoundLose,
}

// Cues plays a sound for each game event it is registered for
// The context type is ignored, so one Cues serves any router
type Cues[T any] struct {
	player Player
}

// NewCues creates a cue handler playing through p
func NewCues[T any](p Player) *Cues[T] {
	return &Cues[T]{player: p}
}

func (c *Cues[T]) HandleEvent(_ T, ev events.GameEvent) {
	if st, ok := cueMap[ev.Type]; ok {
		c.player.Play(st)
	}
}

func (c *Cues[T]) EventTypes() []events.EventType {
	types := make([]events.EventType, 0, len(cueMap))
	for t := range cueMap {
		types = append(types, t)
	}
	return types
}
