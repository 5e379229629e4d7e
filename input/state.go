package input

import "github.com/lixenwraith/git-conflict/engine"

// InputMode selects which bindings are live
// Kept in sync by the frontend from the snapshot state and the merge editor
type InputMode uint8

const (
	ModeMenu     InputMode = iota
	ModePlay               // Playing
	ModeConflict           // Conflict modal, choice keys
	ModeMerge              // Manual-merge editor, text entry
	ModeEnded              // LevelComplete, GameOver, GameComplete
	modeCount
)

var modeNames = [modeCount]string{"menu", "play", "conflict", "merge", "ended"}

func (m InputMode) String() string {
	if m >= modeCount {
		return "unknown"
	}
	return modeNames[m]
}

// ModeFor maps a game state to its input mode, editing selects the merge editor during a conflict
func ModeFor(state engine.State, editing bool) InputMode {
	switch state {
	case engine.StatePlaying:
		return ModePlay
	case engine.StateConflict:
		if editing {
			return ModeMerge
		}
		return ModeConflict
	case engine.StateLevelComplete, engine.StateGameOver, engine.StateGameComplete:
		return ModeEnded
	default:
		return ModeMenu
	}
}
