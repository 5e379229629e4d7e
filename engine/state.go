package engine

import (
	"fmt"

	"github.com/lixenwraith/git-conflict/engine/fsm"
	"github.com/lixenwraith/git-conflict/events"
)

// State is the game's externally visible state
// Values double as state machine node IDs
type State int

const (
	StateMenu State = iota + 2
	StatePlaying
	StateConflict
	StateLevelComplete
	StateGameOver
	StateGameComplete

	// stateLevel is the parent of Playing and Conflict, it owns the level instance
	stateLevel
)

var stateNames = map[State]string{
	StateMenu:          "Menu",
	StatePlaying:       "Playing",
	StateConflict:      "Conflict",
	StateLevelComplete: "LevelComplete",
	StateGameOver:      "GameOver",
	StateGameComplete:  "GameComplete",
	stateLevel:         "Level",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return fmt.Sprintf("State(%d)", int(s))
}

func (s State) id() fsm.StateID { return fsm.StateID(s) }

// Triggers accepted by the state machine
const (
	trStart fsm.Trigger = iota + 1
	trConflict
	trResolve
	trCommit
	trFinal
	trDie
	trAdvance
	trMenu
)

// buildMachine wires the state graph
//
//	Root
//	 ├── Menu
//	 ├── Level            enter: new level instance, exit: cancel level scope
//	 │    ├── Playing     enter: start drivers, exit: cancel state scope
//	 │    └── Conflict
//	 ├── LevelComplete
//	 ├── GameOver
//	 └── GameComplete
func (g *Game) buildMachine() error {
	m := fsm.NewMachine[*Game]()

	m.AddState(fsm.StateRoot, "Root", fsm.StateNone)
	m.AddState(StateMenu.id(), StateMenu.String(), fsm.StateRoot).
		Enter((*Game).enterMenu)
	m.AddState(stateLevel.id(), stateLevel.String(), fsm.StateRoot).
		Enter((*Game).enterLevel).
		Exit((*Game).exitLevel)
	m.AddState(StatePlaying.id(), StatePlaying.String(), stateLevel.id()).
		Enter((*Game).enterPlaying).
		Exit((*Game).exitPlaying)
	m.AddState(StateConflict.id(), StateConflict.String(), stateLevel.id())
	m.AddState(StateLevelComplete.id(), StateLevelComplete.String(), fsm.StateRoot)
	m.AddState(StateGameOver.id(), StateGameOver.String(), fsm.StateRoot).
		Enter((*Game).enterEnded)
	m.AddState(StateGameComplete.id(), StateGameComplete.String(), fsm.StateRoot).
		Enter((*Game).enterEnded)

	transitions := []struct {
		from    State
		to      State
		trigger fsm.Trigger
	}{
		{StateMenu, StatePlaying, trStart},
		{StatePlaying, StateConflict, trConflict},
		{StateConflict, StatePlaying, trResolve},
		{StatePlaying, StateLevelComplete, trCommit},
		{StatePlaying, StateGameComplete, trFinal},
		{stateLevel, StateGameOver, trDie},
		{StateLevelComplete, StatePlaying, trAdvance},
	}
	for _, t := range transitions {
		if err := m.AddTransition(t.from.id(), fsm.Transition[*Game]{TargetID: t.to.id(), Trigger: t.trigger}); err != nil {
			return err
		}
	}
	if err := m.AddTransition(fsm.StateRoot, fsm.Transition[*Game]{TargetID: StateMenu.id(), Trigger: trMenu}); err != nil {
		return err
	}
	if err := m.CompilePaths(); err != nil {
		return err
	}

	m.OnTransition = (*Game).stateChanged
	g.machine = m
	return nil
}

// stateChanged runs after every completed transition
func (g *Game) stateChanged(from, to fsm.StateID) {
	g.statState.Store(State(to).String())
	g.logf("state %s -> %s", State(from), State(to))
	g.emit(events.EventStateChanged, &events.StateChangedPayload{
		From: State(from).String(),
		To:   State(to).String(),
	})
}
