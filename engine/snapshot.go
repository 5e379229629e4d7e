package engine

import (
	"time"

	"github.com/lixenwraith/git-conflict/grid"
	"github.com/lixenwraith/git-conflict/level"
)

// ConflictView is the open conflict as shown by the merge modal
type ConflictView struct {
	At     grid.Point
	Index  int
	Puzzle level.Puzzle
}

// Snapshot is an immutable copy of everything a frontend draws
type Snapshot struct {
	SessionID string
	State     State
	Now       time.Time
	Frame     int64

	LevelIndex   int
	LevelCount   int
	LevelName    string
	LevelMessage string

	Grid       *grid.Grid // nil in Menu
	Player     grid.Point
	Lives      int
	Score      int
	FinalScore int

	Effects        []Effect
	AutoResolve    bool
	BugsSuppressed bool
	Bugs           []Bug
	Solved         int
	Conflict       *ConflictView

	StateTimers int
	LevelTimers int
}

// Immune reports whether an Immunity effect outlives the snapshot time
func (s *Snapshot) Immune() bool {
	for _, e := range s.Effects {
		if e.Kind == level.Immunity && e.ExpiresAt.After(s.Now) {
			return true
		}
	}
	return false
}

// Snapshot copies the current state for rendering
func (g *Game) Snapshot() *Snapshot {
	s := &Snapshot{
		SessionID:   g.sessionID,
		State:       g.State(),
		Now:         g.clock.Now(),
		Frame:       g.frame,
		LevelIndex:  g.levelIndex,
		LevelCount:  len(g.pack.Levels),
		Player:      g.player,
		Lives:       g.lives,
		Score:       g.score,
		FinalScore:  g.finalScore,
		StateTimers: g.sched.Live(ScopeState),
		LevelTimers: g.sched.Live(ScopeLevel),
	}
	if s.State != StateMenu && g.levelIndex < len(g.pack.Levels) {
		tmpl := g.pack.Levels[g.levelIndex]
		s.LevelName = tmpl.Name
		s.LevelMessage = tmpl.Message
	}

	if li := g.lvl; li != nil {
		s.Grid = li.grid.Clone()
		s.Solved = len(li.solved)
		s.BugsSuppressed = li.suppressed
		s.AutoResolve = li.hasEffect(level.AutoResolve)
		for _, e := range li.effects {
			s.Effects = append(s.Effects, *e)
		}
		for _, b := range li.bugs {
			s.Bugs = append(s.Bugs, *b)
		}
	} else if g.lastGrid != nil {
		s.Grid = g.lastGrid.Clone()
	}

	if g.conflict != nil {
		view := &ConflictView{At: g.conflict.At, Index: g.conflict.Puzzle}
		if pz := g.pack.Puzzle(g.conflict.Puzzle); pz != nil {
			view.Puzzle = *pz
		}
		s.Conflict = view
	}
	return s
}
