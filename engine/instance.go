package engine

import (
	"time"

	"github.com/lixenwraith/git-conflict/grid"
	"github.com/lixenwraith/git-conflict/level"
)

// Effect is an active powerup effect
// A zero ExpiresAt means the effect lasts until consumed
type Effect struct {
	Kind      level.PowerupKind
	ExpiresAt time.Time
}

// suppressedBug remembers where a bug was lifted by RemoveBugs
type suppressedBug struct {
	bug *Bug
	at  grid.Point
}

// levelInstance is the mutable copy of a level, created on level entry and dropped on exit
type levelInstance struct {
	tmpl    *level.Level
	grid    *grid.Grid
	bugs    []*Bug
	solved  map[grid.Point]bool
	effects []*Effect

	ticker Handle // bug ticker while Playing, 0 otherwise

	// RemoveBugs bookkeeping
	suppressed bool
	lifted     []suppressedBug
	restore    Handle
	restoreDue bool // restore fired outside Playing, applied on re-entry
}

func newLevelInstance(tmpl *level.Level) *levelInstance {
	li := &levelInstance{
		tmpl:   tmpl,
		grid:   tmpl.Grid.Clone(),
		solved: make(map[grid.Point]bool),
	}
	for _, spawn := range tmpl.Bugs {
		b := newBug(spawn)
		if li.grid.AtPoint(b.Pos) == grid.Empty {
			li.grid.Set(b.Pos.X, b.Pos.Y, grid.Bug)
		}
		li.bugs = append(li.bugs, b)
	}
	return li
}

// immune reports whether any Immunity entry is still running at now
func (li *levelInstance) immune(now time.Time) bool {
	for _, e := range li.effects {
		if e.Kind == level.Immunity && e.ExpiresAt.After(now) {
			return true
		}
	}
	return false
}

func (li *levelInstance) hasEffect(kind level.PowerupKind) bool {
	for _, e := range li.effects {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func (li *levelInstance) removeEffect(target *Effect) bool {
	for i, e := range li.effects {
		if e == target {
			li.effects = append(li.effects[:i], li.effects[i+1:]...)
			return true
		}
	}
	return false
}

func (li *levelInstance) removeKind(kind level.PowerupKind) {
	kept := li.effects[:0]
	for _, e := range li.effects {
		if e.Kind != kind {
			kept = append(kept, e)
		}
	}
	li.effects = kept
}

// consumeAutoResolve clears the latch and reports whether it was set
func (li *levelInstance) consumeAutoResolve() bool {
	if !li.hasEffect(level.AutoResolve) {
		return false
	}
	li.removeKind(level.AutoResolve)
	return true
}
