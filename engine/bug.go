package engine

import (
	"github.com/lixenwraith/git-conflict/grid"
	"github.com/lixenwraith/git-conflict/level"
)

// quarterOffsets are the rounded (cos, sin) offsets for 0, pi/2, pi, 3pi/2
var quarterOffsets = [4]grid.Point{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: -1}}

// Bug is a patrolling enemy owned by one level instance
// Pos is the logical position, which may disagree with the grid when a move lands on an occupied cell
type Bug struct {
	Spawn   grid.Point
	Pos     grid.Point
	Pattern level.Pattern
	Range   int
	Dir     int // +1 or -1 for linear patterns
	Quarter int // 0..3, circular heading in quarter turns
}

func newBug(spawn level.BugSpawn) *Bug {
	return &Bug{
		Spawn:   spawn.At,
		Pos:     spawn.At,
		Pattern: spawn.Pattern,
		Range:   spawn.Range,
		Dir:     1,
	}
}

// inWindow reports whether a linear candidate stays within spawn +/- range on the pattern's axis
func (b *Bug) inWindow(p grid.Point) bool {
	switch b.Pattern {
	case level.Horizontal:
		return p.X >= b.Spawn.X-b.Range && p.X <= b.Spawn.X+b.Range
	case level.Vertical:
		return p.Y >= b.Spawn.Y-b.Range && p.Y <= b.Spawn.Y+b.Range
	}
	return true
}

func (b *Bug) linearStep(dir int) grid.Point {
	if b.Pattern == level.Horizontal {
		return grid.Point{X: b.Pos.X + dir, Y: b.Pos.Y}
	}
	return grid.Point{X: b.Pos.X, Y: b.Pos.Y + dir}
}

func emptyAt(g *grid.Grid, p grid.Point) bool {
	return g.InBounds(p.X, p.Y) && g.AtPoint(p) == grid.Empty
}

// candidate computes the next logical position and updates the heading
// ok is false when the bug must hold position
func (b *Bug) candidate(g *grid.Grid) (next grid.Point, ok bool) {
	switch b.Pattern {
	case level.Horizontal, level.Vertical:
		next = b.linearStep(b.Dir)
		if !b.inWindow(next) || !emptyAt(g, next) {
			b.Dir = -b.Dir
			next = b.linearStep(b.Dir)
		}
		if !b.inWindow(next) {
			return b.Pos, false
		}
	case level.Circular:
		b.Quarter = (b.Quarter + 1) % 4
		next = b.Pos.Add(quarterOffsets[b.Quarter])
		if !emptyAt(g, next) {
			b.Quarter = (b.Quarter + 1) % 4
			next = b.Pos.Add(quarterOffsets[b.Quarter])
		}
	default:
		return b.Pos, false
	}
	if !g.InBounds(next.X, next.Y) {
		return b.Pos, false
	}
	return next, true
}

// step advances the bug one tick on g
// The bug's own tile is lifted first and dropped again only on an Empty cell, while the logical
// position follows the candidate even onto occupied cells
// Returns whether a Bug tile was placed at the bug's position
func (b *Bug) step(g *grid.Grid) (placed bool) {
	if g.InBounds(b.Pos.X, b.Pos.Y) && g.AtPoint(b.Pos) == grid.Bug {
		g.Clear(b.Pos.X, b.Pos.Y)
	}

	if next, ok := b.candidate(g); ok {
		b.Pos = next
	}

	if emptyAt(g, b.Pos) {
		g.Set(b.Pos.X, b.Pos.Y, grid.Bug)
		return true
	}
	return false
}
