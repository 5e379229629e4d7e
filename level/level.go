// Package level holds the immutable level templates and merge puzzles the game is played on
package level

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/git-conflict/constants"
	"github.com/lixenwraith/git-conflict/grid"
)

// Pattern is a bug's patrol shape
type Pattern uint8

const (
	Horizontal Pattern = iota
	Vertical
	Circular
)

var patternNames = [...]string{"horizontal", "vertical", "circular"}

func (p Pattern) String() string {
	if int(p) >= len(patternNames) {
		return fmt.Sprintf("pattern(%d)", uint8(p))
	}
	return patternNames[p]
}

// ParsePattern accepts the lowercase names used in level files
func ParsePattern(s string) (Pattern, error) {
	for i, n := range patternNames {
		if strings.EqualFold(n, s) {
			return Pattern(i), nil
		}
	}
	return 0, fmt.Errorf("unknown movement pattern %q", s)
}

// PowerupKind selects the effect applied on pickup
type PowerupKind uint8

const (
	RemoveBugs  PowerupKind = iota // Rebase: clears the bugs for a while
	Immunity                       // Stash: bugs cannot hurt the player
	AutoResolve                    // Cherry-pick: next conflict resolves itself
	powerupKindCount
)

var powerupInfo = [powerupKindCount]struct {
	key    string
	name   string
	effect string
}{
	{"remove_bugs", "Rebase", "Removes all bugs temporarily"},
	{"immunity", "Stash", "Bugs can't touch you for a while"},
	{"auto_resolve", "Cherry-pick", "Auto-resolve next conflict"},
}

func (k PowerupKind) String() string {
	if k >= powerupKindCount {
		return fmt.Sprintf("powerup(%d)", uint8(k))
	}
	return powerupInfo[k].key
}

// Name is the git-flavored display name
func (k PowerupKind) Name() string {
	if k >= powerupKindCount {
		return "Unknown"
	}
	return powerupInfo[k].name
}

// Effect is the one-line description shown on pickup
func (k PowerupKind) Effect() string {
	if k >= powerupKindCount {
		return ""
	}
	return powerupInfo[k].effect
}

// ParsePowerupKind accepts either the file key ("immunity") or the display name ("Stash")
func ParsePowerupKind(s string) (PowerupKind, error) {
	for i, info := range powerupInfo {
		if strings.EqualFold(info.key, s) || strings.EqualFold(info.name, s) {
			return PowerupKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown powerup %q", s)
}

// ConflictSpot places a conflict tile and names the puzzle it opens
type ConflictSpot struct {
	At     grid.Point
	Puzzle int
}

// BugSpawn describes a bug at level start
type BugSpawn struct {
	At      grid.Point
	Pattern Pattern
	Range   int // Oscillation half-amplitude around At, unused by Circular
}

// PowerupSpot places a powerup tile
type PowerupSpot struct {
	At   grid.Point
	Kind PowerupKind
}

// Level is an immutable template, instances deep-copy Grid before mutating it
type Level struct {
	Name      string
	Message   string
	Grid      *grid.Grid
	Start     grid.Point
	Conflicts []ConflictSpot
	Bugs      []BugSpawn
	Powerups  []PowerupSpot
}

// ConflictAt returns the conflict placed at p
func (l *Level) ConflictAt(p grid.Point) (ConflictSpot, bool) {
	for _, c := range l.Conflicts {
		if c.At == p {
			return c, true
		}
	}
	return ConflictSpot{}, false
}

// PowerupAt returns the powerup placed at p
func (l *Level) PowerupAt(p grid.Point) (PowerupSpot, bool) {
	for _, pu := range l.Powerups {
		if pu.At == p {
			return pu, true
		}
	}
	return PowerupSpot{}, false
}

// Validate checks the template against its grid
// puzzleCount bounds the puzzle indices referenced by conflicts
func (l *Level) Validate(puzzleCount int) error {
	if l.Grid == nil {
		return fmt.Errorf("level %q: no grid", l.Name)
	}
	g := l.Grid
	if g.Width > constants.MaxGridWidth || g.Height > constants.MaxGridHeight {
		return fmt.Errorf("level %q: grid %dx%d exceeds %dx%d", l.Name, g.Width, g.Height, constants.MaxGridWidth, constants.MaxGridHeight)
	}
	if n := g.Count(grid.Commit); n != 1 {
		return fmt.Errorf("level %q: want exactly one commit tile, found %d", l.Name, n)
	}
	if !g.Passable(l.Start.X, l.Start.Y) {
		return fmt.Errorf("level %q: player start %v is not passable", l.Name, l.Start)
	}
	if t := g.AtPoint(l.Start); t != grid.Empty {
		return fmt.Errorf("level %q: player start %v is on a %s tile", l.Name, l.Start, t)
	}
	for _, c := range l.Conflicts {
		if !g.InBounds(c.At.X, c.At.Y) || g.AtPoint(c.At) != grid.Conflict {
			return fmt.Errorf("level %q: conflict %v is not on a conflict tile", l.Name, c.At)
		}
		if c.Puzzle < 0 || c.Puzzle >= puzzleCount {
			return fmt.Errorf("level %q: conflict %v references puzzle %d of %d", l.Name, c.At, c.Puzzle, puzzleCount)
		}
	}
	if n := g.Count(grid.Conflict); n != len(l.Conflicts) {
		return fmt.Errorf("level %q: %d conflict tiles but %d conflict placements", l.Name, n, len(l.Conflicts))
	}
	for _, b := range l.Bugs {
		if !g.Passable(b.At.X, b.At.Y) {
			return fmt.Errorf("level %q: bug %v spawns outside the walkable area", l.Name, b.At)
		}
		if t := g.AtPoint(b.At); t != grid.Empty && t != grid.Bug {
			return fmt.Errorf("level %q: bug %v spawns on a %s tile", l.Name, b.At, t)
		}
		if b.Range < 0 {
			return fmt.Errorf("level %q: bug %v has negative range", l.Name, b.At)
		}
	}
	for _, p := range l.Powerups {
		if !g.InBounds(p.At.X, p.At.Y) || g.AtPoint(p.At) != grid.Powerup {
			return fmt.Errorf("level %q: powerup %v is not on a powerup tile", l.Name, p.At)
		}
		if p.Kind >= powerupKindCount {
			return fmt.Errorf("level %q: powerup %v has unknown kind %d", l.Name, p.At, p.Kind)
		}
	}
	if n := g.Count(grid.Powerup); n != len(l.Powerups) {
		return fmt.Errorf("level %q: %d powerup tiles but %d powerup placements", l.Name, n, len(l.Powerups))
	}
	return nil
}
