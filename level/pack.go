package level

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/git-conflict/grid"
)

// ErrEmptyPack is returned when a pack file declares no levels
var ErrEmptyPack = errors.New("level pack has no levels")

// Pack is an ordered level list with the puzzles its conflicts reference
type Pack struct {
	Levels  []*Level
	Puzzles []Puzzle
}

// Validate checks every level against the pack's puzzle list
func (p *Pack) Validate() error {
	if len(p.Levels) == 0 {
		return ErrEmptyPack
	}
	for i, l := range p.Levels {
		if err := l.Validate(len(p.Puzzles)); err != nil {
			return fmt.Errorf("level %d: %w", i, err)
		}
	}
	return nil
}

// Puzzle returns the puzzle referenced by index, nil when out of range
func (p *Pack) Puzzle(index int) *Puzzle {
	if index < 0 || index >= len(p.Puzzles) {
		return nil
	}
	return &p.Puzzles[index]
}

// File format

type packFile struct {
	Levels  []levelFile  `yaml:"levels"`
	Puzzles []puzzleFile `yaml:"puzzles"`
}

type levelFile struct {
	Name      string         `yaml:"name"`
	Message   string         `yaml:"message"`
	Grid      []string       `yaml:"grid"`
	Start     grid.Point     `yaml:"start"`
	Conflicts []conflictFile `yaml:"conflicts"`
	Bugs      []bugFile      `yaml:"bugs"`
	Powerups  []powerupFile  `yaml:"powerups"`
}

type conflictFile struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Puzzle int `yaml:"puzzle"`
}

type bugFile struct {
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	Pattern string `yaml:"pattern"`
	Range   int    `yaml:"range"`
}

type powerupFile struct {
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	Kind string `yaml:"kind"`
}

type puzzleFile struct {
	Name       string `yaml:"name"`
	Current    string `yaml:"current"`
	Incoming   string `yaml:"incoming"`
	Solution   string `yaml:"solution"`
	Difficulty string `yaml:"difficulty"`
}

// LoadPack reads and validates a YAML level pack
func LoadPack(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level pack: %w", err)
	}
	pack, err := ParsePack(data)
	if err != nil {
		return nil, fmt.Errorf("level pack %s: %w", path, err)
	}
	return pack, nil
}

// ParsePack decodes a YAML level pack
// A pack without a puzzles section uses the built-in puzzles
func ParsePack(data []byte) (*Pack, error) {
	var pf packFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	pack := &Pack{}
	if len(pf.Puzzles) == 0 {
		pack.Puzzles = Builtin().Puzzles
	} else {
		for i, pz := range pf.Puzzles {
			diff := Easy
			if pz.Difficulty != "" {
				d, err := ParseDifficulty(pz.Difficulty)
				if err != nil {
					return nil, fmt.Errorf("puzzle %d: %w", i, err)
				}
				diff = d
			}
			if pz.Solution == "" {
				return nil, fmt.Errorf("puzzle %d (%s): empty solution", i, pz.Name)
			}
			pack.Puzzles = append(pack.Puzzles, Puzzle{
				Name:       pz.Name,
				Current:    pz.Current,
				Incoming:   pz.Incoming,
				Solution:   pz.Solution,
				Difficulty: diff,
			})
		}
	}

	for i, lf := range pf.Levels {
		l, err := lf.build()
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", i, err)
		}
		pack.Levels = append(pack.Levels, l)
	}

	if err := pack.Validate(); err != nil {
		return nil, err
	}
	return pack, nil
}

func (lf *levelFile) build() (*Level, error) {
	g, err := grid.Parse(lf.Grid)
	if err != nil {
		return nil, fmt.Errorf("grid: %w", err)
	}
	l := &Level{
		Name:    lf.Name,
		Message: lf.Message,
		Grid:    g,
		Start:   lf.Start,
	}
	for _, c := range lf.Conflicts {
		l.Conflicts = append(l.Conflicts, ConflictSpot{At: grid.Point{X: c.X, Y: c.Y}, Puzzle: c.Puzzle})
	}
	for _, b := range lf.Bugs {
		pattern, err := ParsePattern(b.Pattern)
		if err != nil {
			return nil, fmt.Errorf("bug (%d,%d): %w", b.X, b.Y, err)
		}
		l.Bugs = append(l.Bugs, BugSpawn{At: grid.Point{X: b.X, Y: b.Y}, Pattern: pattern, Range: b.Range})
	}
	for _, p := range lf.Powerups {
		kind, err := ParsePowerupKind(p.Kind)
		if err != nil {
			return nil, fmt.Errorf("powerup (%d,%d): %w", p.X, p.Y, err)
		}
		l.Powerups = append(l.Powerups, PowerupSpot{At: grid.Point{X: p.X, Y: p.Y}, Kind: kind})
	}
	return l, nil
}
