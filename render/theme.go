package render

import (
	"fmt"

	"github.com/lixenwraith/git-conflict/config"
	"github.com/lixenwraith/git-conflict/grid"
)

// Theme is the resolved palette used by every renderer
type Theme struct {
	Background RGB
	Wall       RGB
	Conflict   RGB
	Bug        RGB
	Powerup    RGB
	Commit     RGB
	Player     RGB
	Text       RGB
	Dim        RGB

	Good RGB
	Bad  RGB
}

// NewTheme resolves the configured hex colors
func NewTheme(t config.Theme) (*Theme, error) {
	th := &Theme{
		Good: MustParseHex("#3fb950"),
		Bad:  MustParseHex("#f85149"),
	}
	for _, c := range []struct {
		name string
		hex  string
		dst  *RGB
	}{
		{"empty", t.Empty, &th.Background},
		{"wall", t.Wall, &th.Wall},
		{"conflict", t.Conflict, &th.Conflict},
		{"bug", t.Bug, &th.Bug},
		{"powerup", t.Powerup, &th.Powerup},
		{"commit", t.Commit, &th.Commit},
		{"player", t.Player, &th.Player},
		{"text", t.Text, &th.Text},
		{"dim", t.Dim, &th.Dim},
	} {
		rgb, err := ParseHex(c.hex)
		if err != nil {
			return nil, fmt.Errorf("theme %s: %w", c.name, err)
		}
		*c.dst = rgb
	}
	return th, nil
}

// DefaultTheme is the stock palette
func DefaultTheme() *Theme {
	th, err := NewTheme(config.Default().Display.Theme)
	if err != nil {
		panic(err)
	}
	return th
}

// TileColor returns the fill color of a tile
func (th *Theme) TileColor(t grid.Tile) RGB {
	switch t {
	case grid.Wall:
		return th.Wall
	case grid.Conflict:
		return th.Conflict
	case grid.Bug:
		return th.Bug
	case grid.Powerup:
		return th.Powerup
	case grid.Commit:
		return th.Commit
	default:
		return th.Background
	}
}
