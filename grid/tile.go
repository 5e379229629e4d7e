package grid

import "fmt"

// Tile identifies the content of a single grid cell
// Numeric values match the level tables the game was designed with
type Tile uint8

const (
	Empty     Tile = iota // Open floor
	Wall                  // Impassable
	Conflict              // Merge conflict, opens the resolve puzzle
	Bug                   // Patrolling bug, costs a life on contact
	Powerup               // Collectible effect
	Commit                // Level exit
	tileCount             // sentinel
)

var tileNames = [tileCount]string{"Empty", "Wall", "Conflict", "Bug", "Powerup", "Commit"}

// tileGlyphs is the text form used by level files and the terminal renderer
var tileGlyphs = [tileCount]rune{'.', '#', '!', 'b', '*', 'C'}

func (t Tile) String() string {
	if t >= tileCount {
		return fmt.Sprintf("Tile(%d)", uint8(t))
	}
	return tileNames[t]
}

// Glyph returns the level-file character for the tile
func (t Tile) Glyph() rune {
	if t >= tileCount {
		return '?'
	}
	return tileGlyphs[t]
}

// Valid reports whether t is a known tile type
func (t Tile) Valid() bool {
	return t < tileCount
}

// ParseTile maps a level-file character back to its tile
func ParseTile(r rune) (Tile, bool) {
	for i, g := range tileGlyphs {
		if g == r {
			return Tile(i), true
		}
	}
	return Empty, false
}
