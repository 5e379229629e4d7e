package constants

import "time"

// UI Timing Constants
const (
	// NotificationTimeout is how long powerup and resolve notifications stay visible
	NotificationTimeout = 3 * time.Second

	// LevelMessageTimeout is how long the level intro message stays visible
	LevelMessageTimeout = 5 * time.Second
)

// Tile Colors (hex, as used by both frontends)
const (
	ColorEmpty    = "#161b22"
	ColorWall     = "#30363d"
	ColorConflict = "#f0883e"
	ColorBug      = "#f85149"
	ColorPowerup  = "#58a6ff"
	ColorCommit   = "#7ee787"
	ColorPlayer   = "#c9d1d9"
	ColorText     = "#ffffff"
	ColorDim      = "#8b949e"
)

// Layout
const (
	// TileCellWidth is the number of terminal columns used per grid tile
	TileCellWidth = 2

	// GUITileSize is the pixel size of a tile in the window frontend
	GUITileSize = 40

	// HUDHeight is the number of rows reserved above the grid
	HUDHeight = 2
)

// File Locations
const (
	// DefaultConfigFile is the settings file name searched in the working directory
	DefaultConfigFile = "git-conflict.yaml"

	// LogDir is the directory debug logs are written to
	LogDir = "logs"

	// LogFileName is the active debug log file
	LogFileName = "git-conflict.log"

	// MaxLogSize is the size at which the debug log is rotated
	MaxLogSize = 10 * 1024 * 1024
)

// GameOverMessages are shown at random on the game over screen
var GameOverMessages = []string{
	"Your repository has become corrupted!",
	"Too many merge conflicts - repository abandoned!",
	"Fatal: cannot rebase onto multiple branches",
	"Error: detached HEAD state cannot be resolved",
	"Refusing to merge unrelated histories",
}
