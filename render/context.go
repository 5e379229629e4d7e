package render

import (
	"time"

	"github.com/lixenwraith/git-conflict/constants"
	"github.com/lixenwraith/git-conflict/editor"
	"github.com/lixenwraith/git-conflict/engine"
	"github.com/lixenwraith/git-conflict/grid"
	"github.com/lixenwraith/git-conflict/notify"
)

// RenderContext provides frame state for renderers, passed by value
type RenderContext struct {
	Snap  *engine.Snapshot
	Now   time.Time
	Theme *Theme

	// Frontend state outside the game
	Muted   bool
	Debug   bool
	Editor  *editor.Editor // non-nil while the merge editor is open
	Notices []notify.Notice

	// Screen dimensions (terminal size)
	ScreenWidth  int
	ScreenHeight int

	// Screen position of tile (0,0); each tile is TileCellWidth columns wide
	GridX int
	GridY int
}

// NewRenderContext centers the snapshot grid below the HUD
func NewRenderContext(snap *engine.Snapshot, theme *Theme, width, height int) RenderContext {
	rc := RenderContext{
		Snap:         snap,
		Now:          snap.Now,
		Theme:        theme,
		ScreenWidth:  width,
		ScreenHeight: height,
		GridY:        constants.HUDHeight,
	}
	if g := snap.Grid; g != nil {
		gridW := g.Width * constants.TileCellWidth
		rc.GridX = max(0, (width-gridW)/2)
		rc.GridY = max(constants.HUDHeight, constants.HUDHeight+(height-constants.HUDHeight-g.Height-notify.MaxNotices)/2)
	}
	return rc
}

// MapToScreen converts a grid cell to the screen column of its left half
// Returns visible=false if the cell lies outside the screen
func (rc *RenderContext) MapToScreen(p grid.Point) (int, int, bool) {
	x := rc.GridX + p.X*constants.TileCellWidth
	y := rc.GridY + p.Y
	visible := x >= 0 && x+constants.TileCellWidth <= rc.ScreenWidth && y >= 0 && y < rc.ScreenHeight
	return x, y, visible
}

// GridBottom is the first screen row below the grid
func (rc *RenderContext) GridBottom() int {
	if rc.Snap.Grid == nil {
		return rc.GridY
	}
	return rc.GridY + rc.Snap.Grid.Height
}
