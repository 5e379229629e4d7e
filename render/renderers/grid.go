package renderers

import (
	"github.com/lixenwraith/git-conflict/constants"
	"github.com/lixenwraith/git-conflict/engine"
	"github.com/lixenwraith/git-conflict/grid"
	"github.com/lixenwraith/git-conflict/render"
)

// tileGlyphs are the two terminal columns drawn for each tile
var tileGlyphs = map[grid.Tile][constants.TileCellWidth]rune{
	grid.Empty:    {'·', ' '},
	grid.Wall:     {'█', '█'},
	grid.Conflict: {'<', '>'},
	grid.Bug:      {'}', '{'},
	grid.Powerup:  {'◆', ' '},
	grid.Commit:   {'✓', ' '},
}

// GridRenderer draws the level tiles and the player
type GridRenderer struct{}

func NewGridRenderer() *GridRenderer {
	return &GridRenderer{}
}

func (r *GridRenderer) IsVisible(ctx render.RenderContext) bool {
	return ctx.Snap.Grid != nil
}

// Render implements SystemRenderer
func (r *GridRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	g := ctx.Snap.Grid
	th := ctx.Theme

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			sx, sy, ok := ctx.MapToScreen(grid.Point{X: x, Y: y})
			if !ok {
				continue
			}
			t := g.At(x, y)
			glyph := tileGlyphs[t]
			fg, bg, attrs := tileStyle(th, t)
			for i, ch := range glyph {
				buf.Set(sx+i, sy, ch, fg, bg, attrs)
			}
		}
	}

	r.drawPlayer(ctx, buf)
}

func tileStyle(th *render.Theme, t grid.Tile) (fg, bg render.RGB, attrs render.Attr) {
	switch t {
	case grid.Empty:
		return th.Dim.Scale(0.5), th.Background, render.AttrNone
	case grid.Wall:
		return th.Wall, th.Background, render.AttrNone
	case grid.Conflict:
		return render.RGBBlack, th.Conflict, render.AttrBold
	default:
		// Bug, Powerup and Commit glyphs are drawn in their color on the floor
		return th.TileColor(t), th.Background, render.AttrBold
	}
}

// drawPlayer marks the player cell, pulsing toward the powerup color while immune
func (r *GridRenderer) drawPlayer(ctx render.RenderContext, buf *render.RenderBuffer) {
	sx, sy, ok := ctx.MapToScreen(ctx.Snap.Player)
	if !ok {
		return
	}
	th := ctx.Theme
	bg := th.Player
	if ctx.Snap.Immune() {
		// Half-second pulse driven by the game clock
		phase := ctx.Now.UnixMilli() % 1000
		bg = th.Player.Blend(th.Powerup, 0.4+0.4*float64(phase)/1000)
	}
	if ctx.Snap.State == engine.StateGameOver {
		bg = th.Bug
	}
	buf.Set(sx, sy, '@', render.RGBBlack, bg, render.AttrBold)
	buf.Set(sx+1, sy, ' ', render.RGBBlack, bg, render.AttrNone)
}
