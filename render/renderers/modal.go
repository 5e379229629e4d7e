package renderers

import (
	"fmt"

	"github.com/lixenwraith/git-conflict/engine"
	"github.com/lixenwraith/git-conflict/notify"
	"github.com/lixenwraith/git-conflict/render"
)

const modalDim = 0.35

var titleArt = []string{
	` ___ _ _      ___           __ _ _    _   `,
	`/ __(_) |_   / __|___ _ _  / _| (_)__| |_ `,
	`| (_ | |  _| | (__/ _ \ ' \|  _| | / _|  _|`,
	`\___|_|\__|  \___\___/_||_|_| |_|_\__|\__|`,
}

// MenuRenderer draws the title screen
type MenuRenderer struct{}

func NewMenuRenderer() *MenuRenderer {
	return &MenuRenderer{}
}

func (r *MenuRenderer) IsVisible(ctx render.RenderContext) bool {
	return ctx.Snap.State == engine.StateMenu
}

// Render implements SystemRenderer
func (r *MenuRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	th := ctx.Theme
	y := max(0, ctx.ScreenHeight/2-len(titleArt)-4)
	for _, line := range titleArt {
		centered(buf, ctx.ScreenWidth, y, line, th.Conflict, render.AttrBold)
		y++
	}
	y++
	centered(buf, ctx.ScreenWidth, y, "Resolve every merge conflict, dodge the bugs, reach the commit.", th.Text, render.AttrNone)
	y += 2
	centered(buf, ctx.ScreenWidth, y, fmt.Sprintf("%d levels", ctx.Snap.LevelCount), th.Dim, render.AttrNone)
	y += 2
	centered(buf, ctx.ScreenWidth, y, "Enter  start", th.Commit, render.AttrBold)
	y++
	centered(buf, ctx.ScreenWidth, y, "arrows / wasd  move    r  restart    m  sound    q  quit", th.Dim, render.AttrNone)
	if ctx.Muted {
		y += 2
		centered(buf, ctx.ScreenWidth, y, "sound off", th.Bad, render.AttrNone)
	}
}

// ConflictRenderer draws the merge modal with both sides of the conflict
type ConflictRenderer struct{}

func NewConflictRenderer() *ConflictRenderer {
	return &ConflictRenderer{}
}

func (r *ConflictRenderer) IsVisible(ctx render.RenderContext) bool {
	return ctx.Snap.State == engine.StateConflict && ctx.Snap.Conflict != nil && ctx.Editor == nil
}

// Render implements SystemRenderer
func (r *ConflictRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	th := ctx.Theme
	pz := ctx.Snap.Conflict.Puzzle
	current := codeLines(pz.Current)
	incoming := codeLines(pz.Incoming)

	help := "1  accept current    2  accept incoming    3  manual merge"
	w := max(longest(current), longest(incoming), len(help), len(pz.Name)+16) + 4
	h := len(current) + len(incoming) + 9

	buf.Dim(modalDim)
	x, y, inner := modalBox(ctx, buf, w, h, th.Conflict)

	buf.Text(x, y, clip(fmt.Sprintf("CONFLICT  %s (%s)", pz.Name, pz.Difficulty), inner), th.Conflict, render.AttrBold)
	y += 2
	buf.Text(x, y, "<<<<<<< HEAD", th.Good, render.AttrBold)
	y++
	for _, l := range current {
		buf.Text(x, y, clip(l, inner), th.Text, render.AttrNone)
		y++
	}
	buf.Text(x, y, "=======", th.Dim, render.AttrBold)
	y++
	for _, l := range incoming {
		buf.Text(x, y, clip(l, inner), th.Text, render.AttrNone)
		y++
	}
	buf.Text(x, y, ">>>>>>> incoming", th.Powerup, render.AttrBold)
	y += 2
	buf.Text(x, y, clip(help, inner), th.Dim, render.AttrNone)
}

// EditorRenderer draws the manual-merge editor
type EditorRenderer struct{}

func NewEditorRenderer() *EditorRenderer {
	return &EditorRenderer{}
}

func (r *EditorRenderer) IsVisible(ctx render.RenderContext) bool {
	return ctx.Snap.State == engine.StateConflict && ctx.Snap.Conflict != nil && ctx.Editor != nil
}

// Render implements SystemRenderer
func (r *EditorRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	th := ctx.Theme
	pz := ctx.Snap.Conflict.Puzzle
	lines := ctx.Editor.Lines()
	row, col := ctx.Editor.Cursor()

	help := "Ctrl+S  commit merge    Ctrl+V  paste    Esc  back"
	w := max(longest(lines)+1, len(help), 40) + 4
	h := len(lines) + 6

	buf.Dim(modalDim)
	x, y, inner := modalBox(ctx, buf, w, h, th.Powerup)

	buf.Text(x, y, clip("MANUAL MERGE  "+pz.Name, inner), th.Powerup, render.AttrBold)
	y += 2
	for i, l := range lines {
		buf.Text(x, y+i, clip(l, inner), th.Text, render.AttrNone)
	}

	// Cursor cell, reversed over whatever is underneath
	cx, cy := x+col, y+row
	if col < inner {
		c := buf.Get(cx, cy)
		buf.Set(cx, cy, c.Rune, c.Fg, c.Bg, render.AttrReverse)
	}

	buf.Text(x, y+len(lines)+1, clip(help, inner), th.Dim, render.AttrNone)
}

// EndRenderer draws the level complete, game over and game complete screens
type EndRenderer struct{}

func NewEndRenderer() *EndRenderer {
	return &EndRenderer{}
}

func (r *EndRenderer) IsVisible(ctx render.RenderContext) bool {
	switch ctx.Snap.State {
	case engine.StateLevelComplete, engine.StateGameOver, engine.StateGameComplete:
		return true
	}
	return false
}

// Render implements SystemRenderer
func (r *EndRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	th := ctx.Theme
	snap := ctx.Snap

	var title, body, help string
	color := th.Commit
	switch snap.State {
	case engine.StateLevelComplete:
		title = fmt.Sprintf("LEVEL %d COMPLETE", snap.LevelIndex+1)
		body = fmt.Sprintf("Changes committed. Score: %d", snap.Score)
		help = "Enter  next level    r  restart    Esc  menu"
	case engine.StateGameOver:
		title = "GAME OVER"
		body = notify.GameOverMessage(snap.SessionID)
		help = "Enter  try again    Esc  menu    q  quit"
		color = th.Bug
	case engine.StateGameComplete:
		title = "ALL BRANCHES MERGED"
		body = "Every conflict resolved. The repository is clean."
		help = "Enter  play again    Esc  menu    q  quit"
	}
	score := fmt.Sprintf("Final score: %d", snap.FinalScore)
	if snap.State == engine.StateLevelComplete {
		score = fmt.Sprintf("Level %d of %d", snap.LevelIndex+1, snap.LevelCount)
	}

	w := max(len(title), len(body), len(help), len(score)) + 6
	buf.Dim(modalDim)
	x, y, inner := modalBox(ctx, buf, w, 8, color)

	buf.Text(x, y, clip(title, inner), color, render.AttrBold)
	buf.Text(x, y+2, clip(body, inner), th.Text, render.AttrNone)
	buf.Text(x, y+3, clip(score, inner), th.Text, render.AttrBold)
	buf.Text(x, y+5, clip(help, inner), th.Dim, render.AttrNone)
}
