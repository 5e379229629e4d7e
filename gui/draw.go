package gui

import (
	"fmt"
	"image/color"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lixenwraith/git-conflict/constants"
	"github.com/lixenwraith/git-conflict/engine"
	"github.com/lixenwraith/git-conflict/grid"
	"github.com/lixenwraith/git-conflict/level"
	"github.com/lixenwraith/git-conflict/notify"
	"github.com/lixenwraith/git-conflict/render"
)

// Layout in pixels; the debug font is 6x16
const (
	margin      = 16
	hudHeight   = 44
	lineHeight  = 16
	glyphWidth  = 6
	noticeRows  = notify.MaxNotices
	minGridCols = 16
	minGridRows = 12
)

var (
	shade     = color.RGBA{0, 0, 0, 170}
	panelFill = color.RGBA{13, 17, 23, 245}
)

// rgba converts a theme color for ebiten
func rgba(c render.RGB) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// textWidth is the pixel width of s in the debug font
func textWidth(s string) int {
	return utf8.RuneCountInString(s) * glyphWidth
}

// gridOrigin centers a grid horizontally below the HUD
func gridOrigin(g *grid.Grid, screenW int) (float32, float32) {
	w := g.Width * constants.GUITileSize
	return float32(max(margin, (screenW-w)/2)), float32(margin + hudHeight)
}

// Draw implements ebiten.Game
func (g *Game) Draw(screen *ebiten.Image) {
	th := g.theme
	screen.Fill(rgba(th.Background.Scale(0.6)))

	snap := g.snap
	if snap.State == engine.StateMenu {
		g.drawMenu(screen)
		return
	}

	g.drawHUD(screen, snap)
	if snap.Grid != nil {
		g.drawGrid(screen, snap)
	}
	g.drawNotices(screen, snap)

	switch {
	case g.editor != nil:
		g.drawEditor(screen, snap)
	case snap.State == engine.StateConflict && snap.Conflict != nil:
		g.drawConflict(screen, snap)
	case snap.State == engine.StateLevelComplete, snap.State == engine.StateGameOver, snap.State == engine.StateGameComplete:
		g.drawEnd(screen, snap)
	}

	if g.debug {
		g.drawDebug(screen, snap)
	}
}

func (g *Game) drawMenu(screen *ebiten.Image) {
	lines := []string{
		"GIT CONFLICT",
		"",
		"Resolve every merge conflict, dodge the bugs, reach the commit.",
		"",
		fmt.Sprintf("%d levels", g.snap.LevelCount),
		"",
		"Enter  start",
		"arrows / wasd  move    r  restart    m  sound    q  quit",
	}
	if g.muted {
		lines = append(lines, "", "sound off")
	}
	y := g.height/2 - len(lines)*lineHeight/2
	for _, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, (g.width-textWidth(l))/2, y)
		y += lineHeight
	}
}

func (g *Game) drawHUD(screen *ebiten.Image, snap *engine.Snapshot) {
	th := g.theme
	vector.FillRect(screen, 0, 0, float32(g.width), hudHeight, rgba(th.Wall), false)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("LEVEL %d/%d  %s", snap.LevelIndex+1, snap.LevelCount, snap.LevelName), margin, 4)
	score := fmt.Sprintf("SCORE %d", snap.Score)
	ebitenutil.DebugPrintAt(screen, score, g.width-margin-textWidth(score), 4)

	// Lives as hearts drawn with circles, effect labels after them
	for i := range max(snap.Lives, 0) {
		cx := float32(margin + 6 + i*16)
		vector.FillCircle(screen, cx, 30, 5, rgba(th.Bug), true)
	}
	x := margin + max(snap.Lives, 0)*16 + 8
	for _, e := range snap.Effects {
		label := effectLabel(e, snap)
		vector.FillRect(screen, float32(x-2), 22, float32(textWidth(label)+4), lineHeight, rgba(th.Powerup), false)
		ebitenutil.DebugPrintAt(screen, label, x, 22)
		x += textWidth(label) + 10
	}

	audioCol := th.Good
	if g.muted {
		audioCol = th.Bad
	}
	vector.FillCircle(screen, float32(g.width-margin-6), 30, 5, rgba(audioCol), true)
}

// effectLabel shows the remaining seconds, or "ready" for latched effects
func effectLabel(e engine.Effect, snap *engine.Snapshot) string {
	if e.ExpiresAt.IsZero() {
		return e.Kind.Name() + " ready"
	}
	left := max(0, math.Ceil(e.ExpiresAt.Sub(snap.Now).Seconds()))
	return fmt.Sprintf("%s %.0fs", e.Kind.Name(), left)
}

func (g *Game) drawGrid(screen *ebiten.Image, snap *engine.Snapshot) {
	th := g.theme
	ox, oy := gridOrigin(snap.Grid, g.width)
	const ts = float32(constants.GUITileSize)

	for y := range snap.Grid.Height {
		for x := range snap.Grid.Width {
			px, py := ox+float32(x)*ts, oy+float32(y)*ts
			t := snap.Grid.At(x, y)
			vector.FillRect(screen, px, py, ts, ts, rgba(th.Background), false)
			switch t {
			case grid.Wall:
				vector.FillRect(screen, px, py, ts, ts, rgba(th.Wall), false)
			case grid.Conflict:
				vector.FillRect(screen, px+4, py+4, ts-8, ts-8, rgba(th.Conflict), false)
				ebitenutil.DebugPrintAt(screen, "<>", int(px)+int(ts)/2-6, int(py)+int(ts)/2-8)
			case grid.Bug:
				vector.FillCircle(screen, px+ts/2, py+ts/2, ts/3, rgba(th.Bug), true)
			case grid.Powerup:
				vector.FillCircle(screen, px+ts/2, py+ts/2, ts/4, rgba(th.Powerup), true)
			case grid.Commit:
				vector.FillRect(screen, px+4, py+4, ts-8, ts-8, rgba(th.Commit), false)
				ebitenutil.DebugPrintAt(screen, "OK", int(px)+int(ts)/2-6, int(py)+int(ts)/2-8)
			}
			vector.StrokeRect(screen, px, py, ts, ts, 1, rgba(th.Background.Scale(0.6)), false)
		}
	}

	// Player, pulsing while immune
	col := th.Player
	if snap.State == engine.StateGameOver {
		col = th.Bad
	} else if snap.Immune() && snap.Frame/8%2 == 0 {
		col = th.Powerup
	}
	px, py := ox+float32(snap.Player.X)*ts, oy+float32(snap.Player.Y)*ts
	vector.FillCircle(screen, px+ts/2, py+ts/2, ts/2-5, rgba(col), true)
	vector.StrokeCircle(screen, px+ts/2, py+ts/2, ts/2-5, 2, rgba(th.Text), true)
}

func (g *Game) drawNotices(screen *ebiten.Image, snap *engine.Snapshot) {
	y := g.height - margin - noticeRows*lineHeight
	for _, n := range g.board.Active(snap.Now) {
		col := g.theme.Text
		switch n.Tone {
		case notify.ToneGood:
			col = g.theme.Good
		case notify.ToneBad:
			col = g.theme.Bad
		}
		vector.FillRect(screen, margin-6, float32(y+4), 3, lineHeight-8, rgba(col), false)
		ebitenutil.DebugPrintAt(screen, n.Text, margin, y)
		y += lineHeight
	}
}

// panel shades the screen and draws a centered box sized for lines, returns the text origin
func (g *Game) panel(screen *ebiten.Image, lines []string, border render.RGB) (int, int) {
	w := 0
	for _, l := range lines {
		w = max(w, textWidth(l))
	}
	w += 2 * margin
	h := len(lines)*lineHeight + 2*margin
	x, y := (g.width-w)/2, (g.height-h)/2

	vector.FillRect(screen, 0, 0, float32(g.width), float32(g.height), shade, false)
	vector.FillRect(screen, float32(x), float32(y), float32(w), float32(h), panelFill, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, rgba(border), false)
	return x + margin, y + margin
}

func (g *Game) printLines(screen *ebiten.Image, lines []string, x, y int) {
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, x, y+i*lineHeight)
	}
}

// conflictLines lays out a puzzle as git conflict markers
func conflictLines(cv *engine.ConflictView) []string {
	pz := cv.Puzzle
	lines := []string{fmt.Sprintf("CONFLICT  %s (%s)", pz.Name, pz.Difficulty), ""}
	lines = append(lines, "<<<<<<< HEAD")
	lines = append(lines, strings.Split(strings.TrimRight(pz.Current, "\n"), "\n")...)
	lines = append(lines, "=======")
	lines = append(lines, strings.Split(strings.TrimRight(pz.Incoming, "\n"), "\n")...)
	lines = append(lines, ">>>>>>> incoming", "")
	lines = append(lines, "1  accept current    2  accept incoming    3  manual merge")
	return lines
}

func (g *Game) drawConflict(screen *ebiten.Image, snap *engine.Snapshot) {
	lines := conflictLines(snap.Conflict)
	x, y := g.panel(screen, lines, g.theme.Conflict)
	g.printLines(screen, lines, x, y)
}

func (g *Game) drawEditor(screen *ebiten.Image, snap *engine.Snapshot) {
	name := ""
	if snap.Conflict != nil {
		name = snap.Conflict.Puzzle.Name
	}
	body := g.editor.Lines()
	lines := append([]string{"MANUAL MERGE  " + name, ""}, body...)
	lines = append(lines, "", "Ctrl+S  commit    Ctrl+V  paste    Esc  back")
	x, y := g.panel(screen, lines, g.theme.Powerup)
	g.printLines(screen, lines, x, y)

	row, col := g.editor.Cursor()
	cx := x + col*glyphWidth
	cy := y + (row+2)*lineHeight
	vector.FillRect(screen, float32(cx), float32(cy+2), 2, lineHeight-4, rgba(g.theme.Text), false)
}

// endLines is the end screen text for the given state
func endLines(snap *engine.Snapshot) ([]string, bool) {
	switch snap.State {
	case engine.StateLevelComplete:
		return []string{
			fmt.Sprintf("LEVEL %d COMPLETE", snap.LevelIndex+1),
			"",
			fmt.Sprintf("Changes committed. Score: %d", snap.Score),
			fmt.Sprintf("Level %d of %d", snap.LevelIndex+1, snap.LevelCount),
			"",
			"Enter  next level    r  restart    Esc  menu",
		}, true
	case engine.StateGameOver:
		return []string{
			"GAME OVER",
			"",
			notify.GameOverMessage(snap.SessionID),
			fmt.Sprintf("Final score: %d", snap.FinalScore),
			"",
			"Enter  try again    Esc  menu    q  quit",
		}, false
	default:
		return []string{
			"ALL BRANCHES MERGED",
			"",
			"Every conflict resolved. The repository is clean.",
			fmt.Sprintf("Final score: %d", snap.FinalScore),
			"",
			"Enter  play again    Esc  menu    q  quit",
		}, true
	}
}

func (g *Game) drawEnd(screen *ebiten.Image, snap *engine.Snapshot) {
	lines, good := endLines(snap)
	border := g.theme.Commit
	if !good {
		border = g.theme.Bug
	}
	x, y := g.panel(screen, lines, border)
	g.printLines(screen, lines, x, y)
}

func (g *Game) drawDebug(screen *ebiten.Image, snap *engine.Snapshot) {
	lines := []string{
		"session " + snap.SessionID,
		fmt.Sprintf("frame %d  tps %.0f", snap.Frame, ebiten.ActualTPS()),
		fmt.Sprintf("timers state=%d level=%d", snap.StateTimers, snap.LevelTimers),
		fmt.Sprintf("bugs %d suppressed=%t", len(snap.Bugs), snap.BugsSuppressed),
	}
	if snap.AutoResolve {
		lines = append(lines, level.AutoResolve.Name()+" latched")
	}
	lines = append(lines, g.game.Metrics().Lines()...)
	g.printLines(screen, lines, g.width-margin-220, margin+hudHeight)
}
