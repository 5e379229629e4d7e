package renderers

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/lixenwraith/git-conflict/engine"
	"github.com/lixenwraith/git-conflict/level"
	"github.com/lixenwraith/git-conflict/render"
)

// HUDRenderer draws level, score, lives and active effects above the grid
type HUDRenderer struct{}

func NewHUDRenderer() *HUDRenderer {
	return &HUDRenderer{}
}

func (h *HUDRenderer) IsVisible(ctx render.RenderContext) bool {
	return ctx.Snap.State != engine.StateMenu
}

// Render implements SystemRenderer
func (h *HUDRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	snap := ctx.Snap
	th := ctx.Theme
	dark := render.RGBBlack

	// Row 0: level badge, name, score
	x := segment(buf, 0, 0, fmt.Sprintf(" LEVEL %d/%d ", snap.LevelIndex+1, snap.LevelCount), dark, th.Commit)
	x++
	buf.Text(x, 0, clip(snap.LevelName, ctx.ScreenWidth/2), th.Text, render.AttrBold)

	score := fmt.Sprintf(" SCORE %d ", snap.Score)
	segment(buf, max(x, ctx.ScreenWidth-utf8.RuneCountInString(score)), 0, score, dark, th.Powerup)

	// Row 1: lives, effects, audio
	hearts := strings.Repeat("♥", max(snap.Lives, 0))
	x = buf.Text(1, 1, hearts, th.Bug, render.AttrNone)
	x++

	for _, e := range snap.Effects {
		label := effectLabel(e, snap)
		x = segment(buf, x, 1, label, dark, th.Powerup) + 1
	}
	if snap.BugsSuppressed && !hasKind(snap.Effects, level.RemoveBugs) {
		x = segment(buf, x, 1, " bugs away ", dark, th.Powerup) + 1
	}

	audio := " ♪ "
	audioBg := th.Good
	if ctx.Muted {
		audioBg = th.Bad
	}
	segment(buf, max(x, ctx.ScreenWidth-utf8.RuneCountInString(audio)), 1, audio, dark, audioBg)
}

// effectLabel shows the remaining seconds, or "ready" for latched effects
func effectLabel(e engine.Effect, snap *engine.Snapshot) string {
	if e.ExpiresAt.IsZero() {
		return fmt.Sprintf(" %s ready ", e.Kind.Name())
	}
	left := max(0, math.Ceil(e.ExpiresAt.Sub(snap.Now).Seconds()))
	return fmt.Sprintf(" %s %.0fs ", e.Kind.Name(), left)
}

func hasKind(effects []engine.Effect, k level.PowerupKind) bool {
	for _, e := range effects {
		if e.Kind == k {
			return true
		}
	}
	return false
}

// segment draws text on a colored background, returns the column after it
func segment(buf *render.RenderBuffer, x, y int, text string, fg, bg render.RGB) int {
	for _, r := range text {
		buf.Set(x, y, r, fg, bg, render.AttrBold)
		x++
	}
	return x
}
