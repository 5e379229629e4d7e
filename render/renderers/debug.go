package renderers

import (
	"fmt"

	"github.com/lixenwraith/git-conflict/render"
	"github.com/lixenwraith/git-conflict/status"
)

// DebugRenderer draws registry counters and live timer counts in the top-right corner
type DebugRenderer struct {
	registry *status.Registry
}

func NewDebugRenderer(registry *status.Registry) *DebugRenderer {
	return &DebugRenderer{registry: registry}
}

func (r *DebugRenderer) IsVisible(ctx render.RenderContext) bool {
	return ctx.Debug
}

// Render implements SystemRenderer
func (r *DebugRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	snap := ctx.Snap
	lines := []string{
		"session " + clip(snap.SessionID, 8),
		fmt.Sprintf("frame %d", snap.Frame),
		fmt.Sprintf("timers state=%d level=%d", snap.StateTimers, snap.LevelTimers),
		fmt.Sprintf("bugs %d solved %d", len(snap.Bugs), snap.Solved),
	}
	if r.registry != nil {
		lines = append(lines, r.registry.Lines()...)
	}

	w := longest(lines) + 4
	h := len(lines) + 2
	x := max(0, ctx.ScreenWidth-w)
	buf.Box(x, 2, w, h, ctx.Theme.Dim, render.RGBBlack)
	for i, l := range lines {
		buf.Text(x+2, 3+i, l, ctx.Theme.Dim, render.AttrNone)
	}
}
