package renderers

import (
	"github.com/lixenwraith/git-conflict/notify"
	"github.com/lixenwraith/git-conflict/render"
)

// NoticeRenderer draws the notification stack below the grid
type NoticeRenderer struct{}

func NewNoticeRenderer() *NoticeRenderer {
	return &NoticeRenderer{}
}

func (r *NoticeRenderer) IsVisible(ctx render.RenderContext) bool {
	return len(ctx.Notices) > 0
}

// Render implements SystemRenderer
func (r *NoticeRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	th := ctx.Theme
	y := ctx.GridBottom() + 1
	for _, n := range ctx.Notices {
		if y >= ctx.ScreenHeight {
			return
		}
		fg := th.Text
		switch n.Tone {
		case notify.ToneGood:
			fg = th.Good
		case notify.ToneBad:
			fg = th.Bad
		}
		centered(buf, ctx.ScreenWidth, y, clip(n.Text, ctx.ScreenWidth), fg, render.AttrBold)
		y++
	}
}
