package renderers

import (
	"strings"
	"unicode/utf8"

	"github.com/lixenwraith/git-conflict/render"
)

// centered writes s horizontally centered on row y
func centered(buf *render.RenderBuffer, width, y int, s string, fg render.RGB, attrs render.Attr) {
	x := max(0, (width-utf8.RuneCountInString(s))/2)
	buf.Text(x, y, s, fg, attrs)
}

// clip truncates s to n runes
func clip(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// codeLines splits a snippet into display lines, tabs expanded
func codeLines(code string) []string {
	code = strings.ReplaceAll(strings.TrimRight(code, "\n"), "\t", "  ")
	return strings.Split(code, "\n")
}

// longest returns the widest line in runes
func longest(lines []string) int {
	n := 0
	for _, l := range lines {
		n = max(n, utf8.RuneCountInString(l))
	}
	return n
}

// modalBox sizes and draws a centered box, returns its inner origin and width
func modalBox(ctx render.RenderContext, buf *render.RenderBuffer, w, h int, border render.RGB) (x, y, inner int) {
	w = min(w, ctx.ScreenWidth)
	h = min(h, ctx.ScreenHeight)
	bx := (ctx.ScreenWidth - w) / 2
	by := (ctx.ScreenHeight - h) / 2
	buf.Box(bx, by, w, h, border, ctx.Theme.Background)
	return bx + 2, by + 1, w - 4
}
