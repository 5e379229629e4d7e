package renderers

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/git-conflict/editor"
	"github.com/lixenwraith/git-conflict/engine"
	"github.com/lixenwraith/git-conflict/grid"
	"github.com/lixenwraith/git-conflict/level"
	"github.com/lixenwraith/git-conflict/notify"
	"github.com/lixenwraith/git-conflict/render"
	"github.com/lixenwraith/git-conflict/status"
)

const (
	screenW = 100
	screenH = 40
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func newOrchestrator(t *testing.T) (*render.RenderOrchestrator, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(screenW, screenH)

	o := render.NewRenderOrchestrator(screen, render.DefaultTheme().Background)
	RegisterAll(o, status.NewRegistry())
	return o, screen
}

func playingSnapshot() *engine.Snapshot {
	lvl := level.Builtin().Levels[0]
	return &engine.Snapshot{
		SessionID:  "abc",
		State:      engine.StatePlaying,
		Now:        epoch,
		LevelIndex: 0,
		LevelCount: 3,
		LevelName:  lvl.Name,
		Grid:       lvl.Grid.Clone(),
		Player:     lvl.Start,
		Lives:      3,
		Score:      250,
	}
}

// screenText joins every buffer row, for substring checks
func screenText(buf *render.RenderBuffer) string {
	w, h := buf.Size()
	var sb strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sb.WriteRune(buf.Get(x, y).Rune)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func render1(o *render.RenderOrchestrator, snap *engine.Snapshot, mut func(*render.RenderContext)) string {
	w, h := o.Size()
	ctx := render.NewRenderContext(snap, render.DefaultTheme(), w, h)
	if mut != nil {
		mut(&ctx)
	}
	o.RenderFrame(ctx)
	return screenText(o.Buffer())
}

func TestMenuScreen(t *testing.T) {
	o, _ := newOrchestrator(t)
	text := render1(o, &engine.Snapshot{State: engine.StateMenu, LevelCount: 3, Now: epoch}, nil)

	assert.Contains(t, text, "Enter  start")
	assert.Contains(t, text, "3 levels")
	assert.NotContains(t, text, "SCORE")
}

func TestPlayingFrame(t *testing.T) {
	o, _ := newOrchestrator(t)
	snap := playingSnapshot()
	text := render1(o, snap, nil)

	assert.Contains(t, text, "LEVEL 1/3")
	assert.Contains(t, text, "SCORE 250")
	assert.Contains(t, text, "♥♥♥")

	ctx := render.NewRenderContext(snap, render.DefaultTheme(), screenW, screenH)
	px, py, ok := ctx.MapToScreen(snap.Player)
	require.True(t, ok)
	assert.Equal(t, '@', o.Buffer().Get(px, py).Rune)

	// Every wall cell shows its block glyph
	for _, p := range snap.Grid.Find(grid.Wall) {
		x, y, ok := ctx.MapToScreen(p)
		require.True(t, ok)
		assert.Equal(t, '█', o.Buffer().Get(x, y).Rune, "wall at %v", p)
	}
}

func TestEffectsInHUD(t *testing.T) {
	o, _ := newOrchestrator(t)
	snap := playingSnapshot()
	snap.Effects = []engine.Effect{
		{Kind: level.Immunity, ExpiresAt: epoch.Add(7500 * time.Millisecond)},
		{Kind: level.AutoResolve},
	}
	text := render1(o, snap, func(ctx *render.RenderContext) { ctx.Muted = true })

	assert.Contains(t, text, level.Immunity.Name()+" 8s")
	assert.Contains(t, text, level.AutoResolve.Name()+" ready")
}

func TestConflictModal(t *testing.T) {
	o, _ := newOrchestrator(t)
	snap := playingSnapshot()
	snap.State = engine.StateConflict
	pz := level.Builtin().Puzzles[0]
	snap.Conflict = &engine.ConflictView{At: grid.Point{X: 4, Y: 4}, Puzzle: pz}

	text := render1(o, snap, nil)
	assert.Contains(t, text, "CONFLICT  "+pz.Name)
	assert.Contains(t, text, "<<<<<<< HEAD")
	assert.Contains(t, text, ">>>>>>> incoming")
	assert.Contains(t, text, "3  manual merge")
	assert.Contains(t, text, strings.TrimSpace(codeLines(pz.Current)[0]))
}

func TestEditorModal(t *testing.T) {
	o, _ := newOrchestrator(t)
	snap := playingSnapshot()
	snap.State = engine.StateConflict
	pz := level.Builtin().Puzzles[0]
	snap.Conflict = &engine.ConflictView{Puzzle: pz}
	ed := editor.New("merged()")

	text := render1(o, snap, func(ctx *render.RenderContext) { ctx.Editor = ed })
	assert.Contains(t, text, "MANUAL MERGE")
	assert.Contains(t, text, "merged()")
	assert.NotContains(t, text, "<<<<<<< HEAD")
}

func TestEndScreens(t *testing.T) {
	tests := []struct {
		state engine.State
		want  string
	}{
		{engine.StateLevelComplete, "LEVEL 1 COMPLETE"},
		{engine.StateGameOver, "GAME OVER"},
		{engine.StateGameComplete, "ALL BRANCHES MERGED"},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			o, _ := newOrchestrator(t)
			snap := playingSnapshot()
			snap.State = tt.state
			snap.FinalScore = 900
			text := render1(o, snap, nil)
			assert.Contains(t, text, tt.want)
			if tt.state == engine.StateGameOver {
				assert.Contains(t, text, notify.GameOverMessage(snap.SessionID))
				assert.Contains(t, text, "Final score: 900")
			}
		})
	}
}

func TestNoticesAndDebug(t *testing.T) {
	o, _ := newOrchestrator(t)
	snap := playingSnapshot()
	text := render1(o, snap, func(ctx *render.RenderContext) {
		ctx.Notices = []notify.Notice{{Text: "Stash! You are immune", Tone: notify.ToneGood}}
		ctx.Debug = true
	})
	assert.Contains(t, text, "Stash! You are immune")
	assert.Contains(t, text, "timers state=0 level=0")
}

func TestFlushReachesScreen(t *testing.T) {
	o, screen := newOrchestrator(t)
	render1(o, playingSnapshot(), nil)

	mainc, _, _, _ := screen.GetContent(1, 0)
	assert.Equal(t, 'L', mainc) // " LEVEL 1/3 " badge
}
