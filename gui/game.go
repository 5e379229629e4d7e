// Package gui is the window frontend, an ebiten game drawing the same engine as the terminal
package gui

import (
	"errors"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/lixenwraith/git-conflict/audio"
	"github.com/lixenwraith/git-conflict/constants"
	"github.com/lixenwraith/git-conflict/editor"
	"github.com/lixenwraith/git-conflict/engine"
	"github.com/lixenwraith/git-conflict/events"
	"github.com/lixenwraith/git-conflict/input"
	"github.com/lixenwraith/git-conflict/level"
	"github.com/lixenwraith/git-conflict/notify"
	"github.com/lixenwraith/git-conflict/render"
)

// Options configures the window frontend, zero values get defaults
type Options struct {
	Clock  engine.TimeProvider // default MonotonicTimeProvider
	Sound  *audio.SoundManager // nil plays nothing
	Theme  *render.Theme       // default DefaultTheme
	Debug  bool                // start with the debug overlay
	OnMute func(enabled bool)  // called after the sound toggle, used to persist it
}

// Game adapts engine.Game to ebiten
// ebiten calls Update and Draw from one goroutine, so the engine is driven directly without a Runner
type Game struct {
	game   *engine.Game
	clock  engine.TimeProvider
	router *events.Router[*engine.Snapshot]
	board  *notify.Board[*engine.Snapshot]
	sound  *audio.SoundManager
	theme  *render.Theme
	onMute func(bool)

	snap   *engine.Snapshot
	editor *editor.Editor
	keys   keyState
	chars  []rune

	muted bool
	debug bool
	quit  bool

	width  int
	height int
}

// New builds the engine for pack and wires notices and sound cues to its events
func New(pack *level.Pack, rules engine.Rules, opts Options) (*Game, error) {
	if opts.Clock == nil {
		opts.Clock = engine.NewMonotonicTimeProvider()
	}
	if opts.Theme == nil {
		opts.Theme = render.DefaultTheme()
	}

	queue := events.NewEventQueue()
	eg, err := engine.NewGame(pack, rules, engine.Options{Clock: opts.Clock, Queue: queue})
	if err != nil {
		return nil, err
	}

	g := &Game{
		game:   eg,
		clock:  opts.Clock,
		router: events.NewRouter[*engine.Snapshot](queue),
		board:  notify.NewBoard[*engine.Snapshot](),
		sound:  opts.Sound,
		theme:  opts.Theme,
		onMute: opts.OnMute,
		keys:   ebitenKeys{},
		debug:  opts.Debug,
	}
	g.router.Register(g.board)
	if g.sound != nil {
		g.router.Register(audio.NewCues[*engine.Snapshot](g.sound))
		g.sound.AttachMetrics(eg.Metrics())
		g.muted = g.sound.IsMuted()
	}
	g.width, g.height = windowSize(pack)
	g.snap = eg.Snapshot()
	return g, nil
}

// Size is the logical screen size in pixels
func (g *Game) Size() (int, int) {
	return g.width, g.height
}

// Update implements ebiten.Game
func (g *Game) Update() error {
	mode := input.ModeFor(g.game.State(), g.editor != nil)
	if in := resolveKey(mode, g.keys); in != nil {
		g.handle(in)
	} else if mode == input.ModeMerge {
		g.chars = ebiten.AppendInputChars(g.chars[:0])
		for _, r := range g.chars {
			g.handle(&input.Intent{Type: input.IntentTextChar, Char: r})
		}
	}

	g.step()
	if g.quit {
		return ebiten.Termination
	}
	return nil
}

// Layout implements ebiten.Game with a fixed logical size
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// step advances timers, refreshes the snapshot and dispatches queued events
func (g *Game) step() {
	g.game.Advance(g.clock.Now())
	g.snap = g.game.Snapshot()
	g.router.DispatchAll(g.snap)

	// The editor only lives inside a conflict; auto resolve or a restart closes it
	if g.editor != nil && g.snap.State != engine.StateConflict {
		g.editor = nil
	}
}

// handle applies one intent to the engine or the merge editor
func (g *Game) handle(in *input.Intent) {
	var err error
	switch in.Type {
	case input.IntentQuit:
		g.quit = true
	case input.IntentToggleDebug:
		g.debug = !g.debug
	case input.IntentToggleMute:
		g.toggleMute()

	case input.IntentStart:
		err = g.game.Start()
	case input.IntentRestart:
		g.editor = nil
		err = g.game.Restart()
	case input.IntentMenu:
		g.editor = nil
		err = g.game.ReturnToMenu()
	case input.IntentConfirm:
		err = g.confirm()
	case input.IntentMove:
		g.game.Move(in.Dir)

	case input.IntentResolve:
		err = g.game.Resolve(in.Choice, "")
	case input.IntentOpenMerge:
		if g.snap.Conflict != nil {
			g.editor = editor.New(g.snap.Conflict.Puzzle.Current)
		}

	case input.IntentTextSubmit:
		if g.editor != nil {
			text := g.editor.Text()
			g.editor = nil
			err = g.game.Resolve(engine.ManualMerge, text)
		}
	case input.IntentTextCancel:
		g.editor = nil
	default:
		if g.editor != nil {
			if _, perr := input.ApplyText(g.editor, in); perr != nil {
				log.Printf("paste: %v", perr)
			}
		}
	}

	if err != nil && !errors.Is(err, engine.ErrInvalidState) {
		log.Printf("[%s] %s: %v", g.game.SessionID(), in.Type, err)
	}
}

// confirm continues from an end screen: next level after a commit, a fresh run otherwise
func (g *Game) confirm() error {
	switch g.game.State() {
	case engine.StateLevelComplete:
		return g.game.AdvanceLevel()
	case engine.StateGameOver, engine.StateGameComplete:
		return g.game.Restart()
	}
	return nil
}

func (g *Game) toggleMute() {
	if g.sound != nil {
		enabled := g.sound.ToggleMute()
		g.muted = !enabled
	} else {
		g.muted = !g.muted
	}
	if g.onMute != nil {
		g.onMute(!g.muted)
	}
}

// windowSize fits the largest level plus the HUD and notice rows
func windowSize(pack *level.Pack) (int, int) {
	cols, rows := minGridCols, minGridRows
	for _, l := range pack.Levels {
		cols = max(cols, l.Grid.Width)
		rows = max(rows, l.Grid.Height)
	}
	w := cols*constants.GUITileSize + 2*margin
	h := hudHeight + rows*constants.GUITileSize + noticeRows*lineHeight + 2*margin
	return w, h
}

// ebitenKeys reads the live keyboard through inpututil
type ebitenKeys struct{}

func (ebitenKeys) JustPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }
func (ebitenKeys) Pressed(k ebiten.Key) bool     { return ebiten.IsKeyPressed(k) }
