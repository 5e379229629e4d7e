package main

import (
	"errors"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/git-conflict/audio"
	"github.com/lixenwraith/git-conflict/config"
	"github.com/lixenwraith/git-conflict/constants"
	"github.com/lixenwraith/git-conflict/core"
	"github.com/lixenwraith/git-conflict/editor"
	"github.com/lixenwraith/git-conflict/engine"
	"github.com/lixenwraith/git-conflict/events"
	"github.com/lixenwraith/git-conflict/input"
	"github.com/lixenwraith/git-conflict/level"
	"github.com/lixenwraith/git-conflict/notify"
	"github.com/lixenwraith/git-conflict/render"
	"github.com/lixenwraith/git-conflict/render/renderers"
)

var errQueueFull = errors.New("command queue full")

// appDeps are the collaborators main resolves before the UI starts
type appDeps struct {
	Screen tcell.Screen
	Config *config.Config
	Pack   *level.Pack
	Keys   *input.KeyTable
	Theme  *render.Theme
	Clock  engine.TimeProvider
	Sound  *audio.SoundManager
}

// app is the terminal frontend: it turns key events into runner commands and draws snapshots
// All fields are owned by the main goroutine; the game itself lives on the runner goroutine
type app struct {
	screen       tcell.Screen
	cfg          *config.Config
	clock        engine.TimeProvider
	runner       *engine.Runner
	machine      *input.Machine
	orchestrator *render.RenderOrchestrator
	theme        *render.Theme
	board        *notify.Board[*engine.Snapshot]
	sound        *audio.SoundManager

	editor *editor.Editor
	debug  bool
}

func newApp(d appDeps) (*app, error) {
	if d.Clock == nil {
		d.Clock = engine.NewMonotonicTimeProvider()
	}
	if d.Sound == nil {
		d.Sound = audio.NewSoundManager(d.Config.SoundSettings())
	}

	queue := events.NewEventQueue()
	game, err := engine.NewGame(d.Pack, d.Config.Rules(), engine.Options{Clock: d.Clock, Queue: queue})
	if err != nil {
		return nil, err
	}

	router := events.NewRouter[*engine.Snapshot](queue)
	board := notify.NewBoard[*engine.Snapshot]()
	router.Register(board)
	router.Register(audio.NewCues[*engine.Snapshot](d.Sound))

	a := &app{
		screen:       d.Screen,
		cfg:          d.Config,
		clock:        d.Clock,
		runner:       engine.NewRunner(game, router, d.Clock, constants.RunnerTickInterval),
		machine:      input.NewMachine(d.Keys),
		orchestrator: render.NewRenderOrchestrator(d.Screen, d.Theme.Background),
		theme:        d.Theme,
		board:        board,
		sound:        d.Sound,
		debug:        d.Config.Display.Debug,
	}
	d.Sound.AttachMetrics(game.Metrics())
	renderers.RegisterAll(a.orchestrator, game.Metrics())
	return a, nil
}

// run drives input and rendering until the player quits
func (a *app) run() {
	a.runner.Start()
	defer a.runner.Stop()

	eventChan := make(chan tcell.Event, 64)
	core.Go(func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	})

	// Countdowns and notices age without game changes, so frames are also drawn on a ticker
	frameTicker := time.NewTicker(constants.FrameUpdateInterval * 4)
	defer frameTicker.Stop()

	a.draw()
	for {
		select {
		case ev := <-eventChan:
			if !a.handleEvent(ev) {
				return
			}
			a.draw()
		case <-a.runner.Updated():
			a.draw()
		case <-frameTicker.C:
			a.draw()
		}
	}
}

// handleEvent parses one terminal event, returns false to quit
func (a *app) handleEvent(ev tcell.Event) bool {
	snap := a.runner.Snapshot()
	a.syncEditor(snap)
	a.machine.SetMode(input.ModeFor(snap.State, a.editor != nil))

	in := a.machine.Process(ev)
	if in == nil {
		return true
	}
	return a.handle(in, snap)
}

// handle applies one intent, returns false to quit
func (a *app) handle(in *input.Intent, snap *engine.Snapshot) bool {
	switch in.Type {
	case input.IntentQuit:
		return false
	case input.IntentResize:
		a.orchestrator.Resize()
	case input.IntentToggleDebug:
		a.debug = !a.debug
	case input.IntentToggleMute:
		enabled := a.sound.ToggleMute()
		if err := a.cfg.SetSoundEnabled(enabled); err != nil {
			log.Printf("save settings: %v", err)
		}

	case input.IntentStart:
		a.submit(engine.Command{Kind: engine.CmdStart})
	case input.IntentRestart:
		a.editor = nil
		a.submit(engine.Command{Kind: engine.CmdRestart})
	case input.IntentMenu:
		a.editor = nil
		a.submit(engine.Command{Kind: engine.CmdMenu})
	case input.IntentConfirm:
		switch snap.State {
		case engine.StateLevelComplete:
			a.submit(engine.Command{Kind: engine.CmdAdvance})
		case engine.StateGameOver, engine.StateGameComplete:
			a.submit(engine.Command{Kind: engine.CmdRestart})
		}
	case input.IntentMove:
		a.submit(engine.Command{Kind: engine.CmdMove, Dir: in.Dir})

	case input.IntentResolve:
		a.submit(engine.Command{Kind: engine.CmdResolve, Choice: in.Choice})
	case input.IntentOpenMerge:
		if snap.Conflict != nil {
			a.editor = editor.New(snap.Conflict.Puzzle.Current)
		}
	case input.IntentTextSubmit:
		if a.editor != nil {
			text := a.editor.Text()
			a.editor = nil
			a.submit(engine.Command{Kind: engine.CmdResolve, Choice: engine.ManualMerge, Text: text})
		}
	case input.IntentTextCancel:
		a.editor = nil

	default:
		if a.editor != nil {
			if _, err := input.ApplyText(a.editor, in); err != nil {
				log.Printf("paste: %v", err)
			}
		}
	}
	return true
}

// submit hands cmd to the runner and waits for it to be applied,
// so the next key is parsed against the state it produced
// The runner logs failures, rejected moves and invalid-state commands are routine
func (a *app) submit(cmd engine.Command) error {
	result := make(chan error, 1)
	cmd.Result = result
	if !a.runner.Submit(cmd) {
		return errQueueFull
	}
	return <-result
}

// syncEditor closes the merge editor once its conflict is gone
func (a *app) syncEditor(snap *engine.Snapshot) {
	if a.editor != nil && snap.State != engine.StateConflict {
		a.editor = nil
	}
}

func (a *app) draw() {
	snap := a.runner.Snapshot()
	a.syncEditor(snap)

	w, h := a.orchestrator.Size()
	ctx := render.NewRenderContext(snap, a.theme, w, h)
	ctx.Now = a.clock.Now()
	ctx.Muted = a.sound.IsMuted()
	ctx.Debug = a.debug
	ctx.Editor = a.editor
	ctx.Notices = a.board.Active(ctx.Now)
	a.orchestrator.RenderFrame(ctx)
}
