package gui

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/lixenwraith/git-conflict/engine"
	"github.com/lixenwraith/git-conflict/grid"
	"github.com/lixenwraith/git-conflict/input"
)

// binding maps one key to an intent template
type binding struct {
	key    ebiten.Key
	intent input.Intent
}

func move(k ebiten.Key, d grid.Direction) binding {
	return binding{k, input.Intent{Type: input.IntentMove, Dir: d}}
}

func act(k ebiten.Key, t input.IntentType) binding {
	return binding{k, input.Intent{Type: t}}
}

func nav(k ebiten.Key, op input.NavOp) binding {
	return binding{k, input.Intent{Type: input.IntentTextNav, Nav: op}}
}

// windowKeys mirrors the terminal default key table for the window frontend
// First match wins, so modifier chords precede their plain keys
var windowKeys = map[input.InputMode][]binding{
	input.ModeMenu: {
		act(ebiten.KeyEnter, input.IntentStart),
		act(ebiten.KeySpace, input.IntentStart),
		act(ebiten.KeyS, input.IntentStart),
		act(ebiten.KeyM, input.IntentToggleMute),
		act(ebiten.KeyEscape, input.IntentQuit),
		act(ebiten.KeyQ, input.IntentQuit),
	},
	input.ModePlay: {
		move(ebiten.KeyArrowUp, grid.Up),
		move(ebiten.KeyArrowDown, grid.Down),
		move(ebiten.KeyArrowLeft, grid.Left),
		move(ebiten.KeyArrowRight, grid.Right),
		move(ebiten.KeyW, grid.Up),
		move(ebiten.KeyS, grid.Down),
		move(ebiten.KeyA, grid.Left),
		move(ebiten.KeyD, grid.Right),
		move(ebiten.KeyK, grid.Up),
		move(ebiten.KeyJ, grid.Down),
		move(ebiten.KeyH, grid.Left),
		move(ebiten.KeyL, grid.Right),
		act(ebiten.KeyR, input.IntentRestart),
		act(ebiten.KeyM, input.IntentToggleMute),
		act(ebiten.KeyEscape, input.IntentMenu),
		act(ebiten.KeyQ, input.IntentQuit),
	},
	input.ModeConflict: {
		{ebiten.KeyDigit1, input.Intent{Type: input.IntentResolve, Choice: engine.AcceptCurrent}},
		{ebiten.KeyDigit2, input.Intent{Type: input.IntentResolve, Choice: engine.AcceptIncoming}},
		act(ebiten.KeyDigit3, input.IntentOpenMerge),
		act(ebiten.KeyR, input.IntentRestart),
		act(ebiten.KeyM, input.IntentToggleMute),
		act(ebiten.KeyEscape, input.IntentMenu),
	},
	input.ModeMerge: {
		act(ebiten.KeyEnter, input.IntentTextNewline),
		act(ebiten.KeyTab, input.IntentTextIndent),
		act(ebiten.KeyBackspace, input.IntentTextBackspace),
		act(ebiten.KeyDelete, input.IntentTextDelete),
		nav(ebiten.KeyArrowLeft, input.NavLeft),
		nav(ebiten.KeyArrowRight, input.NavRight),
		nav(ebiten.KeyArrowUp, input.NavUp),
		nav(ebiten.KeyArrowDown, input.NavDown),
		nav(ebiten.KeyHome, input.NavLineStart),
		nav(ebiten.KeyEnd, input.NavLineEnd),
		act(ebiten.KeyEscape, input.IntentTextCancel),
	},
	input.ModeEnded: {
		act(ebiten.KeyEnter, input.IntentConfirm),
		act(ebiten.KeySpace, input.IntentConfirm),
		act(ebiten.KeyN, input.IntentConfirm),
		act(ebiten.KeyR, input.IntentRestart),
		act(ebiten.KeyM, input.IntentToggleMute),
		act(ebiten.KeyEscape, input.IntentMenu),
		act(ebiten.KeyQ, input.IntentQuit),
	},
}

// chordKeys are Ctrl combinations, checked before the mode table
var chordKeys = map[input.InputMode][]binding{
	input.ModeMerge: {
		act(ebiten.KeyV, input.IntentTextPaste),
		act(ebiten.KeyS, input.IntentTextSubmit),
	},
}

// keyState abstracts the per-frame keyboard so resolution is testable without a window
type keyState interface {
	JustPressed(k ebiten.Key) bool
	Pressed(k ebiten.Key) bool
}

// resolveKey returns the first intent triggered this frame, nil when no bound key fired
func resolveKey(mode input.InputMode, ks keyState) *input.Intent {
	if ks.JustPressed(ebiten.KeyF12) {
		return &input.Intent{Type: input.IntentToggleDebug}
	}

	ctrl := ks.Pressed(ebiten.KeyControl) || ks.Pressed(ebiten.KeyMeta)
	if ctrl {
		if ks.JustPressed(ebiten.KeyC) || ks.JustPressed(ebiten.KeyQ) {
			return &input.Intent{Type: input.IntentQuit}
		}
		for _, b := range chordKeys[mode] {
			if ks.JustPressed(b.key) {
				in := b.intent
				return &in
			}
		}
		return nil
	}

	for _, b := range windowKeys[mode] {
		if ks.JustPressed(b.key) {
			in := b.intent
			return &in
		}
	}
	return nil
}
