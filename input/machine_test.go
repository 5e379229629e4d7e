package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/git-conflict/engine"
	"github.com/lixenwraith/git-conflict/grid"
)

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func specialKey(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

// TestPlayMovement verifies arrows, wasd and hjkl all move
func TestPlayMovement(t *testing.T) {
	m := NewMachine(nil)
	m.SetMode(ModePlay)

	tests := []struct {
		name string
		ev   *tcell.EventKey
		dir  grid.Direction
	}{
		{"arrow up", specialKey(tcell.KeyUp), grid.Up},
		{"arrow down", specialKey(tcell.KeyDown), grid.Down},
		{"arrow left", specialKey(tcell.KeyLeft), grid.Left},
		{"arrow right", specialKey(tcell.KeyRight), grid.Right},
		{"w", runeKey('w'), grid.Up},
		{"s", runeKey('s'), grid.Down},
		{"a", runeKey('a'), grid.Left},
		{"d", runeKey('d'), grid.Right},
		{"k", runeKey('k'), grid.Up},
		{"l", runeKey('l'), grid.Right},
		{"caps D", runeKey('D'), grid.Right},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := m.Process(tt.ev)
			if in == nil || in.Type != IntentMove {
				t.Fatalf("Expected move intent, got %+v", in)
			}
			if in.Dir != tt.dir {
				t.Errorf("Expected %v, got %v", tt.dir, in.Dir)
			}
		})
	}
}

// TestModeSeparation verifies the same key means different things per mode
func TestModeSeparation(t *testing.T) {
	m := NewMachine(nil)

	m.SetMode(ModeMenu)
	if in := m.Process(runeKey('s')); in == nil || in.Type != IntentStart {
		t.Errorf("Menu 's' should start, got %+v", in)
	}

	m.SetMode(ModeConflict)
	if in := m.Process(specialKey(tcell.KeyUp)); in != nil {
		t.Errorf("Conflict mode should ignore arrows, got %+v", in)
	}
	if in := m.Process(runeKey('1')); in == nil || in.Type != IntentResolve || in.Choice != engine.AcceptCurrent {
		t.Errorf("'1' should accept current, got %+v", in)
	}
	if in := m.Process(runeKey('2')); in == nil || in.Choice != engine.AcceptIncoming {
		t.Errorf("'2' should accept incoming, got %+v", in)
	}
	if in := m.Process(runeKey('3')); in == nil || in.Type != IntentOpenMerge {
		t.Errorf("'3' should open the editor, got %+v", in)
	}

	m.SetMode(ModeEnded)
	if in := m.Process(specialKey(tcell.KeyEnter)); in == nil || in.Type != IntentConfirm {
		t.Errorf("Enter on end screen should confirm, got %+v", in)
	}
}

// TestMergeEditorKeys verifies text entry and editor commands
func TestMergeEditorKeys(t *testing.T) {
	m := NewMachine(nil)
	m.SetMode(ModeMerge)

	// Letters that move the player elsewhere are typed here
	for _, r := range "wasd1{}" {
		in := m.Process(runeKey(r))
		if in == nil || in.Type != IntentTextChar || in.Char != r {
			t.Errorf("Rune %q should be typed, got %+v", r, in)
		}
	}

	tests := []struct {
		ev   *tcell.EventKey
		want IntentType
	}{
		{specialKey(tcell.KeyEnter), IntentTextNewline},
		{specialKey(tcell.KeyTab), IntentTextIndent},
		{specialKey(tcell.KeyBackspace2), IntentTextBackspace},
		{specialKey(tcell.KeyDelete), IntentTextDelete},
		{specialKey(tcell.KeyCtrlS), IntentTextSubmit},
		{specialKey(tcell.KeyCtrlV), IntentTextPaste},
		{specialKey(tcell.KeyEscape), IntentTextCancel},
	}
	for _, tt := range tests {
		if in := m.Process(tt.ev); in == nil || in.Type != tt.want {
			t.Errorf("Key %v: expected %v, got %+v", tt.ev.Key(), tt.want, in)
		}
	}

	if in := m.Process(specialKey(tcell.KeyHome)); in == nil || in.Nav != NavLineStart {
		t.Errorf("Home should navigate to line start, got %+v", in)
	}
}

// TestCtrlRuneNormalized verifies Ctrl+letter reported as a modified rune
func TestCtrlRuneNormalized(t *testing.T) {
	m := NewMachine(nil)
	m.SetMode(ModeMerge)

	in := m.Process(tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModCtrl))
	if in == nil || in.Type != IntentTextSubmit {
		t.Errorf("Ctrl+s rune should submit, got %+v", in)
	}

	m.SetMode(ModePlay)
	in = m.Process(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModCtrl))
	if in == nil || in.Type != IntentQuit {
		t.Errorf("Ctrl+q rune should quit, got %+v", in)
	}
}

// TestGlobalKeys verifies global bindings win in every mode
func TestGlobalKeys(t *testing.T) {
	m := NewMachine(nil)
	for mode := InputMode(0); mode < modeCount; mode++ {
		m.SetMode(mode)
		if in := m.Process(specialKey(tcell.KeyCtrlC)); in == nil || in.Type != IntentQuit {
			t.Errorf("Mode %s: Ctrl+C should quit, got %+v", mode, in)
		}
		if in := m.Process(specialKey(tcell.KeyF12)); in == nil || in.Type != IntentToggleDebug {
			t.Errorf("Mode %s: F12 should toggle debug, got %+v", mode, in)
		}
	}
}

// TestResizeEvent verifies resize produces an intent
func TestResizeEvent(t *testing.T) {
	m := NewMachine(nil)
	if in := m.Process(tcell.NewEventResize(80, 24)); in == nil || in.Type != IntentResize {
		t.Errorf("Expected resize intent, got %+v", in)
	}
}

// TestModeFor verifies state to mode mapping
func TestModeFor(t *testing.T) {
	tests := []struct {
		state   engine.State
		editing bool
		want    InputMode
	}{
		{engine.StateMenu, false, ModeMenu},
		{engine.StatePlaying, false, ModePlay},
		{engine.StatePlaying, true, ModePlay},
		{engine.StateConflict, false, ModeConflict},
		{engine.StateConflict, true, ModeMerge},
		{engine.StateLevelComplete, false, ModeEnded},
		{engine.StateGameOver, false, ModeEnded},
		{engine.StateGameComplete, false, ModeEnded},
	}
	for _, tt := range tests {
		if got := ModeFor(tt.state, tt.editing); got != tt.want {
			t.Errorf("ModeFor(%v, %v) = %s, want %s", tt.state, tt.editing, got, tt.want)
		}
	}
}
