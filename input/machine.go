package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Machine parses tcell events into Intents for the current mode
type Machine struct {
	mode     InputMode
	keyTable *KeyTable
}

// NewMachine creates an input machine, nil selects the default key table
func NewMachine(kt *KeyTable) *Machine {
	if kt == nil {
		kt = DefaultKeyTable()
	}
	return &Machine{mode: ModeMenu, keyTable: kt}
}

// SetMode updates the parser's mode context
func (m *Machine) SetMode(mode InputMode) {
	if mode < modeCount {
		m.mode = mode
	}
}

// Mode returns the current mode
func (m *Machine) Mode() InputMode {
	return m.mode
}

// Process parses a terminal event and returns an Intent
// Returns nil for unbound keys and ignored events
func (m *Machine) Process(ev tcell.Event) *Intent {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return &Intent{Type: IntentResize}
	case *tcell.EventKey:
		return m.processKey(ev)
	}
	return nil
}

func (m *Machine) processKey(ev *tcell.EventKey) *Intent {
	key, r := normalize(ev)

	if key != tcell.KeyRune {
		if entry, ok := m.keyTable.Global[key]; ok {
			return entry.intent(0)
		}
	}

	b := m.keyTable.Modes[m.mode]
	if key != tcell.KeyRune {
		if entry, ok := b.Keys[key]; ok {
			return entry.intent(0)
		}
		return nil
	}

	if entry, ok := b.Runes[r]; ok {
		return entry.intent(r)
	}
	// Case-insensitive fallback outside the editor, so caps lock still moves the player
	if m.mode != ModeMerge {
		if entry, ok := b.Runes[unicode.ToLower(r)]; ok {
			return entry.intent(r)
		}
		return nil
	}
	if unicode.IsPrint(r) {
		return &Intent{Type: IntentTextChar, Char: r}
	}
	return nil
}

// normalize folds Ctrl+letter reported as a modified rune into the matching control key
func normalize(ev *tcell.EventKey) (tcell.Key, rune) {
	key, r := ev.Key(), ev.Rune()
	if key == tcell.KeyRune && ev.Modifiers()&tcell.ModCtrl != 0 {
		lr := unicode.ToLower(r)
		if lr >= 'a' && lr <= 'z' {
			return tcell.KeyCtrlA + tcell.Key(lr-'a'), 0
		}
	}
	return key, r
}

func (e KeyEntry) intent(r rune) *Intent {
	if e.Intent == IntentNone {
		return nil
	}
	return &Intent{Type: e.Intent, Dir: e.Dir, Choice: e.Choice, Nav: e.Nav, Char: r}
}
