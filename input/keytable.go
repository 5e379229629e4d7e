package input

import (
	"maps"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/git-conflict/engine"
	"github.com/lixenwraith/git-conflict/grid"
)

// KeyEntry describes what a key does in one mode
type KeyEntry struct {
	Intent IntentType
	Dir    grid.Direction
	Choice engine.Choice
	Nav    NavOp
}

// Bindings are the key and rune maps of one mode
type Bindings struct {
	Keys  map[tcell.Key]KeyEntry
	Runes map[rune]KeyEntry
}

func (b Bindings) clone() Bindings {
	return Bindings{Keys: maps.Clone(b.Keys), Runes: maps.Clone(b.Runes)}
}

// KeyTable maps keys to behaviors for all modes
type KeyTable struct {
	// Global keys apply in every mode before the mode bindings
	Global map[tcell.Key]KeyEntry

	Modes [modeCount]Bindings
}

var (
	moveUp    = KeyEntry{Intent: IntentMove, Dir: grid.Up}
	moveDown  = KeyEntry{Intent: IntentMove, Dir: grid.Down}
	moveLeft  = KeyEntry{Intent: IntentMove, Dir: grid.Left}
	moveRight = KeyEntry{Intent: IntentMove, Dir: grid.Right}
	mute      = KeyEntry{Intent: IntentToggleMute}
	restart   = KeyEntry{Intent: IntentRestart}
	quit      = KeyEntry{Intent: IntentQuit}
	menu      = KeyEntry{Intent: IntentMenu}
)

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	kt := &KeyTable{
		Global: map[tcell.Key]KeyEntry{
			tcell.KeyCtrlC: quit,
			tcell.KeyCtrlQ: quit,
			tcell.KeyF12:   {Intent: IntentToggleDebug},
		},
	}

	kt.Modes[ModeMenu] = Bindings{
		Keys: map[tcell.Key]KeyEntry{
			tcell.KeyEnter:  {Intent: IntentStart},
			tcell.KeyEscape: quit,
		},
		Runes: map[rune]KeyEntry{
			' ': {Intent: IntentStart},
			's': {Intent: IntentStart},
			'm': mute,
			'q': quit,
		},
	}

	kt.Modes[ModePlay] = Bindings{
		Keys: map[tcell.Key]KeyEntry{
			tcell.KeyUp:     moveUp,
			tcell.KeyDown:   moveDown,
			tcell.KeyLeft:   moveLeft,
			tcell.KeyRight:  moveRight,
			tcell.KeyEscape: menu,
		},
		Runes: map[rune]KeyEntry{
			'w': moveUp,
			's': moveDown,
			'a': moveLeft,
			'd': moveRight,
			'k': moveUp,
			'j': moveDown,
			'h': moveLeft,
			'l': moveRight,
			'r': restart,
			'm': mute,
			'q': quit,
		},
	}

	kt.Modes[ModeConflict] = Bindings{
		Keys: map[tcell.Key]KeyEntry{
			tcell.KeyEscape: menu,
		},
		Runes: map[rune]KeyEntry{
			'1': {Intent: IntentResolve, Choice: engine.AcceptCurrent},
			'2': {Intent: IntentResolve, Choice: engine.AcceptIncoming},
			'3': {Intent: IntentOpenMerge},
			'r': restart,
			'm': mute,
		},
	}

	// Runes not bound here are typed into the editor
	kt.Modes[ModeMerge] = Bindings{
		Keys: map[tcell.Key]KeyEntry{
			tcell.KeyEnter:      {Intent: IntentTextNewline},
			tcell.KeyTab:        {Intent: IntentTextIndent},
			tcell.KeyBackspace:  {Intent: IntentTextBackspace},
			tcell.KeyBackspace2: {Intent: IntentTextBackspace},
			tcell.KeyDelete:     {Intent: IntentTextDelete},
			tcell.KeyLeft:       {Intent: IntentTextNav, Nav: NavLeft},
			tcell.KeyRight:      {Intent: IntentTextNav, Nav: NavRight},
			tcell.KeyUp:         {Intent: IntentTextNav, Nav: NavUp},
			tcell.KeyDown:       {Intent: IntentTextNav, Nav: NavDown},
			tcell.KeyHome:       {Intent: IntentTextNav, Nav: NavLineStart},
			tcell.KeyEnd:        {Intent: IntentTextNav, Nav: NavLineEnd},
			tcell.KeyCtrlV:      {Intent: IntentTextPaste},
			tcell.KeyCtrlS:      {Intent: IntentTextSubmit},
			tcell.KeyEscape:     {Intent: IntentTextCancel},
		},
		Runes: map[rune]KeyEntry{},
	}

	kt.Modes[ModeEnded] = Bindings{
		Keys: map[tcell.Key]KeyEntry{
			tcell.KeyEnter:  {Intent: IntentConfirm},
			tcell.KeyEscape: menu,
		},
		Runes: map[rune]KeyEntry{
			' ': {Intent: IntentConfirm},
			'n': {Intent: IntentConfirm},
			'r': restart,
			'm': mute,
			'q': quit,
		},
	}

	return kt
}

// Clone returns a deep copy of the key table
func (kt *KeyTable) Clone() *KeyTable {
	out := &KeyTable{Global: maps.Clone(kt.Global)}
	for i := range kt.Modes {
		out.Modes[i] = kt.Modes[i].clone()
	}
	return out
}
