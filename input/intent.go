package input

import (
	"github.com/lixenwraith/git-conflict/engine"
	"github.com/lixenwraith/git-conflict/grid"
)

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit        // Ctrl+Q, Ctrl+C
	IntentToggleMute  // m
	IntentToggleDebug // F12
	IntentResize      // Terminal resize event

	// Game flow
	IntentStart   // Enter in menu
	IntentRestart // r
	IntentConfirm // Enter on an end screen, advance or restart by state
	IntentMenu    // Esc outside the editor

	// Playing
	IntentMove // arrows, wasd, hjkl

	// Conflict modal
	IntentResolve   // 1, 2
	IntentOpenMerge // 3

	// Merge editor
	IntentTextChar      // Printable character
	IntentTextNewline   // Enter
	IntentTextIndent    // Tab
	IntentTextBackspace // Backspace
	IntentTextDelete    // Delete
	IntentTextNav       // Arrows, Home, End
	IntentTextPaste     // Ctrl+V
	IntentTextSubmit    // Ctrl+S
	IntentTextCancel    // Esc
)

var intentNames = map[IntentType]string{
	IntentNone:          "none",
	IntentQuit:          "quit",
	IntentToggleMute:    "toggle_mute",
	IntentToggleDebug:   "toggle_debug",
	IntentResize:        "resize",
	IntentStart:         "start",
	IntentRestart:       "restart",
	IntentConfirm:       "confirm",
	IntentMenu:          "menu",
	IntentMove:          "move",
	IntentResolve:       "resolve",
	IntentOpenMerge:     "open_merge",
	IntentTextChar:      "text_char",
	IntentTextNewline:   "text_newline",
	IntentTextIndent:    "text_indent",
	IntentTextBackspace: "text_backspace",
	IntentTextDelete:    "text_delete",
	IntentTextNav:       "text_nav",
	IntentTextPaste:     "text_paste",
	IntentTextSubmit:    "text_submit",
	IntentTextCancel:    "text_cancel",
}

func (t IntentType) String() string {
	if name, ok := intentNames[t]; ok {
		return name
	}
	return "unknown"
}

// NavOp identifies cursor motion inside the merge editor
type NavOp uint8

const (
	NavNone NavOp = iota
	NavLeft
	NavRight
	NavUp
	NavDown
	NavLineStart
	NavLineEnd
)

// Intent represents a parsed semantic action
// Pure data, the frontend turns it into engine commands
type Intent struct {
	Type   IntentType
	Dir    grid.Direction // IntentMove
	Choice engine.Choice  // IntentResolve
	Nav    NavOp          // IntentTextNav
	Char   rune           // IntentTextChar
}
