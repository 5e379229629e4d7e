package input

import (
	"sort"

	"github.com/lixenwraith/git-conflict/engine"
	"github.com/lixenwraith/git-conflict/grid"
)

// actionRegistry maps canonical action names to KeyEntry values
// Used by the keymap loader to resolve action strings from the settings file
var actionRegistry = map[string]KeyEntry{
	// Unbind sentinel
	"none": {},

	// System
	"quit":         {Intent: IntentQuit},
	"toggle_mute":  {Intent: IntentToggleMute},
	"toggle_debug": {Intent: IntentToggleDebug},

	// Game flow
	"start":   {Intent: IntentStart},
	"restart": {Intent: IntentRestart},
	"confirm": {Intent: IntentConfirm},
	"menu":    {Intent: IntentMenu},

	// Movement
	"move_up":    {Intent: IntentMove, Dir: grid.Up},
	"move_down":  {Intent: IntentMove, Dir: grid.Down},
	"move_left":  {Intent: IntentMove, Dir: grid.Left},
	"move_right": {Intent: IntentMove, Dir: grid.Right},

	// Conflict modal
	"accept_current":  {Intent: IntentResolve, Choice: engine.AcceptCurrent},
	"accept_incoming": {Intent: IntentResolve, Choice: engine.AcceptIncoming},
	"manual_merge":    {Intent: IntentOpenMerge},

	// Merge editor
	"text_newline":    {Intent: IntentTextNewline},
	"text_indent":     {Intent: IntentTextIndent},
	"text_backspace":  {Intent: IntentTextBackspace},
	"text_delete":     {Intent: IntentTextDelete},
	"text_left":       {Intent: IntentTextNav, Nav: NavLeft},
	"text_right":      {Intent: IntentTextNav, Nav: NavRight},
	"text_up":         {Intent: IntentTextNav, Nav: NavUp},
	"text_down":       {Intent: IntentTextNav, Nav: NavDown},
	"text_line_start": {Intent: IntentTextNav, Nav: NavLineStart},
	"text_line_end":   {Intent: IntentTextNav, Nav: NavLineEnd},
	"text_paste":      {Intent: IntentTextPaste},
	"text_submit":     {Intent: IntentTextSubmit},
	"text_cancel":     {Intent: IntentTextCancel},
}

// ActionEntry resolves a canonical action name to its KeyEntry
// Returns zero KeyEntry and false if name is unknown
func ActionEntry(name string) (KeyEntry, bool) {
	entry, ok := actionRegistry[name]
	return entry, ok
}

// ActionNames returns all registered action names, sorted
func ActionNames() []string {
	names := make([]string, 0, len(actionRegistry))
	for name := range actionRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
