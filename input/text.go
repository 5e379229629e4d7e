package input

import "github.com/lixenwraith/git-conflict/editor"

// ApplyText performs a text intent on the merge editor
// Returns true if the intent was a text edit, paste errors are returned as-is
func ApplyText(ed *editor.Editor, in *Intent) (bool, error) {
	switch in.Type {
	case IntentTextChar:
		ed.Insert(in.Char)
	case IntentTextNewline:
		ed.Newline()
	case IntentTextIndent:
		ed.Indent()
	case IntentTextBackspace:
		ed.Backspace()
	case IntentTextDelete:
		ed.Delete()
	case IntentTextPaste:
		return true, ed.Paste()
	case IntentTextNav:
		switch in.Nav {
		case NavLeft:
			ed.Left()
		case NavRight:
			ed.Right()
		case NavUp:
			ed.Up()
		case NavDown:
			ed.Down()
		case NavLineStart:
			ed.Home()
		case NavLineEnd:
			ed.End()
		}
	default:
		return false, nil
	}
	return true, nil
}
