package input

import (
	"testing"

	"github.com/lixenwraith/git-conflict/editor"
)

func TestApplyText(t *testing.T) {
	ed := editor.New("ab")

	steps := []*Intent{
		{Type: IntentTextNav, Nav: NavLineStart},
		{Type: IntentTextChar, Char: 'x'},
		{Type: IntentTextNav, Nav: NavLineEnd},
		{Type: IntentTextNewline},
		{Type: IntentTextIndent},
		{Type: IntentTextChar, Char: 'y'},
		{Type: IntentTextBackspace},
		{Type: IntentTextChar, Char: 'z'},
	}
	for _, in := range steps {
		handled, err := ApplyText(ed, in)
		if !handled || err != nil {
			t.Fatalf("ApplyText(%s) = %v, %v", in.Type, handled, err)
		}
	}
	if got, want := ed.Text(), "xab\n  z"; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}

	handled, _ := ApplyText(ed, &Intent{Type: IntentMove})
	if handled {
		t.Error("move intent should not be handled by the editor")
	}
}
