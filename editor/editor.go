// Package editor is the text buffer behind the manual-merge modal
package editor

import (
	"strings"

	"github.com/atotto/clipboard"
)

// TabWidth is the number of spaces inserted for a tab
const TabWidth = 2

// readClipboard is replaced in tests
var readClipboard = clipboard.ReadAll

// Editor is a line buffer with a single cursor
// Not safe for concurrent use; frontends edit it from their input goroutine
type Editor struct {
	lines [][]rune
	row   int
	col   int
}

// New creates an editor holding text with the cursor at the end
func New(text string) *Editor {
	e := &Editor{}
	e.SetText(text)
	return e
}

// SetText replaces the buffer and moves the cursor to the end
func (e *Editor) SetText(text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")
	e.lines = make([][]rune, len(parts))
	for i, p := range parts {
		e.lines[i] = expandTabs(p)
	}
	e.row = len(e.lines) - 1
	e.col = len(e.lines[e.row])
}

// Text returns the buffer joined with newlines
func (e *Editor) Text() string {
	parts := make([]string, len(e.lines))
	for i, l := range e.lines {
		parts[i] = string(l)
	}
	return strings.Join(parts, "\n")
}

// Lines returns a copy of the buffer lines
func (e *Editor) Lines() []string {
	out := make([]string, len(e.lines))
	for i, l := range e.lines {
		out[i] = string(l)
	}
	return out
}

// Cursor returns the cursor row and column in runes
func (e *Editor) Cursor() (row, col int) {
	return e.row, e.col
}

// Insert types r at the cursor
func (e *Editor) Insert(r rune) {
	switch r {
	case '\n':
		e.Newline()
		return
	case '\r':
		return
	case '\t':
		for range TabWidth {
			e.Insert(' ')
		}
		return
	}
	line := e.lines[e.row]
	line = append(line[:e.col], append([]rune{r}, line[e.col:]...)...)
	e.lines[e.row] = line
	e.col++
}

// InsertString types s at the cursor, newlines split lines
func (e *Editor) InsertString(s string) {
	for _, r := range s {
		e.Insert(r)
	}
}

// Indent inserts TabWidth spaces
func (e *Editor) Indent() {
	e.Insert('\t')
}

// Newline splits the current line at the cursor
func (e *Editor) Newline() {
	line := e.lines[e.row]
	head := append([]rune(nil), line[:e.col]...)
	tail := append([]rune(nil), line[e.col:]...)
	e.lines[e.row] = head
	e.lines = append(e.lines[:e.row+1], append([][]rune{tail}, e.lines[e.row+1:]...)...)
	e.row++
	e.col = 0
}

// Backspace deletes before the cursor, joining lines at column zero
func (e *Editor) Backspace() {
	if e.col > 0 {
		line := e.lines[e.row]
		e.lines[e.row] = append(line[:e.col-1], line[e.col:]...)
		e.col--
		return
	}
	if e.row == 0 {
		return
	}
	prev := e.lines[e.row-1]
	e.col = len(prev)
	e.lines[e.row-1] = append(prev, e.lines[e.row]...)
	e.lines = append(e.lines[:e.row], e.lines[e.row+1:]...)
	e.row--
}

// Delete removes the rune under the cursor, joining the next line at end of line
func (e *Editor) Delete() {
	line := e.lines[e.row]
	if e.col < len(line) {
		e.lines[e.row] = append(line[:e.col], line[e.col+1:]...)
		return
	}
	if e.row == len(e.lines)-1 {
		return
	}
	e.lines[e.row] = append(line, e.lines[e.row+1]...)
	e.lines = append(e.lines[:e.row+1], e.lines[e.row+2:]...)
}

func (e *Editor) Left() {
	if e.col > 0 {
		e.col--
	} else if e.row > 0 {
		e.row--
		e.col = len(e.lines[e.row])
	}
}

func (e *Editor) Right() {
	if e.col < len(e.lines[e.row]) {
		e.col++
	} else if e.row < len(e.lines)-1 {
		e.row++
		e.col = 0
	}
}

func (e *Editor) Up() {
	if e.row > 0 {
		e.row--
		e.col = min(e.col, len(e.lines[e.row]))
	}
}

func (e *Editor) Down() {
	if e.row < len(e.lines)-1 {
		e.row++
		e.col = min(e.col, len(e.lines[e.row]))
	}
}

func (e *Editor) Home() { e.col = 0 }

func (e *Editor) End() { e.col = len(e.lines[e.row]) }

// Paste inserts the system clipboard at the cursor
func (e *Editor) Paste() error {
	text, err := readClipboard()
	if err != nil {
		return err
	}
	e.InsertString(strings.ReplaceAll(text, "\r\n", "\n"))
	return nil
}

func expandTabs(s string) []rune {
	return []rune(strings.ReplaceAll(s, "\t", strings.Repeat(" ", TabWidth)))
}
