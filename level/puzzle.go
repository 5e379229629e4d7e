package level

import (
	"fmt"
	"strings"
)

// Difficulty labels a puzzle for display
type Difficulty uint8

const (
	Easy Difficulty = iota
	Medium
	Hard
)

var difficultyNames = [...]string{"easy", "medium", "hard"}

func (d Difficulty) String() string {
	if int(d) >= len(difficultyNames) {
		return fmt.Sprintf("difficulty(%d)", uint8(d))
	}
	return difficultyNames[d]
}

// ParseDifficulty accepts the lowercase names used in level files
func ParseDifficulty(s string) (Difficulty, error) {
	for i, n := range difficultyNames {
		if strings.EqualFold(n, s) {
			return Difficulty(i), nil
		}
	}
	return 0, fmt.Errorf("unknown difficulty %q", s)
}

// Puzzle is a merge conflict: two competing snippets and the merge that keeps both intents
type Puzzle struct {
	Name       string
	Current    string
	Incoming   string
	Solution   string
	Difficulty Difficulty
}

// Matches reports whether a manual merge equals the canonical solution, ignoring surrounding whitespace
func (p *Puzzle) Matches(text string) bool {
	return strings.TrimSpace(text) == strings.TrimSpace(p.Solution)
}
