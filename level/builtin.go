package level

import (
	"fmt"

	"github.com/lixenwraith/git-conflict/grid"
)

var builtinPuzzles = []Puzzle{
	{
		Name:       "Function parameter conflict",
		Current:    "function greet(name) {\n  return 'Hello, ' + name;\n}",
		Incoming:   "function greet(name, greeting) {\n  return greeting + ', ' + name;\n}",
		Solution:   "function greet(name, greeting = 'Hello') {\n  return greeting + ', ' + name;\n}",
		Difficulty: Easy,
	},
	{
		Name:       "CSS style conflict",
		Current:    ".button {\n  color: white;\n  background: blue;\n}",
		Incoming:   ".button {\n  color: white;\n  padding: 8px;\n}",
		Solution:   ".button {\n  color: white;\n  background: blue;\n  padding: 8px;\n}",
		Difficulty: Easy,
	},
	{
		Name:       "Array method conflict",
		Current:    "const total = items.map(i => i.price);",
		Incoming:   "const total = items.reduce((sum, i) => sum + i.qty, 0);",
		Solution:   "const total = items.reduce((sum, i) => sum + i.price * i.qty, 0);",
		Difficulty: Medium,
	},
	{
		Name:       "HTML structure conflict",
		Current:    "<nav>\n  <a href=\"/\">Home</a>\n</nav>",
		Incoming:   "<header>\n  <a href=\"/about\">About</a>\n</header>",
		Solution:   "<header>\n  <nav>\n    <a href=\"/\">Home</a>\n    <a href=\"/about\">About</a>\n  </nav>\n</header>",
		Difficulty: Medium,
	},
	{
		Name:       "JSON configuration conflict",
		Current:    "{\n  \"port\": 8080,\n  \"debug\": false\n}",
		Incoming:   "{\n  \"port\": 3000,\n  \"logLevel\": \"info\"\n}",
		Solution:   "{\n  \"port\": 3000,\n  \"debug\": false,\n  \"logLevel\": \"info\"\n}",
		Difficulty: Hard,
	},
}

var builtinLevels = []struct {
	name      string
	message   string
	rows      []string
	start     grid.Point
	conflicts []ConflictSpot
	bugs      []BugSpawn
	powerups  []PowerupSpot
}{
	{
		name:    "Feature Branch",
		message: "Welcome to your first feature branch! Navigate to the conflict, resolve it, and reach the commit zone.",
		rows: []string{
			"############",
			"#.........C#",
			"#.###.###..#",
			"#.#.....#..#",
			"#.#.!.b.#..#",
			"#.#.....#..#",
			"#.###.###..#",
			"#..........#",
			"############",
		},
		start:     grid.Point{X: 1, Y: 1},
		conflicts: []ConflictSpot{{At: grid.Point{X: 4, Y: 4}, Puzzle: 0}},
		bugs:      []BugSpawn{{At: grid.Point{X: 6, Y: 4}, Pattern: Horizontal, Range: 2}},
	},
	{
		name:    "Merge Request",
		message: "Time to handle a merge request! There are multiple conflicts to resolve and more bugs to avoid.",
		rows: []string{
			"##############",
			"#...#........#",
			"#.!.#.####.!.#",
			"#...#....#...#",
			"###.####.#.###",
			"#........#...#",
			"#.####.#####.#",
			"#..b....b....#",
			"######.#######",
			"#C........*..#",
			"##############",
		},
		start: grid.Point{X: 2, Y: 1},
		conflicts: []ConflictSpot{
			{At: grid.Point{X: 2, Y: 2}, Puzzle: 1},
			{At: grid.Point{X: 11, Y: 2}, Puzzle: 2},
		},
		bugs: []BugSpawn{
			{At: grid.Point{X: 3, Y: 7}, Pattern: Horizontal, Range: 3},
			{At: grid.Point{X: 8, Y: 7}, Pattern: Vertical, Range: 2},
		},
		powerups: []PowerupSpot{{At: grid.Point{X: 10, Y: 9}, Kind: RemoveBugs}},
	},
	{
		name:    "Rebase Hell",
		message: "Welcome to rebase hell! Navigate the complex maze, solve multiple conflicts, and watch out for those pesky bugs.",
		rows: []string{
			"################",
			"#.....#.......C#",
			"#.###.#.######.#",
			"#.#*#.#........#",
			"#.#.#.########.#",
			"#.#.#........#.#",
			"#.#.########.#.#",
			"#.#!#....!.#.#.#",
			"#.#.#.####.#.#.#",
			"#...#.#..#.....#",
			"###.#.#.b#######",
			"#...#.#....*...#",
			"#.###.########.#",
			"#..............#",
			"################",
		},
		start: grid.Point{X: 1, Y: 1},
		conflicts: []ConflictSpot{
			{At: grid.Point{X: 3, Y: 7}, Puzzle: 3},
			{At: grid.Point{X: 9, Y: 7}, Puzzle: 4},
		},
		bugs: []BugSpawn{
			{At: grid.Point{X: 8, Y: 10}, Pattern: Horizontal, Range: 2},
			{At: grid.Point{X: 12, Y: 13}, Pattern: Vertical, Range: 3},
			{At: grid.Point{X: 5, Y: 5}, Pattern: Circular, Range: 2},
		},
		powerups: []PowerupSpot{
			{At: grid.Point{X: 3, Y: 3}, Kind: Immunity},
			{At: grid.Point{X: 11, Y: 11}, Kind: AutoResolve},
		},
	},
}

// Builtin returns the three levels and five puzzles the game ships with
// A fresh pack is built on every call so callers may not alias each other's templates
func Builtin() *Pack {
	pack := &Pack{Puzzles: make([]Puzzle, len(builtinPuzzles))}
	copy(pack.Puzzles, builtinPuzzles)

	for _, def := range builtinLevels {
		g, err := grid.Parse(def.rows)
		if err != nil {
			panic(fmt.Sprintf("builtin level %q: %v", def.name, err))
		}
		pack.Levels = append(pack.Levels, &Level{
			Name:      def.name,
			Message:   def.message,
			Grid:      g,
			Start:     def.start,
			Conflicts: append([]ConflictSpot(nil), def.conflicts...),
			Bugs:      append([]BugSpawn(nil), def.bugs...),
			Powerups:  append([]PowerupSpot(nil), def.powerups...),
		})
	}
	return pack
}
