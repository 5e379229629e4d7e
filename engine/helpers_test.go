package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/git-conflict/events"
	"github.com/lixenwraith/git-conflict/grid"
	"github.com/lixenwraith/git-conflict/level"
)

var testEpoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// stepInterval divides every rule duration, so runFor lands exactly on due times
const stepInterval = 10 * time.Millisecond

type levelSpec struct {
	name     string
	rows     []string
	start    grid.Point
	bugs     []level.BugSpawn
	powerups map[grid.Point]level.PowerupKind
}

// buildLevel derives conflict placements from '!' tiles, all pointing at puzzle 0
func buildLevel(t *testing.T, spec levelSpec) *level.Level {
	t.Helper()
	g, err := grid.Parse(spec.rows)
	require.NoError(t, err)

	l := &level.Level{
		Name:  spec.name,
		Grid:  g,
		Start: spec.start,
		Bugs:  spec.bugs,
	}
	for _, p := range g.Find(grid.Conflict) {
		l.Conflicts = append(l.Conflicts, level.ConflictSpot{At: p, Puzzle: 0})
	}
	for _, p := range g.Find(grid.Powerup) {
		kind, ok := spec.powerups[p]
		require.True(t, ok, "powerup tile %v has no kind", p)
		l.Powerups = append(l.Powerups, level.PowerupSpot{At: p, Kind: kind})
	}
	return l
}

type testGame struct {
	*Game
	clock *MockTimeProvider
	queue *events.EventQueue
}

func newTestGame(t *testing.T, rules Rules, levels ...*level.Level) *testGame {
	t.Helper()
	pack := &level.Pack{Levels: levels, Puzzles: level.Builtin().Puzzles}
	if len(levels) == 0 {
		pack = level.Builtin()
	}
	clock := NewMockTimeProvider(testEpoch)
	queue := events.NewEventQueue()
	g, err := NewGame(pack, rules, Options{Clock: clock, Queue: queue})
	require.NoError(t, err)
	return &testGame{Game: g, clock: clock, queue: queue}
}

func (tg *testGame) start(t *testing.T) {
	t.Helper()
	require.NoError(t, tg.Start())
	require.Equal(t, StatePlaying, tg.State())
	tg.queue.Consume()
}

// runFor advances the mock clock in small steps, driving the scheduler at each
func (tg *testGame) runFor(d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += stepInterval {
		tg.Advance(tg.clock.Advance(stepInterval))
	}
}

func (tg *testGame) moves(t *testing.T, dirs ...grid.Direction) {
	t.Helper()
	for i, d := range dirs {
		require.True(t, tg.Move(d), "move %d (%v) from %v rejected", i, d, tg.player)
	}
}

// drain returns the queued events of the given types, all types when none given
func (tg *testGame) drain(types ...events.EventType) []events.GameEvent {
	all := tg.queue.Consume()
	if len(types) == 0 {
		return all
	}
	var out []events.GameEvent
	for _, ev := range all {
		for _, want := range types {
			if ev.Type == want {
				out = append(out, ev)
			}
		}
	}
	return out
}
