package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/git-conflict/events"
	"github.com/lixenwraith/git-conflict/grid"
	"github.com/lixenwraith/git-conflict/level"
)

const (
	up    = grid.Up
	down  = grid.Down
	left  = grid.Left
	right = grid.Right
)

// pathToFirstConflict walks Level 1 from (1,1) to the conflict at (4,4) through the open corridor
var pathToFirstConflict = []grid.Direction{right, right, right, right, down, down, left, down}

func TestNewGameRejectsEmptyPack(t *testing.T) {
	_, err := NewGame(&level.Pack{}, DefaultRules(), Options{})
	assert.ErrorIs(t, err, ErrNoLevels)

	rules := DefaultRules()
	rules.BugMoveInterval = 0
	_, err = NewGame(level.Builtin(), rules, Options{})
	assert.Error(t, err)
}

func TestStartInitialisesSession(t *testing.T) {
	g := newTestGame(t, DefaultRules())
	assert.Equal(t, StateMenu, g.State())
	assert.False(t, g.Move(right), "moves are ignored in Menu")

	require.NoError(t, g.Start())
	snap := g.Snapshot()
	assert.Equal(t, StatePlaying, snap.State)
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, 3, snap.Lives)
	assert.Equal(t, 0, snap.LevelIndex)
	assert.Equal(t, "Feature Branch", snap.LevelName)
	assert.Equal(t, grid.Point{X: 1, Y: 1}, snap.Player)
	assert.NotEmpty(t, snap.SessionID)
	assert.Equal(t, 2, snap.StateTimers, "frame driver and bug ticker")

	started := g.drain(events.EventLevelStarted)
	require.Len(t, started, 1)
	assert.Equal(t, "Feature Branch", started[0].Payload.(*events.LevelPayload).Name)

	assert.ErrorIs(t, g.Start(), ErrInvalidState)
}

func TestMoveRejectsWallsSilently(t *testing.T) {
	g := newTestGame(t, DefaultRules())
	g.start(t)

	assert.False(t, g.Move(up))
	assert.False(t, g.Move(left))
	assert.Equal(t, grid.Point{X: 1, Y: 1}, g.Snapshot().Player)
	assert.Empty(t, g.drain(events.EventPlayerMoved))

	assert.True(t, g.Move(right))
	moved := g.drain(events.EventPlayerMoved)
	require.Len(t, moved, 1)
	assert.Equal(t, grid.Point{X: 2, Y: 1}, moved[0].Payload.(*events.PlayerMovedPayload).To)
}

func TestLevelOneAcceptCurrent(t *testing.T) {
	g := newTestGame(t, DefaultRules())
	g.start(t)

	g.moves(t, pathToFirstConflict...)
	require.Equal(t, StateConflict, g.State())

	encountered := g.drain(events.EventConflictEncountered)
	require.Len(t, encountered, 1)
	p := encountered[0].Payload.(*events.ConflictPayload)
	assert.Equal(t, grid.Point{X: 4, Y: 4}, p.At)
	assert.Equal(t, 0, p.Puzzle)

	snap := g.Snapshot()
	require.NotNil(t, snap.Conflict)
	assert.Equal(t, "Function parameter conflict", snap.Conflict.Puzzle.Name)
	assert.Equal(t, 0, snap.StateTimers, "drivers stop outside Playing")

	require.NoError(t, g.Resolve(AcceptCurrent, ""))
	snap = g.Snapshot()
	assert.Equal(t, StatePlaying, snap.State)
	assert.Equal(t, 100, snap.Score)
	assert.Equal(t, 1, snap.Solved)
	assert.Equal(t, grid.Empty, snap.Grid.At(4, 4))
	assert.Nil(t, snap.Conflict)
	assert.Equal(t, 2, snap.StateTimers, "drivers restart on re-entry")
}

func TestSolvedConflictNeverRetriggers(t *testing.T) {
	g := newTestGame(t, DefaultRules())
	g.start(t)
	g.moves(t, pathToFirstConflict...)
	require.NoError(t, g.Resolve(AcceptIncoming, ""))
	g.drain()

	g.moves(t, up, down, up, down)
	assert.Equal(t, StatePlaying, g.State())
	assert.Empty(t, g.drain(events.EventConflictEncountered))
	assert.Equal(t, 100, g.Snapshot().Score)
}

func TestManualMergeBonus(t *testing.T) {
	solution := level.Builtin().Puzzles[0].Solution

	score := func(text string) int {
		g := newTestGame(t, DefaultRules())
		g.start(t)
		g.moves(t, pathToFirstConflict...)
		require.NoError(t, g.Resolve(ManualMerge, text))
		return g.Snapshot().Score
	}

	exact := score("\n  " + solution + "  \n")
	wrong := score("function greet() {}")
	assert.Equal(t, 150, exact)
	assert.Equal(t, 100, wrong)
	assert.Greater(t, exact, wrong)
}

func TestResolveErrors(t *testing.T) {
	g := newTestGame(t, DefaultRules())
	g.start(t)
	assert.ErrorIs(t, g.Resolve(AcceptCurrent, ""), ErrInvalidState)

	g.moves(t, pathToFirstConflict...)
	err := g.Resolve(Choice(9), "")
	assert.True(t, errors.Is(err, ErrUnknownChoice))
	assert.Equal(t, StateConflict, g.State())
}

func bugCorridor(t *testing.T) *level.Level {
	// Bug at (3,1) is walled on the right, so its first step is left
	return buildLevel(t, levelSpec{
		name: "corridor",
		rows: []string{
			"#####",
			"#..b#",
			"#.C.#",
			"#####",
		},
		start: grid.Point{X: 1, Y: 1},
		bugs:  []level.BugSpawn{{At: grid.Point{X: 3, Y: 1}, Pattern: level.Horizontal, Range: 1}},
	})
}

func TestBugStepsOntoPlayer(t *testing.T) {
	g := newTestGame(t, DefaultRules(), bugCorridor(t))
	g.start(t)
	g.moves(t, right)

	g.runFor(time.Second)

	snap := g.Snapshot()
	assert.Equal(t, 2, snap.Lives)
	assert.Equal(t, 0, snap.Score, "penalty floors at zero")
	assert.Equal(t, grid.Point{X: 1, Y: 1}, snap.Player, "sent back to start")
	assert.Equal(t, StatePlaying, snap.State)

	hits := g.drain(events.EventBugHit)
	require.Len(t, hits, 1)
	assert.Equal(t, 2, hits[0].Payload.(*events.BugHitPayload).LivesRemaining)
}

func TestPlayerWalksIntoBug(t *testing.T) {
	g := newTestGame(t, DefaultRules(), bugCorridor(t))
	g.start(t)

	g.moves(t, right, right)
	snap := g.Snapshot()
	assert.Equal(t, 2, snap.Lives)
	assert.Equal(t, grid.Point{X: 1, Y: 1}, snap.Player)
}

func TestScoreFloor(t *testing.T) {
	rules := DefaultRules()
	rules.BugPenalty = 500
	g := newTestGame(t, rules, bugCorridor(t))
	g.start(t)
	g.score = 120

	g.moves(t, right, right)
	assert.Equal(t, 0, g.Snapshot().Score)
}

func TestGameOverStopsEverything(t *testing.T) {
	rules := DefaultRules()
	rules.InitialLives = 1
	g := newTestGame(t, rules, bugCorridor(t))
	g.start(t)
	g.score = 40

	g.moves(t, right)
	g.runFor(time.Second)

	snap := g.Snapshot()
	require.Equal(t, StateGameOver, snap.State)
	assert.Equal(t, 0, snap.Lives)
	assert.Equal(t, 0, snap.FinalScore)
	assert.Equal(t, 0, snap.StateTimers)
	assert.Equal(t, 0, snap.LevelTimers)
	assert.NotNil(t, snap.Grid, "last grid stays visible behind the end screen")

	over := g.drain(events.EventGameOver)
	require.Len(t, over, 1)

	frame := snap.Frame
	g.runFor(5 * time.Second)
	assert.Equal(t, frame, g.Snapshot().Frame, "frame driver must be stopped")
	assert.Empty(t, g.drain(events.EventBugHit, events.EventPlayerMoved))
	assert.False(t, g.Move(right))
}

func immunityLevel(t *testing.T) *level.Level {
	return buildLevel(t, levelSpec{
		name: "stash",
		rows: []string{
			"#######",
			"#.*b..#",
			"#....C#",
			"#######",
		},
		start:    grid.Point{X: 1, Y: 1},
		bugs:     []level.BugSpawn{{At: grid.Point{X: 3, Y: 1}, Pattern: level.Horizontal, Range: 0}},
		powerups: map[grid.Point]level.PowerupKind{{X: 2, Y: 1}: level.Immunity},
	})
}

func TestImmunitySuppressesCollision(t *testing.T) {
	g := newTestGame(t, DefaultRules(), immunityLevel(t))
	g.start(t)

	g.moves(t, right)
	snap := g.Snapshot()
	require.Len(t, snap.Effects, 1)
	assert.Equal(t, level.Immunity, snap.Effects[0].Kind)
	assert.True(t, snap.Effects[0].ExpiresAt.After(snap.Now))
	assert.Equal(t, 50, snap.Score)
	assert.Equal(t, grid.Empty, snap.Grid.At(2, 1), "powerup tile consumed")

	g.moves(t, right)
	snap = g.Snapshot()
	assert.Equal(t, 3, snap.Lives)
	assert.Equal(t, 50, snap.Score)
	assert.Equal(t, grid.Point{X: 3, Y: 1}, snap.Player, "no reposition while immune")
	assert.Empty(t, g.drain(events.EventBugHit))
}

func TestImmunityExpires(t *testing.T) {
	g := newTestGame(t, DefaultRules(), immunityLevel(t))
	g.start(t)
	g.moves(t, right)
	require.Equal(t, 1, g.Snapshot().LevelTimers)

	g.runFor(10 * time.Second)
	snap := g.Snapshot()
	assert.Empty(t, snap.Effects)
	assert.Equal(t, 0, snap.LevelTimers)
	assert.Len(t, g.drain(events.EventPowerupExpired), 1)

	// The bug holds at (3,1), stepping on it now costs a life
	g.moves(t, right)
	assert.Equal(t, 2, g.Snapshot().Lives)
}

func TestImmunityEntriesAreIndependent(t *testing.T) {
	lvl := buildLevel(t, levelSpec{
		name: "double stash",
		rows: []string{
			"########",
			"#.**...#",
			"#.....C#",
			"########",
		},
		start: grid.Point{X: 1, Y: 1},
		powerups: map[grid.Point]level.PowerupKind{
			{X: 2, Y: 1}: level.Immunity,
			{X: 3, Y: 1}: level.Immunity,
		},
	})
	g := newTestGame(t, DefaultRules(), lvl)
	g.start(t)

	g.moves(t, right)
	g.runFor(4 * time.Second)
	g.moves(t, right)
	require.Len(t, g.Snapshot().Effects, 2)

	g.runFor(6 * time.Second)
	effects := g.Snapshot().Effects
	require.Len(t, effects, 1, "first entry expires on its own schedule")
	assert.True(t, effects[0].ExpiresAt.Equal(testEpoch.Add(14*time.Second)))

	g.runFor(4 * time.Second)
	assert.Empty(t, g.Snapshot().Effects)
}

func rebaseLevel(t *testing.T, withConflict bool) *level.Level {
	rows := []string{
		"#########",
		"#.*..b..#",
		"#......C#",
		"#########",
	}
	if withConflict {
		rows[1] = "#.*!.b..#"
	}
	return buildLevel(t, levelSpec{
		name:     "rebase",
		rows:     rows,
		start:    grid.Point{X: 1, Y: 1},
		bugs:     []level.BugSpawn{{At: grid.Point{X: 5, Y: 1}, Pattern: level.Horizontal, Range: 1}},
		powerups: map[grid.Point]level.PowerupKind{{X: 2, Y: 1}: level.RemoveBugs},
	})
}

func TestRemoveBugsRestoresWhilePlaying(t *testing.T) {
	g := newTestGame(t, DefaultRules(), rebaseLevel(t, false))
	g.start(t)

	g.moves(t, right)
	snap := g.Snapshot()
	assert.Equal(t, 0, snap.Grid.Count(grid.Bug), "bug tiles cleared immediately")
	assert.True(t, snap.BugsSuppressed)
	assert.Equal(t, 1, snap.StateTimers, "bug ticker stopped, frame driver keeps running")

	g.runFor(5*time.Second - stepInterval)
	assert.Equal(t, 0, g.Snapshot().Grid.Count(grid.Bug), "no early restore")

	g.runFor(stepInterval)
	snap = g.Snapshot()
	assert.Equal(t, grid.Bug, snap.Grid.At(5, 1), "bug back at its pre-removal cell")
	assert.False(t, snap.BugsSuppressed)
	assert.Equal(t, 2, snap.StateTimers, "bug ticker restarted")

	restored := g.drain(events.EventBugsRestored)
	require.Len(t, restored, 1)
	assert.Equal(t, 1, restored[0].Payload.(*events.BugsRestoredPayload).Count)
}

func TestRemoveBugsCancelledByLevelChange(t *testing.T) {
	next := buildLevel(t, levelSpec{
		name:  "next",
		rows:  []string{"####", "#.C#", "####"},
		start: grid.Point{X: 1, Y: 1},
	})
	g := newTestGame(t, DefaultRules(), rebaseLevel(t, false), next)
	g.start(t)

	g.moves(t, right)
	g.moves(t, down, right, right, right, right, right)
	require.Equal(t, StateLevelComplete, g.State())

	snap := g.Snapshot()
	assert.Equal(t, 0, snap.StateTimers)
	assert.Equal(t, 0, snap.LevelTimers, "restore timer cancelled with the level")

	g.runFor(10 * time.Second)
	assert.Empty(t, g.drain(events.EventBugsRestored))
	assert.Equal(t, 0, g.Snapshot().Grid.Count(grid.Bug))

	require.NoError(t, g.AdvanceLevel())
	snap = g.Snapshot()
	assert.Equal(t, "next", snap.LevelName)
	assert.Empty(t, snap.Effects)
	assert.False(t, snap.BugsSuppressed)
}

func TestRemoveBugsRestoreDeferredDuringConflict(t *testing.T) {
	g := newTestGame(t, DefaultRules(), rebaseLevel(t, true))
	g.start(t)

	g.moves(t, right, right)
	require.Equal(t, StateConflict, g.State())

	g.runFor(6 * time.Second)
	assert.Equal(t, 0, g.Snapshot().Grid.Count(grid.Bug), "no restore while resolving")
	assert.Empty(t, g.drain(events.EventBugsRestored))

	require.NoError(t, g.Resolve(AcceptCurrent, ""))
	snap := g.Snapshot()
	assert.Equal(t, grid.Bug, snap.Grid.At(5, 1))
	assert.Equal(t, 2, snap.StateTimers)
	assert.Len(t, g.drain(events.EventBugsRestored), 1)
}

func TestAutoResolveLatch(t *testing.T) {
	lvl := buildLevel(t, levelSpec{
		name: "cherry-pick",
		rows: []string{
			"########",
			"#.*!.!C#",
			"########",
		},
		start:    grid.Point{X: 1, Y: 1},
		powerups: map[grid.Point]level.PowerupKind{{X: 2, Y: 1}: level.AutoResolve},
	})
	g := newTestGame(t, DefaultRules(), lvl)
	g.start(t)

	g.moves(t, right)
	assert.True(t, g.Snapshot().AutoResolve)

	g.moves(t, right)
	snap := g.Snapshot()
	assert.Equal(t, StatePlaying, snap.State, "latched conflict resolves in place")
	assert.Equal(t, 100, snap.Score)
	assert.False(t, snap.AutoResolve, "latch consumed")
	assert.Equal(t, grid.Empty, snap.Grid.At(3, 1))

	resolved := g.drain(events.EventConflictResolved, events.EventConflictEncountered)
	require.Len(t, resolved, 1)
	assert.True(t, resolved[0].Payload.(*events.ConflictResolvedPayload).Auto)

	g.moves(t, right, right)
	assert.Equal(t, StateConflict, g.State(), "next conflict needs a manual choice")
}

func TestCommitOnFinalAndNonFinalLevel(t *testing.T) {
	small := func(name string) *level.Level {
		return buildLevel(t, levelSpec{
			name:  name,
			rows:  []string{"####", "#.C#", "####"},
			start: grid.Point{X: 1, Y: 1},
		})
	}
	g := newTestGame(t, DefaultRules(), small("one"), small("two"))
	g.start(t)

	g.moves(t, right)
	require.Equal(t, StateLevelComplete, g.State())
	assert.Equal(t, 500, g.Snapshot().Score)
	assert.Len(t, g.drain(events.EventLevelCompleted), 1)
	assert.Equal(t, 0, g.Snapshot().StateTimers+g.Snapshot().LevelTimers)

	require.NoError(t, g.AdvanceLevel())
	assert.Equal(t, 1, g.Snapshot().LevelIndex)
	assert.ErrorIs(t, g.AdvanceLevel(), ErrInvalidState)

	g.moves(t, right)
	snap := g.Snapshot()
	require.Equal(t, StateGameComplete, snap.State)
	assert.Equal(t, 1000, snap.Score)
	assert.Equal(t, 1000, snap.FinalScore)
	completed := g.drain(events.EventGameCompleted)
	require.Len(t, completed, 1)
	assert.Equal(t, 1000, completed[0].Payload.(*events.ScorePayload).Score)
}

func TestRestartResetsSession(t *testing.T) {
	g := newTestGame(t, DefaultRules())
	g.start(t)
	first := g.SessionID()

	g.moves(t, pathToFirstConflict...)
	require.NoError(t, g.Resolve(AcceptCurrent, ""))
	g.runFor(3 * time.Second)

	require.NoError(t, g.Restart())
	snap := g.Snapshot()
	assert.Equal(t, StatePlaying, snap.State)
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, 3, snap.Lives)
	assert.Equal(t, grid.Point{X: 1, Y: 1}, snap.Player)
	assert.Equal(t, grid.Conflict, snap.Grid.At(4, 4), "fresh level instance")
	assert.Equal(t, 2, snap.StateTimers, "exactly one frame driver and one ticker")
	assert.NotEqual(t, first, snap.SessionID)
}

func TestRestartCancelsPendingLevelTimers(t *testing.T) {
	t.Run("immunity expiry", func(t *testing.T) {
		g := newTestGame(t, DefaultRules(), immunityLevel(t))
		g.start(t)
		g.moves(t, right)
		require.Equal(t, 1, g.Snapshot().LevelTimers)

		require.NoError(t, g.Restart())
		snap := g.Snapshot()
		assert.Equal(t, 0, snap.LevelTimers)
		assert.Empty(t, snap.Effects)
		assert.Equal(t, grid.Powerup, snap.Grid.At(2, 1), "fresh level instance")

		g.runFor(15 * time.Second)
		assert.Empty(t, g.drain(events.EventPowerupExpired))
		assert.Equal(t, 0, g.Snapshot().LevelTimers)
	})

	t.Run("bug restore", func(t *testing.T) {
		g := newTestGame(t, DefaultRules(), rebaseLevel(t, false))
		g.start(t)
		g.moves(t, right)
		require.True(t, g.Snapshot().BugsSuppressed)
		require.Equal(t, 1, g.Snapshot().LevelTimers)

		require.NoError(t, g.Restart())
		snap := g.Snapshot()
		assert.Equal(t, 0, snap.LevelTimers)
		assert.False(t, snap.BugsSuppressed)
		assert.Equal(t, 1, snap.Grid.Count(grid.Bug))
		assert.Equal(t, 2, snap.StateTimers)

		g.runFor(10 * time.Second)
		assert.Empty(t, g.drain(events.EventBugsRestored))
		snap = g.Snapshot()
		assert.Equal(t, 1, snap.Grid.Count(grid.Bug))
		assert.Equal(t, 2, snap.StateTimers)
	})
}

func TestReturnToMenu(t *testing.T) {
	g := newTestGame(t, DefaultRules())
	assert.ErrorIs(t, g.ReturnToMenu(), ErrInvalidState)
	assert.ErrorIs(t, g.Restart(), ErrInvalidState)

	g.start(t)
	require.NoError(t, g.ReturnToMenu())
	snap := g.Snapshot()
	assert.Equal(t, StateMenu, snap.State)
	assert.Nil(t, snap.Grid)
	assert.Equal(t, 0, snap.StateTimers+snap.LevelTimers)

	require.NoError(t, g.Start())
}

func TestBugsStayInsideRangeWindow(t *testing.T) {
	lvl := buildLevel(t, levelSpec{
		name: "arena",
		rows: []string{
			"#########",
			"#.......#",
			"#.......#",
			"#.......#",
			"#.......#",
			"#......C#",
			"#########",
		},
		start: grid.Point{X: 1, Y: 1},
		bugs: []level.BugSpawn{
			{At: grid.Point{X: 4, Y: 3}, Pattern: level.Horizontal, Range: 2},
			{At: grid.Point{X: 6, Y: 3}, Pattern: level.Vertical, Range: 2},
			{At: grid.Point{X: 3, Y: 4}, Pattern: level.Horizontal, Range: 6},
			{At: grid.Point{X: 2, Y: 3}, Pattern: level.Circular, Range: 2},
		},
	})
	g := newTestGame(t, DefaultRules(), lvl)
	g.start(t)

	for tick := 0; tick < 40; tick++ {
		g.runFor(time.Second)
		for _, b := range g.Snapshot().Bugs {
			switch b.Pattern {
			case level.Horizontal:
				assert.LessOrEqual(t, abs(b.Pos.X-b.Spawn.X), b.Range, "tick %d: %+v", tick, b)
				assert.Equal(t, b.Spawn.Y, b.Pos.Y)
			case level.Vertical:
				assert.LessOrEqual(t, abs(b.Pos.Y-b.Spawn.Y), b.Range, "tick %d: %+v", tick, b)
				assert.Equal(t, b.Spawn.X, b.Pos.X)
			}
			assert.True(t, lvl.Grid.InBounds(b.Pos.X, b.Pos.Y))
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

type frameCounter struct{ frames []int64 }

func (f *frameCounter) Frame(n int64) { f.frames = append(f.frames, n) }

func TestFrameHook(t *testing.T) {
	g := newTestGame(t, DefaultRules())
	hooks := &frameCounter{}
	g.SetHooks(hooks)
	g.start(t)

	g.runFor(160 * time.Millisecond)
	assert.Len(t, hooks.frames, 10)

	g.moves(t, pathToFirstConflict...)
	n := len(hooks.frames)
	g.runFor(time.Second)
	assert.Len(t, hooks.frames, n, "no frames in Conflict")
}
