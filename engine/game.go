package engine

import (
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/git-conflict/engine/fsm"
	"github.com/lixenwraith/git-conflict/events"
	"github.com/lixenwraith/git-conflict/grid"
	"github.com/lixenwraith/git-conflict/level"
	"github.com/lixenwraith/git-conflict/status"
)

var (
	// ErrInvalidState is returned when an operation is not valid in the current state
	ErrInvalidState = errors.New("operation not valid in current state")
	// ErrNoLevels is returned when a game is built from an empty pack
	ErrNoLevels = errors.New("no levels loaded")
	// ErrUnknownChoice is returned for a resolution choice outside AcceptCurrent..ManualMerge
	ErrUnknownChoice = errors.New("unknown resolution choice")
)

// Choice is how the player resolves a conflict
type Choice int

const (
	AcceptCurrent Choice = iota
	AcceptIncoming
	ManualMerge
)

func (c Choice) String() string {
	switch c {
	case AcceptCurrent:
		return "AcceptCurrent"
	case AcceptIncoming:
		return "AcceptIncoming"
	case ManualMerge:
		return "ManualMerge"
	default:
		return fmt.Sprintf("Choice(%d)", int(c))
	}
}

// Hooks receives notifications that are not queued as events
type Hooks interface {
	// Frame is called by the frame driver while Playing
	Frame(frame int64)
}

// Options carries the collaborators of a Game, zero values get defaults
type Options struct {
	Clock   TimeProvider       // default MonotonicTimeProvider
	Queue   *events.EventQueue // default private queue
	Metrics *status.Registry   // default private registry
	Hooks   Hooks              // optional
}

// Game is the single owner of all mutable game state
// Methods are the only mutation API; Game is not safe for concurrent use
type Game struct {
	rules   Rules
	pack    *level.Pack
	clock   TimeProvider
	sched   *Scheduler
	queue   *events.EventQueue
	hooks   Hooks
	machine *fsm.Machine[*Game]

	sessionID  string
	levelIndex int
	player     grid.Point
	lives      int
	score      int
	finalScore int
	frame      int64

	lvl      *levelInstance
	lastGrid *grid.Grid // frozen view of the last level instance, kept for end screens
	conflict *level.ConflictSpot

	statFrames   *atomic.Int64
	statBugTicks *atomic.Int64
	statState    *status.AtomicString
	metrics      *status.Registry
}

// NewGame validates the pack and rules and returns a Game in the Menu state
func NewGame(pack *level.Pack, rules Rules, opts Options) (*Game, error) {
	if pack == nil || len(pack.Levels) == 0 {
		return nil, ErrNoLevels
	}
	if err := pack.Validate(); err != nil {
		return nil, fmt.Errorf("invalid level pack: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	if opts.Clock == nil {
		opts.Clock = NewMonotonicTimeProvider()
	}
	if opts.Queue == nil {
		opts.Queue = events.NewEventQueue()
	}
	if opts.Metrics == nil {
		opts.Metrics = status.NewRegistry()
	}

	g := &Game{
		rules:        rules,
		pack:         pack,
		clock:        opts.Clock,
		sched:        NewScheduler(opts.Clock),
		queue:        opts.Queue,
		hooks:        opts.Hooks,
		metrics:      opts.Metrics,
		statFrames:   opts.Metrics.Ints.Get(status.KeyFrames),
		statBugTicks: opts.Metrics.Ints.Get(status.KeyBugTicks),
		statState:    opts.Metrics.Strings.Get(status.KeyState),
	}
	if err := g.buildMachine(); err != nil {
		return nil, fmt.Errorf("build state machine: %w", err)
	}
	if err := g.machine.Init(g, StateMenu.id()); err != nil {
		return nil, fmt.Errorf("init state machine: %w", err)
	}
	g.statState.Store(StateMenu.String())
	return g, nil
}

// State returns the active state
func (g *Game) State() State {
	return State(g.machine.Active())
}

// SessionID identifies the current run, regenerated by Start and Restart
func (g *Game) SessionID() string {
	return g.sessionID
}

// SetHooks replaces the hook receiver, nil disables hooks
func (g *Game) SetHooks(h Hooks) {
	g.hooks = h
}

// Metrics exposes the registry the game writes to
func (g *Game) Metrics() *status.Registry {
	return g.metrics
}

// Start begins a new run from the first level
func (g *Game) Start() error {
	if g.State() != StateMenu {
		return fmt.Errorf("start from %s: %w", g.State(), ErrInvalidState)
	}
	g.resetSession()
	g.machine.Fire(g, trStart)
	return nil
}

// Restart resets the session and replays from the first level
// Valid from every state except Menu
func (g *Game) Restart() error {
	if g.State() == StateMenu {
		return fmt.Errorf("restart from %s: %w", g.State(), ErrInvalidState)
	}
	g.resetSession()
	g.machine.Reenter(g, StatePlaying.id())
	return nil
}

// AdvanceLevel loads the next level after LevelComplete
func (g *Game) AdvanceLevel() error {
	if g.State() != StateLevelComplete {
		return fmt.Errorf("advance from %s: %w", g.State(), ErrInvalidState)
	}
	g.levelIndex++
	g.machine.Fire(g, trAdvance)
	return nil
}

// ReturnToMenu abandons the run
func (g *Game) ReturnToMenu() error {
	if g.State() == StateMenu {
		return fmt.Errorf("menu from %s: %w", g.State(), ErrInvalidState)
	}
	g.machine.Fire(g, trMenu)
	return nil
}

// Move attempts one step and runs the collision check on success
// Rejected moves (not Playing, wall, off grid) change nothing and return false
func (g *Game) Move(dir grid.Direction) bool {
	if g.State() != StatePlaying {
		return false
	}
	next := g.player.Add(dir.Delta())
	if !g.lvl.grid.Passable(next.X, next.Y) {
		return false
	}

	from := g.player
	g.player = next
	g.emit(events.EventPlayerMoved, &events.PlayerMovedPayload{From: from, To: next})
	g.checkCollisions(g.clock.Now())
	return true
}

// Resolve submits the player's resolution of the open conflict
func (g *Game) Resolve(choice Choice, text string) error {
	if g.State() != StateConflict || g.conflict == nil {
		return fmt.Errorf("resolve from %s: %w", g.State(), ErrInvalidState)
	}
	if choice < AcceptCurrent || choice > ManualMerge {
		return fmt.Errorf("resolve %v: %w", choice, ErrUnknownChoice)
	}

	spot := *g.conflict
	points := g.rules.PointsPerConflict
	exact := false
	if choice == ManualMerge {
		if pz := g.pack.Puzzle(spot.Puzzle); pz != nil && pz.Matches(text) {
			points += g.rules.ManualMergeBonus
			exact = true
		}
	}

	g.solve(spot.At)
	g.addScore(points)
	g.conflict = nil
	g.emit(events.EventConflictResolved, &events.ConflictResolvedPayload{At: spot.At, Points: points, Exact: exact})
	g.machine.Fire(g, trResolve)
	return nil
}

// Advance runs every driver and timer due at or before now
func (g *Game) Advance(now time.Time) int {
	return g.sched.Advance(now)
}

func (g *Game) resetSession() {
	g.sessionID = uuid.NewString()
	g.score = 0
	g.finalScore = 0
	g.lives = g.rules.InitialLives
	g.levelIndex = 0
	g.frame = 0
}

// checkCollisions is the single collision step, run after every player position change
func (g *Game) checkCollisions(now time.Time) {
	switch g.lvl.grid.AtPoint(g.player) {
	case grid.Conflict:
		if !g.lvl.solved[g.player] {
			g.encounterConflict(now)
		}
	case grid.Bug:
		g.bugCollision(now)
	case grid.Powerup:
		g.collectPowerup(now)
	case grid.Commit:
		g.reachCommit()
	}
}

func (g *Game) encounterConflict(now time.Time) {
	spot, ok := g.lvl.tmpl.ConflictAt(g.player)
	if !ok {
		// Validated packs always place a puzzle on every conflict tile
		spot = level.ConflictSpot{At: g.player, Puzzle: -1}
	}

	if g.lvl.consumeAutoResolve() {
		g.solve(spot.At)
		g.addScore(g.rules.AutoResolvePoints)
		g.emit(events.EventConflictResolved, &events.ConflictResolvedPayload{
			At:     spot.At,
			Points: g.rules.AutoResolvePoints,
			Auto:   true,
		})
		return
	}

	g.conflict = &spot
	name := ""
	if pz := g.pack.Puzzle(spot.Puzzle); pz != nil {
		name = pz.Name
	}
	g.emit(events.EventConflictEncountered, &events.ConflictPayload{At: spot.At, Puzzle: spot.Puzzle, Name: name})
	g.machine.Fire(g, trConflict)
}

func (g *Game) solve(at grid.Point) {
	g.lvl.grid.Clear(at.X, at.Y)
	g.lvl.solved[at] = true
}

// bugCollision costs a life unless immune
// The player is sent back to the start without a second collision check
func (g *Game) bugCollision(now time.Time) {
	if g.lvl.immune(now) {
		return
	}
	at := g.player
	g.lives--
	g.addScore(-g.rules.BugPenalty)
	g.emit(events.EventBugHit, &events.BugHitPayload{At: at, LivesRemaining: g.lives})

	if g.lives <= 0 {
		g.lives = 0
		g.finalScore = g.score
		g.emit(events.EventGameOver, &events.ScorePayload{Level: g.levelIndex, Score: g.score})
		g.machine.Fire(g, trDie)
		return
	}
	g.player = g.lvl.tmpl.Start
}

func (g *Game) reachCommit() {
	g.addScore(g.rules.PointsPerLevel)
	payload := &events.ScorePayload{Level: g.levelIndex, Score: g.score}

	if g.levelIndex == len(g.pack.Levels)-1 {
		g.finalScore = g.score
		g.emit(events.EventGameCompleted, payload)
		g.machine.Fire(g, trFinal)
		return
	}
	g.emit(events.EventLevelCompleted, payload)
	g.machine.Fire(g, trCommit)
}

// addScore applies delta with the score floored at zero
func (g *Game) addScore(delta int) {
	g.score = max(0, g.score+delta)
}

func (g *Game) emit(t events.EventType, payload any) {
	g.queue.Push(events.GameEvent{
		Type:      t,
		Payload:   payload,
		Frame:     g.frame,
		Timestamp: g.clock.Now(),
	})
}

func (g *Game) logf(format string, args ...any) {
	log.Printf("[%s] "+format, append([]any{g.sessionID}, args...)...)
}

// State entry and exit actions

func (g *Game) enterMenu() {
	g.sched.CancelAll()
	g.lastGrid = nil
	g.conflict = nil
}

func (g *Game) enterLevel() {
	tmpl := g.pack.Levels[g.levelIndex]
	g.lvl = newLevelInstance(tmpl)
	g.lastGrid = nil
	g.player = tmpl.Start
	g.logf("level %d %q loaded, %d bugs", g.levelIndex, tmpl.Name, len(g.lvl.bugs))
	g.emit(events.EventLevelStarted, &events.LevelPayload{
		Index:   g.levelIndex,
		Name:    tmpl.Name,
		Message: tmpl.Message,
	})
}

func (g *Game) exitLevel() {
	g.sched.CancelScope(ScopeLevel)
	g.lastGrid = g.lvl.grid
	g.lvl = nil
	g.conflict = nil
}

// enterPlaying cancels any state timers left behind and starts fresh drivers
func (g *Game) enterPlaying() {
	g.sched.CancelScope(ScopeState)
	g.sched.Every(ScopeState, "frame", g.rules.FrameInterval, g.onFrame)

	if g.lvl.restoreDue {
		g.restoreBugs()
	}
	if !g.lvl.suppressed {
		g.startBugTicker()
	}
}

func (g *Game) exitPlaying() {
	g.sched.CancelScope(ScopeState)
	g.lvl.ticker = 0
}

func (g *Game) enterEnded() {
	g.sched.CancelAll()
}

// Drivers

func (g *Game) onFrame(time.Time) {
	g.frame++
	g.statFrames.Store(g.frame)
	if g.hooks != nil {
		g.hooks.Frame(g.frame)
	}
}

func (g *Game) startBugTicker() {
	if len(g.lvl.bugs) == 0 {
		return
	}
	g.lvl.ticker = g.sched.Every(ScopeState, "bugs", g.rules.BugMoveInterval, g.tickBugs)
}

func (g *Game) stopBugTicker() {
	if g.lvl.ticker != 0 {
		g.sched.Cancel(g.lvl.ticker)
		g.lvl.ticker = 0
	}
}

// tickBugs moves every bug once, in spawn order
func (g *Game) tickBugs(at time.Time) {
	g.statBugTicks.Add(1)
	for _, b := range g.lvl.bugs {
		if b.step(g.lvl.grid) && b.Pos == g.player {
			g.bugCollision(at)
			if g.State() != StatePlaying {
				return
			}
		}
	}
}
