package engine

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/git-conflict/constants"
	"github.com/lixenwraith/git-conflict/core"
	"github.com/lixenwraith/git-conflict/events"
	"github.com/lixenwraith/git-conflict/grid"
	"github.com/lixenwraith/git-conflict/status"
)

// CommandKind selects the Game method a Command invokes
type CommandKind int

const (
	CmdMove CommandKind = iota
	CmdStart
	CmdRestart
	CmdAdvance
	CmdResolve
	CmdMenu
)

// Command is one input for the Runner, applied atomically on the game goroutine
type Command struct {
	Kind   CommandKind
	Dir    grid.Direction // CmdMove
	Choice Choice         // CmdResolve
	Text   string         // CmdResolve with ManualMerge

	// Result receives the outcome when non-nil, it must be buffered
	Result chan<- error
}

// ErrRejectedMove is reported on Command.Result when a move was not accepted
var ErrRejectedMove = errors.New("move rejected")

// Runner owns a Game on a single goroutine
// Input commands and scheduler ticks are serialized, so a move and its collision check never
// interleave with a bug step; each change is published as a Snapshot and queued events are
// dispatched to the router on the same goroutine
type Runner struct {
	game     *Game
	clock    TimeProvider
	router   *events.Router[*Snapshot]
	interval time.Duration

	commands chan Command
	updated  chan struct{}
	snapshot atomic.Pointer[Snapshot]
	dirty    bool

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	statCommands    *atomic.Int64
	statDropped     *atomic.Int64
	statEvents      *atomic.Int64
	statLostEvents  *atomic.Int64
	statStateTimers *atomic.Int64
	statLevelTimers *atomic.Int64
	statStale       *atomic.Int64
}

// NewRunner wraps game, router may be nil when nobody consumes events
// The runner installs itself as the game's hook receiver
func NewRunner(game *Game, router *events.Router[*Snapshot], clock TimeProvider, interval time.Duration) *Runner {
	if clock == nil {
		clock = game.clock
	}
	if interval <= 0 {
		interval = constants.RunnerTickInterval
	}
	reg := game.Metrics()
	r := &Runner{
		game:            game,
		clock:           clock,
		router:          router,
		interval:        interval,
		commands:        make(chan Command, constants.CommandQueueSize),
		updated:         make(chan struct{}, 1),
		stopChan:        make(chan struct{}),
		statCommands:    reg.Ints.Get(status.KeyCommands),
		statDropped:     reg.Ints.Get(status.KeyDroppedInput),
		statEvents:      reg.Ints.Get(status.KeyEvents),
		statLostEvents:  reg.Ints.Get(status.KeyDroppedEvents),
		statStateTimers: reg.Ints.Get(status.KeyStateTimers),
		statLevelTimers: reg.Ints.Get(status.KeyLevelTimers),
		statStale:       reg.Ints.Get(status.KeyStaleCallbacks),
	}
	game.SetHooks(r)
	r.publish()
	return r
}

// Frame marks the snapshot stale so the next loop iteration republishes it
func (r *Runner) Frame(int64) {
	r.dirty = true
}

// Start begins the game loop
func (r *Runner) Start() {
	if r.running.CompareAndSwap(false, true) {
		r.wg.Add(1)
		core.Go(r.loop)
	}
}

// Stop halts the game loop and waits for it to exit
func (r *Runner) Stop() {
	r.stopOnce.Do(func() {
		if r.running.CompareAndSwap(true, false) {
			close(r.stopChan)
			r.wg.Wait()
		}
	})
}

// Submit queues a command without blocking, returns false when the queue is full
func (r *Runner) Submit(cmd Command) bool {
	select {
	case r.commands <- cmd:
		return true
	default:
		r.statDropped.Add(1)
		return false
	}
}

// Snapshot returns the latest published state
func (r *Runner) Snapshot() *Snapshot {
	return r.snapshot.Load()
}

// Updated signals that a new snapshot was published, coalescing bursts
func (r *Runner) Updated() <-chan struct{} {
	return r.updated
}

func (r *Runner) loop() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopChan:
			return

		case cmd := <-r.commands:
			err := r.apply(cmd)
			if err != nil && !errors.Is(err, ErrRejectedMove) {
				log.Printf("[%s] command %d: %v", r.game.SessionID(), cmd.Kind, err)
			}
			// Publish first so a caller waiting on Result sees the new snapshot
			r.publish()
			if cmd.Result != nil {
				cmd.Result <- err
			}

		case <-ticker.C:
			if r.game.Advance(r.clock.Now()) > 0 || r.dirty {
				r.publish()
			}
		}
	}
}

// apply runs one command against the game
func (r *Runner) apply(cmd Command) error {
	r.statCommands.Add(1)
	switch cmd.Kind {
	case CmdMove:
		if !r.game.Move(cmd.Dir) {
			return ErrRejectedMove
		}
		return nil
	case CmdStart:
		return r.game.Start()
	case CmdRestart:
		return r.game.Restart()
	case CmdAdvance:
		return r.game.AdvanceLevel()
	case CmdResolve:
		return r.game.Resolve(cmd.Choice, cmd.Text)
	case CmdMenu:
		return r.game.ReturnToMenu()
	default:
		return fmt.Errorf("unknown command kind %d", cmd.Kind)
	}
}

// publish stores a fresh snapshot, dispatches pending events and wakes the frontend
func (r *Runner) publish() {
	r.dirty = false
	snap := r.game.Snapshot()
	r.snapshot.Store(snap)

	r.statStateTimers.Store(int64(snap.StateTimers))
	r.statLevelTimers.Store(int64(snap.LevelTimers))
	r.statStale.Store(r.game.sched.Stale())
	r.statLostEvents.Store(int64(r.game.queue.Dropped()))

	if r.router != nil {
		r.statEvents.Add(int64(r.router.DispatchAll(snap)))
	}

	select {
	case r.updated <- struct{}{}:
	default:
	}
}
