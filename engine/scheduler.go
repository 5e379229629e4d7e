package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/lixenwraith/git-conflict/constants"
)

// Scope groups timers by the lifetime they are bound to
type Scope uint8

const (
	// ScopeState timers live while the Playing state is active (frame driver, bug ticker)
	ScopeState Scope = iota
	// ScopeLevel timers live while a level instance exists (effect expiry, bug restore)
	ScopeLevel
	scopeCount
)

func (s Scope) String() string {
	switch s {
	case ScopeState:
		return "state"
	case ScopeLevel:
		return "level"
	default:
		return fmt.Sprintf("scope(%d)", uint8(s))
	}
}

// Handle identifies a scheduled timer, zero is never issued
type Handle uint64

// TimerFunc receives the time the timer was due, not the time Advance was called
type TimerFunc func(at time.Time)

type timer struct {
	id       Handle
	scope    Scope
	epoch    uint64
	name     string
	due      time.Time
	interval time.Duration // 0 = one-shot
	fn       TimerFunc
}

// Scheduler is a deterministic, epoch-tagged timer set driven by Advance
// Every timer captures its scope's epoch at creation; CancelScope bumps the epoch so any
// callback that survived removal is a no-op
// Not safe for concurrent use, the game owner serializes access
type Scheduler struct {
	clock  TimeProvider
	timers map[Handle]*timer
	nextID Handle
	epochs [scopeCount]uint64
	stale  int64
}

// NewScheduler creates a scheduler reading "now" from clock when timers are armed
func NewScheduler(clock TimeProvider) *Scheduler {
	return &Scheduler{
		clock:  clock,
		timers: make(map[Handle]*timer),
	}
}

// After arms a one-shot timer d from now
func (s *Scheduler) After(scope Scope, name string, d time.Duration, fn TimerFunc) Handle {
	return s.add(scope, name, d, 0, fn)
}

// Every arms an interval timer firing every d, first firing d from now
// A non-positive interval is a programming error
func (s *Scheduler) Every(scope Scope, name string, d time.Duration, fn TimerFunc) Handle {
	if d <= 0 {
		panic(fmt.Sprintf("scheduler: interval %q must be positive, got %v", name, d))
	}
	return s.add(scope, name, d, d, fn)
}

func (s *Scheduler) add(scope Scope, name string, d, interval time.Duration, fn TimerFunc) Handle {
	s.nextID++
	t := &timer{
		id:       s.nextID,
		scope:    scope,
		epoch:    s.epochs[scope],
		name:     name,
		due:      s.clock.Now().Add(d),
		interval: interval,
		fn:       fn,
	}
	s.timers[t.id] = t
	return t.id
}

// Cancel removes a single timer, returns false if it was not live
func (s *Scheduler) Cancel(h Handle) bool {
	if _, ok := s.timers[h]; !ok {
		return false
	}
	delete(s.timers, h)
	return true
}

// CancelScope removes every timer of the scope and advances its epoch
// Cancelling ScopeLevel also cancels ScopeState, a state never outlives its level
func (s *Scheduler) CancelScope(scope Scope) {
	if scope == ScopeLevel {
		s.CancelScope(ScopeState)
	}
	for id, t := range s.timers {
		if t.scope == scope {
			delete(s.timers, id)
		}
	}
	s.epochs[scope]++
}

// CancelAll cancels every scope
func (s *Scheduler) CancelAll() {
	s.CancelScope(ScopeLevel)
}

// Advance fires every timer due at or before now, in (due, handle) order
// Interval timers catch up at most MaxIntervalLag periods, then re-phase to now+interval
// Returns the number of callbacks run
func (s *Scheduler) Advance(now time.Time) int {
	fired := 0
	for {
		t := s.nextDue(now)
		if t == nil {
			return fired
		}

		if t.epoch != s.epochs[t.scope] {
			delete(s.timers, t.id)
			s.stale++
			continue
		}

		at := t.due
		if t.interval > 0 {
			t.due = t.due.Add(t.interval)
			if now.Sub(t.due) > time.Duration(constants.MaxIntervalLag)*t.interval {
				t.due = now.Add(t.interval)
			}
		} else {
			delete(s.timers, t.id)
		}

		t.fn(at)
		fired++
	}
}

func (s *Scheduler) nextDue(now time.Time) *timer {
	var best *timer
	for _, t := range s.timers {
		if t.due.After(now) {
			continue
		}
		if best == nil || t.due.Before(best.due) || (t.due.Equal(best.due) && t.id < best.id) {
			best = t
		}
	}
	return best
}

// Live counts the timers armed in scope
func (s *Scheduler) Live(scope Scope) int {
	n := 0
	for _, t := range s.timers {
		if t.scope == scope {
			n++
		}
	}
	return n
}

// Pending reports whether h is still armed
func (s *Scheduler) Pending(h Handle) bool {
	_, ok := s.timers[h]
	return ok
}

// Epoch returns the current generation of scope
func (s *Scheduler) Epoch(scope Scope) uint64 {
	return s.epochs[scope]
}

// Stale counts timers discarded at fire time because their epoch had advanced
func (s *Scheduler) Stale() int64 {
	return s.stale
}

// Names lists live timer names in scope, for the debug overlay
func (s *Scheduler) Names(scope Scope) []string {
	var names []string
	for _, t := range s.timers {
		if t.scope == scope {
			names = append(names, t.name)
		}
	}
	sort.Strings(names)
	return names
}
