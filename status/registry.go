package status

import (
	"fmt"
	"sync/atomic"
)

// Well-known metric keys written by the engine and frontends
const (
	KeyFrames         = "engine.frames"
	KeyBugTicks       = "engine.bug_ticks"
	KeyStateTimers    = "engine.timers.state"
	KeyLevelTimers    = "engine.timers.level"
	KeyStaleCallbacks = "engine.stale_callbacks"
	KeyCommands       = "runner.commands"
	KeyDroppedInput   = "runner.dropped_commands"
	KeyEvents         = "runner.events"
	KeyDroppedEvents  = "runner.dropped_events"
	KeyState          = "game.state"
	KeyVolume         = "audio.volume"
	KeyMuted          = "audio.muted"
)

// Registry is the central metrics facade
// Owners cache pointers during init; update loops write directly to atomics
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Lines formats every metric as "key: value" for the debug overlay
// Order is strings, ints, floats, bools, each sorted by key
func (r *Registry) Lines() []string {
	lines := make([]string, 0, r.TotalCount())
	r.Strings.Range(func(k string, v *AtomicString) {
		lines = append(lines, fmt.Sprintf("%s: %s", k, v.Load()))
	})
	r.Ints.Range(func(k string, v *atomic.Int64) {
		lines = append(lines, fmt.Sprintf("%s: %d", k, v.Load()))
	})
	r.Floats.Range(func(k string, v *AtomicFloat) {
		lines = append(lines, fmt.Sprintf("%s: %.2f", k, v.Get()))
	})
	r.Bools.Range(func(k string, v *atomic.Bool) {
		lines = append(lines, fmt.Sprintf("%s: %t", k, v.Load()))
	})
	return lines
}

func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}
