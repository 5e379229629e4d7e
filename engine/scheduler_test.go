package engine

import (
	"reflect"
	"testing"
	"time"
)

func TestSchedulerOneShotOrdering(t *testing.T) {
	clock := NewMockTimeProvider(testEpoch)
	s := NewScheduler(clock)

	var fired []string
	rec := func(name string) TimerFunc {
		return func(time.Time) { fired = append(fired, name) }
	}
	s.After(ScopeLevel, "c", 30*time.Millisecond, rec("c"))
	s.After(ScopeLevel, "a", 10*time.Millisecond, rec("a"))
	s.After(ScopeState, "b", 10*time.Millisecond, rec("b"))

	if n := s.Advance(clock.Advance(5 * time.Millisecond)); n != 0 {
		t.Fatalf("nothing should be due, fired %d", n)
	}
	s.Advance(clock.Advance(100 * time.Millisecond))

	// Equal due times fire in arming order
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(fired, want) {
		t.Errorf("fired %v, want %v", fired, want)
	}
	if s.Live(ScopeLevel)+s.Live(ScopeState) != 0 {
		t.Error("one-shot timers should be removed after firing")
	}
}

func TestSchedulerIntervalCatchUp(t *testing.T) {
	clock := NewMockTimeProvider(testEpoch)
	s := NewScheduler(clock)

	var ats []time.Time
	s.Every(ScopeState, "tick", time.Second, func(at time.Time) { ats = append(ats, at) })

	// Two periods late: catch up both
	s.Advance(clock.Advance(2 * time.Second))
	if len(ats) != 2 {
		t.Fatalf("want 2 catch-up ticks, got %d", len(ats))
	}
	if !ats[0].Equal(testEpoch.Add(time.Second)) || !ats[1].Equal(testEpoch.Add(2*time.Second)) {
		t.Errorf("ticks at %v", ats)
	}

	// Far behind: one tick then re-phase to now+interval
	ats = nil
	now := clock.Advance(10 * time.Second)
	s.Advance(now)
	if len(ats) != 1 {
		t.Fatalf("want 1 tick after a long stall, got %d", len(ats))
	}
	ats = nil
	s.Advance(clock.Advance(999 * time.Millisecond))
	if len(ats) != 0 {
		t.Fatal("re-phased interval fired early")
	}
	s.Advance(clock.Advance(time.Millisecond))
	if len(ats) != 1 || !ats[0].Equal(now.Add(time.Second)) {
		t.Errorf("re-phased tick at %v, want %v", ats, now.Add(time.Second))
	}
}

func TestSchedulerCancelScope(t *testing.T) {
	clock := NewMockTimeProvider(testEpoch)
	s := NewScheduler(clock)

	fired := 0
	count := func(time.Time) { fired++ }
	s.Every(ScopeState, "frame", 16*time.Millisecond, count)
	s.After(ScopeLevel, "restore", time.Second, count)
	keep := s.After(ScopeLevel, "immunity", time.Second, count)

	if !s.Cancel(keep) || s.Cancel(keep) {
		t.Error("Cancel should succeed exactly once")
	}

	stateEpoch, levelEpoch := s.Epoch(ScopeState), s.Epoch(ScopeLevel)
	s.CancelScope(ScopeLevel)

	if s.Live(ScopeState) != 0 || s.Live(ScopeLevel) != 0 {
		t.Errorf("live timers after CancelScope: state=%d level=%d", s.Live(ScopeState), s.Live(ScopeLevel))
	}
	if s.Epoch(ScopeState) != stateEpoch+1 || s.Epoch(ScopeLevel) != levelEpoch+1 {
		t.Error("CancelScope(level) should bump both epochs")
	}

	s.Advance(clock.Advance(5 * time.Second))
	if fired != 0 {
		t.Errorf("cancelled timers fired %d times", fired)
	}
}

func TestSchedulerCallbackCancelsOwnScope(t *testing.T) {
	clock := NewMockTimeProvider(testEpoch)
	s := NewScheduler(clock)

	later := 0
	s.Every(ScopeState, "bugs", time.Second, func(time.Time) { s.CancelScope(ScopeState) })
	s.After(ScopeState, "later", time.Second, func(time.Time) { later++ })

	s.Advance(clock.Advance(3 * time.Second))
	if later != 0 {
		t.Error("timer in a cancelled scope fired within the same Advance")
	}
	if s.Live(ScopeState) != 0 {
		t.Errorf("live = %d", s.Live(ScopeState))
	}
}

func TestSchedulerNames(t *testing.T) {
	s := NewScheduler(NewMockTimeProvider(testEpoch))
	s.Every(ScopeState, "frame", time.Second, func(time.Time) {})
	s.Every(ScopeState, "bugs", time.Second, func(time.Time) {})
	if got := s.Names(ScopeState); !reflect.DeepEqual(got, []string{"bugs", "frame"}) {
		t.Errorf("names = %v", got)
	}
}

func TestSchedulerEveryRejectsZeroInterval(t *testing.T) {
	s := NewScheduler(NewMockTimeProvider(testEpoch))
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero interval")
		}
	}()
	s.Every(ScopeState, "spin", 0, func(time.Time) {})
}
