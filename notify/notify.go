// Package notify turns game events into short-lived on-screen notices
package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/lixenwraith/git-conflict/constants"
	"github.com/lixenwraith/git-conflict/events"
	"github.com/lixenwraith/git-conflict/level"
)

// MaxNotices caps the visible stack, the oldest notice is dropped first
const MaxNotices = 4

// Tone selects the notice color
type Tone uint8

const (
	ToneInfo Tone = iota
	ToneGood
	ToneBad
)

// Notice is one line of feedback with an expiry on the game clock
type Notice struct {
	Text    string
	Tone    Tone
	Expires time.Time
}

// Board collects notices from the event router
// Safe for concurrent use: the runner goroutine writes while the draw loop reads
type Board[T any] struct {
	mu      sync.Mutex
	notices []Notice
}

// NewBoard creates an empty board
func NewBoard[T any]() *Board[T] {
	return &Board[T]{}
}

// Add posts a notice stamped at now
func (b *Board[T]) Add(text string, tone Tone, now time.Time, ttl time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.notices = append(b.notices, Notice{Text: text, Tone: tone, Expires: now.Add(ttl)})
	if over := len(b.notices) - MaxNotices; over > 0 {
		b.notices = b.notices[over:]
	}
}

// Active returns notices still visible at now, oldest first, and prunes the rest
func (b *Board[T]) Active(now time.Time) []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()

	kept := b.notices[:0]
	for _, n := range b.notices {
		if n.Expires.After(now) {
			kept = append(kept, n)
		}
	}
	b.notices = kept
	return append([]Notice(nil), kept...)
}

// Clear drops every notice
func (b *Board[T]) Clear() {
	b.mu.Lock()
	b.notices = nil
	b.mu.Unlock()
}

func (b *Board[T]) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventLevelStarted,
		events.EventPowerupCollected,
		events.EventPowerupExpired,
		events.EventBugHit,
		events.EventBugsRestored,
		events.EventConflictResolved,
	}
}

func (b *Board[T]) HandleEvent(_ T, ev events.GameEvent) {
	now := ev.Timestamp
	switch p := ev.Payload.(type) {
	case *events.LevelPayload:
		b.Clear()
		b.Add(fmt.Sprintf("Level %d: %s", p.Index+1, p.Name), ToneInfo, now, constants.LevelMessageTimeout)
		if p.Message != "" {
			b.Add(p.Message, ToneInfo, now, constants.LevelMessageTimeout)
		}

	case *events.PowerupPayload:
		if ev.Type == events.EventPowerupExpired {
			b.Add(fmt.Sprintf("%s wore off", p.Kind.Name()), ToneInfo, now, constants.NotificationTimeout)
			return
		}
		b.Add(fmt.Sprintf("%s! %s", p.Kind.Name(), p.Kind.Effect()), ToneGood, now, constants.NotificationTimeout)

	case *events.BugHitPayload:
		b.Add(fmt.Sprintf("Bug hit! %d lives left", p.LivesRemaining), ToneBad, now, constants.NotificationTimeout)

	case *events.BugsRestoredPayload:
		b.Add(fmt.Sprintf("%d bugs are back", p.Count), ToneBad, now, constants.NotificationTimeout)

	case *events.ConflictResolvedPayload:
		switch {
		case p.Auto:
			b.Add(fmt.Sprintf("%s resolved the conflict: +%d", level.AutoResolve.Name(), p.Points), ToneGood, now, constants.NotificationTimeout)
		case p.Exact:
			b.Add(fmt.Sprintf("Perfect merge: +%d", p.Points), ToneGood, now, constants.NotificationTimeout)
		default:
			b.Add(fmt.Sprintf("Conflict resolved: +%d", p.Points), ToneGood, now, constants.NotificationTimeout)
		}
	}
}
