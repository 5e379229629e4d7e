package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/git-conflict/constants"
	"github.com/lixenwraith/git-conflict/events"
	"github.com/lixenwraith/git-conflict/level"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func dispatch(b *Board[struct{}], evs ...events.GameEvent) {
	q := events.NewEventQueue()
	r := events.NewRouter[struct{}](q)
	r.Register(b)
	for _, ev := range evs {
		q.Push(ev)
	}
	r.DispatchAll(struct{}{})
}

func TestPowerupNoticeExpires(t *testing.T) {
	b := NewBoard[struct{}]()
	dispatch(b, events.GameEvent{
		Type:      events.EventPowerupCollected,
		Payload:   &events.PowerupPayload{Kind: level.Immunity},
		Timestamp: epoch,
	})

	active := b.Active(epoch.Add(time.Second))
	require.Len(t, active, 1)
	assert.True(t, strings.HasPrefix(active[0].Text, level.Immunity.Name()))
	assert.Equal(t, ToneGood, active[0].Tone)

	assert.Empty(t, b.Active(epoch.Add(constants.NotificationTimeout)))
}

func TestLevelStartClearsBoard(t *testing.T) {
	b := NewBoard[struct{}]()
	b.Add("old", ToneBad, epoch, time.Minute)
	dispatch(b, events.GameEvent{
		Type:      events.EventLevelStarted,
		Payload:   &events.LevelPayload{Index: 1, Name: "Merge Request", Message: "Watch out"},
		Timestamp: epoch,
	})

	active := b.Active(epoch)
	require.Len(t, active, 2)
	assert.Equal(t, "Level 2: Merge Request", active[0].Text)
	assert.Equal(t, "Watch out", active[1].Text)

	// Level messages outlive ordinary notices
	assert.Len(t, b.Active(epoch.Add(constants.NotificationTimeout)), 2)
	assert.Empty(t, b.Active(epoch.Add(constants.LevelMessageTimeout)))
}

func TestResolveNoticeVariants(t *testing.T) {
	b := NewBoard[struct{}]()
	dispatch(b,
		events.GameEvent{Type: events.EventConflictResolved, Payload: &events.ConflictResolvedPayload{Points: 50, Auto: true}, Timestamp: epoch},
		events.GameEvent{Type: events.EventConflictResolved, Payload: &events.ConflictResolvedPayload{Points: 150, Exact: true}, Timestamp: epoch},
		events.GameEvent{Type: events.EventConflictResolved, Payload: &events.ConflictResolvedPayload{Points: 100}, Timestamp: epoch},
	)

	active := b.Active(epoch)
	require.Len(t, active, 3)
	assert.Contains(t, active[0].Text, level.AutoResolve.Name())
	assert.Contains(t, active[1].Text, "Perfect merge: +150")
	assert.Contains(t, active[2].Text, "+100")
}

func TestBoardCapsNotices(t *testing.T) {
	b := NewBoard[struct{}]()
	for i := range MaxNotices + 2 {
		b.Add(string(rune('a'+i)), ToneInfo, epoch, time.Minute)
	}
	active := b.Active(epoch)
	require.Len(t, active, MaxNotices)
	assert.Equal(t, "c", active[0].Text)
}

func TestBugNotices(t *testing.T) {
	b := NewBoard[struct{}]()
	dispatch(b,
		events.GameEvent{Type: events.EventBugHit, Payload: &events.BugHitPayload{LivesRemaining: 2}, Timestamp: epoch},
		events.GameEvent{Type: events.EventBugsRestored, Payload: &events.BugsRestoredPayload{Count: 3}, Timestamp: epoch},
		events.GameEvent{Type: events.EventPowerupExpired, Payload: &events.PowerupPayload{Kind: level.RemoveBugs}, Timestamp: epoch},
	)
	active := b.Active(epoch)
	require.Len(t, active, 3)
	assert.Equal(t, "Bug hit! 2 lives left", active[0].Text)
	assert.Equal(t, ToneBad, active[0].Tone)
	assert.Equal(t, "3 bugs are back", active[1].Text)
	assert.Equal(t, level.RemoveBugs.Name()+" wore off", active[2].Text)
}

func TestGameOverMessageStable(t *testing.T) {
	first := GameOverMessage("session-a")
	assert.Equal(t, first, GameOverMessage("session-a"))
	assert.Contains(t, constants.GameOverMessages, first)
	assert.Contains(t, constants.GameOverMessages, GameOverMessage(""))
}
