package engine

import (
	"time"

	"github.com/lixenwraith/git-conflict/events"
	"github.com/lixenwraith/git-conflict/grid"
	"github.com/lixenwraith/git-conflict/level"
)

func (g *Game) collectPowerup(now time.Time) {
	at := g.player
	spot, ok := g.lvl.tmpl.PowerupAt(at)
	g.lvl.grid.Clear(at.X, at.Y)
	if !ok {
		return
	}

	switch spot.Kind {
	case level.RemoveBugs:
		g.removeBugs(now)
	case level.Immunity:
		g.grantImmunity(now)
	case level.AutoResolve:
		// Latched once, a second pickup before a conflict adds nothing
		if !g.lvl.hasEffect(level.AutoResolve) {
			g.lvl.effects = append(g.lvl.effects, &Effect{Kind: level.AutoResolve})
		}
	}

	g.addScore(g.rules.PowerupPoints)
	g.emit(events.EventPowerupCollected, &events.PowerupPayload{At: at, Kind: spot.Kind})
}

// removeBugs lifts every bug tile and stops the ticker until the restore timer fires
// A second pickup while suppressed re-arms the restore from now
func (g *Game) removeBugs(now time.Time) {
	li := g.lvl
	for _, b := range li.bugs {
		if li.grid.InBounds(b.Pos.X, b.Pos.Y) && li.grid.AtPoint(b.Pos) == grid.Bug {
			li.lifted = append(li.lifted, suppressedBug{bug: b, at: b.Pos})
		}
	}
	li.grid.ClearAll(grid.Bug)

	g.stopBugTicker()
	li.suppressed = true
	li.restoreDue = false

	if li.restore != 0 {
		g.sched.Cancel(li.restore)
	}
	li.removeKind(level.RemoveBugs)
	li.effects = append(li.effects, &Effect{Kind: level.RemoveBugs, ExpiresAt: now.Add(g.rules.RestoreDelay)})
	li.restore = g.sched.After(ScopeLevel, "restore-bugs", g.rules.RestoreDelay, g.onRestoreDue)
}

// onRestoreDue runs from the level-scoped timer, so the level is still the one that armed it
func (g *Game) onRestoreDue(time.Time) {
	g.lvl.restore = 0
	if g.State() != StatePlaying {
		g.lvl.restoreDue = true
		return
	}
	g.restoreBugs()
	g.startBugTicker()
}

// restoreBugs puts lifted bugs back on their cells that are still Empty
// The ticker is started by the caller
func (g *Game) restoreBugs() {
	li := g.lvl
	count := 0
	for _, l := range li.lifted {
		l.bug.Pos = l.at
		if emptyAt(li.grid, l.at) {
			li.grid.Set(l.at.X, l.at.Y, grid.Bug)
			count++
		}
	}
	li.lifted = nil
	li.suppressed = false
	li.restoreDue = false
	li.removeKind(level.RemoveBugs)

	g.emit(events.EventBugsRestored, &events.BugsRestoredPayload{Count: count})
	g.emit(events.EventPowerupExpired, &events.PowerupPayload{Kind: level.RemoveBugs})
}

// grantImmunity adds an independent Immunity entry with its own expiry timer
func (g *Game) grantImmunity(now time.Time) {
	e := &Effect{Kind: level.Immunity, ExpiresAt: now.Add(g.rules.ImmunityDuration)}
	g.lvl.effects = append(g.lvl.effects, e)
	g.sched.After(ScopeLevel, "immunity", g.rules.ImmunityDuration, func(time.Time) {
		if g.lvl != nil && g.lvl.removeEffect(e) {
			g.emit(events.EventPowerupExpired, &events.PowerupPayload{Kind: level.Immunity})
		}
	})
}
