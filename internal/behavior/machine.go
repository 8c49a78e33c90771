package behavior

import (
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/colonyband/internal/entity"
)

// TickPop runs one simulation tick for one pop: advance status effects, then
// dispatch to the handler for the pop's current state. Errors inside a
// handler are contained to this pop; the tick loop never aborts for others.
func (c *Context) TickPop(p *entity.Pop) {
	if p == nil || !p.IsAlive() {
		return
	}

	p.TickStatusEffects()
	if !p.IsAlive() {
		return
	}

	switch p.State {
	case entity.StateIdle:
		c.tickIdle(p)
	case entity.StateWandering:
		c.tickWandering(p)
	case entity.StateCommanded:
		c.tickCommanded(p)
	case entity.StateForaging:
		c.tickForaging(p)
	case entity.StateHauling:
		c.tickHauling(p)
	case entity.StateWaiting:
		c.tickWaiting(p)
	default:
		// Declared-but-unimplemented states fall back to idle behavior.
		logrus.WithFields(logrus.Fields{
			"pop":   p.ID,
			"state": p.State.String(),
		}).Debug("unimplemented state, falling back to idle")
		c.enterIdle(p)
	}
}

// transition switches a pop's state with a debug trail.
func (c *Context) transition(p *entity.Pop, to entity.State) {
	if p.State == to {
		return
	}
	logrus.WithFields(logrus.Fields{
		"pop":  p.ID,
		"name": p.Name,
		"from": p.State.String(),
		"to":   to.String(),
		"tick": c.Tick,
	}).Debug("state transition")
	p.State = to
}
