package behavior

import "github.com/samdwyer/colonyband/internal/entity"

// waitSeconds is how long a pop holds in Waiting before drifting back to
// autonomous idle behavior.
const waitSeconds = 10.0

// wanderTimeoutSeconds bounds a single wander leg so a pop blocked by
// terrain gives up rather than walking in place forever.
const wanderTimeoutSeconds = 10.0

// enterIdle puts the pop in Idle with a randomized wander countdown drawn
// from its profile's idle range.
func (c *Context) enterIdle(p *entity.Pop) {
	c.transition(p, entity.StateIdle)
	p.ClearTravelTarget()
	span := p.Settings.IdleMaxTicks - p.Settings.IdleMinTicks
	p.StateTimer = p.Settings.IdleMinTicks
	if span > 0 {
		p.StateTimer += c.Rng.Intn(span + 1)
	}
}

// tickIdle counts down the idle timer, then picks a random nearby point and
// starts wandering toward it.
func (c *Context) tickIdle(p *entity.Pop) {
	if p.StateTimer > 0 {
		p.StateTimer--
		return
	}

	tx, ty := c.World.RandomPointNear(p.X, p.Y, p.Settings.WanderRadius)
	p.SetTravelTarget(tx, ty)
	p.StateTimer = int(wanderTimeoutSeconds * float64(c.TPS))
	c.transition(p, entity.StateWandering)
}

// tickWandering walks toward the wander point; reaching it or timing out
// drops back to Idle.
func (c *Context) tickWandering(p *entity.Pop) {
	if !p.HasTarget || p.StateTimer <= 0 {
		c.enterIdle(p)
		return
	}
	p.StateTimer--
	if p.StepToward(p.TargetX, p.TargetY, c.speedPerTick(p.EffectiveSpeed(false))) {
		c.enterIdle(p)
	}
}

// enterWaiting holds the pop in place for a while.
func (c *Context) enterWaiting(p *entity.Pop) {
	c.transition(p, entity.StateWaiting)
	p.ClearTravelTarget()
	p.StateTimer = int(waitSeconds * float64(c.TPS))
}

// tickWaiting holds position until the wait expires, then returns to Idle.
// A new command can overwrite Waiting at any point.
func (c *Context) tickWaiting(p *entity.Pop) {
	if p.StateTimer > 0 {
		p.StateTimer--
		return
	}
	c.enterIdle(p)
}
