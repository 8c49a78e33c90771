package behavior

import (
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/colonyband/internal/entity"
	"github.com/samdwyer/colonyband/internal/gamedata"
)

// IssueMoveCommand orders a pop to a destination. Any held interaction slot
// is released synchronously before the transition completes; a pop that was
// mid-forage records a resume task so it can pick the work back up.
func (c *Context) IssueMoveCommand(p *entity.Pop, x, y float64) {
	if p == nil || !p.IsAlive() {
		return
	}

	if p.State == entity.StateForaging && p.HoldsSlot() {
		p.Resume = entity.ForagingAt(p.TargetStructureID, p.SlotIndex, p.SlotTag)
	}
	c.releaseHeldSlot(p)

	x, y = c.World.ClampToBounds(x, y)
	p.SetTravelTarget(x, y)
	p.TargetItemID = ""
	c.transition(p, entity.StateCommanded)
}

// IssueInteractCommand orders a pop to work a target structure. Bushes start
// a forage task; stockpiles start a haul run. When the target has no free
// slot the command is a no-op and the pop's state is unchanged.
func (c *Context) IssueInteractCommand(p *entity.Pop, targetID string) {
	if p == nil || !p.IsAlive() {
		return
	}

	target := c.World.StructureByID(targetID)
	if target == nil {
		logrus.WithFields(logrus.Fields{"pop": p.ID, "target": targetID}).
			Debug("interact command against vanished target ignored")
		return
	}

	switch target.Def.Kind {
	case gamedata.KindBush:
		index, ok := c.World.FreeSlot(targetID)
		if !ok {
			// Slot contention: the command becomes a no-op.
			logrus.WithFields(logrus.Fields{"pop": p.ID, "target": targetID}).
				Debug("no free interaction slot, interact command ignored")
			return
		}

		// Release any previous claim before granting a new one.
		c.releaseHeldSlot(p)
		if !c.World.ClaimSlot(targetID, index, p.ID) {
			return
		}

		sx, sy, tag, ok := c.World.SlotWorldPosition(targetID, index)
		if !ok {
			c.World.ReleaseSlot(targetID, index, p.ID)
			return
		}
		p.TargetStructureID = targetID
		p.SlotIndex = index
		p.SlotTag = tag
		p.SetTravelTarget(sx, sy)
		p.Resume.Clear()
		c.transition(p, entity.StateForaging)

	case gamedata.KindStockpile:
		c.releaseHeldSlot(p)
		p.HaulPhase = entity.HaulFindItem
		if !p.Inventory.IsEmpty() {
			p.HaulPhase = entity.HaulFindDropoff
		}
		c.transition(p, entity.StateHauling)

	default:
		logrus.WithFields(logrus.Fields{"pop": p.ID, "kind": target.Def.Kind}).
			Debug("interact command against unsupported structure kind ignored")
	}
}

// tickCommanded runs toward the ordered destination. On arrival the pop
// resumes an interrupted forage task if one is recorded and still valid,
// otherwise it holds in Waiting.
func (c *Context) tickCommanded(p *entity.Pop) {
	if !p.HasTarget {
		c.enterWaiting(p)
		return
	}
	if p.StepToward(p.TargetX, p.TargetY, c.speedPerTick(p.EffectiveSpeed(true))) {
		p.ClearTravelTarget()
		if !p.Resume.IsNone() {
			c.resumeOrIdle(p)
			return
		}
		c.enterWaiting(p)
	}
}

// releaseHeldSlot drops the pop's claimed slot, if any, and clears the slot
// reference. Safe when the target structure is already gone.
func (c *Context) releaseHeldSlot(p *entity.Pop) {
	if !p.HoldsSlot() {
		return
	}
	c.World.ReleaseSlot(p.TargetStructureID, p.SlotIndex, p.ID)
	p.ClearSlot()
}

// stepAway sends the pop a short walk from its position and clears any
// resume task; used after a bush runs dry with nothing to haul.
func (c *Context) stepAway(p *entity.Pop) {
	p.Resume.Clear()
	tx, ty := c.World.RandomPointNear(p.X, p.Y, 2.5)
	p.SetTravelTarget(tx, ty)
	c.transition(p, entity.StateCommanded)
}
