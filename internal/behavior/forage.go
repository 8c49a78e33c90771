package behavior

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/samdwyer/colonyband/internal/entity"
	"github.com/samdwyer/colonyband/internal/world"
)

// tickForaging handles both legs of a forage task: travelling to the claimed
// slot, then working harvest cycles until the bush runs dry or the hauling
// threshold trips.
func (c *Context) tickForaging(p *entity.Pop) {
	target := c.World.StructureByID(p.TargetStructureID)
	if target == nil || !p.HoldsSlot() {
		// Target vanished mid-task; degrade to resume-or-idle.
		p.ClearSlot()
		c.resumeOrIdle(p)
		return
	}

	if p.HasTarget {
		// Still travelling to the slot.
		if p.StepToward(p.TargetX, p.TargetY, c.speedPerTick(p.EffectiveSpeed(false))) {
			p.ClearTravelTarget()
			p.WorkTimer = p.Settings.ForageTicks
			// Arrived: remember the spot so an interruption can come back.
			p.Resume = entity.ForagingAt(p.TargetStructureID, p.SlotIndex, p.SlotTag)
		}
		return
	}

	// Working the slot.
	if p.WorkTimer > 0 {
		p.WorkTimer--
		return
	}

	if target.Depleted() {
		c.finishDepletedForage(p, target)
		return
	}

	yield := target.Harvest()
	if yield > 0 {
		kind := target.Def.ResourceItem
		rejected := p.Inventory.Add(kind, yield, c.unitWeight(kind))
		if rejected > 0 {
			// Overflow policy: drop what does not fit at the pop's feet
			// rather than silently discarding it.
			c.World.AddGroundItem(world.NewGroundItem(kind, rejected, p.X, p.Y))
			logrus.WithFields(logrus.Fields{
				"pop":      p.ID,
				"kind":     kind,
				"rejected": rejected,
			}).Debug("inventory full, dropped overflow on the ground")
		}
	}
	p.WorkTimer = p.Settings.ForageTicks

	if p.Settings.HaulThresholdPct > 0 &&
		p.Inventory.FillRatio()*100 >= p.Settings.HaulThresholdPct {
		c.startHaulFromForage(p)
	}
}

// finishDepletedForage decides the exit when a bush runs dry: haul whatever
// was gathered, or step away and wait if the basket is empty.
func (c *Context) finishDepletedForage(p *entity.Pop, target *world.Structure) {
	kind := target.Def.ResourceItem
	c.releaseHeldSlot(p)
	if p.Inventory.Quantity(kind) > 0 {
		p.HaulPhase = entity.HaulFindItem
		c.transition(p, entity.StateHauling)
		return
	}
	c.stepAway(p)
}

// startHaulFromForage releases the slot, records the forage spot for resume,
// and switches to hauling.
func (c *Context) startHaulFromForage(p *entity.Pop) {
	p.Resume = entity.ForagingAt(p.TargetStructureID, p.SlotIndex, p.SlotTag)
	c.releaseHeldSlot(p)
	p.HaulPhase = entity.HaulFindItem
	c.transition(p, entity.StateHauling)
}

// resumeOrIdle restores an interrupted forage task when its target is still
// standing, has resources, and a slot can be claimed (the same slot when
// free, otherwise any free one). Anything less falls through to Idle.
func (c *Context) resumeOrIdle(p *entity.Pop) {
	if p.Resume.Kind != entity.ResumeForaging {
		c.enterIdle(p)
		return
	}
	task := p.Resume

	target := c.World.StructureByID(task.TargetID)
	if target == nil || !target.IsBush() || target.Depleted() {
		p.Resume.Clear()
		c.enterIdle(p)
		return
	}

	index := task.SlotIndex
	if !c.World.ClaimSlot(task.TargetID, index, p.ID) {
		free, ok := c.World.FreeSlot(task.TargetID)
		if !ok || !c.World.ClaimSlot(task.TargetID, free, p.ID) {
			p.Resume.Clear()
			c.enterIdle(p)
			return
		}
		index = free
	}

	sx, sy, tag, ok := c.World.SlotWorldPosition(task.TargetID, index)
	if !ok {
		c.World.ReleaseSlot(task.TargetID, index, p.ID)
		p.Resume.Clear()
		c.enterIdle(p)
		return
	}

	p.TargetStructureID = task.TargetID
	p.SlotIndex = index
	p.SlotTag = tag
	p.SetTravelTarget(sx, sy)
	c.transition(p, entity.StateForaging)
	c.say(fmt.Sprintf("%s resumes foraging", p.Name))
}
