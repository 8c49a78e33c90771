package behavior

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/samdwyer/colonyband/internal/entity"
)

// DepositTarget accepts item deposits. Satisfied by *world.Structure; tests
// substitute scripted implementations.
type DepositTarget interface {
	Deposit(kind string, qty int) (accepted int, ok bool)
}

// tickHauling advances the haul sub-machine. Each phase is cheap; at most
// one query or one movement step runs per tick.
func (c *Context) tickHauling(p *entity.Pop) {
	switch p.HaulPhase {
	case entity.HaulFindItem:
		c.haulFindItem(p)
	case entity.HaulMoveToItem:
		c.haulMoveToItem(p)
	case entity.HaulCollectItem:
		c.haulCollectItem(p)
	case entity.HaulFindDropoff:
		c.haulFindDropoff(p)
	case entity.HaulMoveToDropoff:
		c.haulMoveToDropoff(p)
	case entity.HaulDepositItem:
		c.haulDepositItem(p)
	default:
		p.HaulPhase = entity.HaulFindItem
	}
}

func (c *Context) haulFindItem(p *entity.Pop) {
	if p.Settings.HaulThresholdPct > 0 &&
		p.Inventory.FillRatio()*100 >= p.Settings.HaulThresholdPct {
		p.HaulPhase = entity.HaulFindDropoff
		return
	}

	item := c.World.NearestGroundItem(p.X, p.Y, p.Stats.PerceptionRadius)
	if item == nil {
		c.resumeOrIdle(p)
		return
	}
	p.TargetItemID = item.ID
	p.SetTravelTarget(item.X, item.Y)
	p.HaulPhase = entity.HaulMoveToItem
}

func (c *Context) haulMoveToItem(p *entity.Pop) {
	item := c.World.GroundItemByID(p.TargetItemID)
	if item == nil {
		// Someone else got there first; re-plan.
		p.TargetItemID = ""
		p.ClearTravelTarget()
		p.HaulPhase = entity.HaulFindItem
		return
	}
	if p.StepToward(item.X, item.Y, c.speedPerTick(p.EffectiveSpeed(false))) {
		p.ClearTravelTarget()
		p.HaulPhase = entity.HaulCollectItem
	}
}

func (c *Context) haulCollectItem(p *entity.Pop) {
	item := c.World.GroundItemByID(p.TargetItemID)
	p.TargetItemID = ""
	if item == nil {
		p.HaulPhase = entity.HaulFindItem
		return
	}

	rejected := p.Inventory.Add(item.Kind, item.Quantity, c.unitWeight(item.Kind))
	if rejected == item.Quantity {
		// Nothing fit at all.
		logrus.WithFields(logrus.Fields{"pop": p.ID, "kind": item.Kind}).
			Debug("inventory cannot fit ground item")
		if !p.Inventory.IsEmpty() {
			p.HaulPhase = entity.HaulFindDropoff
		} else {
			p.HaulPhase = entity.HaulFindItem
		}
		return
	}

	if rejected > 0 {
		// Partial pickup: the remainder stays on the ground for later.
		item.Quantity = rejected
	} else {
		c.World.RemoveGroundItem(item.ID)
	}

	if p.Settings.HaulThresholdPct > 0 &&
		p.Inventory.FillRatio()*100 >= p.Settings.HaulThresholdPct {
		p.HaulPhase = entity.HaulFindDropoff
		return
	}
	p.HaulPhase = entity.HaulFindItem
}

func (c *Context) haulFindDropoff(p *entity.Pop) {
	if p.Inventory.IsEmpty() {
		p.HaulPhase = entity.HaulFindItem
		return
	}

	stockpile := c.World.NearestStockpile(p.X, p.Y, p.Stats.PerceptionRadius)
	if stockpile == nil {
		c.resumeOrIdle(p)
		return
	}

	index, ok := stockpile.FreeSlotIndex()
	if !ok {
		// All delivery slots taken; try again next tick.
		return
	}
	if !stockpile.ClaimSlot(index, p.ID) {
		return
	}
	sx, sy, tag, ok := stockpile.SlotWorldPosition(index)
	if !ok {
		stockpile.ReleaseSlot(index, p.ID)
		return
	}
	p.TargetStructureID = stockpile.ID
	p.SlotIndex = index
	p.SlotTag = tag
	p.SetTravelTarget(sx, sy)
	p.HaulPhase = entity.HaulMoveToDropoff
}

func (c *Context) haulMoveToDropoff(p *entity.Pop) {
	sx, sy, _, ok := c.World.SlotWorldPosition(p.TargetStructureID, p.SlotIndex)
	if !ok {
		// Stockpile vanished; drop the claim reference and re-plan.
		p.ClearSlot()
		p.ClearTravelTarget()
		p.HaulPhase = entity.HaulFindDropoff
		return
	}
	if p.StepToward(sx, sy, c.speedPerTick(p.EffectiveSpeed(false))) {
		p.ClearTravelTarget()
		p.HaulPhase = entity.HaulDepositItem
	}
}

func (c *Context) haulDepositItem(p *entity.Pop) {
	stockpile := c.World.StructureByID(p.TargetStructureID)
	if stockpile == nil {
		p.ClearSlot()
		p.HaulPhase = entity.HaulFindDropoff
		return
	}

	c.DepositAll(p, stockpile)

	c.releaseHeldSlot(p)
	p.HaulPhase = entity.HaulFindItem
}

// DepositAll empties the pop's inventory into a deposit target, stack by
// stack in insertion order. Each stack's deposit is atomic: on success
// exactly the accepted quantity is removed, on refusal the stack is left
// untouched and the loop continues with the next stack.
func (c *Context) DepositAll(p *entity.Pop, target DepositTarget) {
	for _, stack := range p.Inventory.Stacks() {
		accepted, ok := target.Deposit(stack.Kind, stack.Quantity)
		if !ok || accepted <= 0 {
			continue
		}
		p.Inventory.Remove(stack.Kind, accepted)
		c.say(fmt.Sprintf("%s deposits %d %s", p.Name, accepted, stack.Kind))
		logrus.WithFields(logrus.Fields{
			"pop":      p.ID,
			"kind":     stack.Kind,
			"accepted": accepted,
		}).Debug("deposited stack")
	}
}
