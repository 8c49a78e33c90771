package world

import (
	"github.com/google/uuid"

	"github.com/samdwyer/colonyband/internal/gamedata"
)

// Slot is one claimable interaction point on a structure. At most one pop
// occupies a slot at any time; OccupiedBy holds that pop's id or "".
type Slot struct {
	DX, DY     float64 // Offset from the structure's position
	TypeTag    string  // Facing/animation tag (e.g., "forage_left")
	OccupiedBy string
}

// Structure is a live world object (bush, stockpile) built from a
// StructureDef. Slot state and resource counts are mutable; the def is not.
type Structure struct {
	ID  string
	Def *gamedata.StructureDef

	X, Y int // Tile position

	// ResourceCount is the remaining harvestable units (bushes).
	ResourceCount int

	slots []Slot

	// Stockpile storage: units stored per item kind, bounded by Def.Capacity
	// in total units.
	stored      map[string]int
	storedTotal int
}

// NewStructure builds a structure instance from a definition. Returns nil
// when the definition is absent; the spawn request simply fails.
func NewStructure(def *gamedata.StructureDef, x, y int) *Structure {
	if def == nil {
		return nil
	}
	slots := make([]Slot, len(def.Slots))
	for i, sd := range def.Slots {
		slots[i] = Slot{DX: sd.DX, DY: sd.DY, TypeTag: sd.TypeTag}
	}
	return &Structure{
		ID:            uuid.NewString(),
		Def:           def,
		X:             x,
		Y:             y,
		ResourceCount: def.ResourceCount,
		slots:         slots,
		stored:        make(map[string]int),
	}
}

// IsBush reports whether the structure is a harvestable resource node.
func (s *Structure) IsBush() bool {
	return s.Def.Kind == gamedata.KindBush
}

// IsStockpile reports whether the structure accepts deposits.
func (s *Structure) IsStockpile() bool {
	return s.Def.Kind == gamedata.KindStockpile
}

// Depleted reports whether a bush has nothing left to harvest.
func (s *Structure) Depleted() bool {
	return s.ResourceCount <= 0
}

// Harvest removes up to the def's yield-per-cycle from the resource count and
// returns the units actually yielded. Once the count reaches zero, repeated
// calls yield nothing.
func (s *Structure) Harvest() int {
	if s.ResourceCount <= 0 {
		return 0
	}
	yield := s.Def.YieldPerCycle
	if yield <= 0 {
		yield = 1
	}
	if yield > s.ResourceCount {
		yield = s.ResourceCount
	}
	s.ResourceCount -= yield
	return yield
}

// Deposit stores up to qty units of kind, bounded by remaining capacity.
// Returns the quantity accepted and whether anything was accepted.
func (s *Structure) Deposit(kind string, qty int) (accepted int, ok bool) {
	if qty <= 0 || !s.IsStockpile() {
		return 0, false
	}
	room := s.Def.Capacity - s.storedTotal
	if room <= 0 {
		return 0, false
	}
	accepted = qty
	if accepted > room {
		accepted = room
	}
	s.stored[kind] += accepted
	s.storedTotal += accepted
	return accepted, true
}

// Stored returns the units of kind held by a stockpile.
func (s *Structure) Stored(kind string) int {
	return s.stored[kind]
}

// StoredTotal returns the total units held by a stockpile.
func (s *Structure) StoredTotal() int {
	return s.storedTotal
}

// HasRoom reports whether a stockpile can accept at least one more unit.
func (s *Structure) HasRoom() bool {
	return s.IsStockpile() && s.storedTotal < s.Def.Capacity
}

// =============================================================================
// Interaction slots
// =============================================================================

// SlotCount returns the number of interaction points on the structure.
func (s *Structure) SlotCount() int {
	return len(s.slots)
}

// Slots returns a copy of the slot array for inspection.
func (s *Structure) Slots() []Slot {
	out := make([]Slot, len(s.slots))
	copy(out, s.slots)
	return out
}

// FreeSlotIndex scans slots in index order and returns the first free one.
// Lowest index wins; fairness is index-order, not arrival-order.
func (s *Structure) FreeSlotIndex() (int, bool) {
	for i := range s.slots {
		if s.slots[i].OccupiedBy == "" {
			return i, true
		}
	}
	return 0, false
}

// ClaimSlot marks the slot occupied by popID iff it is currently free.
// Returns false on contention or an invalid index.
func (s *Structure) ClaimSlot(index int, popID string) bool {
	if index < 0 || index >= len(s.slots) || popID == "" {
		return false
	}
	if s.slots[index].OccupiedBy != "" {
		return false
	}
	s.slots[index].OccupiedBy = popID
	return true
}

// ReleaseSlot clears the slot only if popID currently holds it, so one pop
// can never release another's claim. Idempotent on already-free slots.
func (s *Structure) ReleaseSlot(index int, popID string) {
	if index < 0 || index >= len(s.slots) {
		return
	}
	if s.slots[index].OccupiedBy == popID {
		s.slots[index].OccupiedBy = ""
	}
}

// SlotOwnedBy returns the index of the slot popID holds on this structure.
func (s *Structure) SlotOwnedBy(popID string) (int, bool) {
	if popID == "" {
		return 0, false
	}
	for i := range s.slots {
		if s.slots[i].OccupiedBy == popID {
			return i, true
		}
	}
	return 0, false
}

// ReleaseAllHeldBy releases every slot held by popID. Used when a pop is
// destroyed so claims can never leak.
func (s *Structure) ReleaseAllHeldBy(popID string) {
	if popID == "" {
		return
	}
	for i := range s.slots {
		if s.slots[i].OccupiedBy == popID {
			s.slots[i].OccupiedBy = ""
		}
	}
}

// SlotWorldPosition recomputes a slot's absolute position from the
// structure's current position plus the slot offset, so it stays correct if
// structures ever move. Returns ok=false for an invalid index.
func (s *Structure) SlotWorldPosition(index int) (x, y float64, typeTag string, ok bool) {
	if index < 0 || index >= len(s.slots) {
		return 0, 0, "", false
	}
	slot := s.slots[index]
	return float64(s.X) + slot.DX, float64(s.Y) + slot.DY, slot.TypeTag, true
}
