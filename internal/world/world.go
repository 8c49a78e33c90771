package world

import (
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/samdwyer/colonyband/internal/entity"
)

// World owns every live simulation object: terrain, pops, structures, and
// ground items. Iteration order over pops and structures is insertion order,
// which keeps ticks deterministic for a fixed construction sequence.
type World struct {
	Width  int
	Height int
	Tiles  [][]Tile

	rng *rand.Rand

	pops    []*entity.Pop
	popByID map[string]*entity.Pop

	structures []*Structure
	structByID map[string]*Structure

	groundItems []*GroundItem
	itemByID    map[string]*GroundItem
}

// New creates an empty world of the given size, all grass.
func New(width, height int, rng *rand.Rand) *World {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = TileGrass
		}
	}
	return &World{
		Width:      width,
		Height:     height,
		Tiles:      tiles,
		rng:        rng,
		popByID:    make(map[string]*entity.Pop),
		structByID: make(map[string]*Structure),
		itemByID:   make(map[string]*GroundItem),
	}
}

// Dist returns the distance between two points.
func Dist(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// IsPassable returns true if the tile at the given position can be walked on.
func (w *World) IsPassable(x, y int) bool {
	if x < 0 || x >= w.Width || y < 0 || y >= w.Height {
		return false
	}
	return w.Tiles[y][x].IsPassable()
}

// GetTile returns the tile at the given position, water outside the bounds.
func (w *World) GetTile(x, y int) Tile {
	if x < 0 || x >= w.Width || y < 0 || y >= w.Height {
		return TileWater
	}
	return w.Tiles[y][x]
}

// ClampToBounds pins a point inside the map with a one-tile margin.
func (w *World) ClampToBounds(x, y float64) (float64, float64) {
	x = math.Max(1, math.Min(float64(w.Width-2), x))
	y = math.Max(1, math.Min(float64(w.Height-2), y))
	return x, y
}

// RandomPassablePoint returns a random passable tile position.
func (w *World) RandomPassablePoint() (int, int) {
	for i := 0; i < 200; i++ {
		x := w.rng.Intn(w.Width)
		y := w.rng.Intn(w.Height)
		if w.IsPassable(x, y) {
			return x, y
		}
	}
	return w.Width / 2, w.Height / 2
}

// RandomPointNear returns a random passable point within radius of (x, y),
// falling back to the origin when nothing passable turns up.
func (w *World) RandomPointNear(x, y, radius float64) (float64, float64) {
	for i := 0; i < 20; i++ {
		angle := w.rng.Float64() * 2 * math.Pi
		dist := w.rng.Float64() * radius
		nx := x + math.Cos(angle)*dist
		ny := y + math.Sin(angle)*dist
		nx, ny = w.ClampToBounds(nx, ny)
		if w.IsPassable(int(math.Round(nx)), int(math.Round(ny))) {
			return nx, ny
		}
	}
	return x, y
}

// =============================================================================
// Pops
// =============================================================================

// AddPop registers a pop with the world.
func (w *World) AddPop(p *entity.Pop) {
	w.pops = append(w.pops, p)
	w.popByID[p.ID] = p
}

// Pops returns all pops in insertion order.
func (w *World) Pops() []*entity.Pop {
	return w.pops
}

// PopByID returns the pop with the given id, or nil.
func (w *World) PopByID(id string) *entity.Pop {
	return w.popByID[id]
}

// RemovePop destroys a pop, releasing any interaction slots it holds and
// dropping its inventory on the ground. Destruction must never leak a claim.
func (w *World) RemovePop(id string) {
	p := w.popByID[id]
	if p == nil {
		return
	}
	for _, s := range w.structures {
		s.ReleaseAllHeldBy(id)
	}
	for _, stack := range p.Inventory.Stacks() {
		w.AddGroundItem(NewGroundItem(stack.Kind, stack.Quantity, p.X, p.Y))
	}
	delete(w.popByID, id)
	for i, other := range w.pops {
		if other.ID == id {
			w.pops = append(w.pops[:i], w.pops[i+1:]...)
			break
		}
	}
	logrus.WithFields(logrus.Fields{"pop": id, "name": p.Name}).Info("pop removed from world")
}

// PopsWithin returns the pops inside radius of a point, in insertion order.
func (w *World) PopsWithin(x, y, radius float64) []*entity.Pop {
	var result []*entity.Pop
	for _, p := range w.pops {
		if Dist(x, y, p.X, p.Y) <= radius {
			result = append(result, p)
		}
	}
	return result
}

// PopAt returns the pop nearest to a point within maxDist, or nil.
func (w *World) PopAt(x, y, maxDist float64) *entity.Pop {
	var best *entity.Pop
	bestDist := maxDist
	for _, p := range w.pops {
		d := Dist(x, y, p.X, p.Y)
		if d <= bestDist {
			best = p
			bestDist = d
		}
	}
	return best
}

// =============================================================================
// Structures
// =============================================================================

// AddStructure registers a structure with the world. Nil structures (failed
// spawns) are ignored.
func (w *World) AddStructure(s *Structure) {
	if s == nil {
		return
	}
	w.structures = append(w.structures, s)
	w.structByID[s.ID] = s
}

// Structures returns all structures in insertion order.
func (w *World) Structures() []*Structure {
	return w.structures
}

// StructureByID returns the structure with the given id, or nil. A nil
// result means the target vanished; callers fall back to re-planning.
func (w *World) StructureByID(id string) *Structure {
	return w.structByID[id]
}

// RemoveStructure destroys a structure along with its interaction slots.
func (w *World) RemoveStructure(id string) {
	if _, ok := w.structByID[id]; !ok {
		return
	}
	delete(w.structByID, id)
	for i, s := range w.structures {
		if s.ID == id {
			w.structures = append(w.structures[:i], w.structures[i+1:]...)
			break
		}
	}
}

// StructureAtTile returns the structure occupying the given tile, or nil.
func (w *World) StructureAtTile(x, y int) *Structure {
	for _, s := range w.structures {
		if s.X == x && s.Y == y {
			return s
		}
	}
	return nil
}

// NearestHarvestableBush returns the closest bush within maxDist of a point
// that still has resources and at least one free slot, or nil.
func (w *World) NearestHarvestableBush(x, y, maxDist float64) *Structure {
	var best *Structure
	bestDist := maxDist
	for _, s := range w.structures {
		if !s.IsBush() || s.Depleted() {
			continue
		}
		if _, free := s.FreeSlotIndex(); !free {
			continue
		}
		d := Dist(x, y, float64(s.X), float64(s.Y))
		if d <= bestDist {
			best = s
			bestDist = d
		}
	}
	return best
}

// NearestStockpile returns the closest stockpile with room within maxDist of
// a point, or nil.
func (w *World) NearestStockpile(x, y, maxDist float64) *Structure {
	var best *Structure
	bestDist := maxDist
	for _, s := range w.structures {
		if !s.HasRoom() {
			continue
		}
		d := Dist(x, y, float64(s.X), float64(s.Y))
		if d <= bestDist {
			best = s
			bestDist = d
		}
	}
	return best
}

// =============================================================================
// Interaction slot registry (structure-id keyed wrappers)
//
// Every operation on a missing or destroyed structure degrades to a no-op
// failure result. Callers treat that as "task target disappeared" and
// re-plan; nothing here ever panics the tick loop.
// =============================================================================

// FreeSlot returns the lowest-index free slot on the target structure.
func (w *World) FreeSlot(structureID string) (int, bool) {
	s := w.structByID[structureID]
	if s == nil {
		return 0, false
	}
	return s.FreeSlotIndex()
}

// ClaimSlot claims a slot for a pop iff it is currently free.
func (w *World) ClaimSlot(structureID string, index int, popID string) bool {
	s := w.structByID[structureID]
	if s == nil {
		return false
	}
	return s.ClaimSlot(index, popID)
}

// ReleaseSlot releases a slot if the pop holds it. Safe on missing targets.
func (w *World) ReleaseSlot(structureID string, index int, popID string) {
	s := w.structByID[structureID]
	if s == nil {
		return
	}
	s.ReleaseSlot(index, popID)
}

// SlotWorldPosition resolves a slot's absolute position and type tag.
func (w *World) SlotWorldPosition(structureID string, index int) (x, y float64, typeTag string, ok bool) {
	s := w.structByID[structureID]
	if s == nil {
		return 0, 0, "", false
	}
	return s.SlotWorldPosition(index)
}

// SlotOwnedBy finds the slot a pop holds on the target structure, used to
// release a previous claim before granting a new one.
func (w *World) SlotOwnedBy(structureID string, popID string) (int, bool) {
	s := w.structByID[structureID]
	if s == nil {
		return 0, false
	}
	return s.SlotOwnedBy(popID)
}

// =============================================================================
// Ground items
// =============================================================================

// AddGroundItem drops a loose item stack into the world.
func (w *World) AddGroundItem(item *GroundItem) {
	if item == nil || item.Quantity <= 0 {
		return
	}
	w.groundItems = append(w.groundItems, item)
	w.itemByID[item.ID] = item
}

// GroundItems returns all ground items in insertion order.
func (w *World) GroundItems() []*GroundItem {
	return w.groundItems
}

// GroundItemByID returns the ground item with the given id, or nil.
func (w *World) GroundItemByID(id string) *GroundItem {
	return w.itemByID[id]
}

// RemoveGroundItem deletes a ground item (picked up or destroyed).
func (w *World) RemoveGroundItem(id string) {
	if _, ok := w.itemByID[id]; !ok {
		return
	}
	delete(w.itemByID, id)
	for i, item := range w.groundItems {
		if item.ID == id {
			w.groundItems = append(w.groundItems[:i], w.groundItems[i+1:]...)
			break
		}
	}
}

// NearestGroundItem returns the closest ground item within maxDist, or nil.
func (w *World) NearestGroundItem(x, y, maxDist float64) *GroundItem {
	var best *GroundItem
	bestDist := maxDist
	for _, item := range w.groundItems {
		d := Dist(x, y, item.X, item.Y)
		if d <= bestDist {
			best = item
			bestDist = d
		}
	}
	return best
}
