package obs

import (
	"github.com/samdwyer/colonyband/internal/hazard"
	"github.com/samdwyer/colonyband/internal/world"
)

// Snapshot is one observer frame: enough state to draw the colony remotely.
type Snapshot struct {
	Tick       uint64              `json:"tick"`
	Pops       []PopSnapshot       `json:"pops"`
	Structures []StructureSnapshot `json:"structures"`
	Hazards    []HazardSnapshot    `json:"hazards"`
	Items      []ItemSnapshot      `json:"items"`
}

// PopSnapshot mirrors a pop's observable state.
type PopSnapshot struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	State  string  `json:"state"`
	Health int     `json:"health"`
	Carry  float64 `json:"carry"`
}

// StructureSnapshot mirrors a structure's observable state.
type StructureSnapshot struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	X             int    `json:"x"`
	Y             int    `json:"y"`
	ResourceCount int    `json:"resourceCount"`
	StoredTotal   int    `json:"storedTotal"`
}

// HazardSnapshot mirrors a hazard's observable state.
type HazardSnapshot struct {
	ID     string  `json:"id"`
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Active bool    `json:"active"`
	Inside int     `json:"inside"`
}

// ItemSnapshot mirrors a ground item.
type ItemSnapshot struct {
	ID       string  `json:"id"`
	Kind     string  `json:"kind"`
	Quantity int     `json:"quantity"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// BuildSnapshot captures the current sim state for broadcast.
func BuildSnapshot(tick uint64, w *world.World, hazards []*hazard.Hazard) Snapshot {
	snap := Snapshot{Tick: tick}

	for _, p := range w.Pops() {
		snap.Pops = append(snap.Pops, PopSnapshot{
			ID:     p.ID,
			Name:   p.Name,
			X:      p.X,
			Y:      p.Y,
			State:  p.State.String(),
			Health: p.Stats.Health,
			Carry:  p.Inventory.TotalWeight(),
		})
	}
	for _, s := range w.Structures() {
		snap.Structures = append(snap.Structures, StructureSnapshot{
			ID:            s.ID,
			Type:          s.Def.ID,
			X:             s.X,
			Y:             s.Y,
			ResourceCount: s.ResourceCount,
			StoredTotal:   s.StoredTotal(),
		})
	}
	for _, h := range hazards {
		snap.Hazards = append(snap.Hazards, HazardSnapshot{
			ID:     h.ID,
			Type:   h.Def.ID,
			X:      h.X,
			Y:      h.Y,
			Active: h.IsActive(),
			Inside: h.EntitiesInside(),
		})
	}
	for _, item := range w.GroundItems() {
		snap.Items = append(snap.Items, ItemSnapshot{
			ID:       item.ID,
			Kind:     item.Kind,
			Quantity: item.Quantity,
			X:        item.X,
			Y:        item.Y,
		})
	}
	return snap
}
