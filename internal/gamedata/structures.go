package gamedata

import "github.com/gdamore/tcell/v2"

// StructureKind distinguishes the roles a structure can play.
type StructureKind string

const (
	// KindBush is a harvestable resource node.
	KindBush StructureKind = "bush"
	// KindStockpile accepts hauled item deposits.
	KindStockpile StructureKind = "stockpile"
)

// SlotDef defines one interaction point on a structure, relative to its origin.
// TypeTag encodes facing so a pop can pick the matching work animation
// (e.g., "forage_left" stands the pop on the left side, facing right).
type SlotDef struct {
	DX      float64 `json:"dx"`
	DY      float64 `json:"dy"`
	TypeTag string  `json:"typeTag"`
}

// StructureDef defines a world structure type loaded from structures.json.
type StructureDef struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Glyph         string        `json:"glyph"`
	Color         string        `json:"color"`
	Kind          StructureKind `json:"kind"`
	ResourceItem  string        `json:"resourceItem,omitempty"`  // Item id yielded when harvested (bushes)
	ResourceCount int           `json:"resourceCount,omitempty"` // Starting units of the resource
	YieldPerCycle int           `json:"yieldPerCycle,omitempty"` // Units gained per completed work cycle
	Capacity      int           `json:"capacity,omitempty"`      // Max units accepted (stockpiles)
	Slots         []SlotDef     `json:"slots,omitempty"`
	SpawnWeight   int           `json:"spawnWeight"`
}

// GlyphRune returns the glyph as a rune for rendering.
func (d *StructureDef) GlyphRune() rune {
	if len(d.Glyph) == 0 {
		return '?'
	}
	return []rune(d.Glyph)[0]
}

// TCellColor returns the structure's color as a tcell color, defaulting to white.
func (d *StructureDef) TCellColor() tcell.Color {
	return ColorOrDefault(d.Color, tcell.ColorWhite)
}

// StructuresFile represents the structure of structures.json.
type StructuresFile struct {
	Structures []StructureDef `json:"structures"`
}

// LoadStructures loads structure definitions from the embedded structures.json file.
func LoadStructures() ([]StructureDef, error) {
	file, err := Load[StructuresFile]("structures.json")
	if err != nil {
		return nil, err
	}
	return file.Structures, nil
}
