package gamedata

import "github.com/gdamore/tcell/v2"

// ScoreRange bounds an ability score rolled at spawn time.
type ScoreRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// StatBlock holds the profile-sourced base stats for a pop type.
// Every field is optional; missing fields fall back to the documented
// defaults in the entity package so partial or modded data still spawns.
type StatBlock struct {
	BaseMaxHealth     *int     `json:"baseMaxHealth,omitempty"`     // default 50
	WalkSpeed         *float64 `json:"walkSpeed,omitempty"`         // tiles/sec, default 1.2
	RunSpeed          *float64 `json:"runSpeed,omitempty"`          // tiles/sec, default 2.4
	PerceptionRadius  *float64 `json:"perceptionRadius,omitempty"`  // tiles, default 12
	BaseCarryCapacity *float64 `json:"baseCarryCapacity,omitempty"` // weight units, default 0
	CarryPerStrength  *float64 `json:"carryPerStrength,omitempty"`  // default 2
}

// BehaviorSettings holds the profile-sourced AI tuning for a pop type.
// All fields optional, same defaulting contract as StatBlock.
type BehaviorSettings struct {
	IdleMinSeconds   *float64 `json:"idleMinSeconds,omitempty"`   // default 2
	IdleMaxSeconds   *float64 `json:"idleMaxSeconds,omitempty"`   // default 6
	WanderRadius     *float64 `json:"wanderRadius,omitempty"`     // tiles, default 8
	HaulThresholdPct *float64 `json:"haulThresholdPct,omitempty"` // 0-100, default 80
	InteractDistance *float64 `json:"interactDistance,omitempty"` // tiles, default 0.9
	ForageSeconds    *float64 `json:"forageSeconds,omitempty"`    // per harvest cycle, default 2
}

// PopDef defines a colonist type loaded from pops.json.
type PopDef struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`   // Display name for the type (e.g., "Gatherer")
	Glyph        string            `json:"glyph"`  // Single character for rendering
	Color        string            `json:"color"`  // Hex color (e.g., "#E8C170")
	Stats        *StatBlock        `json:"stats,omitempty"`
	Behavior     *BehaviorSettings `json:"behavior,omitempty"`
	Strength     *ScoreRange       `json:"strength,omitempty"`     // default 8-14
	Constitution *ScoreRange       `json:"constitution,omitempty"` // default 8-14
	Traits       []string          `json:"traits,omitempty"`
	Tags         []string          `json:"tags,omitempty"` // Matched against hazard affected tags
	SpawnWeight  int               `json:"spawnWeight"`
}

// GlyphRune returns the glyph as a rune for rendering.
func (d *PopDef) GlyphRune() rune {
	if len(d.Glyph) == 0 {
		return '?'
	}
	return []rune(d.Glyph)[0]
}

// TCellColor returns the pop's color as a tcell color, defaulting to white.
func (d *PopDef) TCellColor() tcell.Color {
	return ColorOrDefault(d.Color, tcell.ColorWhite)
}

// PopsFile represents the structure of pops.json.
type PopsFile struct {
	Pops []PopDef `json:"pops"`
}

// LoadPops loads pop definitions from the embedded pops.json file.
func LoadPops() ([]PopDef, error) {
	file, err := Load[PopsFile]("pops.json")
	if err != nil {
		return nil, err
	}
	return file.Pops, nil
}
