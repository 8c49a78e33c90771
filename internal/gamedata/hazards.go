package gamedata

import "github.com/gdamore/tcell/v2"

// HazardTrigger enumerates how a hazard activates.
// Only TriggerAlways and manual activation are wired into the controller;
// the rest are declared for data authoring and routed to manual for now.
type HazardTrigger string

const (
	TriggerAlways    HazardTrigger = "always"
	TriggerTouch     HazardTrigger = "touch"
	TriggerProximity HazardTrigger = "proximity"
	TriggerTimer     HazardTrigger = "timer"
	TriggerSignal    HazardTrigger = "signal"
)

// HazardDef defines an area hazard type loaded from hazards.json.
type HazardDef struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Glyph   string        `json:"glyph"`
	Color   string        `json:"color"`
	Radius  float64       `json:"radius"` // Effect radius in tiles
	Trigger HazardTrigger `json:"trigger"`

	Temporary       bool    `json:"temporary"`       // Expires after LifespanSeconds
	LifespanSeconds float64 `json:"lifespanSeconds"` // Only meaningful when Temporary
	CooldownSeconds float64 `json:"cooldownSeconds"` // Re-activation delay after deactivating
	SpreadSeconds   float64 `json:"spreadSeconds"`   // Declared; spreading is not wired yet

	DamagePerTick     int     `json:"damagePerTick"`     // Applied once per damage cadence
	DamageTickSeconds float64 `json:"damageTickSeconds"` // Cadence between damage applications
	DamageKind        string  `json:"damageKind"`

	StatusEffect          string  `json:"statusEffect,omitempty"`
	StatusChance          float64 `json:"statusChance,omitempty"` // 0-1 roll per cadence
	StatusPotency         int     `json:"statusPotency,omitempty"`
	StatusDurationSeconds float64 `json:"statusDurationSeconds,omitempty"`
	StatusStackLimit      int     `json:"statusStackLimit,omitempty"`

	ForceX float64 `json:"forceX,omitempty"` // Constant displacement per tick, tiles
	ForceY float64 `json:"forceY,omitempty"`

	AffectedTags []string `json:"affectedTags,omitempty"` // Empty means affect everything
	SpawnWeight  int      `json:"spawnWeight"`
}

// AlwaysActive reports whether the hazard skips the inactive state entirely.
func (d *HazardDef) AlwaysActive() bool {
	return d.Trigger == TriggerAlways
}

// GlyphRune returns the glyph as a rune for rendering.
func (d *HazardDef) GlyphRune() rune {
	if len(d.Glyph) == 0 {
		return '^'
	}
	return []rune(d.Glyph)[0]
}

// TCellColor returns the hazard's color as a tcell color, defaulting to red.
func (d *HazardDef) TCellColor() tcell.Color {
	return ColorOrDefault(d.Color, tcell.ColorRed)
}

// HazardsFile represents the structure of hazards.json.
type HazardsFile struct {
	Hazards []HazardDef `json:"hazards"`
}

// LoadHazards loads hazard definitions from the embedded hazards.json file.
func LoadHazards() ([]HazardDef, error) {
	file, err := Load[HazardsFile]("hazards.json")
	if err != nil {
		return nil, err
	}
	return file.Hazards, nil
}
