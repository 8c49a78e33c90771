// Package hazard implements area-effect hazards with a small cyclic
// controller: Inactive -> Active -> Cooldown -> Inactive. Always-active
// hazards never leave Active.
package hazard

import (
	"math"
	"math/rand"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/colonyband/internal/entity"
	"github.com/samdwyer/colonyband/internal/gamedata"
	"github.com/samdwyer/colonyband/internal/world"
)

// Phase is the hazard controller state.
type Phase int

const (
	PhaseInactive Phase = iota
	PhaseActive
	PhaseCooldown
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseInactive:
		return "inactive"
	case PhaseActive:
		return "active"
	case PhaseCooldown:
		return "cooldown"
	default:
		return "unknown"
	}
}

// Hazard is a live area hazard built from a HazardDef.
type Hazard struct {
	ID  string
	Def *gamedata.HazardDef

	X, Y float64

	phase Phase
	tps   int

	// All timers in ticks.
	lifespanLeft int // Only counts down for temporary hazards
	cooldownLeft int
	cadence      int // Ticks between damage applications
	cadenceLeft  int

	entitiesInside map[string]struct{}
	expired        bool
}

// New builds a hazard from a definition, or fails closed when the definition
// is absent. A failed spawn affects nothing else; the caller just drops it.
func New(def *gamedata.HazardDef, x, y float64, tps int) (*Hazard, error) {
	if def == nil {
		return nil, entity.ErrMissingProfileData
	}
	if tps <= 0 {
		tps = 60
	}

	cadence := int(math.Round(def.DamageTickSeconds * float64(tps)))
	if cadence < 1 {
		cadence = 1
	}

	h := &Hazard{
		ID:             uuid.NewString(),
		Def:            def,
		X:              x,
		Y:              y,
		phase:          PhaseInactive,
		tps:            tps,
		lifespanLeft:   int(math.Round(def.LifespanSeconds * float64(tps))),
		cadence:        cadence,
		cadenceLeft:    cadence,
		entitiesInside: make(map[string]struct{}),
	}
	if def.AlwaysActive() {
		h.phase = PhaseActive
	}
	return h, nil
}

// Phase returns the controller phase.
func (h *Hazard) Phase() Phase {
	return h.phase
}

// IsActive reports whether the hazard is currently applying effects.
func (h *Hazard) IsActive() bool {
	return h.phase == PhaseActive
}

// Expired reports whether a temporary hazard has run out its lifespan and
// should be removed from the world.
func (h *Hazard) Expired() bool {
	return h.expired
}

// EntitiesInside returns the number of entities inside the area last tick.
func (h *Hazard) EntitiesInside() int {
	return len(h.entitiesInside)
}

// Activate turns the hazard on. Ignored while cooling down or already active.
func (h *Hazard) Activate() {
	if h.phase != PhaseInactive {
		return
	}
	h.phase = PhaseActive
	h.cadenceLeft = h.cadence
	logrus.WithFields(logrus.Fields{"hazard": h.ID, "type": h.Def.ID}).Debug("hazard activated")
}

// Deactivate turns the hazard off, clears the membership set, and starts the
// cooldown. Always-active hazards cannot be deactivated.
func (h *Hazard) Deactivate() {
	if h.phase != PhaseActive || h.Def.AlwaysActive() {
		return
	}
	h.entitiesInside = make(map[string]struct{})
	h.cooldownLeft = int(math.Round(h.Def.CooldownSeconds * float64(h.tps)))
	if h.cooldownLeft > 0 {
		h.phase = PhaseCooldown
	} else {
		h.phase = PhaseInactive
	}
	logrus.WithFields(logrus.Fields{"hazard": h.ID, "type": h.Def.ID}).Debug("hazard deactivated")
}

// Tick advances the hazard one simulation tick.
func (h *Hazard) Tick(w *world.World, rng *rand.Rand) {
	switch h.phase {
	case PhaseCooldown:
		h.cooldownLeft--
		if h.cooldownLeft <= 0 {
			h.phase = PhaseInactive
		}
		return
	case PhaseInactive:
		return
	}

	if h.Def.Temporary {
		h.lifespanLeft--
		if h.lifespanLeft <= 0 {
			h.expired = true
			h.entitiesInside = make(map[string]struct{})
			return
		}
	}

	// Rebuild membership from current positions.
	inside := make(map[string]struct{})
	affected := make([]*entity.Pop, 0, 4)
	for _, p := range w.PopsWithin(h.X, h.Y, h.Def.Radius) {
		inside[p.ID] = struct{}{}
		if h.affects(p) {
			affected = append(affected, p)
		}
	}
	h.entitiesInside = inside

	// Constant force applies every tick.
	if h.Def.ForceX != 0 || h.Def.ForceY != 0 {
		for _, p := range affected {
			p.X, p.Y = w.ClampToBounds(p.X+h.Def.ForceX, p.Y+h.Def.ForceY)
		}
	}

	// Damage and status roll apply on the cadence, not every tick.
	h.cadenceLeft--
	if h.cadenceLeft > 0 {
		return
	}
	h.cadenceLeft = h.cadence

	for _, p := range affected {
		var dmg entity.Damageable = p
		if h.Def.DamagePerTick > 0 {
			dmg.TakeDamage(h.Def.DamagePerTick, h.Def.DamageKind, h.ID)
		}
		if h.Def.StatusEffect != "" && rng.Float64() < h.Def.StatusChance {
			durationTicks := int(math.Round(h.Def.StatusDurationSeconds * float64(h.tps)))
			dmg.ApplyStatusEffect(h.Def.StatusEffect, h.Def.StatusPotency, durationTicks, h.Def.StatusStackLimit)
		}
	}
}

// affects applies the tag filter: any overlap between the pop's tags and the
// hazard's affected tags. An empty affected list matches everything, and an
// entity without the Taggable capability is affected unconditionally.
func (h *Hazard) affects(e any) bool {
	if len(h.Def.AffectedTags) == 0 {
		return true
	}
	tagged, ok := e.(entity.Taggable)
	if !ok {
		return true
	}
	for _, tag := range tagged.Tags() {
		for _, want := range h.Def.AffectedTags {
			if tag == want {
				return true
			}
		}
	}
	return false
}
