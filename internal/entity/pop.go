// Package entity provides live simulation entities built from profile data.
package entity

import (
	"errors"
	"math"
	"math/rand"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/colonyband/internal/gamedata"
)

// ErrMissingProfileData reports that an instance could not be created because
// its profile was absent. Fatal to the single instance only; the caller must
// discard the instance and carry on.
var ErrMissingProfileData = errors.New("missing profile data")

// Per-field defaults applied when a profile omits an optional field. These
// values are load-bearing: missing-data behavior must be reproducible, so
// change them only together with the data files that rely on them.
const (
	DefaultBaseMaxHealth     = 50
	DefaultWalkSpeed         = 1.2 // tiles/sec
	DefaultRunSpeed          = 2.4
	DefaultPerceptionRadius  = 12.0
	DefaultBaseCarryCapacity = 0.0
	DefaultCarryPerStrength  = 2.0
	DefaultIdleMinSeconds    = 2.0
	DefaultIdleMaxSeconds    = 6.0
	DefaultWanderRadius      = 8.0
	DefaultHaulThresholdPct  = 80.0
	DefaultInteractDistance  = 0.9
	DefaultForageSeconds     = 2.0
	defaultScoreMin          = 8
	defaultScoreMax          = 14
	minMaxHealth             = 10
)

// ArrivalEpsilon is the distance at which movement counts as arrived.
// Comparing positions for exact equality never terminates with float steps.
const ArrivalEpsilon = 0.05

// Stats holds a pop's derived runtime stats, computed once at spawn.
type Stats struct {
	MaxHealth        int
	Health           int
	WalkSpeed        float64 // tiles/sec
	RunSpeed         float64
	PerceptionRadius float64
	MaxCarry         float64
	Strength         int
	Constitution     int
}

// Settings holds the pop's behavior tuning with all timers converted from
// profile seconds into discrete tick counts at spawn.
type Settings struct {
	IdleMinTicks     int
	IdleMaxTicks     int
	WanderRadius     float64
	HaulThresholdPct float64
	InteractDistance float64
	ForageTicks      int
}

// Pop is a live colonist. Created from a PopDef by NewPop, mutated every tick
// by its state handler, and owned exclusively by the world that spawned it.
type Pop struct {
	ID        string
	ProfileID string
	Name      string
	Glyph     rune
	Color     tcell.Color

	X, Y float64

	State     State
	HaulPhase HaulPhase
	Resume    Resume

	Stats    Stats
	Settings Settings

	Inventory *Inventory

	// Travel target; valid only while HasTarget is set.
	TargetX, TargetY float64
	HasTarget        bool

	// Claimed interaction slot; empty TargetStructureID means none held.
	TargetStructureID string
	SlotIndex         int
	SlotTag           string

	// Ground item being hauled toward; empty means none.
	TargetItemID string

	// Countdown timers, in ticks.
	StateTimer int
	WorkTimer  int

	tags          []string
	Traits        []string
	statusEffects []StatusEffect
}

// NewPop builds a fully-initialized pop from a profile definition, or fails
// closed with ErrMissingProfileData when the definition is absent. Every
// omitted optional field gets its documented default and one structured log
// line, so spawning from partial or modded data is reproducible.
func NewPop(def *gamedata.PopDef, name string, x, y float64, tps int, rng *rand.Rand) (*Pop, error) {
	if def == nil {
		return nil, ErrMissingProfileData
	}
	if tps <= 0 {
		tps = 60
	}

	id := uuid.NewString()
	fieldLog := logrus.WithFields(logrus.Fields{"pop": id, "profile": def.ID})

	strength := rollScore(rng, def.Strength, fieldLog, "strength")
	constitution := rollScore(rng, def.Constitution, fieldLog, "constitution")

	stats := def.Stats
	if stats == nil {
		stats = &gamedata.StatBlock{}
		fieldLog.Debug("profile has no stat block, using all defaults")
	}
	behavior := def.Behavior
	if behavior == nil {
		behavior = &gamedata.BehaviorSettings{}
		fieldLog.Debug("profile has no behavior block, using all defaults")
	}

	baseHealth := intOr(stats.BaseMaxHealth, DefaultBaseMaxHealth, fieldLog, "baseMaxHealth")
	maxHealth := baseHealth + (constitution-10)*5
	if maxHealth < minMaxHealth {
		maxHealth = minMaxHealth
	}

	baseCarry := floatOr(stats.BaseCarryCapacity, DefaultBaseCarryCapacity, fieldLog, "baseCarryCapacity")
	carryMult := floatOr(stats.CarryPerStrength, DefaultCarryPerStrength, fieldLog, "carryPerStrength")
	maxCarry := baseCarry + float64(strength)*carryMult

	idleMin := floatOr(behavior.IdleMinSeconds, DefaultIdleMinSeconds, fieldLog, "idleMinSeconds")
	idleMax := floatOr(behavior.IdleMaxSeconds, DefaultIdleMaxSeconds, fieldLog, "idleMaxSeconds")
	if idleMax < idleMin {
		idleMax = idleMin
	}

	p := &Pop{
		ID:        id,
		ProfileID: def.ID,
		Name:      name,
		Glyph:     def.GlyphRune(),
		Color:     def.TCellColor(),
		X:         x,
		Y:         y,
		State:     StateIdle,
		Stats: Stats{
			MaxHealth:        maxHealth,
			Health:           maxHealth,
			WalkSpeed:        floatOr(stats.WalkSpeed, DefaultWalkSpeed, fieldLog, "walkSpeed"),
			RunSpeed:         floatOr(stats.RunSpeed, DefaultRunSpeed, fieldLog, "runSpeed"),
			PerceptionRadius: floatOr(stats.PerceptionRadius, DefaultPerceptionRadius, fieldLog, "perceptionRadius"),
			MaxCarry:         maxCarry,
			Strength:         strength,
			Constitution:     constitution,
		},
		Settings: Settings{
			IdleMinTicks:     secondsToTicks(idleMin, tps),
			IdleMaxTicks:     secondsToTicks(idleMax, tps),
			WanderRadius:     floatOr(behavior.WanderRadius, DefaultWanderRadius, fieldLog, "wanderRadius"),
			HaulThresholdPct: floatOr(behavior.HaulThresholdPct, DefaultHaulThresholdPct, fieldLog, "haulThresholdPct"),
			InteractDistance: floatOr(behavior.InteractDistance, DefaultInteractDistance, fieldLog, "interactDistance"),
			ForageTicks:      secondsToTicks(floatOr(behavior.ForageSeconds, DefaultForageSeconds, fieldLog, "forageSeconds"), tps),
		},
		Inventory: NewInventory(maxCarry),
		tags:      append([]string(nil), def.Tags...),
		Traits:    append([]string(nil), def.Traits...),
	}
	return p, nil
}

// secondsToTicks converts a profile duration into a tick count, never below 1.
func secondsToTicks(seconds float64, tps int) int {
	ticks := int(math.Round(seconds * float64(tps)))
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}

func rollScore(rng *rand.Rand, r *gamedata.ScoreRange, log *logrus.Entry, field string) int {
	lo, hi := defaultScoreMin, defaultScoreMax
	if r != nil {
		lo, hi = r.Min, r.Max
	} else {
		log.WithField("field", field).Debug("profile field missing, using default range")
	}
	if hi < lo {
		hi = lo
	}
	return lo + rng.Intn(hi-lo+1)
}

func intOr(v *int, def int, log *logrus.Entry, field string) int {
	if v == nil {
		log.WithFields(logrus.Fields{"field": field, "default": def}).Debug("profile field missing, using default")
		return def
	}
	return *v
}

func floatOr(v *float64, def float64, log *logrus.Entry, field string) float64 {
	if v == nil {
		log.WithFields(logrus.Fields{"field": field, "default": def}).Debug("profile field missing, using default")
		return def
	}
	return *v
}

// Position returns the pop's current coordinates.
func (p *Pop) Position() (float64, float64) {
	return p.X, p.Y
}

// IsAlive returns true if the pop has health remaining.
func (p *Pop) IsAlive() bool {
	return p.Stats.Health > 0
}

// SetTravelTarget points the pop at a destination.
func (p *Pop) SetTravelTarget(x, y float64) {
	p.TargetX = x
	p.TargetY = y
	p.HasTarget = true
}

// ClearTravelTarget drops any travel destination.
func (p *Pop) ClearTravelTarget() {
	p.HasTarget = false
}

// HoldsSlot reports whether the pop has a claimed interaction slot.
func (p *Pop) HoldsSlot() bool {
	return p.TargetStructureID != ""
}

// ClearSlot forgets the claimed slot reference. The caller is responsible for
// releasing the claim in the slot registry first.
func (p *Pop) ClearSlot() {
	p.TargetStructureID = ""
	p.SlotIndex = 0
	p.SlotTag = ""
}

// DistanceTo returns the distance from the pop to a point.
func (p *Pop) DistanceTo(x, y float64) float64 {
	return math.Hypot(x-p.X, y-p.Y)
}

// StepToward moves the pop toward (tx, ty) by at most speed-per-tick,
// clamping to the remaining distance so it never overshoots. Returns true
// once the pop is within the arrival epsilon.
func (p *Pop) StepToward(tx, ty, speedPerTick float64) (arrived bool) {
	dx := tx - p.X
	dy := ty - p.Y
	dist := math.Hypot(dx, dy)
	if dist <= ArrivalEpsilon {
		return true
	}
	step := speedPerTick
	if step > dist {
		step = dist
	}
	p.X += dx / dist * step
	p.Y += dy / dist * step
	return math.Hypot(tx-p.X, ty-p.Y) <= ArrivalEpsilon
}

// EffectiveSpeed returns the per-second speed for the given gait, reduced
// while a slow effect is active.
func (p *Pop) EffectiveSpeed(running bool) float64 {
	speed := p.Stats.WalkSpeed
	if running {
		speed = p.Stats.RunSpeed
	}
	for _, e := range p.statusEffects {
		if e.Type == "slow" {
			speed *= 0.5
			break
		}
	}
	return speed
}

// =============================================================================
// Damageable / Taggable capability implementations
// =============================================================================

// TakeDamage reduces health and returns the damage actually applied. Health
// never drops below zero.
func (p *Pop) TakeDamage(amount int, kind string, sourceID string) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > p.Stats.Health {
		actual = p.Stats.Health
	}
	p.Stats.Health -= actual
	if actual > 0 {
		logrus.WithFields(logrus.Fields{
			"pop":    p.ID,
			"name":   p.Name,
			"amount": actual,
			"kind":   kind,
			"source": sourceID,
		}).Debug("pop took damage")
	}
	return actual
}

// Heal restores health and returns the amount actually healed.
func (p *Pop) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if p.Stats.Health+actual > p.Stats.MaxHealth {
		actual = p.Stats.MaxHealth - p.Stats.Health
	}
	p.Stats.Health += actual
	return actual
}

// ApplyStatusEffect adds a timed effect. Existing effects of the same type
// are refreshed first; beyond stackLimit concurrent copies the call is a no-op.
func (p *Pop) ApplyStatusEffect(effect string, potency int, durationTicks int, stackLimit int) {
	if effect == "" || durationTicks <= 0 {
		return
	}
	count := 0
	for i := range p.statusEffects {
		if p.statusEffects[i].Type != effect {
			continue
		}
		count++
		if p.statusEffects[i].RemainingTicks < durationTicks {
			p.statusEffects[i].RemainingTicks = durationTicks
			p.statusEffects[i].Potency = potency
			return
		}
	}
	if stackLimit > 0 && count >= stackLimit {
		return
	}
	p.statusEffects = append(p.statusEffects, StatusEffect{
		Type:           effect,
		Potency:        potency,
		RemainingTicks: durationTicks,
		CadenceTicks:   durationTicks / 5, // a handful of applications over the duration
	})
}

// Tags returns the pop's tag set for hazard filtering.
func (p *Pop) Tags() []string {
	return p.tags
}

// StatusEffects returns the active effects (for rendering/diagnostics).
func (p *Pop) StatusEffects() []StatusEffect {
	return p.statusEffects
}

// TickStatusEffects advances effect timers, applying poison damage on its
// cadence, and drops expired effects.
func (p *Pop) TickStatusEffects() {
	remaining := p.statusEffects[:0]
	for _, e := range p.statusEffects {
		if e.Type == StatusPoison {
			if e.cadenceLeft <= 0 {
				p.TakeDamage(e.Potency, "poison", "status")
				e.cadenceLeft = e.CadenceTicks
			} else {
				e.cadenceLeft--
			}
		}
		e.RemainingTicks--
		if e.RemainingTicks > 0 {
			remaining = append(remaining, e)
		}
	}
	p.statusEffects = remaining
}

// Compile-time capability assertions.
var (
	_ Damageable = (*Pop)(nil)
	_ Taggable   = (*Pop)(nil)
)
