package entity

// Damageable is implemented by anything a hazard (or future combat) can hurt.
// Entities without this capability are simply skipped by effect sources.
type Damageable interface {
	// TakeDamage reduces health and returns the damage actually applied.
	// Health never drops below zero.
	TakeDamage(amount int, kind string, sourceID string) int
	// ApplyStatusEffect adds a timed effect, respecting the stack limit for
	// effects of the same type.
	ApplyStatusEffect(effect string, potency int, durationTicks int, stackLimit int)
}

// Taggable exposes an entity's tag set for hazard/effect filtering. Entities
// without this capability are affected unconditionally.
type Taggable interface {
	Tags() []string
}

// StatusEffect is an active timed effect on a pop.
type StatusEffect struct {
	Type           string
	Potency        int
	RemainingTicks int
	CadenceTicks   int // Ticks between applications (poison damage, etc.)
	cadenceLeft    int
}

// StatusPoison is the only effect type with a wired per-tick consequence;
// other types ride along as inert markers until something consumes them.
const StatusPoison = "poison"
