package hazard

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/samdwyer/colonyband/internal/entity"
	"github.com/samdwyer/colonyband/internal/gamedata"
	"github.com/samdwyer/colonyband/internal/world"
)

func testDef() *gamedata.HazardDef {
	return &gamedata.HazardDef{
		ID:                "test_field",
		Name:              "Test Field",
		Radius:            3,
		Trigger:           gamedata.TriggerAlways,
		DamagePerTick:     5,
		DamageTickSeconds: 1,
		DamageKind:        "toxic",
	}
}

func spawnPop(t *testing.T, w *world.World, x, y float64, tags []string) *entity.Pop {
	t.Helper()
	def := &gamedata.PopDef{ID: "test", Name: "Test", Glyph: "t", Tags: tags}
	p, err := entity.NewPop(def, "Test Pop", x, y, 60, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewPop failed: %v", err)
	}
	w.AddPop(p)
	return p
}

func TestNewNilDef(t *testing.T) {
	_, err := New(nil, 0, 0, 60)
	if !errors.Is(err, entity.ErrMissingProfileData) {
		t.Fatalf("Expected ErrMissingProfileData, got %v", err)
	}
}

// Damage lands on the cadence, not per tick: 5 damage at 1s cadence over
// 120 ticks at 60 tps is exactly two applications.
func TestDamageCadence(t *testing.T) {
	w := world.New(20, 10, rand.New(rand.NewSource(1)))
	p := spawnPop(t, w, 5, 5, nil)
	start := p.Stats.Health

	h, err := New(testDef(), 5, 5, 60)
	if err != nil {
		t.Fatal(err)
	}
	if !h.IsActive() {
		t.Fatal("Always-active hazard must start active")
	}

	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 120; i++ {
		h.Tick(w, rng)
	}

	if lost := start - p.Stats.Health; lost != 10 {
		t.Errorf("Expected exactly 10 damage over 120 ticks, got %d", lost)
	}
}

func TestOutOfRangeTakesNoDamage(t *testing.T) {
	w := world.New(40, 10, rand.New(rand.NewSource(1)))
	p := spawnPop(t, w, 20, 5, nil)
	start := p.Stats.Health

	h, _ := New(testDef(), 5, 5, 60)
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 120; i++ {
		h.Tick(w, rng)
	}

	if p.Stats.Health != start {
		t.Error("Pop outside the radius must be untouched")
	}
	if h.EntitiesInside() != 0 {
		t.Errorf("Expected empty membership, got %d", h.EntitiesInside())
	}
}

// The tag filter only affects matching entities; membership still counts
// everyone inside the area.
func TestAffectedTagsFilter(t *testing.T) {
	w := world.New(20, 10, rand.New(rand.NewSource(1)))
	organic := spawnPop(t, w, 5, 5, []string{"organic"})
	golem := spawnPop(t, w, 6, 5, []string{"construct"})
	organicStart := organic.Stats.Health
	golemStart := golem.Stats.Health

	def := testDef()
	def.AffectedTags = []string{"organic"}
	h, _ := New(def, 5, 5, 60)

	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 60; i++ {
		h.Tick(w, rng)
	}

	if organic.Stats.Health != organicStart-5 {
		t.Errorf("Tagged pop should take one application, lost %d", organicStart-organic.Stats.Health)
	}
	if golem.Stats.Health != golemStart {
		t.Error("Untagged pop must be ignored by the damage")
	}
	if h.EntitiesInside() != 2 {
		t.Errorf("Membership counts everyone inside, got %d", h.EntitiesInside())
	}
}

func TestStatusEffectRoll(t *testing.T) {
	w := world.New(20, 10, rand.New(rand.NewSource(1)))
	p := spawnPop(t, w, 5, 5, nil)

	def := testDef()
	def.DamagePerTick = 0
	def.StatusEffect = entity.StatusPoison
	def.StatusChance = 1.0 // deterministic for the test
	def.StatusPotency = 1
	def.StatusDurationSeconds = 5
	def.StatusStackLimit = 3
	h, _ := New(def, 5, 5, 60)

	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 60; i++ {
		h.Tick(w, rng)
	}

	effects := p.StatusEffects()
	if len(effects) != 1 {
		t.Fatalf("Expected 1 poison effect, got %d", len(effects))
	}
	if effects[0].Type != entity.StatusPoison {
		t.Errorf("Expected poison, got %q", effects[0].Type)
	}
	if effects[0].RemainingTicks > 5*60 {
		t.Errorf("Duration must be seconds*tps, got %d ticks", effects[0].RemainingTicks)
	}
}

func TestActivationCycle(t *testing.T) {
	def := testDef()
	def.Trigger = gamedata.TriggerSignal
	def.CooldownSeconds = 2

	h, err := New(def, 5, 5, 1)
	if err != nil {
		t.Fatal(err)
	}
	if h.IsActive() {
		t.Fatal("Triggered hazards start inactive")
	}

	w := world.New(20, 10, rand.New(rand.NewSource(1)))
	spawnPop(t, w, 5, 5, nil)
	rng := rand.New(rand.NewSource(2))

	h.Activate()
	if !h.IsActive() {
		t.Fatal("Activate from inactive must work")
	}
	h.Tick(w, rng)
	if h.EntitiesInside() != 1 {
		t.Error("Active hazard must track membership")
	}

	h.Deactivate()
	if h.IsActive() {
		t.Fatal("Deactivate must leave the active phase")
	}
	if h.EntitiesInside() != 0 {
		t.Error("Deactivation must clear the membership set")
	}
	if h.Phase() != PhaseCooldown {
		t.Fatalf("Expected cooldown, got %v", h.Phase())
	}

	// Activation during cooldown is ignored.
	h.Activate()
	if h.IsActive() {
		t.Error("Activate during cooldown must be ignored")
	}

	// Cooldown runs out after cooldownSeconds * tps ticks.
	h.Tick(w, rng)
	h.Tick(w, rng)
	if h.Phase() != PhaseInactive {
		t.Fatalf("Expected inactive after cooldown, got %v", h.Phase())
	}
	h.Activate()
	if !h.IsActive() {
		t.Error("Reactivation after cooldown must work")
	}
}

func TestAlwaysActiveCannotDeactivate(t *testing.T) {
	h, _ := New(testDef(), 5, 5, 60)
	h.Deactivate()
	if !h.IsActive() {
		t.Error("Always-active hazards must ignore Deactivate")
	}
}

func TestTemporaryHazardExpires(t *testing.T) {
	def := testDef()
	def.Temporary = true
	def.LifespanSeconds = 2

	h, err := New(def, 5, 5, 1)
	if err != nil {
		t.Fatal(err)
	}

	w := world.New(20, 10, rand.New(rand.NewSource(1)))
	rng := rand.New(rand.NewSource(2))

	h.Tick(w, rng)
	if h.Expired() {
		t.Fatal("Expired too early")
	}
	h.Tick(w, rng)
	if !h.Expired() {
		t.Fatal("Expected expiry after the lifespan ran out")
	}
	if h.EntitiesInside() != 0 {
		t.Error("Expired hazard must clear membership")
	}
}

func TestForcePushesAffectedPops(t *testing.T) {
	w := world.New(20, 10, rand.New(rand.NewSource(1)))
	p := spawnPop(t, w, 5, 5, nil)

	def := testDef()
	def.DamagePerTick = 0
	def.ForceX = 0.1
	h, _ := New(def, 5, 5, 60)

	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 10; i++ {
		h.Tick(w, rng)
	}

	if p.X <= 5 {
		t.Errorf("Force must push the pop, x=%v", p.X)
	}
}
