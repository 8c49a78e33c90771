package entity

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/samdwyer/colonyband/internal/gamedata"
)

func intPtr(v int) *int             { return &v }
func floatPtr(v float64) *float64   { return &v }
func scoreAt(v int) *gamedata.ScoreRange { return &gamedata.ScoreRange{Min: v, Max: v} }

func TestNewPopNilDefFailsClosed(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p, err := NewPop(nil, "Nobody", 0, 0, 60, rng)
	if !errors.Is(err, ErrMissingProfileData) {
		t.Fatalf("Expected ErrMissingProfileData, got %v", err)
	}
	if p != nil {
		t.Error("Expected nil pop on missing profile")
	}
}

func TestNewPopDerivedStats(t *testing.T) {
	def := &gamedata.PopDef{
		ID:    "test",
		Name:  "Test",
		Glyph: "t",
		Stats: &gamedata.StatBlock{
			BaseMaxHealth:     intPtr(50),
			BaseCarryCapacity: floatPtr(4),
			CarryPerStrength:  floatPtr(3),
		},
		Strength:     scoreAt(12),
		Constitution: scoreAt(14),
	}

	rng := rand.New(rand.NewSource(1))
	p, err := NewPop(def, "Test Pop", 5, 5, 60, rng)
	if err != nil {
		t.Fatalf("NewPop failed: %v", err)
	}

	// 50 + (14-10)*5 = 70
	if p.Stats.MaxHealth != 70 {
		t.Errorf("Expected max health 70, got %d", p.Stats.MaxHealth)
	}
	if p.Stats.Health != p.Stats.MaxHealth {
		t.Error("Pop should spawn at full health")
	}
	// 4 + 12*3 = 40
	if p.Stats.MaxCarry != 40 {
		t.Errorf("Expected max carry 40, got %v", p.Stats.MaxCarry)
	}
	if p.Inventory.MaxWeight() != 40 {
		t.Errorf("Inventory capacity should match max carry, got %v", p.Inventory.MaxWeight())
	}
	if p.State != StateIdle {
		t.Errorf("Pop should spawn idle, got %v", p.State)
	}
}

func TestNewPopDefaultsForSparseProfile(t *testing.T) {
	// A profile with no stat or behavior blocks at all must still spawn,
	// using the documented defaults everywhere.
	def := &gamedata.PopDef{ID: "drifter", Name: "Drifter", Glyph: "d"}

	rng := rand.New(rand.NewSource(42))
	p, err := NewPop(def, "Drifter One", 0, 0, 60, rng)
	if err != nil {
		t.Fatalf("NewPop failed on sparse profile: %v", err)
	}

	if p.Stats.WalkSpeed != DefaultWalkSpeed {
		t.Errorf("Expected default walk speed %v, got %v", DefaultWalkSpeed, p.Stats.WalkSpeed)
	}
	if p.Stats.PerceptionRadius != DefaultPerceptionRadius {
		t.Errorf("Expected default perception %v, got %v", DefaultPerceptionRadius, p.Stats.PerceptionRadius)
	}
	if p.Settings.HaulThresholdPct != DefaultHaulThresholdPct {
		t.Errorf("Expected default haul threshold, got %v", p.Settings.HaulThresholdPct)
	}
	wantForage := 2 * 60 // DefaultForageSeconds at 60 tps
	if p.Settings.ForageTicks != wantForage {
		t.Errorf("Expected %d forage ticks, got %d", wantForage, p.Settings.ForageTicks)
	}
}

func TestNewPopDefaultingIsReproducible(t *testing.T) {
	def := &gamedata.PopDef{ID: "drifter", Name: "Drifter", Glyph: "d"}

	p1, err := NewPop(def, "A", 0, 0, 60, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatal(err)
	}
	p2, err := NewPop(def, "A", 0, 0, 60, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatal(err)
	}

	if p1.Stats.Strength != p2.Stats.Strength || p1.Stats.Constitution != p2.Stats.Constitution {
		t.Errorf("Same seed must roll the same scores: %+v vs %+v", p1.Stats, p2.Stats)
	}
	if p1.Stats.MaxHealth != p2.Stats.MaxHealth || p1.Stats.MaxCarry != p2.Stats.MaxCarry {
		t.Errorf("Same seed must derive the same stats: %+v vs %+v", p1.Stats, p2.Stats)
	}
}

func TestStepTowardNeverOvershoots(t *testing.T) {
	def := &gamedata.PopDef{ID: "test", Name: "T", Glyph: "t"}
	p, err := NewPop(def, "T", 0, 0, 60, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}

	// Step is far larger than the remaining distance.
	arrived := p.StepToward(1, 0, 50)
	if !arrived {
		t.Error("Expected arrival in one oversized step")
	}
	if p.X > 1+ArrivalEpsilon || p.X < 1-ArrivalEpsilon {
		t.Errorf("Pop overshot the target: x=%v", p.X)
	}

	// Already at the target.
	if !p.StepToward(p.X, p.Y, 1) {
		t.Error("Expected immediate arrival at own position")
	}
}

func TestTakeDamageFloorsAtZero(t *testing.T) {
	def := &gamedata.PopDef{ID: "test", Name: "T", Glyph: "t"}
	p, err := NewPop(def, "T", 0, 0, 60, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}

	applied := p.TakeDamage(p.Stats.MaxHealth+100, "test", "src")
	if applied != p.Stats.MaxHealth {
		t.Errorf("Expected %d applied, got %d", p.Stats.MaxHealth, applied)
	}
	if p.Stats.Health != 0 {
		t.Errorf("Health must floor at zero, got %d", p.Stats.Health)
	}
	if p.IsAlive() {
		t.Error("Pop at zero health must not be alive")
	}
	if p.TakeDamage(5, "test", "src") != 0 {
		t.Error("Damage on a dead pop applies nothing")
	}
}

func TestApplyStatusEffectStackLimit(t *testing.T) {
	def := &gamedata.PopDef{ID: "test", Name: "T", Glyph: "t"}
	p, err := NewPop(def, "T", 0, 0, 60, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}

	// First application creates the effect; a shorter re-application only
	// refreshes, a longer one bumps the timer.
	p.ApplyStatusEffect(StatusPoison, 1, 100, 1)
	if len(p.StatusEffects()) != 1 {
		t.Fatalf("Expected 1 effect, got %d", len(p.StatusEffects()))
	}
	p.ApplyStatusEffect(StatusPoison, 2, 200, 1)
	effects := p.StatusEffects()
	if len(effects) != 1 {
		t.Fatalf("Stack limit 1 must refresh, not stack: got %d effects", len(effects))
	}
	if effects[0].RemainingTicks != 200 {
		t.Errorf("Expected refreshed duration 200, got %d", effects[0].RemainingTicks)
	}
}

func TestTickStatusEffectsExpiry(t *testing.T) {
	def := &gamedata.PopDef{ID: "test", Name: "T", Glyph: "t"}
	p, err := NewPop(def, "T", 0, 0, 60, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}

	p.ApplyStatusEffect("slow", 1, 3, 0)
	if p.EffectiveSpeed(false) >= p.Stats.WalkSpeed {
		t.Error("Slow effect must reduce speed")
	}
	for i := 0; i < 3; i++ {
		p.TickStatusEffects()
	}
	if len(p.StatusEffects()) != 0 {
		t.Errorf("Effect should have expired, got %d remaining", len(p.StatusEffects()))
	}
	if p.EffectiveSpeed(false) != p.Stats.WalkSpeed {
		t.Error("Speed must recover after the effect expires")
	}
}
