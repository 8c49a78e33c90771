package gamedata

import (
	"encoding/json"
	"math/rand"
	"testing"
)

func TestLoadPops(t *testing.T) {
	pops, err := LoadPops()
	if err != nil {
		t.Fatalf("Failed to load pops: %v", err)
	}

	if len(pops) != 3 {
		t.Errorf("Expected 3 pops, got %d", len(pops))
	}

	// Verify expected pop types exist
	expectedIDs := map[string]bool{"gatherer": false, "hauler": false, "drifter": false}
	for _, p := range pops {
		if _, ok := expectedIDs[p.ID]; ok {
			expectedIDs[p.ID] = true
		}
	}

	for id, found := range expectedIDs {
		if !found {
			t.Errorf("Expected pop %q not found", id)
		}
	}
}

func TestPopRegistry(t *testing.T) {
	registry, err := LoadPopRegistry()
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}

	if registry.Count() != 3 {
		t.Errorf("Expected 3 pop types, got %d", registry.Count())
	}

	// Test GetByID
	gatherer := registry.GetByID("gatherer")
	if gatherer == nil {
		t.Error("Gatherer not found by ID")
	} else if gatherer.Name != "Gatherer" {
		t.Errorf("Expected name 'Gatherer', got %q", gatherer.Name)
	}

	// Test weighted spawning is deterministic with same seed
	rng1 := rand.New(rand.NewSource(12345))
	rng2 := rand.New(rand.NewSource(12345))

	spawns1 := make([]string, 10)
	spawns2 := make([]string, 10)

	for i := 0; i < 10; i++ {
		spawns1[i] = registry.SpawnRandom(rng1).ID
		spawns2[i] = registry.SpawnRandom(rng2).ID
	}

	for i := 0; i < 10; i++ {
		if spawns1[i] != spawns2[i] {
			t.Errorf("Spawn %d mismatch: %s != %s", i, spawns1[i], spawns2[i])
		}
	}
}

func TestStructureRegistry(t *testing.T) {
	registry, err := LoadStructureRegistry()
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}

	bushes := registry.OfKind(KindBush)
	if len(bushes) != 2 {
		t.Errorf("Expected 2 bush types, got %d", len(bushes))
	}
	stockpiles := registry.OfKind(KindStockpile)
	if len(stockpiles) != 1 {
		t.Errorf("Expected 1 stockpile type, got %d", len(stockpiles))
	}

	// SpawnRandom must honor the kind filter
	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 20; i++ {
		def := registry.SpawnRandom(rng, KindBush)
		if def == nil {
			t.Fatal("SpawnRandom returned nil for bushes")
		}
		if def.Kind != KindBush {
			t.Errorf("SpawnRandom(bush) returned kind %q", def.Kind)
		}
	}

	bush := registry.GetByID("berry_bush")
	if bush == nil {
		t.Fatal("berry_bush not found by ID")
	}
	if len(bush.Slots) != 2 {
		t.Errorf("Expected 2 interaction slots on berry_bush, got %d", len(bush.Slots))
	}
	if bush.ResourceItem != "berries" {
		t.Errorf("Expected berry_bush to yield berries, got %q", bush.ResourceItem)
	}
}

func TestItemRegistryUnitWeight(t *testing.T) {
	registry, err := LoadItemRegistry()
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}

	if w := registry.UnitWeight("berries"); w != 1.0 {
		t.Errorf("Expected berries unit weight 1.0, got %v", w)
	}
	if w := registry.UnitWeight("fiber"); w != 0.5 {
		t.Errorf("Expected fiber unit weight 0.5, got %v", w)
	}
	// Unknown kinds fall back to 1.0 so weight math stays usable
	if w := registry.UnitWeight("no_such_item"); w != 1.0 {
		t.Errorf("Expected unknown item unit weight 1.0, got %v", w)
	}
}

func TestHazardRegistry(t *testing.T) {
	registry, err := LoadHazardRegistry()
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}

	miasma := registry.GetByID("miasma")
	if miasma == nil {
		t.Fatal("miasma not found by ID")
	}
	if !miasma.AlwaysActive() {
		t.Error("miasma should be always active")
	}
	if miasma.Temporary {
		t.Error("miasma should not be temporary")
	}

	fire := registry.GetByID("brushfire")
	if fire == nil {
		t.Fatal("brushfire not found by ID")
	}
	if !fire.Temporary {
		t.Error("brushfire should be temporary")
	}
}

func TestNameGenerator(t *testing.T) {
	names, err := LoadNameGenerator()
	if err != nil {
		t.Fatalf("Failed to load names: %v", err)
	}

	rng1 := rand.New(rand.NewSource(7))
	rng2 := rand.New(rand.NewSource(7))
	for i := 0; i < 5; i++ {
		n1 := names.Generate(rng1)
		n2 := names.Generate(rng2)
		if n1 == "" {
			t.Fatal("Generated empty name")
		}
		if n1 != n2 {
			t.Errorf("Name %d mismatch: %q != %q", i, n1, n2)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF0000", true},
		{"FF0000", true},
		{"#00FF00", true},
		{"#0000FF", true},
		{"#FFFFFF", true},
		{"#000000", true},
		{"invalid", false},
		{"#FFF", false}, // Too short
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) should be invalid, got no error", tt.input)
		}
	}
}

func TestPopDefMethods(t *testing.T) {
	def := PopDef{
		ID:          "test",
		Name:        "Test Pop",
		Glyph:       "T",
		Color:       "#FF0000",
		SpawnWeight: 50,
	}

	if def.GlyphRune() != 'T' {
		t.Errorf("Expected glyph 'T', got %c", def.GlyphRune())
	}

	color := def.TCellColor()
	if color == 0 {
		t.Error("TCellColor returned zero color")
	}
}

func TestSchemaRejectsMalformedProfiles(t *testing.T) {
	bad := []string{
		`{"pops": []}`,                                      // empty profile list
		`{"pops": [{"id": "x"}]}`,                           // missing name
		`{"items": [{"id": "x", "name": "X"}]}`,             // missing unitWeight
		`{"structures": [{"id": "x", "name": "X", "kind": "tower"}]}`, // unknown kind
		`{"hazards": [{"id": "x", "name": "X", "radius": 0, "trigger": "always"}]}`, // zero radius
	}

	for _, raw := range bad {
		var doc any
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			t.Fatalf("test input is not valid JSON: %v", err)
		}
		if err := profileSchema.Validate(doc); err == nil {
			t.Errorf("Schema accepted malformed profile: %s", raw)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load[PopsFile]("no_such_file.json"); err == nil {
		t.Error("Expected error loading missing file")
	}
}
