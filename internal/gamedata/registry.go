package gamedata

import (
	"errors"
	"math/rand"
)

// PopRegistry holds loaded pop definitions and provides spawning utilities.
type PopRegistry struct {
	pops        []PopDef
	totalWeight int
}

// NewPopRegistry creates a registry from loaded pop definitions.
func NewPopRegistry(pops []PopDef) *PopRegistry {
	totalWeight := 0
	for _, p := range pops {
		totalWeight += p.SpawnWeight
	}
	return &PopRegistry{
		pops:        pops,
		totalWeight: totalWeight,
	}
}

// LoadPopRegistry loads and creates a registry from the embedded pops.json.
func LoadPopRegistry() (*PopRegistry, error) {
	pops, err := LoadPops()
	if err != nil {
		return nil, err
	}
	if len(pops) == 0 {
		return nil, errors.New("no pops loaded from pops.json")
	}
	return NewPopRegistry(pops), nil
}

// MustLoadPopRegistry loads a registry, panicking on error.
func MustLoadPopRegistry() *PopRegistry {
	registry, err := LoadPopRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// SpawnRandom selects a random pop definition using weighted probability.
// Definitions with higher spawnWeight are more likely to be selected.
func (r *PopRegistry) SpawnRandom(rng *rand.Rand) *PopDef {
	if r.totalWeight <= 0 || len(r.pops) == 0 {
		return nil
	}

	roll := rng.Intn(r.totalWeight)

	cumulative := 0
	for i := range r.pops {
		cumulative += r.pops[i].SpawnWeight
		if roll < cumulative {
			return &r.pops[i]
		}
	}

	// Fallback (shouldn't happen)
	return &r.pops[0]
}

// GetByID returns the pop definition with the given ID, or nil if not found.
func (r *PopRegistry) GetByID(id string) *PopDef {
	for i := range r.pops {
		if r.pops[i].ID == id {
			return &r.pops[i]
		}
	}
	return nil
}

// All returns all pop definitions.
func (r *PopRegistry) All() []PopDef {
	return r.pops
}

// Count returns the number of pop types in the registry.
func (r *PopRegistry) Count() int {
	return len(r.pops)
}

// =============================================================================
// ItemRegistry
// =============================================================================

// ItemRegistry holds loaded item definitions and provides lookup utilities.
type ItemRegistry struct {
	items map[string]*ItemDef
	all   []ItemDef
}

// NewItemRegistry creates a registry from loaded item definitions.
func NewItemRegistry(items []ItemDef) *ItemRegistry {
	registry := &ItemRegistry{
		items: make(map[string]*ItemDef),
		all:   items,
	}
	for i := range items {
		registry.items[items[i].ID] = &items[i]
	}
	return registry
}

// LoadItemRegistry loads and creates a registry from the embedded items.json.
func LoadItemRegistry() (*ItemRegistry, error) {
	items, err := LoadItems()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New("no items loaded from items.json")
	}
	return NewItemRegistry(items), nil
}

// MustLoadItemRegistry loads a registry, panicking on error.
func MustLoadItemRegistry() *ItemRegistry {
	registry, err := LoadItemRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the item definition with the given ID, or nil if not found.
func (r *ItemRegistry) GetByID(id string) *ItemDef {
	return r.items[id]
}

// UnitWeight returns the unit weight for an item kind, or 1.0 for unknown
// kinds so weight math stays sane with partial data.
func (r *ItemRegistry) UnitWeight(id string) float64 {
	if def := r.items[id]; def != nil {
		return def.UnitWeight
	}
	return 1.0
}

// All returns all item definitions.
func (r *ItemRegistry) All() []ItemDef {
	return r.all
}

// Count returns the number of item kinds in the registry.
func (r *ItemRegistry) Count() int {
	return len(r.all)
}

// =============================================================================
// StructureRegistry
// =============================================================================

// StructureRegistry holds loaded structure definitions.
type StructureRegistry struct {
	structures  []StructureDef
	byID        map[string]*StructureDef
	totalWeight int
}

// NewStructureRegistry creates a registry from loaded structure definitions.
func NewStructureRegistry(structures []StructureDef) *StructureRegistry {
	registry := &StructureRegistry{
		structures: structures,
		byID:       make(map[string]*StructureDef),
	}
	for i := range structures {
		registry.byID[structures[i].ID] = &structures[i]
		registry.totalWeight += structures[i].SpawnWeight
	}
	return registry
}

// LoadStructureRegistry loads and creates a registry from the embedded structures.json.
func LoadStructureRegistry() (*StructureRegistry, error) {
	structures, err := LoadStructures()
	if err != nil {
		return nil, err
	}
	if len(structures) == 0 {
		return nil, errors.New("no structures loaded from structures.json")
	}
	return NewStructureRegistry(structures), nil
}

// MustLoadStructureRegistry loads a registry, panicking on error.
func MustLoadStructureRegistry() *StructureRegistry {
	registry, err := LoadStructureRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the structure definition with the given ID, or nil if not found.
func (r *StructureRegistry) GetByID(id string) *StructureDef {
	return r.byID[id]
}

// OfKind returns all structure definitions of the given kind.
func (r *StructureRegistry) OfKind(kind StructureKind) []*StructureDef {
	var result []*StructureDef
	for i := range r.structures {
		if r.structures[i].Kind == kind {
			result = append(result, &r.structures[i])
		}
	}
	return result
}

// SpawnRandom selects a random structure definition of the given kind using
// weighted probability among that kind's definitions.
func (r *StructureRegistry) SpawnRandom(rng *rand.Rand, kind StructureKind) *StructureDef {
	candidates := r.OfKind(kind)
	if len(candidates) == 0 {
		return nil
	}
	total := 0
	for _, c := range candidates {
		total += c.SpawnWeight
	}
	if total <= 0 {
		return candidates[0]
	}
	roll := rng.Intn(total)
	cumulative := 0
	for _, c := range candidates {
		cumulative += c.SpawnWeight
		if roll < cumulative {
			return c
		}
	}
	return candidates[0]
}

// All returns all structure definitions.
func (r *StructureRegistry) All() []StructureDef {
	return r.structures
}

// Count returns the number of structure types in the registry.
func (r *StructureRegistry) Count() int {
	return len(r.structures)
}

// =============================================================================
// HazardRegistry
// =============================================================================

// HazardRegistry holds loaded hazard definitions.
type HazardRegistry struct {
	hazards     []HazardDef
	byID        map[string]*HazardDef
	totalWeight int
}

// NewHazardRegistry creates a registry from loaded hazard definitions.
func NewHazardRegistry(hazards []HazardDef) *HazardRegistry {
	registry := &HazardRegistry{
		hazards: hazards,
		byID:    make(map[string]*HazardDef),
	}
	for i := range hazards {
		registry.byID[hazards[i].ID] = &hazards[i]
		registry.totalWeight += hazards[i].SpawnWeight
	}
	return registry
}

// LoadHazardRegistry loads and creates a registry from the embedded hazards.json.
func LoadHazardRegistry() (*HazardRegistry, error) {
	hazards, err := LoadHazards()
	if err != nil {
		return nil, err
	}
	if len(hazards) == 0 {
		return nil, errors.New("no hazards loaded from hazards.json")
	}
	return NewHazardRegistry(hazards), nil
}

// MustLoadHazardRegistry loads a registry, panicking on error.
func MustLoadHazardRegistry() *HazardRegistry {
	registry, err := LoadHazardRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the hazard definition with the given ID, or nil if not found.
func (r *HazardRegistry) GetByID(id string) *HazardDef {
	return r.byID[id]
}

// SpawnRandom selects a random hazard definition using weighted probability.
func (r *HazardRegistry) SpawnRandom(rng *rand.Rand) *HazardDef {
	if r.totalWeight <= 0 || len(r.hazards) == 0 {
		return nil
	}
	roll := rng.Intn(r.totalWeight)
	cumulative := 0
	for i := range r.hazards {
		cumulative += r.hazards[i].SpawnWeight
		if roll < cumulative {
			return &r.hazards[i]
		}
	}
	return &r.hazards[0]
}

// All returns all hazard definitions.
func (r *HazardRegistry) All() []HazardDef {
	return r.hazards
}

// Count returns the number of hazard types in the registry.
func (r *HazardRegistry) Count() int {
	return len(r.hazards)
}
