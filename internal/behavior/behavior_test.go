package behavior

import (
	"math/rand"
	"testing"

	"github.com/samdwyer/colonyband/internal/entity"
	"github.com/samdwyer/colonyband/internal/gamedata"
	"github.com/samdwyer/colonyband/internal/world"
)

// Test fixtures run at 1 tick per second with fast movers so travel legs
// finish in a single tick and work cycles take exactly one tick.

func fp(v float64) *float64 { return &v }

func newTestWorld() *world.World {
	return world.New(30, 12, rand.New(rand.NewSource(1)))
}

func newTestContext(w *world.World) *Context {
	return &Context{
		World: w,
		Rng:   rand.New(rand.NewSource(2)),
		TPS:   1,
	}
}

// testPop spawns a pop with an exact carry capacity (strength contributes
// nothing) and the given haul threshold.
func testPop(t *testing.T, w *world.World, x, y, carryCap, thresholdPct float64) *entity.Pop {
	t.Helper()
	def := &gamedata.PopDef{
		ID:    "test",
		Name:  "Test Pop",
		Glyph: "t",
		Stats: &gamedata.StatBlock{
			BaseCarryCapacity: fp(carryCap),
			CarryPerStrength:  fp(0),
			WalkSpeed:         fp(20),
			RunSpeed:          fp(40),
		},
		Behavior: &gamedata.BehaviorSettings{
			HaulThresholdPct: fp(thresholdPct),
			ForageSeconds:    fp(1),
		},
	}
	p, err := entity.NewPop(def, "Test Pop", x, y, 1, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("NewPop failed: %v", err)
	}
	w.AddPop(p)
	return p
}

func addBush(t *testing.T, w *world.World, x, y, resourceCount, yield, slots int) *world.Structure {
	t.Helper()
	def := &gamedata.StructureDef{
		ID:            "test_bush",
		Name:          "Test Bush",
		Glyph:         "*",
		Kind:          gamedata.KindBush,
		ResourceItem:  "berries",
		ResourceCount: resourceCount,
		YieldPerCycle: yield,
	}
	for i := 0; i < slots; i++ {
		def.Slots = append(def.Slots, gamedata.SlotDef{DX: float64(-1 + 2*i), DY: 0, TypeTag: "forage"})
	}
	s := world.NewStructure(def, x, y)
	if s == nil {
		t.Fatal("NewStructure returned nil")
	}
	w.AddStructure(s)
	return s
}

func addStockpile(t *testing.T, w *world.World, x, y, capacity int) *world.Structure {
	t.Helper()
	def := &gamedata.StructureDef{
		ID:       "test_stockpile",
		Name:     "Test Stockpile",
		Glyph:    "_",
		Kind:     gamedata.KindStockpile,
		Capacity: capacity,
		Slots:    []gamedata.SlotDef{{DX: -1, DY: 0, TypeTag: "haul"}},
	}
	s := world.NewStructure(def, x, y)
	if s == nil {
		t.Fatal("NewStructure returned nil")
	}
	w.AddStructure(s)
	return s
}

// tickUntil runs the pop's state machine until cond holds or maxTicks pass.
func tickUntil(c *Context, p *entity.Pop, maxTicks int, cond func() bool) bool {
	for i := 0; i < maxTicks; i++ {
		if cond() {
			return true
		}
		c.Tick++
		c.TickPop(p)
	}
	return cond()
}
