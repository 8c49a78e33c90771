// Package behavior implements the per-pop finite state machine.
//
// Exactly one state handler runs per pop per simulation tick. Handlers only
// touch other entities through the world's interaction-slot registry and
// their own pop's inventory, so claim/release races resolve purely by
// processing order within the tick.
package behavior

import (
	"math/rand"

	"github.com/samdwyer/colonyband/internal/gamedata"
	"github.com/samdwyer/colonyband/internal/world"
)

// Context carries the simulation state a handler needs. It is passed
// explicitly to every handler; there is no package-level simulation state.
type Context struct {
	World *world.World
	Items *gamedata.ItemRegistry
	Rng   *rand.Rand

	// TPS is the simulation tick rate; per-second profile values are
	// converted with it.
	TPS int

	// Tick is the current simulation tick number.
	Tick uint64

	// Announce, when set, receives short player-facing feedback lines
	// (deposits, command acknowledgements). Optional.
	Announce func(msg string)
}

// say emits player-facing feedback if a sink is attached.
func (c *Context) say(msg string) {
	if c.Announce != nil {
		c.Announce(msg)
	}
}

// speedPerTick converts a tiles-per-second speed to a per-tick step.
func (c *Context) speedPerTick(tilesPerSecond float64) float64 {
	tps := c.TPS
	if tps <= 0 {
		tps = 60
	}
	return tilesPerSecond / float64(tps)
}

// unitWeight resolves an item kind's carry weight, defaulting to 1.
func (c *Context) unitWeight(kind string) float64 {
	if c.Items == nil {
		return 1.0
	}
	return c.Items.UnitWeight(kind)
}
