// Package game provides the main loop, tuning config, and the player
// command layer.
package game

import (
	"context"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/colonyband/internal/behavior"
	"github.com/samdwyer/colonyband/internal/entity"
	"github.com/samdwyer/colonyband/internal/gamedata"
	"github.com/samdwyer/colonyband/internal/hazard"
	"github.com/samdwyer/colonyband/internal/obs"
	"github.com/samdwyer/colonyband/internal/telemetry"
	"github.com/samdwyer/colonyband/internal/ui"
	"github.com/samdwyer/colonyband/internal/world"
)

// Game holds the entire game state.
type Game struct {
	cfg      Config
	screen   *ui.Screen
	renderer *ui.Renderer

	world   *world.World
	sim     *behavior.Context
	hazards []*hazard.Hazard
	rng     *rand.Rand

	pops       *gamedata.PopRegistry
	items      *gamedata.ItemRegistry
	structures *gamedata.StructureRegistry
	hazardDefs *gamedata.HazardRegistry
	names      *gamedata.NameGenerator

	selection SelectionState
	message   string
	tick      uint64
	paused    bool
	running   bool

	observer *obs.Server
}

// New creates a new game instance from the given tuning.
func New(cfg Config) (*Game, error) {
	pops, err := gamedata.LoadPopRegistry()
	if err != nil {
		return nil, err
	}
	items, err := gamedata.LoadItemRegistry()
	if err != nil {
		return nil, err
	}
	structures, err := gamedata.LoadStructureRegistry()
	if err != nil {
		return nil, err
	}
	hazardDefs, err := gamedata.LoadHazardRegistry()
	if err != nil {
		return nil, err
	}
	names, err := gamedata.LoadNameGenerator()
	if err != nil {
		return nil, err
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Game{
		cfg:        cfg,
		screen:     screen,
		renderer:   ui.NewRenderer(screen),
		rng:        rand.New(rand.NewSource(seed)),
		pops:       pops,
		items:      items,
		structures: structures,
		hazardDefs: hazardDefs,
		names:      names,
		running:    true,
	}, nil
}

// Run executes the main game loop.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")

	ctx, initSpan := tracer.Start(ctx, "game.init")
	g.setupWorld(ctx)
	initSpan.SetAttributes(
		attribute.Int("world.pops", len(g.world.Pops())),
		attribute.Int("world.structures", len(g.world.Structures())),
		attribute.Int("world.hazards", len(g.hazards)),
	)
	initSpan.End()

	g.startObserver()

	// Poll terminal events on their own goroutine; the loop below owns all
	// simulation state.
	events := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(g.cfg.TicksPerSecond))
	defer ticker.Stop()

	lastStats := time.Now()
	for g.running {
		select {
		case <-ctx.Done():
			g.running = false
		case ev, ok := <-events:
			if !ok {
				g.running = false
				break
			}
			g.handleEvent(ev)
		case <-ticker.C:
			if !g.paused {
				g.step()
			}
			g.render()
			if time.Since(lastStats) >= time.Second {
				g.recordStats(ctx, tracer)
				lastStats = time.Now()
			}
		}
	}

	if g.observer != nil {
		g.observer.Close()
	}
	g.screen.Close()
	return nil
}

// setupWorld generates terrain and populates it from the registries.
func (g *Game) setupWorld(ctx context.Context) {
	w := world.New(g.cfg.MapWidth, g.cfg.MapHeight, g.rng)
	w.Generate(ctx)
	g.world = w

	g.sim = &behavior.Context{
		World: w,
		Items: g.items,
		Rng:   g.rng,
		TPS:   g.cfg.TicksPerSecond,
		Announce: func(msg string) {
			g.message = msg
		},
	}

	for i := 0; i < g.cfg.BushCount; i++ {
		def := g.structures.SpawnRandom(g.rng, gamedata.KindBush)
		x, y := g.world.RandomPassablePoint()
		w.AddStructure(world.NewStructure(def, x, y))
	}
	for i := 0; i < g.cfg.StockpileCount; i++ {
		def := g.structures.SpawnRandom(g.rng, gamedata.KindStockpile)
		x, y := g.world.RandomPassablePoint()
		w.AddStructure(world.NewStructure(def, x, y))
	}

	for i := 0; i < g.cfg.PopCount; i++ {
		def := g.pops.SpawnRandom(g.rng)
		x, y := g.world.RandomPassablePoint()
		p, err := entity.NewPop(def, g.names.Generate(g.rng), float64(x), float64(y), g.cfg.TicksPerSecond, g.rng)
		if err != nil {
			// Fatal to this spawn only; the rest of the colony is fine.
			logrus.WithError(err).Warn("pop spawn failed")
			continue
		}
		w.AddPop(p)
	}

	for i := 0; i < g.cfg.HazardCount; i++ {
		def := g.hazardDefs.SpawnRandom(g.rng)
		x, y := g.world.RandomPassablePoint()
		h, err := hazard.New(def, float64(x), float64(y), g.cfg.TicksPerSecond)
		if err != nil {
			logrus.WithError(err).Warn("hazard spawn failed")
			continue
		}
		g.hazards = append(g.hazards, h)
	}
}

// startObserver brings up the websocket feed when configured. A failed
// listen is logged and ignored; the game runs fine without observers.
func (g *Game) startObserver() {
	addr := os.Getenv("OBS_ADDR")
	if addr == "" {
		addr = g.cfg.ObserverAddr
	}
	if addr == "" {
		return
	}
	g.observer = obs.NewServer(addr)
	if err := g.observer.Start(); err != nil {
		logrus.WithError(err).Warn("observer feed failed to start")
		g.observer = nil
	}
}

// step advances the simulation one tick: every pop's state handler once,
// then every hazard, then cleanup of the dead and the expired.
func (g *Game) step() {
	g.tick++
	g.sim.Tick = g.tick

	for _, p := range g.world.Pops() {
		g.sim.TickPop(p)
	}

	var dead []string
	for _, p := range g.world.Pops() {
		if !p.IsAlive() {
			dead = append(dead, p.ID)
		}
	}
	for _, id := range dead {
		g.world.RemovePop(id)
	}

	alive := g.hazards[:0]
	for _, h := range g.hazards {
		h.Tick(g.world, g.rng)
		if !h.Expired() {
			alive = append(alive, h)
		}
	}
	g.hazards = alive

	if g.observer != nil && g.cfg.ObserverEveryTicks > 0 && g.tick%uint64(g.cfg.ObserverEveryTicks) == 0 {
		g.observer.Broadcast(obs.BuildSnapshot(g.tick, g.world, g.hazards))
	}
}

// handleEvent processes a single terminal event.
func (g *Game) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ev)
	case *tcell.EventMouse:
		g.handleMouse(ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		case ' ':
			g.paused = !g.paused
		case 'i', 'I':
			// Interact with the nearest structure, keyboard fallback for
			// the right-click command.
			if p := g.selection.Selected(g); p != nil {
				if id := g.nearestStructureTile(p); id != "" {
					g.sim.IssueInteractCommand(p, id)
				}
			}
		}
	}
}

// render draws the current frame.
func (g *Game) render() {
	g.renderer.Render(ui.Frame{
		World:       g.world,
		Hazards:     g.hazards,
		SelectedPop: g.selection.Selected(g),
		Message:     g.message,
		Tick:        g.tick,
		Paused:      g.paused,
	})
}

// recordStats emits a once-per-second span with a state histogram.
func (g *Game) recordStats(ctx context.Context, tracer trace.Tracer) {
	_, span := tracer.Start(ctx, "sim.stats")
	defer span.End()

	states := make(map[string]int)
	for _, p := range g.world.Pops() {
		states[p.State.String()]++
	}

	span.SetAttributes(
		attribute.Int64("sim.tick", int64(g.tick)),
		attribute.Int("sim.pops", len(g.world.Pops())),
		attribute.Int("sim.hazards", len(g.hazards)),
		attribute.Int("sim.ground_items", len(g.world.GroundItems())),
	)
	for state, n := range states {
		span.SetAttributes(attribute.Int("sim.state."+state, n))
	}
}
