package world

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/colonyband/internal/telemetry"
)

const (
	// Default map dimensions.
	DefaultWidth  = 80
	DefaultHeight = 24

	// Patch generation parameters.
	waterPatches   = 2
	meadowPatches  = 6
	dirtPatches    = 3
	minPatchRadius = 2
	maxPatchRadius = 5
)

// Generate scatters terrain features over the grass base: a couple of ponds,
// meadow patches, and worn dirt. Deterministic for a given rng seed.
func (w *World) Generate(ctx context.Context) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "world.generate")
	defer span.End()

	startTime := time.Now()

	w.scatterPatches(TileMeadow, meadowPatches)
	w.scatterPatches(TileDirt, dirtPatches)
	w.scatterPatches(TileWater, waterPatches)

	passable := 0
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			if w.Tiles[y][x].IsPassable() {
				passable++
			}
		}
	}

	span.SetAttributes(
		attribute.Int("world.width", w.Width),
		attribute.Int("world.height", w.Height),
		attribute.Int("world.passable_tiles", passable),
		attribute.Int64("world.generation_ms", time.Since(startTime).Milliseconds()),
	)
}

// scatterPatches stamps count roughly-circular blobs of the given tile.
func (w *World) scatterPatches(tile Tile, count int) {
	for i := 0; i < count; i++ {
		cx := 2 + w.rng.Intn(w.Width-4)
		cy := 2 + w.rng.Intn(w.Height-4)
		radius := minPatchRadius + w.rng.Intn(maxPatchRadius-minPatchRadius+1)

		for y := cy - radius; y <= cy+radius; y++ {
			for x := cx - radius; x <= cx+radius; x++ {
				if x <= 0 || x >= w.Width-1 || y <= 0 || y >= w.Height-1 {
					continue
				}
				dx, dy := x-cx, y-cy
				// Ragged edge: drop some rim tiles
				if dx*dx+dy*dy > radius*radius {
					continue
				}
				if dx*dx+dy*dy > (radius-1)*(radius-1) && w.rng.Intn(2) == 0 {
					continue
				}
				w.Tiles[y][x] = tile
			}
		}
	}
}
