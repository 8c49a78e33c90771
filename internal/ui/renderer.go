package ui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/colonyband/internal/entity"
	"github.com/samdwyer/colonyband/internal/hazard"
	"github.com/samdwyer/colonyband/internal/world"
)

// Frame is everything the renderer needs for one draw. The game layer fills
// it each tick; the renderer never reaches back into game state.
type Frame struct {
	World       *world.World
	Hazards     []*hazard.Hazard
	SelectedPop *entity.Pop
	Message     string
	Tick        uint64
	Paused      bool
}

// Renderer handles drawing the colony to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws one frame: terrain, then items, structures, hazards, pops, and
// finally the HUD. Later layers overdraw earlier ones.
func (r *Renderer) Render(f Frame) {
	r.screen.Clear()

	r.drawTerrain(f.World)
	r.drawGroundItems(f.World)
	r.drawStructures(f.World)
	r.drawHazards(f.Hazards)
	r.drawPops(f.World, f.SelectedPop)
	r.drawHUD(f)

	r.screen.Show()
}

func (r *Renderer) drawTerrain(w *world.World) {
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			tile := w.GetTile(x, y)
			r.screen.SetContent(x, y, tile.Rune(), r.tileStyle(tile))
		}
	}
}

func (r *Renderer) tileStyle(tile world.Tile) tcell.Style {
	switch tile {
	case world.TileGrass:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	case world.TileMeadow:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen)
	case world.TileDirt:
		return tcell.StyleDefault.Foreground(tcell.Color100) // dull brown
	case world.TileWater:
		return tcell.StyleDefault.Foreground(tcell.ColorBlue)
	default:
		return tcell.StyleDefault
	}
}

func (r *Renderer) drawGroundItems(w *world.World) {
	style := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	for _, item := range w.GroundItems() {
		r.screen.SetContent(int(math.Round(item.X)), int(math.Round(item.Y)), '%', style)
	}
}

func (r *Renderer) drawStructures(w *world.World) {
	for _, s := range w.Structures() {
		glyph := s.Def.GlyphRune()
		style := tcell.StyleDefault.Foreground(s.Def.TCellColor())
		if s.IsBush() && s.Depleted() {
			style = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
		}
		r.screen.SetContent(s.X, s.Y, glyph, style)
	}
}

func (r *Renderer) drawHazards(hazards []*hazard.Hazard) {
	for _, h := range hazards {
		if !h.IsActive() {
			continue
		}
		cx := int(math.Round(h.X))
		cy := int(math.Round(h.Y))
		area := tcell.StyleDefault.Foreground(h.Def.TCellColor()).Dim(true)
		radius := int(h.Def.Radius)
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				if math.Hypot(float64(dx), float64(dy)) > h.Def.Radius {
					continue
				}
				r.screen.SetContent(cx+dx, cy+dy, '░', area)
			}
		}
		r.screen.SetContent(cx, cy, h.Def.GlyphRune(), tcell.StyleDefault.Foreground(h.Def.TCellColor()).Bold(true))
	}
}

func (r *Renderer) drawPops(w *world.World, selected *entity.Pop) {
	for _, p := range w.Pops() {
		x := int(math.Round(p.X))
		y := int(math.Round(p.Y))
		style := tcell.StyleDefault.Foreground(p.Color)
		if selected != nil && p.ID == selected.ID {
			style = style.Bold(true)
			r.drawSelectionRing(x, y)
		}
		r.screen.SetContent(x, y, p.Glyph, style)
	}

	// Destination marker for the selected pop's current travel order.
	if selected != nil && selected.HasTarget {
		tx := int(math.Round(selected.TargetX))
		ty := int(math.Round(selected.TargetY))
		r.screen.SetContent(tx, ty, '×', tcell.StyleDefault.Foreground(tcell.ColorAqua))
	}
}

// drawSelectionRing marks the cell corners around the selected pop.
func (r *Renderer) drawSelectionRing(x, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	r.screen.SetContent(x-1, y-1, '┌', style)
	r.screen.SetContent(x+1, y-1, '┐', style)
	r.screen.SetContent(x-1, y+1, '└', style)
	r.screen.SetContent(x+1, y+1, '┘', style)
}

func (r *Renderer) drawHUD(f Frame) {
	_, height := r.screen.Size()
	hudY := f.World.Height
	if hudY >= height {
		hudY = height - 2
	}

	status := fmt.Sprintf("tick %d  pops %d", f.Tick, len(f.World.Pops()))
	if p := f.SelectedPop; p != nil {
		status += fmt.Sprintf("  | %s [%s] hp %d/%d carry %.1f/%.1f",
			p.Name, p.State, p.Stats.Health, p.Stats.MaxHealth,
			p.Inventory.TotalWeight(), p.Stats.MaxCarry)
	}
	if f.Paused {
		status += "  | PAUSED"
	}
	r.drawLine(status, hudY, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	if f.Message != "" {
		r.drawLine(f.Message, hudY+1, tcell.StyleDefault.Foreground(tcell.ColorLightCyan))
	}
}

// drawLine writes a single row of text starting at column zero.
func (r *Renderer) drawLine(msg string, y int, style tcell.Style) {
	for i, ch := range msg {
		r.screen.SetContent(i, y, ch, style)
	}
}
