package game

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/colonyband/internal/entity"
)

// selectRadius is how far (in tiles) a click can land from a pop and still
// select it.
const selectRadius = 1.0

// SelectionState tracks which pop the player has selected. It is owned by
// the game layer and passed where needed; nothing reads it ambiently.
type SelectionState struct {
	SelectedPopID string
}

// Selected resolves the selected pop, clearing a stale id if the pop died.
func (s *SelectionState) Selected(g *Game) *entity.Pop {
	if s.SelectedPopID == "" {
		return nil
	}
	p := g.world.PopByID(s.SelectedPopID)
	if p == nil {
		s.SelectedPopID = ""
	}
	return p
}

// handleMouse translates raw mouse input into selection changes and
// high-level commands for the behavior layer.
func (g *Game) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.Button1 != 0:
		// Left click: select the pop under the cursor, or clear.
		p := g.world.PopAt(float64(x), float64(y), selectRadius)
		if p != nil {
			g.selection.SelectedPopID = p.ID
			g.message = fmt.Sprintf("%s (%s)", p.Name, p.State)
		} else {
			g.selection.SelectedPopID = ""
			g.message = ""
		}

	case buttons&tcell.Button2 != 0:
		// Right click: command the selected pop.
		p := g.selection.Selected(g)
		if p == nil {
			return
		}
		if target := g.world.StructureAtTile(x, y); target != nil {
			g.sim.IssueInteractCommand(p, target.ID)
			g.message = fmt.Sprintf("%s -> %s", p.Name, target.Def.Name)
			return
		}
		g.sim.IssueMoveCommand(p, float64(x), float64(y))
		g.message = fmt.Sprintf("%s -> (%d,%d)", p.Name, x, y)
	}
}

// nearestStructureTile is a small helper for keyboard-driven interact: the
// closest structure to the selected pop within its perception radius.
func (g *Game) nearestStructureTile(p *entity.Pop) string {
	bestDist := p.Stats.PerceptionRadius
	bestID := ""
	for _, s := range g.world.Structures() {
		d := math.Hypot(float64(s.X)-p.X, float64(s.Y)-p.Y)
		if d <= bestDist {
			bestDist = d
			bestID = s.ID
		}
	}
	return bestID
}
