package gamedata

import "github.com/gdamore/tcell/v2"

// ItemDef defines an item kind loaded from items.json.
type ItemDef struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`       // Display name (e.g., "Berries")
	Glyph      string  `json:"glyph"`      // Single character for ground rendering
	Color      string  `json:"color"`      // Hex color
	UnitWeight float64 `json:"unitWeight"` // Carry weight per unit
}

// GlyphRune returns the glyph as a rune for rendering.
func (d *ItemDef) GlyphRune() rune {
	if len(d.Glyph) == 0 {
		return '%'
	}
	return []rune(d.Glyph)[0]
}

// TCellColor returns the item's color as a tcell color, defaulting to white.
func (d *ItemDef) TCellColor() tcell.Color {
	return ColorOrDefault(d.Color, tcell.ColorWhite)
}

// ItemsFile represents the structure of items.json.
type ItemsFile struct {
	Items []ItemDef `json:"items"`
}

// LoadItems loads item definitions from the embedded items.json file.
func LoadItems() ([]ItemDef, error) {
	file, err := Load[ItemsFile]("items.json")
	if err != nil {
		return nil, err
	}
	return file.Items, nil
}
