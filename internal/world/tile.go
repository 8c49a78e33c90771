// Package world provides the colony map, structures, and interaction slots.
package world

// Tile represents a single terrain tile.
type Tile rune

const (
	// TileGrass is the default passable ground.
	TileGrass Tile = '.'
	// TileMeadow is passable tall grass, purely cosmetic.
	TileMeadow Tile = ','
	// TileDirt is a passable worn patch.
	TileDirt Tile = ':'
	// TileWater is impassable.
	TileWater Tile = '~'
)

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t != TileWater
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}
