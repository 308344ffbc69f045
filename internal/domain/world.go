package domain

import "rogee/internal/ecs"

// TileType is the static terrain of one map cell.
type TileType uint8

const (
	TileWall TileType = iota
	TileFloor
)

func (t TileType) String() string {
	if t == TileFloor {
		return "floor"
	}
	return "wall"
}

// Position is a tile coordinate.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Map is one dungeon level. All per-tile slices are indexed by Index(x, y).
type Map struct {
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Tiles  []TileType `json:"-"`
	Rooms  []Rect     `json:"rooms"`

	// Revealed is sticky: once true it never goes back.
	Revealed []bool `json:"-"`
	// Visible is what the player sees this tick; always a subset of Revealed.
	Visible []bool `json:"-"`
	// Blocked is rebuilt every tick from walls and BlocksTile entities.
	Blocked []bool `json:"-"`
	// Occupants lists every positioned entity per tile.
	Occupants [][]ecs.Entity `json:"-"`
}

// NewMap returns a width x height map filled with walls.
func NewMap(width, height int) *Map {
	size := width * height
	m := &Map{
		Width:     width,
		Height:    height,
		Tiles:     make([]TileType, size),
		Rooms:     make([]Rect, 0, 16),
		Revealed:  make([]bool, size),
		Visible:   make([]bool, size),
		Blocked:   make([]bool, size),
		Occupants: make([][]ecs.Entity, size),
	}
	for i := range m.Tiles {
		m.Tiles[i] = TileWall
	}
	m.PopulateBlocked()
	return m
}
