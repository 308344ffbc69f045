package domain

import "rogee/internal/ecs"

// Index maps a tile coordinate to its slot in the per-tile slices.
// The hot loops assume (x, y) is in bounds; check with InBounds at the edges.
func (m *Map) Index(x, y int) int {
	return y*m.Width + x
}

// XY is the inverse of Index.
func (m *Map) XY(idx int) (int, int) {
	return idx % m.Width, idx / m.Width
}

// InBounds reports whether (x, y) lies on the map.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// Size is the number of tiles.
func (m *Map) Size() int {
	return m.Width * m.Height
}

// TileAt returns the terrain at (x, y). Out of bounds reads as wall.
func (m *Map) TileAt(x, y int) TileType {
	if !m.InBounds(x, y) {
		return TileWall
	}
	return m.Tiles[m.Index(x, y)]
}

// IsOpaque reports whether (x, y) blocks sight. Map edges block sight.
func (m *Map) IsOpaque(x, y int) bool {
	return m.TileAt(x, y) == TileWall
}

// IsBlocked reports whether movement onto (x, y) is illegal this tick.
func (m *Map) IsBlocked(x, y int) bool {
	if !m.InBounds(x, y) {
		return true
	}
	return m.Blocked[m.Index(x, y)]
}

// PopulateBlocked resets Blocked to the static wall mask.
func (m *Map) PopulateBlocked() {
	for i, t := range m.Tiles {
		m.Blocked[i] = t == TileWall
	}
}

// ClearOccupants empties every tile's occupant list, keeping capacity.
func (m *Map) ClearOccupants() {
	for i := range m.Occupants {
		m.Occupants[i] = m.Occupants[i][:0]
	}
}

// AddOccupant records e as standing on tile idx.
func (m *Map) AddOccupant(idx int, e ecs.Entity) {
	m.Occupants[idx] = append(m.Occupants[idx], e)
}

// EntitiesAt returns the occupants of (x, y) as of the last indexing pass.
func (m *Map) EntitiesAt(x, y int) []ecs.Entity {
	if !m.InBounds(x, y) {
		return nil
	}
	return m.Occupants[m.Index(x, y)]
}

// ClearVisible resets the per-tick visibility mask.
func (m *Map) ClearVisible() {
	for i := range m.Visible {
		m.Visible[i] = false
	}
}

// SetFloor carves (x, y) to floor. Out of bounds writes are dropped.
func (m *Map) SetFloor(x, y int) {
	if !m.InBounds(x, y) {
		return
	}
	m.Tiles[m.Index(x, y)] = TileFloor
}
