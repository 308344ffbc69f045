package domain

// Rect is a room footprint. The walls sit on the outer edge; the carved
// interior is X+1..X+W-1 by Y+1..Y+H-1.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Center uses integer division, so it always lands on the carved interior
// for rooms at least 2 wide.
func (r Rect) Center() Position {
	return Position{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Intersects treats touching edges as overlap, which leaves a wall between
// neighbouring rooms.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.W && r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H && r.Y+r.H >= other.Y
}

// Contains reports whether p lies within the carved interior.
func (r Rect) Contains(p Position) bool {
	return p.X > r.X && p.X < r.X+r.W && p.Y > r.Y && p.Y < r.Y+r.H
}
