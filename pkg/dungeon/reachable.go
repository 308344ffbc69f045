package dungeon

import (
	"rogee/internal/domain"

	"github.com/zyedidia/generic/mapset"
)

var cardinal = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Reachable flood-fills Floor tiles from `from` over the 4-neighbourhood.
// A wall start yields an empty set.
func Reachable(m *domain.Map, from domain.Position) mapset.Set[domain.Position] {
	visited := mapset.New[domain.Position]()
	if m.TileAt(from.X, from.Y) != domain.TileFloor {
		return visited
	}

	queue := []domain.Position{from}
	visited.Put(from)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range cardinal {
			next := cur.Shift(d[0], d[1])
			if visited.Has(next) || m.TileAt(next.X, next.Y) != domain.TileFloor {
				continue
			}
			visited.Put(next)
			queue = append(queue, next)
		}
	}
	return visited
}

// Connected reports whether every room center is reachable from room 0.
func Connected(m *domain.Map) bool {
	if len(m.Rooms) == 0 {
		return true
	}
	reach := Reachable(m, m.Rooms[0].Center())
	for _, r := range m.Rooms {
		if !reach.Has(r.Center()) {
			return false
		}
	}
	return true
}
