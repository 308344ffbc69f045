package dungeon

import (
	"math/rand"

	"rogee/internal/domain"
)

// Константы генерации
const (
	MapWidth  = 80
	MapHeight = 50
	MaxRooms  = 30
	MinSize   = 6
	MaxSize   = 10
)

// Generate builds a level with the default size and room limits.
func Generate(rng *rand.Rand) *domain.Map {
	return NewLevel(rng).Build()
}

// --- Вспомогательные функции ---

func createRoom(m *domain.Map, room domain.Rect) {
	for y := room.Y + 1; y < room.Y+room.H; y++ {
		for x := room.X + 1; x < room.X+room.W; x++ {
			m.SetFloor(x, y)
		}
	}
}

func createHCorridor(m *domain.Map, x1, x2, y int) {
	start := clamp(min(x1, x2), 0, m.Width-1)
	end := clamp(max(x1, x2), 0, m.Width-1)
	for x := start; x <= end; x++ {
		m.SetFloor(x, y)
	}
}

func createVCorridor(m *domain.Map, y1, y2, x int) {
	start := clamp(min(y1, y2), 0, m.Height-1)
	end := clamp(max(y1, y2), 0, m.Height-1)
	for y := start; y <= end; y++ {
		m.SetFloor(x, y)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
