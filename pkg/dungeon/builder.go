package dungeon

import (
	"math/rand"

	"rogee/internal/domain"
	"rogee/pkg/logger"

	"github.com/sirupsen/logrus"
)

// LevelBuilder предоставляет fluent API для создания уровней
type LevelBuilder struct {
	width    int
	height   int
	maxRooms int
	minSize  int
	maxSize  int
	rng      *rand.Rand
}

// NewLevel создает новый builder для уровня. All randomness comes from rng,
// so a fixed seed gives the same map.
func NewLevel(rng *rand.Rand) *LevelBuilder {
	return &LevelBuilder{
		width:    MapWidth,
		height:   MapHeight,
		maxRooms: MaxRooms,
		minSize:  MinSize,
		maxSize:  MaxSize,
		rng:      rng,
	}
}

// WithSize устанавливает размер карты
func (b *LevelBuilder) WithSize(width, height int) *LevelBuilder {
	b.width = width
	b.height = height
	return b
}

// WithRoomLimits sets the inclusive range for room width and height.
func (b *LevelBuilder) WithRoomLimits(minSize, maxSize int) *LevelBuilder {
	b.minSize = minSize
	b.maxSize = maxSize
	return b
}

// WithRooms sets the number of placement attempts.
func (b *LevelBuilder) WithRooms(maxRooms int) *LevelBuilder {
	b.maxRooms = maxRooms
	return b
}

func (b *LevelBuilder) randRange(min, max int) int {
	return b.rng.Intn(max-min+1) + min
}

// Build генерирует комнаты и коридоры. Rooms come back in acceptance order;
// room 0 is where the player starts.
func (b *LevelBuilder) Build() *domain.Map {
	m := domain.NewMap(b.width, b.height)

	for i := 0; i < b.maxRooms; i++ {
		w := b.randRange(b.minSize, b.maxSize)
		h := b.randRange(b.minSize, b.maxSize)
		// Room doesn't fit this map at all.
		if b.width-w-1 < 1 || b.height-h-1 < 1 {
			continue
		}
		x := b.randRange(1, b.width-w-1)
		y := b.randRange(1, b.height-h-1)

		newRoom := domain.Rect{X: x, Y: y, W: w, H: h}

		// Проверяем пересечения
		failed := false
		for _, other := range m.Rooms {
			if newRoom.Intersects(other) {
				failed = true
				break
			}
		}
		if failed {
			continue
		}

		createRoom(m, newRoom)

		// Соединяем с предыдущей комнатой
		if len(m.Rooms) > 0 {
			prev := m.Rooms[len(m.Rooms)-1].Center()
			curr := newRoom.Center()

			if b.rng.Intn(2) == 0 {
				createHCorridor(m, prev.X, curr.X, prev.Y)
				createVCorridor(m, prev.Y, curr.Y, curr.X)
			} else {
				createVCorridor(m, prev.Y, curr.Y, prev.X)
				createHCorridor(m, prev.X, curr.X, curr.Y)
			}
		}
		m.Rooms = append(m.Rooms, newRoom)
	}

	m.PopulateBlocked()

	logger.Log.WithFields(logrus.Fields{
		"component": "dungeon",
		"width":     b.width,
		"height":    b.height,
		"attempts":  b.maxRooms,
		"rooms":     len(m.Rooms),
	}).Debug("level generated")

	return m
}

// StartPos возвращает стартовую позицию (центр первой комнаты)
func StartPos(m *domain.Map) domain.Position {
	if len(m.Rooms) > 0 {
		return m.Rooms[0].Center()
	}
	return domain.Position{X: m.Width / 2, Y: m.Height / 2}
}
