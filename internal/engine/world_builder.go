package engine

import (
	"fmt"
	"math/rand"

	"rogee/internal/config"
	"rogee/internal/domain"
	"rogee/internal/ecs"
	"rogee/pkg/dungeon"
	"rogee/pkg/logger"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// NewGame создает мир, карту, игрока и монстров по конфигу.
// The run starts in RunState Pre; the first Tick computes visibility and
// bootstraps into Waiting.
func NewGame(cfg *config.Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	seed := cfg.ResolveSeed()
	rng := rand.New(rand.NewSource(seed))
	runID := uuid.New()

	world := ecs.NewWorld()
	comps := domain.RegisterComponents(world)

	// 1. Карта
	m := dungeon.NewLevel(rng).
		WithSize(cfg.Map.Width, cfg.Map.Height).
		WithRoomLimits(cfg.Map.MinRoom, cfg.Map.MaxRoom).
		WithRooms(cfg.Map.MaxRooms).
		Build()

	// 2. Игрок в центре первой комнаты
	player := dungeon.CreatePlayer(world, dungeon.StartPos(m), playerTemplate(cfg.Player))

	// 3. По монстру в центре каждой следующей комнаты
	table := monsterTable(cfg.Monsters)
	for i, room := range m.Rooms {
		if i == 0 {
			continue
		}
		dungeon.CreateMonster(world, room.Center(), dungeon.RollMonster(rng, table), i)
	}

	g := &Game{
		RunID:   runID,
		Seed:    seed,
		World:   world,
		C:       comps,
		Map:     m,
		Player:  player,
		Log:     domain.NewGameLog(),
		Metrics: NewMetrics(),
		turns:   NewTurnManager(domain.StatePre, runID.String()),
		log: logger.Log.WithFields(logrus.Fields{
			"component": "game",
			"run_id":    runID.String(),
		}),
	}

	g.log.WithFields(logrus.Fields{
		"seed":     seed,
		"rooms":    len(m.Rooms),
		"entities": world.Count(),
	}).Info("Game created")
	if !dungeon.Connected(m) {
		g.log.WithField("seed", seed).Warn("Some rooms are unreachable from the start room")
	}
	g.Log.Add("Welcome to the dungeon.", domain.LogInfo)
	return g, nil
}

func playerTemplate(pc config.PlayerConfig) dungeon.PlayerTemplate {
	t := dungeon.DefaultPlayer
	t.HP = pc.HP
	t.Defense = pc.Defense
	t.Power = pc.Power
	if pc.Sight > 0 {
		t.Sight = pc.Sight
	}
	return t
}

// monsterTable converts configured monsters; an empty list keeps the defaults.
func monsterTable(mcs []config.MonsterConfig) []dungeon.MonsterTemplate {
	if len(mcs) == 0 {
		return dungeon.DefaultMonsters
	}
	table := make([]dungeon.MonsterTemplate, 0, len(mcs))
	for _, mc := range mcs {
		color := mc.Color
		if color == "" {
			color = domain.MonsterColor
		}
		table = append(table, dungeon.MonsterTemplate{
			Name:    mc.Name,
			Glyph:   mc.Rune(),
			Color:   color,
			HP:      mc.HP,
			Defense: mc.Defense,
			Power:   mc.Power,
		})
	}
	return table
}
