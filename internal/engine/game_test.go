package engine

import (
	"context"
	"os"
	"testing"

	"rogee/internal/config"
	"rogee/internal/domain"
	"rogee/internal/ecs"
	"rogee/internal/network"
	"rogee/pkg/api"
	"rogee/pkg/dungeon"
	"rogee/pkg/logger"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

var _ Publisher = (*network.Broadcaster)(nil)

type recordingPublisher struct {
	snaps []api.Snapshot
}

func (r *recordingPublisher) Publish(s api.Snapshot) {
	r.snaps = append(r.snaps, s)
}

// Helper: открытая карта w x h, игрок в playerPos, состояние Pre.
func newTestGame(t *testing.T, w, h int, playerPos domain.Position) *Game {
	t.Helper()
	m := domain.NewMap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.SetFloor(x, y)
		}
	}
	m.PopulateBlocked()

	world := ecs.NewWorld()
	comps := domain.RegisterComponents(world)
	player := dungeon.CreatePlayer(world, playerPos, dungeon.DefaultPlayer)
	runID := uuid.New()

	return &Game{
		RunID:   runID,
		World:   world,
		C:       comps,
		Map:     m,
		Player:  player,
		Log:     domain.NewGameLog(),
		Metrics: NewMetrics(),
		turns:   NewTurnManager(domain.StatePre, runID.String()),
		log:     logger.Log.WithField("component", "game"),
	}
}

func tick(t *testing.T, g *Game, in Intent) {
	t.Helper()
	require.NoError(t, g.Tick(context.Background(), in))
}

func playerPos(t *testing.T, g *Game) domain.Position {
	t.Helper()
	pos, ok := g.C.Position.Get(g.Player)
	require.True(t, ok)
	return *pos
}

func TestNewGame_Spawns(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 42

	g, err := NewGame(cfg)
	require.NoError(t, err)
	require.NotEmpty(t, g.Map.Rooms)

	assert.Equal(t, domain.StatePre, g.State())
	assert.Equal(t, int64(42), g.Seed)
	assert.Equal(t, 1, g.C.Player.Len())
	assert.Equal(t, len(g.Map.Rooms)-1, g.C.Monster.Len())
	assert.Equal(t, len(g.Map.Rooms), g.World.Count())

	assert.Equal(t, g.Map.Rooms[0].Center(), playerPos(t, g))
	stats, ok := g.PlayerStats()
	require.True(t, ok)
	assert.Equal(t, domain.CombatStats{MaxHP: 30, HP: 30, Defense: 2, Power: 5}, stats)

	centers := make(map[domain.Position]bool)
	for _, r := range g.Map.Rooms[1:] {
		centers[r.Center()] = true
	}
	ecs.Join2(g.C.Monster, g.C.Position, func(e ecs.Entity, _ *domain.Monster, pos *domain.Position) {
		assert.True(t, centers[*pos], "monster %s not at a room center", e)
		assert.True(t, g.C.BlocksTile.Has(e))
		name, _ := g.C.Name.Get(e)
		assert.Regexp(t, `^(Goblin|Orc) #\d+$`, name.Name)
	})
}

func TestNewGame_SameSeedSameDungeon(t *testing.T) {
	a, err := NewGame(&config.Config{Seed: 7, Map: config.Default().Map, Player: config.Default().Player, FrameMS: 1})
	require.NoError(t, err)
	b, err := NewGame(&config.Config{Seed: 7, Map: config.Default().Map, Player: config.Default().Player, FrameMS: 1})
	require.NoError(t, err)

	assert.Equal(t, a.Map.Tiles, b.Map.Tiles)
	assert.Equal(t, a.Map.Rooms, b.Map.Rooms)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestNewGame_CustomMonsters(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 3
	cfg.Monsters = []config.MonsterConfig{{Name: "Rat", Glyph: "r", HP: 3, Power: 1}}

	g, err := NewGame(cfg)
	require.NoError(t, err)
	g.C.Monster.Each(func(e ecs.Entity, _ *domain.Monster) {
		r, _ := g.C.Renderable.Get(e)
		assert.Equal(t, 'r', r.Glyph)
		assert.Equal(t, domain.MonsterColor, r.FG)
		s, _ := g.C.CombatStats.Get(e)
		assert.Equal(t, 3, s.HP)
	})
}

func TestNewGame_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Map.MinRoom = 1
	_, err := NewGame(cfg)
	assert.Error(t, err)
}

func TestNewGame_RoomLargerThanMap(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 1
	cfg.Map = config.MapConfig{Width: 8, Height: 8, MaxRooms: 1, MinRoom: 6, MaxRoom: 40}
	g, err := NewGame(cfg)
	require.Error(t, err)
	assert.Nil(t, g)
}

func TestNewGame_LogsConnectedDungeon(t *testing.T) {
	hook := logtest.NewLocal(logger.Log)
	defer hook.Reset()

	cfg := config.Default()
	cfg.Seed = 4
	g, err := NewGame(cfg)
	require.NoError(t, err)
	require.True(t, dungeon.Connected(g.Map))

	var created bool
	for _, e := range hook.AllEntries() {
		assert.NotEqual(t, logrus.WarnLevel, e.Level, e.Message)
		if e.Message == "Game created" {
			created = true
			assert.Equal(t, len(g.Map.Rooms), e.Data["rooms"])
		}
	}
	assert.True(t, created)
}

func TestNewGame_SmallestMapStartsOnFloor(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		cfg := config.Default()
		cfg.Seed = seed
		cfg.Map = config.MapConfig{Width: 8, Height: 8, MaxRooms: 1, MinRoom: 3, MaxRoom: 6}

		g, err := NewGame(cfg)
		require.NoError(t, err)
		require.NotEmpty(t, g.Map.Rooms, "seed %d", seed)

		pos, ok := g.C.Position.Get(g.Player)
		require.True(t, ok)
		assert.Equal(t, g.Map.Rooms[0].Center(), *pos)
		assert.Equal(t, domain.TileFloor, g.Map.TileAt(pos.X, pos.Y), "seed %d", seed)
	}
}

func TestTick_RunStateCycle(t *testing.T) {
	g := newTestGame(t, 20, 20, domain.Position{X: 10, Y: 10})

	tick(t, g, NoIntent)
	assert.Equal(t, domain.StateWaiting, g.State())
	assert.True(t, g.Map.Visible[g.Map.Index(10, 10)], "bootstrap computes the player's view")

	// Ожидание без ввода
	for i := 0; i < 3; i++ {
		tick(t, g, NoIntent)
		assert.Equal(t, domain.StateWaiting, g.State())
	}
	assert.Equal(t, 0, g.Turn())

	tick(t, g, WaitIntent())
	assert.Equal(t, domain.StatePlayer, g.State())
	assert.Equal(t, 1, g.Turn())

	tick(t, g, NoIntent)
	assert.Equal(t, domain.StateMonster, g.State())

	tick(t, g, NoIntent)
	assert.Equal(t, domain.StateWaiting, g.State())

	assert.Equal(t, 4.0, testutil.ToFloat64(g.Metrics.ticks.WithLabelValues("waiting")))
	assert.Equal(t, 1.0, testutil.ToFloat64(g.Metrics.ticks.WithLabelValues("monster")))
}

func TestTick_QuitIsNotConsumed(t *testing.T) {
	g := newTestGame(t, 10, 10, domain.Position{X: 5, Y: 5})
	tick(t, g, NoIntent)

	tick(t, g, QuitIntent())
	assert.Equal(t, domain.StateWaiting, g.State())
}

func TestTick_MoveConsumed(t *testing.T) {
	g := newTestGame(t, 10, 10, domain.Position{X: 5, Y: 5})
	tick(t, g, NoIntent)

	tick(t, g, MoveIntent(1, -1))
	assert.Equal(t, domain.StatePlayer, g.State())
	assert.Equal(t, domain.Position{X: 6, Y: 4}, playerPos(t, g))

	vs, _ := g.C.Viewshed.Get(g.Player)
	assert.True(t, vs.Dirty)

	tick(t, g, NoIntent)
	assert.False(t, vs.Dirty, "recomputed in the Player phase")
	assert.True(t, g.Map.Visible[g.Map.Index(6, 4)])
}

func TestTick_WallBumpNotConsumed(t *testing.T) {
	g := newTestGame(t, 10, 10, domain.Position{X: 5, Y: 5})
	g.Map.Tiles[g.Map.Index(6, 5)] = domain.TileWall
	g.Map.PopulateBlocked()
	tick(t, g, NoIntent)

	tick(t, g, MoveIntent(1, 0))
	assert.Equal(t, domain.StateWaiting, g.State())
	assert.Equal(t, domain.Position{X: 5, Y: 5}, playerPos(t, g))
	assert.Equal(t, "Path blocked.", g.Log.Last(1)[0].Text)

	// Край карты - тоже стена
	g2 := newTestGame(t, 10, 10, domain.Position{X: 0, Y: 0})
	tick(t, g2, NoIntent)
	tick(t, g2, MoveIntent(-1, 0))
	assert.Equal(t, domain.StateWaiting, g2.State())
}

func TestTick_InvalidDirectionNotConsumed(t *testing.T) {
	g := newTestGame(t, 10, 10, domain.Position{X: 5, Y: 5})
	tick(t, g, NoIntent)

	tick(t, g, MoveIntent(2, 0))
	assert.Equal(t, domain.StateWaiting, g.State())
	assert.Equal(t, domain.Position{X: 5, Y: 5}, playerPos(t, g))
}

func TestTick_BumpAttackAndRetaliation(t *testing.T) {
	g := newTestGame(t, 10, 10, domain.Position{X: 5, Y: 5})
	goblin := dungeon.CreateMonster(g.World, domain.Position{X: 6, Y: 5}, dungeon.Goblin, 1)
	tick(t, g, NoIntent)

	// Игрок бьет гоблина: 5 - 1 = 4
	tick(t, g, MoveIntent(1, 0))
	require.Equal(t, domain.StatePlayer, g.State())
	assert.Equal(t, domain.Position{X: 5, Y: 5}, playerPos(t, g), "bump does not move")

	tick(t, g, NoIntent)
	gs, _ := g.C.CombatStats.Get(goblin)
	assert.Equal(t, 12, gs.HP)
	assert.Equal(t, 4, g.Report().DamageApplied)
	assert.Equal(t, 0, g.C.WantsToMelee.Len())

	// Гоблин отвечает: 4 - 2 = 2
	tick(t, g, NoIntent)
	assert.Equal(t, domain.StateWaiting, g.State())
	ps, _ := g.PlayerStats()
	assert.Equal(t, 28, ps.HP)
}

func TestTick_MonsterApproaches(t *testing.T) {
	g := newTestGame(t, 20, 10, domain.Position{X: 2, Y: 5})
	goblin := dungeon.CreateMonster(g.World, domain.Position{X: 7, Y: 5}, dungeon.Goblin, 1)
	tick(t, g, NoIntent)

	tick(t, g, WaitIntent())
	tick(t, g, NoIntent) // Player
	pos, _ := g.C.Position.Get(goblin)
	assert.Equal(t, domain.Position{X: 7, Y: 5}, *pos, "monsters only act in the Monster phase")

	tick(t, g, NoIntent) // Monster
	assert.Equal(t, domain.Position{X: 6, Y: 5}, *pos)
	assert.True(t, g.Map.Blocked[g.Map.Index(6, 5)])
	assert.False(t, g.Map.Blocked[g.Map.Index(7, 5)])
}

func TestTick_PlayerDeathEndsRun(t *testing.T) {
	g := newTestGame(t, 10, 10, domain.Position{X: 5, Y: 5})
	dungeon.CreateMonster(g.World, domain.Position{X: 5, Y: 6}, dungeon.Goblin, 1)
	ps, _ := g.C.CombatStats.Get(g.Player)
	ps.HP = 2

	pub := &recordingPublisher{}
	g.SetPublisher(pub)

	tick(t, g, NoIntent)
	tick(t, g, WaitIntent())
	tick(t, g, NoIntent)
	tick(t, g, NoIntent) // гоблин бьет на 2

	assert.Equal(t, domain.StateGameOver, g.State())
	assert.True(t, g.Over())
	assert.False(t, g.World.Alive(g.Player))
	_, ok := g.PlayerStats()
	assert.False(t, ok)
	assert.Equal(t, "You are dead!", g.Log.Last(1)[0].Text)
	assert.Equal(t, 1.0, testutil.ToFloat64(g.Metrics.deaths.WithLabelValues("player")))

	err := g.Tick(context.Background(), WaitIntent())
	assert.ErrorIs(t, err, ErrGameOver)

	require.NotEmpty(t, pub.snaps)
	last := pub.snaps[len(pub.snaps)-1]
	assert.Equal(t, "game_over", last.State)
	assert.Nil(t, last.Player)
}

func TestTick_MonsterDeathIsCulled(t *testing.T) {
	g := newTestGame(t, 10, 10, domain.Position{X: 5, Y: 5})
	goblin := dungeon.CreateMonster(g.World, domain.Position{X: 6, Y: 5}, dungeon.Goblin, 1)
	gs, _ := g.C.CombatStats.Get(goblin)
	gs.HP = 3
	tick(t, g, NoIntent)

	tick(t, g, MoveIntent(1, 0))
	tick(t, g, NoIntent)

	assert.False(t, g.World.Alive(goblin))
	assert.Equal(t, domain.StateMonster, g.State())
	require.Len(t, g.Report().Deaths, 1)
	assert.Equal(t, "Goblin #1", g.Report().Deaths[0].Name)
	assert.Equal(t, 1.0, testutil.ToFloat64(g.Metrics.deaths.WithLabelValues("monster")))
	assert.Equal(t, 1.0, testutil.ToFloat64(g.Metrics.entities))
}

func TestTick_CancelledContext(t *testing.T) {
	g := newTestGame(t, 10, 10, domain.Position{X: 5, Y: 5})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, g.Tick(ctx, NoIntent), context.Canceled)
	assert.Equal(t, domain.StatePre, g.State())
}

func TestTick_PublishesOnlyOnProgress(t *testing.T) {
	g := newTestGame(t, 10, 10, domain.Position{X: 5, Y: 5})
	pub := &recordingPublisher{}
	g.SetPublisher(pub)

	tick(t, g, NoIntent) // bootstrap
	tick(t, g, NoIntent) // idle
	tick(t, g, NoIntent) // idle
	assert.Len(t, pub.snaps, 1)

	tick(t, g, WaitIntent())
	assert.Len(t, pub.snaps, 2)
	assert.Equal(t, "player", pub.snaps[1].State)
	assert.Equal(t, 1, pub.snaps[1].Tick)
}
