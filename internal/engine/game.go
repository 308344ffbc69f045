package engine

import (
	"context"
	"errors"

	"rogee/internal/domain"
	"rogee/internal/ecs"
	"rogee/internal/systems"
	"rogee/pkg/api"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrGameOver is returned by Tick once the player has died.
var ErrGameOver = errors.New("game over")

// Publisher получает снимок мира после каждого тика, в котором что-то произошло.
type Publisher interface {
	Publish(api.Snapshot)
}

// Game - один забег: ECS-мир, карта и планировщик RunState.
// Not safe for concurrent use; everything outside the frame loop sees the
// game only through published snapshots.
type Game struct {
	RunID  uuid.UUID
	Seed   int64
	World  *ecs.World
	C      *domain.Components
	Map    *domain.Map
	Player ecs.Entity
	Log    *domain.GameLog

	Metrics *Metrics

	turns     *TurnManager
	turn      int
	report    systems.TickReport
	publisher Publisher
	log       *logrus.Entry
}

// SetPublisher wires a snapshot sink. nil disables publishing.
func (g *Game) SetPublisher(p Publisher) {
	g.publisher = p
}

// State returns the current RunState.
func (g *Game) State() domain.RunState {
	return g.turns.State()
}

// Turn counts consumed player intents.
func (g *Game) Turn() int {
	return g.turn
}

// Report describes the last tick.
func (g *Game) Report() systems.TickReport {
	return g.report
}

// Over reports whether the run has reached GameOver.
func (g *Game) Over() bool {
	return g.State().Terminal()
}

// PlayerStats returns the player's combat stats while the player exists.
func (g *Game) PlayerStats() (domain.CombatStats, bool) {
	if !g.World.Alive(g.Player) {
		return domain.CombatStats{}, false
	}
	s, ok := g.C.CombatStats.Get(g.Player)
	if !ok {
		return domain.CombatStats{}, false
	}
	return *s, true
}

// Tick advances the simulation by one scheduler step.
//
// RunState is read once at the start and written at most once at the end:
// Pre, Player and Monster run the system pipeline; Waiting hands in to the
// input collaborator and only moves on if it was consumed. Death-culling
// runs on every tick and a dead player ends the run.
func (g *Game) Tick(ctx context.Context, in Intent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	state := g.turns.State()
	if state.Terminal() {
		return ErrGameOver
	}

	g.report.Reset()
	g.Log.SetTick(g.turn)
	sctx := g.systemContext(state)

	event := ""
	switch state {
	case domain.StatePre:
		systems.RunPipeline(sctx)
		event = EventBootstrap
	case domain.StateWaiting:
		if PlayerInput(sctx, in) {
			g.turn++
			g.Log.SetTick(g.turn)
			event = EventAct
		}
	case domain.StatePlayer, domain.StateMonster:
		systems.RunPipeline(sctx)
		event = EventAdvance
	}

	if systems.DeleteTheDead(sctx) {
		event = EventPlayerDied
		g.log.WithField("turn", g.turn).Info("Player died, game over")
	}

	if event != "" {
		if err := g.turns.Fire(ctx, event); err != nil {
			return err
		}
	}

	g.Metrics.Observe(state, &g.report, g.World.Count())
	if event != "" {
		g.publish()
	}
	return nil
}

func (g *Game) systemContext(state domain.RunState) *systems.Context {
	return &systems.Context{
		World:  g.World,
		C:      g.C,
		Map:    g.Map,
		Player: g.Player,
		State:  state,
		Log:    g.Log,
		Report: &g.report,
	}
}

func (g *Game) publish() {
	if g.publisher == nil {
		return
	}
	g.publisher.Publish(g.Snapshot())
}
