package systems

import (
	"rogee/internal/domain"
	"rogee/internal/ecs"
	"rogee/pkg/logger"

	"github.com/sirupsen/logrus"
)

// MonsterAISystem: a monster that sees the player is aggro'd. During the
// Monster phase it attacks when adjacent, otherwise steps one tile closer.
// In any other phase it only signals.
type MonsterAISystem struct{}

func (MonsterAISystem) Name() string { return "monster_ai" }

func (MonsterAISystem) Run(ctx *Context) {
	playerPos, ok := ctx.C.Position.Get(ctx.Player)
	if !ok {
		return
	}
	target := *playerPos
	acting := ctx.State == domain.StateMonster

	ecs.Join3(ctx.C.Monster, ctx.C.Viewshed, ctx.C.Position, func(e ecs.Entity, _ *domain.Monster, vs *domain.Viewshed, pos *domain.Position) {
		if !vs.CanSee(target) {
			return
		}
		if stats, ok := ctx.C.CombatStats.Get(e); ok && stats.IsDead() {
			return
		}

		aiLogger := logger.Log.WithFields(logrus.Fields{
			"component": "ai_system",
			"monster":   ctx.C.DisplayName(e),
			"pos":       *pos,
			"target":    target,
			"state":     ctx.State,
		})
		aiLogger.Debug("Player spotted.")
		ctx.report().Aggro++

		if !acting {
			return
		}

		// Если в радиусе атаки (включая диагонали)
		if pos.IsAdjacent(target) {
			ctx.C.WantsToMelee.Insert(e, domain.WantsToMelee{Target: ctx.Player})
			aiLogger.Debug("Target in attack range. Action: ATTACK")
			return
		}

		dx, dy := SmartStep(ctx.Map, *pos, target)
		if dx == 0 && dy == 0 {
			aiLogger.Debug("Path is blocked. Action: WAIT")
			return
		}
		ApplyMove(ctx, e, pos, pos.Shift(dx, dy))
		aiLogger.WithFields(logrus.Fields{"dx": dx, "dy": dy}).Debug("Action: MOVE")
	})
}

// SmartStep is the greedy approach step shared by monsters and the autoplay
// bot. It tries the direct step first, then slides along the dominant axis,
// then the other one. Only non-Blocked tiles are legal.
func SmartStep(m *domain.Map, from, to domain.Position) (int, int) {
	dxRaw := to.X - from.X
	dyRaw := to.Y - from.Y
	stepX, stepY := from.StepTowards(to)

	// Попытка 1: Идеальный путь
	if canEnter(m, from, stepX, stepY) {
		return stepX, stepY
	}

	// Попытка 2: Smart Sliding (выбор приоритетной оси)
	if abs(dxRaw) > abs(dyRaw) {
		if stepX != 0 && canEnter(m, from, stepX, 0) {
			return stepX, 0
		}
		if stepY != 0 && canEnter(m, from, 0, stepY) {
			return 0, stepY
		}
	} else {
		if stepY != 0 && canEnter(m, from, 0, stepY) {
			return 0, stepY
		}
		if stepX != 0 && canEnter(m, from, stepX, 0) {
			return stepX, 0
		}
	}

	return 0, 0 // Тупик
}

func canEnter(m *domain.Map, from domain.Position, dx, dy int) bool {
	if dx == 0 && dy == 0 {
		return false
	}
	next := from.Shift(dx, dy)
	return !m.IsBlocked(next.X, next.Y)
}
