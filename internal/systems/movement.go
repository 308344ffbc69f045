package systems

import (
	"rogee/internal/domain"
	"rogee/internal/ecs"
)

// MovementResult - результат вычисления движения
type MovementResult struct {
	Target    domain.Position
	HasMoved  bool
	BlockedBy ecs.Entity // Если врезались в кого-то (для атаки)
	IsWall    bool       // Если врезались в стену или край карты
	IsBlocked bool       // Клетка занята чем-то без CombatStats
}

// CalculateMove вычисляет новую позицию. Не меняет состояние мира!
// Occupants and Blocked are read as of the last MapIndexingSystem run.
func CalculateMove(ctx *Context, e ecs.Entity, from domain.Position, dx, dy int) MovementResult {
	targetPos := from.Shift(dx, dy)
	res := MovementResult{Target: targetPos}

	// 1. Проверка границ и стен
	if ctx.Map.IsOpaque(targetPos.X, targetPos.Y) {
		res.IsWall = true
		return res
	}

	// 2. Проверка сущностей: живое тело - это цель для атаки.
	for _, other := range ctx.Map.EntitiesAt(targetPos.X, targetPos.Y) {
		if other == e {
			continue
		}
		if stats, ok := ctx.C.CombatStats.Get(other); ok && !stats.IsDead() {
			res.BlockedBy = other
			return res
		}
	}

	// 3. Прочие блокирующие сущности
	if ctx.Map.IsBlocked(targetPos.X, targetPos.Y) {
		res.IsBlocked = true
		return res
	}

	res.HasMoved = true
	return res
}

// ApplyMove commits a move: updates Position, keeps Blocked in step for
// blockers and marks the viewshed dirty.
func ApplyMove(ctx *Context, e ecs.Entity, pos *domain.Position, to domain.Position) {
	if ctx.C.BlocksTile.Has(e) {
		ctx.Map.Blocked[ctx.Map.Index(pos.X, pos.Y)] = false
		ctx.Map.Blocked[ctx.Map.Index(to.X, to.Y)] = true
	}
	*pos = to
	if vs, ok := ctx.C.Viewshed.Get(e); ok {
		vs.Dirty = true
	}
	ctx.report().Moves++
}
