package systems

import "rogee/internal/ecs"

// MeleeRange covers the 8-neighbourhood (diagonal is ~1.41).
const MeleeRange = 1.5

// ValidationResult результат проверки цели
type ValidationResult struct {
	Target  ecs.Entity
	Valid   bool
	Message string // Почему цель не годится, если Valid == false
}

// ValidateInteraction проверяет, может ли actor взаимодействовать с target.
//
// Параметры:
// - rangeLimit: максимальная дистанция (MeleeRange для соседней клетки/диагонали).
// - needLOS: нужна ли прямая видимость.
func ValidateInteraction(ctx *Context, actor, target ecs.Entity, rangeLimit float64, needLOS bool) ValidationResult {
	// 1. Цель существует и жива
	if !ctx.World.Alive(target) || ctx.World.Pending(target) {
		return ValidationResult{Message: "target is gone"}
	}
	stats, ok := ctx.C.CombatStats.Get(target)
	if !ok {
		return ValidationResult{Message: "target cannot be hurt"}
	}
	if stats.IsDead() {
		return ValidationResult{Message: "target is already dead"}
	}

	actorPos, ok := ctx.C.Position.Get(actor)
	if !ok {
		return ValidationResult{Message: "actor has no position"}
	}
	targetPos, ok := ctx.C.Position.Get(target)
	if !ok {
		return ValidationResult{Message: "target has no position"}
	}

	// 2. Проверка дистанции
	dist := actorPos.DistanceTo(*targetPos)
	if dist > rangeLimit {
		return ValidationResult{Message: "target is too far"}
	}

	// 3. Проверка видимости (Line of Sight)
	if needLOS && dist > 0 && !HasLineOfSight(ctx.Map, *actorPos, *targetPos) {
		return ValidationResult{Message: "target is not in sight"}
	}

	return ValidationResult{Target: target, Valid: true}
}
