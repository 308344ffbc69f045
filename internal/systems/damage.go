package systems

import (
	"fmt"

	"rogee/internal/domain"
	"rogee/internal/ecs"
	"rogee/pkg/logger"

	"github.com/sirupsen/logrus"
)

// DamageSystem subtracts queued damage from HP and removes SufferDamage.
// HP is not clamped and may go negative.
type DamageSystem struct{}

func (DamageSystem) Name() string { return "damage" }

func (DamageSystem) Run(ctx *Context) {
	var applied []ecs.Entity
	ecs.Join2(ctx.C.CombatStats, ctx.C.SufferDamage, func(e ecs.Entity, stats *domain.CombatStats, dmg *domain.SufferDamage) {
		total := dmg.Total()
		stats.HP -= total
		ctx.report().DamageApplied += total
		applied = append(applied, e)
	})
	ctx.C.SufferDamage.RemoveBatch(applied)
}

// DeleteTheDead destroys every entity with hp <= 0 and reaps it right away,
// so none of them exist on return. It reports whether the player died.
func DeleteTheDead(ctx *Context) bool {
	var dead []ecs.Entity
	ctx.C.CombatStats.Each(func(e ecs.Entity, stats *domain.CombatStats) {
		if stats.IsDead() {
			dead = append(dead, e)
		}
	})
	if len(dead) == 0 {
		return false
	}

	playerDied := false
	for _, e := range dead {
		name := ctx.C.DisplayName(e)
		isPlayer := ctx.C.Player.Has(e)
		if isPlayer {
			playerDied = true
			ctx.log("You are dead!", domain.LogDeath)
		} else {
			ctx.log(fmt.Sprintf("%s is dead.", name), domain.LogDeath)
		}

		logger.Log.WithFields(logrus.Fields{
			"component": "death_system",
			"entity":    e,
			"name":      name,
			"is_player": isPlayer,
		}).Info("Entity died.")

		// Клетка освобождается сразу, не дожидаясь следующей индексации.
		if pos, ok := ctx.C.Position.Get(e); ok && ctx.C.BlocksTile.Has(e) {
			ctx.Map.Blocked[ctx.Map.Index(pos.X, pos.Y)] = false
		}

		ctx.report().Deaths = append(ctx.report().Deaths, Death{Entity: e, Name: name, IsPlayer: isPlayer})
		ctx.World.Destroy(e)
	}
	ctx.World.Maintain()
	return playerDied
}
