package systems

import (
	"fmt"

	"rogee/internal/domain"
	"rogee/internal/ecs"
	"rogee/pkg/logger"

	"github.com/sirupsen/logrus"
)

// MeleeCombatSystem turns WantsToMelee into SufferDamage. Every WantsToMelee
// is consumed, whether or not the attack was valid.
type MeleeCombatSystem struct{}

func (MeleeCombatSystem) Name() string { return "melee_combat" }

func (MeleeCombatSystem) Run(ctx *Context) {
	ecs.Join2(ctx.C.WantsToMelee, ctx.C.CombatStats, func(e ecs.Entity, want *domain.WantsToMelee, stats *domain.CombatStats) {
		if stats.IsDead() {
			return
		}
		res := ValidateInteraction(ctx, e, want.Target, MeleeRange, true)
		if !res.Valid {
			logger.Log.WithFields(logrus.Fields{
				"component": "combat_system",
				"attacker":  ctx.C.DisplayName(e),
				"target":    want.Target,
				"reason":    res.Message,
			}).Debug("Attack dropped.")
			return
		}
		targetStats, _ := ctx.C.CombatStats.Get(res.Target)
		ApplyAttack(ctx, e, res.Target, stats, targetStats)
	})
	ctx.C.WantsToMelee.Clear()
}

// MeleeDamage is power minus defense, never below 1.
func MeleeDamage(attacker, target *domain.CombatStats) int {
	// Финальный урон (минимум 1)
	dmg := attacker.Power - target.Defense
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

// ApplyAttack queues the damage on the target and writes the game log line.
// HP itself changes later, in DamageSystem.
func ApplyAttack(ctx *Context, attacker, target ecs.Entity, aStats, tStats *domain.CombatStats) int {
	dmg := MeleeDamage(aStats, tStats)
	ctx.C.AddDamage(target, dmg)
	ctx.report().Attacks++

	attackerName := ctx.C.DisplayName(attacker)
	targetName := ctx.C.DisplayName(target)

	logger.Log.WithFields(logrus.Fields{
		"component":     "combat_system",
		"attacker_name": attackerName,
		"target_name":   targetName,
		"power":         aStats.Power,
		"defense":       tStats.Defense,
		"final_damage":  dmg,
		"hp_before":     tStats.HP,
	}).Info("Attack resolved.")

	ctx.log(fmt.Sprintf("%s hits %s for %d hp.", attackerName, targetName, dmg), domain.LogCombat)
	return dmg
}
