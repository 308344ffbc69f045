package dungeon

import (
	"fmt"

	"rogee/internal/domain"
	"rogee/internal/ecs"
)

// CreatePlayer spawns the player entity at pos.
func CreatePlayer(w *ecs.World, pos domain.Position, t PlayerTemplate) ecs.Entity {
	b := w.NewEntity()
	ecs.With(b, pos)
	ecs.With(b, domain.Renderable{Glyph: domain.PlayerGlyph, FG: domain.PlayerColor, BG: domain.ColorBlack})
	ecs.With(b, domain.Player{})
	ecs.With(b, domain.NewViewshed(t.Sight))
	ecs.With(b, domain.Name{Name: t.Name})
	ecs.With(b, domain.CombatStats{MaxHP: t.HP, HP: t.HP, Defense: t.Defense, Power: t.Power})
	return b.Build()
}

// CreateMonster spawns a monster from t at pos. i numbers the name.
func CreateMonster(w *ecs.World, pos domain.Position, t MonsterTemplate, i int) ecs.Entity {
	b := w.NewEntity()
	ecs.With(b, pos)
	ecs.With(b, domain.Renderable{Glyph: t.Glyph, FG: t.Color, BG: domain.ColorBlack})
	ecs.With(b, domain.NewViewshed(domain.VisionRange))
	ecs.With(b, domain.Monster{})
	ecs.With(b, domain.Name{Name: fmt.Sprintf("%s #%d", t.Name, i)})
	ecs.With(b, domain.BlocksTile{})
	ecs.With(b, t.Stats())
	return b.Build()
}
