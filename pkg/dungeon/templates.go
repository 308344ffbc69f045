package dungeon

import (
	"math/rand"

	"rogee/internal/domain"
)

// MonsterTemplate определяет шаблон для создания монстра
type MonsterTemplate struct {
	Name    string
	Glyph   rune
	Color   string
	HP      int
	Defense int
	Power   int
}

// PlayerTemplate holds the player's starting numbers.
type PlayerTemplate struct {
	Name    string
	HP      int
	Defense int
	Power   int
	Sight   int
}

// Stats returns full-health combat stats for the template.
func (t MonsterTemplate) Stats() domain.CombatStats {
	return domain.CombatStats{MaxHP: t.HP, HP: t.HP, Defense: t.Defense, Power: t.Power}
}

// --- ВРАГИ ---

var Goblin = MonsterTemplate{
	Name:    "Goblin",
	Glyph:   'g',
	Color:   domain.MonsterColor,
	HP:      domain.MonsterHP,
	Defense: domain.MonsterDefense,
	Power:   domain.MonsterPower,
}

var Orc = MonsterTemplate{
	Name:    "Orc",
	Glyph:   'o',
	Color:   domain.MonsterColor,
	HP:      domain.MonsterHP,
	Defense: domain.MonsterDefense,
	Power:   domain.MonsterPower,
}

// DefaultMonsters is the roll table used when the config lists none.
var DefaultMonsters = []MonsterTemplate{Goblin, Orc}

var DefaultPlayer = PlayerTemplate{
	Name:    "Player",
	HP:      domain.PlayerHP,
	Defense: domain.PlayerDefense,
	Power:   domain.PlayerPower,
	Sight:   domain.VisionRange,
}

// RollMonster picks a template uniformly from table.
func RollMonster(rng *rand.Rand, table []MonsterTemplate) MonsterTemplate {
	if len(table) == 0 {
		table = DefaultMonsters
	}
	return table[rng.Intn(len(table))]
}
