package domain

import (
	"rogee/internal/ecs"

	"github.com/zyedidia/generic/mapset"
)

// --- КОМПОНЕНТЫ ---

// Renderable - how the entity is drawn. Colors are "#rrggbb" or a named color.
type Renderable struct {
	Glyph rune   `json:"glyph"`
	FG    string `json:"fg"`
	BG    string `json:"bg"`
}

// Player tags the single player-controlled entity.
type Player struct{}

// Monster tags adversaries driven by MonsterAISystem.
type Monster struct{}

// BlocksTile marks entities that make their tile impassable.
type BlocksTile struct{}

// Name is the display name used in the game log.
type Name struct {
	Name string `json:"name"`
}

// Viewshed - what an entity can currently see.
// VisibleTiles is only recomputed when Dirty is set.
type Viewshed struct {
	VisibleTiles mapset.Set[Position] `json:"-"`
	Range        int                  `json:"range"`
	Dirty        bool                 `json:"-"`
}

// NewViewshed returns a dirty viewshed so the first visibility pass fills it.
func NewViewshed(rng int) Viewshed {
	return Viewshed{
		VisibleTiles: mapset.New[Position](),
		Range:        rng,
		Dirty:        true,
	}
}

// CanSee reports whether p was visible at the last recompute.
func (v *Viewshed) CanSee(p Position) bool {
	return v.VisibleTiles.Has(p)
}

// CombatStats - hit points and melee numbers. HP may go negative.
type CombatStats struct {
	MaxHP   int `json:"maxHp"`
	HP      int `json:"hp"`
	Defense int `json:"defense"`
	Power   int `json:"power"`
}

// IsDead reports hp <= 0.
func (c *CombatStats) IsDead() bool {
	return c.HP <= 0
}

// WantsToMelee is a one-tick intent to attack Target.
type WantsToMelee struct {
	Target ecs.Entity `json:"target"`
}

// SufferDamage accumulates damage instances to apply this tick.
type SufferDamage struct {
	Amount []int `json:"amount"`
}

// Total sums every queued instance.
func (s *SufferDamage) Total() int {
	sum := 0
	for _, a := range s.Amount {
		sum += a
	}
	return sum
}

// Components caches the typed store of every registered kind so systems
// don't pay the registry lookup per access.
type Components struct {
	Position     *ecs.Store[Position]
	Renderable   *ecs.Store[Renderable]
	Player       *ecs.Store[Player]
	Monster      *ecs.Store[Monster]
	Name         *ecs.Store[Name]
	BlocksTile   *ecs.Store[BlocksTile]
	Viewshed     *ecs.Store[Viewshed]
	CombatStats  *ecs.Store[CombatStats]
	WantsToMelee *ecs.Store[WantsToMelee]
	SufferDamage *ecs.Store[SufferDamage]
}

// RegisterComponents registers every component kind on w. Safe to call more
// than once.
func RegisterComponents(w *ecs.World) *Components {
	return &Components{
		Position:     ecs.Register[Position](w),
		Renderable:   ecs.Register[Renderable](w),
		Player:       ecs.Register[Player](w),
		Monster:      ecs.Register[Monster](w),
		Name:         ecs.Register[Name](w),
		BlocksTile:   ecs.Register[BlocksTile](w),
		Viewshed:     ecs.Register[Viewshed](w),
		CombatStats:  ecs.Register[CombatStats](w),
		WantsToMelee: ecs.Register[WantsToMelee](w),
		SufferDamage: ecs.Register[SufferDamage](w),
	}
}

// AddDamage queues amount on target, appending to an existing SufferDamage.
func (c *Components) AddDamage(target ecs.Entity, amount int) {
	if sd, ok := c.SufferDamage.Get(target); ok {
		sd.Amount = append(sd.Amount, amount)
		return
	}
	c.SufferDamage.Insert(target, SufferDamage{Amount: []int{amount}})
}

// DisplayName returns the entity's Name or its handle when it has none.
func (c *Components) DisplayName(e ecs.Entity) string {
	if n, ok := c.Name.Get(e); ok {
		return n.Name
	}
	return e.String()
}
