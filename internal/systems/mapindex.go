package systems

import (
	"rogee/internal/domain"
	"rogee/internal/ecs"
)

// MapIndexingSystem rebuilds Blocked and Occupants from scratch every run.
type MapIndexingSystem struct{}

func (MapIndexingSystem) Name() string { return "map_indexing" }

func (MapIndexingSystem) Run(ctx *Context) {
	m := ctx.Map
	m.PopulateBlocked()
	ecs.Join2(ctx.C.BlocksTile, ctx.C.Position, func(_ ecs.Entity, _ *domain.BlocksTile, pos *domain.Position) {
		m.Blocked[m.Index(pos.X, pos.Y)] = true
	})

	m.ClearOccupants()
	ctx.C.Position.Each(func(e ecs.Entity, pos *domain.Position) {
		m.AddOccupant(m.Index(pos.X, pos.Y), e)
	})
}
