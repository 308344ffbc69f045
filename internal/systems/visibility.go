package systems

import (
	"rogee/internal/domain"
	"rogee/internal/ecs"
)

// VisibilitySystem recomputes dirty viewsheds. Only the player's viewshed
// touches Map.Visible and Map.Revealed.
type VisibilitySystem struct{}

func (VisibilitySystem) Name() string { return "visibility" }

func (VisibilitySystem) Run(ctx *Context) {
	ecs.Join2(ctx.C.Viewshed, ctx.C.Position, func(e ecs.Entity, vs *domain.Viewshed, pos *domain.Position) {
		if !vs.Dirty {
			return
		}
		vs.Dirty = false
		vs.VisibleTiles = ComputeVisibleTiles(ctx.Map, *pos, vs.Range)

		if !ctx.C.Player.Has(e) {
			return
		}
		ctx.Map.ClearVisible()
		vs.VisibleTiles.Each(func(p domain.Position) {
			idx := ctx.Map.Index(p.X, p.Y)
			ctx.Map.Visible[idx] = true
			ctx.Map.Revealed[idx] = true
		})
	})
}
