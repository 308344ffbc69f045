package systems

import (
	"testing"

	"rogee/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeVisibleTiles_OpenRoom(t *testing.T) {
	m := createTestMap(21, 21)
	center := domain.Position{X: 10, Y: 10}

	vis := ComputeVisibleTiles(m, center, 5)
	assert.True(t, vis.Has(center), "observer tile always visible")
	assert.True(t, vis.Has(domain.Position{X: 14, Y: 10}))
	assert.True(t, vis.Has(domain.Position{X: 13, Y: 13}), "9+9 < 25")
	assert.False(t, vis.Has(domain.Position{X: 15, Y: 10}), "range is exclusive")
	assert.False(t, vis.Has(domain.Position{X: 14, Y: 14}), "outside the circle")

	vis.Each(func(p domain.Position) {
		dx, dy := p.X-center.X, p.Y-center.Y
		assert.Less(t, dx*dx+dy*dy, 25, "tile %v outside range", p)
	})
}

func TestComputeVisibleTiles_WallsBlock(t *testing.T) {
	m := createTestMap(15, 15)
	for y := 0; y < 15; y++ {
		setWall(m, 7, y)
	}
	vis := ComputeVisibleTiles(m, domain.Position{X: 4, Y: 7}, 8)

	assert.True(t, vis.Has(domain.Position{X: 7, Y: 7}), "the wall itself is seen")
	for y := 0; y < 15; y++ {
		for x := 8; x < 15; x++ {
			assert.False(t, vis.Has(domain.Position{X: x, Y: y}), "(%d,%d) behind wall", x, y)
		}
	}
}

func TestComputeVisibleTiles_Blind(t *testing.T) {
	m := createTestMap(5, 5)
	assert.Equal(t, 0, ComputeVisibleTiles(m, domain.Position{X: 2, Y: 2}, 0).Size())
}

func TestComputeVisibleTiles_ClipsToMap(t *testing.T) {
	m := createTestMap(5, 5)
	vis := ComputeVisibleTiles(m, domain.Position{X: 0, Y: 0}, 8)
	vis.Each(func(p domain.Position) {
		require.True(t, m.InBounds(p.X, p.Y), "%v out of bounds", p)
	})
	assert.Equal(t, 25, vis.Size())
}

func TestVisibility_Caching(t *testing.T) {
	m := createTestMap(20, 20)
	ctx := newTestContext(m, domain.Position{X: 5, Y: 5})

	// 1. Initial Calculation
	VisibilitySystem{}.Run(ctx)
	vs, ok := ctx.C.Viewshed.Get(ctx.Player)
	require.True(t, ok)
	require.False(t, vs.Dirty, "dirty cleared after calculation")
	first := vs.VisibleTiles
	size := first.Size()
	require.Greater(t, size, 1)

	// 2. Cached Access: the wall change is not noticed because nothing is dirty.
	setWall(m, 6, 5)
	VisibilitySystem{}.Run(ctx)
	vs, _ = ctx.C.Viewshed.Get(ctx.Player)
	assert.Equal(t, size, vs.VisibleTiles.Size())
	assert.True(t, vs.VisibleTiles.Has(domain.Position{X: 9, Y: 5}), "stale set reused")

	// 3. Invalidation
	vs.Dirty = true
	VisibilitySystem{}.Run(ctx)
	vs, _ = ctx.C.Viewshed.Get(ctx.Player)
	assert.False(t, vs.Dirty)
	assert.False(t, vs.VisibleTiles.Has(domain.Position{X: 9, Y: 5}), "recomputed behind the new wall")
}

func TestVisibility_PlayerDrivesMapMasks(t *testing.T) {
	m := createTestMap(40, 12)
	ctx := newTestContext(m, domain.Position{X: 2, Y: 5})
	mon := spawnMonster(ctx, domain.Position{X: 35, Y: 5})

	VisibilitySystem{}.Run(ctx)
	assertVisibleSubsetOfRevealed(t, m)

	monPos := domain.Position{X: 35, Y: 5}
	assert.False(t, m.Visible[m.Index(monPos.X, monPos.Y)], "monster sight must not touch the global mask")
	mvs, _ := ctx.C.Viewshed.Get(mon)
	assert.True(t, mvs.CanSee(monPos))

	// Walk the player along the corridor; Revealed only grows.
	revealedBefore := countTrue(m.Revealed)
	for x := 3; x < 30; x++ {
		pos, _ := ctx.C.Position.Get(ctx.Player)
		pos.X = x
		vs, _ := ctx.C.Viewshed.Get(ctx.Player)
		vs.Dirty = true
		VisibilitySystem{}.Run(ctx)
		assertVisibleSubsetOfRevealed(t, m)
	}
	assert.Greater(t, countTrue(m.Revealed), revealedBefore)
	assert.True(t, m.Revealed[m.Index(2, 5)], "revealed is sticky")
	assert.False(t, m.Visible[m.Index(2, 5)], "but no longer visible")
}

func assertVisibleSubsetOfRevealed(t *testing.T, m *domain.Map) {
	t.Helper()
	for i := range m.Visible {
		if m.Visible[i] && !m.Revealed[i] {
			x, y := m.XY(i)
			t.Fatalf("tile (%d,%d) visible but not revealed", x, y)
		}
	}
}

func countTrue(b []bool) int {
	n := 0
	for _, v := range b {
		if v {
			n++
		}
	}
	return n
}
