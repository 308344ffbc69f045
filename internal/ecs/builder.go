package ecs

// EntityBuilder stages an initial component set and commits it atomically.
//
// Example:
//
//	e := ecs.With(ecs.With(w.NewEntity(), domain.Position{X: 1, Y: 2}),
//	    domain.Name{Name: "Goblin"}).Build()
//
// The handle is allocated on Build, so an abandoned builder leaves nothing
// behind in the world.
type EntityBuilder struct {
	world  *World
	staged []func(Entity)
	built  bool
	entity Entity
}

// NewEntity starts a builder.
func (w *World) NewEntity() *EntityBuilder {
	return &EntityBuilder{
		world:  w,
		staged: make([]func(Entity), 0, 8),
	}
}

// With stages component v on the builder. The component kind must already be
// registered; With panics otherwise, and also after Build.
func With[T any](eb *EntityBuilder, v T) *EntityBuilder {
	if eb.built {
		panic("ecs: entity already built - cannot add components after Build()")
	}
	store := GetStore[T](eb.world)
	eb.staged = append(eb.staged, func(e Entity) {
		store.Insert(e, v)
	})
	return eb
}

// Build allocates the handle and attaches every staged component.
// Calling Build again returns the same handle.
func (eb *EntityBuilder) Build() Entity {
	if eb.built {
		return eb.entity
	}
	eb.entity = eb.world.pool.create()
	for _, attach := range eb.staged {
		attach(eb.entity)
	}
	eb.staged = nil
	eb.built = true
	return eb.entity
}
