package ecs

import (
	"fmt"
	"reflect"
)

// World is the top-level ECS container. It owns the entity arena, the
// registry of component stores and the deferred destruction queue that
// Maintain flushes.
//
// World is not safe for concurrent use: the scheduler owns it for the whole
// tick.
type World struct {
	pool    *entityPool
	stores  map[reflect.Type]AnyStore
	order   []AnyStore
	destroy []Entity
	pending map[Entity]struct{}
	reaped  int
}

// NewWorld creates an empty world with no component kinds registered.
func NewWorld() *World {
	return &World{
		pool:    newEntityPool(),
		stores:  make(map[reflect.Type]AnyStore, 16),
		order:   make([]AnyStore, 0, 16),
		destroy: make([]Entity, 0, 16),
		pending: make(map[Entity]struct{}, 16),
	}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Register adds a store for component kind T. Registering twice returns the
// existing store.
func Register[T any](w *World) *Store[T] {
	t := typeOf[T]()
	if s, ok := w.stores[t]; ok {
		return s.(*Store[T])
	}
	s := NewStore[T]()
	w.stores[t] = s
	w.order = append(w.order, s)
	return s
}

// GetStore returns the store for T. Using a kind that was never registered
// is a construction bug, so it panics.
func GetStore[T any](w *World) *Store[T] {
	s, ok := w.stores[typeOf[T]()]
	if !ok {
		panic(fmt.Sprintf("ecs: component %s not registered", typeOf[T]()))
	}
	return s.(*Store[T])
}

// Alive reports whether e refers to a live entity. Stale handles (slot reaped
// and possibly reused) report false.
func (w *World) Alive(e Entity) bool {
	return w.pool.isAlive(e)
}

// Destroy queues e for removal at the next Maintain. Components stay readable
// until then so systems iterating this tick are unaffected.
func (w *World) Destroy(e Entity) {
	if !w.pool.isAlive(e) {
		return
	}
	if _, queued := w.pending[e]; queued {
		return
	}
	w.pending[e] = struct{}{}
	w.destroy = append(w.destroy, e)
}

// Pending reports whether e is queued for destruction.
func (w *World) Pending(e Entity) bool {
	_, ok := w.pending[e]
	return ok
}

// Maintain is the single point where deferred destruction takes effect:
// every queued entity loses all its components and its slot generation is
// bumped. Returns the number of entities reaped.
func (w *World) Maintain() int {
	if len(w.destroy) == 0 {
		return 0
	}
	for _, s := range w.order {
		if b, ok := s.(interface{ RemoveBatch([]Entity) }); ok {
			b.RemoveBatch(w.destroy)
			continue
		}
		for _, e := range w.destroy {
			s.Remove(e)
		}
	}

	n := 0
	for _, e := range w.destroy {
		if w.pool.release(e) {
			n++
		}
		delete(w.pending, e)
	}
	w.destroy = w.destroy[:0]
	w.reaped += n
	return n
}

// Count returns the number of live entities.
func (w *World) Count() int {
	return w.pool.count()
}

// Reaped returns how many entities Maintain has removed over the world's
// lifetime.
func (w *World) Reaped() int {
	return w.reaped
}
