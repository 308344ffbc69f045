package ecs

// AnyStore provides type-erased operations so the World can manage every
// store uniformly (destroy, counts) without knowing the component type.
type AnyStore interface {
	Remove(e Entity)
	Has(e Entity) bool
	Len() int
	Entities() []Entity
}

// Store is a typed component container using the sparse set pattern:
// dense parallel slices for cache-friendly, deterministic iteration and a
// map from handle to dense slot for O(1) lookup.
//
// Pointers returned by Get and passed to Each stay valid until the next
// Insert or Remove on the same store.
type Store[T any] struct {
	dense  []Entity
	values []T
	sparse map[Entity]int
}

// NewStore creates an empty store for component type T.
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		dense:  make([]Entity, 0, 64),
		values: make([]T, 0, 64),
		sparse: make(map[Entity]int, 64),
	}
}

// Insert attaches or replaces the component for e.
func (s *Store[T]) Insert(e Entity, v T) {
	if i, ok := s.sparse[e]; ok {
		s.values[i] = v
		return
	}
	s.sparse[e] = len(s.dense)
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
}

// Get returns a pointer to e's component.
func (s *Store[T]) Get(e Entity) (*T, bool) {
	i, ok := s.sparse[e]
	if !ok {
		return nil, false
	}
	return &s.values[i], true
}

// Has reports whether e holds this component.
func (s *Store[T]) Has(e Entity) bool {
	_, ok := s.sparse[e]
	return ok
}

// Remove detaches the component from e (swap with last).
func (s *Store[T]) Remove(e Entity) {
	i, ok := s.sparse[e]
	if !ok {
		return
	}
	last := len(s.dense) - 1
	if i != last {
		moved := s.dense[last]
		s.dense[i] = moved
		s.values[i] = s.values[last]
		s.sparse[moved] = i
	}
	var zero T
	s.values[last] = zero
	s.dense = s.dense[:last]
	s.values = s.values[:last]
	delete(s.sparse, e)
}

// RemoveBatch detaches the component from several entities in one
// compaction pass. Used by systems that must not mutate a store they are
// still iterating.
func (s *Store[T]) RemoveBatch(entities []Entity) {
	if len(entities) == 0 || len(s.dense) == 0 {
		return
	}

	toRemove := make(map[Entity]struct{}, len(entities))
	for _, e := range entities {
		if _, ok := s.sparse[e]; ok {
			toRemove[e] = struct{}{}
		}
	}
	if len(toRemove) == 0 {
		return
	}

	w := 0
	for r, e := range s.dense {
		if _, drop := toRemove[e]; drop {
			delete(s.sparse, e)
			continue
		}
		s.dense[w] = e
		s.values[w] = s.values[r]
		s.sparse[e] = w
		w++
	}

	var zero T
	for i := w; i < len(s.values); i++ {
		s.values[i] = zero
	}
	s.dense = s.dense[:w]
	s.values = s.values[:w]
}

// Len returns the number of entities holding this component.
func (s *Store[T]) Len() int {
	return len(s.dense)
}

// Entities returns a copy of the holders in dense order.
func (s *Store[T]) Entities() []Entity {
	out := make([]Entity, len(s.dense))
	copy(out, s.dense)
	return out
}

// Each visits every (entity, component) pair in dense order. fn must not
// insert into or remove from this store.
func (s *Store[T]) Each(fn func(Entity, *T)) {
	for i, e := range s.dense {
		fn(e, &s.values[i])
	}
}

// Clear drops every component.
func (s *Store[T]) Clear() {
	s.dense = s.dense[:0]
	s.values = s.values[:0]
	s.sparse = make(map[Entity]int, 64)
}
