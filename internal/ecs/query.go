package ecs

// Join2 visits every entity holding both A and B.
// It walks the smaller store in dense order and probes the larger one, so the
// visit order is deterministic for a given insertion history.
// fn must not insert into or remove from either store.
func Join2[A, B any](sa *Store[A], sb *Store[B], fn func(Entity, *A, *B)) {
	if sa.Len() <= sb.Len() {
		for i, e := range sa.dense {
			if j, ok := sb.sparse[e]; ok {
				fn(e, &sa.values[i], &sb.values[j])
			}
		}
		return
	}
	for j, e := range sb.dense {
		if i, ok := sa.sparse[e]; ok {
			fn(e, &sa.values[i], &sb.values[j])
		}
	}
}

// Join3 visits every entity holding A, B and C, walking the smallest store.
func Join3[A, B, C any](sa *Store[A], sb *Store[B], sc *Store[C], fn func(Entity, *A, *B, *C)) {
	var driver []Entity
	switch {
	case sa.Len() <= sb.Len() && sa.Len() <= sc.Len():
		driver = sa.dense
	case sb.Len() <= sc.Len():
		driver = sb.dense
	default:
		driver = sc.dense
	}

	for _, e := range driver {
		i, ok := sa.sparse[e]
		if !ok {
			continue
		}
		j, ok := sb.sparse[e]
		if !ok {
			continue
		}
		k, ok := sc.sparse[e]
		if !ok {
			continue
		}
		fn(e, &sa.values[i], &sb.values[j], &sc.values[k])
	}
}
