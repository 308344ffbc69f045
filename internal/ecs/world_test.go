package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPos struct{ X, Y int }
type testHP struct{ HP int }
type testTag struct{}

func newTestWorld() *World {
	w := NewWorld()
	Register[testPos](w)
	Register[testHP](w)
	Register[testTag](w)
	return w
}

func TestBuilder_CommitsAtomically(t *testing.T) {
	w := newTestWorld()

	b := With(With(w.NewEntity(), testPos{X: 1, Y: 2}), testHP{HP: 10})
	require.Equal(t, 0, w.Count(), "nothing is committed before Build")
	require.Equal(t, 0, GetStore[testPos](w).Len())

	e := b.Build()
	assert.True(t, w.Alive(e))
	assert.Equal(t, 1, w.Count())

	pos, ok := GetStore[testPos](w).Get(e)
	require.True(t, ok)
	assert.Equal(t, testPos{X: 1, Y: 2}, *pos)

	hp, ok := GetStore[testHP](w).Get(e)
	require.True(t, ok)
	assert.Equal(t, 10, hp.HP)

	assert.False(t, GetStore[testTag](w).Has(e))
	assert.Equal(t, e, b.Build(), "second Build returns the same handle")
	assert.Panics(t, func() { With(b, testTag{}) })
}

func TestGetStore_Unregistered(t *testing.T) {
	w := NewWorld()
	assert.Panics(t, func() { GetStore[testPos](w) })
	Register[testPos](w)
	assert.NotPanics(t, func() { GetStore[testPos](w) })
	assert.Same(t, Register[testPos](w), GetStore[testPos](w))
}

func TestDestroy_IsDeferredUntilMaintain(t *testing.T) {
	w := newTestWorld()
	e := With(With(w.NewEntity(), testPos{}), testHP{HP: 1}).Build()

	w.Destroy(e)
	assert.True(t, w.Pending(e))
	assert.True(t, w.Alive(e), "still alive until Maintain")
	assert.True(t, GetStore[testPos](w).Has(e), "components readable until Maintain")

	w.Destroy(e) // double destroy is a no-op
	assert.Equal(t, 1, w.Maintain())

	assert.False(t, w.Alive(e))
	assert.False(t, w.Pending(e))
	assert.False(t, GetStore[testPos](w).Has(e))
	assert.False(t, GetStore[testHP](w).Has(e))
	assert.Equal(t, 0, w.Count())
	assert.Equal(t, 1, w.Reaped())
	assert.Equal(t, 0, w.Maintain(), "empty queue reaps nothing")
}

func TestStaleHandle_FailsLookups(t *testing.T) {
	w := newTestWorld()
	old := With(w.NewEntity(), testPos{X: 3}).Build()
	w.Destroy(old)
	w.Maintain()

	fresh := With(w.NewEntity(), testPos{X: 9}).Build()
	require.Equal(t, old.Index(), fresh.Index(), "slot is reused")
	require.NotEqual(t, old.Generation(), fresh.Generation())

	assert.False(t, w.Alive(old))
	_, ok := GetStore[testPos](w).Get(old)
	assert.False(t, ok, "stale handle must miss")

	w.Destroy(old) // stale destroy must not touch the new occupant
	w.Maintain()
	assert.True(t, w.Alive(fresh))
	pos, ok := GetStore[testPos](w).Get(fresh)
	require.True(t, ok)
	assert.Equal(t, 9, pos.X)
}

func TestNilEntity_NeverIssued(t *testing.T) {
	w := newTestWorld()
	for i := 0; i < 5; i++ {
		e := w.NewEntity().Build()
		assert.False(t, e.IsNil())
	}
	assert.False(t, w.Alive(NilEntity))
}

func TestStore_RemoveKeepsOthersIntact(t *testing.T) {
	s := NewStore[testHP]()
	a, b, c := PackEntity(1, 0), PackEntity(2, 0), PackEntity(3, 0)
	s.Insert(a, testHP{1})
	s.Insert(b, testHP{2})
	s.Insert(c, testHP{3})

	s.Remove(a)
	require.Equal(t, 2, s.Len())
	v, ok := s.Get(c)
	require.True(t, ok)
	assert.Equal(t, 3, v.HP)
	v, ok = s.Get(b)
	require.True(t, ok)
	assert.Equal(t, 2, v.HP)

	s.Insert(b, testHP{20})
	v, _ = s.Get(b)
	assert.Equal(t, 20, v.HP, "Insert replaces")
	assert.Equal(t, 2, s.Len())
}

func TestStore_RemoveBatch(t *testing.T) {
	s := NewStore[testHP]()
	var all []Entity
	for i := uint32(1); i <= 6; i++ {
		e := PackEntity(i, 0)
		all = append(all, e)
		s.Insert(e, testHP{HP: int(i)})
	}

	s.RemoveBatch([]Entity{all[0], all[2], all[4], PackEntity(99, 0)})

	assert.Equal(t, []Entity{all[1], all[3], all[5]}, s.Entities())
	for _, e := range []Entity{all[1], all[3], all[5]} {
		v, ok := s.Get(e)
		require.True(t, ok)
		assert.Equal(t, int(e.Index()), v.HP)
	}
}

func TestJoin_OnlyEntitiesInAllStores(t *testing.T) {
	w := newTestWorld()
	both := With(With(w.NewEntity(), testPos{X: 1}), testHP{HP: 5}).Build()
	With(w.NewEntity(), testPos{X: 2}).Build()
	With(w.NewEntity(), testHP{HP: 7}).Build()
	all3 := With(With(With(w.NewEntity(), testPos{X: 4}), testHP{HP: 8}), testTag{}).Build()

	var got []Entity
	Join2(GetStore[testPos](w), GetStore[testHP](w), func(e Entity, p *testPos, h *testHP) {
		got = append(got, e)
		h.HP++
	})
	assert.ElementsMatch(t, []Entity{both, all3}, got)

	hp, _ := GetStore[testHP](w).Get(both)
	assert.Equal(t, 6, hp.HP, "join hands out writable pointers")

	var triple []Entity
	Join3(GetStore[testPos](w), GetStore[testHP](w), GetStore[testTag](w), func(e Entity, _ *testPos, _ *testHP, _ *testTag) {
		triple = append(triple, e)
	})
	assert.Equal(t, []Entity{all3}, triple)
}
