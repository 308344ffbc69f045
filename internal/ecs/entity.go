package ecs

import (
	"fmt"
	"strconv"
)

// Entity is a 64-bit generational handle.
//
// Entity is a value type: cheap to copy, compare and use as a map key.
// It carries no data of its own; meaning comes from the components attached
// to it in the World's stores.
//
// Bit layout (high to low):
//
//	[ Generation (32) | Index (32) ]
//
// Where:
//   - Index is the slot in the entity arena
//   - Generation is the slot version, bumped every time the slot is reaped
//
// A handle whose generation no longer matches its slot is stale: Alive
// reports false and every store lookup misses, because stores key on the
// full handle.
type Entity uint64

// NilEntity is the zero handle. Index 0 is reserved, so the arena never
// hands it out.
const NilEntity Entity = 0

const (
	bitsIndex = 32
	bitsGen   = 32

	shiftGen = bitsIndex

	maskIndex = (1 << bitsIndex) - 1
	maskGen   = (1 << bitsGen) - 1
)

// PackEntity builds a handle from a slot index and generation.
// No range checks: callers pass values produced by the arena.
func PackEntity(index uint32, gen uint32) Entity {
	return Entity(uint64(gen)<<shiftGen | uint64(index))
}

// Index returns the arena slot.
func (e Entity) Index() uint32 {
	return uint32(e & maskIndex)
}

// Generation returns the slot version the handle was issued with.
func (e Entity) Generation() uint32 {
	return uint32((e >> shiftGen) & maskGen)
}

// IsNil reports whether e is the zero handle.
func (e Entity) IsNil() bool {
	return e == NilEntity
}

// String is meant for logs.
func (e Entity) String() string {
	if e.IsNil() {
		return "<nil>"
	}
	return fmt.Sprintf("[idx=%d gen=%d]", e.Index(), e.Generation())
}

// Key is the decimal form of the whole handle. Spectator snapshots use it as
// the entity id; a string keeps JavaScript clients from losing precision.
func (e Entity) Key() string {
	return strconv.FormatUint(uint64(e), 10)
}
