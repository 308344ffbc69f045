package ecs

// entityPool allocates handles from a slot arena with a free list.
// Slot 0 is reserved so NilEntity never aliases a live entity.
type entityPool struct {
	generations []uint32
	freeList    []uint32
	alive       []bool
}

func newEntityPool() *entityPool {
	return &entityPool{
		generations: make([]uint32, 1, 256),
		freeList:    make([]uint32, 0, 64),
		alive:       make([]bool, 1, 256),
	}
}

func (p *entityPool) create() Entity {
	if n := len(p.freeList); n > 0 {
		idx := p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		p.alive[idx] = true
		return PackEntity(idx, p.generations[idx])
	}

	idx := uint32(len(p.generations))
	p.generations = append(p.generations, 0)
	p.alive = append(p.alive, true)
	return PackEntity(idx, 0)
}

func (p *entityPool) isAlive(e Entity) bool {
	idx := e.Index()
	if idx == 0 || int(idx) >= len(p.generations) {
		return false
	}
	return p.alive[idx] && p.generations[idx] == e.Generation()
}

// release frees the slot and bumps its generation. Stale handles are ignored.
func (p *entityPool) release(e Entity) bool {
	if !p.isAlive(e) {
		return false
	}
	idx := e.Index()
	p.alive[idx] = false
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
	return true
}

func (p *entityPool) count() int {
	return len(p.generations) - 1 - len(p.freeList)
}
