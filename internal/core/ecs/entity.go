package ecs

import "github.com/bits-and-blooms/bitset"

// EntityID encodes a 32-bit slot index in the lower bits and a 32-bit generation
// in the upper bits. Generation increments on destroy to invalidate stale refs.
// Generations start at 1, so the zero EntityID never names a live entity.
type EntityID uint64

// Nil is the zero handle. It is never returned by EntityPool.Create.
const Nil EntityID = 0

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == 0 }

// EntityPool manages entity allocation with generational indices and a free list.
// Slot indices are dense: storage columns sized to Cap() can be indexed by any
// handle the pool has issued.
type EntityPool struct {
	generations []uint32
	live        bitset.BitSet
	freeList    []uint32
	nextIndex   uint32
}

func NewEntityPool() *EntityPool {
	return &EntityPool{
		generations: make([]uint32, 0, 1024),
		freeList:    make([]uint32, 0, 256),
	}
}

func (p *EntityPool) Create() EntityID {
	if len(p.freeList) > 0 {
		idx := p.freeList[len(p.freeList)-1]
		p.freeList = p.freeList[:len(p.freeList)-1]
		p.live.Set(uint(idx))
		return NewEntityID(idx, p.generations[idx])
	}
	idx := p.nextIndex
	p.nextIndex++
	p.generations = append(p.generations, 1)
	p.live.Set(uint(idx))
	return NewEntityID(idx, p.generations[idx])
}

func (p *EntityPool) Alive(id EntityID) bool {
	idx := id.Index()
	if idx >= p.nextIndex {
		return false
	}
	return p.live.Test(uint(idx)) && p.generations[idx] == id.Generation()
}

// Destroy releases the slot. Callers must clear every component and tag that
// references the slot first; the pool only recycles the index.
func (p *EntityPool) Destroy(id EntityID) {
	if !p.Alive(id) {
		return // already destroyed (stale reference)
	}
	idx := id.Index()
	p.generations[idx]++
	if p.generations[idx] == 0 {
		p.generations[idx] = 1
	}
	p.live.Clear(uint(idx))
	p.freeList = append(p.freeList, idx)
}

// Cap is the number of slots ever allocated.
func (p *EntityPool) Cap() int { return int(p.nextIndex) }

// Len is the number of live entities.
func (p *EntityPool) Len() int { return int(p.nextIndex) - len(p.freeList) }
