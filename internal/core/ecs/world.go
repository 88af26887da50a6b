package ecs

import "github.com/bits-and-blooms/bitset"

// ComponentID indexes the per-component presence bitsets.
type ComponentID uint8

// World is the storage core shared by the editor and the runtime. It owns the
// entity pool, one presence bitset per component kind, the store registry and
// the creation order of live entities.
//
// A presence bit is the only authority on whether a component's column slot
// is meaningful; column values of absent components may be stale.
type World struct {
	pool     *EntityPool
	registry *Registry
	presence []bitset.BitSet
	order    []EntityID
}

func NewWorld(kinds int) *World {
	return &World{
		pool:     NewEntityPool(),
		registry: NewRegistry(),
		presence: make([]bitset.BitSet, kinds),
		order:    make([]EntityID, 0, 64),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

func (w *World) CreateEntity() EntityID {
	id := w.pool.Create()
	w.registry.GrowAll(w.pool.Cap())
	w.order = append(w.order, id)
	return id
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Destroy clears every presence bit and store slot for id, then releases the
// slot to the pool. Returns false for stale or unknown handles.
func (w *World) Destroy(id EntityID) bool {
	if !w.pool.Alive(id) {
		return false
	}
	for c := range w.presence {
		w.presence[c].Clear(uint(id.Index()))
	}
	w.registry.RemoveAll(id)
	w.pool.Destroy(id)
	for i, e := range w.order {
		if e == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	return true
}

// Attach sets the presence bit for component c on id.
func (w *World) Attach(id EntityID, c ComponentID) bool {
	if !w.pool.Alive(id) || int(c) >= len(w.presence) {
		return false
	}
	w.presence[c].Set(uint(id.Index()))
	return true
}

// Detach clears the presence bit. Backing column values are left as they are.
func (w *World) Detach(id EntityID, c ComponentID) bool {
	if !w.Has(id, c) {
		return false
	}
	w.presence[c].Clear(uint(id.Index()))
	return true
}

func (w *World) Has(id EntityID, c ComponentID) bool {
	if int(c) >= len(w.presence) || !w.pool.Alive(id) {
		return false
	}
	return w.presence[c].Test(uint(id.Index()))
}

// Count returns the number of entities that carry component c.
func (w *World) Count(c ComponentID) int {
	if int(c) >= len(w.presence) {
		return 0
	}
	return int(w.presence[c].Count())
}

// Entities returns live entities in creation order. The slice is a copy.
func (w *World) Entities() []EntityID {
	out := make([]EntityID, len(w.order))
	copy(out, w.order)
	return out
}

func (w *World) Len() int { return len(w.order) }
