package ecs

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	Remove(id EntityID)
}

// Store is a struct-of-arrays component store. Grow is called whenever the
// entity pool issues a new slot so columns can always be indexed by
// EntityID.Index() without bounds checks at the call site.
type Store interface {
	Removable
	Grow(n int)
}

// Registry tracks all component stores and supports bulk cleanup on entity destroy.
type Registry struct {
	stores []Store
}

func NewRegistry() *Registry {
	return &Registry{
		stores: make([]Store, 0, 32),
	}
}

// Register adds a component store to the registry.
func (r *Registry) Register(store Store) {
	r.stores = append(r.stores, store)
}

// GrowAll resizes every registered store to hold n slots.
func (r *Registry) GrowAll(n int) {
	for _, s := range r.stores {
		s.Grow(n)
	}
}

// RemoveAll clears the given entity from every registered component store.
func (r *Registry) RemoveAll(id EntityID) {
	for _, s := range r.stores {
		s.Remove(id)
	}
}
