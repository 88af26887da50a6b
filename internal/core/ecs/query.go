package ecs

// Each calls fn for every live entity carrying all listed components, in
// creation order. Iteration stops when fn returns false.
func (w *World) Each(fn func(EntityID) bool, with ...ComponentID) {
	for _, id := range w.order {
		if w.hasAll(id, with) {
			if !fn(id) {
				return
			}
		}
	}
}

// Query collects the entities Each would visit.
func (w *World) Query(with ...ComponentID) []EntityID {
	out := make([]EntityID, 0, len(w.order))
	w.Each(func(id EntityID) bool {
		out = append(out, id)
		return true
	}, with...)
	return out
}

func (w *World) hasAll(id EntityID, with []ComponentID) bool {
	idx := uint(id.Index())
	for _, c := range with {
		if int(c) >= len(w.presence) || !w.presence[c].Test(idx) {
			return false
		}
	}
	return true
}
