package world

import (
	"fmt"

	"github.com/promptplay/gamecore/internal/component"
	"github.com/promptplay/gamecore/internal/core/ecs"
	"github.com/promptplay/gamecore/internal/core/event"
)

// AddComponent attaches c to id, overwriting any previous value of the same
// kind. Values whose asset ids are not registered in this World, or whose
// enum bytes fall outside their tables, are rejected.
//
// Pointers to component values are accepted and stored by value. Float
// fields must be finite.
func (w *World) AddComponent(id ecs.EntityID, c component.Component) error {
	c, ok := component.Value(c)
	if !ok {
		return ErrNilComponent
	}
	if !w.core.Alive(id) {
		return fmt.Errorf("add %s: %w", c.Kind(), ErrDeadEntity)
	}
	if _, err := component.Encode(c, w.assets); err != nil {
		return fmt.Errorf("add %s to %q: %w", c.Kind(), w.names[id.Index()], err)
	}

	k := c.Kind()
	replaced := w.core.Has(id, k.ID())
	if err := w.stores.Set(id.Index(), c); err != nil {
		return err
	}
	w.core.Attach(id, k.ID())

	if w.bus != nil {
		event.Emit(w.bus, event.ComponentAdded{EntityID: id, Component: k.ID(), Replaced: replaced})
	}
	return nil
}

func (w *World) HasComponent(id ecs.EntityID, k component.Kind) bool {
	return k.Valid() && w.core.Has(id, k.ID())
}

// RemoveComponent clears the presence of kind k on id. Column values are left
// in place and must not be read until the component is added again.
func (w *World) RemoveComponent(id ecs.EntityID, k component.Kind) bool {
	if !k.Valid() || !w.core.Detach(id, k.ID()) {
		return false
	}
	if w.bus != nil {
		event.Emit(w.bus, event.ComponentRemoved{EntityID: id, Component: k.ID()})
	}
	return true
}

// Component reads the value of kind k on id.
func (w *World) Component(id ecs.EntityID, k component.Kind) (component.Component, bool) {
	if !w.HasComponent(id, k) {
		return nil, false
	}
	return w.stores.Get(id.Index(), k), true
}

// Components returns the kinds attached to id in canonical order.
func (w *World) Components(id ecs.EntityID) []component.Kind {
	var out []component.Kind
	for _, k := range component.Kinds() {
		if w.core.Has(id, k.ID()) {
			out = append(out, k)
		}
	}
	return out
}

// Count returns how many entities carry kind k.
func (w *World) Count(k component.Kind) int { return w.core.Count(k.ID()) }

// Query returns entities carrying every kind in kinds, in creation order.
func (w *World) Query(kinds ...component.Kind) []ecs.EntityID {
	return w.core.Query(componentIDs(kinds)...)
}

// Each calls fn for every entity carrying all kinds until fn returns false.
func (w *World) Each(fn func(ecs.EntityID) bool, kinds ...component.Kind) {
	w.core.Each(fn, componentIDs(kinds)...)
}

func componentIDs(kinds []component.Kind) []ecs.ComponentID {
	ids := make([]ecs.ComponentID, len(kinds))
	for i, k := range kinds {
		ids[i] = k.ID()
	}
	return ids
}
