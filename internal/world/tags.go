package world

import (
	"slices"

	"golang.org/x/text/unicode/norm"

	"github.com/promptplay/gamecore/internal/core/ecs"
	"github.com/promptplay/gamecore/internal/core/event"
)

// AddTag adds tag to id's tag set. Adding a tag the entity already has is a
// no-op. Tags keep insertion order.
func (w *World) AddTag(id ecs.EntityID, tag string) error {
	if !w.core.Alive(id) {
		return ErrDeadEntity
	}
	tag = norm.NFC.String(tag)
	if tag == "" {
		return ErrEmptyTag
	}
	i := id.Index()
	if slices.Contains(w.tags[i], tag) {
		return nil
	}
	w.tags[i] = append(w.tags[i], tag)

	if w.bus != nil {
		event.Emit(w.bus, event.TagAdded{EntityID: id, Tag: tag})
	}
	return nil
}

func (w *World) RemoveTag(id ecs.EntityID, tag string) bool {
	if !w.core.Alive(id) {
		return false
	}
	tag = norm.NFC.String(tag)
	i := id.Index()
	at := slices.Index(w.tags[i], tag)
	if at < 0 {
		return false
	}
	w.tags[i] = slices.Delete(w.tags[i], at, at+1)

	if w.bus != nil {
		event.Emit(w.bus, event.TagRemoved{EntityID: id, Tag: tag})
	}
	return true
}

func (w *World) HasTag(id ecs.EntityID, tag string) bool {
	if !w.core.Alive(id) {
		return false
	}
	return slices.Contains(w.tags[id.Index()], norm.NFC.String(tag))
}

// Tags returns a copy of id's tags in insertion order.
func (w *World) Tags(id ecs.EntityID) []string {
	if !w.core.Alive(id) {
		return nil
	}
	return slices.Clone(w.tags[id.Index()])
}

// EntitiesWithTag returns the entities carrying tag, in creation order.
func (w *World) EntitiesWithTag(tag string) []ecs.EntityID {
	tag = norm.NFC.String(tag)
	var out []ecs.EntityID
	for _, id := range w.core.Entities() {
		if slices.Contains(w.tags[id.Index()], tag) {
			out = append(out, id)
		}
	}
	return out
}
