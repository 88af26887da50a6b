package gamespec

import (
	"sort"

	"github.com/promptplay/gamecore/internal/component"
	"github.com/promptplay/gamecore/internal/world"
)

// Serialize snapshots w into a Document. It does not modify w, and two calls
// on an unmodified World marshal to identical bytes: entities follow creation
// order, components the canonical kind order, fields their schema order and
// tags insertion order.
func Serialize(w *world.World) (*Document, error) {
	ids := w.Entities()
	doc := &Document{
		Version:  w.Version(),
		Metadata: metadataObject(w.Metadata()),
		Config:   configObject(w.Config()),
		Entities: make([]Entity, 0, len(ids)),
		Systems:  w.Systems(),
	}
	if doc.Systems == nil {
		doc.Systems = []string{}
	}

	for _, id := range ids {
		name := w.Name(id)
		comps := NewObject(4)
		for _, k := range w.Components(id) {
			c, _ := w.Component(id, k)
			fields, err := component.Encode(c, w.Assets())
			if err != nil {
				return nil, &InvariantError{Entity: name, Component: k.Key(), Err: err}
			}
			obj := NewObject(len(fields))
			for _, f := range fields {
				obj.Set(f.Key, f.Value)
			}
			comps.Set(k.Key(), obj)
		}
		tags := w.Tags(id)
		if tags == nil {
			tags = []string{}
		}
		doc.Entities = append(doc.Entities, Entity{Name: name, Components: comps, Tags: tags})
	}
	return doc, nil
}

var (
	metadataKeys = []string{"title", "genre", "description"}
	configKeys   = []string{"gravity", "worldBounds", "background"}
)

func metadataObject(m world.Metadata) *Object {
	o := NewObject(3 + len(m.Extras))
	o.Set("title", m.Title)
	o.Set("genre", m.Genre)
	o.Set("description", m.Description)
	setExtras(o, m.Extras, metadataKeys)
	return o
}

func configObject(c world.Config) *Object {
	o := NewObject(3 + len(c.Extras))

	g := NewObject(2)
	g.Set("x", c.Gravity.X())
	g.Set("y", c.Gravity.Y())
	o.Set("gravity", g)

	b := NewObject(2)
	b.Set("width", c.WorldBounds.Width)
	b.Set("height", c.WorldBounds.Height)
	o.Set("worldBounds", b)

	if c.Background != "" {
		o.Set("background", c.Background)
	}
	setExtras(o, c.Extras, configKeys)
	return o
}

// setExtras appends pass-through keys sorted by name. Keys that collide with
// modelled keys are skipped.
func setExtras(o *Object, extras []world.Extra, reserved []string) {
	sorted := make([]world.Extra, 0, len(extras))
outer:
	for _, e := range extras {
		for _, r := range reserved {
			if e.Key == r {
				continue outer
			}
		}
		sorted = append(sorted, e)
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })
	for _, e := range sorted {
		o.Set(e.Key, e.Value)
	}
}
