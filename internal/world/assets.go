package world

import "github.com/promptplay/gamecore/internal/component"

// Assets interns texture, model and sound names. Ids are dense, start at 1 and
// are never reused within one registry.
type Assets struct {
	names []string
	ids   map[string]component.AssetID
}

func NewAssets() *Assets {
	return &Assets{ids: make(map[string]component.AssetID)}
}

// Intern returns the id for name, registering it on first use. The empty
// name maps to component.NoAsset.
func (a *Assets) Intern(name string) component.AssetID {
	if name == "" {
		return component.NoAsset
	}
	if id, ok := a.ids[name]; ok {
		return id
	}
	a.names = append(a.names, name)
	id := component.AssetID(len(a.names))
	a.ids[name] = id
	return id
}

// Lookup returns the id of an already registered name without interning it.
func (a *Assets) Lookup(name string) (component.AssetID, bool) {
	id, ok := a.ids[name]
	return id, ok
}

func (a *Assets) Resolve(id component.AssetID) (string, bool) {
	if id == component.NoAsset || int(id) > len(a.names) {
		return "", false
	}
	return a.names[id-1], true
}

// Names returns every registered name in id order.
func (a *Assets) Names() []string {
	out := make([]string, len(a.names))
	copy(out, a.names)
	return out
}

func (a *Assets) Len() int { return len(a.names) }

// InternAsset registers name in the World's asset registry.
func (w *World) InternAsset(name string) component.AssetID { return w.assets.Intern(name) }

func (w *World) ResolveAsset(id component.AssetID) (string, bool) { return w.assets.Resolve(id) }

func (w *World) Assets() *Assets { return w.assets }
