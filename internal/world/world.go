// Package world is the in-memory aggregate behind a GameSpec: entities and
// their components, names, tags, the asset registry and the free-form
// metadata, config and systems blocks.
//
// A World is owned by one goroutine. Callers that need concurrent readers
// snapshot it through gamespec.Serialize first.
package world

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/promptplay/gamecore/internal/component"
	"github.com/promptplay/gamecore/internal/core/ecs"
	"github.com/promptplay/gamecore/internal/core/event"
)

var (
	ErrDeadEntity   = errors.New("entity is not alive")
	ErrNameTaken    = errors.New("entity name already in use")
	ErrEmptyName    = errors.New("entity name is empty")
	ErrEmptyTag     = errors.New("tag is empty")
	ErrNilComponent = errors.New("nil component")
)

// DefaultVersion is written by worlds that were never given a version.
const DefaultVersion = "1.0"

type World struct {
	log    *zap.Logger
	core   *ecs.World
	stores component.Stores
	assets *Assets
	bus    *event.Bus

	// Per-slot data indexed by EntityID.Index(). Cleared on destroy.
	names []string
	tags  [][]string

	byName  map[string]ecs.EntityID
	unnamed int

	version  string
	metadata Metadata
	config   Config
	systems  []string
}

func New(log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	w := &World{
		log:     log,
		core:    ecs.NewWorld(int(component.KindCount)),
		assets:  NewAssets(),
		byName:  make(map[string]ecs.EntityID),
		version: DefaultVersion,
		config:  DefaultConfig(),
	}
	for _, s := range w.stores.All() {
		w.core.Registry().Register(s)
	}
	return w
}

// SetBus attaches an event bus. Mutations emit change events into it; nil
// detaches.
func (w *World) SetBus(b *event.Bus) { w.bus = b }

func (w *World) Bus() *event.Bus { return w.bus }

// Stores exposes the struct-of-arrays columns for iteration. Slots are only
// meaningful where HasComponent reports true.
func (w *World) Stores() *component.Stores { return &w.stores }

// ── entities ──

// CreateEntity allocates an entity bound to name. An empty name becomes
// "entity_<n>"; a name already bound gets a numeric suffix ("enemy_2").
func (w *World) CreateEntity(name string) ecs.EntityID {
	name = norm.NFC.String(name)
	if name == "" {
		w.unnamed++
		name = fmt.Sprintf("entity_%d", w.unnamed)
	}
	name = w.uniqueName(name)

	id := w.core.CreateEntity()
	i := int(id.Index())
	if i >= len(w.names) {
		w.names = append(w.names, make([]string, i+1-len(w.names))...)
		w.tags = append(w.tags, make([][]string, i+1-len(w.tags))...)
	}
	w.names[i] = name
	w.tags[i] = nil
	w.byName[name] = id

	if w.bus != nil {
		event.Emit(w.bus, event.EntityCreated{EntityID: id, Name: name})
	}
	return id
}

func (w *World) uniqueName(base string) string {
	if _, taken := w.byName[base]; !taken {
		return base
	}
	for n := 2; ; n++ {
		cand := fmt.Sprintf("%s_%d", base, n)
		if _, taken := w.byName[cand]; !taken {
			w.log.Debug("entity name taken, suffixed", zap.String("name", base), zap.String("as", cand))
			return cand
		}
	}
}

// DestroyEntity releases id together with its components, tags and name.
// Returns false for stale or unknown handles.
func (w *World) DestroyEntity(id ecs.EntityID) bool {
	if !w.core.Alive(id) {
		return false
	}
	i := id.Index()
	name := w.names[i]
	delete(w.byName, name)
	w.names[i] = ""
	w.tags[i] = nil
	w.core.Destroy(id)

	if w.bus != nil {
		event.Emit(w.bus, event.EntityDestroyed{EntityID: id, Name: name})
	}
	return true
}

func (w *World) Alive(id ecs.EntityID) bool { return w.core.Alive(id) }

// Entities returns live entities in creation order.
func (w *World) Entities() []ecs.EntityID { return w.core.Entities() }

func (w *World) Len() int { return w.core.Len() }

// Name returns the unique name bound to id, or "" for dead handles.
func (w *World) Name(id ecs.EntityID) string {
	if !w.core.Alive(id) {
		return ""
	}
	return w.names[id.Index()]
}

// Lookup resolves an entity by name.
func (w *World) Lookup(name string) (ecs.EntityID, bool) {
	id, ok := w.byName[norm.NFC.String(name)]
	return id, ok
}

// Rename rebinds id to name. Renaming to the current name is a no-op.
func (w *World) Rename(id ecs.EntityID, name string) error {
	if !w.core.Alive(id) {
		return ErrDeadEntity
	}
	name = norm.NFC.String(name)
	if name == "" {
		return ErrEmptyName
	}
	old := w.names[id.Index()]
	if old == name {
		return nil
	}
	if _, taken := w.byName[name]; taken {
		return fmt.Errorf("rename %q: %w: %q", old, ErrNameTaken, name)
	}
	delete(w.byName, old)
	w.byName[name] = id
	w.names[id.Index()] = name

	if w.bus != nil {
		event.Emit(w.bus, event.EntityRenamed{EntityID: id, From: old, To: name})
	}
	return nil
}
