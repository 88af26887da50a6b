package world

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// Extra is a key the World does not model, carried through verbatim.
type Extra struct {
	Key   string
	Value any
}

type Metadata struct {
	Title       string
	Genre       string
	Description string
	Extras      []Extra
}

type Bounds struct {
	Width, Height float32
}

type Config struct {
	Gravity     mgl32.Vec2
	WorldBounds Bounds
	// Background is a CSS color; empty means the runtime default.
	Background string
	Extras     []Extra
}

// DefaultConfig matches the runtime's canvas: 800x600 with downward gravity.
func DefaultConfig() Config {
	return Config{
		Gravity:     mgl32.Vec2{0, 1},
		WorldBounds: Bounds{Width: 800, Height: 600},
	}
}

func (w *World) Metadata() Metadata {
	m := w.metadata
	m.Extras = slices.Clone(m.Extras)
	return m
}

func (w *World) SetMetadata(m Metadata) {
	m.Extras = slices.Clone(m.Extras)
	w.metadata = m
}

func (w *World) Config() Config {
	c := w.config
	c.Extras = slices.Clone(c.Extras)
	return c
}

func (w *World) SetConfig(c Config) {
	c.Extras = slices.Clone(c.Extras)
	w.config = c
}

// Systems lists the runtime systems the game enables, in order.
func (w *World) Systems() []string { return slices.Clone(w.systems) }

func (w *World) SetSystems(names []string) { w.systems = slices.Clone(names) }

func (w *World) Version() string { return w.version }

func (w *World) SetVersion(v string) {
	if v == "" {
		v = DefaultVersion
	}
	w.version = v
}
