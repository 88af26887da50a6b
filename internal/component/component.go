package component

import (
	"fmt"
	"reflect"
)

// Component is one typed component value. The implementations in this
// package are the complete set; there is no open registration.
type Component interface {
	Kind() Kind
	encode(w *FieldWriter)
}

type decoder interface {
	decode(r *FieldReader)
	value() Component
}

var defaults = [KindCount]func() decoder{
	KindTransform:       func() decoder { v := DefaultTransform(); return &v },
	KindVelocity:        func() decoder { v := Velocity{}; return &v },
	KindSprite:          func() decoder { v := DefaultSprite(); return &v },
	KindCollider:        func() decoder { v := DefaultCollider(); return &v },
	KindInput:           func() decoder { v := DefaultInput(); return &v },
	KindHealth:          func() decoder { v := DefaultHealth(); return &v },
	KindAIBehavior:      func() decoder { v := DefaultAIBehavior(); return &v },
	KindAnimation:       func() decoder { v := DefaultAnimation(); return &v },
	KindCamera:          func() decoder { v := DefaultCamera(); return &v },
	KindParticleEmitter: func() decoder { v := DefaultParticleEmitter(); return &v },
	KindAudio:           func() decoder { v := DefaultAudio(); return &v },
	KindTransform3D:     func() decoder { v := DefaultTransform3D(); return &v },
	KindMesh:            func() decoder { v := DefaultMesh(); return &v },
	KindMaterial:        func() decoder { v := DefaultMaterial(); return &v },
	KindLight:           func() decoder { v := DefaultLight(); return &v },
	KindCollider3D:      func() decoder { v := DefaultCollider3D(); return &v },
	KindRigidBody3D:     func() decoder { v := DefaultRigidBody3D(); return &v },
	KindCamera3D:        func() decoder { v := DefaultCamera3D(); return &v },
}

// Default returns the value a component of kind k takes when every field is
// missing from its GameSpec object.
func Default(k Kind) Component {
	if !k.Valid() {
		return nil
	}
	return defaults[k]().value()
}

// Value returns c as a plain value: pointers to component values are
// dereferenced. ok is false for nil and for nil pointers.
func Value(c Component) (v Component, ok bool) {
	if c == nil {
		return nil, false
	}
	d, isPtr := c.(decoder)
	if !isPtr {
		return c, true
	}
	if reflect.ValueOf(c).IsNil() {
		return nil, false
	}
	return d.value(), true
}

// Encode converts c to its GameSpec fields in schema order.
func Encode(c Component, assets Assets) ([]Field, error) {
	w := &FieldWriter{assets: assets}
	c.encode(w)
	if w.err != nil {
		return nil, fmt.Errorf("%s: %w", c.Kind(), w.err)
	}
	if w.fields == nil {
		w.fields = []Field{}
	}
	return w.fields, nil
}

// Decode builds a component of kind k from a GameSpec object. Missing fields
// take defaults, unknown keys and unknown values are reported as issues, and
// a field of the wrong JSON type is returned as a *FieldError.
func Decode(k Kind, obj map[string]any, assets Assets) (Component, []Issue, error) {
	if !k.Valid() {
		return nil, nil, fmt.Errorf("unknown component kind %d", k)
	}
	d := defaults[k]()
	r := newFieldReader(obj, assets)
	d.decode(r)
	if r.err != nil {
		return nil, nil, r.err
	}
	for _, key := range r.unconsumed() {
		r.warn(key, "unknown field ignored")
	}
	return d.value(), r.issues, nil
}

func b2u(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func u2b(u uint8) bool { return u != 0 }

func grow[T any](col []T, n int) []T {
	if len(col) >= n {
		return col
	}
	return append(col, make([]T, n-len(col))...)
}
