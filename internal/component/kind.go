// Package component defines the closed set of component kinds, their typed
// values, struct-of-arrays stores and the field encodings used by GameSpec
// documents.
package component

import "github.com/promptplay/gamecore/internal/core/ecs"

// Kind identifies a component type. The numeric order is the canonical
// serialization order.
type Kind uint8

const (
	KindTransform Kind = iota
	KindVelocity
	KindSprite
	KindCollider
	KindInput
	KindHealth
	KindAIBehavior
	KindAnimation
	KindCamera
	KindParticleEmitter
	KindAudio
	KindTransform3D
	KindMesh
	KindMaterial
	KindLight
	KindCollider3D
	KindRigidBody3D
	KindCamera3D

	KindCount
)

var kindKeys = [KindCount]string{
	KindTransform:       "transform",
	KindVelocity:        "velocity",
	KindSprite:          "sprite",
	KindCollider:        "collider",
	KindInput:           "input",
	KindHealth:          "health",
	KindAIBehavior:      "aiBehavior",
	KindAnimation:       "animation",
	KindCamera:          "camera",
	KindParticleEmitter: "particleEmitter",
	KindAudio:           "audio",
	KindTransform3D:     "transform3d",
	KindMesh:            "mesh",
	KindMaterial:        "material",
	KindLight:           "light",
	KindCollider3D:      "collider3d",
	KindRigidBody3D:     "rigidBody3d",
	KindCamera3D:        "camera3d",
}

var kindByKey = func() map[string]Kind {
	m := make(map[string]Kind, KindCount)
	for k, key := range kindKeys {
		m[key] = Kind(k)
	}
	return m
}()

// Key returns the GameSpec JSON key of the kind.
func (k Kind) Key() string {
	if k >= KindCount {
		return ""
	}
	return kindKeys[k]
}

func (k Kind) String() string { return k.Key() }

// ID is the presence bitset index of the kind.
func (k Kind) ID() ecs.ComponentID { return ecs.ComponentID(k) }

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool { return k < KindCount }

// ParseKind resolves a GameSpec component key.
func ParseKind(key string) (Kind, bool) {
	k, ok := kindByKey[key]
	return k, ok
}

// Kinds returns every kind in canonical order.
func Kinds() []Kind {
	out := make([]Kind, KindCount)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}
