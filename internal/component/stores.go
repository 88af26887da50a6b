package component

import (
	"fmt"

	"github.com/promptplay/gamecore/internal/core/ecs"
)

// Stores holds one struct-of-arrays store per kind. Columns are indexed by
// EntityID.Index(); whether a slot is meaningful is decided by the owner's
// presence bitsets, not by the stores.
type Stores struct {
	Transform       TransformStore
	Velocity        VelocityStore
	Sprite          SpriteStore
	Collider        ColliderStore
	Input           InputStore
	Health          HealthStore
	AIBehavior      AIBehaviorStore
	Animation       AnimationStore
	Camera          CameraStore
	ParticleEmitter ParticleEmitterStore
	Audio           AudioStore
	Transform3D     Transform3DStore
	Mesh            MeshStore
	Material        MaterialStore
	Light           LightStore
	Collider3D      Collider3DStore
	RigidBody3D     RigidBody3DStore
	Camera3D        Camera3DStore
}

// All returns the stores in canonical kind order, for registration with an
// ecs.Registry.
func (s *Stores) All() []ecs.Store {
	return []ecs.Store{
		&s.Transform, &s.Velocity, &s.Sprite, &s.Collider, &s.Input, &s.Health,
		&s.AIBehavior, &s.Animation, &s.Camera, &s.ParticleEmitter, &s.Audio,
		&s.Transform3D, &s.Mesh, &s.Material, &s.Light, &s.Collider3D,
		&s.RigidBody3D, &s.Camera3D,
	}
}

// Set writes c into slot i of the store matching its kind. The slot must
// already exist (see ecs.Store.Grow). Values of other types, pointers
// included, are rejected with ErrUnsupportedValue.
func (s *Stores) Set(i uint32, c Component) error {
	switch v := c.(type) {
	case Transform:
		s.Transform.set(i, v)
	case Velocity:
		s.Velocity.set(i, v)
	case Sprite:
		s.Sprite.set(i, v)
	case Collider:
		s.Collider.set(i, v)
	case Input:
		s.Input.set(i, v)
	case Health:
		s.Health.set(i, v)
	case AIBehavior:
		s.AIBehavior.set(i, v)
	case Animation:
		s.Animation.set(i, v)
	case Camera:
		s.Camera.set(i, v)
	case ParticleEmitter:
		s.ParticleEmitter.set(i, v)
	case Audio:
		s.Audio.set(i, v)
	case Transform3D:
		s.Transform3D.set(i, v)
	case Mesh:
		s.Mesh.set(i, v)
	case Material:
		s.Material.set(i, v)
	case Light:
		s.Light.set(i, v)
	case Collider3D:
		s.Collider3D.set(i, v)
	case RigidBody3D:
		s.RigidBody3D.set(i, v)
	case Camera3D:
		s.Camera3D.set(i, v)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedValue, c)
	}
	return nil
}

// Get reads slot i of kind k back as a typed value.
func (s *Stores) Get(i uint32, k Kind) Component {
	switch k {
	case KindTransform:
		return s.Transform.get(i)
	case KindVelocity:
		return s.Velocity.get(i)
	case KindSprite:
		return s.Sprite.get(i)
	case KindCollider:
		return s.Collider.get(i)
	case KindInput:
		return s.Input.get(i)
	case KindHealth:
		return s.Health.get(i)
	case KindAIBehavior:
		return s.AIBehavior.get(i)
	case KindAnimation:
		return s.Animation.get(i)
	case KindCamera:
		return s.Camera.get(i)
	case KindParticleEmitter:
		return s.ParticleEmitter.get(i)
	case KindAudio:
		return s.Audio.get(i)
	case KindTransform3D:
		return s.Transform3D.get(i)
	case KindMesh:
		return s.Mesh.get(i)
	case KindMaterial:
		return s.Material.get(i)
	case KindLight:
		return s.Light.get(i)
	case KindCollider3D:
		return s.Collider3D.get(i)
	case KindRigidBody3D:
		return s.RigidBody3D.get(i)
	case KindCamera3D:
		return s.Camera3D.get(i)
	}
	return nil
}
