package component

import "github.com/promptplay/gamecore/internal/core/ecs"

// ── transform ──

type Transform struct {
	X, Y           float32
	Rotation       float32
	ScaleX, ScaleY float32
}

func DefaultTransform() Transform { return Transform{ScaleX: 1, ScaleY: 1} }

func (Transform) Kind() Kind { return KindTransform }

func (c Transform) encode(w *FieldWriter) {
	w.Float("x", c.X)
	w.Float("y", c.Y)
	w.Float("rotation", c.Rotation)
	w.Float("scaleX", c.ScaleX)
	w.Float("scaleY", c.ScaleY)
}

func (c *Transform) decode(r *FieldReader) {
	r.Float("x", &c.X)
	r.Float("y", &c.Y)
	r.Float("rotation", &c.Rotation)
	r.Float("scaleX", &c.ScaleX)
	r.Float("scaleY", &c.ScaleY)
}

func (c *Transform) value() Component { return *c }

type TransformStore struct {
	X, Y, Rotation, ScaleX, ScaleY []float32
}

func (s *TransformStore) Grow(n int) {
	s.X, s.Y, s.Rotation = grow(s.X, n), grow(s.Y, n), grow(s.Rotation, n)
	s.ScaleX, s.ScaleY = grow(s.ScaleX, n), grow(s.ScaleY, n)
}

func (s *TransformStore) Remove(id ecs.EntityID) { s.set(id.Index(), Transform{}) }

func (s *TransformStore) set(i uint32, v Transform) {
	s.X[i], s.Y[i], s.Rotation[i], s.ScaleX[i], s.ScaleY[i] = v.X, v.Y, v.Rotation, v.ScaleX, v.ScaleY
}

func (s *TransformStore) get(i uint32) Transform {
	return Transform{X: s.X[i], Y: s.Y[i], Rotation: s.Rotation[i], ScaleX: s.ScaleX[i], ScaleY: s.ScaleY[i]}
}

// ── velocity ──

type Velocity struct {
	VX, VY float32
}

func (Velocity) Kind() Kind { return KindVelocity }

func (c Velocity) encode(w *FieldWriter) {
	w.Float("vx", c.VX)
	w.Float("vy", c.VY)
}

func (c *Velocity) decode(r *FieldReader) {
	r.Float("vx", &c.VX)
	r.Float("vy", &c.VY)
}

func (c *Velocity) value() Component { return *c }

type VelocityStore struct {
	VX, VY []float32
}

func (s *VelocityStore) Grow(n int)              { s.VX, s.VY = grow(s.VX, n), grow(s.VY, n) }
func (s *VelocityStore) Remove(id ecs.EntityID) { s.set(id.Index(), Velocity{}) }

func (s *VelocityStore) set(i uint32, v Velocity) { s.VX[i], s.VY[i] = v.VX, v.VY }
func (s *VelocityStore) get(i uint32) Velocity    { return Velocity{VX: s.VX[i], VY: s.VY[i]} }

// ── sprite ──

// Optional sprite fields.
const (
	SpriteZIndex FieldMask = 1 << iota
	SpriteFlipX
	SpriteFlipY
)

type Sprite struct {
	Texture       AssetID
	Width, Height float32
	Tint          Color
	Visible       bool
	ZIndex        int32
	FlipX, FlipY  bool
	Optional      FieldMask
}

func DefaultSprite() Sprite {
	return Sprite{Width: 32, Height: 32, Tint: White, Visible: true}
}

func (Sprite) Kind() Kind { return KindSprite }

func (c Sprite) encode(w *FieldWriter) {
	w.Asset("texture", c.Texture)
	w.Float("width", c.Width)
	w.Float("height", c.Height)
	w.Color("tint", c.Tint)
	w.Bool("visible", c.Visible)
	if c.Optional&SpriteZIndex != 0 {
		w.Int("zIndex", c.ZIndex)
	}
	if c.Optional&SpriteFlipX != 0 {
		w.Bool("flipX", c.FlipX)
	}
	if c.Optional&SpriteFlipY != 0 {
		w.Bool("flipY", c.FlipY)
	}
}

func (c *Sprite) decode(r *FieldReader) {
	r.Asset("texture", &c.Texture)
	r.Float("width", &c.Width)
	r.Float("height", &c.Height)
	r.Color("tint", &c.Tint)
	r.Bool("visible", &c.Visible)
	if r.Int("zIndex", &c.ZIndex) {
		c.Optional |= SpriteZIndex
	}
	if r.Bool("flipX", &c.FlipX) {
		c.Optional |= SpriteFlipX
	}
	if r.Bool("flipY", &c.FlipY) {
		c.Optional |= SpriteFlipY
	}
}

func (c *Sprite) value() Component { return *c }

type SpriteStore struct {
	Texture       []AssetID
	Width, Height []float32
	Tint          []Color
	Visible       []uint8
	ZIndex        []int32
	FlipX, FlipY  []uint8
	Optional      []FieldMask
}

func (s *SpriteStore) Grow(n int) {
	s.Texture = grow(s.Texture, n)
	s.Width, s.Height = grow(s.Width, n), grow(s.Height, n)
	s.Tint, s.Visible, s.ZIndex = grow(s.Tint, n), grow(s.Visible, n), grow(s.ZIndex, n)
	s.FlipX, s.FlipY, s.Optional = grow(s.FlipX, n), grow(s.FlipY, n), grow(s.Optional, n)
}

func (s *SpriteStore) Remove(id ecs.EntityID) { s.set(id.Index(), Sprite{}) }

func (s *SpriteStore) set(i uint32, v Sprite) {
	s.Texture[i], s.Width[i], s.Height[i], s.Tint[i] = v.Texture, v.Width, v.Height, v.Tint
	s.Visible[i], s.ZIndex[i] = b2u(v.Visible), v.ZIndex
	s.FlipX[i], s.FlipY[i], s.Optional[i] = b2u(v.FlipX), b2u(v.FlipY), v.Optional
}

func (s *SpriteStore) get(i uint32) Sprite {
	return Sprite{
		Texture: s.Texture[i], Width: s.Width[i], Height: s.Height[i], Tint: s.Tint[i],
		Visible: u2b(s.Visible[i]), ZIndex: s.ZIndex[i],
		FlipX: u2b(s.FlipX[i]), FlipY: u2b(s.FlipY[i]), Optional: s.Optional[i],
	}
}

// ── collider ──

// Optional collider fields.
const (
	ColliderRadius FieldMask = 1 << iota
	ColliderIsSensor
	ColliderLayer
)

type Collider struct {
	Type          ColliderType
	Width, Height float32
	Radius        float32
	IsSensor      bool
	Layer         uint8
	Optional      FieldMask
}

func DefaultCollider() Collider { return Collider{Type: ColliderBox, Width: 32, Height: 32} }

func (Collider) Kind() Kind { return KindCollider }

func (c Collider) encode(w *FieldWriter) {
	writeEnum(w, "type", ColliderTypes, c.Type)
	w.Float("width", c.Width)
	w.Float("height", c.Height)
	if c.Optional&ColliderRadius != 0 {
		w.Float("radius", c.Radius)
	}
	if c.Optional&ColliderIsSensor != 0 {
		w.Bool("isSensor", c.IsSensor)
	}
	if c.Optional&ColliderLayer != 0 {
		w.Byte("layer", c.Layer)
	}
}

func (c *Collider) decode(r *FieldReader) {
	readEnum(r, "type", ColliderTypes, &c.Type)
	r.Float("width", &c.Width)
	r.Float("height", &c.Height)
	if r.Float("radius", &c.Radius) {
		c.Optional |= ColliderRadius
	}
	if r.Bool("isSensor", &c.IsSensor) {
		c.Optional |= ColliderIsSensor
	}
	if r.Byte("layer", &c.Layer) {
		c.Optional |= ColliderLayer
	}
}

func (c *Collider) value() Component { return *c }

type ColliderStore struct {
	Type          []ColliderType
	Width, Height []float32
	Radius        []float32
	IsSensor      []uint8
	Layer         []uint8
	Optional      []FieldMask
}

func (s *ColliderStore) Grow(n int) {
	s.Type, s.Width, s.Height = grow(s.Type, n), grow(s.Width, n), grow(s.Height, n)
	s.Radius, s.IsSensor, s.Layer = grow(s.Radius, n), grow(s.IsSensor, n), grow(s.Layer, n)
	s.Optional = grow(s.Optional, n)
}

func (s *ColliderStore) Remove(id ecs.EntityID) { s.set(id.Index(), Collider{}) }

func (s *ColliderStore) set(i uint32, v Collider) {
	s.Type[i], s.Width[i], s.Height[i], s.Radius[i] = v.Type, v.Width, v.Height, v.Radius
	s.IsSensor[i], s.Layer[i], s.Optional[i] = b2u(v.IsSensor), v.Layer, v.Optional
}

func (s *ColliderStore) get(i uint32) Collider {
	return Collider{
		Type: s.Type[i], Width: s.Width[i], Height: s.Height[i], Radius: s.Radius[i],
		IsSensor: u2b(s.IsSensor[i]), Layer: s.Layer[i], Optional: s.Optional[i],
	}
}

// ── input ──

// Optional input fields.
const (
	InputCanJump FieldMask = 1 << iota
)

type Input struct {
	MoveSpeed float32
	JumpForce float32
	CanJump   bool
	Optional  FieldMask
}

func DefaultInput() Input { return Input{MoveSpeed: 5, JumpForce: -10} }

func (Input) Kind() Kind { return KindInput }

func (c Input) encode(w *FieldWriter) {
	w.Float("moveSpeed", c.MoveSpeed)
	w.Float("jumpForce", c.JumpForce)
	if c.Optional&InputCanJump != 0 {
		w.Bool("canJump", c.CanJump)
	}
}

func (c *Input) decode(r *FieldReader) {
	r.Float("moveSpeed", &c.MoveSpeed)
	r.Float("jumpForce", &c.JumpForce)
	if r.Bool("canJump", &c.CanJump) {
		c.Optional |= InputCanJump
	}
}

func (c *Input) value() Component { return *c }

type InputStore struct {
	MoveSpeed, JumpForce []float32
	CanJump              []uint8
	Optional             []FieldMask
}

func (s *InputStore) Grow(n int) {
	s.MoveSpeed, s.JumpForce = grow(s.MoveSpeed, n), grow(s.JumpForce, n)
	s.CanJump, s.Optional = grow(s.CanJump, n), grow(s.Optional, n)
}

func (s *InputStore) Remove(id ecs.EntityID) { s.set(id.Index(), Input{}) }

func (s *InputStore) set(i uint32, v Input) {
	s.MoveSpeed[i], s.JumpForce[i], s.CanJump[i], s.Optional[i] = v.MoveSpeed, v.JumpForce, b2u(v.CanJump), v.Optional
}

func (s *InputStore) get(i uint32) Input {
	return Input{MoveSpeed: s.MoveSpeed[i], JumpForce: s.JumpForce[i], CanJump: u2b(s.CanJump[i]), Optional: s.Optional[i]}
}

// ── health ──

// Optional health fields.
const (
	HealthInvulnerableTime FieldMask = 1 << iota
)

type Health struct {
	Current, Max     float32
	InvulnerableTime float32
	Optional         FieldMask
}

func DefaultHealth() Health { return Health{Current: 100, Max: 100} }

func (Health) Kind() Kind { return KindHealth }

func (c Health) encode(w *FieldWriter) {
	w.Float("current", c.Current)
	w.Float("max", c.Max)
	if c.Optional&HealthInvulnerableTime != 0 {
		w.Float("invulnerableTime", c.InvulnerableTime)
	}
}

func (c *Health) decode(r *FieldReader) {
	r.Float("current", &c.Current)
	r.Float("max", &c.Max)
	if r.Float("invulnerableTime", &c.InvulnerableTime) {
		c.Optional |= HealthInvulnerableTime
	}
}

func (c *Health) value() Component { return *c }

type HealthStore struct {
	Current, Max, InvulnerableTime []float32
	Optional                       []FieldMask
}

func (s *HealthStore) Grow(n int) {
	s.Current, s.Max = grow(s.Current, n), grow(s.Max, n)
	s.InvulnerableTime, s.Optional = grow(s.InvulnerableTime, n), grow(s.Optional, n)
}

func (s *HealthStore) Remove(id ecs.EntityID) { s.set(id.Index(), Health{}) }

func (s *HealthStore) set(i uint32, v Health) {
	s.Current[i], s.Max[i], s.InvulnerableTime[i], s.Optional[i] = v.Current, v.Max, v.InvulnerableTime, v.Optional
}

func (s *HealthStore) get(i uint32) Health {
	return Health{Current: s.Current[i], Max: s.Max[i], InvulnerableTime: s.InvulnerableTime[i], Optional: s.Optional[i]}
}
