package component

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/promptplay/gamecore/internal/core/ecs"
)

// ── transform3d ──

// Transform3D rotations are Euler angles in radians applied in XYZ order.
type Transform3D struct {
	X, Y, Z                         float32
	RotationX, RotationY, RotationZ float32
	ScaleX, ScaleY, ScaleZ          float32
}

func DefaultTransform3D() Transform3D { return Transform3D{ScaleX: 1, ScaleY: 1, ScaleZ: 1} }

func (Transform3D) Kind() Kind { return KindTransform3D }

func (c Transform3D) Position() mgl32.Vec3 { return mgl32.Vec3{c.X, c.Y, c.Z} }
func (c Transform3D) Scale() mgl32.Vec3    { return mgl32.Vec3{c.ScaleX, c.ScaleY, c.ScaleZ} }

func (c Transform3D) Orientation() mgl32.Quat {
	return mgl32.AnglesToQuat(c.RotationX, c.RotationY, c.RotationZ, mgl32.XYZ)
}

// Matrix composes translation, rotation and scale into a model matrix.
func (c Transform3D) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(c.X, c.Y, c.Z).
		Mul4(c.Orientation().Mat4()).
		Mul4(mgl32.Scale3D(c.ScaleX, c.ScaleY, c.ScaleZ))
}

func (c *Transform3D) SetPosition(p mgl32.Vec3) { c.X, c.Y, c.Z = p[0], p[1], p[2] }

func (c Transform3D) encode(w *FieldWriter) {
	w.Float("x", c.X)
	w.Float("y", c.Y)
	w.Float("z", c.Z)
	w.Float("rotationX", c.RotationX)
	w.Float("rotationY", c.RotationY)
	w.Float("rotationZ", c.RotationZ)
	w.Float("scaleX", c.ScaleX)
	w.Float("scaleY", c.ScaleY)
	w.Float("scaleZ", c.ScaleZ)
}

func (c *Transform3D) decode(r *FieldReader) {
	r.Float("x", &c.X)
	r.Float("y", &c.Y)
	r.Float("z", &c.Z)
	r.Float("rotationX", &c.RotationX)
	r.Float("rotationY", &c.RotationY)
	r.Float("rotationZ", &c.RotationZ)
	r.Float("scaleX", &c.ScaleX)
	r.Float("scaleY", &c.ScaleY)
	r.Float("scaleZ", &c.ScaleZ)
}

func (c *Transform3D) value() Component { return *c }

type Transform3DStore struct {
	X, Y, Z                         []float32
	RotationX, RotationY, RotationZ []float32
	ScaleX, ScaleY, ScaleZ          []float32
}

func (s *Transform3DStore) Grow(n int) {
	s.X, s.Y, s.Z = grow(s.X, n), grow(s.Y, n), grow(s.Z, n)
	s.RotationX, s.RotationY, s.RotationZ = grow(s.RotationX, n), grow(s.RotationY, n), grow(s.RotationZ, n)
	s.ScaleX, s.ScaleY, s.ScaleZ = grow(s.ScaleX, n), grow(s.ScaleY, n), grow(s.ScaleZ, n)
}

func (s *Transform3DStore) Remove(id ecs.EntityID) { s.set(id.Index(), Transform3D{}) }

func (s *Transform3DStore) set(i uint32, v Transform3D) {
	s.X[i], s.Y[i], s.Z[i] = v.X, v.Y, v.Z
	s.RotationX[i], s.RotationY[i], s.RotationZ[i] = v.RotationX, v.RotationY, v.RotationZ
	s.ScaleX[i], s.ScaleY[i], s.ScaleZ[i] = v.ScaleX, v.ScaleY, v.ScaleZ
}

func (s *Transform3DStore) get(i uint32) Transform3D {
	return Transform3D{
		X: s.X[i], Y: s.Y[i], Z: s.Z[i],
		RotationX: s.RotationX[i], RotationY: s.RotationY[i], RotationZ: s.RotationZ[i],
		ScaleX: s.ScaleX[i], ScaleY: s.ScaleY[i], ScaleZ: s.ScaleZ[i],
	}
}

// ── mesh ──

// Optional mesh fields.
const (
	MeshRadius FieldMask = 1 << iota
)

type Mesh struct {
	Geometry                  GeometryType
	Model                     AssetID
	Width, Height, Depth      float32
	Radius                    float32
	CastShadow, ReceiveShadow bool
	Optional                  FieldMask
}

func DefaultMesh() Mesh { return Mesh{Geometry: GeometryBox, Width: 1, Height: 1, Depth: 1} }

func (Mesh) Kind() Kind { return KindMesh }

func (c Mesh) encode(w *FieldWriter) {
	writeEnum(w, "geometry", GeometryTypes, c.Geometry)
	w.Asset("model", c.Model)
	w.Float("width", c.Width)
	w.Float("height", c.Height)
	w.Float("depth", c.Depth)
	if c.Optional&MeshRadius != 0 {
		w.Float("radius", c.Radius)
	}
	w.Bool("castShadow", c.CastShadow)
	w.Bool("receiveShadow", c.ReceiveShadow)
}

func (c *Mesh) decode(r *FieldReader) {
	readEnum(r, "geometry", GeometryTypes, &c.Geometry)
	r.Asset("model", &c.Model)
	r.Float("width", &c.Width)
	r.Float("height", &c.Height)
	r.Float("depth", &c.Depth)
	if r.Float("radius", &c.Radius) {
		c.Optional |= MeshRadius
	}
	r.Bool("castShadow", &c.CastShadow)
	r.Bool("receiveShadow", &c.ReceiveShadow)
}

func (c *Mesh) value() Component { return *c }

type MeshStore struct {
	Geometry                     []GeometryType
	Model                        []AssetID
	Width, Height, Depth, Radius []float32
	CastShadow, ReceiveShadow    []uint8
	Optional                     []FieldMask
}

func (s *MeshStore) Grow(n int) {
	s.Geometry, s.Model = grow(s.Geometry, n), grow(s.Model, n)
	s.Width, s.Height, s.Depth, s.Radius = grow(s.Width, n), grow(s.Height, n), grow(s.Depth, n), grow(s.Radius, n)
	s.CastShadow, s.ReceiveShadow, s.Optional = grow(s.CastShadow, n), grow(s.ReceiveShadow, n), grow(s.Optional, n)
}

func (s *MeshStore) Remove(id ecs.EntityID) { s.set(id.Index(), Mesh{}) }

func (s *MeshStore) set(i uint32, v Mesh) {
	s.Geometry[i], s.Model[i] = v.Geometry, v.Model
	s.Width[i], s.Height[i], s.Depth[i], s.Radius[i] = v.Width, v.Height, v.Depth, v.Radius
	s.CastShadow[i], s.ReceiveShadow[i], s.Optional[i] = b2u(v.CastShadow), b2u(v.ReceiveShadow), v.Optional
}

func (s *MeshStore) get(i uint32) Mesh {
	return Mesh{
		Geometry: s.Geometry[i], Model: s.Model[i],
		Width: s.Width[i], Height: s.Height[i], Depth: s.Depth[i], Radius: s.Radius[i],
		CastShadow: u2b(s.CastShadow[i]), ReceiveShadow: u2b(s.ReceiveShadow[i]), Optional: s.Optional[i],
	}
}

// ── material ──

// Optional material fields.
const (
	MaterialEmissive FieldMask = 1 << iota
	MaterialWireframe
)

type Material struct {
	Color                Color
	Texture              AssetID
	Metalness, Roughness float32
	Emissive             Color
	Opacity              float32
	Wireframe            bool
	Optional             FieldMask
}

func DefaultMaterial() Material { return Material{Color: White, Roughness: 0.5, Opacity: 1} }

func (Material) Kind() Kind { return KindMaterial }

func (c Material) encode(w *FieldWriter) {
	w.Color("color", c.Color)
	w.Asset("texture", c.Texture)
	w.Float("metalness", c.Metalness)
	w.Float("roughness", c.Roughness)
	if c.Optional&MaterialEmissive != 0 {
		w.Color("emissive", c.Emissive)
	}
	w.Float("opacity", c.Opacity)
	if c.Optional&MaterialWireframe != 0 {
		w.Bool("wireframe", c.Wireframe)
	}
}

func (c *Material) decode(r *FieldReader) {
	r.Color("color", &c.Color)
	r.Asset("texture", &c.Texture)
	r.Float("metalness", &c.Metalness)
	r.Float("roughness", &c.Roughness)
	if r.Color("emissive", &c.Emissive) {
		c.Optional |= MaterialEmissive
	}
	r.Float("opacity", &c.Opacity)
	if r.Bool("wireframe", &c.Wireframe) {
		c.Optional |= MaterialWireframe
	}
}

func (c *Material) value() Component { return *c }

type MaterialStore struct {
	Color, Emissive               []Color
	Texture                       []AssetID
	Metalness, Roughness, Opacity []float32
	Wireframe                     []uint8
	Optional                      []FieldMask
}

func (s *MaterialStore) Grow(n int) {
	s.Color, s.Emissive, s.Texture = grow(s.Color, n), grow(s.Emissive, n), grow(s.Texture, n)
	s.Metalness, s.Roughness, s.Opacity = grow(s.Metalness, n), grow(s.Roughness, n), grow(s.Opacity, n)
	s.Wireframe, s.Optional = grow(s.Wireframe, n), grow(s.Optional, n)
}

func (s *MaterialStore) Remove(id ecs.EntityID) { s.set(id.Index(), Material{}) }

func (s *MaterialStore) set(i uint32, v Material) {
	s.Color[i], s.Emissive[i], s.Texture[i] = v.Color, v.Emissive, v.Texture
	s.Metalness[i], s.Roughness[i], s.Opacity[i] = v.Metalness, v.Roughness, v.Opacity
	s.Wireframe[i], s.Optional[i] = b2u(v.Wireframe), v.Optional
}

func (s *MaterialStore) get(i uint32) Material {
	return Material{
		Color: s.Color[i], Emissive: s.Emissive[i], Texture: s.Texture[i],
		Metalness: s.Metalness[i], Roughness: s.Roughness[i], Opacity: s.Opacity[i],
		Wireframe: u2b(s.Wireframe[i]), Optional: s.Optional[i],
	}
}

// ── light ──

// Optional light fields.
const (
	LightDistance FieldMask = 1 << iota
	LightAngle
	LightCastShadow
)

type Light struct {
	LightType  LightType
	Color      Color
	Intensity  float32
	Distance   float32
	Angle      float32
	CastShadow bool
	Optional   FieldMask
}

func DefaultLight() Light { return Light{LightType: LightAmbient, Color: White, Intensity: 1} }

func (Light) Kind() Kind { return KindLight }

func (c Light) encode(w *FieldWriter) {
	writeEnum(w, "lightType", LightTypes, c.LightType)
	w.Color("color", c.Color)
	w.Float("intensity", c.Intensity)
	if c.Optional&LightDistance != 0 {
		w.Float("distance", c.Distance)
	}
	if c.Optional&LightAngle != 0 {
		w.Float("angle", c.Angle)
	}
	if c.Optional&LightCastShadow != 0 {
		w.Bool("castShadow", c.CastShadow)
	}
}

func (c *Light) decode(r *FieldReader) {
	readEnum(r, "lightType", LightTypes, &c.LightType)
	r.Color("color", &c.Color)
	r.Float("intensity", &c.Intensity)
	if r.Float("distance", &c.Distance) {
		c.Optional |= LightDistance
	}
	if r.Float("angle", &c.Angle) {
		c.Optional |= LightAngle
	}
	if r.Bool("castShadow", &c.CastShadow) {
		c.Optional |= LightCastShadow
	}
}

func (c *Light) value() Component { return *c }

type LightStore struct {
	LightType                  []LightType
	Color                      []Color
	Intensity, Distance, Angle []float32
	CastShadow                 []uint8
	Optional                   []FieldMask
}

func (s *LightStore) Grow(n int) {
	s.LightType, s.Color = grow(s.LightType, n), grow(s.Color, n)
	s.Intensity, s.Distance, s.Angle = grow(s.Intensity, n), grow(s.Distance, n), grow(s.Angle, n)
	s.CastShadow, s.Optional = grow(s.CastShadow, n), grow(s.Optional, n)
}

func (s *LightStore) Remove(id ecs.EntityID) { s.set(id.Index(), Light{}) }

func (s *LightStore) set(i uint32, v Light) {
	s.LightType[i], s.Color[i] = v.LightType, v.Color
	s.Intensity[i], s.Distance[i], s.Angle[i] = v.Intensity, v.Distance, v.Angle
	s.CastShadow[i], s.Optional[i] = b2u(v.CastShadow), v.Optional
}

func (s *LightStore) get(i uint32) Light {
	return Light{
		LightType: s.LightType[i], Color: s.Color[i],
		Intensity: s.Intensity[i], Distance: s.Distance[i], Angle: s.Angle[i],
		CastShadow: u2b(s.CastShadow[i]), Optional: s.Optional[i],
	}
}

// ── collider3d ──

// Optional collider3d fields.
const (
	Collider3DRadius FieldMask = 1 << iota
	Collider3DIsSensor
)

type Collider3D struct {
	ShapeType            ShapeType
	Width, Height, Depth float32
	Radius               float32
	IsSensor             bool
	Optional             FieldMask
}

func DefaultCollider3D() Collider3D {
	return Collider3D{ShapeType: ShapeBox, Width: 1, Height: 1, Depth: 1}
}

func (Collider3D) Kind() Kind { return KindCollider3D }

// HalfExtents returns the box half sizes, used by box and capsule shapes.
func (c Collider3D) HalfExtents() mgl32.Vec3 {
	return mgl32.Vec3{c.Width, c.Height, c.Depth}.Mul(0.5)
}

func (c Collider3D) encode(w *FieldWriter) {
	writeEnum(w, "shapeType", ShapeTypes, c.ShapeType)
	w.Float("width", c.Width)
	w.Float("height", c.Height)
	w.Float("depth", c.Depth)
	if c.Optional&Collider3DRadius != 0 {
		w.Float("radius", c.Radius)
	}
	if c.Optional&Collider3DIsSensor != 0 {
		w.Bool("isSensor", c.IsSensor)
	}
}

func (c *Collider3D) decode(r *FieldReader) {
	readEnum(r, "shapeType", ShapeTypes, &c.ShapeType)
	r.Float("width", &c.Width)
	r.Float("height", &c.Height)
	r.Float("depth", &c.Depth)
	if r.Float("radius", &c.Radius) {
		c.Optional |= Collider3DRadius
	}
	if r.Bool("isSensor", &c.IsSensor) {
		c.Optional |= Collider3DIsSensor
	}
}

func (c *Collider3D) value() Component { return *c }

type Collider3DStore struct {
	ShapeType                    []ShapeType
	Width, Height, Depth, Radius []float32
	IsSensor                     []uint8
	Optional                     []FieldMask
}

func (s *Collider3DStore) Grow(n int) {
	s.ShapeType = grow(s.ShapeType, n)
	s.Width, s.Height, s.Depth, s.Radius = grow(s.Width, n), grow(s.Height, n), grow(s.Depth, n), grow(s.Radius, n)
	s.IsSensor, s.Optional = grow(s.IsSensor, n), grow(s.Optional, n)
}

func (s *Collider3DStore) Remove(id ecs.EntityID) { s.set(id.Index(), Collider3D{}) }

func (s *Collider3DStore) set(i uint32, v Collider3D) {
	s.ShapeType[i] = v.ShapeType
	s.Width[i], s.Height[i], s.Depth[i], s.Radius[i] = v.Width, v.Height, v.Depth, v.Radius
	s.IsSensor[i], s.Optional[i] = b2u(v.IsSensor), v.Optional
}

func (s *Collider3DStore) get(i uint32) Collider3D {
	return Collider3D{
		ShapeType: s.ShapeType[i], Width: s.Width[i], Height: s.Height[i], Depth: s.Depth[i],
		Radius: s.Radius[i], IsSensor: u2b(s.IsSensor[i]), Optional: s.Optional[i],
	}
}

// ── rigidBody3d ──

type RigidBody3D struct {
	BodyType                      BodyType
	Mass                          float32
	LinearDamping, AngularDamping float32
	Friction, Restitution         float32
	GravityScale                  float32
}

func DefaultRigidBody3D() RigidBody3D {
	return RigidBody3D{BodyType: BodyDynamic, Mass: 1, Friction: 0.5, GravityScale: 1}
}

func (RigidBody3D) Kind() Kind { return KindRigidBody3D }

func (c RigidBody3D) encode(w *FieldWriter) {
	writeEnum(w, "bodyType", BodyTypes, c.BodyType)
	w.Float("mass", c.Mass)
	w.Float("linearDamping", c.LinearDamping)
	w.Float("angularDamping", c.AngularDamping)
	w.Float("friction", c.Friction)
	w.Float("restitution", c.Restitution)
	w.Float("gravityScale", c.GravityScale)
}

func (c *RigidBody3D) decode(r *FieldReader) {
	readEnum(r, "bodyType", BodyTypes, &c.BodyType)
	r.Float("mass", &c.Mass)
	r.Float("linearDamping", &c.LinearDamping)
	r.Float("angularDamping", &c.AngularDamping)
	r.Float("friction", &c.Friction)
	r.Float("restitution", &c.Restitution)
	r.Float("gravityScale", &c.GravityScale)
}

func (c *RigidBody3D) value() Component { return *c }

type RigidBody3DStore struct {
	BodyType                            []BodyType
	Mass, LinearDamping, AngularDamping []float32
	Friction, Restitution, GravityScale []float32
}

func (s *RigidBody3DStore) Grow(n int) {
	s.BodyType, s.Mass = grow(s.BodyType, n), grow(s.Mass, n)
	s.LinearDamping, s.AngularDamping = grow(s.LinearDamping, n), grow(s.AngularDamping, n)
	s.Friction, s.Restitution, s.GravityScale = grow(s.Friction, n), grow(s.Restitution, n), grow(s.GravityScale, n)
}

func (s *RigidBody3DStore) Remove(id ecs.EntityID) { s.set(id.Index(), RigidBody3D{}) }

func (s *RigidBody3DStore) set(i uint32, v RigidBody3D) {
	s.BodyType[i], s.Mass[i] = v.BodyType, v.Mass
	s.LinearDamping[i], s.AngularDamping[i] = v.LinearDamping, v.AngularDamping
	s.Friction[i], s.Restitution[i], s.GravityScale[i] = v.Friction, v.Restitution, v.GravityScale
}

func (s *RigidBody3DStore) get(i uint32) RigidBody3D {
	return RigidBody3D{
		BodyType: s.BodyType[i], Mass: s.Mass[i],
		LinearDamping: s.LinearDamping[i], AngularDamping: s.AngularDamping[i],
		Friction: s.Friction[i], Restitution: s.Restitution[i], GravityScale: s.GravityScale[i],
	}
}

// ── camera3d ──

type Camera3D struct {
	Projection Projection
	FOV        float32
	Near, Far  float32
	IsActive   bool
}

func DefaultCamera3D() Camera3D {
	return Camera3D{Projection: ProjectionPerspective, FOV: 75, Near: 0.1, Far: 1000, IsActive: true}
}

func (Camera3D) Kind() Kind { return KindCamera3D }

// ProjectionMatrix builds the projection for the given viewport aspect ratio.
// Orthographic cameras use FOV as the vertical extent in world units.
func (c Camera3D) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if c.Projection == ProjectionOrthographic {
		h := c.FOV / 2
		return mgl32.Ortho(-h*aspect, h*aspect, -h, h, c.Near, c.Far)
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

func (c Camera3D) encode(w *FieldWriter) {
	writeEnum(w, "projection", Projections, c.Projection)
	w.Float("fov", c.FOV)
	w.Float("near", c.Near)
	w.Float("far", c.Far)
	w.Bool("isActive", c.IsActive)
}

func (c *Camera3D) decode(r *FieldReader) {
	readEnum(r, "projection", Projections, &c.Projection)
	r.Float("fov", &c.FOV)
	r.Float("near", &c.Near)
	r.Float("far", &c.Far)
	r.Bool("isActive", &c.IsActive)
}

func (c *Camera3D) value() Component { return *c }

type Camera3DStore struct {
	Projection     []Projection
	FOV, Near, Far []float32
	IsActive       []uint8
}

func (s *Camera3DStore) Grow(n int) {
	s.Projection, s.FOV = grow(s.Projection, n), grow(s.FOV, n)
	s.Near, s.Far, s.IsActive = grow(s.Near, n), grow(s.Far, n), grow(s.IsActive, n)
}

func (s *Camera3DStore) Remove(id ecs.EntityID) { s.set(id.Index(), Camera3D{}) }

func (s *Camera3DStore) set(i uint32, v Camera3D) {
	s.Projection[i], s.FOV[i], s.Near[i], s.Far[i], s.IsActive[i] = v.Projection, v.FOV, v.Near, v.Far, b2u(v.IsActive)
}

func (s *Camera3DStore) get(i uint32) Camera3D {
	return Camera3D{Projection: s.Projection[i], FOV: s.FOV[i], Near: s.Near[i], Far: s.Far[i], IsActive: u2b(s.IsActive[i])}
}
