package component

// EnumTable is the two-way mapping between an enum's storage byte and its
// GameSpec string. Index 0 is the fallback for unknown strings.
type EnumTable[T ~uint8] struct {
	names []string
	index map[string]T
}

func newEnumTable[T ~uint8](names []string) EnumTable[T] {
	t := EnumTable[T]{
		names: names,
		index: make(map[string]T, len(names)),
	}
	for i, n := range names {
		t.index[n] = T(i)
	}
	return t
}

// Name returns the string for v, or false if v is outside the table.
func (t EnumTable[T]) Name(v T) (string, bool) {
	if int(v) >= len(t.names) {
		return "", false
	}
	return t.names[v], true
}

// Parse returns the value for s, or the default (0) and false.
func (t EnumTable[T]) Parse(s string) (T, bool) {
	v, ok := t.index[s]
	return v, ok
}

// Names returns the strings in storage order.
func (t EnumTable[T]) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

func (t EnumTable[T]) Len() int { return len(t.names) }

// The name arrays below are sized by a count constant: a value added to a
// const block without a matching name is a compile error.

type ColliderType uint8

const (
	ColliderBox ColliderType = iota
	ColliderCircle
	colliderTypeCount
)

var colliderTypeNames = [colliderTypeCount]string{
	ColliderBox:    "box",
	ColliderCircle: "circle",
}

var ColliderTypes = newEnumTable[ColliderType](colliderTypeNames[:])

func (v ColliderType) String() string { s, _ := ColliderTypes.Name(v); return s }

type BehaviorType uint8

const (
	BehaviorPatrol BehaviorType = iota
	BehaviorChase
	BehaviorFlee
	behaviorTypeCount
)

var behaviorTypeNames = [behaviorTypeCount]string{
	BehaviorPatrol: "patrol",
	BehaviorChase:  "chase",
	BehaviorFlee:   "flee",
}

var BehaviorTypes = newEnumTable[BehaviorType](behaviorTypeNames[:])

func (v BehaviorType) String() string { s, _ := BehaviorTypes.Name(v); return s }

type GeometryType uint8

const (
	GeometryBox GeometryType = iota
	GeometrySphere
	GeometryPlane
	GeometryCylinder
	GeometryCone
	GeometryTorus
	GeometryModel
	geometryTypeCount
)

var geometryTypeNames = [geometryTypeCount]string{
	GeometryBox:      "box",
	GeometrySphere:   "sphere",
	GeometryPlane:    "plane",
	GeometryCylinder: "cylinder",
	GeometryCone:     "cone",
	GeometryTorus:    "torus",
	GeometryModel:    "model",
}

var GeometryTypes = newEnumTable[GeometryType](geometryTypeNames[:])

func (v GeometryType) String() string { s, _ := GeometryTypes.Name(v); return s }

type LightType uint8

const (
	LightAmbient LightType = iota
	LightDirectional
	LightPoint
	LightSpot
	lightTypeCount
)

var lightTypeNames = [lightTypeCount]string{
	LightAmbient:     "ambient",
	LightDirectional: "directional",
	LightPoint:       "point",
	LightSpot:        "spot",
}

var LightTypes = newEnumTable[LightType](lightTypeNames[:])

func (v LightType) String() string { s, _ := LightTypes.Name(v); return s }

type ShapeType uint8

const (
	ShapeBox ShapeType = iota
	ShapeSphere
	ShapeCapsule
	ShapeCylinder
	ShapeMesh
	shapeTypeCount
)

var shapeTypeNames = [shapeTypeCount]string{
	ShapeBox:      "box",
	ShapeSphere:   "sphere",
	ShapeCapsule:  "capsule",
	ShapeCylinder: "cylinder",
	ShapeMesh:     "mesh",
}

var ShapeTypes = newEnumTable[ShapeType](shapeTypeNames[:])

func (v ShapeType) String() string { s, _ := ShapeTypes.Name(v); return s }

type BodyType uint8

const (
	BodyDynamic BodyType = iota
	BodyStatic
	BodyKinematic
	bodyTypeCount
)

var bodyTypeNames = [bodyTypeCount]string{
	BodyDynamic:   "dynamic",
	BodyStatic:    "static",
	BodyKinematic: "kinematic",
}

var BodyTypes = newEnumTable[BodyType](bodyTypeNames[:])

func (v BodyType) String() string { s, _ := BodyTypes.Name(v); return s }

type Projection uint8

const (
	ProjectionPerspective Projection = iota
	ProjectionOrthographic
	projectionCount
)

var projectionNames = [projectionCount]string{
	ProjectionPerspective:  "perspective",
	ProjectionOrthographic: "orthographic",
}

var Projections = newEnumTable[Projection](projectionNames[:])

func (v Projection) String() string { s, _ := Projections.Name(v); return s }
