package component

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memAssets struct {
	names []string
	ids   map[string]AssetID
}

func newMemAssets() *memAssets { return &memAssets{ids: map[string]AssetID{}} }

func (a *memAssets) Intern(name string) AssetID {
	if id, ok := a.ids[name]; ok {
		return id
	}
	a.names = append(a.names, name)
	id := AssetID(len(a.names))
	a.ids[name] = id
	return id
}

func (a *memAssets) Resolve(id AssetID) (string, bool) {
	if id == NoAsset || int(id) > len(a.names) {
		return "", false
	}
	return a.names[id-1], true
}

func fieldMap(fields []Field) map[string]any {
	m := make(map[string]any, len(fields))
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	return m
}

func fieldKeys(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Key
	}
	return out
}

func TestKind_KeysRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		got, ok := ParseKind(k.Key())
		require.True(t, ok, k.Key())
		assert.Equal(t, k, got)
		assert.Equal(t, uint8(k), uint8(k.ID()))
	}
	_, ok := ParseKind("teleporter")
	assert.False(t, ok)
	assert.False(t, KindCount.Valid())
	assert.Equal(t, "", KindCount.Key())
}

func checkEnum[T ~uint8](t *testing.T, table EnumTable[T]) {
	t.Helper()
	for i, name := range table.Names() {
		v, ok := table.Parse(name)
		require.True(t, ok)
		assert.Equal(t, T(i), v)
		back, ok := table.Name(v)
		require.True(t, ok)
		assert.Equal(t, name, back)
	}
	_, ok := table.Name(T(table.Len()))
	assert.False(t, ok)
	v, ok := table.Parse("no-such-value")
	assert.False(t, ok)
	assert.Equal(t, T(0), v)
}

func TestEnumTables_RoundTrip(t *testing.T) {
	checkEnum(t, ColliderTypes)
	checkEnum(t, BehaviorTypes)
	checkEnum(t, GeometryTypes)
	checkEnum(t, LightTypes)
	checkEnum(t, ShapeTypes)
	checkEnum(t, BodyTypes)
	checkEnum(t, Projections)

	assert.Equal(t, "box", ColliderBox.String())
	assert.Equal(t, "circle", ColliderCircle.String())
	assert.Equal(t, "patrol", BehaviorPatrol.String())
	assert.Equal(t, "chase", BehaviorChase.String())
	assert.Equal(t, "flee", BehaviorFlee.String())
}

func TestColor(t *testing.T) {
	c := RGBA(0x12, 0x34, 0x56, 0x78)
	assert.Equal(t, "#12345678", c.String())
	assert.Equal(t, uint8(0x12), c.R())
	assert.Equal(t, uint8(0x78), c.A())

	got, err := ParseColor("#ABCDEF")
	require.NoError(t, err)
	assert.Equal(t, Color(0xabcdefff), got)
	assert.Equal(t, "#abcdefff", got.String())

	for _, bad := range []string{"", "ffffff", "#fff", "#gggggggg", "#123456789"} {
		_, err := ParseColor(bad)
		assert.ErrorIs(t, err, ErrBadColor, bad)
	}

	assert.Equal(t, Color(0xff0000ff), ColorFromNumber(0xff0000))
	assert.Equal(t, Color(0x00ff0080), ColorFromNumber(0x00ff0080))
}

func TestDefaults_EncodeDecodeStable(t *testing.T) {
	assets := newMemAssets()
	for _, k := range Kinds() {
		def := Default(k)
		require.NotNil(t, def, k.Key())
		assert.Equal(t, k, def.Kind())

		fields, err := Encode(def, assets)
		require.NoError(t, err, k.Key())

		back, issues, err := Decode(k, fieldMap(fields), assets)
		require.NoError(t, err, k.Key())
		assert.Empty(t, issues, k.Key())
		assert.Equal(t, def, back, k.Key())

		fromEmpty, _, err := Decode(k, map[string]any{}, assets)
		require.NoError(t, err)
		assert.Equal(t, def, fromEmpty, "missing fields take defaults for %s", k.Key())
	}
	assert.Nil(t, Default(KindCount))
}

func TestEncode_SchemaOrderAndOptionalFields(t *testing.T) {
	assets := newMemAssets()

	in, _, err := Decode(KindInput, map[string]any{"moveSpeed": 8.0, "jumpForce": -15.0}, assets)
	require.NoError(t, err)
	fields, err := Encode(in, assets)
	require.NoError(t, err)
	assert.Equal(t, []string{"moveSpeed", "jumpForce"}, fieldKeys(fields))
	assert.Equal(t, float32(8), in.(Input).MoveSpeed)

	in, _, err = Decode(KindInput, map[string]any{"canJump": false}, assets)
	require.NoError(t, err)
	fields, err = Encode(in, assets)
	require.NoError(t, err)
	assert.Equal(t, []string{"moveSpeed", "jumpForce", "canJump"}, fieldKeys(fields))

	v, _, err := Decode(KindVelocity, map[string]any{}, assets)
	require.NoError(t, err)
	fields, err = Encode(v, assets)
	require.NoError(t, err)
	assert.Equal(t, []string{"vx", "vy"}, fieldKeys(fields))
}

func TestDecode_SpriteAssetsAndColors(t *testing.T) {
	assets := newMemAssets()
	c, issues, err := Decode(KindSprite, map[string]any{
		"texture": "player",
		"tint":    "#FF000080",
		"visible": false,
		"zIndex":  json.Number("3"),
	}, assets)
	require.NoError(t, err)
	assert.Empty(t, issues)

	s := c.(Sprite)
	assert.Equal(t, AssetID(1), s.Texture)
	assert.Equal(t, Color(0xff000080), s.Tint)
	assert.False(t, s.Visible)
	assert.Equal(t, int32(3), s.ZIndex)
	assert.Equal(t, SpriteZIndex, s.Optional)

	fields, err := Encode(s, assets)
	require.NoError(t, err)
	assert.Equal(t, []string{"texture", "width", "height", "tint", "visible", "zIndex"}, fieldKeys(fields))
	m := fieldMap(fields)
	assert.Equal(t, "player", m["texture"])
	assert.Equal(t, "#ff000080", m["tint"])
	assert.Equal(t, false, m["visible"])
}

func TestDecode_Leniency(t *testing.T) {
	assets := newMemAssets()

	c, issues, err := Decode(KindCollider, map[string]any{"type": "hexagon"}, assets)
	require.NoError(t, err)
	assert.Equal(t, ColliderBox, c.(Collider).Type)
	require.Len(t, issues, 1)
	assert.Equal(t, "type", issues[0].Field)

	c, issues, err = Decode(KindAIBehavior, map[string]any{"behaviorType": "teleport", "speed": 2.5}, assets)
	require.NoError(t, err)
	assert.Equal(t, BehaviorPatrol, c.(AIBehavior).BehaviorType)
	assert.Equal(t, float32(2.5), c.(AIBehavior).Speed)
	assert.Len(t, issues, 1)

	c, issues, err = Decode(KindCamera, map[string]any{"isActive": 0.0}, assets)
	require.NoError(t, err)
	assert.False(t, c.(Camera).IsActive)
	assert.Empty(t, issues)

	c, issues, err = Decode(KindMaterial, map[string]any{"color": "red", "emissive": 0x00ff00}, assets)
	require.NoError(t, err)
	assert.Equal(t, White, c.(Material).Color)
	assert.Equal(t, Color(0x00ff00ff), c.(Material).Emissive)
	assert.Equal(t, MaterialEmissive, c.(Material).Optional)
	assert.Len(t, issues, 1)

	c, issues, err = Decode(KindAnimation, map[string]any{"frameCount": 4.7, "currentFrame": -1e12}, assets)
	require.NoError(t, err)
	assert.Equal(t, int32(4), c.(Animation).FrameCount)
	assert.Equal(t, int32(-2147483648), c.(Animation).CurrentFrame)
	assert.Len(t, issues, 2)

	c, issues, err = Decode(KindCollider, map[string]any{"layer": 300.0}, assets)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), c.(Collider).Layer)
	assert.Len(t, issues, 1)

	c, issues, err = Decode(KindHealth, map[string]any{"current": 50.0, "shield": 10.0, "max": nil}, assets)
	require.NoError(t, err)
	assert.Equal(t, float32(50), c.(Health).Current)
	assert.Equal(t, float32(100), c.(Health).Max, "null means absent")
	require.Len(t, issues, 1)
	assert.Equal(t, Issue{Field: "shield", Detail: "unknown field ignored"}, issues[0])
}

func TestDecode_WrongTypeIsFieldError(t *testing.T) {
	assets := newMemAssets()
	cases := []struct {
		kind  Kind
		obj   map[string]any
		field string
	}{
		{KindTransform, map[string]any{"x": "100"}, "x"},
		{KindSprite, map[string]any{"visible": map[string]any{}}, "visible"},
		{KindSprite, map[string]any{"texture": 3.0}, "texture"},
		{KindCollider, map[string]any{"type": 1.0}, "type"},
		{KindLight, map[string]any{"color": true}, "color"},
		{KindTransform, map[string]any{"y": math.NaN()}, "y"},
		{KindVelocity, map[string]any{"vx": math.Inf(-1)}, "vx"},
		{KindTransform, map[string]any{"rotation": json.Number("1e400")}, "rotation"},
	}
	for _, tc := range cases {
		_, _, err := Decode(tc.kind, tc.obj, assets)
		var fe *FieldError
		require.True(t, errors.As(err, &fe), "%s.%s", tc.kind, tc.field)
		assert.Equal(t, tc.field, fe.Field)
	}
}

func TestEncode_UnresolvedAssetFails(t *testing.T) {
	_, err := Encode(Audio{Sound: 42, Volume: 1}, newMemAssets())
	assert.ErrorIs(t, err, ErrUnknownAsset)

	_, err = Encode(Collider{Type: ColliderType(9)}, newMemAssets())
	assert.ErrorIs(t, err, ErrEnumRange)
}

func TestFloat_ClampsToFloat32(t *testing.T) {
	c, issues, err := Decode(KindVelocity, map[string]any{"vx": 1e39, "vy": json.Number("-1e39")}, newMemAssets())
	require.NoError(t, err)
	assert.Equal(t, Velocity{VX: math.MaxFloat32, VY: -math.MaxFloat32}, c)
	require.Len(t, issues, 2)
	assert.Equal(t, "vx", issues[0].Field)

	fields, err := Encode(c, newMemAssets())
	require.NoError(t, err)
	_, err = json.Marshal(fields)
	assert.NoError(t, err)
}

func TestFloat32(t *testing.T) {
	for _, f := range []float64{0, -2.5, math.MaxFloat32, 3.4028235e38, -3.4028235e38} {
		v, clamped := Float32(f)
		assert.False(t, clamped, "%v", f)
		assert.Equal(t, float32(f), v)
	}
	v, clamped := Float32(-1e39)
	assert.True(t, clamped)
	assert.Equal(t, float32(-math.MaxFloat32), v)
	_, clamped = Float32(math.MaxFloat32 + 0x1p103)
	assert.True(t, clamped)
}

func TestEncode_NonFiniteFails(t *testing.T) {
	_, err := Encode(Velocity{VX: float32(math.Inf(1))}, newMemAssets())
	assert.ErrorIs(t, err, ErrNotFinite)
	_, err = Encode(Transform{Rotation: float32(math.NaN())}, newMemAssets())
	assert.ErrorIs(t, err, ErrNotFinite)
}

func TestValue(t *testing.T) {
	tr := Transform{X: 2}
	v, ok := Value(&tr)
	require.True(t, ok)
	assert.Equal(t, tr, v)

	v, ok = Value(tr)
	require.True(t, ok)
	assert.Equal(t, tr, v)

	_, ok = Value((*Sprite)(nil))
	assert.False(t, ok)
	_, ok = Value(nil)
	assert.False(t, ok)
}

func TestStores_SetGetRemove(t *testing.T) {
	var s Stores
	for _, st := range s.All() {
		st.Grow(4)
	}
	require.Len(t, s.All(), int(KindCount))

	assets := newMemAssets()
	for _, k := range Kinds() {
		c := Default(k)
		require.NoError(t, s.Set(2, c))
		assert.Equal(t, c, s.Get(2, k), k.Key())
	}

	mesh := Mesh{Geometry: GeometryModel, Model: assets.Intern("ship.glb"), Width: 2, Radius: 3, Optional: MeshRadius, CastShadow: true}
	require.NoError(t, s.Set(3, mesh))
	assert.Equal(t, mesh, s.Get(3, KindMesh))
	assert.ErrorIs(t, s.Set(3, &mesh), ErrUnsupportedValue)
	assert.Equal(t, uint8(1), s.Mesh.CastShadow[3])

	s.Input.Grow(8)
	assert.Len(t, s.Input.MoveSpeed, 8)
	assert.Nil(t, s.Get(0, KindCount))
}

func TestTransform3D_Matrix(t *testing.T) {
	tr := DefaultTransform3D()
	assert.True(t, tr.Matrix().ApproxEqual(mgl32.Ident4()))

	tr.SetPosition(mgl32.Vec3{1, 2, 3})
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, tr.Position())
	assert.True(t, tr.Matrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1}).ApproxEqual(mgl32.Vec4{1, 2, 3, 1}))

	col := DefaultCollider3D()
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, col.HalfExtents())
}
