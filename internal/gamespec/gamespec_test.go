package gamespec

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptplay/gamecore/internal/component"
	"github.com/promptplay/gamecore/internal/world"
)

const playerSpec = `{
  "version": "1.0",
  "metadata": {"title": "Jumper", "genre": "platformer", "description": "demo"},
  "config": {"gravity": {"x": 0, "y": 1}, "worldBounds": {"width": 800, "height": 600}},
  "entities": [
    {
      "name": "player",
      "components": {
        "transform": {"x": 100, "y": 400, "rotation": 0, "scaleX": 1, "scaleY": 1},
        "velocity": {"vx": 0, "vy": 0},
        "input": {"moveSpeed": 8, "jumpForce": -15}
      },
      "tags": ["player"]
    }
  ],
  "systems": ["physics", "input"]
}`

func mustMarshal(t *testing.T, w *world.World) []byte {
	t.Helper()
	doc, err := Serialize(w)
	require.NoError(t, err)
	b, err := MarshalJSON(doc, false)
	require.NoError(t, err)
	return b
}

func roundTrip(t *testing.T, w *world.World) (*world.World, []byte, []byte) {
	t.Helper()
	first := mustMarshal(t, w)
	w2 := world.New(nil)
	_, err := Unmarshal(w2, first)
	require.NoError(t, err)
	return w2, first, mustMarshal(t, w2)
}

// richWorld exercises every component kind, optional fields, assets, colors
// and pass-through metadata.
func richWorld(t *testing.T) *world.World {
	t.Helper()
	w := world.New(nil)
	w.SetMetadata(world.Metadata{
		Title: "Showcase", Genre: "demo", Description: "every component",
		Extras: []world.Extra{{Key: "title", Value: "shadowed"}, {Key: "author", Value: "ada"}},
	})
	w.SetConfig(world.Config{
		Gravity:     mgl32.Vec2{0, 9.81},
		WorldBounds: world.Bounds{Width: 1280, Height: 720},
		Background:  "#1a1a2e",
	})
	w.SetSystems([]string{"physics", "render"})

	hero := w.CreateEntity("hero")
	sprite := component.DefaultSprite()
	sprite.Texture = w.InternAsset("hero.png")
	sprite.Tint = component.RGBA(0x12, 0x34, 0x56, 0x78)
	sprite.ZIndex = -3
	sprite.FlipX = true
	sprite.Optional = component.SpriteZIndex | component.SpriteFlipX
	for _, c := range []component.Component{
		component.Transform{X: 1.5, Y: -2.25, Rotation: 0.785, ScaleX: 2, ScaleY: 0.5},
		component.Velocity{VX: 0.1, VY: -0.3},
		sprite,
		component.Collider{Type: component.ColliderCircle, Width: 10, Height: 10, Radius: 5, Layer: 3, Optional: component.ColliderRadius | component.ColliderLayer},
		component.Input{MoveSpeed: 8, JumpForce: -15, CanJump: true, Optional: component.InputCanJump},
		component.Health{Current: 75, Max: 100, InvulnerableTime: 0.5, Optional: component.HealthInvulnerableTime},
		component.Animation{FrameCount: 8, FrameDuration: 0.08, CurrentFrame: 2, Loop: true},
		component.Camera{Zoom: 1.25, OffsetX: 10, Smoothing: 0.2, IsActive: true},
		component.ParticleEmitter{Rate: 30, Lifetime: 0.7, Speed: 12.5, Spread: 45, Size: 2, Color: 0xff8800ff, MaxParticles: 500},
		component.Audio{Sound: w.InternAsset("jump.wav"), Volume: 0.8, PlayOnStart: true},
	} {
		require.NoError(t, w.AddComponent(hero, c))
	}
	for _, tag := range []string{"player", "controllable"} {
		require.NoError(t, w.AddTag(hero, tag))
	}

	enemy := w.CreateEntity("enemy")
	require.NoError(t, w.AddComponent(enemy, component.AIBehavior{BehaviorType: component.BehaviorFlee, Speed: 2, DetectionRadius: 150, PatrolDistance: 40, Optional: component.AIPatrolDistance}))
	require.NoError(t, w.AddTag(enemy, "enemy"))

	w.CreateEntity("empty")

	ship := w.CreateEntity("ship")
	for _, c := range []component.Component{
		component.Transform3D{X: 1, Y: 2, Z: 3, RotationY: 1.57, ScaleX: 1, ScaleY: 1, ScaleZ: 1},
		component.Mesh{Geometry: component.GeometryModel, Model: w.InternAsset("ship.glb"), Width: 1, Height: 1, Depth: 2, CastShadow: true},
		component.Material{Color: component.White, Texture: w.InternAsset("hull.png"), Metalness: 0.9, Roughness: 0.2, Emissive: 0x00ffccff, Opacity: 1, Optional: component.MaterialEmissive},
		component.Light{LightType: component.LightSpot, Color: component.White, Intensity: 2, Angle: 0.6, Optional: component.LightAngle},
		component.Collider3D{ShapeType: component.ShapeCapsule, Width: 1, Height: 2, Depth: 1, Radius: 0.5, IsSensor: true, Optional: component.Collider3DRadius | component.Collider3DIsSensor},
		component.RigidBody3D{BodyType: component.BodyKinematic, Mass: 3, LinearDamping: 0.1, Friction: 0.4, GravityScale: 0},
		component.Camera3D{Projection: component.ProjectionOrthographic, FOV: 20, Near: 0.5, Far: 200},
	} {
		require.NoError(t, w.AddComponent(ship, c))
	}
	return w
}

func TestPlayerScenario(t *testing.T) {
	w := world.New(nil)
	rep, err := Unmarshal(w, []byte(playerSpec))
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Entities)
	assert.Empty(t, rep.Warnings)

	player, ok := w.Lookup("player")
	require.True(t, ok)
	assert.True(t, w.HasComponent(player, component.KindInput))
	assert.False(t, w.HasComponent(player, component.KindHealth))
	assert.Equal(t, float32(8), w.Stores().Input.MoveSpeed[player.Index()])
	assert.Equal(t, float32(-15), w.Stores().Input.JumpForce[player.Index()])
	assert.True(t, w.HasTag(player, "player"))

	doc, err := Serialize(w)
	require.NoError(t, err)
	got, err := json.Marshal(doc.Entities[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{
	  "name": "player",
	  "components": {
	    "transform": {"x": 100, "y": 400, "rotation": 0, "scaleX": 1, "scaleY": 1},
	    "velocity": {"vx": 0, "vy": 0},
	    "input": {"moveSpeed": 8, "jumpForce": -15}
	  },
	  "tags": ["player"]
	}`, string(got))
	assert.Equal(t,
		`{"name":"player","components":{"transform":{"x":100,"y":400,"rotation":0,"scaleX":1,"scaleY":1},"velocity":{"vx":0,"vy":0},"input":{"moveSpeed":8,"jumpForce":-15}},"tags":["player"]}`,
		string(got))
	assert.Equal(t, []string{"physics", "input"}, doc.Systems)
}

func TestRoundTrip_ByteIdentical(t *testing.T) {
	w := richWorld(t)
	w2, first, second := roundTrip(t, w)
	assert.Equal(t, string(first), string(second))
	assert.Equal(t, w.Len(), w2.Len())

	_, _, third := roundTrip(t, w2)
	assert.Equal(t, string(first), string(third))
}

func TestSerialize_Deterministic(t *testing.T) {
	w := richWorld(t)
	a := mustMarshal(t, w)
	b := mustMarshal(t, w)
	assert.Equal(t, a, b)

	da, err := Serialize(w)
	require.NoError(t, err)
	fa, err := Fingerprint(da)
	require.NoError(t, err)
	fb, err := Fingerprint(da)
	require.NoError(t, err)
	assert.Equal(t, fa, fb)

	require.NoError(t, w.AddTag(w.Entities()[0], "changed"))
	db, err := Serialize(w)
	require.NoError(t, err)
	fc, err := Fingerprint(db)
	require.NoError(t, err)
	assert.NotEqual(t, fa, fc)
}

func TestRoundTrip_NumericTolerance(t *testing.T) {
	w := richWorld(t)
	w2, _, _ := roundTrip(t, w)

	for _, id := range w.Entities() {
		id2, ok := w2.Lookup(w.Name(id))
		require.True(t, ok)
		for _, k := range w.Components(id) {
			a, _ := w.Component(id, k)
			b, ok := w2.Component(id2, k)
			require.True(t, ok, "%s.%s", w.Name(id), k)
			fa, err := component.Encode(a, w.Assets())
			require.NoError(t, err)
			fb, err := component.Encode(b, w2.Assets())
			require.NoError(t, err)
			require.Len(t, fb, len(fa))
			for i := range fa {
				assert.Equal(t, fa[i].Key, fb[i].Key)
				if x, ok := fa[i].Value.(float32); ok {
					assert.InDelta(t, x, fb[i].Value.(float32), 1e-2, "%s.%s.%s", w.Name(id), k, fa[i].Key)
				} else {
					assert.Equal(t, fa[i].Value, fb[i].Value)
				}
			}
		}
	}
	assert.InDelta(t, 9.81, w2.Config().Gravity.Y(), 1e-2)
}

func TestSerialize_PresenceFidelity(t *testing.T) {
	w := richWorld(t)
	doc, err := Serialize(w)
	require.NoError(t, err)

	empty, ok := doc.Entity("empty")
	require.True(t, ok)
	b, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"empty","components":{},"tags":[]}`, string(b))

	enemy, ok := doc.Entity("enemy")
	require.True(t, ok)
	assert.Equal(t, []string{"aiBehavior"}, enemy.Components.Keys())
	_, has := enemy.Components.Get("health")
	assert.False(t, has)

	hero, _ := doc.Entity("hero")
	spriteObj, _ := hero.Components.Get("sprite")
	assert.Equal(t, []string{"texture", "width", "height", "tint", "visible", "zIndex", "flipX"}, spriteObj.(*Object).Keys())
	tint, _ := spriteObj.(*Object).Get("tint")
	assert.Equal(t, "#12345678", tint)
}

func TestSerialize_MetadataAndConfig(t *testing.T) {
	w := richWorld(t)
	doc, err := Serialize(w)
	require.NoError(t, err)

	assert.Equal(t, []string{"title", "genre", "description", "author"}, doc.Metadata.Keys(),
		"extras are sorted and may not shadow modelled keys")
	assert.Equal(t, []string{"gravity", "worldBounds", "background"}, doc.Config.Keys())

	b, err := json.Marshal(doc.Config)
	require.NoError(t, err)
	assert.Equal(t, `{"gravity":{"x":0,"y":9.81},"worldBounds":{"width":1280,"height":720},"background":"#1a1a2e"}`, string(b))
}

func TestTagScenario(t *testing.T) {
	w := world.New(nil)
	e := w.CreateEntity("player")
	tags := []string{"player", "controllable", "damageable", "visible"}
	for _, tag := range tags {
		require.NoError(t, w.AddTag(e, tag))
	}

	doc, err := Serialize(w)
	require.NoError(t, err)
	assert.Equal(t, tags, doc.Entities[0].Tags)

	w2 := world.New(nil)
	_, err = Deserialize(w2, doc)
	require.NoError(t, err)
	e2, ok := w2.Lookup("player")
	require.True(t, ok)
	for _, tag := range tags {
		assert.True(t, w2.HasTag(e2, tag), tag)
	}
	assert.Len(t, w2.Tags(e2), 4)
}

func TestDecode_UnknownValuesDegrade(t *testing.T) {
	w := world.New(nil)
	rep, err := Unmarshal(w, []byte(`{
	  "version": "1.0",
	  "entities": [
	    {"name": "wall", "components": {
	      "collider": {"type": "hexagon", "width": 64},
	      "aiBehavior": {"behaviorType": "teleport"},
	      "forceField": {"strength": 3}
	    }}
	  ]
	}`))
	require.NoError(t, err)

	wall, ok := w.Lookup("wall")
	require.True(t, ok)
	c, ok := w.Component(wall, component.KindCollider)
	require.True(t, ok)
	assert.Equal(t, component.ColliderBox, c.(component.Collider).Type)
	assert.Equal(t, float32(64), c.(component.Collider).Width)
	ai, _ := w.Component(wall, component.KindAIBehavior)
	assert.Equal(t, component.BehaviorPatrol, ai.(component.AIBehavior).BehaviorType)

	kinds := map[WarningKind][]string{}
	for _, wr := range rep.Warnings {
		kinds[wr.Kind] = append(kinds[wr.Kind], wr.Path)
	}
	assert.Equal(t, []string{"entities[0].components.forceField"}, kinds[WarnUnknownComponent])
	assert.ElementsMatch(t, []string{
		"entities[0].components.collider.type",
		"entities[0].components.aiBehavior.behaviorType",
	}, kinds[WarnUnknownValue])

	// Defaults are serialized, not the unknown strings.
	doc, err := Serialize(w)
	require.NoError(t, err)
	col, _ := doc.Entities[0].Components.Get("collider")
	typ, _ := col.(*Object).Get("type")
	assert.Equal(t, "box", typ)
	_, has := doc.Entities[0].Components.Get("forceField")
	assert.False(t, has)
}

func TestDecode_ValidationErrors(t *testing.T) {
	cases := []struct {
		name   string
		spec   string
		path   string
		index  int
		entity string
		comp   string
		field  string
	}{
		{"not an object", `[]`, "$", -1, "", "", ""},
		{"missing version", `{"entities": []}`, "version", -1, "", "", ""},
		{"numeric version", `{"version": 1, "entities": []}`, "version", -1, "", "", ""},
		{"missing entities", `{"version": "1.0"}`, "entities", -1, "", "", ""},
		{"entities not array", `{"version": "1.0", "entities": {}}`, "entities", -1, "", "", ""},
		{"entity not object", `{"version": "1.0", "entities": [3]}`, "entities[0]", 0, "", "", ""},
		{"name not string", `{"version": "1.0", "entities": [{"name": 7}]}`, "entities[0].name", 0, "", "", ""},
		{"components not object", `{"version": "1.0", "entities": [{"name": "a", "components": []}]}`,
			"entities[0].components", 0, "a", "", ""},
		{"component not object", `{"version": "1.0", "entities": [{"name": "a", "components": {"sprite": "big"}}]}`,
			"entities[0].components.sprite", 0, "a", "sprite", ""},
		{"field wrong type", `{"version": "1.0", "entities": [{"name": "ok"}, {"name": "b", "components": {"sprite": {"texture": "t.png", "width": "wide"}}}]}`,
			"entities[1].components.sprite.width", 1, "b", "sprite", "width"},
		{"tag not string", `{"version": "1.0", "entities": [{"name": "a", "tags": ["x", 2]}]}`, "entities[0].tags[1]", 0, "a", "", ""},
		{"gravity wrong type", `{"version": "1.0", "config": {"gravity": {"x": "down"}}, "entities": []}`, "config.gravity.x", -1, "", "", ""},
		{"systems not strings", `{"version": "1.0", "entities": [], "systems": [1]}`, "systems[0]", -1, "", "", ""},
		{"field overflows float64", `{"version": "1.0", "entities": [{"name": "a", "components": {"transform": {"x": 1e400}}}]}`,
			"entities[0].components.transform.x", 0, "a", "transform", "x"},
		{"gravity overflows float64", `{"version": "1.0", "config": {"gravity": {"y": -1e400}}, "entities": []}`, "config.gravity.y", -1, "", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := world.New(nil)
			_, err := Unmarshal(w, []byte(tc.spec))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.path, verr.Path)
			assert.Equal(t, tc.index, verr.EntityIndex)
			assert.Equal(t, tc.entity, verr.EntityName)
			assert.Equal(t, tc.comp, verr.Component)
			assert.Equal(t, tc.field, verr.Field)

			assert.Equal(t, 0, w.Len(), "world untouched")
			assert.Equal(t, 0, w.Assets().Len(), "no assets interned")
		})
	}
}

func TestDecode_DuplicateNamesLaterWins(t *testing.T) {
	w := world.New(nil)
	rep, err := Unmarshal(w, []byte(`{
	  "version": "1.0",
	  "entities": [
	    {"name": "coin", "components": {"transform": {"x": 1}}},
	    {"name": "door"},
	    {"name": "coin", "components": {"transform": {"x": 2}}}
	  ]
	}`))
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Entities)
	require.Len(t, rep.Warnings, 1)
	assert.Equal(t, WarnDuplicateEntityName, rep.Warnings[0].Kind)
	assert.Equal(t, "entities[2].name", rep.Warnings[0].Path)

	var names []string
	for _, id := range w.Entities() {
		names = append(names, w.Name(id))
	}
	assert.Equal(t, []string{"door", "coin"}, names)
	coin, _ := w.Lookup("coin")
	assert.Equal(t, float32(2), w.Stores().Transform.X[coin.Index()])
}

func TestDecode_GeneratedNamesAvoidExplicitOnes(t *testing.T) {
	w := world.New(nil)
	rep, err := Unmarshal(w, []byte(`{"version": "1.0", "entities": [{}, {"name": "entity_1"}]}`))
	require.NoError(t, err)
	require.Len(t, rep.Warnings, 1)
	assert.Equal(t, WarnMissingName, rep.Warnings[0].Kind)

	var names []string
	for _, id := range w.Entities() {
		names = append(names, w.Name(id))
	}
	assert.Equal(t, []string{"entity_1_2", "entity_1"}, names)
}

func TestDecode_VersionAndExtras(t *testing.T) {
	w := world.New(nil)
	rep, err := Unmarshal(w, []byte(`{
	  "version": "2.3",
	  "metadata": {"title": "Next", "rating": 4.5},
	  "config": {"background": "#000", "tilemap": {"cols": 8}},
	  "entities": [],
	  "future": true
	}`))
	require.NoError(t, err)
	kinds := []WarningKind{}
	for _, wr := range rep.Warnings {
		kinds = append(kinds, wr.Kind)
	}
	assert.ElementsMatch(t, []WarningKind{WarnNewerVersion, WarnUnknownValue}, kinds)
	assert.Equal(t, "2.3", w.Version())
	assert.Equal(t, "Next", w.Metadata().Title)
	assert.Equal(t, world.DefaultConfig().Gravity, w.Config().Gravity)

	doc, err := Serialize(w)
	require.NoError(t, err)
	b, err := json.Marshal(doc.Metadata)
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Next","genre":"","description":"","rating":4.5}`, string(b))
	b, err = json.Marshal(doc.Config)
	require.NoError(t, err)
	assert.Equal(t, `{"gravity":{"x":0,"y":1},"worldBounds":{"width":800,"height":600},"background":"#000","tilemap":{"cols":8}}`, string(b))
}

func TestDecode_AssetsSharedAndDense(t *testing.T) {
	w := world.New(nil)
	_, err := Unmarshal(w, []byte(`{
	  "version": "1.0",
	  "entities": [
	    {"name": "a", "components": {"sprite": {"texture": "coin.png"}}},
	    {"name": "b", "components": {"sprite": {"texture": "coin.png"}, "audio": {"sound": "ding.wav"}}}
	  ]
	}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"coin.png", "ding.wav"}, w.Assets().Names())

	a, _ := w.Lookup("a")
	b, _ := w.Lookup("b")
	assert.Equal(t, w.Stores().Sprite.Texture[a.Index()], w.Stores().Sprite.Texture[b.Index()])
}

func TestDecode_RequiresEmptyWorld(t *testing.T) {
	w := world.New(nil)
	w.CreateEntity("existing")
	_, err := Unmarshal(w, []byte(playerSpec))
	assert.ErrorIs(t, err, ErrWorldNotEmpty)
}

func TestSerialize_InvariantError(t *testing.T) {
	w := world.New(nil)
	e := w.CreateEntity("broken")
	require.NoError(t, w.AddComponent(e, component.DefaultSprite()))
	w.Stores().Sprite.Texture[e.Index()] = 99

	_, err := Serialize(w)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvariant)
	assert.ErrorIs(t, err, component.ErrUnknownAsset)
	var ie *InvariantError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "broken", ie.Entity)
	assert.Equal(t, "sprite", ie.Component)
}

func TestDecode_Float32OverflowClamps(t *testing.T) {
	spec := `{"version": "1.0", "config": {"gravity": {"x": 0, "y": 1e39}},
	  "entities": [{"name": "far", "components": {"transform": {"x": 1e39, "y": -1e39}}}]}`
	w := world.New(nil)
	rep, err := Unmarshal(w, []byte(spec))
	require.NoError(t, err)
	assert.Len(t, rep.Warnings, 3)
	for _, wr := range rep.Warnings {
		assert.Equal(t, WarnUnknownValue, wr.Kind)
	}

	id, ok := w.Lookup("far")
	require.True(t, ok)
	c, _ := w.Component(id, component.KindTransform)
	tr := c.(component.Transform)
	assert.Equal(t, float32(math.MaxFloat32), tr.X)
	assert.Equal(t, float32(-math.MaxFloat32), tr.Y)
	assert.Equal(t, float32(math.MaxFloat32), w.Config().Gravity.Y())

	// The clamped value encodes and reloads without further warnings.
	w2, first, second := roundTrip(t, w)
	assert.Equal(t, string(first), string(second))
	rep2, err := Unmarshal(world.New(nil), first)
	require.NoError(t, err)
	assert.Empty(t, rep2.Warnings)
	assert.Equal(t, 1, w2.Len())
}

func TestDecode_NonFiniteYAML(t *testing.T) {
	cases := map[string]string{
		"metadata.score":                    "version: \"1.0\"\nmetadata: {score: .inf}\nentities: []\n",
		"config.spawn[1]":                   "version: \"1.0\"\nconfig: {spawn: [1, .nan]}\nentities: []\n",
		"entities[0].components.velocity.vx": "version: \"1.0\"\nentities: [{name: a, components: {velocity: {vx: -.inf}}}]\n",
	}
	for path, doc := range cases {
		t.Run(path, func(t *testing.T) {
			v, err := DecodeYAML([]byte(doc))
			require.NoError(t, err)
			w := world.New(nil)
			_, err = Deserialize(w, v)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, path, verr.Path)
			assert.Equal(t, 0, w.Len())
		})
	}
}

func TestSerialize_NonFiniteIsInvariantError(t *testing.T) {
	w := world.New(nil)
	e := w.CreateEntity("nan")
	require.NoError(t, w.AddComponent(e, component.DefaultTransform()))
	w.Stores().Transform.X[e.Index()] = float32(math.NaN())

	_, err := Serialize(w)
	assert.ErrorIs(t, err, ErrInvariant)
	assert.ErrorIs(t, err, component.ErrNotFinite)
}

func TestDecodeJSON_TrailingData(t *testing.T) {
	for _, text := range []string{`{"version": "1.0"}]`, `{"version": "1.0"}}`, `{} {}`, `{"a": 1} x`} {
		_, err := DecodeJSON([]byte(text))
		assert.Error(t, err, text)
	}
	_, err := DecodeJSON([]byte("{\"version\": \"1.0\"}\n  \t\n"))
	assert.NoError(t, err)
}

func TestYAML_RoundTrip(t *testing.T) {
	w := richWorld(t)
	doc, err := Serialize(w)
	require.NoError(t, err)
	want, err := MarshalJSON(doc, false)
	require.NoError(t, err)

	y, err := MarshalYAML(doc)
	require.NoError(t, err)
	v, err := DecodeYAML(y)
	require.NoError(t, err)

	w2 := world.New(nil)
	_, err = Deserialize(w2, v)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(mustMarshal(t, w2)))
}

func TestMarshalJSON_Indent(t *testing.T) {
	w := world.New(nil)
	w.CreateEntity("solo")
	doc, err := Serialize(w)
	require.NoError(t, err)
	b, err := MarshalJSON(doc, true)
	require.NoError(t, err)
	assert.Contains(t, string(b), "\n  \"entities\": [\n")
	assert.Equal(t, byte('\n'), b[len(b)-1])

	v, err := DecodeJSON(b)
	require.NoError(t, err)
	w2 := world.New(nil)
	_, err = Deserialize(w2, v)
	require.NoError(t, err)
	assert.Equal(t, mustMarshal(t, w), mustMarshal(t, w2))

	_, err = DecodeJSON([]byte(`{"version":"1.0"} {}`))
	assert.Error(t, err)
}
