package scripting

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	lua "github.com/yuin/gopher-lua"

	"github.com/promptplay/gamecore/internal/component"
	"github.com/promptplay/gamecore/internal/core/ecs"
	"github.com/promptplay/gamecore/internal/gamespec"
	"github.com/promptplay/gamecore/internal/world"
)

const entityTypeName = "gamespec.entity"

// bindWorld installs the global "world" table. Every function operates on
// the World of the build in progress and raises a Lua error outside one.
func (e *Engine) bindWorld() {
	L := e.vm

	mt := L.NewTypeMetatable(entityTypeName)
	L.SetField(mt, "__tostring", L.NewFunction(func(L *lua.LState) int {
		id := checkEntity(L, 1)
		L.Push(lua.LString(fmt.Sprintf("entity(%d:%d)", id.Index(), id.Generation())))
		return 1
	}))
	L.SetField(mt, "__eq", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(checkEntity(L, 1) == checkEntity(L, 2)))
		return 1
	}))

	tbl := L.NewTable()
	fns := map[string]lua.LGFunction{
		"create":   e.luaCreate,
		"destroy":  e.luaDestroy,
		"name":     e.luaName,
		"rename":   e.luaRename,
		"find":     e.luaFind,
		"add":      e.luaAdd,
		"remove":   e.luaRemove,
		"has":      e.luaHas,
		"tag":      e.luaTag,
		"untag":    e.luaUntag,
		"tagged":   e.luaTagged,
		"entities": e.luaEntities,
		"meta":     e.luaMeta,
		"config":   e.luaConfig,
		"systems":  e.luaSystems,
		"version":  e.luaVersion,
	}
	for name, fn := range fns {
		tbl.RawSetString(name, L.NewFunction(fn))
	}
	L.SetGlobal("world", tbl)
}

func (e *Engine) target(L *lua.LState) *world.World {
	if e.w == nil {
		L.RaiseError("world is only available while a build script runs")
	}
	return e.w
}

func (e *Engine) pushEntity(L *lua.LState, id ecs.EntityID) {
	ud := L.NewUserData()
	ud.Value = id
	L.SetMetatable(ud, L.GetTypeMetatable(entityTypeName))
	L.Push(ud)
}

func checkEntity(L *lua.LState, n int) ecs.EntityID {
	ud := L.CheckUserData(n)
	if id, ok := ud.Value.(ecs.EntityID); ok {
		return id
	}
	L.ArgError(n, "entity expected")
	return ecs.Nil
}

// liveEntity is checkEntity plus a liveness check against the target World.
func (e *Engine) liveEntity(L *lua.LState, n int) (*world.World, ecs.EntityID) {
	w := e.target(L)
	id := checkEntity(L, n)
	if !w.Alive(id) {
		L.ArgError(n, "entity has been destroyed")
	}
	return w, id
}

func checkKind(L *lua.LState, n int) component.Kind {
	key := L.CheckString(n)
	k, ok := component.ParseKind(key)
	if !ok {
		L.ArgError(n, fmt.Sprintf("unknown component %q", key))
	}
	return k
}

// world.create([name]) -> entity
func (e *Engine) luaCreate(L *lua.LState) int {
	w := e.target(L)
	e.pushEntity(L, w.CreateEntity(L.OptString(1, "")))
	return 1
}

// world.destroy(entity) -> bool
func (e *Engine) luaDestroy(L *lua.LState) int {
	w := e.target(L)
	L.Push(lua.LBool(w.DestroyEntity(checkEntity(L, 1))))
	return 1
}

// world.name(entity) -> string
func (e *Engine) luaName(L *lua.LState) int {
	w, id := e.liveEntity(L, 1)
	L.Push(lua.LString(w.Name(id)))
	return 1
}

// world.rename(entity, name)
func (e *Engine) luaRename(L *lua.LState) int {
	w, id := e.liveEntity(L, 1)
	if err := w.Rename(id, L.CheckString(2)); err != nil {
		L.RaiseError("rename: %v", err)
	}
	return 0
}

// world.find(name) -> entity | nil
func (e *Engine) luaFind(L *lua.LState) int {
	w := e.target(L)
	id, ok := w.Lookup(L.CheckString(1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	e.pushEntity(L, id)
	return 1
}

// world.add(entity, kind, [fields]) decodes fields with the GameSpec rules
// for kind and attaches the result, replacing any existing component.
func (e *Engine) luaAdd(L *lua.LState) int {
	w, id := e.liveEntity(L, 1)
	k := checkKind(L, 2)
	obj := map[string]any{}
	if L.GetTop() >= 3 && L.Get(3) != lua.LNil {
		m, ok := toGo(L, L.CheckTable(3)).(map[string]any)
		if !ok {
			L.ArgError(3, "field table must not be an array")
		}
		obj = m
	}
	c, issues, err := component.Decode(k, obj, w.Assets())
	if err != nil {
		L.RaiseError("%s on %q: %v", k, w.Name(id), err)
	}
	for _, is := range issues {
		e.warnings = append(e.warnings, gamespec.Warning{
			Kind:   gamespec.WarnUnknownValue,
			Path:   w.Name(id) + "." + k.Key() + "." + is.Field,
			Detail: is.Detail,
		})
	}
	if err := w.AddComponent(id, c); err != nil {
		L.RaiseError("%s on %q: %v", k, w.Name(id), err)
	}
	return 0
}

// world.remove(entity, kind) -> bool
func (e *Engine) luaRemove(L *lua.LState) int {
	w, id := e.liveEntity(L, 1)
	L.Push(lua.LBool(w.RemoveComponent(id, checkKind(L, 2))))
	return 1
}

// world.has(entity, kind) -> bool
func (e *Engine) luaHas(L *lua.LState) int {
	w, id := e.liveEntity(L, 1)
	L.Push(lua.LBool(w.HasComponent(id, checkKind(L, 2))))
	return 1
}

// world.tag(entity, tag...)
func (e *Engine) luaTag(L *lua.LState) int {
	w, id := e.liveEntity(L, 1)
	for i := 2; i <= L.GetTop(); i++ {
		if err := w.AddTag(id, L.CheckString(i)); err != nil {
			L.ArgError(i, err.Error())
		}
	}
	return 0
}

// world.untag(entity, tag) -> bool
func (e *Engine) luaUntag(L *lua.LState) int {
	w, id := e.liveEntity(L, 1)
	L.Push(lua.LBool(w.RemoveTag(id, L.CheckString(2))))
	return 1
}

// world.tagged(tag) -> {entity...}
func (e *Engine) luaTagged(L *lua.LState) int {
	w := e.target(L)
	out := L.NewTable()
	for _, id := range w.EntitiesWithTag(L.CheckString(1)) {
		e.pushEntity(L, id)
		out.Append(L.Get(-1))
		L.Pop(1)
	}
	L.Push(out)
	return 1
}

// world.entities([kind...]) -> {entity...}
func (e *Engine) luaEntities(L *lua.LState) int {
	w := e.target(L)
	var kinds []component.Kind
	for i := 1; i <= L.GetTop(); i++ {
		kinds = append(kinds, checkKind(L, i))
	}
	ids := w.Entities()
	if len(kinds) > 0 {
		ids = w.Query(kinds...)
	}
	out := L.NewTable()
	for _, id := range ids {
		e.pushEntity(L, id)
		out.Append(L.Get(-1))
		L.Pop(1)
	}
	L.Push(out)
	return 1
}

// world.meta{title=, genre=, description=, ...}. Other keys become extras.
func (e *Engine) luaMeta(L *lua.LState) int {
	w := e.target(L)
	fields := checkObject(L, 1)
	m := w.Metadata()
	for _, key := range sortedKeys(fields) {
		v := fields[key]
		switch key {
		case "title", "genre", "description":
			s, ok := v.(string)
			if !ok {
				L.ArgError(1, fmt.Sprintf("meta.%s must be a string", key))
			}
			switch key {
			case "title":
				m.Title = s
			case "genre":
				m.Genre = s
			default:
				m.Description = s
			}
		default:
			m.Extras = setExtra(m.Extras, key, v)
		}
	}
	w.SetMetadata(m)
	return 0
}

// world.config{gravity={x,y}, worldBounds={width,height}, background=, ...}
func (e *Engine) luaConfig(L *lua.LState) int {
	w := e.target(L)
	fields := checkObject(L, 1)
	c := w.Config()
	for _, key := range sortedKeys(fields) {
		v := fields[key]
		switch key {
		case "gravity":
			x, y := checkPair(L, v, "gravity", "x", "y")
			c.Gravity[0], c.Gravity[1] = x, y
		case "worldBounds":
			c.WorldBounds.Width, c.WorldBounds.Height = checkPair(L, v, "worldBounds", "width", "height")
		case "background":
			s, ok := v.(string)
			if !ok {
				L.ArgError(1, "config.background must be a string")
			}
			c.Background = s
		default:
			c.Extras = setExtra(c.Extras, key, v)
		}
	}
	w.SetConfig(c)
	return 0
}

// world.systems{name...}
func (e *Engine) luaSystems(L *lua.LState) int {
	w := e.target(L)
	tbl := L.CheckTable(1)
	var names []string
	for i := 1; i <= tbl.MaxN(); i++ {
		s, ok := tbl.RawGetInt(i).(lua.LString)
		if !ok {
			L.ArgError(1, fmt.Sprintf("systems[%d] must be a string", i))
		}
		names = append(names, string(s))
	}
	w.SetSystems(names)
	return 0
}

// world.version([v]) -> string
func (e *Engine) luaVersion(L *lua.LState) int {
	w := e.target(L)
	if L.GetTop() >= 1 {
		w.SetVersion(L.CheckString(1))
	}
	L.Push(lua.LString(w.Version()))
	return 1
}

func checkObject(L *lua.LState, n int) map[string]any {
	m, ok := toGo(L, L.CheckTable(n)).(map[string]any)
	if !ok {
		L.ArgError(n, "table with string keys expected")
	}
	return m
}

func checkPair(L *lua.LState, v any, name, a, b string) (float32, float32) {
	m, ok := v.(map[string]any)
	if !ok {
		L.ArgError(1, fmt.Sprintf("config.%s must be a table", name))
	}
	fa, okA := component.Number(m[a])
	fb, okB := component.Number(m[b])
	if !okA || !okB {
		L.ArgError(1, fmt.Sprintf("config.%s needs numeric %s and %s", name, a, b))
	}
	return float32(fa), float32(fb)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func setExtra(extras []world.Extra, key string, v any) []world.Extra {
	for i := range extras {
		if extras[i].Key == key {
			extras[i].Value = v
			return extras
		}
	}
	return append(extras, world.Extra{Key: key, Value: v})
}

// toGo converts a Lua value to the shapes the JSON decoder produces. A table
// whose keys are exactly 1..n becomes []any; any other non-empty table
// becomes map[string]any with numeric keys formatted as strings. The empty
// table is an object. Cyclic tables and NaN or infinite numbers raise a Lua
// error.
func toGo(L *lua.LState, v lua.LValue) any {
	c := converter{L: L, open: make(map[*lua.LTable]struct{})}
	return c.value(v)
}

type converter struct {
	L *lua.LState
	// tables on the current path; a table met again while open is a cycle
	open map[*lua.LTable]struct{}
}

func (c *converter) value(v lua.LValue) any {
	switch v := v.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			c.L.RaiseError("number %v has no GameSpec encoding", f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if _, ok := c.open[v]; ok {
			c.L.RaiseError("table contains itself")
		}
		c.open[v] = struct{}{}
		defer delete(c.open, v)
		return c.table(v)
	}
	return nil
}

func (c *converter) table(t *lua.LTable) any {
	n := t.MaxN()
	count := 0
	t.ForEach(func(lua.LValue, lua.LValue) { count++ })
	if n > 0 && count == n {
		arr := make([]any, 0, n)
		for i := 1; i <= n; i++ {
			arr = append(arr, c.value(t.RawGetInt(i)))
		}
		return arr
	}
	obj := make(map[string]any, count)
	t.ForEach(func(k, val lua.LValue) {
		switch k := k.(type) {
		case lua.LString:
			obj[string(k)] = c.value(val)
		case lua.LNumber:
			obj[strconv.FormatFloat(float64(k), 'f', -1, 64)] = c.value(val)
		}
	})
	return obj
}
