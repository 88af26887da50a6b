package scripting

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/promptplay/gamecore/internal/component"
	"github.com/promptplay/gamecore/internal/core/event"
	"github.com/promptplay/gamecore/internal/gamespec"
	"github.com/promptplay/gamecore/internal/world"
)

// Engine wraps a single gopher-lua VM that builds Worlds from scripts.
// Single-goroutine access only.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger

	// Target of the running build; nil between builds.
	w        *world.World
	warnings []gamespec.Warning
}

// NewEngine creates a sandboxed Lua VM (no io/os libraries), binds the world
// API and loads helper scripts from libDir. A missing libDir is not an error.
func NewEngine(libDir string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenPackage},
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := vm.CallByParam(lua.P{
			Fn:      vm.NewFunction(lib.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			vm.Close()
			return nil, fmt.Errorf("open lua lib %s: %w", lib.name, err)
		}
	}
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	e.bindWorld()

	if libDir != "" {
		if err := e.loadDir(libDir); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load lib scripts: %w", err)
		}
	}
	return e, nil
}

func (e *Engine) Close() { e.vm.Close() }

// loadDir loads all .lua files in a directory, in name order.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Result is a World built by a script together with the recovered problems
// (unknown enum strings, unknown fields) met while decoding component tables.
type Result struct {
	World    *world.World
	Warnings []gamespec.Warning
	Stats    Stats
}

// Stats counts the world changes a script made. Entities destroyed by the
// script are included in Created.
type Stats struct {
	Created    int
	Destroyed  int
	Components int
	// Replaced counts world.add calls that overwrote an existing component.
	Replaced int
}

func (e *Engine) watch(bus *event.Bus, st *Stats) {
	event.Subscribe(bus, func(ev event.EntityCreated) {
		st.Created++
		e.log.Debug("script created entity", zap.String("name", ev.Name))
	})
	event.Subscribe(bus, func(ev event.EntityDestroyed) {
		st.Destroyed++
		e.log.Debug("script destroyed entity", zap.String("name", ev.Name))
	})
	event.Subscribe(bus, func(ev event.ComponentAdded) {
		st.Components++
		if ev.Replaced {
			st.Replaced++
			e.log.Debug("script replaced component",
				zap.Stringer("kind", component.Kind(ev.Component)),
				zap.Uint32("slot", ev.EntityID.Index()))
		}
	})
}

// Build runs src as a build script against a fresh World. ctx cancels a
// running script.
func (e *Engine) Build(ctx context.Context, name, src string) (Result, error) {
	w := world.New(e.log)
	bus := event.NewBus()
	w.SetBus(bus)
	var st Stats
	e.watch(bus, &st)
	e.w, e.warnings = w, nil
	defer func() { e.w = nil }()

	e.vm.SetContext(ctx)
	defer e.vm.RemoveContext()

	fn, err := e.vm.Load(strings.NewReader(src), name)
	if err != nil {
		return Result{}, fmt.Errorf("compile %s: %w", name, err)
	}
	e.vm.Push(fn)
	if err := e.vm.PCall(0, 0, nil); err != nil {
		return Result{}, fmt.Errorf("run %s: %w", name, err)
	}
	bus.Flush()
	for _, wr := range e.warnings {
		e.log.Warn("script: "+wr.Detail, zap.String("script", name), zap.String("path", wr.Path))
	}
	e.log.Debug("script finished", zap.String("script", name),
		zap.Int("created", st.Created), zap.Int("destroyed", st.Destroyed),
		zap.Int("components", st.Components), zap.Int("replaced", st.Replaced))
	return Result{World: w, Warnings: e.warnings, Stats: st}, nil
}

// BuildFile runs the script at path.
func (e *Engine) BuildFile(ctx context.Context, path string) (Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read script: %w", err)
	}
	return e.Build(ctx, filepath.Base(path), string(src))
}
