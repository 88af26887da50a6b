package gamespec

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/promptplay/gamecore/internal/component"
	"github.com/promptplay/gamecore/internal/world"
)

// SupportedMajor is the newest GameSpec major version this package knows.
// Newer documents still load; unknown keys degrade to warnings.
const SupportedMajor = 1

// Decoder populates Worlds from generic GameSpec values.
type Decoder struct {
	log *zap.Logger
}

func NewDecoder(log *zap.Logger) *Decoder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Decoder{log: log}
}

// Deserialize decodes v into the empty World w without logging.
func Deserialize(w *world.World, v any) (Report, error) {
	return NewDecoder(nil).Decode(w, v)
}

// Unmarshal decodes GameSpec JSON text into the empty World w.
func Unmarshal(w *world.World, data []byte) (Report, error) {
	v, err := DecodeJSON(data)
	if err != nil {
		return Report{}, err
	}
	return Deserialize(w, v)
}

// Decode populates the empty World w from v, a generic value as produced by
// DecodeJSON or DecodeYAML (a *Document is accepted too).
//
// The whole document is validated before w is touched: a *ValidationError
// leaves w exactly as it was. Unknown component keys, unknown enum strings
// and duplicate entity names are recovered and listed in the Report.
func (d *Decoder) Decode(w *world.World, v any) (Report, error) {
	if w.Len() > 0 {
		return Report{}, ErrWorldNotEmpty
	}
	if doc, ok := v.(*Document); ok {
		g, err := doc.Generic()
		if err != nil {
			return Report{}, err
		}
		v = g
	}

	p := &planner{assets: newStagedAssets(w.Assets())}
	if err := p.document(v); err != nil {
		return Report{}, err
	}
	for _, wr := range p.warnings {
		d.log.Warn("game spec: "+wr.Detail, zap.String("path", wr.Path), zap.Stringer("kind", wr.Kind))
	}

	n, err := p.apply(w)
	if err != nil {
		return Report{}, err
	}
	d.log.Debug("game spec loaded",
		zap.Int("entities", n),
		zap.Int("assets", w.Assets().Len()),
		zap.Int("warnings", len(p.warnings)))
	return Report{Entities: n, Warnings: p.warnings}, nil
}

type plannedEntity struct {
	name    string
	comps   []component.Component
	tags    []string
	dropped bool
}

// planner holds a fully decoded document that has not been written to a
// World yet.
type planner struct {
	assets   *stagedAssets
	warnings []Warning

	version  string
	metadata world.Metadata
	config   world.Config
	systems  []string
	entities []plannedEntity
}

func (p *planner) warn(kind WarningKind, path, format string, args ...any) {
	p.warnings = append(p.warnings, Warning{Kind: kind, Path: path, Detail: fmt.Sprintf(format, args...)})
}

func invalid(path, format string, args ...any) *ValidationError {
	return &ValidationError{EntityIndex: -1, Path: path, Reason: fmt.Sprintf(format, args...)}
}

func wrongType(path, want string, got any) *ValidationError {
	return invalid(path, "want %s, got %s", want, component.TypeName(got))
}

// finite rejects NaN and infinities anywhere inside a pass-through value.
// JSON text cannot hold them but YAML (.inf, .nan) can.
func finite(path string, v any) error {
	switch v := v.(type) {
	case map[string]any:
		for _, k := range sortedKeys(v) {
			if err := finite(path+"."+k, v[k]); err != nil {
				return err
			}
		}
	case []any:
		for i, e := range v {
			if err := finite(fmt.Sprintf("%s[%d]", path, i), e); err != nil {
				return err
			}
		}
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return invalid(path, "want finite number, got %v", v)
		}
	}
	return nil
}

func (p *planner) document(v any) error {
	root, ok := v.(map[string]any)
	if !ok {
		return wrongType("$", "object", v)
	}
	for _, key := range sortedKeys(root) {
		switch key {
		case "version", "metadata", "config", "entities", "systems":
		default:
			p.warn(WarnUnknownValue, key, "unknown key ignored")
		}
	}

	if err := p.decodeVersion(root["version"]); err != nil {
		return err
	}
	if err := p.decodeMetadata(root["metadata"]); err != nil {
		return err
	}
	if err := p.decodeConfig(root["config"]); err != nil {
		return err
	}
	if err := p.decodeEntities(root["entities"]); err != nil {
		return err
	}
	return p.decodeSystems(root["systems"])
}

func (p *planner) decodeVersion(v any) error {
	if v == nil {
		return invalid("version", "missing required key")
	}
	s, ok := v.(string)
	if !ok {
		return wrongType("version", "string", v)
	}
	if s == "" {
		return invalid("version", "must not be empty")
	}
	major, _, _ := strings.Cut(s, ".")
	if n, err := strconv.Atoi(major); err == nil && n > SupportedMajor {
		p.warn(WarnNewerVersion, "version", "version %s is newer than %d.x", s, SupportedMajor)
	}
	p.version = s
	return nil
}

func optString(path string, v any) (string, error) {
	if v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", wrongType(path, "string", v)
	}
	return s, nil
}

func (p *planner) decodeMetadata(v any) error {
	if v == nil {
		return nil
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return wrongType("metadata", "object", v)
	}
	var (
		m   world.Metadata
		err error
	)
	for _, key := range sortedKeys(obj) {
		path := "metadata." + key
		switch key {
		case "title":
			m.Title, err = optString(path, obj[key])
		case "genre":
			m.Genre, err = optString(path, obj[key])
		case "description":
			m.Description, err = optString(path, obj[key])
		default:
			err = finite(path, obj[key])
			m.Extras = append(m.Extras, world.Extra{Key: key, Value: obj[key]})
		}
		if err != nil {
			return err
		}
	}
	p.metadata = m
	return nil
}

func (p *planner) decodeConfig(v any) error {
	c := world.DefaultConfig()
	if v == nil {
		p.config = c
		return nil
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return wrongType("config", "object", v)
	}
	var err error
	for _, key := range sortedKeys(obj) {
		path := "config." + key
		switch key {
		case "gravity":
			err = p.pair(path, obj[key], "x", "y", &c.Gravity[0], &c.Gravity[1])
		case "worldBounds":
			err = p.pair(path, obj[key], "width", "height", &c.WorldBounds.Width, &c.WorldBounds.Height)
		case "background":
			c.Background, err = optString(path, obj[key])
		default:
			err = finite(path, obj[key])
			c.Extras = append(c.Extras, world.Extra{Key: key, Value: obj[key]})
		}
		if err != nil {
			return err
		}
	}
	p.config = c
	return nil
}

// pair reads a two-number object such as {"x":0,"y":1}. Missing members keep
// the values already in a and b.
func (p *planner) pair(path string, v any, ka, kb string, a, b *float32) error {
	if v == nil {
		return nil
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return wrongType(path, "object", v)
	}
	for _, key := range sortedKeys(obj) {
		var dst *float32
		switch key {
		case ka:
			dst = a
		case kb:
			dst = b
		default:
			p.warn(WarnUnknownValue, path+"."+key, "unknown field ignored")
			continue
		}
		if obj[key] == nil {
			continue
		}
		f, ok := component.Number(obj[key])
		if !ok {
			return wrongType(path+"."+key, "number", obj[key])
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return invalid(path+"."+key, "want finite number, got %v", f)
		}
		v, clamped := component.Float32(f)
		if clamped {
			p.warn(WarnUnknownValue, path+"."+key, "%v clamped to %v", f, v)
		}
		*dst = v
	}
	return nil
}

func (p *planner) decodeEntities(v any) error {
	if v == nil {
		return invalid("entities", "missing required key")
	}
	arr, ok := v.([]any)
	if !ok {
		return wrongType("entities", "array", v)
	}

	p.entities = make([]plannedEntity, 0, len(arr))
	byName := make(map[string]int, len(arr))
	for i, ev := range arr {
		pe, err := p.decodeEntity(i, ev)
		if err != nil {
			return err
		}
		if pe.name != "" {
			if prev, dup := byName[pe.name]; dup {
				p.entities[prev].dropped = true
				p.warn(WarnDuplicateEntityName, fmt.Sprintf("entities[%d].name", i),
					"entity %q also defined at entities[%d]; the later definition wins", pe.name, prev)
			}
			byName[pe.name] = len(p.entities)
		}
		p.entities = append(p.entities, pe)
	}

	// Generated names must not collide with any explicit one.
	for i := range p.entities {
		pe := &p.entities[i]
		if pe.name != "" || pe.dropped {
			continue
		}
		base := fmt.Sprintf("entity_%d", i+1)
		name := base
		for n := 2; ; n++ {
			if _, taken := byName[name]; !taken {
				break
			}
			name = fmt.Sprintf("%s_%d", base, n)
		}
		pe.name = name
		byName[name] = i
	}
	return nil
}

func (p *planner) decodeEntity(i int, v any) (plannedEntity, error) {
	var pe plannedEntity
	path := fmt.Sprintf("entities[%d]", i)
	obj, ok := v.(map[string]any)
	if !ok {
		err := wrongType(path, "object", v)
		err.EntityIndex = i
		return pe, err
	}
	fail := func(err *ValidationError) (plannedEntity, error) {
		err.EntityIndex = i
		err.EntityName = pe.name
		return pe, err
	}

	switch name := obj["name"].(type) {
	case nil:
		p.warn(WarnMissingName, path+".name", "entity has no name; one will be generated")
	case string:
		pe.name = norm.NFC.String(name)
		if pe.name == "" {
			p.warn(WarnMissingName, path+".name", "entity name is empty; one will be generated")
		}
	default:
		return fail(wrongType(path+".name", "string", name))
	}

	for _, key := range sortedKeys(obj) {
		switch key {
		case "name", "components", "tags":
		default:
			p.warn(WarnUnknownValue, path+"."+key, "unknown key ignored")
		}
	}

	if raw := obj["components"]; raw != nil {
		comps, ok := raw.(map[string]any)
		if !ok {
			return fail(wrongType(path+".components", "object", raw))
		}
		for _, key := range sortedKeys(comps) {
			if _, known := component.ParseKind(key); !known {
				p.warn(WarnUnknownComponent, path+".components."+key, "unknown component %q ignored", key)
			}
		}
		for _, k := range component.Kinds() {
			raw, ok := comps[k.Key()]
			if !ok {
				continue
			}
			c, err := p.decodeComponent(path+".components."+k.Key(), k, raw)
			if err != nil {
				return fail(err)
			}
			pe.comps = append(pe.comps, c)
		}
	}

	if raw := obj["tags"]; raw != nil {
		tags, ok := raw.([]any)
		if !ok {
			return fail(wrongType(path+".tags", "array", raw))
		}
		for j, t := range tags {
			s, ok := t.(string)
			if !ok {
				return fail(wrongType(fmt.Sprintf("%s.tags[%d]", path, j), "string", t))
			}
			s = norm.NFC.String(s)
			if s == "" {
				p.warn(WarnUnknownValue, fmt.Sprintf("%s.tags[%d]", path, j), "empty tag ignored")
				continue
			}
			if !slices.Contains(pe.tags, s) {
				pe.tags = append(pe.tags, s)
			}
		}
	}
	return pe, nil
}

func (p *planner) decodeComponent(path string, k component.Kind, raw any) (component.Component, *ValidationError) {
	fields, ok := raw.(map[string]any)
	if !ok {
		err := wrongType(path, "object", raw)
		err.Component = k.Key()
		return nil, err
	}
	c, issues, err := component.Decode(k, fields, p.assets)
	if err != nil {
		verr := invalid(path, "%v", err)
		verr.Component = k.Key()
		var fe *component.FieldError
		if errors.As(err, &fe) {
			verr.Field = fe.Field
			verr.Path = path + "." + fe.Field
			verr.Reason = fmt.Sprintf("want %s, got %s", fe.Want, fe.Got)
		}
		return nil, verr
	}
	for _, is := range issues {
		p.warn(WarnUnknownValue, path+"."+is.Field, "%s", is.Detail)
	}
	return c, nil
}

func (p *planner) decodeSystems(v any) error {
	p.systems = []string{}
	if v == nil {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		return wrongType("systems", "array", v)
	}
	for i, e := range arr {
		s, ok := e.(string)
		if !ok {
			return wrongType(fmt.Sprintf("systems[%d]", i), "string", e)
		}
		p.systems = append(p.systems, s)
	}
	return nil
}

// apply writes the plan into w. Errors here mean the plan and the World
// disagree, which is a bug rather than bad input.
func (p *planner) apply(w *world.World) (int, error) {
	p.assets.commit()
	w.SetVersion(p.version)
	w.SetMetadata(p.metadata)
	w.SetConfig(p.config)
	w.SetSystems(p.systems)

	n := 0
	for _, pe := range p.entities {
		if pe.dropped {
			continue
		}
		id := w.CreateEntity(pe.name)
		for _, c := range pe.comps {
			if err := w.AddComponent(id, c); err != nil {
				return n, fmt.Errorf("apply entity %q: %w", pe.name, err)
			}
		}
		for _, t := range pe.tags {
			if err := w.AddTag(id, t); err != nil {
				return n, fmt.Errorf("apply entity %q: %w", pe.name, err)
			}
		}
		n++
	}
	return n, nil
}

// stagedAssets interns into a private overlay of a World's registry. New
// names get the ids the registry will assign when commit replays them in
// order.
type stagedAssets struct {
	base  *world.Assets
	added []string
	ids   map[string]component.AssetID
}

func newStagedAssets(base *world.Assets) *stagedAssets {
	return &stagedAssets{base: base, ids: make(map[string]component.AssetID)}
}

func (s *stagedAssets) Intern(name string) component.AssetID {
	if name == "" {
		return component.NoAsset
	}
	if id, ok := s.base.Lookup(name); ok {
		return id
	}
	if id, ok := s.ids[name]; ok {
		return id
	}
	s.added = append(s.added, name)
	id := component.AssetID(s.base.Len() + len(s.added))
	s.ids[name] = id
	return id
}

func (s *stagedAssets) Resolve(id component.AssetID) (string, bool) {
	if name, ok := s.base.Resolve(id); ok {
		return name, true
	}
	i := int(id) - s.base.Len() - 1
	if i < 0 || i >= len(s.added) {
		return "", false
	}
	return s.added[i], true
}

func (s *stagedAssets) commit() {
	for _, name := range s.added {
		s.base.Intern(name)
	}
	s.added, s.ids = nil, make(map[string]component.AssetID)
}
