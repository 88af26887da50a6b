package component

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
)

var (
	ErrEnumRange        = errors.New("enum value out of range")
	ErrUnknownAsset     = errors.New("asset id not registered")
	ErrNotFinite        = errors.New("value is NaN or infinite")
	ErrUnsupportedValue = errors.New("unsupported component value")
)

// AssetID is an interned texture/model/sound name. NoAsset means the field is
// unset and is omitted from GameSpec output.
type AssetID uint32

const NoAsset AssetID = 0

// Assets interns and resolves asset names for asset-valued fields.
type Assets interface {
	Intern(name string) AssetID
	Resolve(id AssetID) (string, bool)
}

// FieldMask records which optional fields of a component are present.
type FieldMask uint16

// Field is one encoded key/value pair, in schema order.
type Field struct {
	Key   string
	Value any
}

// Issue is a recoverable decode problem: the value was replaced by a default
// or the key was ignored.
type Issue struct {
	Field  string
	Detail string
}

// FieldError reports a field whose JSON type does not match its schema.
type FieldError struct {
	Field string
	Want  string
	Got   string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: want %s, got %s", e.Field, e.Want, e.Got)
}

// FieldReader decodes schema fields out of a generic JSON object. The first
// type mismatch stops all further reads.
type FieldReader struct {
	obj    map[string]any
	seen   map[string]struct{}
	assets Assets
	issues []Issue
	err    *FieldError
}

func newFieldReader(obj map[string]any, assets Assets) *FieldReader {
	return &FieldReader{
		obj:    obj,
		seen:   make(map[string]struct{}, len(obj)),
		assets: assets,
	}
}

// lookup returns the raw value for key. null counts as absent.
func (r *FieldReader) lookup(key string) (any, bool) {
	if r.err != nil {
		return nil, false
	}
	r.seen[key] = struct{}{}
	v, ok := r.obj[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (r *FieldReader) fail(key, want string, got any) {
	r.err = &FieldError{Field: key, Want: want, Got: TypeName(got)}
}

func (r *FieldReader) warn(key, format string, args ...any) {
	r.issues = append(r.issues, Issue{Field: key, Detail: fmt.Sprintf(format, args...)})
}

// number reads key as a finite number. NaN and infinities (from Lua, YAML, or
// JSON numbers past float64) are errors.
func (r *FieldReader) number(key string) (float64, bool) {
	v, ok := r.lookup(key)
	if !ok {
		return 0, false
	}
	f, ok := toNumber(v)
	if !ok {
		r.fail(key, "number", v)
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		r.err = &FieldError{Field: key, Want: "finite number", Got: fmt.Sprint(f)}
		return 0, false
	}
	return f, true
}

// Float reads a float field. Returns true if the key was present and valid.
// Magnitudes beyond float32 are clamped to ±MaxFloat32 with a warning.
func (r *FieldReader) Float(key string, dst *float32) bool {
	f, ok := r.number(key)
	if !ok {
		return false
	}
	v, clamped := Float32(f)
	if clamped {
		r.warn(key, "%v clamped to %v", f, v)
	}
	*dst = v
	return true
}

// Float32 narrows a finite f, clamping to ±MaxFloat32 when f would round to
// infinity.
func Float32(f float64) (v float32, clamped bool) {
	// Half an ulp past MaxFloat32 rounds up to infinity.
	if math.Abs(f) >= math.MaxFloat32+0x1p103 {
		return float32(math.Copysign(math.MaxFloat32, f)), true
	}
	return float32(f), false
}

// Int reads an integer field, truncating fractions and clamping to [lo, hi].
func (r *FieldReader) Int(key string, dst *int32) bool {
	f, ok := r.number(key)
	if !ok {
		return false
	}
	*dst = int32(r.clamp(key, f, math.MinInt32, math.MaxInt32))
	return true
}

// Byte reads an integer field stored in 8 bits.
func (r *FieldReader) Byte(key string, dst *uint8) bool {
	f, ok := r.number(key)
	if !ok {
		return false
	}
	*dst = uint8(r.clamp(key, f, 0, math.MaxUint8))
	return true
}

func (r *FieldReader) clamp(key string, f, lo, hi float64) float64 {
	t := math.Trunc(f)
	if t != f {
		r.warn(key, "fraction %v truncated", f)
	}
	switch {
	case t < lo:
		r.warn(key, "%v clamped to %v", f, lo)
		return lo
	case t > hi:
		r.warn(key, "%v clamped to %v", f, hi)
		return hi
	}
	return t
}

// Bool reads a boolean field. Numbers are accepted: non-zero is true.
func (r *FieldReader) Bool(key string, dst *bool) bool {
	v, ok := r.lookup(key)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		*dst = b
		return true
	}
	if f, ok := toNumber(v); ok {
		*dst = f != 0
		return true
	}
	r.fail(key, "boolean", v)
	return false
}

// Color reads a "#rrggbbaa" string or a numeric color. Malformed strings keep
// the current (default) value.
func (r *FieldReader) Color(key string, dst *Color) bool {
	v, ok := r.lookup(key)
	if !ok {
		return false
	}
	if s, ok := v.(string); ok {
		c, err := ParseColor(s)
		if err != nil {
			r.warn(key, "%v; using %s", err, *dst)
			return false
		}
		*dst = c
		return true
	}
	f, ok := toNumber(v)
	if !ok {
		r.fail(key, "color string or number", v)
		return false
	}
	if f < 0 || f > math.MaxUint32 || math.Trunc(f) != f {
		r.warn(key, "numeric color %v out of range; using %s", f, *dst)
		return false
	}
	*dst = ColorFromNumber(uint64(f))
	return true
}

// Asset reads an asset name and interns it. An empty name means no asset.
func (r *FieldReader) Asset(key string, dst *AssetID) bool {
	v, ok := r.lookup(key)
	if !ok {
		return false
	}
	s, ok := v.(string)
	if !ok {
		r.fail(key, "string", v)
		return false
	}
	if s == "" {
		*dst = NoAsset
		return true
	}
	*dst = r.assets.Intern(s)
	return true
}

func readEnum[T ~uint8](r *FieldReader, key string, table EnumTable[T], dst *T) bool {
	v, ok := r.lookup(key)
	if !ok {
		return false
	}
	s, ok := v.(string)
	if !ok {
		r.fail(key, "string", v)
		return false
	}
	e, known := table.Parse(s)
	if !known {
		def, _ := table.Name(0)
		r.warn(key, "unknown value %q; using %q", s, def)
	}
	*dst = e
	return true
}

// unconsumed reports keys no read touched, sorted for stable warnings.
func (r *FieldReader) unconsumed() []string {
	var out []string
	for k := range r.obj {
		if _, ok := r.seen[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// FieldWriter encodes schema fields in order. Asset and enum values that do
// not resolve are programming errors and are reported through Err.
type FieldWriter struct {
	fields []Field
	assets Assets
	err    error
}

func (w *FieldWriter) put(key string, v any) {
	w.fields = append(w.fields, Field{Key: key, Value: v})
}

func (w *FieldWriter) Int(key string, v int32)   { w.put(key, v) }
func (w *FieldWriter) Byte(key string, v uint8)  { w.put(key, v) }
func (w *FieldWriter) Bool(key string, v bool)   { w.put(key, v) }
func (w *FieldWriter) Color(key string, v Color) { w.put(key, v.String()) }

// Float rejects NaN and infinities, which have no JSON encoding.
func (w *FieldWriter) Float(key string, v float32) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		if w.err == nil {
			w.err = fmt.Errorf("field %q: %w: %v", key, ErrNotFinite, v)
		}
		return
	}
	w.put(key, v)
}

func (w *FieldWriter) Asset(key string, id AssetID) {
	if id == NoAsset {
		return
	}
	name, ok := w.assets.Resolve(id)
	if !ok {
		if w.err == nil {
			w.err = fmt.Errorf("field %q: %w: %d", key, ErrUnknownAsset, id)
		}
		return
	}
	w.put(key, name)
}

func writeEnum[T ~uint8](w *FieldWriter, key string, table EnumTable[T], v T) {
	name, ok := table.Name(v)
	if !ok {
		if w.err == nil {
			w.err = fmt.Errorf("field %q: %w: %d", key, ErrEnumRange, v)
		}
		return
	}
	w.put(key, name)
}

// Number converts any numeric value produced by the JSON or YAML decoders.
func Number(v any) (float64, bool) { return toNumber(v) }

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint8:
		return float64(n), true
	case json.Number:
		// Overflow yields ±Inf, which field readers then reject.
		f, err := n.Float64()
		return f, err == nil || errors.Is(err, strconv.ErrRange)
	}
	return 0, false
}

// TypeName names the JSON type of a decoded value for error messages.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	}
	if _, ok := toNumber(v); ok {
		return "number"
	}
	return fmt.Sprintf("%T", v)
}
