package gamespec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"
)

// Document is a serialized World. Field order is the GameSpec key order.
type Document struct {
	Version  string   `json:"version" yaml:"version"`
	Metadata *Object  `json:"metadata" yaml:"metadata"`
	Config   *Object  `json:"config" yaml:"config"`
	Entities []Entity `json:"entities" yaml:"entities"`
	Systems  []string `json:"systems" yaml:"systems"`
}

type Entity struct {
	Name       string   `json:"name" yaml:"name"`
	Components *Object  `json:"components" yaml:"components"`
	Tags       []string `json:"tags" yaml:"tags"`
}

// Entity returns the entity named name.
func (d *Document) Entity(name string) (Entity, bool) {
	for _, e := range d.Entities {
		if e.Name == name {
			return e, true
		}
	}
	return Entity{}, false
}

// MarshalJSON encodes doc compactly, or indented by two spaces with a
// trailing newline.
func MarshalJSON(doc *Document, indent bool) ([]byte, error) {
	if !indent {
		return json.Marshal(doc)
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func MarshalYAML(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeJSON parses GameSpec text into the generic value Decode consumes.
// Numbers are kept as json.Number.
func DecodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if err := dec.Decode(new(any)); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode json: trailing data after document")
	}
	return v, nil
}

// DecodeYAML parses a YAML GameSpec into the same generic shape as DecodeJSON.
func DecodeYAML(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return normalizeYAML(v), nil
}

// normalizeYAML turns the map[any]any that YAML produces for non-string keys
// into map[string]any.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = normalizeYAML(e)
		}
		return out
	case map[string]any:
		for k, e := range t {
			t[k] = normalizeYAML(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = normalizeYAML(e)
		}
		return t
	}
	return v
}

// Generic re-parses doc into the generic value form.
func (d *Document) Generic() (any, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return DecodeJSON(b)
}

// Fingerprint hashes the compact JSON form of doc. Two documents have equal
// fingerprints when their serializations are byte-identical.
func Fingerprint(doc *Document) (uint64, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64(b), nil
}
