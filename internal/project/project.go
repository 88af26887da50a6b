// Package project reads and writes the GameSpec file of a project directory.
package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/promptplay/gamecore/internal/gamespec"
	"github.com/promptplay/gamecore/internal/world"
)

const (
	SpecJSON = "game.json"
	SpecYAML = "game.yaml"
)

var ErrSpecNotFound = errors.New("game spec not found")

// Project is a directory holding a GameSpec file.
type Project struct {
	Dir    string
	Indent bool
	log    *zap.Logger
}

func Open(dir string, log *zap.Logger) *Project {
	if log == nil {
		log = zap.NewNop()
	}
	return &Project{Dir: dir, Indent: true, log: log}
}

// SpecPath returns the spec file in use: game.json, else game.yaml.
func (p *Project) SpecPath() (string, error) {
	for _, name := range []string{SpecJSON, SpecYAML} {
		path := filepath.Join(p.Dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", path, err)
		}
	}
	return "", fmt.Errorf("%w in %s", ErrSpecNotFound, p.Dir)
}

// ReadFile decodes a GameSpec file into its generic value. The format
// follows the extension; anything other than .yaml/.yml is JSON.
func ReadFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec: %w", err)
	}
	if isYAML(path) {
		return gamespec.DecodeYAML(data)
	}
	return gamespec.DecodeJSON(data)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Load reads the project's spec into a fresh World.
func (p *Project) Load() (*world.World, gamespec.Report, error) {
	path, err := p.SpecPath()
	if err != nil {
		return nil, gamespec.Report{}, err
	}
	return LoadFile(path, p.log)
}

// LoadFile reads a single spec file into a fresh World.
func LoadFile(path string, log *zap.Logger) (*world.World, gamespec.Report, error) {
	v, err := ReadFile(path)
	if err != nil {
		return nil, gamespec.Report{}, err
	}
	w := world.New(log)
	rep, err := gamespec.NewDecoder(log).Decode(w, v)
	if err != nil {
		return nil, rep, fmt.Errorf("load %s: %w", path, err)
	}
	return w, rep, nil
}

// Save serializes w into the project's spec file. The existing format is
// kept; a project without a spec gets game.json.
func (p *Project) Save(w *world.World) (string, error) {
	path, err := p.SpecPath()
	if errors.Is(err, ErrSpecNotFound) {
		path = filepath.Join(p.Dir, SpecJSON)
	} else if err != nil {
		return "", err
	}
	doc, err := gamespec.Serialize(w)
	if err != nil {
		return "", err
	}
	if err := WriteFile(path, doc, p.Indent); err != nil {
		return "", err
	}
	p.log.Debug("spec saved", zap.String("path", path), zap.Int("entities", len(doc.Entities)))
	return path, nil
}

// WriteFile encodes doc by extension and replaces path atomically: the bytes
// go to a temp file in the same directory which is then renamed over path.
func WriteFile(path string, doc *gamespec.Document, indent bool) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = gamespec.MarshalYAML(doc)
	} else {
		data, err = gamespec.MarshalJSON(doc, indent)
	}
	if err != nil {
		return fmt.Errorf("encode spec: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename spec: %w", err)
	}
	return nil
}
