package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptplay/gamecore/internal/config"
)

const jumper = `{
  "version": "1.0",
  "metadata": {"title": "Jumper"},
  "entities": [
    {"name": "player", "components": {"transform": {"x": 100, "y": 400}, "velocity": {}}, "tags": ["player"]},
    {"name": "wall", "components": {"collider": {"type": "octagon"}}}
  ],
  "systems": ["physics"]
}`

func gamespecCmd(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv(config.EnvPath, "")
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeSpec(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := writeSpec(t, dir, "good.json", jumper)
	bad := writeSpec(t, dir, "bad.json", `{"version": "1.0", "entities": [{"name": 3}]}`)

	code, out, _ := gamespecCmd(t, "validate", good)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "ok   "+good+" (2 entities, 1 warnings)")
	assert.Contains(t, out, "unknown_value")

	code, out, stderr := gamespecCmd(t, "validate", good, bad)
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "FAIL "+bad)
	assert.Contains(t, stderr, "1 of 2 specs invalid")
}

func TestFmtIsCanonical(t *testing.T) {
	path := writeSpec(t, t.TempDir(), "game.json", jumper)
	code, first, _ := gamespecCmd(t, "fmt", path)
	require.Equal(t, 0, code)
	assert.True(t, strings.HasSuffix(first, "}\n"))

	code, _, _ = gamespecCmd(t, "fmt", "-w", path)
	require.Equal(t, 0, code)
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, string(written))

	code, second, _ := gamespecCmd(t, "fmt", path)
	require.Equal(t, 0, code)
	assert.Equal(t, first, second)
}

func TestConvertAndFingerprint(t *testing.T) {
	dir := t.TempDir()
	src := writeSpec(t, dir, "game.json", jumper)
	yml := filepath.Join(dir, "game.yaml")

	code, _, _ := gamespecCmd(t, "convert", src, yml)
	require.Equal(t, 0, code)
	data, err := os.ReadFile(yml)
	require.NoError(t, err)
	assert.Contains(t, string(data), "title: Jumper")

	code, out, _ := gamespecCmd(t, "fingerprint", src, yml)
	require.Equal(t, 0, code)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Fields(lines[0])[0], strings.Fields(lines[1])[0])
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	writeSpec(t, dir, "game.json", jumper)
	out := filepath.Join(dir, "index.html")

	code, _, _ := gamespecCmd(t, "export", "-title", "My Jumper", dir, out)
	require.Equal(t, 0, code)
	page, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(page), "<title>My Jumper</title>")
	assert.Contains(t, string(page), `id="game-spec"`)
}

func TestScript(t *testing.T) {
	dir := t.TempDir()
	script := writeSpec(t, dir, "build.lua", `
world.meta{title = "Scripted"}
local p = world.create("player")
world.add(p, "transform", {x = 10})
world.tag(p, "player")
`)
	out := filepath.Join(dir, "game.json")
	code, _, stderr := gamespecCmd(t, "script", script, out)
	require.Equal(t, 0, code, stderr)

	code, stdout, _ := gamespecCmd(t, "validate", out)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "(1 entities, 0 warnings)")
}

func TestUsageErrors(t *testing.T) {
	code, _, stderr := gamespecCmd(t)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "commands:")

	code, _, stderr = gamespecCmd(t, "explode")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, `unknown command "explode"`)

	code, _, stderr = gamespecCmd(t, "convert", "only-one")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "usage: gamespec convert")

	code, _, _ = gamespecCmd(t, "-profile", "disk", "validate", "x")
	assert.Equal(t, 2, code)

	code, _, stderr = gamespecCmd(t, "validate", filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "specs invalid")
}
