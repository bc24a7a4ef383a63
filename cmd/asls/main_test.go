package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asls/internal/source"
)

func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"asls.toml": strings.Join([]string{
			`[workspace]`,
			`roots = ["Script"]`,
		}, "\n"),
		"Script/Lib.as": "class Foo { int Score; void Reset() {} }",
		"Script/Main.as": strings.Join([]string{
			"void Run()",
			"{",
			"    Foo f;",
			"    f.Score = 1;",
			"    f.",
			"}",
		}, "\n"),
	}
	for rel, text := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(text), 0o600))
	}
	return dir
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--color", "off", "--ui", "off"}, args...))
	require.NoError(t, root.ExecuteContext(context.Background()), out.String())
	return out.String()
}

func TestParsePos(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.SetVirtual("M.as", "int A;\nint B;\n"))

	off, err := parsePos(f, "9")
	require.NoError(t, err)
	assert.Equal(t, uint32(9), off)

	off, err = parsePos(f, "2:5")
	require.NoError(t, err)
	assert.Equal(t, uint32(11), off)

	for _, bad := range []string{"x", "0:1", "1:0", "1:x", "999"} {
		_, err := parsePos(f, bad)
		assert.Error(t, err, bad)
	}
}

func TestCompleteCommand(t *testing.T) {
	dir := writeProject(t)
	mainFile := filepath.Join(dir, "Script", "Main.as")

	out := run(t, "complete", mainFile, "5:7")
	assert.Contains(t, out, "Score")
	assert.Contains(t, out, "Reset")

	out = run(t, "complete", mainFile, "5:7", "--json")
	var list struct {
		Items []struct {
			Label string `json:"label"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.NotEmpty(t, list.Items)
}

func TestDefinitionCommand(t *testing.T) {
	dir := writeProject(t)
	out := run(t, "definition", filepath.Join(dir, "Script", "Main.as"), "3:5")
	assert.Equal(t, "Script/Lib.as:1:7\n", out)
}

func TestRenameCommandWrites(t *testing.T) {
	dir := writeProject(t)
	lib := filepath.Join(dir, "Script", "Lib.as")
	out := run(t, "rename", lib, "1:17", "Points", "--write")
	assert.Contains(t, out, "2 edits written to 2 files")

	data, err := os.ReadFile(lib)
	require.NoError(t, err)
	assert.Equal(t, "class Foo { int Points; void Reset() {} }", string(data))
	data, err = os.ReadFile(filepath.Join(dir, "Script", "Main.as"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "f.Points = 1;")
}

func TestIndexCommand(t *testing.T) {
	dir := writeProject(t)
	out := run(t, "index", dir, "--json")
	var summary indexSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 2, summary.Modules)
	assert.GreaterOrEqual(t, summary.Types, 1)
	assert.Len(t, summary.Digest, 12)
	assert.Empty(t, summary.Cycles)
}

func TestVersionCommand(t *testing.T) {
	out := run(t, "version", "--format", "json")
	var payload versionPayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, "asls", payload.Tool)
	assert.NotEmpty(t, payload.Version)
}
