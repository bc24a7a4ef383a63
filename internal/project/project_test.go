package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asls/internal/typedb"
)

func writeFile(t *testing.T, dir, rel string, lines ...string) string {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(strings.Join(lines, "\n")), 0o600))
	return p
}

func TestFindConfigWalksUp(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, ConfigName, "[workspace]")
	nested := filepath.Join(dir, "Script", "Gameplay")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path, ok, err := FindConfig(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, cfg, path)

	root, ok, err := FindProjectRoot(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, dir, root)
}

func TestLoadWithoutConfig(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrNoConfig))
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ConfigName,
		`[workspace]`,
		`roots = ["Script", "Plugins/Shared"]`,
		`extensions = ["AS", "ash"]`,
		`exclude = ["Intermediate"]`,
		`jobs = 4`,
		``,
		`[engine]`,
		`host_types = ["engine.yaml"]`,
		``,
		`[completion]`,
		`max_items = 50`,
		`keywords = false`,
	)
	p, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, dir, p.Root)
	assert.Equal(t, []string{filepath.Join(dir, "Script"), filepath.Join(dir, "Plugins", "Shared")}, p.Roots)
	assert.Equal(t, []string{".as", ".ash"}, p.Config.Workspace.Extensions)
	assert.Equal(t, []string{filepath.Join(dir, "engine.yaml")}, p.HostTypes)
	assert.Equal(t, 4, p.Config.Workspace.Jobs)

	opts := p.CompleteOptions()
	assert.Equal(t, 50, opts.MaxItems)
	assert.False(t, opts.Keywords)
	assert.True(t, opts.Preselect)
	assert.True(t, opts.UnifiedCallSyntax)
}

func TestLoadConfigErrors(t *testing.T) {
	cases := []struct {
		name  string
		lines []string
		want  error
	}{
		{"missing workspace", []string{`[completion]`, `max_items = 5`}, ErrWorkspaceMissing},
		{"unknown key", []string{`[workspace]`, `root = ["Script"]`}, ErrUnknownKey},
		{"escaping root", []string{`[workspace]`, `roots = ["../Other"]`}, ErrInvalidRoot},
		{"absolute root", []string{`[workspace]`, `roots = ["/abs"]`}, ErrInvalidRoot},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), ConfigName, tc.lines...)
			_, err := LoadFile(path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), err.Error())
		})
	}

	path := writeFile(t, t.TempDir(), ConfigName, `[workspace]`, `jobs = -1`)
	_, err := LoadFile(path)
	assert.ErrorContains(t, err, "jobs")

	path = writeFile(t, t.TempDir(), ConfigName, `[workspace`)
	_, err = LoadFile(path)
	assert.ErrorContains(t, err, "failed to parse TOML")
}

func TestHostTypes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "engine.yaml",
		`types:`,
		`  - name: AActor`,
		`    kind: class`,
		`    doc: Base of placeable objects.`,
		`    methods:`,
		`      - name: GetActorLocation`,
		`        return: FVector`,
		`    properties:`,
		`      - name: Tags`,
		`        type: TArray<FName>`,
		`  - name: ECollisionChannel`,
		`    kind: enum`,
		`    values: [WorldStatic, WorldDynamic]`,
		`  - name: FVector`,
		`    kind: struct`,
	)
	writeFile(t, dir, "empty.yaml")
	cfg := writeFile(t, dir, ConfigName,
		`[workspace]`,
		`[engine]`,
		`host_types = ["engine.yaml", "empty.yaml"]`,
	)
	p, err := LoadFile(cfg)
	require.NoError(t, err)

	db, err := p.NewDB()
	require.NoError(t, err)
	actor := db.GetType("AActor")
	require.NotNil(t, actor)
	assert.True(t, actor.Flags.Has(typedb.TypeHost))
	assert.Len(t, db.FindMethods(actor, "GetActorLocation"), 1)
	enum := db.GetType("ECollisionChannel")
	require.NotNil(t, enum)
	assert.True(t, enum.IsEnum())
	assert.NotNil(t, db.GetType("int"))
}

func TestHostTypesRejectUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.yaml",
		`types:`,
		`  - name: AActor`,
		`    parent: UObject`,
	)
	_, err := LoadHostTypes(path)
	assert.ErrorContains(t, err, "failed to parse YAML")

	path = writeFile(t, dir, "kind.yaml",
		`types:`,
		`  - name: AActor`,
		`    kind: interface`,
	)
	decls, err := LoadHostTypes(path)
	require.NoError(t, err)
	p, err := Default(dir)
	require.NoError(t, err)
	p.HostTypes = []string{path}
	_, err = p.NewDB()
	assert.True(t, errors.Is(err, typedb.ErrInvalidHostDecl))
	assert.Len(t, decls, 1)
}

func TestFilesAndWorkspace(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Script/Game/Player.as", "class APlayer {}")
	writeFile(t, dir, "Script/Intermediate/Gen.as", "class AGen {}")
	writeFile(t, dir, "Script/readme.md", "docs")
	cfg := writeFile(t, dir, ConfigName,
		`[workspace]`,
		`roots = ["Script"]`,
		`exclude = ["Intermediate"]`,
	)
	p, err := LoadFile(cfg)
	require.NoError(t, err)
	files, err := p.Files()
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "Script", "Game", "Player.as")}, files)

	ws, err := p.NewWorkspace()
	require.NoError(t, err)
	id, err := ws.Files().Load(files[0])
	require.NoError(t, err)
	assert.Equal(t, "Game.Player", ws.Files().Get(id).Name)
}

func TestDigestCombine(t *testing.T) {
	a := Digest{1}
	b := Digest{2}
	assert.NotEqual(t, Combine(a, b), Combine(b, a))
	assert.Equal(t, Combine(a, b), Combine(a, b))
	assert.Len(t, Combine(a).String(), 64)
	assert.Len(t, Combine(a).Short(), 12)
}
