package workspace

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asls/internal/source"
)

// matchAll accepts every identifier and marks the first one of the
// declaring module as the declaration.
func matchAll(decl source.ModuleID) Matcher {
	return func(v View, mod *Module, off uint32) (bool, bool) {
		return true, mod.ID == decl && off == uint32(strings.Index(mod.Text, "Score"))
	}
}

func referencesWorkspace(t *testing.T) (*Workspace, *Module, *Module) {
	t.Helper()
	ws := newWorkspace(t)
	decl := ws.UpdateModule("Script/Foo.as", "class Foo { int Score; void Add() { Score += 1; } }")
	user := ws.UpdateModule("Script/User.as", "void Use(Foo F) { F.Score = 2; int Scores = F.Score; }")
	return ws, decl, user
}

func TestFindReferences(t *testing.T) {
	ws, decl, user := referencesWorkspace(t)
	task, err := ws.FindReferences(decl.ID, "Score", matchAll(decl.ID))
	require.NoError(t, err)
	assert.Equal(t, 2, task.Remaining())

	occ, err := task.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, occ, 4)
	assert.Equal(t, decl.ID, occ[0].Span.Module)
	assert.True(t, occ[0].Declaration)
	assert.False(t, occ[1].Declaration)
	assert.Equal(t, user.ID, occ[2].Span.Module)
	for _, o := range occ {
		text := ws.Module(o.Span.Module).Text
		assert.Equal(t, "Score", text[o.Span.Start:o.Span.End])
	}

	_, err = ws.FindReferences(source.ModuleID(99), "Score", matchAll(decl.ID))
	assert.True(t, errors.Is(err, ErrUnknownModule))
}

func TestFindReferencesStaleOnOriginEdit(t *testing.T) {
	ws, decl, _ := referencesWorkspace(t)
	task, err := ws.FindReferences(decl.ID, "Score", matchAll(decl.ID))
	require.NoError(t, err)
	require.NoError(t, task.Step())

	ws.UpdateModule("Script/Foo.as", "class Foo { int Score; }")
	assert.True(t, errors.Is(task.Step(), ErrStaleRequest))
	assert.True(t, task.Stale())
	assert.True(t, task.Done())
	_, err = task.Results()
	assert.True(t, errors.Is(err, ErrStaleRequest))
}

func TestFindReferencesRequeuesEditedModule(t *testing.T) {
	ws, decl, user := referencesWorkspace(t)
	task, err := ws.FindReferences(decl.ID, "Score", matchAll(decl.ID))
	require.NoError(t, err)
	require.NoError(t, task.Step())
	require.NoError(t, task.Step())
	require.True(t, task.Done())

	ws.UpdateModule("Script/User.as", "void Use(Foo F) { F.Score = 3; }")
	require.NoError(t, task.Step())
	assert.True(t, task.Done())

	occ, err := task.Results()
	require.NoError(t, err)
	var inUser int
	for _, o := range occ {
		if o.Span.Module == user.ID {
			inUser++
		}
	}
	assert.Equal(t, 1, inUser)
}

func TestFindReferencesScansModulesInstalledLater(t *testing.T) {
	ws, decl, _ := referencesWorkspace(t)
	task, err := ws.FindReferences(decl.ID, "Score", matchAll(decl.ID))
	require.NoError(t, err)
	require.NoError(t, task.Step())

	late := ws.UpdateModule("Script/Late.as", "void Late(Foo F) { F.Score = 4; }")
	occ, err := task.Run(context.Background())
	require.NoError(t, err)
	var inLate int
	for _, o := range occ {
		if o.Span.Module == late.ID {
			inLate++
		}
	}
	assert.Equal(t, 1, inLate)

	// a module installed after the last step reopens the task
	require.True(t, task.Done())
	ws.UpdateModule("Script/Later.as", "int Score = 0;")
	assert.False(t, task.Done())
	assert.Equal(t, 1, task.Remaining())
}

func TestRename(t *testing.T) {
	ws, decl, _ := referencesWorkspace(t)

	for _, bad := range []string{"", "1Score", "Score Points", "class", "return"} {
		_, err := ws.Rename(decl.ID, "Score", bad, matchAll(decl.ID))
		assert.Truef(t, errors.Is(err, ErrInvalidName), "name %q", bad)
	}

	task, err := ws.Rename(decl.ID, "Score", "Points", matchAll(decl.ID))
	require.NoError(t, err)
	_, err = task.Run(context.Background())
	require.NoError(t, err)
	edits, err := task.Edits()
	require.NoError(t, err)
	require.Len(t, edits, 4)
	for _, e := range edits {
		assert.Equal(t, "Points", e.NewText)
	}
}

func TestReferenceRunHonorsContext(t *testing.T) {
	ws, decl, _ := referencesWorkspace(t)
	task, err := ws.FindReferences(decl.ID, "Score", matchAll(decl.ID))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = task.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}
