package complete

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asls/internal/workspace"
)

const overloads = "class Foo\n{\n" +
	"    /** Adds one value. */\n" +
	"    void Add(int A) {}\n" +
	"    void Add(int A, float B) {}\n" +
	"}\n"

func TestSignatureHelpPicksOverloadByArity(t *testing.T) {
	ws, r := newResolver(t)
	mod, off := open(t, ws, "Script/Sig.as", overloads+"void Test() { Foo f; f.Add(1, | }")

	help := r.Signature(mod, off)
	require.NotNil(t, help)
	require.Len(t, help.Signatures, 2)
	assert.Equal(t, "void Add(int A)", help.Signatures[0].Label)
	assert.Equal(t, []string{"int A", "float B"}, help.Signatures[1].Params)
	assert.Equal(t, 1, help.Active)
	assert.Equal(t, 1, help.ActiveParam)
}

func TestSignatureHelpFirstArgument(t *testing.T) {
	ws, r := newResolver(t)
	mod, off := open(t, ws, "Script/Sig.as", overloads+"void Test() { Foo f; f.Add(| }")

	help := r.Signature(mod, off)
	require.NotNil(t, help)
	assert.Equal(t, 0, help.Active, "ties keep declaration order")
	assert.Equal(t, 0, help.ActiveParam)
}

func TestSignatureHelpNamedArgument(t *testing.T) {
	ws, r := newResolver(t)
	mod, off := open(t, ws, "Script/Sig.as", overloads+"void Test() { Foo f; f.Add(B = 2.0, | }")

	help := r.Signature(mod, off)
	require.NotNil(t, help)
	assert.Equal(t, 1, help.Active)
}

func TestSignatureHelpConstructor(t *testing.T) {
	ws, r := newResolver(t)
	mod, off := open(t, ws, "Script/Ctor.as",
		"struct FSized { FSized(int N) {} int N; }\nvoid Test() { FSized S = FSized(| }")
	help := r.Signature(mod, off)
	require.NotNil(t, help)
	require.Len(t, help.Signatures, 1)
	assert.Equal(t, "FSized(int N)", help.Signatures[0].Label)
}

func TestSignatureHelpOutsideCall(t *testing.T) {
	ws, r := newResolver(t)
	mod, off := open(t, ws, "Script/Sig.as", overloads+"void Test() { Foo f; f.Add(1); | }")
	assert.Nil(t, r.Signature(mod, off))
}

func TestScoreCompat(t *testing.T) {
	ws, _ := newResolver(t)
	ws.UpdateModule("Script/Types.as", "class Bar {}\nclass Foo : Bar {}\n")
	ws.Read(func(v workspace.View) {
		res := &resolution{db: v.DB()}
		assert.Equal(t, 3, res.compat("Foo", "Foo"))
		assert.Equal(t, 2, res.compat("Foo", "Bar"))
		assert.Equal(t, 1, res.compat("int", "float"))
		assert.Equal(t, -2, res.compat("float", "int"))
		assert.Equal(t, -2, res.compat("Bar", "Foo"))
		assert.Equal(t, 0, res.compat("", "Foo"))
	})
}

func TestHover(t *testing.T) {
	ws, r := newResolver(t)
	mod, off := open(t, ws, "Script/Hover.as", overloads+"void Test() { Foo f; f.Ad|d(1); }")

	h := r.Hover(mod, off)
	require.NotNil(t, h)
	assert.Contains(t, h.Text, "void Foo::Add(int A)")
	assert.Contains(t, h.Text, "(+1 overloads)")
	assert.Contains(t, h.Text, "Adds one value.")
	assert.Equal(t, "Add", ws.Module(mod).Text[h.Span.Start:h.Span.End])

	mod, off = open(t, ws, "Script/Hover.as", overloads+"void Test() { Foo f|f; }")
	h = r.Hover(mod, off)
	require.NotNil(t, h)
	assert.Equal(t, "(local) Foo ff", h.Text)

	mod, off = open(t, ws, "Script/Hover.as", overloads+"void Test() { F|oo f; }")
	h = r.Hover(mod, off)
	require.NotNil(t, h)
	assert.Equal(t, "class Foo", h.Text)

	mod, off = open(t, ws, "Script/Hover.as", overloads+"void Test() { | }")
	assert.Nil(t, r.Hover(mod, off))
}

func TestDefinition(t *testing.T) {
	ws, r := newResolver(t)
	ws.UpdateModule("Script/Foo.as", "class Foo { int Score; }")
	mod, off := open(t, ws, "Script/Use.as", "void Use(Foo F) { F.Sc|ore = 2; }")

	spans := r.Definition(mod, off)
	require.Len(t, spans, 1)
	def := ws.Module(spans[0].Module)
	require.NotNil(t, def)
	assert.Equal(t, "Foo", def.Name)
	assert.Equal(t, "Score", def.Text[spans[0].Start:spans[0].End])

	mod, off = open(t, ws, "Script/Use.as", "void Use(Foo F) { F|.Score = 2; }")
	spans = r.Definition(mod, off)
	require.Len(t, spans, 1)
	assert.Equal(t, mod, spans[0].Module)
	assert.Equal(t, "F", ws.Module(mod).Text[spans[0].Start:spans[0].End])

	mod, off = open(t, ws, "Script/Use.as", "void Use() { in|t X = 1; }")
	assert.Empty(t, r.Definition(mod, off), "primitives have no declaration")
}

func TestReferencesAndRename(t *testing.T) {
	ws, r := newResolver(t)
	foo := ws.UpdateModule("Script/Foo.as", "class Foo { int Score; void Add() { Score += 1; } }")
	require.NotNil(t, foo)
	mod, off := open(t, ws, "Script/User.as", "void Use(Foo F) { F.Sc|ore = 2; int Scores = F.Score; }")

	task, err := r.References(mod, off)
	require.NoError(t, err)
	occ, err := task.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, occ, 4)
	decls := 0
	for _, o := range occ {
		if o.Declaration {
			decls++
			assert.Equal(t, foo.ID, o.Span.Module)
		}
	}
	assert.Equal(t, 1, decls)

	rn, err := r.Rename(mod, off, "Points")
	require.NoError(t, err)
	_, err = rn.Run(context.Background())
	require.NoError(t, err)
	edits, err := rn.Edits()
	require.NoError(t, err)
	assert.Len(t, edits, 4)
	for _, e := range edits {
		assert.Equal(t, "Points", e.NewText)
	}
}

func TestReferencesKeepLocalsApart(t *testing.T) {
	ws, r := newResolver(t)
	mod, off := open(t, ws, "Script/Locals.as",
		"void A() { int N = 1; N += 1; }\nvoid B() { int N = 2; N|; }")
	task, err := r.References(mod, off)
	require.NoError(t, err)
	occ, err := task.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, occ, 2)
	for _, o := range occ {
		assert.Greater(t, o.Span.Start, uint32(30), "only the locals of B")
	}
}

func TestRenameErrors(t *testing.T) {
	ws, r := newResolver(t)
	mod, off := open(t, ws, "Script/Errs.as", "void Use() { in|t X = 1; }")
	_, err := r.Rename(mod, off, "Number")
	assert.True(t, errors.Is(err, ErrReadOnlySymbol))

	mod, off = open(t, ws, "Script/Errs.as", "void Use() { | }")
	_, err = r.References(mod, off)
	assert.True(t, errors.Is(err, ErrNoSymbol))

	mod, off = open(t, ws, "Script/Errs.as", "void Use() { int X|X = 1; }")
	_, err = r.Rename(mod, off, "class")
	assert.True(t, errors.Is(err, workspace.ErrInvalidName))
}
