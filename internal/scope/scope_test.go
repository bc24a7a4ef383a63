package scope

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asls/internal/ast"
	"asls/internal/diag"
	"asls/internal/source"
	"asls/internal/token"
)

func src(lines ...string) string {
	return strings.Join(lines, "\n")
}

func findScope(t *testing.T, tree *Tree, kind Kind, name string) *Scope {
	t.Helper()
	var found *Scope
	tree.Walk(func(s *Scope) bool {
		if s.Kind == kind && s.Name == name {
			found = s
			return false
		}
		return true
	})
	require.NotNil(t, found, "scope %s %q not found", kind, name)
	return found
}

func findVar(t *testing.T, s *Scope, name string) Variable {
	t.Helper()
	for _, v := range s.Vars {
		if v.Name == name {
			return v
		}
	}
	t.Fatalf("variable %q not found in %s scope", name, s.Kind)
	return Variable{}
}

// checkNesting asserts children are source-ordered, non-overlapping and
// strictly inside their parent.
func checkNesting(t *testing.T, tree *Tree, id ID) {
	t.Helper()
	s := tree.Get(id)
	ps, pe := s.Range()
	var prevEnd uint32
	for i, cid := range s.Children {
		c := tree.Get(cid)
		cs, ce := c.Range()
		assert.GreaterOrEqual(t, cs, ps)
		assert.LessOrEqual(t, ce, pe)
		assert.GreaterOrEqual(t, c.Start, s.Start)
		assert.LessOrEqual(t, c.End, s.End)
		if i > 0 {
			assert.GreaterOrEqual(t, cs, prevEnd, "siblings overlap")
		}
		prevEnd = ce
		assert.Equal(t, id, c.Parent)
		checkNesting(t, tree, cid)
	}
}

func TestScopeRangesCoverTextOnce(t *testing.T) {
	text := src(
		"namespace Outer",
		"{",
		"    class A { void F() { if (x) { y(); } else { z(); } } }",
		"    struct S { int V; }",
		"}",
		"void G() { for (;;) { } }",
	)
	tree := ParseModule(text)
	root := tree.RootScope()
	assert.Equal(t, uint32(0), root.DeclStart)
	assert.Equal(t, uint32(len(text)), root.End)
	checkNesting(t, tree, tree.Root)

	// every byte belongs to exactly one innermost scope range or to the root
	counts := make([]int, len(text))
	tree.Walk(func(s *Scope) bool {
		if s.ID == tree.Root {
			return true
		}
		start, end := s.Range()
		for off := start; off < end && int(off) < len(text); off++ {
			counts[off]++
		}
		return true
	})
	for off, c := range counts {
		depth := len(tree.Chain(innermostByRange(tree, uint32(off)))) - 1
		assert.Equal(t, depth, c, "offset %d", off)
	}
	assert.Equal(t, 9, tree.Len())
}

func innermostByRange(tree *Tree, off uint32) ID {
	best := tree.Root
	tree.Walk(func(s *Scope) bool {
		start, end := s.Range()
		if off >= start && off < end {
			best = s.ID
		}
		return true
	})
	return best
}

func TestClassRegistrationShape(t *testing.T) {
	tree := ParseModule("class Foo : Bar { int Score; void Reset() {} }")
	foo := findScope(t, tree, KindClass, "Foo")
	assert.Equal(t, "Bar", foo.Class().Super)
	v := findVar(t, foo, "Score")
	assert.Equal(t, "int", v.Type)
	assert.True(t, v.Flags.Has(VarMember))
	reset := findScope(t, tree, KindFunction, "Reset")
	assert.Equal(t, foo.ID, reset.Parent)
	assert.Equal(t, "void", reset.Func().Return.TypeName())
	assert.Equal(t, 0, tree.Diags.Len())
}

func TestDeclarationClassification(t *testing.T) {
	text := src(
		"UCLASS()",
		"class AMyActor : AActor",
		"{",
		"    UPROPERTY(EditAnywhere)",
		"    private float Health = 100.f, Armor;",
		"    AMyActor() { }",
		"    UFUNCTION()",
		"    int Compute(int A, float B = 2.0) const { int Local = A; return Local; }",
		"}",
		"struct FData { FData(int X) {} }",
		"enum EState { Idle, Running }",
		"weird stuff here { }",
	)
	tree := ParseModule(text)

	actor := findScope(t, tree, KindClass, "AMyActor")
	require.Len(t, actor.Specifiers, 1)
	assert.Equal(t, "UCLASS", actor.Specifiers[0].Macro)
	health := findVar(t, actor, "Health")
	assert.True(t, health.Flags.Has(VarPrivate))
	require.Len(t, health.Specifiers, 1)
	armor := findVar(t, actor, "Armor")
	assert.Equal(t, "float", armor.Type)

	findScope(t, tree, KindConstructor, "AMyActor")
	findScope(t, tree, KindConstructor, "FData")

	compute := findScope(t, tree, KindFunction, "Compute")
	a := findVar(t, compute, "A")
	assert.True(t, a.Flags.Has(VarArgument))
	assert.Equal(t, "2.0", findVar(t, compute, "B").Default)
	assert.True(t, findVar(t, compute, "Local").Flags.Has(VarLocal))

	findScope(t, tree, KindEnum, "EState")

	other := findScope(t, tree, KindOther, "")
	assert.Equal(t, "weird stuff here", other.CleanedDecl)
	assert.Equal(t, 1, tree.Diags.Count(diag.ParseMiss))
}

func TestControlBlocks(t *testing.T) {
	text := src(
		"void F(TArray<AActor> Actors, EState State)",
		"{",
		"    for (AActor Actor : Actors) { Actor.Tick(); }",
		"    for (int i = 0; i < 3; ++i) { }",
		"    switch (State) { case EState::Idle: break; }",
		"    if (true) DoThing();",
		"}",
	)
	tree := ParseModule(text)
	fn := findScope(t, tree, KindFunction, "F")
	require.Len(t, fn.Children, 3)

	loop := tree.Get(fn.Children[0])
	assert.Equal(t, token.KwFor, loop.Control)
	v := findVar(t, loop, "Actor")
	assert.True(t, v.Flags.Has(VarLoop))
	assert.Equal(t, "AActor", v.Type)

	classic := tree.Get(fn.Children[1])
	findVar(t, classic, "i")

	sw := tree.Get(fn.Children[2])
	assert.Equal(t, token.KwSwitch, sw.Control)
	assert.Equal(t, "State", sw.Discriminant.(*ast.Ident).Name)
	assert.Equal(t, 0, tree.Diags.Count(diag.ParseMiss))
}

func TestGlobalStatements(t *testing.T) {
	text := src(
		"import Gameplay.Weapons;",
		"// Fired when hit.",
		"event void FOnHit(AActor Other);",
		"delegate bool FFilter(int Value);",
		"const int MaxPlayers = 4;",
		"TArray<int> Values = {1, 2, 3};",
	)
	tree := ParseModule(text)
	require.Len(t, tree.Imports, 1)
	assert.Equal(t, "Gameplay.Weapons", tree.Imports[0].Module)

	root := tree.RootScope()
	require.Len(t, root.Delegates, 2)
	assert.True(t, root.Delegates[0].Event)
	assert.Equal(t, "Fired when hit.", root.Delegates[0].Doc)
	assert.False(t, root.Delegates[1].Event)

	mp := findVar(t, root, "MaxPlayers")
	assert.True(t, mp.Flags.Has(VarGlobal))
	assert.True(t, mp.Flags.Has(VarConst))
	findVar(t, root, "Values")
	assert.Empty(t, root.Children, "initializer braces are not scopes")
}

func TestDocumentation(t *testing.T) {
	text := src(
		"/**",
		" * Player pawn.",
		" * Handles input.",
		" */",
		"class APlayer",
		"{",
		"    /// Current score",
		"    int Score;",
		"",
		"    // detached comment",
		"",
		"    int Lives;",
		"}",
		"enum EColor",
		"{",
		"    // Pure red",
		"    Red,",
		"    Green, // Pure green",
		"    Blue = 4",
		"}",
	)
	tree := ParseModule(text)
	player := findScope(t, tree, KindClass, "APlayer")
	assert.Equal(t, "Player pawn.\nHandles input.", player.Doc)
	assert.Equal(t, "Current score", findVar(t, player, "Score").Doc)
	assert.Empty(t, findVar(t, player, "Lives").Doc)

	color := findScope(t, tree, KindEnum, "EColor")
	require.Len(t, color.EnumValues, 3)
	assert.Equal(t, "Pure red", color.EnumValues[0].Doc)
	assert.Equal(t, "Pure green", color.EnumValues[1].Doc)
	assert.Equal(t, "Blue", color.EnumValues[2].Name)
	assert.Equal(t, "4", color.EnumValues[2].Value)
	assert.Empty(t, color.EnumValues[2].Doc)
}

func TestTolerance(t *testing.T) {
	text := src(
		"}",
		"class A {",
		"    void F() {",
		"        string s = \"{ not a brace\"; // }",
		"        x.",
	)
	tree := ParseModule(text)
	assert.Equal(t, 1, tree.Diags.Count(diag.ParseStrayBrace))
	a := findScope(t, tree, KindClass, "A")
	assert.False(t, a.Closed)
	assert.Equal(t, uint32(len(text)), a.End)
	f := findScope(t, tree, KindFunction, "F")
	assert.Equal(t, uint32(len(text)), f.End)
	findVar(t, f, "s")

	off := uint32(strings.Index(text, "x."))
	assert.Equal(t, f.ID, tree.ScopeAt(off))
	assert.Equal(t, a.ID, tree.EnclosingType(tree.ScopeAt(off)))
	assert.Equal(t, f.ID, tree.EnclosingFunction(tree.ScopeAt(off)))
	assert.Equal(t, tree.Root, tree.ScopeAt(0))
}

func TestNamespacePathAndStatementAt(t *testing.T) {
	text := "namespace A { namespace B { void F() { int X = 1; } } }"
	tree := ParseModule(text)
	off := uint32(strings.Index(text, "X ="))
	id := tree.ScopeAt(off)
	assert.Equal(t, []string{"A", "B"}, tree.NamespacePath(id))
	st := tree.StatementAt(id, off)
	require.NotNil(t, st)
	assert.IsType(t, &ast.VarDecl{}, st.Node)
	assert.NotNil(t, tree.FindType("B"))
	assert.Nil(t, tree.FindType("C"))
}

func TestNormalizeDoc(t *testing.T) {
	assert.Equal(t, "hello", NormalizeDoc("/// hello"))
	assert.Equal(t, "hello", NormalizeDoc("//! hello"))
	assert.Equal(t, "a\nb", NormalizeDoc("/* a\n * b */"))
}

func TestLexicalNotes(t *testing.T) {
	tree := ParseModuleWith(src(
		"class A {",
		"    FString S = \"open;",
		"}",
		"/* trailing",
	), Options{Module: 3})
	assert.Equal(t, 1, tree.Diags.Count(diag.LexUnterminatedString))
	assert.Equal(t, 1, tree.Diags.Count(diag.LexUnterminatedBlock))
	for _, d := range tree.Diags.Items() {
		assert.Equal(t, source.ModuleID(3), d.Primary.Module)
	}
}
