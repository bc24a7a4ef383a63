package complete

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asls/internal/source"
	"asls/internal/typedb"
	"asls/internal/workspace"
)

const cursor = "|"

func newResolver(t *testing.T) (*workspace.Workspace, *Resolver) {
	t.Helper()
	db := typedb.New()
	require.NoError(t, db.AddBuiltins())
	ws := workspace.New(source.NewFileSetWithBase("Script"), db)
	return ws, New(ws, DefaultOptions())
}

// open installs text with the cursor marker removed and returns the
// module and the marker offset.
func open(t *testing.T, ws *workspace.Workspace, path, text string) (source.ModuleID, uint32) {
	t.Helper()
	i := strings.Index(text, cursor)
	require.GreaterOrEqual(t, i, 0, "missing cursor marker")
	mod := ws.UpdateModule(path, text[:i]+text[i+1:])
	require.NotNil(t, mod)
	return mod.ID, uint32(i)
}

func labels(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Label)
	}
	return out
}

func indexOf(list []string, s string) int {
	for i, x := range list {
		if x == s {
			return i
		}
	}
	return -1
}

const hierarchy = "class Bar { void BarThing() {} private int Secret; }\n" +
	"class Foo : Bar { int Score; void Reset() {} }\n" +
	"class Other { private int Hidden; protected int Guarded; int Open; }\n"

func TestMemberCompletion(t *testing.T) {
	ws, r := newResolver(t)
	mod, off := open(t, ws, "Script/Game.as", hierarchy+"void Test() { Foo f; f.| }")

	ctx := r.Resolve(mod, off)
	require.NotNil(t, ctx)
	assert.Equal(t, KindMember, ctx.Kind)
	require.NotNil(t, ctx.PriorType)
	assert.Equal(t, "Foo", ctx.PriorType.Name)

	got := labels(r.Complete(mod, off))
	assert.Contains(t, got, "Score")
	assert.Contains(t, got, "Reset")
	assert.Contains(t, got, "BarThing")
	assert.NotContains(t, got, "Secret")
	assert.NotContains(t, got, "Hidden")
	assert.NotContains(t, got, "Foo", "constructors are not members")
	assert.Less(t, indexOf(got, "Score"), indexOf(got, "BarThing"), "own members rank before inherited ones")
}

func TestMemberVisibility(t *testing.T) {
	ws, r := newResolver(t)
	mod, off := open(t, ws, "Script/Game.as", hierarchy+
		"class Foo2 : Foo { void Run() { Other o; o.| } }")
	got := labels(r.Complete(mod, off))
	assert.Contains(t, got, "Open")
	assert.NotContains(t, got, "Hidden")
	assert.NotContains(t, got, "Guarded")

	mod, off = open(t, ws, "Script/Own.as", "class Mine { private int Hidden; void Run() { Mine m; m.| } }")
	got = labels(r.Complete(mod, off))
	assert.Contains(t, got, "Hidden")
}

func TestScopeCompletionPrefix(t *testing.T) {
	ws, r := newResolver(t)
	decls := "class Foo {}\nclass Food {}\nclass Bar {}\n"

	for _, prefix := range []string{"Fo", "fo"} {
		mod, off := open(t, ws, "Script/Prefix.as", decls+"void Test() { "+prefix+"| }")
		got := labels(r.Complete(mod, off))
		assert.Contains(t, got, "Foo", prefix)
		assert.Contains(t, got, "Food", prefix)
		assert.NotContains(t, got, "Bar", prefix)
	}

	mod, off := open(t, ws, "Script/Prefix.as", decls+"void Test() { Zzq| }")
	assert.Empty(t, r.Complete(mod, off))
}

func TestLocalsRankFirst(t *testing.T) {
	ws, r := newResolver(t)
	mod, off := open(t, ws, "Script/Locals.as", "void Test(int Count) { int Counter = 0; Cou| }")
	got := labels(r.Complete(mod, off))
	require.GreaterOrEqual(t, len(got), 2)
	assert.Equal(t, []string{"Count", "Counter"}, got[:2])
}

func TestLocalsDeclaredLaterAreHidden(t *testing.T) {
	ws, r := newResolver(t)
	mod, off := open(t, ws, "Script/Later.as", "void Test() { Val| ; int Value = 1; }")
	assert.NotContains(t, labels(r.Complete(mod, off)), "Value")
}

func TestEnumValuesKeepDeclarationOrder(t *testing.T) {
	ws, r := newResolver(t)
	mod, off := open(t, ws, "Script/Enum.as", "enum EMode { Walk, Idle, Run }\nvoid Test() { EMode::| }")
	ctx := r.Resolve(mod, off)
	require.NotNil(t, ctx)
	assert.Equal(t, KindNamespace, ctx.Kind)
	assert.Equal(t, []string{"Walk", "Idle", "Run"}, labels(r.Complete(mod, off)))
}

func TestExpectedEnumValuesRankFirst(t *testing.T) {
	ws, r := newResolver(t)
	mod, off := open(t, ws, "Script/Expected.as", "enum EMode { Walk, Idle }\nvoid Test() { EMode Mode = | }")
	ctx := r.Resolve(mod, off)
	require.NotNil(t, ctx)
	assert.Equal(t, "EMode", ctx.Expected)

	items := r.Complete(mod, off)
	require.GreaterOrEqual(t, len(items), 2)
	assert.Equal(t, "EMode::Walk", items[0].Label)
	assert.Equal(t, "EMode::Idle", items[1].Label)
	assert.Equal(t, ItemEnumMember, items[0].Kind)
	assert.False(t, items[0].Preselect, "several items match the expected type")
}

func TestNamespaceCompletion(t *testing.T) {
	ws, r := newResolver(t)
	mod, off := open(t, ws, "Script/Ns.as", "namespace Math\n{\n"+
		"    float Half(float X) { return X / 2; }\n"+
		"    namespace Inner { int Depth; }\n"+
		"}\nvoid Test() { Math::| }")
	items := r.Complete(mod, off)
	got := labels(items)
	assert.Contains(t, got, "Half")
	assert.Contains(t, got, "Inner")
	assert.NotContains(t, got, "Depth")
	for _, it := range items {
		if it.Label == "Half" {
			assert.Equal(t, ItemFunction, it.Kind)
			assert.Equal(t, "float Half(float X)", it.Detail)
		}
	}
}

func TestSpecifierCompletion(t *testing.T) {
	ws, r := newResolver(t)
	mod, off := open(t, ws, "Script/Spec.as", "class AUnit { UPROPERTY(EditAnywhere, Blue|) int Health; }")
	ctx := r.Resolve(mod, off)
	require.NotNil(t, ctx)
	require.Equal(t, KindSpecifier, ctx.Kind)
	assert.Equal(t, "UPROPERTY", ctx.Macro)
	assert.Equal(t, []string{"EditAnywhere"}, ctx.MacroArgs)

	got := labels(r.Complete(mod, off))
	assert.Contains(t, got, "BlueprintReadWrite")
	assert.Contains(t, got, "BlueprintReadOnly")
	assert.NotContains(t, got, "EditAnywhere")
	assert.NotContains(t, got, "BlueprintCallable", "function specifiers do not apply to properties")
}

func TestNewNameSuggestions(t *testing.T) {
	assert.Equal(t, []string{"PlayerController", "Controller"}, suggestNames("APlayerController"))
	assert.Equal(t, []string{"Actors"}, suggestNames("TArray<AActor>"))
	assert.Equal(t, []string{"Vector"}, suggestNames("const FVector&"))
	assert.Equal(t, []string{"Entries"}, suggestNames("TSet<FEntry>"))
	assert.Nil(t, suggestNames("int"))

	ws, r := newResolver(t)
	mod, off := open(t, ws, "Script/Names.as", "class AEnemyPawn {}\nvoid Test() { AEnemyPawn | }")
	ctx := r.Resolve(mod, off)
	require.NotNil(t, ctx)
	assert.Equal(t, KindNewName, ctx.Kind)
	assert.Equal(t, []string{"EnemyPawn", "Pawn"}, labels(r.Complete(mod, off)))
}

func TestCompletionInsideCommentIsEmpty(t *testing.T) {
	ws, r := newResolver(t)
	mod, off := open(t, ws, "Script/Comment.as", "class Foo {}\n// Fo| \nvoid Test() {}")
	assert.Nil(t, r.Complete(mod, off))
}

func TestMaxItems(t *testing.T) {
	db := typedb.New()
	require.NoError(t, db.AddBuiltins())
	ws := workspace.New(source.NewFileSetWithBase("Script"), db)
	opts := DefaultOptions()
	opts.MaxItems = 2
	r := New(ws, opts)
	mod, off := open(t, ws, "Script/Max.as", "class Foo {}\nclass Food {}\nclass Fold {}\nvoid Test() { Fo| }")
	assert.Len(t, r.Complete(mod, off), 2)
}

func TestPreselect(t *testing.T) {
	items := []Item{
		{Label: "Score", bucket: bucketLocal},
		{Label: "Scores", bucket: bucketLocal},
	}
	preselect(items, "Score")
	assert.True(t, items[0].Preselect)
	assert.False(t, items[1].Preselect)

	items = []Item{
		{Label: "EMode::Walk", bucket: bucketExpected},
		{Label: "Walk", bucket: bucketLocal},
	}
	preselect(items, "")
	assert.True(t, items[0].Preselect)
}

const pawn = "class AActor { void Tick() {} }\nclass APawn : AActor { float Speed; }\n"

func TestAutoLocalTakesInitializerType(t *testing.T) {
	ws, r := newResolver(t)
	mod, off := open(t, ws, "Script/Auto.as", pawn+"void Test() { APawn p; auto q = p; q.| }")
	ctx := r.Resolve(mod, off)
	require.NotNil(t, ctx)
	assert.Equal(t, KindMember, ctx.Kind)
	require.NotNil(t, ctx.PriorType)
	assert.Equal(t, "APawn", ctx.PriorType.Name)
	got := labels(r.Complete(mod, off))
	assert.Contains(t, got, "Speed")
	assert.Contains(t, got, "Tick")

	mod, off = open(t, ws, "Script/Auto.as", pawn+"void Test() { const auto& q = APawn(); q.| }")
	assert.Contains(t, labels(r.Complete(mod, off)), "Speed")
}

func TestAutoLoopVariableTakesElementType(t *testing.T) {
	ws, r := newResolver(t)
	mod, off := open(t, ws, "Script/Loop.as", pawn+
		"void Test() { TArray<APawn> arr; for (auto p : arr) { p.| } }")
	ctx := r.Resolve(mod, off)
	require.NotNil(t, ctx)
	assert.Equal(t, KindMember, ctx.Kind)
	require.NotNil(t, ctx.PriorType)
	assert.Equal(t, "APawn", ctx.PriorType.Name)
	assert.Contains(t, labels(r.Complete(mod, off)), "Speed")
}

func TestAutoSelfReferenceTerminates(t *testing.T) {
	ws, r := newResolver(t)
	mod, off := open(t, ws, "Script/Self.as", "void Test() { auto q = q; q.| }")
	ctx := r.Resolve(mod, off)
	require.NotNil(t, ctx)
	assert.NotEqual(t, KindMember, ctx.Kind)
}

func TestVariableHiddenInOwnInitializer(t *testing.T) {
	ws, r := newResolver(t)
	mod, off := open(t, ws, "Script/Init.as", "class Foo {}\nvoid Test() { Foo a; Foo c = | }")
	got := labels(r.Complete(mod, off))
	assert.Contains(t, got, "a")
	assert.NotContains(t, got, "c")

	mod, off = open(t, ws, "Script/Init.as", "void Test() { int a = 1, b = | }")
	got = labels(r.Complete(mod, off))
	assert.Contains(t, got, "a")
	assert.NotContains(t, got, "b")

	mod, off = open(t, ws, "Script/Init.as", "void Test() { for (int i = 0; i < 3; i++) { | } }")
	assert.Contains(t, labels(r.Complete(mod, off)), "i")
}

const ucsDecls = pawn +
	"void Kill(AActor A) {}\n" +
	"mixin void Boost(AActor A, float Amount) {}\n" +
	"void Unrelated(int X) {}\n"

func TestUnifiedCallSyntax(t *testing.T) {
	tests := []struct {
		name    string
		ucs     bool
		want    []string
		notWant []string
	}{
		{name: "enabled", ucs: true, want: []string{"Speed", "Kill", "Boost"}, notWant: []string{"Unrelated"}},
		{name: "disabled", ucs: false, want: []string{"Speed", "Boost"}, notWant: []string{"Kill", "Unrelated"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := typedb.New()
			require.NoError(t, db.AddBuiltins())
			ws := workspace.New(source.NewFileSetWithBase("Script"), db)
			opts := DefaultOptions()
			opts.UnifiedCallSyntax = tt.ucs
			r := New(ws, opts)
			mod, off := open(t, ws, "Script/Ucs.as", ucsDecls+"void Test() { APawn a; a.| }")
			got := labels(r.Complete(mod, off))
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, got, w)
			}
		})
	}
}

func keywordLabels(items []Item) []string {
	var out []string
	for _, it := range items {
		if it.Kind == ItemKeyword {
			out = append(out, it.Label)
		}
	}
	return out
}

func TestContextKeywords(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    []string
		notWant []string
	}{
		{
			name:    "global",
			text:    "class Foo {}\n|",
			want:    []string{"class", "struct", "enum", "namespace", "import", "UCLASS"},
			notWant: []string{"return", "break", "private"},
		},
		{
			name:    "class body",
			text:    "class Foo { | }",
			want:    []string{"private", "protected", "override", "UPROPERTY", "UFUNCTION"},
			notWant: []string{"import", "return", "this"},
		},
		{
			name:    "function",
			text:    "void Test() { | }",
			want:    []string{"return", "if", "for", "switch", "nullptr", "Cast"},
			notWant: []string{"break", "continue", "case", "this", "class"},
		},
		{
			name:    "method",
			text:    "class Foo { void Run() { | } }",
			want:    []string{"return", "this", "Super"},
			notWant: []string{"break", "private"},
		},
		{
			name:    "loop",
			text:    "void Test() { for (int i = 0; i < 3; i++) { | } }",
			want:    []string{"break", "continue", "return"},
			notWant: []string{"case", "fallthrough"},
		},
		{
			name:    "switch",
			text:    "void Test(int X) { switch (X) { | } }",
			want:    []string{"case", "default", "break", "fallthrough"},
			notWant: []string{"continue"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws, r := newResolver(t)
			mod, off := open(t, ws, "Script/Keywords.as", tt.text)
			got := keywordLabels(r.Complete(mod, off))
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, got, w)
			}
		})
	}
}
