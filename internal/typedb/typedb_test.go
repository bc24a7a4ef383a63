package typedb

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asls/internal/source"
)

func class(name, super string, module source.ModuleID) *Type {
	t := NewType(name, TypeClass, module)
	t.Super = super
	return t
}

func prop(name, typ string, module source.ModuleID) *Property {
	return &Property{Name: name, Type: typ, Module: module}
}

func method(name, ret string, module source.ModuleID, args ...Arg) *Method {
	return &Method{Name: name, Return: ret, Args: args, Module: module}
}

func mustAdd(t *testing.T, db *DB, typ *Type) TypeID {
	t.Helper()
	id, ok := db.AddType(typ)
	require.True(t, ok, "AddType(%s)", typ.Name)
	return id
}

func arrayTemplate() *Type {
	arr := NewType("Array", TypeStruct|TypeTemplate|TypeHost, source.NoModule)
	arr.TemplateParams = []string{"T"}
	arr.Methods = []*Method{
		method("Add", "void", source.NoModule, Arg{Name: "Item", Type: "const T&in"}),
		method("Last", "T&", source.NoModule),
		method("Copy", "Array<T>", source.NoModule),
	}
	arr.Properties = []*Property{prop("First", "T", source.NoModule)}
	return arr
}

func TestInheritanceChain(t *testing.T) {
	db := New()
	c := class("C", "", 1)
	c.Properties = []*Property{prop("Health", "float", 1)}
	mustAdd(t, db, c)
	mustAdd(t, db, class("B", "C", 1))
	a := class("A", "B", 1)
	mustAdd(t, db, a)

	assert.True(t, db.InheritsFrom("A", "C"))
	assert.True(t, db.InheritsFrom("A", "A"))
	assert.False(t, db.InheritsFrom("C", "A"))
	assert.False(t, db.InheritsFrom("Missing", "C"))

	sym := db.FindFirstSymbol(db.GetType("A"), "Health")
	require.NotNil(t, sym)
	p, ok := sym.(*Property)
	require.True(t, ok)
	assert.Equal(t, "float", p.Type)
	assert.Equal(t, c.ID, p.Owner)
	assert.Nil(t, db.FindFirstSymbol(a, "Nope"))
}

func TestInheritanceCycleTerminates(t *testing.T) {
	db := New()
	mustAdd(t, db, class("X", "Y", 1))
	mustAdd(t, db, class("Y", "X", 1))
	assert.False(t, db.InheritsFrom("X", "Z"))
	assert.Nil(t, db.FindFirstSymbol(db.GetType("X"), "Anything"))
	assert.Len(t, db.Hierarchy(db.GetType("X")), 2)
}

func TestHostSuperFallback(t *testing.T) {
	db := New()
	require.NoError(t, db.AddHostTypes([]HostDecl{
		{Name: "UObject", Methods: []HostMethod{{Name: "GetName", Return: "FString", Flags: []string{"const"}}}},
		{Name: "AActor", Super: "UObject"},
	}))
	mustAdd(t, db, class("AMyActor", "AActor", 1))
	assert.True(t, db.InheritsFrom("AMyActor", "UObject"))
	m := db.FindMethods(db.GetType("AMyActor"), "GetName")
	require.Len(t, m, 1)
	assert.Equal(t, "FString GetName() const", m[0].Signature())
}

func TestTemplateInstantiation(t *testing.T) {
	db := New()
	mustAdd(t, db, arrayTemplate())

	first := db.GetType("Array<int>")
	require.NotNil(t, first)
	assert.Same(t, first, db.GetType("Array<int>"))
	assert.Same(t, first, db.GetType("Array< int >"))
	assert.True(t, first.Flags.Has(TypeInstance))
	assert.False(t, first.Flags.Has(TypeTemplate))
	assert.Equal(t, []string{"int"}, first.TemplateArgs)

	add := db.FindMethods(first, "Add")
	require.Len(t, add, 1)
	assert.Equal(t, "const int&in", add[0].Args[0].Type)
	assert.Equal(t, first.ID, add[0].Owner)

	nested := db.GetType("Array<Array<int>>")
	require.NotNil(t, nested)
	last := db.FindMethods(nested, "Last")
	require.Len(t, last, 1)
	assert.Equal(t, "Array<int>&", last[0].Return)
	cp := db.FindMethods(nested, "Copy")
	require.Len(t, cp, 1)
	assert.Equal(t, "Array<Array<int>>", cp[0].Return)
	assert.Equal(t, "Array<int>", db.FindFirstSymbol(nested, "First").(*Property).Type)

	// the base template is untouched
	assert.Equal(t, "T&", db.FindMethods(db.GetType("Array"), "Last")[0].Return)
	assert.Equal(t, 2, db.Stats().Instances)
}

func TestTemplateInstantiationFailures(t *testing.T) {
	db := New()
	mustAdd(t, db, arrayTemplate())
	mustAdd(t, db, class("Plain", "", 1))
	assert.Nil(t, db.GetType("Array<int,float>"))
	assert.Nil(t, db.GetType("Array<int"))
	assert.Nil(t, db.GetType("Plain<int>"))
	assert.Nil(t, db.GetType("Missing<int>"))
	assert.Nil(t, db.GetType("Missing"))
}

func TestTemplateInstantiationConcurrent(t *testing.T) {
	db := New()
	mustAdd(t, db, arrayTemplate())
	const workers = 16
	got := make([]*Type, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = db.GetType("Array<float>")
		}()
	}
	wg.Wait()
	require.NotNil(t, got[0])
	for _, g := range got {
		assert.Same(t, got[0], g)
	}
	assert.Equal(t, 1, db.Stats().Instances)
}

func TestRemoveTemplateDropsInstances(t *testing.T) {
	db := New()
	arr := arrayTemplate()
	arr.Flags &^= TypeHost
	arr.Module = 3
	mustAdd(t, db, arr)
	inst := db.GetType("Array<int>")
	require.NotNil(t, inst)
	db.RemoveTypesInModule(3)
	assert.Nil(t, db.GetType("Array"))
	assert.Nil(t, db.GetType("Array<int>"))
	assert.Nil(t, db.Lookup(inst.ID))
}

func namespaceFragment(module source.ModuleID, names ...string) *Type {
	ns := NewType("Gameplay", TypeNamespace, module)
	for _, n := range names {
		ns.Methods = append(ns.Methods, method(n, "void", module))
	}
	return ns
}

func TestMergeNamespaceIdempotent(t *testing.T) {
	db := New()
	db.MergeNamespaceToDB(namespaceFragment(1, "Spawn", "Despawn"), true)
	once := len(db.GetNamespace("Gameplay").Methods)
	db.MergeNamespaceToDB(namespaceFragment(1, "Spawn", "Despawn"), true)
	assert.Len(t, db.GetNamespace("Gameplay").Methods, once)
	db.MergeNamespaceToDB(namespaceFragment(1, "Spawn", "Despawn"), false)
	assert.Len(t, db.GetNamespace("Gameplay").Methods, once)
	assert.Equal(t, 2, once)
}

func TestMergeNamespaceOwnership(t *testing.T) {
	db := New()
	id := db.MergeNamespaceToDB(namespaceFragment(1, "Spawn"), true)
	ns := db.Lookup(id)
	assert.Equal(t, source.ModuleID(1), ns.Module)

	db.MergeNamespaceToDB(namespaceFragment(2, "Score"), true)
	assert.Equal(t, source.NoModule, ns.Module)
	assert.Len(t, ns.Methods, 2)

	// the same module replaces only its own members
	db.MergeNamespaceToDB(namespaceFragment(1, "Respawn"), true)
	names := make([]string, 0, len(ns.Methods))
	for _, m := range ns.Methods {
		names = append(names, m.Name)
	}
	assert.ElementsMatch(t, []string{"Score", "Respawn"}, names)

	db.RemoveTypesInModule(2)
	assert.Equal(t, source.ModuleID(1), ns.Module)
	require.Len(t, ns.Methods, 1)
	assert.Nil(t, db.FindFirstSymbol(ns, "Score"))

	db.RemoveTypesInModule(1)
	assert.Nil(t, db.GetNamespace("Gameplay"))
}

func TestMethodIDs(t *testing.T) {
	db := New()
	build := func(extra bool) *Type {
		c := class("Weapon", "", 7)
		c.Methods = []*Method{
			method("Fire", "void", 7),
			method("Fire", "void", 7, Arg{Name: "Power", Type: "float"}),
		}
		if extra {
			c.Methods = append(c.Methods, method("Reload", "void", 7))
		}
		return c
	}
	first := build(false)
	mustAdd(t, db, first)
	fire0, fire1 := first.Methods[0].ID, first.Methods[1].ID
	assert.NotZero(t, fire0)
	assert.NotEqual(t, fire0, fire1)

	db.RemoveTypesInModule(7)
	second := build(true)
	mustAdd(t, db, second)
	assert.Equal(t, fire0, second.Methods[0].ID)
	assert.Equal(t, fire1, second.Methods[1].ID)
	assert.Greater(t, second.Methods[2].ID, fire1)

	other := class("Shield", "", 8)
	other.Methods = []*Method{method("Fire", "void", 8)}
	mustAdd(t, db, other)
	assert.NotEqual(t, fire0, other.Methods[0].ID)
}

func TestSiblingSearch(t *testing.T) {
	db := New()
	base := class("UWidget", "", 1)
	base.Siblings = []string{"WidgetHelpers"}
	mustAdd(t, db, base)
	// unrelated types are never searched
	decoy := class("WidgetHelpersDecoy", "", 1)
	decoy.Properties = []*Property{prop("Decoy", "int", 1)}
	mustAdd(t, db, decoy)

	helpers := NewType("WidgetHelpers", TypeNamespace, 2)
	helpers.Methods = []*Method{method("Animate", "void", 2)}
	db.MergeNamespaceToDB(helpers, true)

	same := NewType("UWidget", TypeNamespace, 3)
	same.Methods = []*Method{method("Create", "UWidget", 3)}
	db.MergeNamespaceToDB(same, true)

	w := db.GetType("UWidget")
	assert.NotNil(t, db.FindFirstSymbol(w, "Animate"))
	assert.NotNil(t, db.FindFirstSymbol(w, "Create"))
	assert.Nil(t, db.FindFirstSymbol(w, "Decoy"))
	assert.NotNil(t, db.FindFirstSymbol(db.GetNamespace("UWidget"), "Animate"), "namespace counterpart links back")
}

func TestPrefixSearch(t *testing.T) {
	db := New()
	c := class("Pawn", "", 1)
	c.Properties = []*Property{prop("Score", "int", 1), prop("ÄrgerLevel", "int", 1)}
	c.Methods = []*Method{method("SetScore", "void", 1), method("scoreBoard", "void", 1)}
	mustAdd(t, db, c)

	names := func(syms []Symbol) []string {
		out := make([]string, 0, len(syms))
		for _, s := range syms {
			out = append(out, s.SymbolName())
		}
		return out
	}
	assert.Equal(t, []string{"Score", "scoreBoard"}, names(db.FindSymbolsWithPrefix(c, "SCO")))
	assert.ElementsMatch(t, []string{"Score", "SetScore", "scoreBoard"}, names(db.FindSymbolsWithPrefix(c, "s")))
	assert.Equal(t, []string{"ÄrgerLevel"}, names(db.FindSymbolsWithPrefix(c, "är")))
	assert.Empty(t, db.FindSymbolsWithPrefix(c, "xyz"))
	assert.Len(t, db.FindSymbolsWithPrefix(c, ""), 4)
}

func TestIsVisible(t *testing.T) {
	db := New()
	owner := class("Base", "", 1)
	owner.Properties = []*Property{
		{Name: "Secret", Type: "int", Flags: MemberPrivate, Module: 1},
		{Name: "Family", Type: "int", Flags: MemberProtected, Module: 1},
		{Name: "Open", Type: "int", Module: 1},
		{Name: "Tunable", Type: "int", Flags: MemberEditOnly, Module: 1},
		{Name: "Runtime", Type: "int", Flags: MemberNoEdit, Module: 1},
	}
	mustAdd(t, db, owner)
	mustAdd(t, db, class("Derived", "Base", 1))
	mustAdd(t, db, class("Stranger", "", 1))

	sym := func(name string) Symbol { return db.FindFirstSymbol(owner, name) }
	global := AccessContext{}
	assert.True(t, db.IsVisible(sym("Open"), global))
	assert.False(t, db.IsVisible(sym("Secret"), global))
	assert.False(t, db.IsVisible(sym("Family"), AccessContext{Using: "Stranger"}))
	assert.True(t, db.IsVisible(sym("Family"), AccessContext{Using: "Derived"}))
	assert.True(t, db.IsVisible(sym("Secret"), AccessContext{Using: "Base"}))

	assert.False(t, db.IsVisible(sym("Tunable"), global))
	assert.True(t, db.IsVisible(sym("Tunable"), AccessContext{Construction: true}))
	assert.True(t, db.IsVisible(sym("Runtime"), global))
	assert.False(t, db.IsVisible(sym("Runtime"), AccessContext{Construction: true}))
}

func TestAddTypeDuplicate(t *testing.T) {
	db := New()
	mustAdd(t, db, class("Foo", "", 1))
	_, ok := db.AddType(class("Foo", "", 2))
	assert.False(t, ok)
	// a namespace of the same name is a separate entry
	ns := NewType("Foo", TypeNamespace, 2)
	_, ok = db.AddType(ns)
	assert.True(t, ok)
	assert.NotNil(t, db.GetNamespace("Foo"))
	assert.Equal(t, TypeClass, db.GetType("Foo").Flags)
}

func TestShadowedTypeTakesOverFreedName(t *testing.T) {
	db := New()
	first := class("Foo", "", 1)
	first.Properties = []*Property{prop("X", "int", 1)}
	mustAdd(t, db, first)

	second := class("Foo", "", 2)
	second.Properties = []*Property{prop("Y", "int", 2)}
	third := class("Foo", "", 3)
	_, ok := db.AddType(second)
	assert.False(t, ok)
	_, ok = db.AddType(third)
	assert.False(t, ok)
	assert.Equal(t, []*Type{second}, db.ShadowedInModule(2))

	db.RemoveTypesInModule(1)
	foo := db.GetType("Foo")
	require.NotNil(t, foo)
	assert.Same(t, second, foo)
	assert.NotNil(t, db.FindFirstSymbol(foo, "Y"))
	assert.Empty(t, db.ShadowedInModule(2))
	assert.Equal(t, []*Type{third}, db.ShadowedInModule(3))

	// a module leaving drops its waiting declarations
	db.RemoveTypesInModule(3)
	db.RemoveTypesInModule(2)
	assert.Nil(t, db.GetType("Foo"))
}

func TestHostDecls(t *testing.T) {
	db := New()
	require.NoError(t, db.AddBuiltins())
	assert.True(t, db.GetType("int").Flags.Has(TypePrimitive))
	m := db.GetType("TMap<FName,TArray<int>>")
	require.NotNil(t, m)
	find := db.FindMethods(m, "Find")
	require.Len(t, find, 1)
	assert.Equal(t, "TArray<int>&out", find[0].Args[1].Type)

	require.NoError(t, db.AddHostTypes([]HostDecl{{Name: "ECollision", Kind: "enum", Values: []string{"None", "Query"}}}))
	query := db.FindFirstSymbol(db.GetType("ECollision"), "Query").(*Property)
	assert.Equal(t, "1", query.Value)
	assert.True(t, query.Flags.Has(MemberEnumValue))

	err := db.AddHostTypes([]HostDecl{{Name: "Odd", Kind: "union"}})
	assert.True(t, errors.Is(err, ErrInvalidHostDecl))
	err = db.AddHostTypes([]HostDecl{{Name: "Bad", Methods: []HostMethod{{Name: "F", Flags: []string{"sparkly"}}}}})
	assert.True(t, errors.Is(err, ErrInvalidHostDecl))
	err = db.AddHostTypes([]HostDecl{{Name: "int"}})
	assert.True(t, errors.Is(err, ErrDuplicateType))
}

func TestSnapshotDeterministic(t *testing.T) {
	build := func(db *DB) {
		c := class("Foo", "Bar", 4)
		c.Doc = "A foo."
		c.Properties = []*Property{prop("Score", "int", 4)}
		c.Methods = []*Method{method("Reset", "void", 4)}
		mustAdd(t, db, c)
		db.MergeNamespaceToDB(namespaceFragment(4, "Spawn"), true)
	}
	db := New()
	build(db)
	before, err := db.Snapshot(4).Digest()
	require.NoError(t, err)

	db.RemoveTypesInModule(4)
	assert.Empty(t, db.Snapshot(4).Types)
	build(db)
	after, err := db.Snapshot(4).Digest()
	require.NoError(t, err)
	assert.Equal(t, before, after)

	data, err := db.Snapshot(4).Encode()
	require.NoError(t, err)
	snap, err := DecodeSnapshot(data)
	require.NoError(t, err)
	require.Len(t, snap.Types, 2)
	assert.Equal(t, "Foo", snap.Types[0].Name)
	assert.Equal(t, "void Reset()", snap.Types[0].Methods[0].Signature)
}
