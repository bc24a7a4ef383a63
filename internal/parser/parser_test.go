package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asls/internal/ast"
	"asls/internal/token"
)

func TestParseExpressionMemberChain(t *testing.T) {
	x, ok := ParseExpression("Owner.GetComponent().Location.", 0)
	require.True(t, ok)
	m, isMember := x.(*ast.Member)
	require.True(t, isMember)
	assert.Empty(t, m.Name)
	assert.Equal(t, uint32(30), m.NamePos)
	inner, isMember := m.Left.(*ast.Member)
	require.True(t, isMember)
	assert.Equal(t, "Location", inner.Name)
	call, isCall := inner.Left.(*ast.Call)
	require.True(t, isCall)
	assert.True(t, call.Closed)
}

func TestParseExpressionIncompleteTails(t *testing.T) {
	cases := []struct {
		src   string
		check func(t *testing.T, x ast.Expr)
	}{
		{"a + ", func(t *testing.T, x ast.Expr) {
			b := x.(*ast.Binary)
			assert.Equal(t, ast.OpAdd, b.Op)
			assert.Nil(t, b.Right)
		}},
		{"Foo(1, ", func(t *testing.T, x ast.Expr) {
			c := x.(*ast.Call)
			assert.False(t, c.Closed)
			require.Len(t, c.Args, 2)
			assert.Nil(t, c.Args[1].Value)
		}},
		{"Math::", func(t *testing.T, x ast.Expr) {
			na := x.(*ast.NamespaceAccess)
			assert.Empty(t, na.Name)
			assert.Equal(t, "Math", na.Left.(*ast.Ident).Name)
		}},
		{"x = ", func(t *testing.T, x ast.Expr) {
			a := x.(*ast.Assign)
			assert.Equal(t, token.Assign, a.Op)
			assert.Nil(t, a.Right)
		}},
		{"Cast<AActor>(Other).", func(t *testing.T, x ast.Expr) {
			m := x.(*ast.Member)
			c := m.Left.(*ast.Cast)
			assert.Equal(t, "AActor", c.Type.TypeName())
			assert.True(t, c.Closed)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			x, ok := ParseExpression(tc.src, 0)
			require.True(t, ok)
			tc.check(t, x)
		})
	}
}

func TestParseExpressionShiftAndGenerics(t *testing.T) {
	x, ok := ParseExpression("a >> 2", 0)
	require.True(t, ok)
	assert.Equal(t, ast.OpShr, x.(*ast.Binary).Op)

	x, ok = ParseExpression("a < b", 0)
	require.True(t, ok)
	assert.Equal(t, ast.OpLt, x.(*ast.Binary).Op)

	x, ok = ParseExpression("TArray<TArray<int>>()", 0)
	require.True(t, ok)
	tn := x.(*ast.Call).Fn.(*ast.TypeName)
	assert.Equal(t, "TArray<TArray<int>>", tn.Type.TypeName())
}

func TestParseExpressionNamedArgs(t *testing.T) {
	x, ok := ParseExpression("Spawn(Location = L, bForce = true)", 0)
	require.True(t, ok)
	c := x.(*ast.Call)
	require.Len(t, c.Args, 2)
	assert.Equal(t, "Location", c.Args[0].Name)
	assert.Equal(t, "bForce", c.Args[1].Name)
}

func TestParseExpressionRejectsTrailingGarbage(t *testing.T) {
	_, ok := ParseExpression("a b", 0)
	assert.False(t, ok)
	x, ok := ParseExpression("", 0)
	assert.Nil(t, x)
	assert.False(t, ok)
}

func TestParseStatementDeclarations(t *testing.T) {
	st, ok := ParseStatement("private const TArray<FName>& Names, Other = Make();", 0)
	require.True(t, ok)
	vd := st.(*ast.VarDecl)
	assert.Equal(t, ast.AccessPrivate, vd.Access)
	assert.True(t, vd.Type.Const)
	assert.Equal(t, ast.RefPlain, vd.Type.Ref)
	assert.Equal(t, "TArray<FName>", vd.Type.TypeName())
	require.Len(t, vd.Vars, 2)
	assert.Equal(t, "Names", vd.Vars[0].Name)
	assert.True(t, vd.Vars[1].HasInit)

	st, ok = ParseStatement("UPROPERTY(EditAnywhere, Category = \"Combat\") float Damage = 5.f", 0)
	require.True(t, ok)
	vd = st.(*ast.VarDecl)
	require.Len(t, vd.Specifiers, 1)
	assert.Equal(t, "UPROPERTY", vd.Specifiers[0].Macro)
	assert.True(t, vd.Specifiers[0].Has("editanywhere"))
	assert.Equal(t, `"Combat"`, vd.Specifiers[0].Args[1].Value)

	st, ok = ParseStatement("FVector V(1, 2, 3);", 0)
	require.True(t, ok)
	vd = st.(*ast.VarDecl)
	assert.IsType(t, &ast.Call{}, vd.Vars[0].Init)
}

func TestParseStatementFunctionHeader(t *testing.T) {
	st, ok := ParseStatement("int Add(int A, const FVector&in B = FVector(), float C = 1.0) const", 0)
	require.True(t, ok)
	fn := st.(*ast.FuncDecl)
	assert.Equal(t, "Add", fn.Name)
	assert.True(t, fn.Closed)
	assert.NotZero(t, fn.Flags&ast.FuncConst)
	require.Len(t, fn.Params, 3)
	assert.Equal(t, ast.RefIn, fn.Params[1].Type.Ref)
	assert.Equal(t, "FVector()", fn.Params[1].DefaultText)
	assert.Equal(t, "1.0", fn.Params[2].DefaultText)
}

func TestParseStatementKeywords(t *testing.T) {
	st, ok := ParseStatement("return Value + ", 0)
	require.True(t, ok)
	assert.IsType(t, &ast.Binary{}, st.(*ast.Return).X)

	st, ok = ParseStatement("case EState::", 0)
	require.True(t, ok)
	assert.IsType(t, &ast.NamespaceAccess{}, st.(*ast.Case).X)

	st, ok = ParseStatement("import Gameplay.Weapons", 0)
	require.True(t, ok)
	assert.Equal(t, "Gameplay.Weapons", st.(*ast.Import).Path)

	st, ok = ParseStatement("default Mesh.bVisible = false;", 0)
	require.True(t, ok)
	assert.IsType(t, &ast.Assign{}, st.(*ast.DefaultStmt).X)

	st, ok = ParseStatement("event void FOnHit(AActor Other, float Damage);", 0)
	require.True(t, ok)
	d := st.(*ast.DelegateDecl)
	assert.True(t, d.Event)
	assert.Equal(t, "FOnHit", d.Sig.Name)
	assert.Len(t, d.Sig.Params, 2)
}

func TestParseHeader(t *testing.T) {
	cd := ParseHeader("UCLASS(Abstract) class AMyActor : AActor", 0, "").(*ast.ClassDecl)
	assert.Equal(t, "AMyActor", cd.Name)
	assert.Equal(t, "AActor", cd.Super)
	assert.Equal(t, ast.ClassClass, cd.Kind)
	require.Len(t, cd.Specifiers, 1)
	assert.Equal(t, uint32(0), cd.Start)

	ns := ParseHeader("namespace Math", 0, "").(*ast.ClassDecl)
	assert.Equal(t, ast.ClassNamespace, ns.Kind)

	fn := ParseHeader("UFUNCTION(BlueprintOverride) void BeginPlay()", 0, "AMyActor").(*ast.FuncDecl)
	assert.Equal(t, "BeginPlay", fn.Name)
	assert.False(t, fn.IsConstructor())

	ctor := ParseHeader("FData(int InValue)", 0, "FData").(*ast.FuncDecl)
	assert.True(t, ctor.IsConstructor())
	assert.Nil(t, ParseHeader("FData(int InValue)", 0, "Other"))

	en := ParseHeader("UENUM() enum EState", 0, "").(*ast.EnumDecl)
	assert.Equal(t, "EState", en.Name)

	fe := ParseHeader("for (AActor Actor : Actors)", 0, "").(*ast.ForEach)
	assert.Equal(t, "Actor", fe.Name)
	assert.Equal(t, "AActor", fe.Type.TypeName())

	sw := ParseHeader("switch (State)", 0, "").(*ast.Control)
	assert.Equal(t, token.KwSwitch, sw.Keyword)
	assert.Equal(t, "State", sw.Cond.(*ast.Ident).Name)

	assert.Nil(t, ParseHeader("= {", 0, ""))
}

func TestCleanTypename(t *testing.T) {
	assert.Equal(t, "FVector", CleanTypename("const FVector&in"))
	assert.Equal(t, "TMap<FName,TArray<int>>", CleanTypename("TMap<FName, TArray<int>>&"))
	assert.Equal(t, "UObject", CleanTypename("UObject?"))
	assert.Equal(t, "", CleanTypename("  "))
}

func TestStripSpecifiers(t *testing.T) {
	src := "UCLASS(meta=(A, B)) class X"
	out, specs := StripSpecifiers(src, 0)
	require.Len(t, specs, 1)
	assert.Equal(t, "meta", specs[0].Args[0].Name)
	assert.Equal(t, "(A, B)", specs[0].Args[0].Value)
	assert.Len(t, out, len(src))
	assert.Equal(t, "class X", out[len(out)-7:])
}

func TestParseStatementBracelessControl(t *testing.T) {
	st, ok := ParseStatement("if (bDead) return;", 0)
	require.True(t, ok)
	ctl := st.(*ast.Control)
	assert.Equal(t, token.KwIf, ctl.Keyword)
	assert.IsType(t, &ast.Return{}, ctl.Body)

	st, ok = ParseStatement("for (AActor A : Actors) A.Destroy();", 0)
	require.True(t, ok)
	ctl = st.(*ast.Control)
	fe := ctl.Init.(*ast.ForEach)
	assert.Equal(t, "A", fe.Name)
	assert.IsType(t, &ast.ExprStmt{}, ctl.Body)
}

func TestParseStatementInitializerList(t *testing.T) {
	st, ok := ParseStatement("TArray<int> Values = {1, 2, {3}};", 0)
	require.True(t, ok)
	vd := st.(*ast.VarDecl)
	require.Len(t, vd.Vars, 1)
	list, isList := vd.Vars[0].Init.(*ast.InitList)
	require.True(t, isList)
	assert.True(t, list.Closed)
	require.Len(t, list.Elems, 3)
	assert.IsType(t, &ast.InitList{}, list.Elems[2])
}
