package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asls/internal/source"
	"asls/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Kind)
	}
	return out
}

func TestTokenizeDeclaration(t *testing.T) {
	toks := Tokenize("class Foo : Bar { int Score; }", 0)
	assert.Equal(t, []token.Kind{
		token.KwClass, token.Ident, token.Colon, token.Ident, token.LBrace,
		token.Ident, token.Ident, token.Semicolon, token.RBrace, token.EOF,
	}, kinds(toks))
	assert.Equal(t, "Foo", toks[1].Text)
	assert.Equal(t, uint32(6), toks[1].Start)
	assert.Equal(t, uint32(9), toks[1].End)
}

func TestTokenizeBaseOffset(t *testing.T) {
	toks := Tokenize("a.b", 100)
	require.Len(t, toks, 4)
	assert.Equal(t, uint32(100), toks[0].Start)
	assert.Equal(t, uint32(102), toks[2].Start)
	assert.Equal(t, uint32(103), toks[3].Start)
}

func TestNestedGenericsCloseWithSeparateGt(t *testing.T) {
	toks := Tokenize("TArray<TArray<int>> x;", 0)
	assert.Equal(t, []token.Kind{
		token.Ident, token.Lt, token.Ident, token.Lt, token.Ident, token.Gt, token.Gt,
		token.Ident, token.Semicolon, token.EOF,
	}, kinds(toks))
}

func TestTriviaAndLiterals(t *testing.T) {
	src := strings.Join([]string{
		"#if EDITOR",
		"  // comment",
		"x = n\"Name\" + 1.5f + 0x1F + 'c'; /* block */",
		"#endif",
	}, "\n")
	toks := Tokenize(src, 0)
	assert.Equal(t, []token.Kind{
		token.Ident, token.Assign, token.StringLit, token.Plus, token.FloatLit,
		token.Plus, token.IntLit, token.Plus, token.CharLit, token.Semicolon, token.EOF,
	}, kinds(toks))
	assert.True(t, toks[0].NewlineBefore)
	assert.False(t, toks[1].NewlineBefore)
	assert.Equal(t, `n"Name"`, toks[2].Text)
}

func TestUnterminatedStringStopsAtLineEnd(t *testing.T) {
	toks := Tokenize("s = \"abc\nnext", 0)
	require.Len(t, toks, 5)
	assert.Equal(t, token.StringLit, toks[2].Kind)
	assert.Equal(t, `"abc`, toks[2].Text)
	assert.Equal(t, "next", toks[3].Text)
}

type collectReporter struct{ kinds []string }

func (r *collectReporter) Report(kind string, _ source.Span, _ string) {
	r.kinds = append(r.kinds, kind)
}

func TestLexerReportsButContinues(t *testing.T) {
	rep := &collectReporter{}
	lx := New("a $ b", Options{Reporter: rep})
	var got []token.Kind
	for tok := lx.Next(); tok.Kind != token.EOF; tok = lx.Next() {
		got = append(got, tok.Kind)
	}
	assert.Equal(t, []token.Kind{token.Ident, token.Invalid, token.Ident}, got)
	assert.Equal(t, []string{"UnknownChar"}, rep.kinds)
}

func TestKeepComments(t *testing.T) {
	lx := New("// doc\nint x;", Options{KeepComments: true})
	first := lx.Next()
	assert.Equal(t, token.Invalid, first.Kind)
	assert.Equal(t, "// doc", first.Text)
	assert.Equal(t, token.Ident, lx.Next().Kind)
}

func TestIgnoreTable(t *testing.T) {
	src := "a = \"x;y\"; // tail\nb = '}';\n#define Z {\nc /* { */ = 1;"
	tbl := BuildIgnoreTable(src, 0)
	require.Len(t, tbl.Ranges, 5)
	assert.Equal(t, RangeString, tbl.Ranges[0].Kind)
	assert.Equal(t, RangeComment, tbl.Ranges[1].Kind)
	assert.True(t, tbl.Ranges[1].Open)
	assert.Equal(t, RangeChar, tbl.Ranges[2].Kind)
	assert.Equal(t, RangePreprocessor, tbl.Ranges[3].Kind)

	semi := uint32(strings.Index(src, "x;y") + 1)
	assert.True(t, tbl.Contains(semi))
	assert.False(t, tbl.Contains(0))

	commentEnd := tbl.Ranges[1].End
	assert.True(t, tbl.CursorInside(commentEnd), "caret at end of line comment")
	assert.False(t, tbl.CursorInside(tbl.Ranges[0].Start), "caret before opening quote")
	assert.False(t, tbl.CursorInside(tbl.Ranges[0].End), "caret after closing quote")

	assert.Equal(t, tbl.Ranges[0].Start, tbl.Skip(tbl.Ranges[0].End))
	assert.Equal(t, uint32(1), tbl.Skip(1))
}

func TestIgnoreTableBlockComment(t *testing.T) {
	src := "c /* { */ = 1;"
	tbl := BuildIgnoreTable(src, 10)
	require.Len(t, tbl.Ranges, 1)
	assert.Equal(t, uint32(12), tbl.Ranges[0].Start)
	assert.Equal(t, uint32(19), tbl.Ranges[0].End)
	assert.False(t, tbl.Ranges[0].Open)
	stripped := tbl.Strip(src, 10)
	assert.Equal(t, "c         = 1;", stripped)
}

func TestIsIdentifier(t *testing.T) {
	assert.True(t, IsIdentifier("Foo_1"))
	assert.False(t, IsIdentifier("1Foo"))
	assert.False(t, IsIdentifier("a.b"))
	assert.False(t, IsIdentifier(""))
}

func TestFloatSuffixAfterDot(t *testing.T) {
	toks := Tokenize("5.f + 2.Max", 0)
	assert.Equal(t, token.FloatLit, toks[0].Kind)
	assert.Equal(t, "5.f", toks[0].Text)
	assert.Equal(t, token.IntLit, toks[2].Kind)
	assert.Equal(t, token.Dot, toks[3].Kind)
}
