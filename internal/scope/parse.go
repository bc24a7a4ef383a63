package scope

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"asls/internal/diag"
	"asls/internal/lexer"
	"asls/internal/source"
	"asls/internal/token"
)

// Options configures ParseModuleWith.
type Options struct {
	// Module is stamped on diagnostic spans.
	Module source.ModuleID
}

// ParseModule splits text into a scope tree. It never fails: unrecognized
// declarations degrade to KindOther and are noted in Tree.Diags.
func ParseModule(text string) *Tree {
	return ParseModuleWith(text, Options{})
}

// ParseModuleWith is ParseModule with options.
func ParseModuleWith(text string, opts Options) *Tree {
	t := newTree(text)
	b := &builder{tree: t, opts: opts}
	t.Root = t.newScope(KindGlobal, NoID)
	root := t.Get(t.Root)
	root.Start = 0
	root.End = u32(len(text))
	root.Closed = true
	b.split(t.Root, 0, len(text))
	b.fill(t.Root)
	b.lexNotes()
	return t
}

// lexNotes records lexical problems of the whole module once.
func (b *builder) lexNotes() {
	rep := diag.LexerAdapter{Next: diag.NewDedupReporter(diag.BagReporter{Bag: b.tree.Diags})}
	lx := lexer.New(b.tree.Text, lexer.Options{Module: b.opts.Module, Reporter: rep})
	for tok := lx.Next(); tok.Kind != token.EOF; tok = lx.Next() {
	}
}

type builder struct {
	tree *Tree
	opts Options
}

func u32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("scope offset overflow: %w", err))
	}
	return v
}

func (b *builder) note(code diag.Code, start, end int, msg string) {
	b.tree.Diags.Add(diag.New(diag.SevInfo, code, source.Span{
		Module: b.opts.Module,
		Start:  u32(start),
		End:    u32(end),
	}, msg))
}

// split scans the interior [from, to) of scope id, creating a child for
// every top-level brace pair and recording the text between them as
// unscoped spans.
func (b *builder) split(id ID, from, to int) {
	text := b.tree.Text
	segStart := from
	lastTerm := from
	depth := 0
	for i := from; i < to; {
		if r, ok := b.tree.Ignore.At(u32(i)); ok {
			i = int(r.End)
			continue
		}
		switch text[i] {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		case ';':
			if depth == 0 {
				lastTerm = i + 1
			}
		case '}':
			// only reachable at the root: the closing brace of a child is
			// consumed together with the child
			b.note(diag.ParseStrayBrace, i, i+1, "'}' closes nothing")
			lastTerm = i + 1
		case '{':
			closeAt, closed := b.matchBrace(i, to)
			if depth > 0 || b.isInitializer(lastTerm, i) {
				if closed {
					i = closeAt + 1
				} else {
					i = to
				}
				continue
			}
			b.addUnscoped(id, segStart, lastTerm)
			child := b.tree.newScope(KindOther, id)
			cs := b.tree.Get(child)
			cs.DeclStart = u32(lastTerm)
			cs.Start = u32(i + 1)
			cs.End = u32(closeAt)
			cs.Closed = closed
			cs.DeclText = text[lastTerm:i]
			if !closed {
				b.note(diag.ParseUnclosedBrace, i, i+1, "'{' is never closed")
			}
			b.classify(child)
			b.split(child, i+1, closeAt)
			b.fill(child)
			if !closed {
				return
			}
			i = closeAt + 1
			segStart, lastTerm = i, i
			continue
		}
		i++
	}
	b.addUnscoped(id, segStart, to)
}

// matchBrace returns the offset of the '}' matching the '{' at open, or to
// when the input ends first.
func (b *builder) matchBrace(open, to int) (int, bool) {
	text := b.tree.Text
	depth := 0
	for i := open; i < to; {
		if r, ok := b.tree.Ignore.At(u32(i)); ok {
			i = int(r.End)
			continue
		}
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
		i++
	}
	return to, false
}

// isInitializer reports whether the '{' at brace opens a value such as
// "= {1, 2}" rather than a scope.
func (b *builder) isInitializer(from, brace int) bool {
	for i := brace - 1; i >= from; i-- {
		if b.tree.Ignore.Contains(u32(i)) {
			continue
		}
		switch c := b.tree.Text[i]; c {
		case ' ', '\t', '\r', '\n':
			continue
		case '=', ',', '(', '[':
			return true
		default:
			return false
		}
	}
	return false
}

func (b *builder) addUnscoped(id ID, from, to int) {
	if from >= to || strings.TrimSpace(b.tree.Ignore.Strip(b.tree.Text[from:to], u32(from))) == "" {
		return
	}
	s := b.tree.Get(id)
	s.Unscoped = append(s.Unscoped, Span{Start: u32(from), End: u32(to)})
}
