package lexer

import (
	"sort"
)

// RangeKind tells what an ignored range holds.
type RangeKind uint8

const (
	RangeComment RangeKind = iota
	RangeString
	RangeChar
	RangePreprocessor
)

func (k RangeKind) String() string {
	switch k {
	case RangeComment:
		return "comment"
	case RangeString:
		return "string"
	case RangeChar:
		return "char"
	case RangePreprocessor:
		return "preprocessor"
	default:
		return "unknown"
	}
}

// IgnoreRange is a half-open byte range [Start, End) whose contents carry no
// structure. Open ranges run to a line end or EOF without a closing delimiter.
type IgnoreRange struct {
	Start uint32
	End   uint32
	Kind  RangeKind
	Open  bool
}

// IgnoreTable is a sorted, non-overlapping set of ignored ranges.
type IgnoreTable struct {
	Ranges []IgnoreRange
}

// BuildIgnoreTable finds comments, string and char literals and preprocessor
// lines in src. Offsets are shifted by base.
func BuildIgnoreTable(src string, base uint32) *IgnoreTable {
	lx := New(src, Options{Base: base})
	c := &lx.cursor
	tbl := &IgnoreTable{}
	add := func(start int, kind RangeKind, open bool) {
		tbl.Ranges = append(tbl.Ranges, IgnoreRange{
			Start: lx.abs(start),
			End:   lx.abs(c.Off),
			Kind:  kind,
			Open:  open,
		})
	}

	for !c.EOF() {
		start := c.Off
		b := c.Peek()
		switch {
		case b == '/' && c.PeekAt(1) == '/':
			lx.skipComment()
			add(start, RangeComment, true)
		case b == '/' && c.PeekAt(1) == '*':
			lx.skipComment()
			add(start, RangeComment, !hasSuffix(src[start:c.Off], "*/") || c.Off-start < 4)
		case b == '#' && atLineStart(src, c.Off):
			lx.skipPreprocessor()
			add(start, RangePreprocessor, true)
		case b == '"' || ((b == 'n' || b == 'f') && c.PeekAt(1) == '"' && !identBefore(src, start)):
			lx.scanString()
			add(start, RangeString, !closedString(src[start:c.Off]))
		case b == '\'' && !digitBefore(src, start):
			c.Off++
			closed := lx.scanQuoted('\'')
			add(start, RangeChar, !closed)
		case isIdentStartByte(b):
			for !c.EOF() && isIdentContinueByte(c.Peek()) {
				c.Off++
			}
		default:
			c.Off++
		}
	}
	return tbl
}

func hasSuffix(s, suf string) bool {
	return len(s) >= len(suf) && s[len(s)-len(suf):] == suf
}

func closedString(lit string) bool {
	if len(lit) > 0 && (lit[0] == 'n' || lit[0] == 'f') {
		lit = lit[1:]
	}
	if len(lit) >= 6 && lit[:3] == `"""` {
		return hasSuffix(lit, `"""`)
	}
	if len(lit) < 2 || lit[len(lit)-1] != '"' {
		return false
	}
	// an escaped quote is not a terminator
	bs := 0
	for i := len(lit) - 2; i >= 1 && lit[i] == '\\'; i-- {
		bs++
	}
	return bs%2 == 0
}

func identBefore(src string, off int) bool {
	return off > 0 && isIdentContinueByte(src[off-1])
}

func digitBefore(src string, off int) bool {
	return off > 0 && isHex(src[off-1]) && off+1 < len(src) && isDec(src[off+1])
}

func (t *IgnoreTable) find(off uint32) int {
	return sort.Search(len(t.Ranges), func(i int) bool { return t.Ranges[i].End > off })
}

// At returns the range containing off, using half-open bounds.
func (t *IgnoreTable) At(off uint32) (IgnoreRange, bool) {
	if t == nil {
		return IgnoreRange{}, false
	}
	i := t.find(off)
	if i < len(t.Ranges) && t.Ranges[i].Start <= off {
		return t.Ranges[i], true
	}
	return IgnoreRange{}, false
}

// Contains reports whether off lies inside an ignored range.
func (t *IgnoreTable) Contains(off uint32) bool {
	_, ok := t.At(off)
	return ok
}

// CursorInside reports whether a caret placed at off sits inside a comment
// or literal. A caret right after an open range (end of a line comment) is
// still inside it; a caret right before a range start is not.
func (t *IgnoreTable) CursorInside(off uint32) bool {
	if t == nil {
		return false
	}
	i := t.find(off)
	if i < len(t.Ranges) {
		if r := t.Ranges[i]; r.Start < off {
			return true
		}
	}
	if i > 0 {
		if r := t.Ranges[i-1]; r.Open && r.End == off {
			return true
		}
	}
	return false
}

// Skip returns the start of the ignored range ending at or covering off-1,
// letting backward scans jump over literals; otherwise it returns off.
func (t *IgnoreTable) Skip(off uint32) uint32 {
	if off == 0 {
		return off
	}
	if r, ok := t.At(off - 1); ok {
		return r.Start
	}
	return off
}

// Strip returns src with every ignored byte inside [base, base+len(src))
// replaced by a space, keeping newlines so offsets stay valid.
func (t *IgnoreTable) Strip(src string, base uint32) string {
	if t == nil || len(t.Ranges) == 0 {
		return src
	}
	buf := []byte(src)
	for _, r := range t.Ranges {
		for off := r.Start; off < r.End; off++ {
			if off < base {
				continue
			}
			i := int(off - base)
			if i >= len(buf) {
				break
			}
			if buf[i] != '\n' {
				buf[i] = ' '
			}
		}
	}
	return string(buf)
}
