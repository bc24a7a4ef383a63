package complete

import (
	"slices"

	"asls/internal/lexer"
)

func isIdentByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c >= 0x80
}

// wordStart returns the start of the identifier ending at off.
func wordStart(text string, off uint32) uint32 {
	i := off
	for i > 0 && isIdentByte(text[i-1]) {
		i--
	}
	return i
}

// wordAt returns the bounds of the identifier touching off.
func wordAt(text string, off uint32) (start, end uint32) {
	end = off
	for int(end) < len(text) && isIdentByte(text[end]) {
		end++
	}
	return wordStart(text, off), end
}

// statementStart returns where the statement holding off begins: right
// after the nearest ';', '{' or '}' outside comments and literals, but not
// before lower.
func statementStart(text string, ign *lexer.IgnoreTable, lower, off uint32) uint32 {
	i := off
	for i > lower {
		if j := ign.Skip(i); j != i {
			i = j
			continue
		}
		switch text[i-1] {
		case ';', '{', '}':
			return i
		}
		i--
	}
	return lower
}

// splitPoints scans text[start:end] backward and returns the offsets where
// a candidate expression may begin, leftmost first. Splits happen at
// separators and operators outside parentheses and brackets, and right
// after an unclosed '(' or '['. A '>' is taken as a generic argument list
// when a matching '<' follows it backward; otherwise it splits too.
func splitPoints(text string, ign *lexer.IgnoreTable, start, end uint32) []uint32 {
	var splits, angles []uint32
	depth, angle := 0, 0
	i := end
	for i > start {
		if j := ign.Skip(i); j != i {
			i = j
			continue
		}
		c := text[i-1]
		switch c {
		case ')', ']':
			depth++
		case '(', '[':
			if depth > 0 {
				depth--
			} else {
				splits = append(splits, i)
			}
		case '>':
			if depth == 0 {
				angle++
				angles = append(angles, i)
			}
		case '<':
			if depth == 0 {
				if angle > 0 {
					angle--
					angles = angles[:len(angles)-1]
				} else {
					splits = append(splits, i)
				}
			}
		case ',', '=', '+', '-', '*', '/', '%', '&', '|', '^', '!', '?', ':', '~', ';', '\n':
			if depth == 0 && angle == 0 {
				splits = append(splits, i)
			}
		}
		i--
	}
	splits = append(splits, angles...)
	splits = append(splits, start)
	slices.Sort(splits)
	return slices.Compact(splits)
}

// openParen finds the unclosed '(' enclosing off within the statement and
// returns its offset.
func openParen(text string, ign *lexer.IgnoreTable, start, off uint32) (uint32, bool) {
	depth := 0
	i := off
	for i > start {
		if j := ign.Skip(i); j != i {
			i = j
			continue
		}
		switch text[i-1] {
		case ')', ']':
			depth++
		case '[':
			if depth > 0 {
				depth--
			}
		case '(':
			if depth == 0 {
				return i - 1, true
			}
			depth--
		}
		i--
	}
	return 0, false
}

// identBefore returns the identifier ending at off, skipping blanks.
func identBefore(text string, off uint32) (string, uint32) {
	i := off
	for i > 0 && (text[i-1] == ' ' || text[i-1] == '\t') {
		i--
	}
	s := wordStart(text, i)
	return text[s:i], s
}
