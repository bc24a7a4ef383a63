package typedb

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// FoldName returns the case-folded form of a symbol name used for
// case-insensitive matching.
func FoldName(s string) string {
	if isASCII(s) {
		return strings.ToLower(s)
	}
	// cases.Caser keeps state and is not safe to share
	return cases.Fold().String(norm.NFC.String(s))
}

// HasFoldedPrefix reports whether name starts with prefix ignoring case.
func HasFoldedPrefix(name, prefix string) bool {
	if prefix == "" {
		return true
	}
	return strings.HasPrefix(FoldName(name), FoldName(prefix))
}

// prefixKey is the two-character folded index key of name.
func prefixKey(name string) string {
	f := FoldName(name)
	n := 0
	for i := range f {
		if n == 2 {
			return f[:i]
		}
		n++
	}
	return f
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
