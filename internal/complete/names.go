package complete

import (
	"slices"
	"strings"
	"unicode"

	"asls/internal/parser"
	"asls/internal/typedb"
)

// containers hold many values; names for them are pluralized element
// names.
var containers = map[string]bool{
	"TArray": true,
	"TSet":   true,
	"TMap":   true,
}

// suggestNames proposes variable names for a value of the written type,
// best first.
func suggestNames(typeName string) []string {
	ref, ok := parser.ParseType(typeName, 0)
	if !ok || ref.Name == "" {
		return nil
	}
	if slices.Contains(typedb.Primitives, ref.Name) {
		return nil
	}
	base := ref.Name
	plural := false
	if containers[base] && len(ref.Args) > 0 {
		elem := ref.Args[len(ref.Args)-1]
		if len(ref.Args) == 2 {
			elem = ref.Args[0]
		}
		if elem.Name != "" && !slices.Contains(typedb.Primitives, elem.Name) {
			base, plural = elem.Name, true
		}
	}
	if i := lastSep(base); i >= 0 {
		base = base[i+2:]
	}
	base = stripPrefix(base)
	if base == "" {
		return nil
	}

	var out []string
	add := func(s string) {
		if plural {
			s = pluralize(s)
		}
		for _, x := range out {
			if x == s {
				return
			}
		}
		out = append(out, s)
	}
	add(base)
	if w := lastWord(base); w != base {
		add(w)
	}
	return out
}

// stripPrefix removes the engine naming prefix of AActor, UObject, FVector,
// EMode, TArray, IInterface and SWidget.
func stripPrefix(name string) string {
	if len(name) < 2 || !strings.ContainsRune("AUFETIS", rune(name[0])) {
		return name
	}
	if !unicode.IsUpper(rune(name[1])) {
		return name
	}
	// keep acronyms such as "UI" intact
	if len(name) == 2 {
		return name
	}
	return name[1:]
}

// lastWord returns the last CamelCase word of name.
func lastWord(name string) string {
	for i := len(name) - 1; i > 0; i-- {
		if unicode.IsUpper(rune(name[i])) && !unicode.IsUpper(rune(name[i-1])) {
			return name[i:]
		}
	}
	return name
}

func pluralize(s string) string {
	switch {
	case strings.HasSuffix(s, "s"), strings.HasSuffix(s, "x"), strings.HasSuffix(s, "ch"), strings.HasSuffix(s, "sh"):
		return s + "es"
	case strings.HasSuffix(s, "y") && len(s) > 1 && !strings.ContainsRune("aeiou", rune(s[len(s)-2])):
		return s[:len(s)-1] + "ies"
	}
	return s + "s"
}

func (c *collector) newNames() {
	for _, name := range suggestNames(c.r.ctx.NewNameType) {
		if !c.matches(name) {
			continue
		}
		c.add(Item{Label: name, Kind: ItemVariable, Detail: c.r.ctx.NewNameType}, bucketLocal, "")
	}
}
