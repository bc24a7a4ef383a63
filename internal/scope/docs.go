package scope

import (
	"strings"

	"asls/internal/lexer"
)

// DocBefore collects the comment block that ends right before off.
// Comments must start on their own line; a blank line ends the block.
func (t *Tree) DocBefore(off uint32) string {
	text := t.Text
	var parts []string
	i := int(off)
	for {
		j, newlines := i, 0
		for j > 0 && isSpace(text[j-1]) {
			if text[j-1] == '\n' {
				newlines++
			}
			j--
		}
		if j == 0 || newlines > 1 {
			break
		}
		r, ok := t.Ignore.At(u32(j - 1))
		if !ok || r.Kind != lexer.RangeComment || int(r.End) != j || !ownLine(text, int(r.Start)) {
			break
		}
		parts = append(parts, NormalizeDoc(text[r.Start:r.End]))
		i = int(r.Start)
	}
	for l, r := 0, len(parts)-1; l < r; l, r = l+1, r-1 {
		parts[l], parts[r] = parts[r], parts[l]
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// DocAfter returns a line comment that trails off on the same line.
func (t *Tree) DocAfter(off uint32) string {
	text := t.Text
	i := int(off)
	for i < len(text) && (text[i] == ' ' || text[i] == '\t' || text[i] == ',') {
		i++
	}
	r, ok := t.Ignore.At(u32(i))
	if !ok || r.Kind != lexer.RangeComment || int(r.Start) != i {
		return ""
	}
	return NormalizeDoc(text[r.Start:r.End])
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func ownLine(text string, start int) bool {
	for i := start - 1; i >= 0; i-- {
		switch text[i] {
		case ' ', '\t':
			continue
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}

// NormalizeDoc strips comment markers and leading '*' decoration.
func NormalizeDoc(comment string) string {
	var lines []string
	switch {
	case strings.HasPrefix(comment, "//"):
		for _, line := range strings.Split(comment, "\n") {
			line = strings.TrimSpace(line)
			line = strings.TrimPrefix(line, "//")
			line = strings.TrimLeft(line, "/!")
			lines = append(lines, strings.TrimSpace(line))
		}
	case strings.HasPrefix(comment, "/*"):
		body := strings.TrimPrefix(comment, "/*")
		body = strings.TrimLeft(body, "*!")
		body = strings.TrimSuffix(body, "*/")
		for _, line := range strings.Split(body, "\n") {
			line = strings.TrimSpace(line)
			if strings.HasPrefix(line, "*") && !strings.HasPrefix(line, "*/") {
				line = strings.TrimSpace(line[1:])
			}
			lines = append(lines, line)
		}
	default:
		return strings.TrimSpace(comment)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
