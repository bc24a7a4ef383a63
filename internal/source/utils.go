package source

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"fortio.org/safecast"
)

// normalizeCRLF replaces every \r\n with \n and leaves lone \r alone.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}
	out := make([]byte, 0, len(content))
	changed := false
	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}
	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}
	return content, false
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/32+1)
	for i, b := range content {
		if b == '\n' {
			off, err := safecast.Conv[uint32](i)
			if err != nil {
				panic(fmt.Errorf("line index overflow: %w", err))
			}
			out = append(out, off)
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	if len(lineIdx) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}
	// largest i with lineIdx[i] < off
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	line := hi
	if line < 0 {
		return LineCol{Line: 1, Col: off + 1}
	}
	startOff := lineIdx[line] + 1
	lineNo, err := safecast.Conv[uint32](line + 2)
	if err != nil {
		panic(fmt.Errorf("line number overflow: %w", err))
	}
	return LineCol{Line: lineNo, Col: off - startOff + 1}
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// ModuleNameFromPath derives the dotted module name used by import
// statements: "Script/Gameplay/Player.as" under root "Script" is
// "Gameplay.Player".
func ModuleNameFromPath(root, path string) string {
	rel := path
	if root != "" {
		if r, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(r, "..") {
			rel = r
		}
	}
	rel = filepath.ToSlash(rel)
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	rel = strings.TrimPrefix(rel, "./")
	return strings.ReplaceAll(rel, "/", ".")
}
