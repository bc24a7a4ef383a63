package lspconv

import (
	"sort"
	"unicode/utf8"

	"fortio.org/safecast"
	"go.lsp.dev/protocol"

	"asls/internal/source"
)

const maxUint32 = ^uint32(0)

func safeUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return maxUint32
	}
	return v
}

// offsetForPosition maps a UTF-16 position to a byte offset, clamping to
// the line end and the file end.
func offsetForPosition(file *source.File, pos protocol.Position) uint32 {
	if file == nil {
		return 0
	}
	content := file.Content
	if len(content) == 0 {
		return 0
	}
	line := int(pos.Line)
	contentLen := safeUint32(len(content))
	if line > len(file.LineIdx) {
		return contentLen
	}
	var lineStart uint32
	if line > 0 {
		lineStart = file.LineIdx[line-1] + 1
	}
	lineEnd := contentLen
	if line < len(file.LineIdx) {
		lineEnd = file.LineIdx[line]
	}
	if lineStart > lineEnd {
		return lineEnd
	}
	want := int(pos.Character)
	units := 0
	off := lineStart
	for off < lineEnd && units < want {
		r, size := utf8.DecodeRune(content[off:lineEnd])
		need := 1
		if r > 0xFFFF {
			need = 2
		}
		if units+need > want {
			break
		}
		units += need
		off += safeUint32(size)
	}
	return off
}

// positionForOffset maps a byte offset to a zero-based line and UTF-16
// character.
func positionForOffset(file *source.File, offset uint32) protocol.Position {
	if file == nil {
		return protocol.Position{}
	}
	contentLen := safeUint32(len(file.Content))
	if offset > contentLen {
		offset = contentLen
	}
	lineIdx := file.LineIdx
	line := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] >= offset })
	var lineStart uint32
	if line > 0 {
		lineStart = lineIdx[line-1] + 1
	}
	if lineStart > offset {
		lineStart = offset
	}
	var units uint32
	for off := lineStart; off < offset; {
		r, size := utf8.DecodeRune(file.Content[off:offset])
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
		off += safeUint32(size)
	}
	return protocol.Position{Line: safeUint32(line), Character: units}
}
