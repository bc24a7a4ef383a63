package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"sort"
	"sync"

	"fortio.org/safecast"
)

// FileSet holds the current text of every known module. Module IDs are
// stable per path: replacing the text keeps the ID and bumps Generation.
// Thread-safe for concurrent access.
type FileSet struct {
	mu      sync.RWMutex
	files   map[ModuleID]*File
	index   map[string]ModuleID // path -> id
	names   map[string]ModuleID // module name -> id
	nextID  ModuleID
	baseDir string
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return NewFileSetWithBase("")
}

// NewFileSetWithBase creates a FileSet whose module names are derived
// relative to baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{
		files:   make(map[ModuleID]*File),
		index:   make(map[string]ModuleID),
		names:   make(map[string]ModuleID),
		nextID:  1, // 0 is NoModule
		baseDir: baseDir,
	}
}

// BaseDir returns the directory module names are relative to.
func (fileSet *FileSet) BaseDir() string {
	return fileSet.baseDir
}

// Set stores content for path and returns the module ID. A path seen
// before keeps its ID; its generation is incremented.
func (fileSet *FileSet) Set(path string, content []byte, flags FileFlags) ModuleID {
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	normalizedPath := normalizePath(path)

	fileSet.mu.Lock()
	defer fileSet.mu.Unlock()

	if id, ok := fileSet.index[normalizedPath]; ok {
		f := fileSet.files[id]
		next := *f
		next.Content = content
		next.LineIdx = buildLineIndex(content)
		next.Hash = sha256.Sum256(content)
		next.Flags = flags
		next.Generation = f.Generation + 1
		fileSet.files[id] = &next
		return id
	}
	id := fileSet.nextID
	fileSet.nextID++
	name := ModuleNameFromPath(fileSet.baseDir, normalizedPath)
	fileSet.files[id] = &File{
		ID:         id,
		Name:       name,
		Path:       normalizedPath,
		Content:    content,
		LineIdx:    buildLineIndex(content),
		Hash:       sha256.Sum256(content),
		Flags:      flags,
		Generation: 1,
	}
	fileSet.index[normalizedPath] = id
	fileSet.names[name] = id
	return id
}

// SetVirtual stores an in-memory module (editor buffer or test input).
func (fileSet *FileSet) SetVirtual(path, content string) ModuleID {
	return fileSet.Set(path, []byte(content), FileVirtual)
}

// Load reads a module from disk and stores it.
func (fileSet *FileSet) Load(path string) (ModuleID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return NoModule, fmt.Errorf("load module %s: %w", path, err)
	}
	return fileSet.Set(path, content, 0), nil
}

// Remove forgets a module. It returns false when the ID was unknown.
func (fileSet *FileSet) Remove(id ModuleID) bool {
	fileSet.mu.Lock()
	defer fileSet.mu.Unlock()
	f, ok := fileSet.files[id]
	if !ok {
		return false
	}
	delete(fileSet.files, id)
	delete(fileSet.index, f.Path)
	if fileSet.names[f.Name] == id {
		delete(fileSet.names, f.Name)
	}
	return true
}

// Get returns the current snapshot of a module, or nil.
func (fileSet *FileSet) Get(id ModuleID) *File {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	return fileSet.files[id]
}

// GetByPath returns the module stored under path.
func (fileSet *FileSet) GetByPath(path string) (*File, bool) {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	id, ok := fileSet.index[normalizePath(path)]
	if !ok {
		return nil, false
	}
	return fileSet.files[id], true
}

// GetByName returns the module with the given dotted name.
func (fileSet *FileSet) GetByName(name string) (*File, bool) {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	id, ok := fileSet.names[name]
	if !ok {
		return nil, false
	}
	return fileSet.files[id], true
}

// IDs returns all module IDs in ascending order.
func (fileSet *FileSet) IDs() []ModuleID {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	ids := make([]ModuleID, 0, len(fileSet.files))
	for id := range fileSet.files {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len reports the number of stored modules.
func (fileSet *FileSet) Len() int {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	return len(fileSet.files)
}

// Resolve converts a span into line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.Get(span.Module)
	if f == nil {
		return LineCol{}, LineCol{}
	}
	return f.Position(span.Start), f.Position(span.End)
}

// Position converts a byte offset into a 1-based line/column.
func (f *File) Position(off uint32) LineCol {
	if n := f.Len(); off > n {
		off = n
	}
	return toLineCol(f.LineIdx, off)
}

// Offset converts a 1-based line/column back to a byte offset, clamping
// to the end of the line and the end of the module.
func (f *File) Offset(pos LineCol) uint32 {
	if pos.Line == 0 {
		return 0
	}
	var start uint32
	if pos.Line > 1 {
		idx := int(pos.Line) - 2
		if idx >= len(f.LineIdx) {
			return f.Len()
		}
		start = f.LineIdx[idx] + 1
	}
	end := f.Len()
	if idx := int(pos.Line) - 1; idx < len(f.LineIdx) {
		end = f.LineIdx[idx]
	}
	col := pos.Col
	if col == 0 {
		col = 1
	}
	off := start + col - 1
	if off > end {
		off = end
	}
	return off
}

// Len returns the content length as uint32.
func (f *File) Len() uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("module too large: %w", err))
	}
	return n
}

// Text returns the module content as a string.
func (f *File) Text() string {
	return string(f.Content)
}

// GetLine returns the text of a 1-based line without its newline.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	start := f.Offset(LineCol{Line: lineNum, Col: 1})
	end := f.Len()
	if idx := int(lineNum) - 1; idx < len(f.LineIdx) {
		end = f.LineIdx[idx]
	}
	if int(lineNum)-2 >= len(f.LineIdx) || start > end {
		return ""
	}
	return string(f.Content[start:end])
}
