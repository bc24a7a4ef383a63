package source

type (
	// ModuleID uniquely identifies a module within a FileSet. It stays stable
	// when the module text is replaced.
	ModuleID uint32
	// FileFlags encodes metadata about a module's text.
	FileFlags uint8
)

// NoModule marks "no owning module", e.g. a symbol shared by several modules.
const NoModule ModuleID = 0

// IsValid reports whether the ID refers to an allocated module.
func (id ModuleID) IsValid() bool { return id != NoModule }

const (
	// FileVirtual indicates the text was added from memory (editor buffer, test).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures the text and metadata of one script module.
type File struct {
	ID         ModuleID
	Name       string // dotted module name used by import statements
	Path       string
	Content    []byte
	LineIdx    []uint32
	Hash       [32]byte
	Flags      FileFlags
	Generation uint64 // bumped every time the content is replaced
}

// LineCol represents a human-readable position in a module.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}
