package scope

// ID identifies a scope inside a Tree.
type ID uint32

const (
	// NoID marks the absence of a scope reference.
	NoID ID = 0
)

// IsValid reports whether the ID refers to an allocated scope.
func (id ID) IsValid() bool { return id != NoID }
