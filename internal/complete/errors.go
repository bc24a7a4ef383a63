package complete

import "errors"

var (
	// ErrNoSymbol reports that nothing resolvable sits under the cursor.
	ErrNoSymbol = errors.New("no symbol at position")
	// ErrReadOnlySymbol reports a rename of an engine-declared symbol or of
	// a property reached through its accessor.
	ErrReadOnlySymbol = errors.New("symbol cannot be renamed")
)
