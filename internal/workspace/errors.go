package workspace

import "errors"

var (
	// ErrStaleRequest is returned by a reference task whose origin module
	// changed after the task started. Its partial results are discarded.
	ErrStaleRequest = errors.New("stale request")
	// ErrUnknownModule reports a module id or path the workspace does not hold.
	ErrUnknownModule = errors.New("unknown module")
	// ErrInvalidName reports a rename target that is not an identifier.
	ErrInvalidName = errors.New("invalid identifier")
)
