package typedb

import "errors"

var (
	// ErrDuplicateType reports a type name that is already registered.
	ErrDuplicateType = errors.New("duplicate type")
	// ErrInvalidHostDecl reports a malformed host type declaration.
	ErrInvalidHostDecl = errors.New("invalid host type declaration")
)
