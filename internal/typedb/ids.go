package typedb

import "sync/atomic"

// TypeID is a handle into the DB type table. IDs are never reused.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

func (id TypeID) IsValid() bool { return id != NoTypeID }

// MethodID identifies a method for overload disambiguation. IDs are
// process-wide and monotonic.
type MethodID uint64

var lastMethodID atomic.Uint64

func nextMethodID() MethodID {
	return MethodID(lastMethodID.Add(1))
}
