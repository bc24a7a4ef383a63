// Package arena stores values addressed by 1-based uint32 handles. Handle 0
// is reserved as the "none" sentinel so zero-valued IDs are never valid.
package arena

import (
	"fmt"

	"fortio.org/safecast"
)

type Arena[T any] struct {
	data []T
}

// New creates an arena whose storage is preallocated for capHint values.
func New[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		data: make([]T, 0, capHint),
	}
}

// Allocate stores value and returns its 1-based index.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("arena overflow: %w", err))
	}
	return n
}

// Get returns the value at index or nil for 0 and out-of-range indexes.
func (a *Arena[T]) Get(index uint32) *T {
	if a == nil || index == 0 || int(index) > len(a.data) {
		return nil
	}
	return &a.data[index-1]
}

// Slice exposes the backing storage; callers must not append to it.
func (a *Arena[T]) Slice() []T {
	return a.data
}

func (a *Arena[T]) Len() uint32 {
	if a == nil {
		return 0
	}
	return uint32(len(a.data))
}
