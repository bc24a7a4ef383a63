package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaHandlesAreOneBased(t *testing.T) {
	a := New[string](0)
	assert.Nil(t, a.Get(0))
	id := a.Allocate("first")
	require.Equal(t, uint32(1), id)
	assert.Equal(t, "first", *a.Get(id))
	assert.Nil(t, a.Get(2))
	assert.Equal(t, uint32(1), a.Len())

	var nilArena *Arena[int]
	assert.Nil(t, nilArena.Get(1))
	assert.Zero(t, nilArena.Len())
}
