package favorites

import (
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggle_AddsAndRemoves(t *testing.T) {
	var s Set
	s = s.Toggle("toothless-1")
	assert.True(t, s.Has("toothless-1"))
	assert.Equal(t, 1, s.Len())

	s = s.Toggle("toothless-1")
	assert.False(t, s.Has("toothless-1"))
	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.IDs())
}

func TestToggle_DoesNotMutateReceiver(t *testing.T) {
	base := FromIDs([]string{"a", "b"})
	added := base.Toggle("c")
	removed := base.Toggle("a")

	assert.Equal(t, []string{"a", "b"}, base.IDs())
	assert.Equal(t, []string{"a", "b", "c"}, added.IDs())
	assert.Equal(t, []string{"b"}, removed.IDs())
}

func TestFromIDs_Deduplicates(t *testing.T) {
	s := FromIDs([]string{"a", "b", "a", "c", "b"})
	assert.Equal(t, []string{"a", "b", "c"}, s.IDs())
	assert.Equal(t, 3, s.Len())
}

func TestEqual_IgnoresOrder(t *testing.T) {
	assert.True(t, FromIDs([]string{"a", "b"}).Equal(FromIDs([]string{"b", "a"})))
	assert.False(t, FromIDs([]string{"a"}).Equal(FromIDs([]string{"b"})))
	assert.True(t, Set{}.Equal(FromIDs(nil)))
}

func TestToggle_Involution(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 200; i++ {
		var ids []string
		for j := 0; j < r.IntN(8); j++ {
			ids = append(ids, strconv.Itoa(r.IntN(10)))
		}
		s := FromIDs(ids)
		id := strconv.Itoa(r.IntN(12))

		back := s.Toggle(id).Toggle(id)
		require.True(t, s.Equal(back), "toggle(toggle(%v, %s)) = %v", s.IDs(), id, back.IDs())
		require.Equal(t, s.Len(), back.Len())
	}
}
