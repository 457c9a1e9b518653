package lfu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCache_GetPut(t *testing.T) {
	t.Parallel()

	c := New[int, string](2)
	c.Put(1, "one")
	c.Put(2, "two")

	v, err := c.Get(1)
	require.NoError(t, err)
	require.Equal(t, "one", v)

	// 2 is used less often than 1 and gets evicted
	c.Put(3, "three")
	_, err = c.Get(2)
	require.ErrorIs(t, err, ErrKeyNotFound)
	require.Equal(t, 2, c.Size())

	freq, err := c.Frequency(1)
	require.NoError(t, err)
	require.Equal(t, 2, freq)
}

func TestCache_TieEvictsLeastRecent(t *testing.T) {
	t.Parallel()

	c := New[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)

	_, err := c.Get("a")
	require.ErrorIs(t, err, ErrKeyNotFound)

	v, err := c.Get("b")
	require.NoError(t, err)
	require.Equal(t, 2, v)
}

func TestCache_PutOverwrites(t *testing.T) {
	t.Parallel()

	c := New[int, int](1)
	c.Put(1, 10)
	c.Put(1, 11)

	v, err := c.Get(1)
	require.NoError(t, err)
	require.Equal(t, 11, v)

	freq, err := c.Frequency(1)
	require.NoError(t, err)
	require.Equal(t, 3, freq)
}

func TestCache_Remove(t *testing.T) {
	t.Parallel()

	c := New[int, int](3)
	c.Put(1, 1)
	c.Put(2, 2)
	_, _ = c.Get(2)

	c.Remove(2)
	c.Remove(42)
	require.Equal(t, 1, c.Size())

	_, err := c.Get(2)
	require.ErrorIs(t, err, ErrKeyNotFound)

	c.Put(3, 3)
	c.Put(4, 4)
	require.Equal(t, 3, c.Size())
	for _, k := range []int{1, 3, 4} {
		v, err := c.Get(k)
		require.NoError(t, err)
		require.Equal(t, k, v)
	}
}

func TestNew_Capacity(t *testing.T) {
	t.Parallel()

	require.Equal(t, DefaultCapacity, New[int, int]().Capacity())
	require.Equal(t, 7, New[int, int](7).Capacity())
	require.Panics(t, func() { New[int, int](0) })
}
