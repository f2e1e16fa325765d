package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundedMapEvictsOldest(t *testing.T) {
	var evicted []int
	m := newBoundedMap[int, string](3, func(key int, _ string) {
		evicted = append(evicted, key)
	})

	m.set(1, "a")
	m.set(2, "b")
	m.set(3, "c")
	m.set(4, "d")

	assert.Equal(t, []int{1}, evicted)
	assert.Equal(t, 3, m.len())
	_, ok := m.peek(1)
	assert.False(t, ok)
}

func TestBoundedMapGetCountsAsTouch(t *testing.T) {
	var evicted []int
	m := newBoundedMap[int, string](2, func(key int, _ string) {
		evicted = append(evicted, key)
	})

	m.set(1, "a")
	m.set(2, "b")
	_, ok := m.get(1)
	require.True(t, ok)
	m.set(3, "c")

	// 2 was the least recently touched once 1 was read
	assert.Equal(t, []int{2}, evicted)
	_, ok = m.peek(1)
	assert.True(t, ok)
}

func TestBoundedMapReplaceDoesNotEvict(t *testing.T) {
	var evicted []int
	m := newBoundedMap[int, string](2, func(key int, _ string) {
		evicted = append(evicted, key)
	})

	m.set(1, "a")
	m.set(2, "b")
	m.set(1, "a2")

	assert.Empty(t, evicted)
	v, ok := m.peek(1)
	require.True(t, ok)
	assert.Equal(t, "a2", v)
}

func TestBoundedMapPeekDoesNotTouch(t *testing.T) {
	var evicted []int
	m := newBoundedMap[int, string](2, func(key int, _ string) {
		evicted = append(evicted, key)
	})

	m.set(1, "a")
	m.set(2, "b")
	_, ok := m.peek(1)
	require.True(t, ok)
	m.set(3, "c")

	assert.Equal(t, []int{1}, evicted)
}

func TestBoundedMapDeleteSkipsEvictCallback(t *testing.T) {
	var evicted []int
	m := newBoundedMap[int, string](2, func(key int, _ string) {
		evicted = append(evicted, key)
	})

	m.set(1, "a")
	v, ok := m.delete(1)
	require.True(t, ok)
	assert.Equal(t, "a", v)
	assert.Empty(t, evicted)
	assert.Equal(t, 0, m.len())

	_, ok = m.delete(1)
	assert.False(t, ok)
}

func TestBoundedMapDrain(t *testing.T) {
	m := newBoundedMap[int, string](3, nil)
	m.set(1, "a")
	m.set(2, "b")

	drained := m.drain()
	assert.Equal(t, map[int]string{1: "a", 2: "b"}, drained)
	assert.Equal(t, 0, m.len())
	_, ok := m.peek(2)
	assert.False(t, ok)
}
