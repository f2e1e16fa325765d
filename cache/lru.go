package cache

import "container/list"

// boundedMap is a fixed-capacity map with least-recently-used eviction.
// Inserting past capacity evicts the stalest entry through onEvict before
// the new one goes in; reads through get count as a touch. It is not
// goroutine-safe; Caches serializes access under its own lock, and onEvict
// runs with that lock held.
type boundedMap[K comparable, V any] struct {
	capacity int
	order    *list.List // front is most recently used
	index    map[K]*list.Element
	onEvict  func(key K, value V)
}

type lruEntry[K comparable, V any] struct {
	key   K
	value V
}

func newBoundedMap[K comparable, V any](capacity int, onEvict func(K, V)) *boundedMap[K, V] {
	return &boundedMap[K, V]{
		capacity: capacity,
		order:    list.New(),
		index:    make(map[K]*list.Element),
		onEvict:  onEvict,
	}
}

// get returns the value for key and marks it as freshly used.
func (m *boundedMap[K, V]) get(key K) (V, bool) {
	elem, ok := m.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	m.order.MoveToFront(elem)
	return elem.Value.(*lruEntry[K, V]).value, true
}

// peek returns the value for key without disturbing the usage order.
func (m *boundedMap[K, V]) peek(key K) (V, bool) {
	elem, ok := m.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return elem.Value.(*lruEntry[K, V]).value, true
}

// set inserts or replaces the value for key. A replacement counts as a
// touch and never evicts; an insert at capacity evicts the stalest entry
// first.
func (m *boundedMap[K, V]) set(key K, value V) {
	if elem, ok := m.index[key]; ok {
		elem.Value.(*lruEntry[K, V]).value = value
		m.order.MoveToFront(elem)
		return
	}
	if m.capacity > 0 && m.order.Len() >= m.capacity {
		m.evictOldest()
	}
	m.index[key] = m.order.PushFront(&lruEntry[K, V]{key: key, value: value})
}

func (m *boundedMap[K, V]) evictOldest() {
	elem := m.order.Back()
	if elem == nil {
		return
	}
	entry := elem.Value.(*lruEntry[K, V])
	m.order.Remove(elem)
	delete(m.index, entry.key)
	if m.onEvict != nil {
		m.onEvict(entry.key, entry.value)
	}
}

// delete removes key and returns the previous value, if any. onEvict does
// not fire; explicit deletion is the caller's bookkeeping.
func (m *boundedMap[K, V]) delete(key K) (V, bool) {
	elem, ok := m.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	entry := elem.Value.(*lruEntry[K, V])
	m.order.Remove(elem)
	delete(m.index, key)
	return entry.value, true
}

// each visits every entry from most to least recently used without
// touching any of them.
func (m *boundedMap[K, V]) each(fn func(key K, value V)) {
	for elem := m.order.Front(); elem != nil; elem = elem.Next() {
		entry := elem.Value.(*lruEntry[K, V])
		fn(entry.key, entry.value)
	}
}

// drain empties the map and returns everything it held. onEvict does not
// fire; the caller settles any outstanding references itself.
func (m *boundedMap[K, V]) drain() map[K]V {
	out := make(map[K]V, len(m.index))
	for key, elem := range m.index {
		out[key] = elem.Value.(*lruEntry[K, V]).value
	}
	m.order.Init()
	clear(m.index)
	return out
}

func (m *boundedMap[K, V]) len() int {
	return m.order.Len()
}
