// Package lfu is a least-frequently-used cache with O(1) Get, Put and Remove.
//
// Ties on frequency evict the least recently used key. The cache is not safe for
// concurrent use; callers serialize access.
package lfu

import "errors"

var ErrKeyNotFound = errors.New("key not found")

const DefaultCapacity = 64

// bucket holds every key that has been used exactly frequency times, most recent first.
type bucket[K comparable, V any] struct {
	entries   *list[entry[K, V]]
	frequency int
}

type entry[K comparable, V any] struct {
	key    K
	value  V
	bucket *node[*bucket[K, V]]
}

type Cache[K comparable, V any] struct {
	buckets  *list[*bucket[K, V]] // highest frequency at the front
	index    map[K]*node[entry[K, V]]
	capacity int
}

// New returns a cache holding at most capacity keys; DefaultCapacity when omitted.
func New[K comparable, V any](capacity ...int) *Cache[K, V] {
	c := DefaultCapacity
	if len(capacity) > 0 {
		c = capacity[0]
		if c <= 0 {
			panic("lfu: capacity must be positive")
		}
	}
	return &Cache[K, V]{
		buckets:  newList[*bucket[K, V]](),
		index:    make(map[K]*node[entry[K, V]], c),
		capacity: c,
	}
}

func newBucket[K comparable, V any](frequency int) *bucket[K, V] {
	return &bucket[K, V]{entries: newList[entry[K, V]](), frequency: frequency}
}

func (c *Cache[K, V]) touch(n *node[entry[K, V]]) {
	current := n.data.bucket
	b := current.data

	if next := c.buckets.before(current); next != nil && next.data.frequency == b.frequency+1 {
		next.data.entries.moveToFront(n, b.entries)
		n.data.bucket = next
	} else if b.entries.size == 1 {
		b.frequency++
	} else {
		promoted := newBucket[K, V](b.frequency + 1)
		promoted.entries.moveToFront(n, b.entries)
		n.data.bucket = c.buckets.insertBefore(current, &node[*bucket[K, V]]{data: promoted})
	}

	if b.entries.size == 0 {
		c.buckets.remove(current)
	}
}

func (c *Cache[K, V]) Get(key K) (V, error) {
	n, ok := c.index[key]
	if !ok {
		var zero V
		return zero, ErrKeyNotFound
	}
	c.touch(n)
	return n.data.value, nil
}

func (c *Cache[K, V]) Put(key K, value V) {
	if n, ok := c.index[key]; ok {
		n.data.value = value
		c.touch(n)
		return
	}

	if len(c.index) == c.capacity {
		last := c.buckets.back()
		victim := last.data.entries.back()
		last.data.entries.remove(victim)
		delete(c.index, victim.data.key)
		if last.data.entries.size == 0 {
			c.buckets.remove(last)
		}
	}

	last := c.buckets.back()
	if last == nil || last.data.frequency != 1 {
		last = c.buckets.pushBack(newBucket[K, V](1))
	}
	c.index[key] = last.data.entries.pushFront(entry[K, V]{key: key, value: value, bucket: last})
}

// Remove drops key from the cache; missing keys are ignored.
func (c *Cache[K, V]) Remove(key K) {
	n, ok := c.index[key]
	if !ok {
		return
	}
	b := n.data.bucket
	b.data.entries.remove(n)
	if b.data.entries.size == 0 {
		c.buckets.remove(b)
	}
	delete(c.index, key)
}

func (c *Cache[K, V]) Frequency(key K) (int, error) {
	n, ok := c.index[key]
	if !ok {
		return 0, ErrKeyNotFound
	}
	return n.data.bucket.data.frequency, nil
}

func (c *Cache[K, V]) Size() int {
	return len(c.index)
}

func (c *Cache[K, V]) Capacity() int {
	return c.capacity
}
