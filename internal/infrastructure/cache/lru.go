// Package cache holds the in-memory caches used by the engine.
package cache

import (
	"container/list"
	"sync"

	"github.com/bnema/casement/internal/application/port"
)

type item[K comparable, V any] struct {
	key   K
	value V
}

// LRU evicts the least recently read or written key once it holds
// capacity entries.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	index    map[K]*list.Element
	recency  *list.List // front is newest

	hits, misses uint64
}

var _ port.Cache[string, int] = (*LRU[string, int])(nil)

// NewLRU returns an empty cache. A non-positive capacity holds one entry.
func NewLRU[K comparable, V any](capacity int) *LRU[K, V] {
	return &LRU[K, V]{
		capacity: max(capacity, 1),
		index:    make(map[K]*list.Element),
		recency:  list.New(),
	}
}

func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.recency.MoveToFront(el)
	return el.Value.(*item[K, V]).value, true
}

func (c *LRU[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.index[key]; ok {
		el.Value.(*item[K, V]).value = value
		c.recency.MoveToFront(el)
		return
	}
	for c.recency.Len() >= c.capacity {
		c.dropLocked(c.recency.Back())
	}
	c.index[key] = c.recency.PushFront(&item[K, V]{key: key, value: value})
}

func (c *LRU[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.index[key]; ok {
		c.dropLocked(el)
	}
}

func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recency.Len()
}

// Stats returns the hit and miss counts since creation.
func (c *LRU[K, V]) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

func (c *LRU[K, V]) dropLocked(el *list.Element) {
	c.recency.Remove(el)
	delete(c.index, el.Value.(*item[K, V]).key)
}
