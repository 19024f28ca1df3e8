package port

// Cache is a bounded, concurrency safe key/value store.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	// Set may evict the least recently used key.
	Set(key K, value V)
	Remove(key K)
	Len() int
}
