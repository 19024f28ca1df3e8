package filtering

import (
	"sync"
	"time"
)

// BypassTTL bounds how long an unused one-time bypass stays valid.
const BypassTTL = time.Minute

// BypassRegistry tracks one-time URL bypasses that are allowed through the
// filter. It is in-memory only and cleared on restart.
type BypassRegistry struct {
	mu      sync.Mutex
	allowed map[string]time.Time // URL -> expiry
	now     func() time.Time
}

// NewBypassRegistry creates a new bypass registry.
func NewBypassRegistry() *BypassRegistry {
	return &BypassRegistry{
		allowed: make(map[string]time.Time),
		now:     time.Now,
	}
}

// AllowOnce lets the next request for url through.
func (r *BypassRegistry) AllowOnce(url string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.allowed[url] = r.now().Add(BypassTTL)
}

// Consume reports whether url has a pending bypass and removes it.
func (r *BypassRegistry) Consume(url string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	expiry, ok := r.allowed[url]
	if !ok {
		return false
	}
	delete(r.allowed, url)
	return r.now().Before(expiry)
}

// Clear removes all entries from the registry.
func (r *BypassRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.allowed = make(map[string]time.Time)
}

// Count returns the number of pending bypasses, expired ones included.
func (r *BypassRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.allowed)
}
