package pending

import (
	"sync"
	"time"
)

// Entry associates a gateway token with the local order awaiting the
// redirect-back callback.
type Entry struct {
	OrderID    int64
	BuyOrder   string
	Amount     int64
	CustomerID int64
	CreatedAt  time.Time
}

// Registry is the process-local map of in-flight gateway transactions.
// Entries are written when a transaction is created and consumed exactly once
// when it is confirmed; a sweeper evicts entries whose redirect never came
// back. The registry is shared across request goroutines.
type Registry struct {
	mu      sync.Mutex
	entries map[string]Entry
	now     func() time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]Entry),
		now:     time.Now,
	}
}

// Put registers a pending transaction under its gateway token.
func (r *Registry) Put(token string, entry Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = r.now()
	}
	r.entries[token] = entry
}

// Take removes and returns the entry for a token. The second return value is
// false when the token is unknown or was already consumed; exactly one caller
// ever observes true for a given token.
func (r *Registry) Take(token string) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[token]
	if ok {
		delete(r.entries, token)
	}
	return entry, ok
}

// Len reports the number of in-flight entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// TakeExpired removes and returns every entry older than ttl.
func (r *Registry) TakeExpired(ttl time.Duration) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-ttl)
	var expired []Entry
	for token, entry := range r.entries {
		if entry.CreatedAt.Before(cutoff) {
			expired = append(expired, entry)
			delete(r.entries, token)
		}
	}
	return expired
}
