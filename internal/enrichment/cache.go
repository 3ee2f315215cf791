package enrichment

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"sync"
)

// Store caches enrichment results so a repeated fixture never triggers a
// second API call. Single-fixture lookups key on the original fixture text;
// batch lookups key on a stable hash of the sorted batch. Only the in-memory
// implementation lives in-tree; persistent backends are external
// collaborators behind this seam.
type Store interface {
	Get(key string) (map[string]Result, bool)
	Set(key string, results map[string]Result)
}

// MemoryStore is the process-local Store implementation.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]map[string]Result
}

// NewMemoryStore creates an empty in-memory cache.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]map[string]Result)}
}

// Get returns the cached results for key, if present.
func (s *MemoryStore) Get(key string) (map[string]Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	results, ok := s.entries[key]
	return results, ok
}

// Set stores results under key, overwriting any previous entry.
func (s *MemoryStore) Set(key string, results map[string]Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = results
}

// Len returns the number of cached keys.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// BatchKey derives a stable cache key for a batch of fixture names. Order
// does not matter: the names are sorted before hashing.
func BatchKey(names []string) string {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	sum := sha256.Sum256([]byte(strings.Join(sorted, "\x00")))
	return "batch-" + hex.EncodeToString(sum[:])
}
