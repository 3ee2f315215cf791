// Package errlog collects processing errors across repeated service cycles.
// Messages are deduplicated by exact text, timestamped when first seen and
// retained in a bounded list with oldest-first eviction.
package errlog

import (
	"sync"
	"time"

	"github.com/twickenham/events/internal/models"
)

// DefaultMaxErrors bounds the retained history when no explicit limit is
// configured.
const DefaultMaxErrors = 25

// Aggregator keeps the cross-cycle error history for the life of the owning
// process. Safe for concurrent use, although the single-flight cycle runner
// normally serializes access anyway.
type Aggregator struct {
	mu      sync.Mutex
	seen    map[string]bool
	entries []models.ErrorEntry
	max     int
	now     func() time.Time
}

// NewAggregator creates an aggregator retaining at most max entries.
// A non-positive max falls back to DefaultMaxErrors.
func NewAggregator(max int) *Aggregator {
	if max <= 0 {
		max = DefaultMaxErrors
	}
	return &Aggregator{
		seen: make(map[string]bool),
		max:  max,
		now:  time.Now,
	}
}

// Record adds a single error message. Messages already seen are ignored;
// new ones are timestamped at first sight.
func (a *Aggregator) Record(message string) {
	a.RecordAll([]string{message})
}

// RecordAll merges one cycle's raw error list. Only unseen messages are
// appended; the retention bound is enforced after the merge.
func (a *Aggregator) RecordAll(messages []string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, msg := range messages {
		if msg == "" || a.seen[msg] {
			continue
		}
		a.seen[msg] = true
		a.entries = append(a.entries, models.ErrorEntry{
			Message:   msg,
			Timestamp: a.now().UTC(),
		})
	}

	if overflow := len(a.entries) - a.max; overflow > 0 {
		for _, evicted := range a.entries[:overflow] {
			delete(a.seen, evicted.Message)
		}
		a.entries = append([]models.ErrorEntry(nil), a.entries[overflow:]...)
	}
}

// Entries returns a copy of the retained history, oldest first.
func (a *Aggregator) Entries() []models.ErrorEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]models.ErrorEntry, len(a.entries))
	copy(out, a.entries)
	return out
}

// Count returns the number of retained entries.
func (a *Aggregator) Count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries)
}

// Reset clears all state, giving the next cycle a fresh baseline.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seen = make(map[string]bool)
	a.entries = nil
}

// SetNowFunc overrides the clock, for tests.
func (a *Aggregator) SetNowFunc(now func() time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.now = now
}
