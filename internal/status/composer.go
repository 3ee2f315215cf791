// Package status composes the per-cycle status snapshot published alongside
// the event summaries.
package status

import (
	"time"

	"github.com/google/uuid"

	"github.com/twickenham/events/internal/models"
)

// Input carries everything one finished processing cycle produced.
type Input struct {
	Days    []models.DaySummary
	Errors  []models.ErrorEntry
	Stats   models.FetchStats
	Trigger string

	// Override, when non-empty, replaces the derived status outright.
	Override models.Status
}

// Composer builds one immutable snapshot per cycle. The clock and the run-ID
// source are injected so snapshots are deterministic under test.
type Composer struct {
	aiEnabled       bool
	intervalSeconds int
	now             func() time.Time
	newRunID        func() string
}

// NewComposer creates a composer for a service running at the given interval.
func NewComposer(aiEnabled bool, interval time.Duration) *Composer {
	return &Composer{
		aiEnabled:       aiEnabled,
		intervalSeconds: int(interval / time.Second),
		now:             time.Now,
		newRunID:        uuid.NewString,
	}
}

// SetNowFunc overrides the clock, for tests.
func (c *Composer) SetNowFunc(now func() time.Time) { c.now = now }

// SetRunIDFunc overrides the run-ID source, for tests.
func (c *Composer) SetRunIDFunc(newID func() string) { c.newRunID = newID }

// Compose derives the snapshot for one cycle. The status is "active" when any
// event exists and "no_events" otherwise; a cycle with zero events and a
// non-empty error list is promoted to "error". An explicit override wins over
// everything.
func (c *Composer) Compose(in Input) models.StatusSnapshot {
	eventCount := 0
	for _, day := range in.Days {
		eventCount += len(day.Events)
	}

	st := models.StatusActive
	if eventCount == 0 {
		st = models.StatusNoEvents
		if len(in.Errors) > 0 {
			st = models.StatusError
		}
	}
	if in.Override != "" {
		st = in.Override
	}

	return models.StatusSnapshot{
		Status:          st,
		EventCount:      eventCount,
		ErrorCount:      len(in.Errors),
		Errors:          in.Errors,
		Stats:           in.Stats,
		AIEnabled:       c.aiEnabled,
		RunID:           c.newRunID(),
		Trigger:         in.Trigger,
		IntervalSeconds: c.intervalSeconds,
		Timestamp:       c.now().UTC(),
	}
}
