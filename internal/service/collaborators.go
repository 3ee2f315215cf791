// Package service runs the processing loop: fetch raw listings, summarize,
// enrich, compose a status snapshot and publish it. One cycle runs at a time;
// concurrent triggers are rejected, never queued.
package service

import (
	"context"

	"github.com/twickenham/events/internal/models"
)

// Fetcher obtains the raw event rows for one cycle. The bundled
// implementation reads a JSON feed file; the live scraper is an external
// collaborator behind this seam.
type Fetcher interface {
	Fetch(ctx context.Context) ([]models.RawEvent, models.FetchStats, error)
}

// Publisher delivers one cycle's output. The bundled implementation writes
// JSON files to an output directory; the message-bus publisher is an external
// collaborator behind this seam.
type Publisher interface {
	Publish(ctx context.Context, days []models.DaySummary, snapshot models.StatusSnapshot) error
}
