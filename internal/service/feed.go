package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/twickenham/events/internal/models"
)

// FeedFetcher reads raw event rows from a JSON feed file. A missing path is
// a configuration error, not a crash: it yields zero rows and a snapshot
// whose stats carry DataSource "config_error".
type FeedFetcher struct {
	path string
	now  func() time.Time
}

// NewFeedFetcher creates a fetcher for the given feed path. The path may be
// empty when the feed was never configured.
func NewFeedFetcher(path string) *FeedFetcher {
	return &FeedFetcher{path: path, now: time.Now}
}

// Fetch reads and decodes the feed file.
func (f *FeedFetcher) Fetch(ctx context.Context) ([]models.RawEvent, models.FetchStats, error) {
	if f.path == "" {
		return nil, models.FetchStats{DataSource: models.DataSourceConfigError}, nil
	}

	start := f.now()
	stats := models.FetchStats{DataSource: models.DataSourceFailed}

	data, err := os.ReadFile(f.path)
	if err != nil {
		stats.FetchDuration = f.now().Sub(start).Seconds()
		return nil, stats, fmt.Errorf("reading event feed %s: %w", f.path, err)
	}

	var rows []models.RawEvent
	if err := json.Unmarshal(data, &rows); err != nil {
		stats.FetchDuration = f.now().Sub(start).Seconds()
		return nil, stats, fmt.Errorf("decoding event feed %s: %w", f.path, err)
	}

	stats.RawCount = len(rows)
	stats.FetchDuration = f.now().Sub(start).Seconds()
	stats.DataSource = models.DataSourceLive
	return rows, stats, nil
}
