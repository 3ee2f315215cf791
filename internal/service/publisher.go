package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/twickenham/events/internal/models"
)

const (
	eventsFileName = "upcoming_events.json"
	statusFileName = "service_status.json"
)

// SnapshotPublisher writes each cycle's day summaries and status snapshot as
// JSON files under an output directory. Writes go through a temp file and a
// rename so readers never see a half-written payload.
type SnapshotPublisher struct {
	dir string
}

// NewSnapshotPublisher creates a publisher writing into dir.
func NewSnapshotPublisher(dir string) *SnapshotPublisher {
	return &SnapshotPublisher{dir: dir}
}

// Publish writes the events file and the status file for one cycle.
func (p *SnapshotPublisher) Publish(ctx context.Context, days []models.DaySummary, snapshot models.StatusSnapshot) error {
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir %s: %w", p.dir, err)
	}

	events := struct {
		LastUpdated string              `json:"last_updated"`
		Days        []models.DaySummary `json:"events"`
	}{
		LastUpdated: snapshot.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
		Days:        days,
	}
	if err := p.writeJSON(eventsFileName, events); err != nil {
		return err
	}
	return p.writeJSON(statusFileName, snapshot)
}

func (p *SnapshotPublisher) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}

	target := filepath.Join(p.dir, name)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("replacing %s: %w", name, err)
	}
	return nil
}
