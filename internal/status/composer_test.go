package status

import (
	"testing"
	"time"

	"github.com/twickenham/events/internal/models"
)

func fixedComposer(t *testing.T) *Composer {
	t.Helper()
	c := NewComposer(true, 5*time.Minute)
	c.SetNowFunc(func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	})
	c.SetRunIDFunc(func() string { return "run-1" })
	return c
}

func daysWithEvents(n int) []models.DaySummary {
	events := make([]models.Event, n)
	for i := range events {
		events[i] = models.Event{Fixture: "England v Australia", Date: "2025-06-07"}
	}
	return []models.DaySummary{{Date: "2025-06-07", EventCount: n, Events: events}}
}

func TestComposeStatusRules(t *testing.T) {
	errs := []models.ErrorEntry{{Message: "could not parse date"}}

	tests := []struct {
		name string
		in   Input
		want models.Status
	}{
		{
			name: "events present",
			in:   Input{Days: daysWithEvents(2)},
			want: models.StatusActive,
		},
		{
			name: "no events",
			in:   Input{},
			want: models.StatusNoEvents,
		},
		{
			name: "no events with errors promotes to error",
			in:   Input{Errors: errs},
			want: models.StatusError,
		},
		{
			name: "events present with errors stays active",
			in:   Input{Days: daysWithEvents(1), Errors: errs},
			want: models.StatusActive,
		},
		{
			name: "explicit override wins",
			in:   Input{Days: daysWithEvents(1), Override: models.StatusError},
			want: models.StatusError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := fixedComposer(t).Compose(tt.in)
			if snap.Status != tt.want {
				t.Errorf("Compose() status = %q, want %q", snap.Status, tt.want)
			}
		})
	}
}

func TestComposeCarriesCycleDetail(t *testing.T) {
	stats := models.FetchStats{
		RawCount:      3,
		FetchDuration: 1.25,
		RetryAttempts: 1,
		DataSource:    models.DataSourceLive,
	}
	snap := fixedComposer(t).Compose(Input{
		Days:    daysWithEvents(3),
		Errors:  []models.ErrorEntry{{Message: "implausible crowd size detected"}},
		Stats:   stats,
		Trigger: "interval",
	})

	if snap.EventCount != 3 {
		t.Errorf("EventCount = %d, want 3", snap.EventCount)
	}
	if snap.ErrorCount != 1 {
		t.Errorf("ErrorCount = %d, want 1", snap.ErrorCount)
	}
	if snap.Stats != stats {
		t.Errorf("Stats = %+v, want pass-through %+v", snap.Stats, stats)
	}
	if !snap.AIEnabled {
		t.Error("AIEnabled = false, want true")
	}
	if snap.RunID != "run-1" {
		t.Errorf("RunID = %q, want injected run-1", snap.RunID)
	}
	if snap.Trigger != "interval" {
		t.Errorf("Trigger = %q, want interval", snap.Trigger)
	}
	if snap.IntervalSeconds != 300 {
		t.Errorf("IntervalSeconds = %d, want 300", snap.IntervalSeconds)
	}
	if snap.Timestamp != time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) {
		t.Errorf("Timestamp = %v, want injected clock value", snap.Timestamp)
	}
}
