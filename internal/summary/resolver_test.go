package summary

import (
	"testing"
	"time"

	"github.com/twickenham/events/internal/models"
)

func mkDay(date string, starts ...*string) models.DaySummary {
	events := make([]models.Event, len(starts))
	for i, st := range starts {
		events[i] = models.Event{
			Fixture:    "Fixture",
			StartTime:  st,
			Date:       date,
			EventIndex: i + 1,
			EventCount: len(starts),
		}
	}
	return models.DaySummary{Date: date, EventCount: len(events), Events: events}
}

func hm(s string) *string { return &s }

func at(date, clock string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", date+" "+clock)
	if err != nil {
		panic(err)
	}
	return t
}

func TestFindNext(t *testing.T) {
	tests := []struct {
		name      string
		days      []models.DaySummary
		now       time.Time
		wantStart *string
		wantDate  string
		wantNone  bool
	}{
		{
			name:     "no days",
			now:      at("2025-01-18", "10:00"),
			wantNone: true,
		},
		{
			name:      "future day returns its first event",
			days:      []models.DaySummary{mkDay("2025-01-20", hm("14:00"), hm("19:00"))},
			now:       at("2025-01-18", "10:00"),
			wantStart: hm("14:00"),
			wantDate:  "2025-01-20",
		},
		{
			name:     "past day skipped entirely",
			days:     []models.DaySummary{mkDay("2025-01-10", hm("14:00"))},
			now:      at("2025-01-18", "10:00"),
			wantNone: true,
		},
		{
			name:      "today before kick-off",
			days:      []models.DaySummary{mkDay("2025-01-18", hm("14:00"), hm("19:00"))},
			now:       at("2025-01-18", "10:00"),
			wantStart: hm("14:00"),
			wantDate:  "2025-01-18",
		},
		{
			name: "first sibling over once delay elapsed",
			// 15:30 is 1h30 past the 14:00 kick-off and a later sibling
			// exists, so the 19:00 event is current.
			days:      []models.DaySummary{mkDay("2025-01-18", hm("14:00"), hm("19:00"))},
			now:       at("2025-01-18", "15:30"),
			wantStart: hm("19:00"),
			wantDate:  "2025-01-18",
		},
		{
			name:      "first sibling still current within delay",
			days:      []models.DaySummary{mkDay("2025-01-18", hm("14:00"), hm("19:00"))},
			now:       at("2025-01-18", "14:30"),
			wantStart: hm("14:00"),
			wantDate:  "2025-01-18",
		},
		{
			name: "lone event stays current until cutoff",
			// No later sibling, so the event cannot be proven over even
			// hours after kick-off.
			days:      []models.DaySummary{mkDay("2025-01-18", hm("14:00"))},
			now:       at("2025-01-18", "20:00"),
			wantStart: hm("14:00"),
			wantDate:  "2025-01-18",
		},
		{
			name:     "cutoff elapses the whole day",
			days:     []models.DaySummary{mkDay("2025-01-18", hm("14:00"))},
			now:      at("2025-01-18", "23:00"),
			wantNone: true,
		},
		{
			name: "cutoff rolls to the next day",
			days: []models.DaySummary{
				mkDay("2025-01-18", hm("14:00")),
				mkDay("2025-01-19", hm("11:00")),
			},
			now:       at("2025-01-18", "23:30"),
			wantStart: hm("11:00"),
			wantDate:  "2025-01-19",
		},
		{
			name:      "nil start time is current today",
			days:      []models.DaySummary{mkDay("2025-01-18", nil, hm("19:00"))},
			now:       at("2025-01-18", "18:00"),
			wantStart: nil,
			wantDate:  "2025-01-18",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, day := FindNext(tt.days, tt.now, DefaultRules())

			if tt.wantNone {
				if ev != nil || day != nil {
					t.Fatalf("FindNext() = (%+v, %+v), want (nil, nil)", ev, day)
				}
				return
			}
			if ev == nil || day == nil {
				t.Fatalf("FindNext() = (nil, nil), want an event")
			}
			if day.Date != tt.wantDate {
				t.Errorf("day = %q, want %q", day.Date, tt.wantDate)
			}
			switch {
			case tt.wantStart == nil && ev.StartTime != nil:
				t.Errorf("start = %q, want nil", *ev.StartTime)
			case tt.wantStart != nil && (ev.StartTime == nil || *ev.StartTime != *tt.wantStart):
				t.Errorf("start = %v, want %q", ev.StartTime, *tt.wantStart)
			}
		})
	}
}

func TestFindNextCustomRules(t *testing.T) {
	days := []models.DaySummary{mkDay("2025-01-18", hm("14:00"), hm("19:00"))}

	// A two hour delay keeps the first sibling current at 15:30.
	rules := Rules{EndOfDayCutoff: "23:00", NextEventDelayHours: 2}
	ev, _ := FindNext(days, at("2025-01-18", "15:30"), rules)
	if ev == nil || *ev.StartTime != "14:00" {
		t.Errorf("FindNext() with 2h delay = %+v, want 14:00 still current", ev)
	}

	// An early cutoff elapses the day.
	rules = Rules{EndOfDayCutoff: "15:00", NextEventDelayHours: 1}
	ev, _ = FindNext(days, at("2025-01-18", "15:30"), rules)
	if ev != nil {
		t.Errorf("FindNext() after early cutoff = %+v, want nil", ev)
	}

	// A malformed cutoff falls back to the default instead of failing.
	rules = Rules{EndOfDayCutoff: "late", NextEventDelayHours: 1}
	ev, _ = FindNext(days, at("2025-01-18", "15:30"), rules)
	if ev == nil || *ev.StartTime != "19:00" {
		t.Errorf("FindNext() with malformed cutoff = %+v, want 19:00", ev)
	}
}
