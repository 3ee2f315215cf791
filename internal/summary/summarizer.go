// Package summary turns raw scraped rows into day-grouped, sibling-indexed
// event summaries and decides which event is current or next.
package summary

import (
	"fmt"
	"sort"
	"time"

	"github.com/twickenham/events/internal/errlog"
	"github.com/twickenham/events/internal/models"
	"github.com/twickenham/events/internal/normalize"
)

// startSortKey places events without a start time after every timed event.
const startSortKey = "23:59"

// Summarizer normalizes raw rows and groups them into DaySummaries. Parsing
// failures are recorded on the aggregator and never abort the run.
type Summarizer struct {
	errors *errlog.Aggregator
	now    func() time.Time
}

// NewSummarizer creates a summarizer reporting into the given aggregator.
func NewSummarizer(errors *errlog.Aggregator) *Summarizer {
	return &Summarizer{errors: errors, now: time.Now}
}

// SetNowFunc overrides the clock, for tests.
func (s *Summarizer) SetNowFunc(now func() time.Time) { s.now = now }

// Summarize normalizes every raw row, drops rows dated strictly before
// today, expands multi-time rows into sibling events and returns one
// DaySummary per remaining date, sorted ascending.
func (s *Summarizer) Summarize(raw []models.RawEvent) []models.DaySummary {
	today := s.now().Format("2006-01-02")
	byDate := make(map[string][]models.Event)

	for _, row := range raw {
		date, err := normalize.NormalizeDate(row.Date)
		if err != nil {
			s.errors.Record(fmt.Sprintf("could not parse date: %q", row.Date))
			continue
		}
		if date < today {
			continue
		}

		times, err := normalize.NormalizeTime(row.Time)
		if err != nil {
			s.errors.Record(err.Error())
		}

		var crowd *string
		if c, err := normalize.ValidateCrowd(row.Crowd); err != nil {
			s.errors.Record(err.Error())
		} else if c != "" {
			crowd = &c
		}

		if len(times) == 0 {
			byDate[date] = append(byDate[date], models.Event{
				Fixture: row.Title,
				Crowd:   crowd,
				Date:    date,
			})
			continue
		}
		for _, st := range times {
			start := st
			byDate[date] = append(byDate[date], models.Event{
				Fixture:   row.Title,
				StartTime: &start,
				Crowd:     crowd,
				Date:      date,
			})
		}
	}

	days := make([]models.DaySummary, 0, len(byDate))
	for date, events := range byDate {
		sort.SliceStable(events, func(i, j int) bool {
			return sortKey(events[i].StartTime) < sortKey(events[j].StartTime)
		})

		var earliest *string
		for idx := range events {
			events[idx].EventIndex = idx + 1
			events[idx].EventCount = len(events)
			if st := events[idx].StartTime; st != nil && (earliest == nil || *st < *earliest) {
				earliest = st
			}
		}

		days = append(days, models.DaySummary{
			Date:          date,
			EventCount:    len(events),
			EarliestStart: earliest,
			Events:        events,
		})
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}

func sortKey(start *string) string {
	if start == nil {
		return startSortKey
	}
	return *start
}
