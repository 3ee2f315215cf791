package summary

import (
	"time"

	"github.com/twickenham/events/internal/models"
)

// Rules configures the current/next-event decision.
type Rules struct {
	// EndOfDayCutoff is the "HH:MM" time after which all of today's events
	// count as elapsed regardless of individual timing.
	EndOfDayCutoff string
	// NextEventDelayHours is how long after kick-off an event may still be
	// considered the current one.
	NextEventDelayHours float64
}

// DefaultRules returns the stock cutoff and delay.
func DefaultRules() Rules {
	return Rules{EndOfDayCutoff: "23:00", NextEventDelayHours: 1}
}

// FindNext walks the day summaries in date order and returns the current or
// next event together with its day, or (nil, nil) when everything has
// elapsed. It is a pure function of its inputs.
//
// An event on today's list is only "over" when a later sibling exists on the
// same day and now is at least delay hours past its start. A lone event
// therefore stays current until the end-of-day cutoff fires, even long after
// its nominal duration; this mirrors the published behavior and is relied on
// downstream, so do not "fix" it here.
func FindNext(days []models.DaySummary, now time.Time, rules Rules) (*models.Event, *models.DaySummary) {
	today := now.Format("2006-01-02")
	nowHM := now.Format("15:04")

	cutoff := rules.EndOfDayCutoff
	if _, err := time.Parse("15:04", cutoff); err != nil {
		cutoff = "23:00"
	}
	delay := time.Duration(rules.NextEventDelayHours * float64(time.Hour))

	for di := range days {
		day := &days[di]
		switch {
		case day.Date < today:
			continue

		case day.Date > today:
			if len(day.Events) == 0 {
				continue
			}
			ev := day.Events[0]
			return &ev, day

		default: // today
			if nowHM >= cutoff {
				continue
			}
			for j := range day.Events {
				ev := day.Events[j]
				if ev.StartTime == nil {
					// Cannot be proven over before the cutoff.
					return &ev, day
				}
				start, err := time.Parse("15:04", *ev.StartTime)
				if err != nil {
					continue
				}
				hasLaterSibling := j+1 < len(day.Events)
				over := hasLaterSibling && nowHM >= start.Add(delay).Format("15:04")
				if !over {
					return &ev, day
				}
			}
		}
	}

	return nil, nil
}
