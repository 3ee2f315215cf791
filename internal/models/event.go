package models

// RawEvent is a single unparsed row handed over by the scraping collaborator.
// Every field is free text exactly as it appeared on the source page; Time and
// Crowd may be empty when the column was absent.
type RawEvent struct {
	Date  string `json:"date"`
	Title string `json:"title"`
	Time  string `json:"time,omitempty"`
	Crowd string `json:"crowd,omitempty"`
}

// Event is one normalized fixture occurrence on a specific day. A raw row
// with several parsed start times expands into sibling events that share
// fixture, date and crowd but carry distinct start times.
type Event struct {
	Fixture      string   `json:"fixture"`
	StartTime    *string  `json:"start_time"` // "HH:MM", nil when unknown
	Crowd        *string  `json:"crowd"`      // formatted "N,NNN", nil when unknown
	FixtureShort string   `json:"fixture_short,omitempty"`
	Category     Category `json:"category,omitempty"`
	Emoji        string   `json:"emoji,omitempty"`
	MDIIcon      string   `json:"mdi_icon,omitempty"`
	EventIndex   int      `json:"event_index"` // 1-based position within the day
	EventCount   int      `json:"event_count"` // total siblings on the day
	Date         string   `json:"date"`        // ISO "2006-01-02"
}

// DisplayName returns the shortened fixture name when enrichment produced
// one, otherwise the original fixture text.
func (e *Event) DisplayName() string {
	if e.FixtureShort != "" {
		return e.FixtureShort
	}
	return e.Fixture
}

// DaySummary groups the events of one calendar day.
// Events are ordered by start time ascending with unknown times last;
// EarliestStart is the minimum non-nil start time, or nil if none.
type DaySummary struct {
	Date          string  `json:"date"`
	EventCount    int     `json:"event_count"`
	EarliestStart *string `json:"earliest_start"`
	Events        []Event `json:"events"`
}

// Category is the coarse classification of a fixture.
type Category string

const (
	CategoryTrophy  Category = "trophy"
	CategoryRugby   Category = "rugby"
	CategoryConcert Category = "concert"
	CategoryGeneric Category = "generic"
)

// Icons returns the display emoji and Material Design icon name for a
// category. Unknown categories map to the generic stadium icons.
func (c Category) Icons() (emoji, mdiIcon string) {
	switch c {
	case CategoryTrophy:
		return "\U0001F3C6", "mdi:trophy"
	case CategoryRugby:
		return "\U0001F3C9", "mdi:rugby"
	case CategoryConcert:
		return "\U0001F3B5", "mdi:music"
	default:
		return "\U0001F3DF️", "mdi:stadium"
	}
}

// DataSource describes where a fetch cycle got its rows from.
type DataSource string

const (
	DataSourceLive        DataSource = "live"
	DataSourceFailed      DataSource = "failed"
	DataSourceConfigError DataSource = "config_error"
)

// FetchStats describes one fetch performed by the scraping collaborator.
// The processing core passes it through to the status snapshot untouched.
type FetchStats struct {
	RawCount      int        `json:"raw_events_count"`
	FetchDuration float64    `json:"fetch_duration"` // seconds
	RetryAttempts int        `json:"retry_attempts"`
	DataSource    DataSource `json:"data_source"`
}
