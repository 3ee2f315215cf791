package errlog

import (
	"fmt"
	"testing"
	"time"
)

func TestAggregatorDeduplicatesAcrossCycles(t *testing.T) {
	a := NewAggregator(25)

	for cycle := 0; cycle < 3; cycle++ {
		a.RecordAll([]string{
			"could not parse date: \"garbled\"",
			"implausible crowd size detected: \"150000\"",
		})
	}

	if got := a.Count(); got != 2 {
		t.Errorf("Count() = %d after repeated cycles, want 2", got)
	}
}

func TestAggregatorTimestampsFirstSight(t *testing.T) {
	a := NewAggregator(25)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	a.SetNowFunc(func() time.Time { return now })

	a.Record("first failure")
	now = base.Add(time.Hour)
	a.Record("first failure") // duplicate, must not re-stamp

	entries := a.Entries()
	if len(entries) != 1 {
		t.Fatalf("Entries() = %d, want 1", len(entries))
	}
	if !entries[0].Timestamp.Equal(base) {
		t.Errorf("Timestamp = %v, want first-sight %v", entries[0].Timestamp, base)
	}
}

func TestAggregatorBoundEvictsOldest(t *testing.T) {
	a := NewAggregator(3)

	for i := 1; i <= 5; i++ {
		a.Record(fmt.Sprintf("failure %d", i))
	}

	entries := a.Entries()
	if len(entries) != 3 {
		t.Fatalf("Entries() = %d, want 3", len(entries))
	}
	for i, want := range []string{"failure 3", "failure 4", "failure 5"} {
		if entries[i].Message != want {
			t.Errorf("entries[%d] = %q, want %q", i, entries[i].Message, want)
		}
	}

	// An evicted message is no longer "seen" and may be recorded again.
	a.Record("failure 1")
	entries = a.Entries()
	if entries[len(entries)-1].Message != "failure 1" {
		t.Errorf("evicted message not re-recordable, entries = %+v", entries)
	}
}

func TestAggregatorIgnoresEmptyMessages(t *testing.T) {
	a := NewAggregator(25)
	a.RecordAll([]string{"", "real failure", ""})
	if got := a.Count(); got != 1 {
		t.Errorf("Count() = %d, want 1", got)
	}
}

func TestAggregatorReset(t *testing.T) {
	a := NewAggregator(25)
	a.Record("failure")
	a.Reset()

	if got := a.Count(); got != 0 {
		t.Errorf("Count() after Reset = %d, want 0", got)
	}

	// After a reset the same message is new again.
	a.Record("failure")
	if got := a.Count(); got != 1 {
		t.Errorf("Count() after re-record = %d, want 1", got)
	}
}

func TestAggregatorNonPositiveMaxUsesDefault(t *testing.T) {
	a := NewAggregator(0)
	for i := 0; i < DefaultMaxErrors+10; i++ {
		a.Record(fmt.Sprintf("failure %d", i))
	}
	if got := a.Count(); got != DefaultMaxErrors {
		t.Errorf("Count() = %d, want %d", got, DefaultMaxErrors)
	}
}
