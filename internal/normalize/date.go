// Package normalize turns the free-text date, kick-off time and crowd-size
// strings scraped from the events page into canonical values. All functions
// are pure; failures come back as errors for the caller to aggregate.
package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	dayMarkerPattern = regexp.MustCompile(`\b(mon|tue|wed|thu|fri|sat|sun|monday|tuesday|wednesday|thursday|friday|saturday|sunday|weekend|wknd)\b`)
	ordinalPattern   = regexp.MustCompile(`(\d+)(st|nd|rd|th)`)
	dualDayPattern   = regexp.MustCompile(`(\d{1,2})\s*/\s*\d{1,2}(\s+[a-z]+\s+\d{2,4})`)
	multiSpace       = regexp.MustCompile(`\s+`)

	dateSeparators = strings.NewReplacer("-", " ", "/", " ", ".", " ", ",", " ")
)

// dateLayouts is an ordered table evaluated first-match-wins against the
// cleaned input. Keep it data-driven so the chain is testable on its own.
var dateLayouts = []string{
	"2 January 2006",
	"2 Jan 2006",
	"2 January 06",
	"2 Jan 06",
	"2 1 2006",
	"2 1 06",
	"2006 1 2",
}

// NormalizeDate parses a loosely formatted date string into ISO "2006-01-02".
// Weekday names, ordinal suffixes and weekend markers are stripped, a dual-day
// range like "16/17 May 2025" collapses to its first day, and two-digit years
// are promoted into the 2000s.
func NormalizeDate(raw string) (string, error) {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	if cleaned == "" {
		return "", fmt.Errorf("empty date string")
	}

	cleaned = dayMarkerPattern.ReplaceAllString(cleaned, "")
	cleaned = ordinalPattern.ReplaceAllString(cleaned, "$1")
	cleaned = dualDayPattern.ReplaceAllString(cleaned, "$1$2")
	cleaned = dateSeparators.Replace(cleaned)
	cleaned = multiSpace.ReplaceAllString(strings.TrimSpace(cleaned), " ")

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, cleaned)
		if err != nil {
			continue
		}
		// time.Parse resolves two-digit years 69-99 into the 1900s; the
		// events page never refers to the past century.
		if t.Year() < 2000 {
			t = t.AddDate(100, 0, 0)
		}
		return t.Format("2006-01-02"), nil
	}

	return "", fmt.Errorf("could not parse date: %q", raw)
}
