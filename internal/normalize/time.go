package normalize

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	// The "12 noon"/"noon 12" forms must be rewritten before the bare word,
	// otherwise the leading 12 survives and produces a duplicate token.
	noonWithTwelve      = regexp.MustCompile(`\b12\s*noon\b`)
	twelveAfterNoon     = regexp.MustCompile(`\bnoon\s*12\b`)
	midnightWithTwelve  = regexp.MustCompile(`\b12\s*midnight\b`)
	twelveAfterMidnight = regexp.MustCompile(`\bmidnight\s*12\b`)

	tbcQualifier = regexp.MustCompile(`\s*\(tbc\)`)
	timeToken    = regexp.MustCompile(`\b\d{1,2}(?::\d{2})?\s*(?:am|pm)?\b`)
)

// NormalizeTime parses a free-text kick-off string into a sorted, deduplicated
// list of 24-hour "HH:MM" values. A plain "tbc" (any case) means the time is
// genuinely unknown and yields nil with no error. Several returned times
// represent a double-header sharing the same day.
//
// Tokens without an explicit am/pm inherit the meridian of the right-most
// token that states one, so "2 and 5pm" reads as 14:00 and 17:00.
func NormalizeTime(raw string) ([]string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" || s == "tbc" {
		return nil, nil
	}

	s = noonWithTwelve.ReplaceAllString(s, "12:00pm")
	s = twelveAfterNoon.ReplaceAllString(s, "12:00pm")
	s = strings.ReplaceAll(s, "noon", "12:00pm")
	s = midnightWithTwelve.ReplaceAllString(s, "12:00am")
	s = twelveAfterMidnight.ReplaceAllString(s, "12:00am")
	s = strings.ReplaceAll(s, "midnight", "12:00am")

	s = tbcQualifier.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, ".", ":")
	s = strings.ReplaceAll(s, " and ", " & ")

	tokens := timeToken.FindAllString(s, -1)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("no valid time patterns found in: %q", raw)
	}

	shared := defaultMeridian(tokens)

	seen := make(map[string]bool, len(tokens))
	var times []string
	for _, tok := range tokens {
		hhmm, ok := parseSingleTime(tok, shared)
		if !ok {
			continue
		}
		if !seen[hhmm] {
			seen[hhmm] = true
			times = append(times, hhmm)
		}
	}
	if len(times) == 0 {
		return nil, fmt.Errorf("no parseable times in: %q", raw)
	}

	sort.Strings(times)
	return times, nil
}

// defaultMeridian returns the meridian of the right-most token that states
// one explicitly, or "" when no token does.
func defaultMeridian(tokens []string) string {
	for i := len(tokens) - 1; i >= 0; i-- {
		if strings.Contains(tokens[i], "am") {
			return "am"
		}
		if strings.Contains(tokens[i], "pm") {
			return "pm"
		}
	}
	return ""
}

func parseSingleTime(token, sharedMeridian string) (string, bool) {
	tok := strings.TrimSpace(token)
	meridian := sharedMeridian
	switch {
	case strings.Contains(tok, "pm"):
		meridian = "pm"
		tok = strings.TrimSpace(strings.Replace(tok, "pm", "", 1))
	case strings.Contains(tok, "am"):
		meridian = "am"
		tok = strings.TrimSpace(strings.Replace(tok, "am", "", 1))
	}

	var hour, minute int
	var err error
	if h, m, found := strings.Cut(tok, ":"); found {
		hour, err = strconv.Atoi(h)
		if err != nil {
			return "", false
		}
		minute, err = strconv.Atoi(m)
		if err != nil {
			return "", false
		}
	} else {
		hour, err = strconv.Atoi(tok)
		if err != nil {
			return "", false
		}
	}

	// An hour above 12 contradicts an explicit or inherited meridian.
	if hour > 12 && meridian != "" {
		return "", false
	}
	if hour > 23 {
		return "", false
	}
	if meridian == "pm" && hour < 12 {
		hour += 12
	} else if meridian == "am" && hour == 12 {
		hour = 0
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", false
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), true
}
