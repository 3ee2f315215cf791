package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// maxPlausibleCrowd is the plausibility ceiling for a single attendance
// figure; larger tokens are treated as scrape noise (phone numbers, years
// glued together) unless nothing smaller is present.
const maxPlausibleCrowd = 100000

var (
	crowdQualifier = regexp.MustCompile(`(?i)(TBC|Estimate|Est|Approx|~)`)
	crowdRange     = regexp.MustCompile(`(\d+)\s*-\s*(\d+,\d+)`)
	digitRun       = regexp.MustCompile(`\d+`)
)

// ValidateCrowd parses a free-text crowd-size string into a comma-formatted
// figure like "82,000". An empty input means the field was absent and yields
// "" with no error; a present but unusable value yields an error.
//
// A range such as "50,000-82,000" keeps its upper bound. When several
// numbers appear the largest plausible one wins.
func ValidateCrowd(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}

	cleaned := strings.TrimSpace(crowdQualifier.ReplaceAllString(raw, ""))
	if m := crowdRange.FindStringSubmatch(cleaned); m != nil {
		cleaned = m[2]
	}
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	tokens := digitRun.FindAllString(cleaned, -1)
	if len(tokens) == 0 {
		return "", fmt.Errorf("invalid crowd size: %q", raw)
	}

	best := -1
	overCeiling := -1
	for _, tok := range tokens {
		n, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		if n > overCeiling {
			overCeiling = n
		}
		if n <= maxPlausibleCrowd && n > best {
			best = n
		}
	}
	if best < 0 {
		if overCeiling >= 0 {
			return "", fmt.Errorf("implausible crowd size detected: %q", raw)
		}
		return "", fmt.Errorf("invalid crowd size: %q", raw)
	}

	return formatThousands(best), nil
}

// formatThousands renders n with comma separators, e.g. 82000 -> "82,000".
func formatThousands(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
