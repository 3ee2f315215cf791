package enrichment

import (
	"fmt"
	"strconv"
	"strings"
)

const systemPrompt = "You abbreviate stadium fixture names for small displays. " +
	"Respond only in the requested format, with no commentary."

// DefaultPromptTemplate is the single-fixture prompt. The placeholders are
// substituted at call time; operators may override the template wholesale
// through configuration.
const DefaultPromptTemplate = `Shorten this event name so it fits within {char_limit} visual units, where a flag emoji counts as 2 units and every other character as 1.
{flag_instructions}

Examples:
{flag_examples}

fixture: {event_name}
fixture_short:`

const flagInstructions = `When there's space and the event involves countries, add Unicode flag emojis with EXACTLY ONE SPACE between flag and country code.`

const flagExamples = `fixture: England v Australia
fixture_short: ` + "\U0001F3F4\U000E0067\U000E0062\U000E0065\U000E006E\U000E0067\U000E007F" + ` ENG v ` + "\U0001F1E6\U0001F1FA" + ` AUS

fixture: Argentina V South Africa
fixture_short: ` + "\U0001F1E6\U0001F1F7" + ` ARG V ` + "\U0001F1FF\U0001F1E6" + ` RSA`

const textOnlyInstructions = `Keep text-only format without flag emojis.`

const textOnlyExamples = `fixture: England v Australia
fixture_short: ENG v AUS

fixture: Argentina V South Africa
fixture_short: ARG V RSA`

func buildShortenPrompt(template, fixture string, charLimit int, flagsEnabled bool) string {
	instructions, examples := textOnlyInstructions, textOnlyExamples
	if flagsEnabled {
		instructions, examples = flagInstructions, flagExamples
	}
	return strings.NewReplacer(
		"{char_limit}", strconv.Itoa(charLimit),
		"{event_name}", fixture,
		"{flag_instructions}", instructions,
		"{flag_examples}", examples,
	).Replace(template)
}

// buildBatchPrompt asks for every fixture in one call. The response format is
// one line per input, "index|short_name|category", which keeps parsing
// independent of the fixture text itself.
func buildBatchPrompt(fixtures []string, charLimit int, flagsEnabled bool) string {
	instructions := textOnlyInstructions
	if flagsEnabled {
		instructions = flagInstructions
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Shorten each event name below so it fits within %d visual units, where a flag emoji counts as 2 units and every other character as 1.\n", charLimit)
	b.WriteString(instructions)
	b.WriteString("\n\nAlso classify each event as one of: trophy, rugby, concert, generic.\n")
	b.WriteString("Respond with exactly one line per event in the form:\nindex|short_name|category\n\nEvents:\n")
	for i, fixture := range fixtures {
		fmt.Fprintf(&b, "%d. %s\n", i+1, fixture)
	}
	return b.String()
}

// parseBatchResponse maps "index|short_name|category" lines back onto the
// input order. Lines that do not parse are simply absent from the result;
// the caller falls back per fixture.
func parseBatchResponse(response string, fixtures []string) map[string]batchLine {
	out := make(map[string]batchLine, len(fixtures))
	for _, line := range strings.Split(response, "\n") {
		parts := strings.SplitN(strings.TrimSpace(line), "|", 3)
		if len(parts) != 3 {
			continue
		}
		idx, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(parts[0], ".")))
		if err != nil || idx < 1 || idx > len(fixtures) {
			continue
		}
		out[fixtures[idx-1]] = batchLine{
			short:    strings.TrimSpace(parts[1]),
			category: strings.ToLower(strings.TrimSpace(parts[2])),
		}
	}
	return out
}

type batchLine struct {
	short    string
	category string
}
