package enrichment

import (
	"regexp"
	"unicode/utf8"
)

// flagPattern matches a single flag-emoji grapheme: a regional-indicator
// pair ("🇦🇺") or a black-flag tag sequence ("🏴" followed by tag characters,
// as used for England/Scotland/Wales).
const flagPattern = `[\x{1F1E6}-\x{1F1FF}][\x{1F1E6}-\x{1F1FF}]|\x{1F3F4}[\x{E0060}-\x{E007F}]+`

var (
	flagSequence   = regexp.MustCompile(flagPattern)
	flagBeforeCode = regexp.MustCompile(`(` + flagPattern + `)\s*([A-Z])`)
)

// VisualWidth measures the display width of a short name: each flag-emoji
// grapheme counts as two cells, every other rune as one. Terminal and
// dashboard renderers give flags a double cell, so byte or rune length
// undercounts them badly.
func VisualWidth(s string) int {
	flags := len(flagSequence.FindAllString(s, -1))
	rest := flagSequence.ReplaceAllString(s, "")
	return utf8.RuneCountInString(rest) + flags*2
}

// StandardizeFlagSpacing enforces exactly one space between a flag emoji and
// the country code that follows it, smoothing over model output that glues
// them together or doubles the gap.
func StandardizeFlagSpacing(s string) string {
	return flagBeforeCode.ReplaceAllString(s, "$1 $2")
}
