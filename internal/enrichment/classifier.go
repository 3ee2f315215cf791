package enrichment

import (
	"regexp"
	"strings"

	"github.com/twickenham/events/internal/models"
)

// classRule pairs a category with the keyword patterns that select it. The
// table is evaluated in order, first match wins, so the most specific
// category must come first.
type classRule struct {
	category models.Category
	patterns []*regexp.Regexp
}

var classRules = []classRule{
	{
		category: models.CategoryTrophy,
		patterns: compileAll(
			`\b(grand final|cup final|title match|championship decider|title decider)\b`,
			`\b(world cup final|six nations final|premiership final|championship final)\b`,
			`\b(champions cup final|european cup final|heineken cup final)\b`,
			`\b(grand slam final|triple crown final)\b`,
			`\b(playoff final)\b`,
			`\b(winner takes all)\b`,
			`\b(champions league final|europa league final)\b`,
		),
	},
	{
		category: models.CategoryRugby,
		patterns: compileAll(
			`\b(rugby|rfu|six nations|world cup|nations cup|autumn international|spring international)\b`,
			`\b(england|wales|scotland|ireland|france|italy|australia|new zealand|south africa|argentina|fiji)\s+(v|vs|versus)\s+`,
			`\b(lions|all blacks|wallabies|springboks|pumas)\b`,
			`\b(internationals?|test match|championship)\b`,
			`\b(guinness|championship|premiership).*rugby\b`,
			`\b(quins|harlequins|leicester|saracens|northampton|bath|gloucester|exeter|bristol|sale|wasps)\b.*\b(v|vs|versus)\b`,
			`\b(tigers|saints|chiefs|sharks)\b.*\b(v|vs|versus)\b`,
		),
	},
	{
		category: models.CategoryConcert,
		patterns: compileAll(
			`\b(concert|tour|live|music|band|artist|singer|orchestra|symphony)\b`,
			`\b(gig|show|performance|acoustic|jazz|rock|pop|classical)\b`,
			`\b(festival|music festival)\b`,
		),
	},
}

func compileAll(exprs ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		compiled[i] = regexp.MustCompile(expr)
	}
	return compiled
}

// Classify assigns a category to a fixture name using the keyword tables.
// It is the fallback path whenever AI classification is disabled,
// unavailable or throttled.
func Classify(fixture string) models.Category {
	lower := strings.ToLower(fixture)
	for _, rule := range classRules {
		for _, pattern := range rule.patterns {
			if pattern.MatchString(lower) {
				return rule.category
			}
		}
	}
	return models.CategoryGeneric
}
