package rating

import "regexp"

// revenuePatterns match whole words evoking a visible monetization path.
// Word boundaries matter here: "fee" must not fire inside "coffee" or "feed".
var revenuePatterns = compilePatterns([]string{
	`subscriptions?`,
	`fees?`,
	`memberships?`,
	`advertising`,
	`sponsorships?`,
	`commissions?`,
	`marketplaces?`,
	`sell(s|ing)?`,
	`pricing`,
	`payments?`,
	`b2b`,
	`enterprise`,
	`saas`,
	`licens(e|es|ing)`,
})

// charityPatterns match charitable or giveaway framing.
var charityPatterns = compilePatterns([]string{
	`charity`,
	`donations?`,
	`free\s+food`,
	`feed(s|ing)?\s+(the\s+)?homeless`,
	`non-?profit`,
	`giving\s+away`,
})

const (
	charityNote  = "meh - heart is in the right place, business model is not."
	demotionNote = "Promising, but the path to revenue is unclear."
)

func compilePatterns(exprs []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		patterns = append(patterns, regexp.MustCompile(`(?i)\b(`+expr+`)\b`))
	}
	return patterns
}

func matchesAny(text string, patterns []*regexp.Regexp) bool {
	for _, pattern := range patterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// ApplyGuardrail post-processes an AI verdict against the original idea text.
// Charity-framed ideas with no monetization are forced to Meh, and top-rated
// ideas lacking any revenue keyword are demoted one step. Everything else
// passes through unchanged. Deterministic; never calls the AI.
func ApplyGuardrail(ideaText string, r Rating, note string) (Rating, string) {
	hasRevenue := matchesAny(ideaText, revenuePatterns)
	charityLike := matchesAny(ideaText, charityPatterns)

	if charityLike && !hasRevenue {
		return Meh, charityNote
	}
	if r == ReallyGood && !hasRevenue {
		return KindaGood, demotionNote
	}
	return r, note
}
