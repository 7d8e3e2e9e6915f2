package moderation

import "strings"

// Local keyword screen, a crude supplement to the hosted moderation endpoint.
// Matching is case-insensitive substring membership.

var adultKeywords = []string{
	"nude", "naked", "sexual", "explicit", "adult", "pornographic",
	"erotic", "intimate", "seductive", "provocative", "sensual",
}

var violenceKeywords = []string{
	"violence", "violent", "weapon", "gun", "blood", "death", "kill",
	"murder", "fight", "battle", "war", "destruction", "harm",
}

var inappropriateKeywords = []string{
	"hate", "racist", "discriminatory", "offensive", "inappropriate",
	"illegal", "drugs", "gambling", "extremist",
}

func matchesAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// keywordIndicators returns the indicator classes whose keyword lists match
// the text, in a fixed order.
func keywordIndicators(text string) []string {
	var indicators []string
	if matchesAny(text, adultKeywords) {
		indicators = append(indicators, "adult content indicators")
	}
	if matchesAny(text, violenceKeywords) {
		indicators = append(indicators, "violent content indicators")
	}
	if matchesAny(text, inappropriateKeywords) {
		indicators = append(indicators, "inappropriate content indicators")
	}
	return indicators
}
