package search

import "strings"

// Title match bonuses. Only the strongest applicable bonus is awarded.
const (
	ExactTitleBonus     = 100
	PrefixTitleBonus    = 80
	SubstringTitleBonus = 60
)

// Content frequency weighting.
const (
	ContentHitWeight = 5
	MaxContentBonus  = 40
)

// Score computes the relevance of a document for query, ignoring case.
//
// The title contributes ExactTitleBonus, PrefixTitleBonus or
// SubstringTitleBonus (or nothing for a subsequence-only or content-only hit).
// Content contributes ContentHitWeight per non-overlapping occurrence of the
// literal query, capped at MaxContentBonus.
func Score(title, content, query string) int {
	q := strings.ToLower(query)
	if q == "" {
		return 0
	}
	t := strings.ToLower(title)

	score := 0
	switch {
	case t == q:
		score += ExactTitleBonus
	case strings.HasPrefix(t, q):
		score += PrefixTitleBonus
	case strings.Contains(t, q):
		score += SubstringTitleBonus
	}

	hits := strings.Count(strings.ToLower(content), q)
	score += min(hits*ContentHitWeight, MaxContentBonus)

	return score
}
