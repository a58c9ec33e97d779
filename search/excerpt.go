package search

import "unicode"

// DefaultExcerptLength is the number of leading runes used when the query
// does not occur in the content.
const DefaultExcerptLength = 150

const (
	excerptLeadIn = 50  // runes kept before the first occurrence
	excerptTail   = 100 // runes kept after the end of the first occurrence
	ellipsis      = "..."
)

// Extract returns a plain-text snippet of content around the first
// case-insensitive occurrence of query. Lengths are measured in runes.
//
// When query is absent the first maxLength runes are returned. An ellipsis
// marks each side where the snippet does not reach the edge of content.
// A non-positive maxLength selects DefaultExcerptLength.
func Extract(content, query string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultExcerptLength
	}

	runes := []rune(content)
	idx := indexFold(content, query)

	if idx < 0 {
		if len(runes) <= maxLength {
			return content
		}
		return string(runes[:maxLength]) + ellipsis
	}

	start := max(0, idx-excerptLeadIn)
	end := min(len(runes), idx+len([]rune(query))+excerptTail)

	excerpt := string(runes[start:end])
	if start > 0 {
		excerpt = ellipsis + excerpt
	}
	if end < len(runes) {
		excerpt += ellipsis
	}

	return excerpt
}

// lowerRunes lowercases s rune by rune, so indices line up with []rune(s).
func lowerRunes(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}

// indexFold returns the rune index of the first case-insensitive occurrence
// of needle in haystack, or -1.
func indexFold(haystack, needle string) int {
	h := lowerRunes(haystack)
	n := lowerRunes(needle)

	if len(n) == 0 {
		return 0
	}

	for i := 0; i+len(n) <= len(h); i++ {
		found := true
		for j := range n {
			if h[i+j] != n[j] {
				found = false
				break
			}
		}
		if found {
			return i
		}
	}

	return -1
}
