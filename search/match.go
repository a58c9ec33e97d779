package search

import "strings"

// Matches reports whether field matches query, ignoring case.
// A contiguous substring always matches. Otherwise every rune of query must
// appear in field in order, though not necessarily adjacent. Runes in field
// may be skipped; runes in query never are.
func Matches(field, query string) bool {
	f := strings.ToLower(field)
	q := strings.ToLower(query)

	if strings.Contains(f, q) {
		return true
	}

	return isSubsequence(f, q)
}

// isSubsequence scans field left to right consuming query runes in order.
func isSubsequence(field, query string) bool {
	want := []rune(query)
	next := 0

	for _, r := range field {
		if next == len(want) {
			break
		}
		if r == want[next] {
			next++
		}
	}

	return next == len(want)
}
