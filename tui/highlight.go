package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// matchedPositions returns the byte offsets in text that fuzzily match
// query, or nil when query does not match text at all.
func matchedPositions(text, query string) map[int]bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	matches := fuzzy.Find(query, []string{text})
	if len(matches) == 0 {
		return nil
	}

	positions := make(map[int]bool, len(matches[0].MatchedIndexes))
	for _, idx := range matches[0].MatchedIndexes {
		positions[idx] = true
	}
	return positions
}

// highlight renders text with the runes matching query in highlightStyle and
// the rest in normalStyle.
func highlight(text, query string, highlightStyle, normalStyle lipgloss.Style) string {
	positions := matchedPositions(text, query)
	if positions == nil {
		return normalStyle.Render(text)
	}

	var b strings.Builder
	var run strings.Builder
	inMatch := false

	flush := func() {
		if run.Len() == 0 {
			return
		}
		if inMatch {
			b.WriteString(highlightStyle.Render(run.String()))
		} else {
			b.WriteString(normalStyle.Render(run.String()))
		}
		run.Reset()
	}

	for i, r := range text {
		if positions[i] != inMatch {
			flush()
			inMatch = positions[i]
		}
		run.WriteRune(r)
	}
	flush()

	return b.String()
}
