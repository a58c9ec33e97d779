package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	longContent := strings.Repeat("a", 200)

	tests := []struct {
		name      string
		content   string
		query     string
		maxLength int
		want      string
	}{
		{
			name:      "window covers whole string",
			content:   "The quick brown fox jumps",
			query:     "fox",
			maxLength: 150,
			want:      "The quick brown fox jumps",
		},
		{
			name:      "case insensitive",
			content:   "Hello WORLD",
			query:     "world",
			maxLength: 150,
			want:      "Hello WORLD",
		},
		{
			name:      "not found short content",
			content:   "short",
			query:     "zzz",
			maxLength: 150,
			want:      "short",
		},
		{
			name:      "not found long content",
			content:   longContent,
			query:     "zzz",
			maxLength: 150,
			want:      longContent[:150] + "...",
		},
		{
			name:      "not found content exactly max length",
			content:   longContent[:150],
			query:     "zzz",
			maxLength: 150,
			want:      longContent[:150],
		},
		{
			name:      "non-positive max length uses default",
			content:   longContent,
			query:     "zzz",
			maxLength: 0,
			want:      longContent[:DefaultExcerptLength] + "...",
		},
		{
			name:      "found in middle",
			content:   strings.Repeat("x", 100) + "needle" + strings.Repeat("y", 200),
			query:     "needle",
			maxLength: 150,
			want:      "..." + strings.Repeat("x", 50) + "needle" + strings.Repeat("y", 100) + "...",
		},
		{
			name:      "found at start",
			content:   "needle" + strings.Repeat("y", 200),
			query:     "NEEDLE",
			maxLength: 150,
			want:      "needle" + strings.Repeat("y", 100) + "...",
		},
		{
			name:      "found at end",
			content:   strings.Repeat("x", 100) + "needle",
			query:     "needle",
			maxLength: 150,
			want:      "..." + strings.Repeat("x", 50) + "needle",
		},
		{
			name:      "window measured in runes",
			content:   strings.Repeat("é", 60) + "fox",
			query:     "fox",
			maxLength: 150,
			want:      "..." + strings.Repeat("é", 50) + "fox",
		},
		{
			name:      "empty content",
			content:   "",
			query:     "fox",
			maxLength: 150,
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.content, tt.query, tt.maxLength))
		})
	}
}

func TestExtract_NotFoundTruncatesExactly(t *testing.T) {
	for _, n := range []int{1, 10, 99} {
		content := strings.Repeat("b", n+5)
		assert.Equal(t, content[:n]+"...", Extract(content, "q", n))
	}
}

func TestIndexFold(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		needle   string
		want     int
	}{
		{name: "found", haystack: "The quick brown fox", needle: "fox", want: 16},
		{name: "case insensitive", haystack: "The QUICK brown fox", needle: "quick", want: 4},
		{name: "first occurrence", haystack: "fox fox", needle: "fox", want: 0},
		{name: "not found", haystack: "The quick brown fox", needle: "cat", want: -1},
		{name: "empty needle", haystack: "abc", needle: "", want: 0},
		{name: "needle longer than haystack", haystack: "ab", needle: "abc", want: -1},
		{name: "rune indices", haystack: "ééé fox", needle: "FOX", want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, indexFold(tt.haystack, tt.needle))
		})
	}
}
