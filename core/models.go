package core

import (
	"encoding/binary"
	"strconv"

	"github.com/go-crypt/x/blake2b"
)

// ID is a content-derived identifier.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// String renders the ID as lowercase hex, the form used for DocumentEntry.ID.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 16)
}

// DocumentEntry is a single searchable documentation page.
// Entries are owned by the corpus and never mutated by search or session code.
type DocumentEntry struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Path    string `json:"path"`    // Opaque navigation target
	Section string `json:"section"` // Grouping label shown next to the title
	Content string `json:"content"`
}

// SearchResult is a ranked match produced by a single search call.
type SearchResult struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Path      string `json:"path"`
	Section   string `json:"section"`
	Excerpt   string `json:"excerpt"`
	Relevance int    `json:"relevance"`
}

// NewSearchResult builds a result for doc with the given excerpt and relevance.
func NewSearchResult(doc *DocumentEntry, excerpt string, relevance int) SearchResult {
	return SearchResult{
		ID:        doc.ID,
		Title:     doc.Title,
		Path:      doc.Path,
		Section:   doc.Section,
		Excerpt:   excerpt,
		Relevance: relevance,
	}
}
