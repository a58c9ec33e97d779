// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package search

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/poiesic/docseek/core"
)

// MaxResults is the most results a single search returns.
const MaxResults = 10

// DefaultCacheSize is the number of distinct queries memoized by default.
const DefaultCacheSize = 256

// Engine ranks documents of a fixed corpus against free-text queries.
// It is safe for concurrent use; the corpus is copied at construction and
// never modified.
type Engine struct {
	documents     []core.DocumentEntry
	excerptLength int
	cacheSize     int
	cache         *lru.Cache[string, []core.SearchResult]
	logger        *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithExcerptLength sets the excerpt length used when the query is not
// found in a document's content.
// Default is DefaultExcerptLength.
func WithExcerptLength(length int) Option {
	return func(e *Engine) error {
		if length <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidExcerptLength, length)
		}
		e.excerptLength = length
		return nil
	}
}

// WithCacheSize sets how many distinct queries are memoized.
// Zero disables the cache. Default is DefaultCacheSize.
func WithCacheSize(size int) Option {
	return func(e *Engine) error {
		if size < 0 {
			return fmt.Errorf("%w: %d", ErrInvalidCacheSize, size)
		}
		e.cacheSize = size
		return nil
	}
}

// NewEngine creates a search engine over documents.
// An empty corpus is valid; every search on it returns no results.
func NewEngine(documents []core.DocumentEntry, opts ...Option) (*Engine, error) {
	e := &Engine{
		documents:     slices.Clone(documents),
		excerptLength: DefaultExcerptLength,
		cacheSize:     DefaultCacheSize,
		logger:        slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	if e.cacheSize > 0 {
		cache, err := lru.New[string, []core.SearchResult](e.cacheSize)
		if err != nil {
			return nil, err
		}
		e.cache = cache
	}

	return e, nil
}

// Len returns the number of documents in the corpus.
func (e *Engine) Len() int {
	return len(e.documents)
}

// Search returns up to MaxResults documents matching query, highest
// relevance first. Documents with equal relevance keep corpus order.
// A blank query returns an empty slice without scanning the corpus.
func (e *Engine) Search(query string) []core.SearchResult {
	return e.SearchWithMonitor(query, nil)
}

// scored is a matched document awaiting its excerpt.
type scored struct {
	doc       *core.DocumentEntry
	relevance int
}

// SearchWithMonitor is Search with a monitor receiving callbacks at each stage.
func (e *Engine) SearchWithMonitor(query string, monitor SearchMonitor) []core.SearchResult {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	if strings.TrimSpace(query) == "" {
		results := []core.SearchResult{}
		monitor.Finish(results)
		return results
	}

	if e.cache != nil {
		if cached, ok := e.cache.Get(query); ok {
			monitor.CacheHit(query)
			results := slices.Clone(cached)
			monitor.Finish(results)
			return results
		}
	}

	// 1. Filter and score
	matched := make([]scored, 0)
	for i := range e.documents {
		doc := &e.documents[i]
		if !Matches(doc.Title, query) && !Matches(doc.Content, query) {
			continue
		}
		matched = append(matched, scored{
			doc:       doc,
			relevance: Score(doc.Title, doc.Content, query),
		})
	}
	monitor.AfterMatch(len(e.documents), len(matched))

	// 2. Rank, keeping corpus order for ties
	slices.SortStableFunc(matched, func(a, b scored) int {
		return cmp.Compare(b.relevance, a.relevance)
	})
	if len(matched) > MaxResults {
		matched = matched[:MaxResults]
	}

	// 3. Excerpts only for the survivors
	results := make([]core.SearchResult, 0, len(matched))
	for _, m := range matched {
		excerpt := Extract(m.doc.Content, query, e.excerptLength)
		results = append(results, core.NewSearchResult(m.doc, excerpt, m.relevance))
	}

	e.logger.Debug("search completed", "query", query, "results", len(results))

	if e.cache != nil {
		e.cache.Add(query, slices.Clone(results))
	}
	monitor.Finish(results)

	return results
}
