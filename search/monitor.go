package search

import (
	"log/slog"

	"github.com/poiesic/docseek/core"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	CacheHit(query string)
	AfterMatch(scanned, matched int)
	Finish(results []core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)               {}
func (n *noopMonitor) CacheHit(_ string)            {}
func (n *noopMonitor) AfterMatch(_, _ int)          {}
func (n *noopMonitor) Finish(_ []core.SearchResult) {}

// LogMonitor reports each search stage to a slog.Logger at debug level.
type LogMonitor struct {
	Logger *slog.Logger
}

var _ SearchMonitor = (*LogMonitor)(nil)

func (m *LogMonitor) logger() *slog.Logger {
	if m.Logger == nil {
		return slog.Default()
	}
	return m.Logger
}

func (m *LogMonitor) Start(query string) {
	m.logger().Debug("search started", "query", query)
}

func (m *LogMonitor) CacheHit(query string) {
	m.logger().Debug("search served from cache", "query", query)
}

func (m *LogMonitor) AfterMatch(scanned, matched int) {
	m.logger().Debug("corpus scanned", "documents", scanned, "matched", matched)
}

func (m *LogMonitor) Finish(results []core.SearchResult) {
	for i, r := range results {
		m.logger().Debug("ranked result", "rank", i+1, "title", r.Title, "relevance", r.Relevance)
	}
	m.logger().Debug("search finished", "results", len(results))
}
