// Package session implements the open/type/select/commit lifecycle of a
// search palette on top of a search engine and a recent query store.
//
// A Session is a plain state machine. It is not safe for concurrent use;
// the caller's event loop serializes transitions.
package session

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/poiesic/docseek/core"
)

// State is the lifecycle state of a Session.
type State int

const (
	// StateClosed means the palette is hidden.
	StateClosed State = iota
	// StateOpenEmpty means the palette is shown with no query typed.
	StateOpenEmpty
	// StateOpenResults means the palette is shown with a non-blank query.
	StateOpenResults
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpenEmpty:
		return "open-empty"
	case StateOpenResults:
		return "open-results"
	default:
		return "unknown"
	}
}

// Searcher ranks documents for a query.
type Searcher interface {
	Search(query string) []core.SearchResult
}

// RecentQueries persists the recent query list.
type RecentQueries interface {
	Load(ctx context.Context) []string
	Add(ctx context.Context, query string) ([]string, error)
}

// Navigator receives the path of a committed result.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

// Navigate calls f(path).
func (f NavigatorFunc) Navigate(path string) {
	f(path)
}

// Snapshot is a copy of the observable session state.
type Snapshot struct {
	State         State
	Query         string
	Results       []core.SearchResult
	SelectedIndex int
	RecentQueries []string
}

// Session holds the palette state.
type Session struct {
	engine    Searcher
	history   RecentQueries
	navigator Navigator
	keys      KeyMap
	listeners []func(Event)
	logger    *slog.Logger

	state    State
	query    string
	results  []core.SearchResult
	selected int
	recent   []string
}

// Option configures a Session.
type Option func(*Session) error

// WithNavigator sets the collaborator receiving committed paths.
// Default discards them; Commit still returns the path.
func WithNavigator(navigator Navigator) Option {
	return func(s *Session) error {
		s.navigator = navigator
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithKeyMap replaces the key bindings used by HandleKey.
// Default is DefaultKeyMap().
func WithKeyMap(keys KeyMap) Option {
	return func(s *Session) error {
		if len(keys.Toggle) == 0 {
			return ErrInvalidKeyMap
		}
		s.keys = keys
		return nil
	}
}

// WithListener registers fn to receive events. May be given more than once.
func WithListener(fn func(Event)) Option {
	return func(s *Session) error {
		if fn != nil {
			s.listeners = append(s.listeners, fn)
		}
		return nil
	}
}

// New creates a closed session. The recent query list is loaded from history
// immediately.
func New(engine Searcher, history RecentQueries, opts ...Option) (*Session, error) {
	if engine == nil {
		return nil, ErrSearcherRequired
	}
	if history == nil {
		return nil, ErrHistoryRequired
	}

	s := &Session{
		engine:  engine,
		history: history,
		keys:    DefaultKeyMap(),
		logger:  slog.Default(),
		state:   StateClosed,
		results: []core.SearchResult{},
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	s.recent = history.Load(context.Background())
	return s, nil
}

func (s *Session) emit(e Event) {
	for _, fn := range s.listeners {
		fn(e)
	}
}

// reset drops the query, results and selection.
func (s *Session) reset() {
	s.query = ""
	s.results = []core.SearchResult{}
	s.selected = 0
}

// Open shows the palette with a fresh, empty query.
// Does nothing if already open.
func (s *Session) Open() {
	if s.IsOpen() {
		return
	}
	s.reset()
	s.state = StateOpenEmpty
	s.logger.Debug("session opened")
	s.emit(OpenedEvent{})
}

// Close hides the palette and forgets the query and results.
// Recent queries are kept.
func (s *Session) Close() {
	if s.state == StateClosed {
		return
	}
	s.reset()
	s.state = StateClosed
	s.logger.Debug("session closed")
	s.emit(ClosedEvent{})
}

// Toggle opens a closed session and closes an open one.
func (s *Session) Toggle() {
	if s.IsOpen() {
		s.Close()
		return
	}
	s.Open()
}

// SetQuery reruns the search for q and resets the selection.
// A blank q leaves the session open with no results.
// Ignored while closed.
func (s *Session) SetQuery(q string) {
	if !s.IsOpen() {
		return
	}

	s.query = q
	s.selected = 0
	if strings.TrimSpace(q) == "" {
		s.results = []core.SearchResult{}
		s.state = StateOpenEmpty
	} else {
		s.results = s.engine.Search(q)
		s.state = StateOpenResults
	}

	s.logger.Debug("query changed", "query", q, "results", len(s.results))
	s.emit(QueryChangedEvent{Query: q, Results: len(s.results)})
}

// SelectRecent runs a previously committed query, opening the session first
// if needed.
func (s *Session) SelectRecent(q string) {
	s.Open()
	s.SetQuery(q)
}

// MoveSelection shifts the highlighted result by delta, clamped to the
// result list. Does nothing without results.
func (s *Session) MoveSelection(delta int) {
	if s.state != StateOpenResults || len(s.results) == 0 {
		return
	}

	from := s.selected
	s.selected = max(0, min(s.selected+delta, len(s.results)-1))
	if s.selected != from {
		s.emit(SelectionMovedEvent{From: from, To: s.selected})
	}
}

// Commit chooses the highlighted result. The query is recorded in history
// before the session closes and the navigator is called. Returns false when
// nothing is highlighted.
func (s *Session) Commit(ctx context.Context) (string, bool) {
	result, ok := s.Selected()
	if !ok {
		return "", false
	}

	query := s.query
	recent, err := s.history.Add(ctx, query)
	if err != nil {
		s.logger.Warn("failed to persist recent query", "query", query, "error", err)
	}
	if recent != nil {
		s.recent = recent
	}

	s.emit(CommittedEvent{Query: query, Path: result.Path})
	s.Close()

	if s.navigator != nil {
		s.navigator.Navigate(result.Path)
	}
	s.logger.Debug("result committed", "query", query, "path", result.Path)

	return result.Path, true
}

// HandleKey applies key to the session and reports whether it was consumed.
// The toggle binding works in every state and wins over other bindings.
// Navigation bindings are consumed only while open.
func (s *Session) HandleKey(ctx context.Context, key string) bool {
	if bound(s.keys.Toggle, key) {
		s.Toggle()
		return true
	}
	if !s.IsOpen() {
		return false
	}

	switch {
	case bound(s.keys.Down, key):
		s.MoveSelection(1)
	case bound(s.keys.Up, key):
		s.MoveSelection(-1)
	case bound(s.keys.Commit, key):
		s.Commit(ctx)
	case bound(s.keys.Close, key):
		s.Close()
	default:
		return false
	}
	return true
}

// State returns the lifecycle state.
func (s *Session) State() State {
	return s.state
}

// IsOpen reports whether the palette is shown.
func (s *Session) IsOpen() bool {
	return s.state != StateClosed
}

// Query returns the current query text.
func (s *Session) Query() string {
	return s.query
}

// Results returns a copy of the current results.
func (s *Session) Results() []core.SearchResult {
	return slices.Clone(s.results)
}

// SelectedIndex returns the index of the highlighted result.
func (s *Session) SelectedIndex() int {
	return s.selected
}

// Selected returns the highlighted result, if any.
func (s *Session) Selected() (core.SearchResult, bool) {
	if !s.IsOpen() || s.selected < 0 || s.selected >= len(s.results) {
		return core.SearchResult{}, false
	}
	return s.results[s.selected], true
}

// RecentQueries returns a copy of the recent query list, most recent first.
func (s *Session) RecentQueries() []string {
	return slices.Clone(s.recent)
}

// KeyMap returns the active key bindings.
func (s *Session) KeyMap() KeyMap {
	return s.keys
}

// Snapshot copies the observable state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		State:         s.state,
		Query:         s.query,
		Results:       s.Results(),
		SelectedIndex: s.selected,
		RecentQueries: s.RecentQueries(),
	}
}
