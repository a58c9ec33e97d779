// Package history keeps the short, most-recent-first list of queries the
// user committed, persisted through a storage.KeyValueStore.
package history

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/poiesic/docseek/storage"
)

// DefaultKey is the storage key holding the recent query list.
const DefaultKey = "docseek.recent-queries"

// MaxEntries is the most queries kept.
const MaxEntries = 5

// Store reads and writes the recent query list. The list holds no
// duplicates and is ordered most recent first.
type Store struct {
	kv     storage.KeyValueStore
	key    string
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store) error

// WithKey sets the storage key.
// Default is DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) error {
		if key == "" {
			return ErrInvalidKey
		}
		s.key = key
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewStore creates a Store persisting through kv.
func NewStore(kv storage.KeyValueStore, opts ...Option) (*Store, error) {
	if kv == nil {
		return nil, ErrStoreRequired
	}

	s := &Store{
		kv:     kv,
		key:    DefaultKey,
		logger: slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Key returns the storage key in use.
func (s *Store) Key() string {
	return s.key
}

// Load returns the persisted list. A missing or malformed value yields an
// empty list; Load never fails. Blank and repeated entries in the stored
// value are dropped, keeping the first occurrence.
func (s *Store) Load(ctx context.Context) []string {
	data, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Debug("no recent queries stored", "key", s.key)
		} else {
			s.logger.Warn("failed to read recent queries", "key", s.key, "error", err)
		}
		return []string{}
	}

	queries, err := storage.UnmarshalQueries(data)
	if err != nil {
		s.logger.Warn("discarding malformed recent queries", "key", s.key, "error", err)
		return []string{}
	}

	return sanitize(queries)
}

// sanitize drops blank entries and later duplicates from a stored list and
// truncates it to MaxEntries.
func sanitize(queries []string) []string {
	clean := make([]string, 0, min(len(queries), MaxEntries))
	for _, q := range queries {
		if len(clean) == MaxEntries {
			break
		}
		if strings.TrimSpace(q) == "" || slices.Contains(clean, q) {
			continue
		}
		clean = append(clean, q)
	}
	return clean
}

// Save persists queries, keeping at most MaxEntries.
func (s *Store) Save(ctx context.Context, queries []string) error {
	if len(queries) > MaxEntries {
		queries = queries[:MaxEntries]
	}

	data, err := storage.MarshalQueries(queries)
	if err != nil {
		return err
	}

	return s.kv.Set(ctx, s.key, data)
}

// Add records query as the most recent entry and persists the list.
// A blank query changes nothing. An existing equal entry moves to the
// front instead of being duplicated. The updated list is returned even when
// persisting fails.
func (s *Store) Add(ctx context.Context, query string) ([]string, error) {
	current := s.Load(ctx)
	if strings.TrimSpace(query) == "" {
		return current, nil
	}

	updated := Push(current, query)
	if err := s.Save(ctx, updated); err != nil {
		s.logger.Warn("failed to persist recent queries", "key", s.key, "error", err)
		return updated, err
	}

	s.logger.Debug("recent query recorded", "query", query, "entries", len(updated))
	return updated, nil
}

// Clear removes the persisted list.
func (s *Store) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, s.key)
}

// Push returns a new list with query at the front, any equal entry removed
// and the result truncated to MaxEntries. queries is not modified.
func Push(queries []string, query string) []string {
	updated := make([]string, 0, MaxEntries)
	updated = append(updated, query)
	for _, q := range queries {
		if q != query {
			updated = append(updated, q)
		}
	}
	return slices.Clip(updated[:min(len(updated), MaxEntries)])
}
