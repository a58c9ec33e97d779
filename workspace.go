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

// Package docseek wires a documentation corpus, a search engine and a
// persisted recent query list into search sessions.
package docseek

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/poiesic/docseek/config"
	"github.com/poiesic/docseek/core"
	"github.com/poiesic/docseek/corpus"
	"github.com/poiesic/docseek/history"
	"github.com/poiesic/docseek/search"
	"github.com/poiesic/docseek/session"
	"github.com/poiesic/docseek/storage"
	"github.com/poiesic/docseek/storage/badger"
	"github.com/poiesic/docseek/storage/sqlite"
)

// Workspace owns everything a search session needs.
type Workspace struct {
	cfg       *config.Config
	documents []core.DocumentEntry
	engine    *search.Engine
	kv        storage.KeyValueStore
	history   *history.Store
	logger    *slog.Logger
}

// WorkspaceOption configures a Workspace.
type WorkspaceOption func(*workspaceOptions)

type workspaceOptions struct {
	logger *slog.Logger
	kv     storage.KeyValueStore
}

// WithLogger sets a custom logger for the workspace and its components.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) WorkspaceOption {
	return func(o *workspaceOptions) {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
	}
}

// WithKeyValueStore supplies the store for recent queries, bypassing the
// configured backend. The workspace takes ownership and closes it.
func WithKeyValueStore(kv storage.KeyValueStore) WorkspaceOption {
	return func(o *workspaceOptions) {
		o.kv = kv
	}
}

// Open loads the corpus named by cfg and builds a workspace around it.
func Open(ctx context.Context, cfg *config.Config, opts ...WorkspaceOption) (*Workspace, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := applyOptions(opts)

	loader, err := corpus.NewLoader(
		corpus.WithPoolSize(cfg.LoadWorkers),
		corpus.WithLogger(options.logger),
	)
	if err != nil {
		return nil, err
	}
	defer loader.Release()

	documents, err := loader.LoadPath(ctx, cfg.CorpusPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}

	return New(ctx, cfg, documents, opts...)
}

// New builds a workspace around documents. cfg.CorpusPath is ignored.
func New(ctx context.Context, cfg *config.Config, documents []core.DocumentEntry, opts ...WorkspaceOption) (*Workspace, error) {
	if err := cfg.ValidateSettings(); err != nil {
		return nil, err
	}

	options := applyOptions(opts)

	engine, err := search.NewEngine(documents,
		search.WithLogger(options.logger),
		search.WithExcerptLength(cfg.ExcerptLength),
		search.WithCacheSize(cfg.CacheSize),
	)
	if err != nil {
		return nil, err
	}

	kv := options.kv
	if kv == nil {
		kv, err = OpenStore(ctx, cfg, options.logger)
		if err != nil {
			return nil, err
		}
	}

	store, err := history.NewStore(kv,
		history.WithKey(cfg.HistoryKey),
		history.WithLogger(options.logger),
	)
	if err != nil {
		kv.Close()
		return nil, err
	}

	options.logger.Debug("workspace ready",
		"documents", engine.Len(),
		"backend", cfg.StorageBackend,
		"storage", cfg.StoragePath)

	return &Workspace{
		cfg:       cfg,
		documents: slices.Clone(documents),
		engine:    engine,
		kv:        kv,
		history:   store,
		logger:    options.logger,
	}, nil
}

func applyOptions(opts []WorkspaceOption) *workspaceOptions {
	options := &workspaceOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// OpenStore opens the key/value backend selected by cfg.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.KeyValueStore, error) {
	switch cfg.StorageBackend {
	case config.BackendBadger:
		return badger.Open(cfg.StoragePath, false, badger.WithLogger(logger))
	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.StoragePath), 0755); err != nil {
			return nil, err
		}
		return sqlite.Open(ctx, cfg.StoragePath, sqlite.WithLogger(logger))
	case config.BackendMemory:
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: unknown StorageBackend %q", config.ErrInvalidConfig, cfg.StorageBackend)
	}
}

// Close releases the storage backend.
func (w *Workspace) Close() error {
	if err := w.kv.Close(); err != nil {
		w.logger.Error("error closing storage", "err", err)
		return err
	}
	return nil
}

// Config returns the workspace configuration.
func (w *Workspace) Config() *config.Config {
	return w.cfg
}

// Documents returns a copy of the corpus.
func (w *Workspace) Documents() []core.DocumentEntry {
	return slices.Clone(w.documents)
}

// Engine returns the search engine.
func (w *Workspace) Engine() *search.Engine {
	return w.engine
}

// History returns the recent query store.
func (w *Workspace) History() *history.Store {
	return w.history
}

// NewSession creates a closed session bound to the workspace's engine and
// history. The configured toggle key is bound ahead of opts, so opts may
// override it.
func (w *Workspace) NewSession(opts ...session.Option) (*session.Session, error) {
	keys := session.DefaultKeyMap()
	keys.Toggle = []string{w.cfg.ToggleKey}

	defaults := []session.Option{
		session.WithKeyMap(keys),
		session.WithLogger(w.logger),
	}
	return session.New(w.engine, w.history, append(defaults, opts...)...)
}
