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

// Package config holds docseek's runtime settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
	"github.com/poiesic/docseek/history"
	"github.com/poiesic/docseek/search"
	"github.com/poiesic/docseek/session"
)

// Storage backends.
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds configuration for a docseek workspace.
type Config struct {
	// CorpusPath is a corpus JSON file or a directory of them.
	CorpusPath string `toml:"corpus_path"`

	// StorageBackend selects where recent queries live.
	// One of "badger", "sqlite" or "memory". Default: "badger"
	StorageBackend string `toml:"storage_backend"`

	// StoragePath is the badger directory or sqlite file.
	// Empty selects a location under the user config directory.
	StoragePath string `toml:"storage_path"`

	// HistoryKey is the storage key of the recent query list.
	// Default: "docseek.recent-queries"
	HistoryKey string `toml:"history_key"`

	// ExcerptLength is the excerpt size, in runes, when the query does not
	// occur in a page's content. Default: 150
	ExcerptLength int `toml:"excerpt_length"`

	// CacheSize is the number of queries whose results are memoized.
	// Zero disables caching. Default: 256
	CacheSize int `toml:"cache_size"`

	// LoadWorkers is the number of corpus files decoded concurrently.
	// Default: half the CPUs, at least 1
	LoadWorkers int `toml:"load_workers"`

	// ToggleKey opens and closes the search palette.
	// Default: "ctrl+k"
	ToggleKey string `toml:"toggle_key"`
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithCorpusPath sets the corpus file or directory.
func WithCorpusPath(path string) ConfigOption {
	return func(c *Config) {
		c.CorpusPath = path
	}
}

// WithStorage sets the storage backend and its location.
func WithStorage(backend, path string) ConfigOption {
	return func(c *Config) {
		c.StorageBackend = backend
		c.StoragePath = path
	}
}

// WithHistoryKey sets the storage key of the recent query list.
func WithHistoryKey(key string) ConfigOption {
	return func(c *Config) {
		c.HistoryKey = key
	}
}

// WithExcerptLength sets the fallback excerpt length.
func WithExcerptLength(length int) ConfigOption {
	return func(c *Config) {
		c.ExcerptLength = length
	}
}

// WithCacheSize sets the result cache size.
func WithCacheSize(size int) ConfigOption {
	return func(c *Config) {
		c.CacheSize = size
	}
}

// WithLoadWorkers sets the corpus loader pool size.
func WithLoadWorkers(workers int) ConfigOption {
	return func(c *Config) {
		c.LoadWorkers = workers
	}
}

// WithToggleKey sets the palette toggle key.
func WithToggleKey(key string) ConfigOption {
	return func(c *Config) {
		c.ToggleKey = key
	}
}

// DefaultConfig returns a Config with sensible defaults.
// CorpusPath has no default and must be set.
func DefaultConfig() *Config {
	return &Config{
		StorageBackend: BackendBadger,
		HistoryKey:     history.DefaultKey,
		ExcerptLength:  search.DefaultExcerptLength,
		CacheSize:      search.DefaultCacheSize,
		LoadWorkers:    max(runtime.NumCPU()/2, 1),
		ToggleKey:      session.DefaultKeyMap().Toggle[0],
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithCorpusPath("./docs/search-index"),
//	    WithStorage(BackendSQLite, "/tmp/docseek.db"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// LoadFile reads a TOML file over the defaults. Keys absent from the file
// keep their default values; unknown keys are an error.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads TOML from r over the defaults.
func Decode(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Encode writes the configuration as TOML.
func (c *Config) Encode(w io.Writer) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = io.Copy(w, bytes.NewReader(data))
	return err
}

// DefaultStateDir returns the directory holding docseek state when no
// StoragePath is configured.
func DefaultStateDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "docseek")
}

// Normalize ensures the configuration is in a canonical form.
// Names are trimmed and lowercased, and an empty StoragePath is replaced by
// the default location for the selected backend.
func (c *Config) Normalize() {
	c.CorpusPath = strings.TrimSpace(c.CorpusPath)
	c.StorageBackend = strings.ToLower(strings.TrimSpace(c.StorageBackend))
	c.StoragePath = strings.TrimSpace(c.StoragePath)
	c.ToggleKey = strings.ToLower(strings.TrimSpace(c.ToggleKey))

	if c.StorageBackend == "" {
		c.StorageBackend = BackendBadger
	}

	if c.StoragePath == "" {
		switch c.StorageBackend {
		case BackendBadger:
			c.StoragePath = filepath.Join(DefaultStateDir(), "state")
		case BackendSQLite:
			c.StoragePath = filepath.Join(DefaultStateDir(), "state.db")
		}
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	// Normalize first to ensure names are in canonical form
	c.Normalize()

	if c.CorpusPath == "" {
		return fmt.Errorf("%w: CorpusPath is required", ErrInvalidConfig)
	}
	return c.ValidateSettings()
}

// ValidateSettings is Validate without the CorpusPath requirement, for
// callers that supply documents directly.
func (c *Config) ValidateSettings() error {
	c.Normalize()

	switch c.StorageBackend {
	case BackendBadger, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("%w: unknown StorageBackend %q", ErrInvalidConfig, c.StorageBackend)
	}
	if c.HistoryKey == "" {
		return fmt.Errorf("%w: HistoryKey is required", ErrInvalidConfig)
	}
	if c.ExcerptLength < 1 {
		return fmt.Errorf("%w: ExcerptLength must be positive", ErrInvalidConfig)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("%w: CacheSize must not be negative", ErrInvalidConfig)
	}
	if c.LoadWorkers < 1 {
		return fmt.Errorf("%w: LoadWorkers must be at least 1", ErrInvalidConfig)
	}
	if c.ToggleKey == "" {
		return fmt.Errorf("%w: ToggleKey is required", ErrInvalidConfig)
	}
	if reservedToggleKey(c.ToggleKey) {
		return fmt.Errorf("%w: ToggleKey %q is reserved", ErrInvalidConfig, c.ToggleKey)
	}
	return nil
}

// reservedKeys are bound by the palette itself and cannot toggle it.
var reservedKeys = []string{"ctrl+c", "tab", "backspace", "delete", "left", "right"}

// reservedToggleKey reports whether key would shadow a palette binding or
// swallow typed text. Any single character types into the query.
func reservedToggleKey(key string) bool {
	if utf8.RuneCountInString(key) == 1 || slices.Contains(reservedKeys, key) {
		return true
	}

	keys := session.DefaultKeyMap()
	for _, binding := range [][]string{keys.Down, keys.Up, keys.Commit, keys.Close} {
		if slices.Contains(binding, key) {
			return true
		}
	}
	return false
}
