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

package corpus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/docseek/core"
)

// FileExt is the extension LoadDir picks up.
const FileExt = ".json"

// Loader decodes corpus files on a worker pool.
type Loader struct {
	pool   *ants.Pool
	logger *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader) error

// WithPoolSize sets the worker pool size for concurrent decoding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(l *Loader) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if l.pool != nil {
			l.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		l.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// NewLoader creates a Loader. Call Release when done.
func NewLoader(opts ...Option) (*Loader, error) {
	// Default pool size
	poolSize := max(runtime.NumCPU()/2, 1)

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	l := &Loader{
		pool:   pool,
		logger: slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(l); optErr != nil {
			l.Release()
			return nil, optErr
		}
	}

	return l, nil
}

// Release releases the worker pool.
// The loader should not be used after calling Release.
func (l *Loader) Release() {
	if l.pool != nil {
		l.pool.Release()
	}
}

// Load decodes paths concurrently and returns their entries concatenated in
// path order. Any failing file fails the whole load; all file errors are
// reported together.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]core.DocumentEntry, error) {
	if len(paths) == 0 {
		return nil, ErrNoFiles
	}

	batches := make([][]core.DocumentEntry, len(paths))
	errs := make([]error, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			errs[i] = err
			break
		}

		wg.Add(1)
		err := l.pool.Submit(func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			batches[i], errs[i] = LoadFile(path)
		})
		if err != nil {
			wg.Done()
			errs[i] = fmt.Errorf("failed to schedule %s: %w", path, err)
			break
		}
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	total := 0
	for _, batch := range batches {
		total += len(batch)
	}
	documents := make([]core.DocumentEntry, 0, total)
	for _, batch := range batches {
		documents = append(documents, batch...)
	}

	if err := checkUnique(documents); err != nil {
		return nil, err
	}

	l.logger.Info("corpus loaded", "files", len(paths), "documents", len(documents))
	return documents, nil
}

// LoadDir loads every FileExt file directly inside dir, in name order.
func (l *Loader) LoadDir(ctx context.Context, dir string) ([]core.DocumentEntry, error) {
	paths, err := ListFiles(dir)
	if err != nil {
		return nil, err
	}
	return l.Load(ctx, paths...)
}

// LoadPath loads path as a directory or a single file.
func (l *Loader) LoadPath(ctx context.Context, path string) ([]core.DocumentEntry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return l.LoadDir(ctx, path)
	}
	return l.Load(ctx, path)
}

// ListFiles returns the FileExt files directly inside dir, in name order.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), FileExt) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFiles, dir)
	}
	return paths, nil
}

// LoadFile decodes a single corpus file.
func LoadFile(path string) ([]core.DocumentEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f, path)
}

// Decode reads a JSON array of entries from r, fills in missing ids and
// validates each entry. source names r in error messages.
func Decode(r io.Reader, source string) ([]core.DocumentEntry, error) {
	var documents []core.DocumentEntry
	if err := json.NewDecoder(r).Decode(&documents); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedFile, source, err)
	}

	for i := range documents {
		doc := &documents[i]
		if doc.ID == "" && strings.TrimSpace(doc.Path) != "" {
			doc.ID = core.IDFromContent(doc.Path).String()
		}
		if err := core.ValidateDocument(doc); err != nil {
			return nil, fmt.Errorf("%s: entry %d: %w", source, i, err)
		}
	}

	if documents == nil {
		documents = []core.DocumentEntry{}
	}
	return documents, nil
}

func checkUnique(documents []core.DocumentEntry) error {
	seen := make(map[string]string, len(documents))
	for _, doc := range documents {
		if prev, ok := seen[doc.ID]; ok {
			return fmt.Errorf("%w: %q used by %s and %s", ErrDuplicateID, doc.ID, prev, doc.Path)
		}
		seen[doc.ID] = doc.Path
	}
	return nil
}
