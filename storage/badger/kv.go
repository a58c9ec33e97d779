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

package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/docseek/storage"
)

// KVStore implements storage.KeyValueStore for BadgerDB.
// It owns its backend and closes it on Close.
type KVStore struct {
	backend *Backend
}

var _ storage.KeyValueStore = (*KVStore)(nil)

// NewKVStore creates a KVStore on top of an open backend.
func NewKVStore(backend *Backend) *KVStore {
	return &KVStore{
		backend: backend,
	}
}

// Open opens a BadgerDB backend at path and wraps it in a KVStore.
func Open(path string, inMemory bool, opts ...Option) (*KVStore, error) {
	backend, err := OpenBackend(path, inMemory, opts...)
	if err != nil {
		return nil, err
	}
	return NewKVStore(backend), nil
}

// check rejects calls on canceled contexts, empty keys and closed stores.
func (s *KVStore) check(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	if s.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	return nil
}

// Get retrieves the value stored under key.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := s.check(ctx, key); err != nil {
		return nil, err
	}

	var value []byte
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeKVKey(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	}, false)

	return value, err
}

// Set stores value under key.
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.check(ctx, key); err != nil {
		return err
	}

	return s.backend.WithTx(func(tx *badger.Txn) error {
		// badger keeps a reference to value until commit
		if err := tx.Set(makeKVKey(key), append([]byte(nil), value...)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Delete removes key.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if err := s.check(ctx, key); err != nil {
		return err
	}

	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeKVKey(key)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Close closes the underlying backend.
func (s *KVStore) Close() error {
	if s.backend.IsClosed() {
		return nil
	}
	return s.backend.Close()
}
