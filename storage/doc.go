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

// Package storage provides the key/value abstraction used to persist
// small pieces of docseek state, such as the recent query list.
//
// Backends live in subpackages and are interchangeable:
//
//   - badger: durable BadgerDB store (file-backed or in-memory)
//   - sqlite: single-table SQLite store via modernc.org/sqlite
//   - MemoryStore: map-backed store for tests and ephemeral sessions
//
// # Usage
//
//	kv, err := badger.Open("/path/to/state", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer kv.Close()
//
//	if err := kv.Set(ctx, "greeting", []byte("hello")); err != nil {
//	    log.Fatal(err)
//	}
//
// # Semantics
//
// Get returns ErrNotFound for absent keys. Delete of an absent key is not
// an error. Values are copied on the way in and on the way out, so callers
// may reuse their buffers.
//
// # Thread Safety
//
// All implementations must be safe for concurrent use by multiple
// goroutines.
package storage
