package storage_test

import (
	"testing"

	"github.com/poiesic/docseek/storage"
	"github.com/poiesic/docseek/storage/storagetest"
)

func TestMemoryStore(t *testing.T) {
	storagetest.RunKeyValueStoreTests(t, func(t *testing.T) storage.KeyValueStore {
		return storage.NewMemoryStore()
	})
}
