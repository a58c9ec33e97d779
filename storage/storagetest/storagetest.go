// Package storagetest holds a behavioral test suite shared by every
// storage.KeyValueStore implementation.
package storagetest

import (
	"context"
	"testing"

	"github.com/poiesic/docseek/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns a fresh, empty store. The suite closes it.
type Factory func(t *testing.T) storage.KeyValueStore

// RunKeyValueStoreTests exercises the KeyValueStore contract against stores
// produced by newStore.
func RunKeyValueStoreTests(t *testing.T, newStore Factory) {
	t.Run("get missing key", func(t *testing.T) {
		kv := newStore(t)
		defer kv.Close()

		_, err := kv.Get(context.Background(), "missing")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		kv := newStore(t)
		defer kv.Close()
		ctx := context.Background()

		require.NoError(t, kv.Set(ctx, "k", []byte("v1")))
		value, err := kv.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v1"), value)
	})

	t.Run("set overwrites", func(t *testing.T) {
		kv := newStore(t)
		defer kv.Close()
		ctx := context.Background()

		require.NoError(t, kv.Set(ctx, "k", []byte("v1")))
		require.NoError(t, kv.Set(ctx, "k", []byte("v2")))
		value, err := kv.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), value)
	})

	t.Run("empty value", func(t *testing.T) {
		kv := newStore(t)
		defer kv.Close()
		ctx := context.Background()

		require.NoError(t, kv.Set(ctx, "k", []byte{}))
		value, err := kv.Get(ctx, "k")
		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("keys are independent", func(t *testing.T) {
		kv := newStore(t)
		defer kv.Close()
		ctx := context.Background()

		require.NoError(t, kv.Set(ctx, "a", []byte("1")))
		require.NoError(t, kv.Set(ctx, "b", []byte("2")))

		a, err := kv.Get(ctx, "a")
		require.NoError(t, err)
		b, err := kv.Get(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, []byte("1"), a)
		assert.Equal(t, []byte("2"), b)
	})

	t.Run("values are copied", func(t *testing.T) {
		kv := newStore(t)
		defer kv.Close()
		ctx := context.Background()

		buf := []byte("original")
		require.NoError(t, kv.Set(ctx, "k", buf))
		copy(buf, "mutated!")

		value, err := kv.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("original"), value)

		value[0] = 'X'
		again, err := kv.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("original"), again)
	})

	t.Run("delete", func(t *testing.T) {
		kv := newStore(t)
		defer kv.Close()
		ctx := context.Background()

		require.NoError(t, kv.Set(ctx, "k", []byte("v")))
		require.NoError(t, kv.Delete(ctx, "k"))
		_, err := kv.Get(ctx, "k")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("delete missing key", func(t *testing.T) {
		kv := newStore(t)
		defer kv.Close()

		assert.NoError(t, kv.Delete(context.Background(), "missing"))
	})

	t.Run("empty key", func(t *testing.T) {
		kv := newStore(t)
		defer kv.Close()
		ctx := context.Background()

		_, err := kv.Get(ctx, "")
		assert.ErrorIs(t, err, storage.ErrInvalidKey)
		assert.ErrorIs(t, kv.Set(ctx, "", []byte("v")), storage.ErrInvalidKey)
		assert.ErrorIs(t, kv.Delete(ctx, ""), storage.ErrInvalidKey)
	})

	t.Run("canceled context", func(t *testing.T) {
		kv := newStore(t)
		defer kv.Close()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := kv.Get(ctx, "k")
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, kv.Set(ctx, "k", []byte("v")), context.Canceled)
	})

	t.Run("closed store", func(t *testing.T) {
		kv := newStore(t)
		require.NoError(t, kv.Close())

		_, err := kv.Get(context.Background(), "k")
		assert.ErrorIs(t, err, storage.ErrStorageClosed)
		assert.ErrorIs(t, kv.Set(context.Background(), "k", []byte("v")), storage.ErrStorageClosed)
	})
}
