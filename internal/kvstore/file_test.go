package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_RoundTrip(t *testing.T) {
	store, err := NewFile(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("AbsentBeforeFirstWrite", func(t *testing.T) {
		_, ok, err := store.Get(ctx, CartStorageKey)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("SetThenGet", func(t *testing.T) {
		err := store.Set(ctx, CartStorageKey, []byte(`{"items":{"v-1":{"quantity":2}}}`))
		require.NoError(t, err)

		value, ok, err := store.Get(ctx, CartStorageKey)
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.JSONEq(t, `{"items":{"v-1":{"quantity":2}}}`, string(value))
	})

	t.Run("OverwriteReplacesWhole", func(t *testing.T) {
		err := store.Set(ctx, CartStorageKey, []byte(`{"items":{}}`))
		require.NoError(t, err)

		value, _, err := store.Get(ctx, CartStorageKey)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"items":{}}`, string(value))
	})

	t.Run("NamesAreIndependent", func(t *testing.T) {
		err := store.Set(ctx, FavoritesStorageKey, []byte(`["p-1"]`))
		require.NoError(t, err)

		value, ok, err := store.Get(ctx, CartStorageKey)
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.JSONEq(t, `{"items":{}}`, string(value))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, CartStorageKey))

		_, ok, err := store.Get(ctx, CartStorageKey)
		assert.NoError(t, err)
		assert.False(t, ok)

		// Deleting again is a no-op.
		assert.NoError(t, store.Delete(ctx, CartStorageKey))
	})
}

func TestFile_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewFile(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, FavoritesStorageKey, []byte(`["p-1","p-2"]`)))

	second, err := NewFile(dir)
	require.NoError(t, err)

	value, ok, err := second.Get(ctx, FavoritesStorageKey)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `["p-1","p-2"]`, string(value))
}
