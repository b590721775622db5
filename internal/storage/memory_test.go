package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemory()

	_, err := store.Get(ctx, KeyProfile)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, KeyProfile, `{"name":"Ana"}`))
	value, err := store.Get(ctx, KeyProfile)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Ana"}`, value)

	// Overwrite replaces the whole value.
	require.NoError(t, store.Set(ctx, KeyProfile, `{"name":"Bia"}`))
	value, err = store.Get(ctx, KeyProfile)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Bia"}`, value)

	_, err = store.Get(ctx, "unrelated")
	assert.ErrorIs(t, err, ErrNotFound)
}
