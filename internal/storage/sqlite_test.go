package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "glicocare.db")

	store, err := NewSQLite(path)
	require.NoError(t, err)

	_, err = store.Get(ctx, KeyTheme)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, KeyTheme, `"dark"`))
	value, err := store.Get(ctx, KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, `"dark"`, value)

	require.NoError(t, store.Set(ctx, KeyTheme, `"light"`))
	value, err = store.Get(ctx, KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, `"light"`, value)

	// Reopening the same file sees the persisted value.
	reopened, err := NewSQLite(path)
	require.NoError(t, err)
	value, err = reopened.Get(ctx, KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, `"light"`, value)
}
