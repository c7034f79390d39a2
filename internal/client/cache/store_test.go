package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStores(t *testing.T) map[string]*Store {
	t.Helper()

	persistent, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = persistent.Close() })

	memory, err := NewStore("")
	require.NoError(t, err)

	return map[string]*Store{"persistent": persistent, "memory": memory}
}

func TestTokenSlot(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			tok, err := store.LoadToken()
			require.NoError(t, err)
			assert.Empty(t, tok, "fresh store holds no token")

			require.NoError(t, store.SaveToken("tok-123"))

			tok, err = store.LoadToken()
			require.NoError(t, err)
			assert.Equal(t, "tok-123", tok)

			require.NoError(t, store.ClearToken())
			require.NoError(t, store.ClearToken(), "clear is idempotent")

			tok, err = store.LoadToken()
			require.NoError(t, err)
			assert.Empty(t, tok)
		})
	}
}

func TestTokenSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.SaveToken("tok-123"))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	tok, err := reopened.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", tok)
}

func TestSnapshots(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			data, err := store.LoadSnapshot("blogs")
			require.NoError(t, err)
			assert.Nil(t, data)

			require.NoError(t, store.SaveSnapshot("blogs", []byte(`[{"id":"r-1"}]`)))

			data, err = store.LoadSnapshot("blogs")
			require.NoError(t, err)
			assert.JSONEq(t, `[{"id":"r-1"}]`, string(data))

			other, err := store.LoadSnapshot("books")
			require.NoError(t, err)
			assert.Nil(t, other, "snapshots are per collection")
		})
	}
}
