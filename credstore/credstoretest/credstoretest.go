// Package credstoretest provides a conformance suite run against every
// credstore.Store implementation.
package credstoretest

import (
	"testing"

	"github.com/paydesk/paydesk/credstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises the credstore.Store contract against the given implementation.
func Run(t *testing.T, store credstore.Store) {
	t.Helper()

	t.Run("LoadEmpty", func(t *testing.T) {
		_, err := store.Load()
		assert.ErrorIs(t, err, credstore.ErrNotFound)
	})

	t.Run("ClearEmptyIsNoop", func(t *testing.T) {
		require.NoError(t, store.Clear())
	})

	t.Run("SaveAndLoad", func(t *testing.T) {
		require.NoError(t, store.Save("tok-1"))
		got, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, "tok-1", got)
	})

	t.Run("SaveOverwrites", func(t *testing.T) {
		require.NoError(t, store.Save("tok-1"))
		require.NoError(t, store.Save("tok-2"))
		got, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, "tok-2", got)
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, store.Save("tok-3"))
		require.NoError(t, store.Clear())
		_, err := store.Load()
		assert.ErrorIs(t, err, credstore.ErrNotFound)
	})

	t.Run("ClearTwice", func(t *testing.T) {
		require.NoError(t, store.Save("tok-4"))
		require.NoError(t, store.Clear())
		require.NoError(t, store.Clear())
	})
}
