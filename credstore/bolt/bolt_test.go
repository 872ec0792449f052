package bolt

import (
	"path/filepath"
	"testing"

	"github.com/paydesk/paydesk/credstore/credstoretest"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewFromFile(filepath.Join(t.TempDir(), "credentials.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestConformance(t *testing.T) {
	credstoretest.Run(t, newTestStore(t))
}

func TestSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.db")

	store, err := NewFromFile(path, nil)
	require.NoError(t, err)
	require.NoError(t, store.Save("tok-persist"))
	require.NoError(t, store.Close())

	reopened, err := NewFromFile(path, nil)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Load()
	require.NoError(t, err)
	require.Equal(t, "tok-persist", got)
}
