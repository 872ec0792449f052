package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paydesk/paydesk/credstore"
	"github.com/paydesk/paydesk/credstore/credstoretest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConformance(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	credstoretest.Run(t, store)
}

func TestFilePermissions(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save("tok-perm"))

	info, err := os.Stat(filepath.Join(dir, credentialsFile))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, credentialsFile), []byte("{not json"), 0o600))
	_, err = store.Load()
	require.Error(t, err)
	assert.NotErrorIs(t, err, credstore.ErrNotFound)
}

func TestEmptyTokenTreatedAsAbsent(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, credentialsFile), []byte(`{"token":""}`), 0o600))
	_, err = store.Load()
	assert.ErrorIs(t, err, credstore.ErrNotFound)
}
