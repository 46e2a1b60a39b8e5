package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageSaveAndRemove(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStorage(root, "/uploads/")
	require.NoError(t, err)

	url, err := store.Save("front.jpg", strings.NewReader("jpeg bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/front.jpg", url)

	data, err := os.ReadFile(filepath.Join(root, "front.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(data))

	require.NoError(t, store.Remove(url))
	_, err = os.Stat(filepath.Join(root, "front.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorageFlattensPaths(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStorage(root, "/uploads")
	require.NoError(t, err)

	url, err := store.Save("../../etc/passwd.jpg", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/passwd.jpg", url)

	_, err = os.Stat(filepath.Join(root, "passwd.jpg"))
	assert.NoError(t, err)
}

func TestLocalStorageRemoveMissingIsNoop(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	assert.NoError(t, store.Remove("/uploads/never-existed.jpg"))
}
