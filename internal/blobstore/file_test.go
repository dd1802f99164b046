package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileFetcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"posts": []}`), 0o644))

	f := &FileFetcher{Path: path}

	ok, err := f.Exists(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	body, err := f.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"posts": []}`), body)
	assert.Equal(t, path, f.Location())
}

func TestFileFetcher_Missing(t *testing.T) {
	f := &FileFetcher{Path: filepath.Join(t.TempDir(), "nope.json")}

	ok, err := f.Exists(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}
