package archive

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/pindex/pkg/errutils"
)

func writeZip(t *testing.T, members map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docs.zip")
	f, err := os.Create(path)
	require.NoError(t, err)

	w := zip.NewWriter(f)
	for name, content := range members {
		mw, err := w.Create(name)
		require.NoError(t, err)
		_, err = mw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return path
}

func TestHasFile(t *testing.T) {
	path := writeZip(t, map[string]string{
		"index.html": "<html></html>",
		"style.css":  "body {}",
	})

	inspector := NewInspector()
	found, err := inspector.HasFile(context.Background(), path, "index.html")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestHasFileMissingMember(t *testing.T) {
	path := writeZip(t, map[string]string{"readme.txt": "hello"})

	inspector := NewInspector()
	found, err := inspector.HasFile(context.Background(), path, "index.html")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestHasFileNotAnArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs.zip")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a zip"), 0o644))

	inspector := NewInspector()
	_, err := inspector.HasFile(context.Background(), path, "index.html")
	require.Error(t, err)
	assert.ErrorIs(t, err, errutils.ErrInvalidDocArchive)
}
