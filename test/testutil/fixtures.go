// Package testutil provides shared helpers for integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SeedPackages creates a package root populated with dummy distribution
// files and returns its path. Filenames are used verbatim, so callers can
// seed wheels, sdists and signature files alike.
func SeedPackages(t *testing.T, filenames ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, name := range filenames {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("creating directory for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte("fake distribution "+name), 0o644); err != nil {
			t.Fatalf("seeding %s: %v", name, err)
		}
	}
	return root
}
