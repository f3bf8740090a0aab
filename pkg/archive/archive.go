// Package archive provides minimal sanity inspection of uploaded archives.
package archive

import (
	"context"
	"io"

	"github.com/mholt/archives"

	"github.com/glorpus-work/pindex/pkg/errutils"
)

// Inspector opens archives for shallow content checks. It never extracts
// to disk.
type Inspector struct{}

// NewInspector creates a new Inspector instance.
func NewInspector() *Inspector {
	return &Inspector{}
}

// HasFile reports whether the archive at archivePath contains a member
// with the given name. Unreadable or unrecognized archives yield an
// ErrInvalidDocArchive-wrapped error.
func (i *Inspector) HasFile(ctx context.Context, archivePath, member string) (bool, error) {
	fsys, err := archives.FileSystem(ctx, archivePath, nil)
	if err != nil {
		return false, errutils.Wrapf(errutils.ErrInvalidDocArchive, "cannot open archive: %v", err)
	}
	// Close the underlying archive filesystem when done (important on Windows)
	if closer, ok := fsys.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	f, err := fsys.Open(member)
	if err != nil {
		return false, nil
	}
	_ = f.Close()
	return true, nil
}
