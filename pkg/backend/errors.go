package backend

import (
	"fmt"
)

// Common backend errors.
var (
	// ErrReadOnlyBackend is returned when a mutation is attempted on a
	// backend that does not support writes.
	ErrReadOnlyBackend = fmt.Errorf("backend is read-only")

	// ErrUnsupportedHashAlgo is returned when the configured digest
	// algorithm is not one of md5, sha1, sha256 or sha512.
	ErrUnsupportedHashAlgo = fmt.Errorf("unsupported hash algorithm")
)
