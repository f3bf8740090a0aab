// Package errutils defines the error vocabulary shared across pindex.
// It declares sentinel errors for the parsing, catalog and upload paths and
// small wrapping helpers so callers can match with errors.Is after any
// number of context layers.
package errutils

import (
	"fmt"
)

// Common error types used throughout the application.
// Errors are grouped by their domain or functionality.
var (
	// Filename parsing errors. A filename either yields a package identity
	// or one of these; scans skip the file, uploads reject it.

	// ErrInvalidCharacters is returned when a filename contains characters
	// outside the upload allow-list.
	ErrInvalidCharacters = fmt.Errorf("filename contains invalid characters")

	// ErrUnknownArchiveFormat is returned when a filename carries no
	// recognized distribution suffix.
	ErrUnknownArchiveFormat = fmt.Errorf("unknown archive format")

	// ErrMalformedFilename is returned when a filename matches a known
	// suffix but cannot be split into name and version.
	ErrMalformedFilename = fmt.Errorf("malformed package filename")

	// ErrInvalidVersion is returned when a version string does not parse
	// under the PEP 440 grammar.
	ErrInvalidVersion = fmt.Errorf("invalid version string")

	// Catalog errors.

	// ErrAlreadyExists is returned when an upload targets a filename that is
	// already cataloged and overwriting is disabled.
	ErrAlreadyExists = fmt.Errorf("package already exists")

	// ErrPackageNotFound is returned when a project, version or file is
	// absent from the catalog.
	ErrPackageNotFound = fmt.Errorf("package not found")

	// ErrNoRoots is returned when a backend is constructed without any root
	// directory.
	ErrNoRoots = fmt.Errorf("no package root directories configured")

	// Upload errors.

	// ErrInvalidSignature is returned when a signature filename does not
	// equal the content filename plus the .asc suffix.
	ErrInvalidSignature = fmt.Errorf("signature filename does not match content filename")

	// ErrInvalidDocArchive is returned when an uploaded documentation
	// archive is not a readable archive containing index.html.
	ErrInvalidDocArchive = fmt.Errorf("invalid documentation archive")

	// Config errors are related to configuration file operations and
	// validation. These typically occur during startup.
	ErrEmptyConfigPath  = fmt.Errorf("config file path cannot be empty")
	ErrConfigParse      = fmt.Errorf("failed to parse config")
	ErrConfigValidation = fmt.Errorf("invalid configuration")
	ErrConfigEncode     = fmt.Errorf("failed to encode config")

	// Auth errors.

	// ErrCredentialsRequired is returned when an action demands
	// authentication but the request carried no credentials.
	ErrCredentialsRequired = fmt.Errorf("credentials required")

	// ErrAccessDenied is returned when provided credentials fail the
	// password check.
	ErrAccessDenied = fmt.Errorf("access denied")
)

// Wrap wraps an error with additional context.
// If the error is nil, Wrap returns nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
// If the error is nil, Wrapf returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
