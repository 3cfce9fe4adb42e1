package storage

import "errors"

// Error taxonomy shared by all storage components. Callers are expected
// to test with errors.Is; the web layer maps these onto response codes.
var (
	// ErrInvalidDescriptor indicates a caller bug: an owner descriptor
	// with one or more mandatory fields empty after trimming.
	ErrInvalidDescriptor = errors.New("invalid owner descriptor")

	// ErrInvalidPath indicates a malformed or traversal-attempting
	// relative path that would escape the storage root.
	ErrInvalidPath = errors.New("invalid storage path")

	// ErrWriteFailed indicates a transient I/O failure. No partial file
	// remains on disk when this is returned.
	ErrWriteFailed = errors.New("storage write failed")

	// ErrNotFound indicates a missing file. Reads against possibly
	// orphaned records treat this as a normal outcome, not a failure.
	ErrNotFound = errors.New("file not found")
)
