package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	// At query time this is a normal negative result, not a failure.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not available
	// for the chosen source variant (e.g. Watch on a remote source).
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates an unknown source type.
	ErrUnsupportedType = errors.New("unsupported type")

	// Parsing Errors.

	// ErrMalformedDocument indicates raw content that cannot be decoded
	// as text. The file is excluded from the index; the build continues.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrInvalidFrontMatter indicates a metadata block that failed to
	// parse. The block is treated as absent and title resolution falls
	// through to the heading/filename rules; the file is never aborted.
	ErrInvalidFrontMatter = errors.New("invalid front matter")

	// Source Errors.

	// ErrSourceUnreachable indicates a transient failure reaching the
	// source of truth. The cycle is treated as no-changes, the previous
	// snapshot is retained, and the next tick retries.
	ErrSourceUnreachable = errors.New("source unreachable")

	// ErrNoHistory indicates the source cannot produce commit times for
	// a file. Callers fall back to the current time for both timestamps.
	ErrNoHistory = errors.New("no commit history")

	// ErrInvalidCursor indicates a sync cursor that cannot be decoded.
	// Sources treat it as an empty cursor and report a full change set.
	ErrInvalidCursor = errors.New("invalid cursor")
)
