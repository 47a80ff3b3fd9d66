package domain

import "errors"

// Domain errors represent import failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Import Errors.

	// ErrUnknownContentType indicates a block or record references a content type
	// that is not declared in the schema. Fatal for the block.
	ErrUnknownContentType = errors.New("content type is not defined")

	// ErrNoUsers indicates new content must be authored but no user account exists.
	// Import users first, or create one, before importing content.
	ErrNoUsers = errors.New("no user available to author new content")

	// ErrImportAborted indicates the import stopped before the whole document was processed.
	// Records committed before the abort stay committed.
	ErrImportAborted = errors.New("import aborted")
)
