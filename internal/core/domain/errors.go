package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrHashCollision indicates two documents with identical content
	// hashes but differing content. This is a logic error and is never
	// resolved by silently overwriting the stored document.
	ErrHashCollision = errors.New("content hash collision")

	// ErrExtractionFailed indicates text extraction from raw bytes failed.
	// The document was not ingested and the caller may retry.
	ErrExtractionFailed = errors.New("text extraction failed")

	// ErrStoreUnavailable indicates the document store backend failed.
	// This is a retryable infrastructure failure, never reported as
	// "no match".
	ErrStoreUnavailable = errors.New("document store unavailable")

	// ErrRebuildFailed indicates an index rebuild did not complete.
	// The previously live index remains queryable.
	ErrRebuildFailed = errors.New("index rebuild failed")

	// ErrGeneratorUnavailable indicates the paraphrase generator is not
	// configured. The extractive answer bundle is still returned.
	ErrGeneratorUnavailable = errors.New("generator unavailable")
)
