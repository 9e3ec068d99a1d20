package domain

import "time"

// RawDocument represents opaque bytes presented for ingestion,
// together with the caller-supplied citation metadata.
type RawDocument struct {
	// URI is the original location (file path, URL, etc).
	URI string

	// MIMEType is the content type hint (e.g., "text/markdown").
	MIMEType string

	// Content is the raw bytes.
	Content []byte

	// Title is the human-readable title.
	Title string

	// Organisation is the issuing organisation. May be empty.
	Organisation string

	// Published is the publication timestamp, if known.
	Published *time.Time
}

// ExtractionResult is the output of text extraction from raw bytes.
// The Failed tag distinguishes an extraction failure from a document
// that is genuinely blank: both produce empty text, but only the former
// should surface an error to the caller.
type ExtractionResult struct {
	// Text is the extracted plain text. May be empty.
	Text string

	// Failed reports that extraction did not succeed.
	Failed bool

	// Reason describes why extraction failed.
	Reason string
}
