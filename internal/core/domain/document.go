package domain

import "time"

// Document represents an ingested guideline document.
// Its ID is the SHA-256 hex digest of the raw bytes it was ingested from,
// so re-ingesting identical bytes always resolves to the same record.
type Document struct {
	// ID is the content hash of the raw document bytes.
	ID string `json:"id"`

	// Title is the human-readable title.
	Title string `json:"title"`

	// Organisation is the issuing organisation. May be empty.
	Organisation string `json:"organisation,omitempty"`

	// Published is the publication timestamp, if known.
	Published *time.Time `json:"published,omitempty"`

	// URI is the original location (file path, URL, etc).
	URI string `json:"uri,omitempty"`

	// TextLength is the length of the extracted text in bytes.
	// Used to detect hash collisions on re-ingestion.
	TextLength int `json:"text_length"`

	// IngestSeq is the monotonically increasing ingestion order,
	// assigned by the document store. Used as a deterministic tie-break
	// when ranking equally scored chunks.
	IngestSeq int64 `json:"ingest_seq"`

	// CreatedAt is when the document was first ingested.
	CreatedAt time.Time `json:"created_at"`
}

// Chunk is the unit of indexing and ranking: a bounded contiguous span
// of a document's text built by greedy sentence accumulation.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string `json:"id"`

	// DocumentID links to the owning Document.
	DocumentID string `json:"document_id"`

	// Position is the ordinal position within the document.
	Position int `json:"position"`

	// Content is the text content of this chunk.
	Content string `json:"content"`
}
