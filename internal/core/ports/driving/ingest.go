package driving

import (
	"context"

	"github.com/clindex-labs/clindex-cli/internal/core/domain"
)

// IngestReceipt reports the outcome of one ingestion.
type IngestReceipt struct {
	// DocumentID is the content hash the document was stored under.
	DocumentID string `json:"document_id"`

	// Chunks is the number of chunks created (zero for a blank document).
	Chunks int `json:"chunks"`

	// Duplicate reports that identical bytes were already ingested and
	// no new writes were performed.
	Duplicate bool `json:"duplicate"`
}

// IngestService ingests raw guideline documents and maintains the index.
type IngestService interface {
	// Ingest extracts, chunks, stores and indexes a raw document.
	// Idempotent on content hash: re-submitting identical bytes reuses
	// the prior record and reports Duplicate.
	Ingest(ctx context.Context, raw domain.RawDocument) (*IngestReceipt, error)

	// Remove deletes a document from the store and the index.
	Remove(ctx context.Context, documentID string) error

	// Reindex rebuilds the term index from the document store and
	// returns the number of chunks indexed. Safe to call while queries
	// are being served.
	Reindex(ctx context.Context) (int, error)
}
