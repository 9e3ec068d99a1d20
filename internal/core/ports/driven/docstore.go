package driven

import (
	"context"

	"github.com/clindex-labs/clindex-cli/internal/core/domain"
)

// DocumentStore persists documents and chunks.
// Backed by SQLite for durable storage; an in-memory variant backs tests.
type DocumentStore interface {
	// SaveDocument stores a document and assigns its ingest sequence.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// SaveChunks stores chunks for a document.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// GetDocument retrieves a document by ID (content hash).
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetChunks retrieves all chunks for a document, ordered by position.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// GetChunk retrieves a specific chunk by ID.
	GetChunk(ctx context.Context, id string) (*domain.Chunk, error)

	// DeleteDocument removes a document and its chunks.
	DeleteDocument(ctx context.Context, id string) error

	// ListDocuments returns all documents, ordered by ingest sequence.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// AllChunks returns every stored chunk. Used for index rebuilds.
	AllChunks(ctx context.Context) ([]domain.Chunk, error)
}
