package driving

import (
	"context"

	"github.com/clindex-labs/clindex-cli/internal/core/domain"
)

// DocumentService exposes read access to stored documents.
type DocumentService interface {
	// List returns all documents in ingestion order.
	List(ctx context.Context) ([]domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, documentID string) (*domain.Document, error)

	// GetContent returns the concatenated chunk text of a document.
	GetContent(ctx context.Context, documentID string) (string, error)
}
