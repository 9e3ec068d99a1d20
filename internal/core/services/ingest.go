package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clindex-labs/clindex-cli/internal/chunker"
	"github.com/clindex-labs/clindex-cli/internal/core/domain"
	"github.com/clindex-labs/clindex-cli/internal/core/ports/driven"
	"github.com/clindex-labs/clindex-cli/internal/core/ports/driving"
	"github.com/clindex-labs/clindex-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService ingests raw guideline documents: extract, chunk, store,
// index. Ingestion is idempotent on the content hash of the raw bytes.
type IngestService struct {
	docStore driven.DocumentStore
	index    driven.TermIndex
	registry driven.NormaliserRegistry
	splitter *chunker.Chunker
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	docStore driven.DocumentStore,
	index driven.TermIndex,
	registry driven.NormaliserRegistry,
	splitter *chunker.Chunker,
) *IngestService {
	return &IngestService{
		docStore: docStore,
		index:    index,
		registry: registry,
		splitter: splitter,
	}
}

// Ingest extracts, chunks, stores and indexes a raw document.
func (s *IngestService) Ingest(ctx context.Context, raw domain.RawDocument) (*driving.IngestReceipt, error) {
	logger.Section("Ingestion")

	if len(raw.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document bytes", domain.ErrInvalidInput)
	}

	sum := sha256.Sum256(raw.Content)
	docID := hex.EncodeToString(sum[:])
	logger.Debug("Content hash: %s", docID)

	// Extract text before the duplicate check: the stored text length is
	// the only evidence available to detect a hash collision.
	normaliser, err := s.registry.Resolve(raw.MIMEType)
	if err != nil {
		return nil, fmt.Errorf("resolve normaliser: %w", err)
	}

	result, err := normaliser.Extract(ctx, &raw)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	if result.Failed {
		return nil, fmt.Errorf("%w: %s", domain.ErrExtractionFailed, result.Reason)
	}

	existing, err := s.docStore.GetDocument(ctx, docID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	if existing != nil {
		if existing.TextLength != len(result.Text) {
			return nil, fmt.Errorf("%w: document %s", domain.ErrHashCollision, docID)
		}
		chunks, err := s.docStore.GetChunks(ctx, docID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
		}
		logger.Info("Duplicate ingestion of %s, no new writes", docID)
		return &driving.IngestReceipt{DocumentID: docID, Chunks: len(chunks), Duplicate: true}, nil
	}

	doc := domain.Document{
		ID:           docID,
		Title:        raw.Title,
		Organisation: raw.Organisation,
		Published:    raw.Published,
		URI:          raw.URI,
		TextLength:   len(result.Text),
		CreatedAt:    time.Now(),
	}

	// An empty extraction is a valid outcome: the document is recorded
	// with zero chunks and nothing is indexed for it.
	spans := s.splitter.Split(result.Text)
	chunks := make([]domain.Chunk, len(spans))
	for i, span := range spans {
		chunks[i] = domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: docID,
			Position:   i,
			Content:    span,
		}
	}

	if err := s.docStore.SaveDocument(ctx, &doc); err != nil {
		return nil, fmt.Errorf("%w: save document: %w", domain.ErrStoreUnavailable, err)
	}
	if err := s.docStore.SaveChunks(ctx, chunks); err != nil {
		return nil, fmt.Errorf("%w: save chunks: %w", domain.ErrStoreUnavailable, err)
	}

	for i := range chunks {
		if err := s.index.Add(ctx, chunks[i]); err != nil {
			return nil, fmt.Errorf("index chunk %s: %w", chunks[i].ID, err)
		}
	}

	logger.Info("Ingested %q: %d chunks", doc.Title, len(chunks))
	return &driving.IngestReceipt{DocumentID: docID, Chunks: len(chunks)}, nil
}

// Remove deletes a document from the store and the index.
func (s *IngestService) Remove(ctx context.Context, documentID string) error {
	if _, err := s.docStore.GetDocument(ctx, documentID); err != nil {
		return err
	}
	if err := s.index.Remove(ctx, documentID); err != nil {
		return fmt.Errorf("remove from index: %w", err)
	}
	if err := s.docStore.DeleteDocument(ctx, documentID); err != nil {
		return fmt.Errorf("%w: delete document: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Reindex rebuilds the term index from the document store.
func (s *IngestService) Reindex(ctx context.Context) (int, error) {
	logger.Section("Reindex")

	chunks, err := s.docStore.AllChunks(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: load chunks: %w", domain.ErrStoreUnavailable, err)
	}

	n, err := s.index.Rebuild(ctx, chunks)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrRebuildFailed, err)
	}

	logger.Info("Reindexed %d chunks", n)
	return n, nil
}
