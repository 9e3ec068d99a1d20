package mcp

import (
	"context"

	"github.com/clindex-labs/clindex-cli/internal/core/domain"
	"github.com/clindex-labs/clindex-cli/internal/core/ports/driving"
)

// mockAnswerService is a mock implementation of driving.AnswerService.
type mockAnswerService struct {
	result   *driving.AnswerResult
	err      error
	question string
	opts     driving.AnswerOptions
}

func (m *mockAnswerService) Answer(
	_ context.Context,
	question string,
	opts driving.AnswerOptions,
) (*driving.AnswerResult, error) {
	m.question = question
	m.opts = opts
	return m.result, m.err
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	receipt *driving.IngestReceipt
	chunks  int
	err     error
	raw     domain.RawDocument
}

func (m *mockIngestService) Ingest(_ context.Context, raw domain.RawDocument) (*driving.IngestReceipt, error) {
	m.raw = raw
	return m.receipt, m.err
}

func (m *mockIngestService) Remove(_ context.Context, _ string) error {
	return m.err
}

func (m *mockIngestService) Reindex(_ context.Context) (int, error) {
	return m.chunks, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents []domain.Document
	document  *domain.Document
	content   string
	err       error
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) GetContent(_ context.Context, _ string) (string, error) {
	return m.content, m.err
}
