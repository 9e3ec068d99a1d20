// Package plaintext extracts text from plain-text documents. It is the
// fallback normaliser for unknown MIME types.
package plaintext

import (
	"context"
	"unicode/utf8"

	"github.com/clindex-labs/clindex-cli/internal/core/domain"
	"github.com/clindex-labs/clindex-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text documents.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{
		"text/plain",
		"text/csv",
		"application/json",
	}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 5 // Fallback normaliser
}

// Extract returns the document bytes as text. Bytes that are not valid
// UTF-8 are a failed extraction, not an empty document.
func (n *Normaliser) Extract(_ context.Context, raw *domain.RawDocument) (*domain.ExtractionResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	if !utf8.Valid(raw.Content) {
		return &domain.ExtractionResult{
			Failed: true,
			Reason: "content is not valid UTF-8",
		}, nil
	}

	return &domain.ExtractionResult{Text: string(raw.Content)}, nil
}
