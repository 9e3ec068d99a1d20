package driven

import (
	"context"

	"github.com/clindex-labs/clindex-cli/internal/core/domain"
)

// Normaliser extracts plain text from raw document bytes.
// Each normaliser handles specific MIME types.
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	Priority() int

	// Extract produces text from raw bytes. A failed extraction is
	// reported in the result's Failed tag, so the caller can tell it
	// apart from a genuinely blank document.
	Extract(ctx context.Context, raw *domain.RawDocument) (*domain.ExtractionResult, error)
}

// NormaliserRegistry resolves the normaliser for a MIME type.
type NormaliserRegistry interface {
	// Resolve returns the highest-priority normaliser for the MIME type.
	// Unknown types fall back to the plaintext normaliser.
	Resolve(mimeType string) (Normaliser, error)
}
