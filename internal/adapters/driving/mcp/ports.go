package mcp

import (
	"github.com/clindex-labs/clindex-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP
// server. A single injection point for dependency injection.
type Ports struct {
	// Answer runs the question-answering pipeline.
	Answer driving.AnswerService

	// Ingest ingests documents and maintains the index.
	Ingest driving.IngestService

	// Document provides read access to stored documents.
	Document driving.DocumentService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Answer == nil {
		return ErrMissingAnswerService
	}
	// Ingest and Document are optional; their tools and resources are
	// simply not registered without them.
	return nil
}
