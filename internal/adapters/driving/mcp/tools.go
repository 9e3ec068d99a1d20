package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/clindex-labs/clindex-cli/internal/core/domain"
	"github.com/clindex-labs/clindex-cli/internal/core/ports/driving"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the clinical question to answer from the local corpus"`
	K        int    `json:"k,omitempty" jsonschema:"maximum number of chunks considered after ranking (default 12)"`
}

// AskSection is one answer section in the ask output.
type AskSection struct {
	Heading   string   `json:"heading"`
	Sentences []string `json:"sentences"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Sections     []AskSection      `json:"sections"`
	Citations    []domain.Citation `json:"citations"`
	NoLocalMatch bool              `json:"no_local_match"`
}

// IngestTextInput is the input schema for the ingest_text tool.
type IngestTextInput struct {
	Text         string `json:"text" jsonschema:"the guideline text to ingest"`
	Title        string `json:"title,omitempty" jsonschema:"document title"`
	Organisation string `json:"organisation,omitempty" jsonschema:"issuing organisation"`
	Published    string `json:"published,omitempty" jsonschema:"publication date in YYYY-MM-DD form"`
	URI          string `json:"uri,omitempty" jsonschema:"source URL"`
}

// IngestTextOutput is the output schema for the ingest_text tool.
type IngestTextOutput struct {
	DocumentID string `json:"document_id"`
	Chunks     int    `json:"chunks"`
	Duplicate  bool   `json:"duplicate"`
}

// ReindexOutput is the output schema for the reindex tool.
type ReindexOutput struct {
	Chunks int `json:"chunks"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a clinical question from the locally ingested guidelines",
	}, s.handleAsk)

	if s.ports.Ingest != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ingest_text",
			Description: "Ingest guideline text into the local corpus",
		}, s.handleIngestText)

		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "reindex",
			Description: "Rebuild the term index from stored documents",
		}, s.handleReindex)
	}
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	result, err := s.ports.Answer.Answer(ctx, input.Question, driving.AnswerOptions{K: input.K})
	if err != nil {
		return nil, AskOutput{}, err
	}

	bundle := result.Bundle
	output := AskOutput{
		Citations:    bundle.Citations,
		NoLocalMatch: bundle.NoLocalMatch,
	}

	for _, cat := range domain.Categories() {
		sentences := bundle.Section(cat)
		if len(sentences) == 0 {
			continue
		}
		section := AskSection{Heading: cat.Heading()}
		for _, sent := range sentences {
			section.Sentences = append(section.Sentences, sent.Text)
		}
		output.Sections = append(output.Sections, section)
	}

	return nil, output, nil
}

// handleIngestText handles the ingest_text tool invocation.
func (s *Server) handleIngestText(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestTextInput,
) (*mcp.CallToolResult, IngestTextOutput, error) {
	raw := domain.RawDocument{
		URI:          input.URI,
		MIMEType:     "text/plain",
		Content:      []byte(input.Text),
		Title:        input.Title,
		Organisation: input.Organisation,
	}

	if input.Published != "" {
		published, err := time.Parse("2006-01-02", input.Published)
		if err != nil {
			return nil, IngestTextOutput{}, err
		}
		raw.Published = &published
	}

	receipt, err := s.ports.Ingest.Ingest(ctx, raw)
	if err != nil {
		return nil, IngestTextOutput{}, err
	}

	return nil, IngestTextOutput{
		DocumentID: receipt.DocumentID,
		Chunks:     receipt.Chunks,
		Duplicate:  receipt.Duplicate,
	}, nil
}

// handleReindex handles the reindex tool invocation.
func (s *Server) handleReindex(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, ReindexOutput, error) {
	n, err := s.ports.Ingest.Reindex(ctx)
	if err != nil {
		return nil, ReindexOutput{}, err
	}
	return nil, ReindexOutput{Chunks: n}, nil
}
