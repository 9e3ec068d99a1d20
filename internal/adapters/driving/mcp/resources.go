package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for clindex resources.
	uriScheme = "clindex://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	if s.ports.Document == nil {
		return
	}

	// Static resource for listing documents.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "List of all ingested guideline documents",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	// Template for document content.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}",
		Name:        "document-content",
		Description: "Full text of a specific guideline document",
		MIMEType:    "text/plain",
	}, s.handleDocumentContentResource)
}

// handleDocumentsResource returns the list of ingested documents.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	docs, err := s.ports.Document.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	type docInfo struct {
		ID           string `json:"id"`
		Title        string `json:"title"`
		Organisation string `json:"organisation,omitempty"`
		Published    string `json:"published,omitempty"`
		URI          string `json:"uri,omitempty"`
	}

	infos := make([]docInfo, len(docs))
	for i, doc := range docs {
		infos[i] = docInfo{
			ID:           doc.ID,
			Title:        doc.Title,
			Organisation: doc.Organisation,
			URI:          doc.URI,
		}
		if doc.Published != nil {
			infos[i].Published = doc.Published.Format("2006-01-02")
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling documents: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDocumentContentResource returns the full text of one document.
func (s *Server) handleDocumentContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	documentID := strings.TrimPrefix(req.Params.URI, uriScheme+"documents/")
	if documentID == "" || documentID == req.Params.URI {
		return nil, fmt.Errorf("invalid document URI: %s", req.Params.URI)
	}

	content, err := s.ports.Document.GetContent(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", documentID, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     content,
		}},
	}, nil
}
