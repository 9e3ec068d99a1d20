// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It lets AI assistants query the local guideline corpus and manage
// ingestion through tools and resources.
package mcp

import "errors"

// ErrMissingAnswerService is returned when the answer service is not provided.
var ErrMissingAnswerService = errors.New("mcp: answer service is required")
