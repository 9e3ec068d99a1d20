// Package markdown extracts text from Markdown documents, stripping
// formatting while keeping list structure intact.
package markdown

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/clindex-labs/clindex-cli/internal/core/domain"
	"github.com/clindex-labs/clindex-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles Markdown documents.
type Normaliser struct{}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/markdown", "text/x-markdown"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Higher than the plaintext fallback
}

// Extract strips Markdown formatting and returns the remaining text.
// List markers survive as "- " so bullet lines keep their shape for the
// downstream sentence splitter.
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

	return &domain.ExtractionResult{Text: stripMarkdown(string(raw.Content))}, nil
}

var (
	codeBlockRe  = regexp.MustCompile("(?s)```[^`]*```")
	inlineCodeRe = regexp.MustCompile("`[^`]+`")
	imageRe      = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	linkRe       = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	headingRe    = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	blockquoteRe = regexp.MustCompile(`(?m)^>\s*`)
	hrRe         = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	bulletRe     = regexp.MustCompile(`(?m)^(\s*)[*+]\s+`)
	newlinesRe   = regexp.MustCompile(`\n{3,}`)
)

// stripMarkdown removes common markdown formatting for plain text
// content. A simplified implementation that handles common cases.
func stripMarkdown(content string) string {
	content = codeBlockRe.ReplaceAllString(content, "")
	content = inlineCodeRe.ReplaceAllString(content, "")
	content = imageRe.ReplaceAllString(content, "")
	content = linkRe.ReplaceAllString(content, "$1")
	content = headingRe.ReplaceAllString(content, "")
	content = blockquoteRe.ReplaceAllString(content, "")
	content = hrRe.ReplaceAllString(content, "")

	// Normalise * and + list markers to "-"; the sentence splitter
	// treats dashed lines as atomic bullets.
	content = bulletRe.ReplaceAllString(content, "$1- ")

	content = strings.ReplaceAll(content, "**", "")
	content = strings.ReplaceAll(content, "__", "")
	content = strings.ReplaceAll(content, "*", "")

	content = newlinesRe.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content)
}
