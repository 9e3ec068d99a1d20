package driving

import (
	"context"

	"github.com/clindex-labs/clindex-cli/internal/core/domain"
)

// SectionCaps bounds the number of sentences kept per answer section.
type SectionCaps struct {
	Definition int `json:"definition"`
	Causes     int `json:"causes"`
	Immediate  int `json:"immediate"`
	Ongoing    int `json:"ongoing"`
}

// Cap returns the bound for the given category.
func (c SectionCaps) Cap(cat domain.Category) int {
	switch cat {
	case domain.CategoryDefinition:
		return c.Definition
	case domain.CategoryCauses:
		return c.Causes
	case domain.CategoryImmediate:
		return c.Immediate
	case domain.CategoryOngoing:
		return c.Ongoing
	default:
		return 0
	}
}

// AnswerOptions configures one query.
type AnswerOptions struct {
	// K bounds the number of chunks considered after ranking.
	K int

	// Caps overrides the per-section sentence bounds when non-nil.
	Caps *SectionCaps

	// Paraphrase requests an additional prose rendering from the
	// configured generator. Generator failure never degrades the bundle.
	Paraphrase bool
}

// AnswerResult pairs the extractive bundle with the optional prose
// rendering. The bundle is always populated; Paraphrase may be empty.
type AnswerResult struct {
	Bundle     *domain.AnswerBundle `json:"bundle"`
	Paraphrase string               `json:"paraphrase,omitempty"`
}

// AnswerService answers a free-text clinical question from the corpus.
type AnswerService interface {
	// Answer runs the query pipeline: tokenise, rank, extract,
	// categorise and assemble. A corpus with no usable context yields
	// a bundle with NoLocalMatch set, not an error.
	Answer(ctx context.Context, question string, opts AnswerOptions) (*AnswerResult, error)
}
