package driven

import (
	"context"

	"github.com/clindex-labs/clindex-cli/internal/core/domain"
)

// Generator optionally rephrases an assembled answer bundle into prose.
// It is an external collaborator: the extractive bundle must remain
// independently useful when the generator is absent, slow or failing.
type Generator interface {
	// Paraphrase renders the bundle as readable prose for the question.
	Paraphrase(ctx context.Context, question string, bundle *domain.AnswerBundle) (string, error)
}
