package driven

import (
	"context"

	"github.com/clindex-labs/clindex-cli/internal/core/domain"
)

// TermIndex maps query tokens to chunk identifiers with hit counts.
// An inverted term index backs the default implementation; any backend
// honouring this contract (e.g. a vector index) can replace it.
type TermIndex interface {
	// Add indexes a chunk. Additive; safe to call during queries.
	Add(ctx context.Context, chunk domain.Chunk) error

	// Remove drops all chunks belonging to a document.
	Remove(ctx context.Context, documentID string) error

	// Lookup returns chunk IDs matching any of the tokens, with the
	// total number of token hits per chunk. An empty token set returns
	// an empty result, never the whole corpus.
	Lookup(ctx context.Context, tokens []string) (map[string]int, error)

	// Rebuild atomically replaces the index contents with the given
	// chunks and returns the number of chunks indexed. Concurrent
	// lookups observe either the old or the new index, never a mix.
	Rebuild(ctx context.Context, chunks []domain.Chunk) (int, error)

	// Size returns the number of chunks currently indexed.
	Size() int
}
