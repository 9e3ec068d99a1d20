// Package memory provides an in-memory inverted term index. The index is
// derived state: it is rebuilt from the document store at startup and on
// demand, so it needs no durable format of its own.
package memory

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/clindex-labs/clindex-cli/internal/core/domain"
	"github.com/clindex-labs/clindex-cli/internal/core/ports/driven"
	"github.com/clindex-labs/clindex-cli/internal/lexicon"
)

// Ensure TermIndex implements the interface.
var _ driven.TermIndex = (*TermIndex)(nil)

// generation is one immutable-on-swap index version. Incremental adds
// mutate the current generation under its lock; a rebuild constructs a
// fresh generation offline and publishes it with a single pointer swap,
// so readers observe either the old or the new index, never a mix.
type generation struct {
	mu sync.RWMutex

	// postings maps term -> chunk ID -> term frequency.
	postings map[string]map[string]int

	// docChunks maps document ID -> chunk IDs, for removal.
	docChunks map[string][]string

	// chunkTerms maps chunk ID -> terms, to drop postings on removal.
	chunkTerms map[string][]string
}

func newGeneration() *generation {
	return &generation{
		postings:   make(map[string]map[string]int),
		docChunks:  make(map[string][]string),
		chunkTerms: make(map[string][]string),
	}
}

// add indexes one chunk within this generation. Caller-locked variants
// exist because rebuild fills a generation nobody else can see yet.
func (g *generation) add(chunk domain.Chunk) {
	terms := termFrequencies(chunk.Content)
	chunkTermList := make([]string, 0, len(terms))

	for term, freq := range terms {
		m, ok := g.postings[term]
		if !ok {
			m = make(map[string]int)
			g.postings[term] = m
		}
		m[chunk.ID] = freq
		chunkTermList = append(chunkTermList, term)
	}

	g.docChunks[chunk.DocumentID] = append(g.docChunks[chunk.DocumentID], chunk.ID)
	g.chunkTerms[chunk.ID] = chunkTermList
}

// TermIndex is a versioned in-memory inverted index.
type TermIndex struct {
	gen atomic.Pointer[generation]

	// rebuildMu serialises rebuilds; they are the single exclusive
	// mutating operation.
	rebuildMu sync.Mutex
}

// New creates an empty term index.
func New() *TermIndex {
	idx := &TermIndex{}
	idx.gen.Store(newGeneration())
	return idx
}

// Add indexes a chunk. Additive and safe during concurrent lookups.
func (idx *TermIndex) Add(_ context.Context, chunk domain.Chunk) error {
	g := idx.gen.Load()
	g.mu.Lock()
	defer g.mu.Unlock()
	g.add(chunk)
	return nil
}

// Remove drops all chunks belonging to a document.
func (idx *TermIndex) Remove(_ context.Context, documentID string) error {
	g := idx.gen.Load()
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, chunkID := range g.docChunks[documentID] {
		for _, term := range g.chunkTerms[chunkID] {
			if m, ok := g.postings[term]; ok {
				delete(m, chunkID)
				if len(m) == 0 {
					delete(g.postings, term)
				}
			}
		}
		delete(g.chunkTerms, chunkID)
	}
	delete(g.docChunks, documentID)

	return nil
}

// Lookup returns chunk IDs matching any token, with total token hits per
// chunk. An empty token set returns an empty result, never the corpus.
func (idx *TermIndex) Lookup(_ context.Context, tokens []string) (map[string]int, error) {
	hits := make(map[string]int)
	if len(tokens) == 0 {
		return hits, nil
	}

	g := idx.gen.Load()
	g.mu.RLock()
	defer g.mu.RUnlock()

	for _, token := range tokens {
		for chunkID, freq := range g.postings[token] {
			hits[chunkID] += freq
		}
	}

	return hits, nil
}

// Rebuild atomically replaces the index contents with the given chunks.
// In-flight lookups keep reading the old generation until the swap.
func (idx *TermIndex) Rebuild(ctx context.Context, chunks []domain.Chunk) (int, error) {
	idx.rebuildMu.Lock()
	defer idx.rebuildMu.Unlock()

	fresh := newGeneration()
	for i := range chunks {
		if err := ctx.Err(); err != nil {
			// Abandoned rebuild: the old generation stays live.
			return 0, err
		}
		fresh.add(chunks[i])
	}

	idx.gen.Store(fresh)
	return len(chunks), nil
}

// Size returns the number of chunks currently indexed.
func (idx *TermIndex) Size() int {
	g := idx.gen.Load()
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.chunkTerms)
}

// termFrequencies derives the token set of a chunk: lower-cased
// alphanumeric runs of at least three characters, with counts. The same
// rule tokenises queries, so index terms and query tokens always agree.
func termFrequencies(text string) map[string]int {
	freqs := make(map[string]int)
	lower := strings.ToLower(text)

	start := -1
	flush := func(end int) {
		if start >= 0 && end-start >= lexicon.MinTokenLength {
			freqs[lower[start:end]]++
		}
		start = -1
	}

	for i, r := range lower {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(lower))

	return freqs
}
