package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/clindex-labs/clindex-cli/internal/core/domain"
	"github.com/clindex-labs/clindex-cli/internal/logger"
)

// scoreWorkers bounds the goroutines scoring candidate chunks. Scoring
// is a pure function of chunk and query, so splitting it across workers
// cannot change the observable result.
const scoreWorkers = 4

// rankedChunk pairs a chunk with its score and the owning document.
type rankedChunk struct {
	chunk domain.Chunk
	doc   *domain.Document
	score float64
}

// rank retrieves candidates from the index and scores them: query-term
// occurrences plus lexical-cue deltas, then authority and recency
// bonuses from the owning document. Chunks that cannot be loaded are
// skipped and counted, not fatal. Only chunks scoring above zero are
// returned, at most k, sorted by score descending with ties broken by
// document ingest order then chunk position.
func (s *AnswerService) rank(ctx context.Context, tokens []string, k int) ([]rankedChunk, int, error) {
	if len(tokens) == 0 {
		return nil, 0, nil
	}

	hits, err := s.index.Lookup(ctx, tokens)
	if err != nil {
		return nil, 0, fmt.Errorf("index lookup: %w", err)
	}
	logger.Debug("Index hits: %d chunks", len(hits))

	// Hydrate candidates. Documents are fetched once each.
	candidates := make([]rankedChunk, 0, len(hits))
	docs := make(map[string]*domain.Document)
	skipped := 0

	for chunkID := range hits {
		chunk, err := s.docStore.GetChunk(ctx, chunkID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				skipped++
				continue
			}
			return nil, skipped, fmt.Errorf("%w: get chunk %s: %w", domain.ErrStoreUnavailable, chunkID, err)
		}

		doc, ok := docs[chunk.DocumentID]
		if !ok {
			doc, err = s.docStore.GetDocument(ctx, chunk.DocumentID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					skipped++
					continue
				}
				return nil, skipped, fmt.Errorf("%w: get document %s: %w", domain.ErrStoreUnavailable, chunk.DocumentID, err)
			}
			docs[chunk.DocumentID] = doc
		}

		candidates = append(candidates, rankedChunk{chunk: *chunk, doc: doc})
	}

	s.scoreAll(candidates, tokens)

	// Drop zero-relevance candidates entirely.
	scored := candidates[:0]
	for _, c := range candidates {
		if c.score > 0 {
			scored = append(scored, c)
		}
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		if scored[i].doc.IngestSeq != scored[j].doc.IngestSeq {
			return scored[i].doc.IngestSeq < scored[j].doc.IngestSeq
		}
		return scored[i].chunk.Position < scored[j].chunk.Position
	})

	if len(scored) > k {
		scored = scored[:k]
	}

	return scored, skipped, nil
}

// scoreAll scores candidates in place across a small worker pool.
func (s *AnswerService) scoreAll(candidates []rankedChunk, tokens []string) {
	if len(candidates) == 0 {
		return
	}

	var wg sync.WaitGroup
	work := make(chan int)

	workers := scoreWorkers
	if workers > len(candidates) {
		workers = len(candidates)
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				c := &candidates[i]
				c.score = s.lex.Score(c.chunk.Content, tokens) + s.documentBonus(c.doc)
			}
		}()
	}

	for i := range candidates {
		work <- i
	}
	close(work)
	wg.Wait()
}

// documentBonus is the authority weight of the issuing organisation plus
// the recency bonus, decaying linearly from RecencyMaxBonus at
// publication date = now to zero at RecencyMaxAgeDays. An unknown
// organisation or publication date contributes nothing.
func (s *AnswerService) documentBonus(doc *domain.Document) float64 {
	bonus := s.tuning.Authority[doc.Organisation]

	if doc.Published != nil && s.tuning.RecencyMaxBonus > 0 && s.tuning.RecencyMaxAgeDays > 0 {
		age := time.Since(*doc.Published)
		maxAge := time.Duration(s.tuning.RecencyMaxAgeDays) * 24 * time.Hour
		if age >= 0 && age < maxAge {
			bonus += s.tuning.RecencyMaxBonus * (1 - float64(age)/float64(maxAge))
		}
	}

	return bonus
}
