package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/clindex-labs/clindex-cli/internal/core/domain"
	"github.com/clindex-labs/clindex-cli/internal/core/ports/driven"
	"github.com/clindex-labs/clindex-cli/internal/core/ports/driving"
	"github.com/clindex-labs/clindex-cli/internal/lexicon"
	"github.com/clindex-labs/clindex-cli/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// AnswerTuning holds the query-time weights and bounds. All values come
// from configuration; see config.Default for the shipped constants.
type AnswerTuning struct {
	// K is the default number of top chunks per query.
	K int

	// Authority maps issuing organisations to additive score weights.
	Authority map[string]float64

	// RecencyMaxBonus decays linearly to zero at RecencyMaxAgeDays.
	RecencyMaxBonus   float64
	RecencyMaxAgeDays int

	// Caps bounds sentences per section.
	Caps driving.SectionCaps

	// MaxCitations bounds the citation list.
	MaxCitations int

	// Sentence length bounds in characters.
	MinSentenceChars int
	MaxSentenceChars int
}

// AnswerService runs the query pipeline: tokenise the question, rank
// chunks, extract and categorise sentences, assemble the bundle.
type AnswerService struct {
	docStore  driven.DocumentStore
	index     driven.TermIndex
	generator driven.Generator
	lex       *lexicon.Lexicon
	tuning    AnswerTuning
}

// NewAnswerService creates a new answer service.
// The generator is optional (can be nil).
func NewAnswerService(
	docStore driven.DocumentStore,
	index driven.TermIndex,
	generator driven.Generator,
	lex *lexicon.Lexicon,
	tuning AnswerTuning,
) *AnswerService {
	if tuning.K <= 0 {
		tuning.K = 12
	}
	if tuning.MaxSentenceChars <= 0 {
		tuning.MaxSentenceChars = 500
	}
	return &AnswerService{
		docStore:  docStore,
		index:     index,
		generator: generator,
		lex:       lex,
		tuning:    tuning,
	}
}

// Answer answers a free-text clinical question from the local corpus.
func (s *AnswerService) Answer(
	ctx context.Context, question string, opts driving.AnswerOptions,
) (*driving.AnswerResult, error) {
	logger.Section("Answer Pipeline")

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}

	k := opts.K
	if k <= 0 {
		k = s.tuning.K
	}
	caps := s.tuning.Caps
	if opts.Caps != nil {
		caps = *opts.Caps
	}

	tokens := s.lex.Tokenize(question)
	logger.Debug("Query tokens: %v", tokens)

	ranked, skipped, err := s.rank(ctx, tokens, k)
	if err != nil {
		return nil, err
	}
	logger.Debug("Ranked chunks: %d (skipped %d)", len(ranked), skipped)

	bundle := &domain.AnswerBundle{SkippedChunks: skipped}
	if len(ranked) == 0 {
		// No usable context is a defined result, not an error.
		bundle.NoLocalMatch = true
		return &driving.AnswerResult{Bundle: bundle}, nil
	}

	candidates := s.extract(ranked, tokens)
	logger.Debug("Candidate sentences: %d", len(candidates))

	s.assemble(bundle, candidates, caps)

	result := &driving.AnswerResult{Bundle: bundle}

	if opts.Paraphrase && s.generator != nil && !bundle.NoLocalMatch {
		prose, err := s.generator.Paraphrase(ctx, question, bundle)
		if err != nil {
			// The extractive bundle stands on its own.
			logger.Warn("Paraphrase failed: %v", err)
		} else {
			result.Paraphrase = prose
		}
	}

	return result, nil
}
