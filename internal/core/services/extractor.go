package services

import (
	"strings"

	"github.com/clindex-labs/clindex-cli/internal/chunker"
	"github.com/clindex-labs/clindex-cli/internal/core/domain"
)

// candidate is one extracted sentence awaiting assembly.
type candidate struct {
	text     string
	score    float64
	category domain.Category
	doc      *domain.Document
}

// extract splits the ranked chunks into sentences, scores each with the
// same lexical function the ranker uses, and assigns each to exactly one
// category. Candidates keep chunk-rank order so that equal scores later
// resolve to the earliest-seen sentence.
func (s *AnswerService) extract(ranked []rankedChunk, tokens []string) []candidate {
	minLen := s.tuning.MinSentenceChars
	maxLen := s.tuning.MaxSentenceChars

	var out []candidate
	for i := range ranked {
		sentences := chunker.SplitSentences(ranked[i].chunk.Content)
		for _, sentence := range sentences {
			sentence = strings.TrimSpace(sentence)
			if len(sentence) < minLen {
				continue
			}
			if len(sentence) > maxLen {
				sentence = sentence[:maxLen]
			}

			out = append(out, candidate{
				text:     sentence,
				score:    s.lex.Score(sentence, tokens),
				category: s.lex.Categorise(sentence),
				doc:      ranked[i].doc,
			})
		}
	}

	return out
}
