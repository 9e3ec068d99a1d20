package services

import (
	"sort"
	"strings"

	"github.com/clindex-labs/clindex-cli/internal/core/domain"
	"github.com/clindex-labs/clindex-cli/internal/core/ports/driving"
)

// assemble fills the bundle's sections from the candidates: sorted by
// score descending (stable, so ties keep first-seen order), capped per
// section, near-duplicate lines dropped. Citations are appended the
// first time a document contributes a chosen sentence, in selection
// order, deduplicated by document identity.
func (s *AnswerService) assemble(
	bundle *domain.AnswerBundle, candidates []candidate, caps driving.SectionCaps,
) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	maxCitations := s.tuning.MaxCitations
	if maxCitations <= 0 {
		maxCitations = 8
	}

	seenLines := make(map[string]bool)
	citedDocs := make(map[string]bool)

	for i := range candidates {
		c := &candidates[i]

		if len(bundle.Section(c.category)) >= caps.Cap(c.category) {
			continue
		}

		key := dedupeKey(c.text)
		if seenLines[key] {
			continue
		}
		seenLines[key] = true

		bundle.Append(c.category, domain.Sentence{
			Text:       c.text,
			Score:      c.score,
			DocumentID: c.doc.ID,
		})

		if !citedDocs[c.doc.ID] && len(bundle.Citations) < maxCitations {
			citedDocs[c.doc.ID] = true
			bundle.Citations = append(bundle.Citations, domain.Citation{
				Title:        c.doc.Title,
				Organisation: c.doc.Organisation,
				Published:    c.doc.Published,
				URI:          c.doc.URI,
			})
		}
	}

	// A corpus with no lexically recognisable clinical content yields a
	// single no-match marker, not four empty sections.
	if bundle.Empty() {
		bundle.NoLocalMatch = true
		bundle.Citations = nil
	}
}

// dedupeKey normalises a sentence for near-duplicate detection:
// lower-cased, punctuation stripped, whitespace collapsed.
func dedupeKey(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	lastSpace := true
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSpace = false
		case !lastSpace:
			b.WriteByte(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}
