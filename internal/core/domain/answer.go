package domain

import "time"

// Category is one of the four fixed answer sections.
type Category int

const (
	// CategoryDefinition holds definitions and diagnostic criteria.
	CategoryDefinition Category = iota

	// CategoryCauses holds causes, triggers and complications.
	CategoryCauses

	// CategoryImmediate holds immediate management steps and doses.
	CategoryImmediate

	// CategoryOngoing holds monitoring and follow-up guidance.
	CategoryOngoing
)

// Categories lists all answer sections in presentation order.
func Categories() []Category {
	return []Category{CategoryDefinition, CategoryCauses, CategoryImmediate, CategoryOngoing}
}

// String returns the short section name.
func (c Category) String() string {
	switch c {
	case CategoryDefinition:
		return "Definition/Criteria"
	case CategoryCauses:
		return "Causes/Complications"
	case CategoryImmediate:
		return "Immediate Management"
	case CategoryOngoing:
		return "Ongoing Care"
	default:
		return "Unknown"
	}
}

// Heading returns the reader-facing section heading.
func (c Category) Heading() string {
	switch c {
	case CategoryDefinition:
		return "What it is & how to recognise it"
	case CategoryCauses:
		return "Common causes & complications"
	case CategoryImmediate:
		return "Immediate management (first steps & doses)"
	case CategoryOngoing:
		return "Monitoring / follow-up"
	default:
		return "Unknown"
	}
}

// Sentence is a single selected line within an answer section.
type Sentence struct {
	// Text is the sentence text, clipped to the configured maximum length.
	Text string `json:"text"`

	// Score is the lexical relevance score used for within-section ordering.
	Score float64 `json:"score"`

	// DocumentID links to the source Document for citation assembly.
	DocumentID string `json:"document_id"`
}

// Citation identifies a source document that contributed at least one
// selected sentence.
type Citation struct {
	Title        string     `json:"title"`
	Organisation string     `json:"organisation,omitempty"`
	Published    *time.Time `json:"published,omitempty"`
	URI          string     `json:"uri,omitempty"`
}

// AnswerBundle is the structured output of one query: four fixed sections
// plus an ordered citation list. The sections are named fields rather than
// an open-ended map so the type system enforces completeness.
type AnswerBundle struct {
	Definition []Sentence `json:"definition_criteria"`
	Causes     []Sentence `json:"causes_complications"`
	Immediate  []Sentence `json:"immediate_management"`
	Ongoing    []Sentence `json:"ongoing_care"`

	// Citations lists contributing documents, deduplicated by document
	// identity, in order of first appearance among selected sentences.
	Citations []Citation `json:"citations"`

	// NoLocalMatch reports that no usable local context was found.
	// Distinct from a storage failure, which is surfaced as an error.
	NoLocalMatch bool `json:"no_local_match"`

	// SkippedChunks counts chunks that could not be processed during
	// this query. Component-local failures are skipped and counted, not
	// propagated, so partial results stay available.
	SkippedChunks int `json:"skipped_chunks,omitempty"`
}

// Section returns the sentences of the given category.
func (b *AnswerBundle) Section(c Category) []Sentence {
	switch c {
	case CategoryDefinition:
		return b.Definition
	case CategoryCauses:
		return b.Causes
	case CategoryImmediate:
		return b.Immediate
	case CategoryOngoing:
		return b.Ongoing
	default:
		return nil
	}
}

// Append adds a sentence to the given category's section.
func (b *AnswerBundle) Append(c Category, s Sentence) {
	switch c {
	case CategoryDefinition:
		b.Definition = append(b.Definition, s)
	case CategoryCauses:
		b.Causes = append(b.Causes, s)
	case CategoryImmediate:
		b.Immediate = append(b.Immediate, s)
	case CategoryOngoing:
		b.Ongoing = append(b.Ongoing, s)
	}
}

// Empty reports whether every section is empty.
func (b *AnswerBundle) Empty() bool {
	return len(b.Definition) == 0 && len(b.Causes) == 0 &&
		len(b.Immediate) == 0 && len(b.Ongoing) == 0
}
