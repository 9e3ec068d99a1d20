// Package lexicon provides the lexical rule table used for both chunk
// ranking and sentence categorisation. Both stages consume the same rules
// so their notions of "actionable clinical content" cannot drift apart.
package lexicon

import (
	"regexp"
	"strings"

	"github.com/clindex-labs/clindex-cli/internal/core/domain"
)

// Default rule deltas. These are tuning constants carried over from the
// system this engine replaces; override them via configuration.
const (
	DefaultUrgencyDelta = 8.0
	DefaultDoseDelta    = 4.0
	DefaultRouteDelta   = 3.0
	DefaultBulletDelta  = 1.0
	DefaultLengthDelta  = 1.0
)

// Informative sentence length bounds for the length bonus.
const (
	lengthBonusMin = 80
	lengthBonusMax = 240
)

// MinTokenLength is the minimum length of a query token.
const MinTokenLength = 3

var (
	urgencyRe = regexp.MustCompile(`(?i)\b(immediate(ly)?|first[-\s]?line|stat|urgent|airway|breathing|circulation|resus\w*|abcde|adrenaline|epinephrine|calcium|insulin|dextrose|hyperton\w*|magnesium|ceftriaxone|piperacillin|tazobactam|vancomycin|bolus|defibrill\w*)\b`)
	doseRe    = regexp.MustCompile(`(?i)\b\d+(\.\d+)?\s?(mcg|mg|g|ml)\b|\b\d+(\.\d+)?\s?%`)
	routeRe   = regexp.MustCompile(`(?i)\b(iv|im|po|neb|infus\w*|bolus)\b`)
	bulletRe  = regexp.MustCompile(`^\s*(?:[-•*]|\d+[.)])\s`)

	criteriaRe = regexp.MustCompile(`(?i)\b(definition|criteria|diagnos\w*|meets|signs?|symptoms?|presentation)\b`)
	causesRe   = regexp.MustCompile(`(?i)\b(causes?|caused|triggers?|aetiolog\w*|etiolog\w*|risk|complication\w*|shock|arrhythm\w*|arrest|oedema|edema)\b`)

	tokenRe = regexp.MustCompile(`[a-z0-9]{3,}`)
)

// Rule is a single lexical cue: a pattern and the score delta it adds.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Delta   float64
}

// Lexicon scores and categorises text using a configurable rule table.
type Lexicon struct {
	cues        []Rule
	lengthDelta float64
}

// Option configures the lexicon.
type Option func(*Lexicon)

// WithDeltas overrides the rule deltas by rule name. Names not present
// in the table are ignored; zero deltas disable a rule's contribution.
func WithDeltas(deltas map[string]float64) Option {
	return func(l *Lexicon) {
		for i := range l.cues {
			if d, ok := deltas[l.cues[i].Name]; ok {
				l.cues[i].Delta = d
			}
		}
		if d, ok := deltas["length"]; ok {
			l.lengthDelta = d
		}
	}
}

// New creates a lexicon with the default rule table.
func New(opts ...Option) *Lexicon {
	l := &Lexicon{
		cues: []Rule{
			{Name: "urgency", Pattern: urgencyRe, Delta: DefaultUrgencyDelta},
			{Name: "dose", Pattern: doseRe, Delta: DefaultDoseDelta},
			{Name: "route", Pattern: routeRe, Delta: DefaultRouteDelta},
			{Name: "bullet", Pattern: bulletRe, Delta: DefaultBulletDelta},
		},
		lengthDelta: DefaultLengthDelta,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Tokenize derives the query token list: lower-cased alphanumeric runs of
// at least MinTokenLength characters, deduplicated, first-seen order.
func (l *Lexicon) Tokenize(query string) []string {
	raw := tokenRe.FindAllString(strings.ToLower(query), -1)
	if len(raw) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(raw))
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		tokens = append(tokens, tok)
	}

	return tokens
}

// CueScore returns the summed deltas of all cue rules matching the text.
func (l *Lexicon) CueScore(text string) float64 {
	var score float64
	for _, rule := range l.cues {
		if rule.Pattern.MatchString(text) {
			score += rule.Delta
		}
	}
	return score
}

// HasCue reports whether any urgency or dosing cue matches the text.
// Used by categorisation; the bullet and length rules are shape cues,
// not clinical ones, and do not count here.
func (l *Lexicon) HasCue(text string) bool {
	return urgencyRe.MatchString(text) || doseRe.MatchString(text)
}

// TermScore counts occurrences of the query tokens within the text,
// case-insensitively. Substring occurrences count, not just index hits,
// so inflected forms still contribute.
func (l *Lexicon) TermScore(text string, tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	lower := strings.ToLower(text)
	var score float64
	for _, tok := range tokens {
		score += float64(strings.Count(lower, tok))
	}
	return score
}

// Score is the shared lexical scoring function: query-term occurrences
// plus cue deltas plus the informative-length bonus. The Ranker applies
// it to chunks and the Extractor applies it to sentences.
func (l *Lexicon) Score(text string, tokens []string) float64 {
	score := l.TermScore(text, tokens) + l.CueScore(text)
	if n := len(text); n >= lengthBonusMin && n <= lengthBonusMax {
		score += l.lengthDelta
	}
	return score
}

// Categorise assigns a sentence to exactly one answer section.
// The order is a deliberate tie-break: causal language is checked before
// urgency cues so that "may cause cardiac arrest if untreated" is filed
// under causes, not mistaken for an immediate-action instruction.
func (l *Lexicon) Categorise(sentence string) domain.Category {
	switch {
	case criteriaRe.MatchString(sentence):
		return domain.CategoryDefinition
	case causesRe.MatchString(sentence):
		return domain.CategoryCauses
	case l.HasCue(sentence):
		return domain.CategoryImmediate
	default:
		return domain.CategoryOngoing
	}
}
