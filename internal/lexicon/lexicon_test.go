package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clindex-labs/clindex-cli/internal/core/domain"
)

func TestTokenize(t *testing.T) {
	lex := New()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"basic", "Hyperkalaemia management", []string{"hyperkalaemia", "management"}},
		{"short tokens dropped", "is it an MI", []string{}},
		{"duplicates removed", "sepsis and sepsis again", []string{"sepsis", "and", "again"}},
		{"punctuation split", "QRS>120ms: give calcium!", []string{"qrs", "120ms", "give", "calcium"}},
		{"empty", "   ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lex.Tokenize(tt.query)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTermScore(t *testing.T) {
	lex := New()

	text := "Hyperkalaemia management: repeat potassium after treatment of hyperkalaemia."
	assert.Equal(t, 2.0, lex.TermScore(text, []string{"hyperkalaemia"}))
	assert.Equal(t, 3.0, lex.TermScore(text, []string{"hyperkalaemia", "management"}))
	assert.Equal(t, 0.0, lex.TermScore(text, nil))
}

func TestCueScore(t *testing.T) {
	lex := New()

	t.Run("dose and route", func(t *testing.T) {
		s := "Give calcium gluconate 10% 10 mL IV over 10 minutes"
		// urgency (calcium) + dose + route all fire.
		assert.Equal(t, DefaultUrgencyDelta+DefaultDoseDelta+DefaultRouteDelta, lex.CueScore(s))
	})

	t.Run("bullet line", func(t *testing.T) {
		assert.Equal(t, DefaultBulletDelta, lex.CueScore("- reassure the patient"))
	})

	t.Run("percent dose", func(t *testing.T) {
		assert.Equal(t, DefaultDoseDelta, lex.CueScore("sodium chloride 0.9% infusion rate unchanged")-DefaultRouteDelta)
	})

	t.Run("background text", func(t *testing.T) {
		assert.Equal(t, 0.0, lex.CueScore("The condition was first described in 1954."))
	})
}

func TestScoreMonotonicity(t *testing.T) {
	lex := New()
	tokens := []string{"potassium"}

	base := "Check the level again tomorrow."
	withTerm := base + " Recheck potassium."
	assert.Greater(t, lex.Score(withTerm, tokens), lex.Score(base, tokens),
		"adding a query-term occurrence must not decrease the score")
}

func TestScoreLengthBonus(t *testing.T) {
	lex := New()

	short := "Too short."
	informative := "Recheck the serum level four to six hours after treatment and escalate to the renal team when the value remains elevated despite two rounds of therapy."
	assert.Equal(t, 0.0, lex.Score(short, nil))
	assert.Equal(t, DefaultLengthDelta, lex.Score(informative, nil))
}

func TestWithDeltas(t *testing.T) {
	lex := New(WithDeltas(map[string]float64{"dose": 10, "length": 0}))
	assert.Equal(t, 10.0, lex.CueScore("amoxicillin 500 mg"))
}

func TestCategorise(t *testing.T) {
	lex := New()

	tests := []struct {
		name     string
		sentence string
		want     domain.Category
	}{
		{"definition", "Definition: serum potassium > 6.0 mmol/L", domain.CategoryDefinition},
		{"criteria", "The patient meets sepsis criteria when two or more are present", domain.CategoryDefinition},
		{"causes", "Common triggers are dehydration and infection", domain.CategoryCauses},
		{"complication not immediate", "may cause cardiac arrest if untreated", domain.CategoryCauses},
		{"dose is immediate", "Give 10 mL of calcium gluconate", domain.CategoryImmediate},
		{"urgency word", "Start first-line antibiotics without delay", domain.CategoryImmediate},
		{"default ongoing", "Review in clinic within two weeks", domain.CategoryOngoing},
		{"monitoring", "Monitor ECG continuously", domain.CategoryOngoing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lex.Categorise(tt.sentence))
		})
	}
}
