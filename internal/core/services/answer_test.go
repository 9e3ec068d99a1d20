package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	indexmem "github.com/clindex-labs/clindex-cli/internal/adapters/driven/index/memory"
	"github.com/clindex-labs/clindex-cli/internal/adapters/driven/storage/memory"
	"github.com/clindex-labs/clindex-cli/internal/chunker"
	"github.com/clindex-labs/clindex-cli/internal/core/domain"
	"github.com/clindex-labs/clindex-cli/internal/core/ports/driving"
	"github.com/clindex-labs/clindex-cli/internal/lexicon"
	"github.com/clindex-labs/clindex-cli/internal/normalisers"
	"github.com/clindex-labs/clindex-cli/internal/normalisers/plaintext"
)

// stubGenerator returns a canned paraphrase or a canned error.
type stubGenerator struct {
	prose string
	err   error
	calls int
}

func (g *stubGenerator) Paraphrase(_ context.Context, _ string, _ *domain.AnswerBundle) (string, error) {
	g.calls++
	return g.prose, g.err
}

func defaultTuning() AnswerTuning {
	return AnswerTuning{
		K:                 12,
		Authority:         map[string]float64{"Resus Council": 3},
		RecencyMaxBonus:   2,
		RecencyMaxAgeDays: 1460,
		Caps:              driving.SectionCaps{Definition: 3, Causes: 3, Immediate: 6, Ongoing: 4},
		MaxCitations:      8,
		MinSentenceChars:  10,
		MaxSentenceChars:  500,
	}
}

type answerFixture struct {
	ingest *IngestService
	answer *AnswerService
	gen    *stubGenerator
}

func newAnswerFixture(tuning AnswerTuning) *answerFixture {
	docStore := memory.NewDocumentStore()
	index := indexmem.New()
	registry := normalisers.NewRegistry(plaintext.New())
	gen := &stubGenerator{prose: "canned prose"}

	return &answerFixture{
		ingest: NewIngestService(docStore, index, registry, chunker.New()),
		answer: NewAnswerService(docStore, index, gen, lexicon.New(), tuning),
		gen:    gen,
	}
}

func (f *answerFixture) mustIngest(t *testing.T, raw domain.RawDocument) string {
	t.Helper()
	receipt, err := f.ingest.Ingest(context.Background(), raw)
	require.NoError(t, err)
	return receipt.DocumentID
}

const hyperkalaemiaGuideline = `Hyperkalaemia is a serum potassium above 5.5 mmol/L and ECG signs include tall tented T waves.
Common causes of hyperkalaemia include renal failure and ACE inhibitors.
Give 10 ml calcium gluconate 10% IV immediately to protect the myocardium in hyperkalaemia.
Monitor serum potassium two hours after treatment and repeat the ECG.`

func TestAnswerCategorisesIntoSections(t *testing.T) {
	f := newAnswerFixture(defaultTuning())
	published := time.Now().AddDate(0, -6, 0)
	docID := f.mustIngest(t, domain.RawDocument{
		MIMEType:     "text/plain",
		Content:      []byte(hyperkalaemiaGuideline),
		Title:        "Hyperkalaemia Guideline",
		Organisation: "Resus Council",
		Published:    &published,
		URI:          "https://example.org/hyperkalaemia",
	})

	result, err := f.answer.Answer(context.Background(), "How do I manage hyperkalaemia?", driving.AnswerOptions{})
	require.NoError(t, err)

	bundle := result.Bundle
	require.False(t, bundle.NoLocalMatch)

	require.Len(t, bundle.Definition, 1)
	assert.Contains(t, bundle.Definition[0].Text, "5.5 mmol/L")

	require.Len(t, bundle.Causes, 1)
	assert.Contains(t, bundle.Causes[0].Text, "renal failure")

	require.Len(t, bundle.Immediate, 1)
	assert.Contains(t, bundle.Immediate[0].Text, "calcium gluconate")

	require.Len(t, bundle.Ongoing, 1)
	assert.Contains(t, bundle.Ongoing[0].Text, "Monitor")

	require.Len(t, bundle.Citations, 1)
	assert.Equal(t, "Hyperkalaemia Guideline", bundle.Citations[0].Title)
	assert.Equal(t, "Resus Council", bundle.Citations[0].Organisation)

	for _, sent := range bundle.Immediate {
		assert.Equal(t, docID, sent.DocumentID)
	}

	assert.Empty(t, result.Paraphrase, "paraphrase not requested")
}

func TestAnswerEmptyQuestion(t *testing.T) {
	f := newAnswerFixture(defaultTuning())

	_, err := f.answer.Answer(context.Background(), "   ", driving.AnswerOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAnswerEmptyCorpus(t *testing.T) {
	f := newAnswerFixture(defaultTuning())

	result, err := f.answer.Answer(context.Background(), "How do I manage sepsis?", driving.AnswerOptions{})
	require.NoError(t, err)
	assert.True(t, result.Bundle.NoLocalMatch)
	assert.Empty(t, result.Bundle.Citations)
}

func TestAnswerIrrelevantQuestion(t *testing.T) {
	f := newAnswerFixture(defaultTuning())
	f.mustIngest(t, domain.RawDocument{
		MIMEType: "text/plain",
		Content:  []byte(hyperkalaemiaGuideline),
	})

	result, err := f.answer.Answer(context.Background(), "zygomatic arch fracture fixation", driving.AnswerOptions{})
	require.NoError(t, err)
	assert.True(t, result.Bundle.NoLocalMatch, "no overlapping terms means no usable context")
}

func TestAnswerSectionCapOverride(t *testing.T) {
	f := newAnswerFixture(defaultTuning())
	f.mustIngest(t, domain.RawDocument{
		MIMEType: "text/plain",
		Content: []byte(`Give 10 ml calcium gluconate 10% IV immediately for hyperkalaemia.
Give insulin 10 units with 50 ml dextrose 50% IV for hyperkalaemia.
Give salbutamol 10 mg neb as an adjunct for hyperkalaemia.`),
	})

	caps := driving.SectionCaps{Definition: 3, Causes: 3, Immediate: 1, Ongoing: 4}
	result, err := f.answer.Answer(context.Background(), "hyperkalaemia treatment", driving.AnswerOptions{Caps: &caps})
	require.NoError(t, err)

	assert.Len(t, result.Bundle.Immediate, 1, "per-query cap overrides the default")
}

func TestAnswerCitationsDedupedAndOrdered(t *testing.T) {
	f := newAnswerFixture(defaultTuning())
	f.mustIngest(t, domain.RawDocument{
		MIMEType:     "text/plain",
		Content:      []byte("Give 10 ml calcium gluconate 10% IV immediately for severe hyperkalaemia. Hyperkalaemia with ECG signs needs urgent treatment of hyperkalaemia."),
		Title:        "Emergency Treatment",
		Organisation: "Resus Council",
	})
	f.mustIngest(t, domain.RawDocument{
		MIMEType: "text/plain",
		Content:  []byte("Dialysis may be considered for refractory hyperkalaemia after discussion."),
		Title:    "Renal Handbook",
	})

	result, err := f.answer.Answer(context.Background(), "hyperkalaemia", driving.AnswerOptions{})
	require.NoError(t, err)

	bundle := result.Bundle
	require.Len(t, bundle.Citations, 2)
	assert.Equal(t, "Emergency Treatment", bundle.Citations[0].Title, "citation order follows selection order")
	assert.Equal(t, "Renal Handbook", bundle.Citations[1].Title)
}

func TestAnswerAuthorityOutranksUnweightedSource(t *testing.T) {
	tuning := defaultTuning()
	tuning.RecencyMaxBonus = 0
	f := newAnswerFixture(tuning)

	// Lexically equivalent chunks; only the organisation differs. With
	// K=1 the authority bonus decides which chunk survives ranking.
	f.mustIngest(t, domain.RawDocument{
		MIMEType: "text/plain",
		Content:  []byte("Anaphylaxis referral pathway alpha for community clinics."),
		Title:    "Unweighted Guideline",
	})
	f.mustIngest(t, domain.RawDocument{
		MIMEType:     "text/plain",
		Content:      []byte("Anaphylaxis referral pathway bravo for community clinics."),
		Title:        "Weighted Guideline",
		Organisation: "Resus Council",
	})

	result, err := f.answer.Answer(context.Background(), "anaphylaxis referral pathway", driving.AnswerOptions{K: 1})
	require.NoError(t, err)

	bundle := result.Bundle
	require.Len(t, bundle.Citations, 1)
	assert.Equal(t, "Weighted Guideline", bundle.Citations[0].Title, "authority bonus outranks the unweighted source")
}

func TestAnswerParaphrase(t *testing.T) {
	f := newAnswerFixture(defaultTuning())
	f.mustIngest(t, domain.RawDocument{
		MIMEType: "text/plain",
		Content:  []byte(hyperkalaemiaGuideline),
	})

	result, err := f.answer.Answer(context.Background(), "hyperkalaemia", driving.AnswerOptions{Paraphrase: true})
	require.NoError(t, err)
	assert.Equal(t, "canned prose", result.Paraphrase)
	assert.Equal(t, 1, f.gen.calls)
}

func TestAnswerParaphraseFailureKeepsBundle(t *testing.T) {
	f := newAnswerFixture(defaultTuning())
	f.gen.err = errors.New("model unavailable")
	f.mustIngest(t, domain.RawDocument{
		MIMEType: "text/plain",
		Content:  []byte(hyperkalaemiaGuideline),
	})

	result, err := f.answer.Answer(context.Background(), "hyperkalaemia", driving.AnswerOptions{Paraphrase: true})
	require.NoError(t, err, "generator failure never degrades the extractive answer")
	assert.Empty(t, result.Paraphrase)
	assert.False(t, result.Bundle.Empty())
}

func TestAnswerNoParaphraseOnNoMatch(t *testing.T) {
	f := newAnswerFixture(defaultTuning())

	result, err := f.answer.Answer(context.Background(), "sepsis", driving.AnswerOptions{Paraphrase: true})
	require.NoError(t, err)
	assert.True(t, result.Bundle.NoLocalMatch)
	assert.Zero(t, f.gen.calls, "nothing to paraphrase without local context")
}

func TestAnswerDuplicateSentencesSuppressed(t *testing.T) {
	f := newAnswerFixture(defaultTuning())
	f.mustIngest(t, domain.RawDocument{
		MIMEType: "text/plain",
		Content:  []byte("Hyperkalaemia causes muscle weakness in many patients."),
		Title:    "Guideline A",
	})
	f.mustIngest(t, domain.RawDocument{
		MIMEType: "text/plain",
		Content:  []byte("Hyperkalaemia causes muscle weakness in many patients!"),
		Title:    "Guideline B",
	})

	result, err := f.answer.Answer(context.Background(), "hyperkalaemia weakness", driving.AnswerOptions{})
	require.NoError(t, err)

	assert.Len(t, result.Bundle.Causes, 1, "near-duplicate wording appears once")
	assert.Len(t, result.Bundle.Citations, 1)
}

func TestAnswerSentenceClipping(t *testing.T) {
	tuning := defaultTuning()
	tuning.MaxSentenceChars = 80
	f := newAnswerFixture(tuning)

	long := "Hyperkalaemia causes progressive conduction disturbance with widening of the QRS complex followed by a sine wave pattern and eventual ventricular standstill in untreated patients."
	f.mustIngest(t, domain.RawDocument{
		MIMEType: "text/plain",
		Content:  []byte(long),
	})

	result, err := f.answer.Answer(context.Background(), "hyperkalaemia", driving.AnswerOptions{})
	require.NoError(t, err)

	require.NotEmpty(t, result.Bundle.Causes)
	assert.LessOrEqual(t, len(result.Bundle.Causes[0].Text), 80)
}
