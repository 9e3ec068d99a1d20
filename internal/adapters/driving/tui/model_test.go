package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/clindex-labs/clindex-cli/internal/core/domain"
)

func TestRenderBundleNoMatch(t *testing.T) {
	out := RenderBundle(&domain.AnswerBundle{NoLocalMatch: true})
	assert.Contains(t, out, "No local guideline content")
}

func TestRenderBundleSections(t *testing.T) {
	published := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	bundle := &domain.AnswerBundle{
		Definition: []domain.Sentence{{Text: "Hyperkalaemia is potassium above 5.5 mmol/L."}},
		Immediate:  []domain.Sentence{{Text: "Give 10 ml calcium gluconate 10% IV."}},
		Citations: []domain.Citation{{
			Title:        "Hyperkalaemia Guideline",
			Organisation: "Renal Association",
			Published:    &published,
		}},
	}

	out := RenderBundle(bundle)

	assert.Contains(t, out, "What it is & how to recognise it")
	assert.Contains(t, out, "Immediate management (first steps & doses)")
	assert.NotContains(t, out, "Common causes & complications", "empty sections are omitted")
	assert.Contains(t, out, "calcium gluconate")
	assert.Contains(t, out, "Sources")
	assert.Contains(t, out, "Renal Association")
	assert.Contains(t, out, "2025-03-15")
}

func TestFormatCitation(t *testing.T) {
	c := domain.Citation{Title: "Guideline", URI: "https://example.org"}
	out := formatCitation(c)
	assert.Equal(t, "Guideline, https://example.org", out)
}
