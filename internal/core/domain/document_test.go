package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentJSONRoundTrip(t *testing.T) {
	published := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	doc := Document{
		ID:           "b1946ac92492d2347c6235b4d2611184",
		Title:        "Hyperkalaemia Guideline",
		Organisation: "Renal Association",
		Published:    &published,
		URI:          "https://example.org/hyperkalaemia",
		TextLength:   2048,
		IngestSeq:    7,
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var got Document
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, doc.ID, got.ID)
	assert.Equal(t, doc.Organisation, got.Organisation)
	assert.Equal(t, doc.IngestSeq, got.IngestSeq)
	require.NotNil(t, got.Published)
	assert.True(t, got.Published.Equal(published))
}

func TestDocumentWithoutPublicationDate(t *testing.T) {
	doc := Document{ID: "abc", Title: "Undated"}
	assert.Nil(t, doc.Published)

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "published", "missing date is omitted from JSON")
}

func TestChunkBelongsToDocument(t *testing.T) {
	chunk := Chunk{
		ID:         "chunk-1",
		DocumentID: "doc-1",
		Position:   3,
		Content:    "Give 10 ml calcium gluconate 10% IV.",
	}

	assert.Equal(t, "doc-1", chunk.DocumentID)
	assert.Equal(t, 3, chunk.Position)
}
