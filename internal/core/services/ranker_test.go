package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	indexmem "github.com/clindex-labs/clindex-cli/internal/adapters/driven/index/memory"
	"github.com/clindex-labs/clindex-cli/internal/adapters/driven/storage/memory"
	"github.com/clindex-labs/clindex-cli/internal/core/domain"
	"github.com/clindex-labs/clindex-cli/internal/lexicon"
)

func newRankFixture(tuning AnswerTuning) (*AnswerService, *memory.DocumentStore, *indexmem.TermIndex) {
	docStore := memory.NewDocumentStore()
	index := indexmem.New()
	svc := NewAnswerService(docStore, index, nil, lexicon.New(), tuning)
	return svc, docStore, index
}

func seedChunk(t *testing.T, docStore *memory.DocumentStore, index *indexmem.TermIndex, doc domain.Document, chunk domain.Chunk) {
	t.Helper()
	ctx := context.Background()
	if _, err := docStore.GetDocument(ctx, doc.ID); err != nil {
		require.NoError(t, docStore.SaveDocument(ctx, &doc))
	}
	require.NoError(t, docStore.SaveChunks(ctx, []domain.Chunk{chunk}))
	require.NoError(t, index.Add(ctx, chunk))
}

func TestRankTieBreakByIngestOrder(t *testing.T) {
	svc, docStore, index := newRankFixture(defaultTuning())
	ctx := context.Background()

	// Identical content, so identical scores. Earlier ingest wins.
	seedChunk(t, docStore, index,
		domain.Document{ID: "doc-a"},
		domain.Chunk{ID: "chunk-a", DocumentID: "doc-a", Content: "sepsis screening tool"})
	seedChunk(t, docStore, index,
		domain.Document{ID: "doc-b"},
		domain.Chunk{ID: "chunk-b", DocumentID: "doc-b", Content: "sepsis screening tool"})

	ranked, skipped, err := svc.rank(ctx, []string{"sepsis", "screening"}, 10)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, ranked, 2)
	assert.Equal(t, "chunk-a", ranked[0].chunk.ID)
	assert.Equal(t, "chunk-b", ranked[1].chunk.ID)
}

func TestRankTieBreakByChunkPosition(t *testing.T) {
	svc, docStore, index := newRankFixture(defaultTuning())
	ctx := context.Background()

	doc := domain.Document{ID: "doc-a"}
	require.NoError(t, docStore.SaveDocument(ctx, &doc))
	chunks := []domain.Chunk{
		{ID: "chunk-2", DocumentID: "doc-a", Position: 2, Content: "sepsis screening tool"},
		{ID: "chunk-0", DocumentID: "doc-a", Position: 0, Content: "sepsis screening tool"},
	}
	require.NoError(t, docStore.SaveChunks(ctx, chunks))
	for _, c := range chunks {
		require.NoError(t, index.Add(ctx, c))
	}

	ranked, _, err := svc.rank(ctx, []string{"sepsis"}, 10)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "chunk-0", ranked[0].chunk.ID, "earlier position wins an exact tie")
}

func TestRankSkipsMissingChunks(t *testing.T) {
	svc, docStore, index := newRankFixture(defaultTuning())
	ctx := context.Background()

	seedChunk(t, docStore, index,
		domain.Document{ID: "doc-a"},
		domain.Chunk{ID: "chunk-a", DocumentID: "doc-a", Content: "sepsis bundle"})

	// Indexed but never stored: must be skipped and counted, not fatal.
	require.NoError(t, index.Add(ctx, domain.Chunk{ID: "ghost", DocumentID: "doc-a", Content: "sepsis bundle"}))

	ranked, skipped, err := svc.rank(ctx, []string{"sepsis"}, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, ranked, 1)
	assert.Equal(t, "chunk-a", ranked[0].chunk.ID)
}

func TestRankNoIndexHits(t *testing.T) {
	svc, docStore, index := newRankFixture(defaultTuning())
	ctx := context.Background()

	seedChunk(t, docStore, index,
		domain.Document{ID: "doc-a"},
		domain.Chunk{ID: "chunk-a", DocumentID: "doc-a", Content: "plain administrative text"})

	ranked, _, err := svc.rank(ctx, []string{"hyperkalaemia"}, 10)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestRankTruncatesToK(t *testing.T) {
	svc, docStore, index := newRankFixture(defaultTuning())
	ctx := context.Background()

	doc := domain.Document{ID: "doc-a"}
	require.NoError(t, docStore.SaveDocument(ctx, &doc))
	var chunks []domain.Chunk
	for i := 0; i < 5; i++ {
		chunks = append(chunks, domain.Chunk{
			ID:         "chunk-" + string(rune('a'+i)),
			DocumentID: "doc-a",
			Position:   i,
			Content:    "sepsis pathway step",
		})
	}
	require.NoError(t, docStore.SaveChunks(ctx, chunks))
	for _, c := range chunks {
		require.NoError(t, index.Add(ctx, c))
	}

	ranked, _, err := svc.rank(ctx, []string{"sepsis"}, 2)
	require.NoError(t, err)
	assert.Len(t, ranked, 2)
}

func TestRankEmptyTokens(t *testing.T) {
	svc, _, _ := newRankFixture(defaultTuning())

	ranked, skipped, err := svc.rank(context.Background(), nil, 10)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Empty(t, ranked)
}

func TestDocumentBonus(t *testing.T) {
	tuning := defaultTuning()
	tuning.Authority = map[string]float64{"Resus Council": 3}
	tuning.RecencyMaxBonus = 2
	tuning.RecencyMaxAgeDays = 1460
	svc, _, _ := newRankFixture(tuning)

	recent := time.Now().Add(-24 * time.Hour)
	stale := time.Now().AddDate(-10, 0, 0)

	t.Run("authority only", func(t *testing.T) {
		bonus := svc.documentBonus(&domain.Document{Organisation: "Resus Council"})
		assert.InDelta(t, 3.0, bonus, 0.001)
	})

	t.Run("unknown organisation contributes nothing", func(t *testing.T) {
		bonus := svc.documentBonus(&domain.Document{Organisation: "Somewhere Else"})
		assert.Zero(t, bonus)
	})

	t.Run("recent publication near max bonus", func(t *testing.T) {
		bonus := svc.documentBonus(&domain.Document{Published: &recent})
		assert.Greater(t, bonus, 1.9)
		assert.LessOrEqual(t, bonus, 2.0)
	})

	t.Run("stale publication contributes nothing", func(t *testing.T) {
		bonus := svc.documentBonus(&domain.Document{Published: &stale})
		assert.Zero(t, bonus)
	})

	t.Run("missing date contributes nothing", func(t *testing.T) {
		bonus := svc.documentBonus(&domain.Document{})
		assert.Zero(t, bonus)
	})
}
