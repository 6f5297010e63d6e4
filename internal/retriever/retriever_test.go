package retriever

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tantasui/decentradocs/internal/model"
	appErr "github.com/tantasui/decentradocs/internal/pkg/errors"
	"github.com/tantasui/decentradocs/internal/vectorstore"
)

func storeWith(t *testing.T, docs map[string][][]float32) *vectorstore.Store {
	t.Helper()
	store := vectorstore.New()
	for docID, vectors := range docs {
		chunks := make([]model.Chunk, len(vectors))
		for i, v := range vectors {
			chunks[i] = model.Chunk{DocumentID: docID, Index: i, Text: docID, Embedding: v}
		}
		store.Put(docID, chunks)
	}
	return store
}

func TestCosineSimilarityProperties(t *testing.T) {
	v := []float32{0.3, -1.2, 4.5}
	neg := []float32{-0.3, 1.2, -4.5}
	w := []float32{1, 0, 2}

	require.InDelta(t, 1.0, cosineSimilarity(v, v), 1e-9)
	require.InDelta(t, -1.0, cosineSimilarity(v, neg), 1e-9)
	require.InDelta(t, cosineSimilarity(v, w), cosineSimilarity(w, v), 1e-12)
	require.Equal(t, 0.0, cosineSimilarity([]float32{0, 0, 0}, v))
}

func TestSearchRanksDescending(t *testing.T) {
	store := vectorstore.New()
	// Scores against query (1,0): 0.9ish, 0.5ish, 0.8ish by angle.
	store.Put("doc", []model.Chunk{
		{DocumentID: "doc", Index: 0, Text: "high", Embedding: []float32{0.9, 0.4359}},
		{DocumentID: "doc", Index: 1, Text: "low", Embedding: []float32{0.5, 0.8660}},
		{DocumentID: "doc", Index: 2, Text: "mid", Embedding: []float32{0.8, 0.6}},
	})

	results, err := New(store).Search([]float32{1, 0}, nil, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "high", results[0].Chunk.Text)
	require.Equal(t, "mid", results[1].Chunk.Text)
	require.Greater(t, results[0].Score, results[1].Score)
}

func TestSearchKLargerThanCandidates(t *testing.T) {
	store := storeWith(t, map[string][][]float32{
		"doc": {{1, 0}, {0, 1}},
	})
	results, err := New(store).Search([]float32{1, 0}, nil, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.GreaterOrEqual(t, results[0].Score, results[1].Score)
}

func TestSearchEmptyStore(t *testing.T) {
	results, err := New(vectorstore.New()).Search([]float32{1, 0}, nil, 3)
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestSearchInvalidK(t *testing.T) {
	_, err := New(vectorstore.New()).Search([]float32{1, 0}, nil, 0)
	require.ErrorIs(t, err, appErr.ErrInvalid)
}

func TestSearchDocumentFilter(t *testing.T) {
	store := storeWith(t, map[string][][]float32{
		"doc-a": {{1, 0}, {0.9, 0.1}},
		"doc-b": {{0.99, 0.01}},
	})
	r := New(store)

	all, err := r.Search([]float32{1, 0}, nil, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	seen := map[string]bool{}
	for _, res := range all {
		seen[res.Chunk.DocumentID] = true
	}
	require.True(t, seen["doc-a"])
	require.True(t, seen["doc-b"])

	filtered, err := r.Search([]float32{1, 0}, []string{"doc-b"}, 10)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, "doc-b", filtered[0].Chunk.DocumentID)

	unknown, err := r.Search([]float32{1, 0}, []string{"doc-missing"}, 10)
	require.NoError(t, err)
	require.Empty(t, unknown)
}

func TestSearchStableTieOrder(t *testing.T) {
	store := vectorstore.New()
	store.Put("doc", []model.Chunk{
		{DocumentID: "doc", Index: 0, Text: "first", Embedding: []float32{2, 0}},
		{DocumentID: "doc", Index: 1, Text: "second", Embedding: []float32{4, 0}},
	})
	// Both score exactly 1.0; first-seen order wins.
	results, err := New(store).Search([]float32{1, 0}, nil, 2)
	require.NoError(t, err)
	require.Equal(t, "first", results[0].Chunk.Text)
	require.Equal(t, "second", results[1].Chunk.Text)
}

func TestSearchDimensionMismatch(t *testing.T) {
	store := storeWith(t, map[string][][]float32{
		"doc": {{1, 0, 0}},
	})
	_, err := New(store).Search([]float32{1, 0}, nil, 1)
	require.ErrorIs(t, err, appErr.ErrDimensionMismatch)
}
