// Package retriever ranks stored chunks against a query embedding.
package retriever

import (
	"math"
	"sort"

	"github.com/tantasui/decentradocs/internal/model"
	appErr "github.com/tantasui/decentradocs/internal/pkg/errors"
	"github.com/tantasui/decentradocs/internal/vectorstore"
)

type Retriever struct {
	store *vectorstore.Store
}

func New(store *vectorstore.Store) *Retriever {
	return &Retriever{store: store}
}

// Search scores every eligible chunk by cosine similarity and returns
// the top k. When docIDs is non-empty only those documents are
// considered, concatenated in the order the ids were given. Ties keep
// first-seen order. An empty candidate set yields an empty result, not
// an error.
func (r *Retriever) Search(query []float32, docIDs []string, k int) ([]model.ScoredChunk, error) {
	if k <= 0 {
		return nil, appErr.ErrInvalid
	}

	var candidates []model.Chunk
	if len(docIDs) > 0 {
		for _, id := range docIDs {
			if chunks, ok := r.store.Get(id); ok {
				candidates = append(candidates, chunks...)
			}
		}
	} else {
		candidates = r.store.AllChunks()
	}
	if len(candidates) == 0 {
		return []model.ScoredChunk{}, nil
	}

	scored := make([]model.ScoredChunk, 0, len(candidates))
	for _, c := range candidates {
		if len(c.Embedding) != len(query) {
			return nil, appErr.ErrDimensionMismatch
		}
		scored = append(scored, model.ScoredChunk{
			Chunk: c,
			Score: cosineSimilarity(query, c.Embedding),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k], nil
}

func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
