package retrieval

import (
	"math"
	"sort"

	"github.com/shahtirth07/pagepal/internal/domain"
)

// cosineSimilarity computes the cosine of the angle between two vectors in
// float64. A zero-norm vector has no direction, so it ranks strictly below
// every real match.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return -1
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// rerank scores every chunk against the query vector and keeps the topK best.
// The sort is stable so equal scores preserve candidate order.
func rerank(queryVec []float32, docs []domain.CandidateDoc, topK int) []domain.ScoredChunk {
	var scored []domain.ScoredChunk
	for _, doc := range docs {
		for _, chunk := range doc.Chunks {
			scored = append(scored, domain.ScoredChunk{
				Score:  cosineSimilarity(queryVec, chunk.Embedding),
				Text:   chunk.Text,
				Source: doc.Title,
			})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored
}
