package retrieval

import (
	"context"

	"github.com/shahtirth07/pagepal/internal/domain"
)

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// CandidateStore fetches approximate nearest-neighbor candidates from the
// vector index. numCandidates tunes the graph traversal breadth, limit caps
// how many chunks come back.
type CandidateStore interface {
	Search(
		ctx context.Context, vector []float32, filter domain.Filter,
		numCandidates, limit int,
	) ([]domain.CandidateDoc, error)
}

// Cache memoizes assembled context by fingerprint. Implementations must never
// fail the caller: a broken backend reads as a permanent miss.
type Cache interface {
	Get(ctx context.Context, fingerprint string) (string, bool)
	Put(ctx context.Context, fingerprint, contextText string)
}
