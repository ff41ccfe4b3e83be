package retrieval

import (
	"context"

	"github.com/shahtirth07/pagepal/internal/domain"
)

type mockEmbedder struct {
	embedFn func(ctx context.Context, text string) (domain.EmbeddingResult, error)
	calls   int
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	m.calls++
	if m.embedFn != nil {
		return m.embedFn(ctx, text)
	}
	return domain.EmbeddingResult{Embedding: []float32{1, 0}}, nil
}

type mockCandidateStore struct {
	searchFn func(ctx context.Context, vector []float32, filter domain.Filter, numCandidates, limit int) ([]domain.CandidateDoc, error)

	lastNumCandidates int
	lastLimit         int
	lastFilter        domain.Filter
}

func (m *mockCandidateStore) Search(
	ctx context.Context, vector []float32, filter domain.Filter,
	numCandidates, limit int,
) ([]domain.CandidateDoc, error) {
	m.lastNumCandidates = numCandidates
	m.lastLimit = limit
	m.lastFilter = filter
	if m.searchFn != nil {
		return m.searchFn(ctx, vector, filter, numCandidates, limit)
	}
	return nil, nil
}

type mockCache struct {
	entries map[string]string
	gets    int
	puts    int
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string]string)}
}

func (m *mockCache) Get(_ context.Context, fingerprint string) (string, bool) {
	m.gets++
	v, ok := m.entries[fingerprint]
	return v, ok
}

func (m *mockCache) Put(_ context.Context, fingerprint, contextText string) {
	m.puts++
	m.entries[fingerprint] = contextText
}
