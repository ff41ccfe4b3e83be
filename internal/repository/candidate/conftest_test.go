package candidate

import (
	"context"

	"github.com/shahtirth07/pagepal/internal/db"
)

// mockSearcher implements the consumer interface for tests.
type mockSearcher struct {
	searchFn func(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	lastQ    *db.KNNQuery
}

func (m *mockSearcher) SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	m.lastQ = q
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func chunkEntry(key, bookID, title, text string, embedding []float32) db.SearchEntry {
	return db.SearchEntry{
		Key: key,
		Fields: map[string]string{
			FieldText:      text,
			FieldTitle:     title,
			FieldBookID:    bookID,
			FieldEmbedding: VectorToBytes(embedding),
		},
	}
}
