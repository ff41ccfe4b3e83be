package candidate

import (
	"context"
	"errors"
	"testing"

	"github.com/shahtirth07/pagepal/internal/db"
	"github.com/shahtirth07/pagepal/internal/domain"
)

func TestSearch_GroupsChunksByBook(t *testing.T) {
	ms := &mockSearcher{
		searchFn: func(_ context.Context, _ *db.KNNQuery) (*db.SearchResult, error) {
			return &db.SearchResult{
				Total: 4,
				Entries: []db.SearchEntry{
					chunkEntry("pagepal:chunk:b1:0", "b1", "Dune", "spice", []float32{1, 0}),
					chunkEntry("pagepal:chunk:b2:0", "b2", "Emma", "tea", []float32{0, 1}),
					chunkEntry("pagepal:chunk:b1:3", "b1", "Dune", "sand", []float32{1, 1}),
					chunkEntry("pagepal:chunk:b2:2", "b2", "Emma", "dance", []float32{0.5, 0.5}),
				},
			}, nil
		},
	}
	repo := New(ms)

	docs, err := repo.Search(context.Background(), []float32{0.1, 0.2}, nil, 200, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(docs) != 2 {
		t.Fatalf("expected 2 books, got %d", len(docs))
	}
	if docs[0].Title != "Dune" || docs[1].Title != "Emma" {
		t.Errorf("first-seen book order not preserved: %s, %s", docs[0].Title, docs[1].Title)
	}
	if len(docs[0].Chunks) != 2 || len(docs[1].Chunks) != 2 {
		t.Fatalf("unexpected chunk counts: %d, %d", len(docs[0].Chunks), len(docs[1].Chunks))
	}
	if docs[0].Chunks[0].Text != "spice" || docs[0].Chunks[1].Text != "sand" {
		t.Errorf("chunk order not preserved: %+v", docs[0].Chunks)
	}
}

func TestSearch_BuildsOversampledQuery(t *testing.T) {
	ms := &mockSearcher{}
	repo := New(ms)

	filter := domain.Filter{"genre": "Sci-Fi"}
	if _, err := repo.Search(context.Background(), []float32{0.1}, filter, 200, 20); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q := ms.lastQ
	if q.IndexName != IndexName {
		t.Errorf("unexpected index: %s", q.IndexName)
	}
	if q.K != 20 {
		t.Errorf("expected K=20, got %d", q.K)
	}
	if q.EFRuntime != 200 {
		t.Errorf("expected EFRuntime=200, got %d", q.EFRuntime)
	}
	if q.TagFilters["genre"] != "Sci-Fi" {
		t.Errorf("filter not forwarded verbatim: %v", q.TagFilters)
	}
}

func TestSearch_EmptyResultIsNotAnError(t *testing.T) {
	ms := &mockSearcher{
		searchFn: func(_ context.Context, _ *db.KNNQuery) (*db.SearchResult, error) {
			return &db.SearchResult{}, nil
		},
	}
	repo := New(ms)

	docs, err := repo.Search(context.Background(), []float32{0.1}, nil, 200, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if docs != nil {
		t.Errorf("expected nil docs, got %+v", docs)
	}
}

func TestSearch_DimMismatchFailsFast(t *testing.T) {
	ms := &mockSearcher{
		searchFn: func(_ context.Context, _ *db.KNNQuery) (*db.SearchResult, error) {
			return &db.SearchResult{
				Total: 1,
				Entries: []db.SearchEntry{
					chunkEntry("pagepal:chunk:b1:0", "b1", "Dune", "spice", []float32{1, 0, 0}),
				},
			}, nil
		},
	}
	repo := New(ms)

	_, err := repo.Search(context.Background(), []float32{0.1, 0.2}, nil, 200, 20)
	if !errors.Is(err, domain.ErrVectorDimMismatch) {
		t.Errorf("expected ErrVectorDimMismatch, got %v", err)
	}
}

func TestSearch_SkipsUnusableChunks(t *testing.T) {
	ms := &mockSearcher{
		searchFn: func(_ context.Context, _ *db.KNNQuery) (*db.SearchResult, error) {
			return &db.SearchResult{
				Total: 3,
				Entries: []db.SearchEntry{
					{Key: "pagepal:chunk:b1:0", Fields: map[string]string{
						FieldBookID: "b1", FieldTitle: "Dune",
						FieldEmbedding: VectorToBytes([]float32{1, 0}),
						// no text
					}},
					{Key: "pagepal:chunk:b1:1", Fields: map[string]string{
						FieldBookID: "b1", FieldTitle: "Dune", FieldText: "sand",
						// no embedding
					}},
					chunkEntry("pagepal:chunk:b1:2", "b1", "Dune", "spice", []float32{1, 0}),
				},
			}, nil
		},
	}
	repo := New(ms)

	docs, err := repo.Search(context.Background(), []float32{0.1, 0.2}, nil, 200, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 || len(docs[0].Chunks) != 1 {
		t.Fatalf("expected single usable chunk, got %+v", docs)
	}
	if docs[0].Chunks[0].Text != "spice" {
		t.Errorf("unexpected chunk: %+v", docs[0].Chunks[0])
	}
}

func TestSearch_StoreError(t *testing.T) {
	ms := &mockSearcher{
		searchFn: func(_ context.Context, _ *db.KNNQuery) (*db.SearchResult, error) {
			return nil, errors.New("oracle down")
		},
	}
	repo := New(ms)

	if _, err := repo.Search(context.Background(), []float32{0.1}, nil, 200, 20); err == nil {
		t.Fatal("expected error")
	}
}

func TestVectorRoundTrip(t *testing.T) {
	vec := []float32{0.25, -1.5, 3.75}
	got := bytesToVector(VectorToBytes(vec))
	if len(got) != len(vec) {
		t.Fatalf("expected %d values, got %d", len(vec), len(got))
	}
	for i := range vec {
		if got[i] != vec[i] {
			t.Errorf("v[%d] = %f, want %f", i, got[i], vec[i])
		}
	}
}
