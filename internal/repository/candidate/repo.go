package candidate

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/shahtirth07/pagepal/internal/db"
	"github.com/shahtirth07/pagepal/internal/domain"
)

// store is the consumer interface for candidate search (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Repo is the candidate-store adapter: it turns the approximate KNN oracle
// into ordered candidate documents carrying chunk text and embeddings. The
// oracle's ranking is not trusted downstream; it only bounds the candidate set.
type Repo struct {
	store store
}

// New creates a candidate repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Search returns up to limit candidate chunks grouped into their books,
// instructing the oracle to widen its internal search to numCandidates.
// The filter is forwarded uninterpreted as metadata equality constraints.
// An empty result is valid and returns a nil slice, not an error.
func (r *Repo) Search(
	ctx context.Context, vector []float32, filter domain.Filter, numCandidates, limit int,
) ([]domain.CandidateDoc, error) {
	q := &db.KNNQuery{
		IndexName:  IndexName,
		TagFilters: filter,
		Vector:     vector,
		K:          limit,
		EFRuntime:  numCandidates,
		ReturnFields: []string{
			FieldText, FieldTitle, FieldBookID, FieldEmbedding, "__embedding_score",
		},
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search knn: %w", err)
	}

	return groupByBook(sr, len(vector))
}

// groupByBook folds chunk-level hits into per-book candidate documents,
// preserving the oracle's first-seen order of both books and chunks.
func groupByBook(sr *db.SearchResult, queryDim int) ([]domain.CandidateDoc, error) {
	if sr == nil || sr.Total == 0 {
		return nil, nil
	}

	var docs []domain.CandidateDoc
	index := make(map[string]int) // book_id -> position in docs

	for _, entry := range sr.Entries {
		text := entry.Fields[FieldText]
		blob := entry.Fields[FieldEmbedding]
		if text == "" || blob == "" {
			continue
		}

		embedding := bytesToVector(blob)
		if len(embedding) != queryDim {
			return nil, fmt.Errorf("chunk %s: embedding dim %d, query dim %d: %w",
				entry.Key, len(embedding), queryDim, domain.ErrVectorDimMismatch)
		}

		bookID := entry.Fields[FieldBookID]
		pos, ok := index[bookID]
		if !ok {
			pos = len(docs)
			index[bookID] = pos
			title := entry.Fields[FieldTitle]
			if title == "" {
				title = "Unknown"
			}
			docs = append(docs, domain.CandidateDoc{Title: title})
		}

		docs[pos].Chunks = append(docs[pos].Chunks, domain.Chunk{
			Text:      text,
			Embedding: embedding,
		})
	}

	return docs, nil
}

// bytesToVector deserializes a binary FLOAT32 blob into a vector.
func bytesToVector(s string) []float32 {
	b := []byte(s)
	if len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}

// VectorToBytes serializes a vector into the binary FLOAT32 blob the index
// expects. Used by the ingestion pipeline when writing chunk hashes.
func VectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
