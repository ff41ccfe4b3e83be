package candidate

import (
	"strconv"

	"github.com/shahtirth07/pagepal/internal/db"
	"github.com/shahtirth07/pagepal/internal/domain"
)

// Chunk hash schema shared by the ingestion pipeline (writer) and this
// adapter (reader). One hash per chunk, keyed by book id and chunk sequence.
const (
	// IndexName is the FT index over chunk hashes.
	IndexName = domain.KeyPrefix + "chunks:idx"
	// ChunkKeyPrefix prefixes every chunk hash key.
	ChunkKeyPrefix = domain.KeyPrefix + "chunk:"

	FieldText      = "text"
	FieldTitle     = "title"
	FieldBookID    = "book_id"
	FieldGenre     = "genre"
	FieldAuthor    = "author"
	FieldEmbedding = "embedding"
)

// ChunkKey returns the hash key for one chunk of a book.
func ChunkKey(bookID string, seq int) string {
	return ChunkKeyPrefix + bookID + ":" + strconv.Itoa(seq)
}

// HNSWConfig holds index build parameters.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// NewIndexDefinition builds the FT index definition for chunk hashes with the
// given embedding dimension.
func NewIndexDefinition(dim int, hnsw HNSWConfig) *db.IndexDefinition {
	return &db.IndexDefinition{
		Name:     IndexName,
		Prefixes: []string{ChunkKeyPrefix},
		Fields: []db.IndexField{
			{Name: FieldTitle, Type: db.IndexFieldTag},
			{Name: FieldBookID, Type: db.IndexFieldTag},
			{Name: FieldGenre, Type: db.IndexFieldTag},
			{Name: FieldAuthor, Type: db.IndexFieldTag},
			{
				Name:              FieldEmbedding,
				Type:              db.IndexFieldVector,
				VectorAlgo:        db.VectorHNSW,
				VectorDim:         dim,
				VectorDistance:    db.DistanceCosine,
				VectorM:           hnsw.M,
				VectorEFConstruct: hnsw.EFConstruct,
			},
		},
	}
}
