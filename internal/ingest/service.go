// Package ingest loads book files into the catalog and the vector index.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shahtirth07/pagepal/internal/db"
	"github.com/shahtirth07/pagepal/internal/domain"
	"github.com/shahtirth07/pagepal/internal/repository/candidate"
)

// catalog persists book records.
type catalog interface {
	Save(ctx context.Context, book *domain.Book) error
}

// indexStore writes chunk hashes and manages the FT index.
type indexStore interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
}

// Service runs the ingestion pipeline: load, chunk, extract metadata, embed,
// and store. One call ingests one book.
type Service struct {
	chunker   *Chunker
	extractor *MetadataExtractor
	embedder  domain.Embedder
	catalog   catalog
	store     indexStore
	hnsw      candidate.HNSWConfig
	logger    *zap.Logger
}

func New(
	chunker *Chunker,
	extractor *MetadataExtractor,
	embedder domain.Embedder,
	cat catalog,
	store indexStore,
	hnsw candidate.HNSWConfig,
	logger *zap.Logger,
) *Service {
	return &Service{
		chunker:   chunker,
		extractor: extractor,
		embedder:  embedder,
		catalog:   cat,
		store:     store,
		hnsw:      hnsw,
		logger:    logger,
	}
}

// IngestFile loads a plain-text book from disk and ingests it.
func (s *Service) IngestFile(ctx context.Context, filePath string) (*domain.Book, error) {
	if ext := strings.ToLower(filepath.Ext(filePath)); ext != ".txt" {
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read book file: %w", err)
	}

	book, err := s.Ingest(ctx, string(data), filePath)
	if err != nil {
		return nil, err
	}
	return book, nil
}

// Ingest chunks text, extracts metadata, embeds every chunk, and stores the
// book record plus one indexed hash per chunk.
func (s *Service) Ingest(ctx context.Context, text, filePath string) (*domain.Book, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("book text is empty")
	}

	parts := s.chunker.Split(text)
	if len(parts) == 0 {
		return nil, fmt.Errorf("no chunks generated")
	}
	s.logger.Info("Chunked book", zap.String("file", filePath), zap.Int("chunks", len(parts)))

	meta, err := s.extractor.Extract(ctx, text)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Extracted metadata",
		zap.String("title", meta.Title),
		zap.String("author", meta.Author),
		zap.String("genre", meta.Genre),
	)

	chunks := make([]domain.Chunk, 0, len(parts))
	for i, part := range parts {
		result, err := s.embedder.Embed(ctx, part)
		if err != nil {
			return nil, fmt.Errorf("embed chunk %d: %w", i, err)
		}
		chunks = append(chunks, domain.Chunk{Text: part, Embedding: result.Embedding})
	}

	book := &domain.Book{
		ID:       uuid.NewString(),
		Title:    meta.Title,
		Author:   meta.Author,
		Genre:    meta.Genre,
		FilePath: filePath,
		Chunks:   chunks,
	}

	if err := s.catalog.Save(ctx, book); err != nil {
		return nil, fmt.Errorf("save book: %w", err)
	}

	if err := s.ensureIndex(ctx, len(chunks[0].Embedding)); err != nil {
		return nil, err
	}
	if err := s.indexChunks(ctx, book); err != nil {
		return nil, err
	}

	s.logger.Info("Ingested book",
		zap.String("book_id", book.ID),
		zap.String("title", book.Title),
		zap.Int("chunks", len(book.Chunks)),
	)
	return book, nil
}

// ensureIndex creates the chunk index if this is the first ingested book.
func (s *Service) ensureIndex(ctx context.Context, dim int) error {
	def := candidate.NewIndexDefinition(dim, s.hnsw)
	if err := s.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create chunk index: %w", err)
	}
	return nil
}

// indexChunks writes one hash per chunk so the FT index picks them up.
func (s *Service) indexChunks(ctx context.Context, book *domain.Book) error {
	items := make([]db.HashSetItem, 0, len(book.Chunks))
	for i, chunk := range book.Chunks {
		items = append(items, db.HashSetItem{
			Key: candidate.ChunkKey(book.ID, i),
			Fields: map[string]string{
				candidate.FieldText:      chunk.Text,
				candidate.FieldTitle:     book.Title,
				candidate.FieldBookID:    book.ID,
				candidate.FieldGenre:     book.Genre,
				candidate.FieldAuthor:    book.Author,
				candidate.FieldEmbedding: candidate.VectorToBytes(chunk.Embedding),
			},
		})
	}
	if err := s.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("index chunks: %w", err)
	}
	return nil
}
