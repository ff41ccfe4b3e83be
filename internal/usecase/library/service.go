// Package library serves the book catalog for browsing.
package library

import (
	"context"
	"fmt"

	"github.com/shahtirth07/pagepal/internal/domain"
)

// Service exposes catalog reads to the transport layer.
type Service struct {
	catalog Catalog
}

func New(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

// ListBooks returns catalog entries, optionally narrowed to a genre. The
// result is never nil so handlers serialize an empty array, not null.
func (s *Service) ListBooks(ctx context.Context, genre string) ([]domain.Book, error) {
	books, err := s.catalog.List(ctx, genre)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	if books == nil {
		books = []domain.Book{}
	}
	return books, nil
}

// ListGenres returns the distinct genres in the catalog.
func (s *Service) ListGenres(ctx context.Context) ([]string, error) {
	genres, err := s.catalog.Genres(ctx)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	if genres == nil {
		genres = []string{}
	}
	return genres, nil
}

// GetBook returns a single book without its chunks. Chunks are an indexing
// detail and would bloat detail payloads by megabytes.
func (s *Service) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	book, err := s.catalog.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	book.Chunks = nil
	return book, nil
}
