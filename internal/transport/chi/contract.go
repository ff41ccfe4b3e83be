package chi

import (
	"context"

	"github.com/shahtirth07/pagepal/internal/domain"
)

// ChatService answers reader questions against the book corpus.
type ChatService interface {
	Answer(ctx context.Context, query string, filter domain.Filter) (string, error)
}

// LibraryService serves the book catalog.
type LibraryService interface {
	ListBooks(ctx context.Context, genre string) ([]domain.Book, error)
	ListGenres(ctx context.Context) ([]string, error)
	GetBook(ctx context.Context, id string) (*domain.Book, error)
}
