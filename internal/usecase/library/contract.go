package library

import (
	"context"

	"github.com/shahtirth07/pagepal/internal/domain"
)

// Catalog reads book records.
type Catalog interface {
	Get(ctx context.Context, id string) (*domain.Book, error)
	List(ctx context.Context, genre string) ([]domain.Book, error)
	Genres(ctx context.Context) ([]string, error)
}
