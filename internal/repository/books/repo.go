// Package books persists the book catalog as JSON documents.
package books

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/shahtirth07/pagepal/internal/db"
	"github.com/shahtirth07/pagepal/internal/domain"
)

// store is the consumer interface for the book catalog (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo reads and writes book records keyed by UUID.
type Repo struct {
	store store
}

func New(s store) *Repo {
	return &Repo{store: s}
}

// Save writes the full book record, chunks included.
func (r *Repo) Save(ctx context.Context, book *domain.Book) error {
	if book.ID == "" {
		return fmt.Errorf("book has no id")
	}
	data, err := json.Marshal(book)
	if err != nil {
		return fmt.Errorf("marshal book %s: %w", book.ID, err)
	}
	return r.store.JSONSet(ctx, domain.BookKey(book.ID), "$", data)
}

// Get returns a single book by id. A malformed id is rejected before the
// store is touched.
func (r *Repo) Get(ctx context.Context, id string) (*domain.Book, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidBookID
	}

	data, err := r.store.JSONGet(ctx, domain.BookKey(id), "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, domain.ErrBookNotFound
		}
		return nil, err
	}

	book, err := unmarshalBook(data)
	if err != nil {
		return nil, fmt.Errorf("decode book %s: %w", id, err)
	}
	return book, nil
}

// List returns catalog entries without their chunks, sorted by title.
// A non-empty genre narrows the listing with a case-insensitive match.
func (r *Repo) List(ctx context.Context, genre string) ([]domain.Book, error) {
	all, err := r.scanAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Book, 0, len(all))
	for _, b := range all {
		if genre != "" && !strings.EqualFold(b.Genre, genre) {
			continue
		}
		b.Chunks = nil
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

// Genres returns the distinct genres present in the catalog, sorted.
func (r *Repo) Genres(ctx context.Context) ([]string, error) {
	all, err := r.scanAll(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var out []string
	for _, b := range all {
		if b.Genre == "" {
			continue
		}
		if _, ok := seen[b.Genre]; ok {
			continue
		}
		seen[b.Genre] = struct{}{}
		out = append(out, b.Genre)
	}
	sort.Strings(out)
	return out, nil
}

func (r *Repo) scanAll(ctx context.Context) ([]domain.Book, error) {
	keys, err := r.store.Scan(ctx, domain.KeyPrefix+"book:*")
	if err != nil {
		return nil, err
	}

	out := make([]domain.Book, 0, len(keys))
	for _, key := range keys {
		data, err := r.store.JSONGet(ctx, key, "$")
		if err != nil {
			// a key can expire or be deleted between SCAN and GET
			if errors.Is(err, db.ErrKeyNotFound) {
				continue
			}
			return nil, err
		}
		book, err := unmarshalBook(data)
		if err != nil {
			return nil, fmt.Errorf("decode book at %s: %w", key, err)
		}
		out = append(out, *book)
	}
	return out, nil
}

// unmarshalBook accepts both a bare object and the single-element array that
// JSONPath root queries return.
func unmarshalBook(data []byte) (*domain.Book, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var arr []domain.Book
		if err := json.Unmarshal(data, &arr); err != nil {
			return nil, err
		}
		if len(arr) == 0 {
			return nil, fmt.Errorf("empty document")
		}
		return &arr[0], nil
	}
	var book domain.Book
	if err := json.Unmarshal(data, &book); err != nil {
		return nil, err
	}
	return &book, nil
}
