package books

import (
	"context"
	"encoding/json"
	"sort"
	"testing"

	"github.com/shahtirth07/pagepal/internal/db"
	"github.com/shahtirth07/pagepal/internal/domain"
)

// mockJSONStore implements the consumer interface with an in-memory map.
type mockJSONStore struct {
	docs    map[string][]byte
	scanErr error
	getErr  error
	setErr  error
}

func newMockJSONStore() *mockJSONStore {
	return &mockJSONStore{docs: make(map[string][]byte)}
}

func (m *mockJSONStore) JSONSet(_ context.Context, key, _ string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.docs[key] = value
	return nil
}

func (m *mockJSONStore) JSONGet(_ context.Context, key string, _ ...string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	data, ok := m.docs[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return data, nil
}

func (m *mockJSONStore) Scan(_ context.Context, _ string) ([]string, error) {
	if m.scanErr != nil {
		return nil, m.scanErr
	}
	keys := make([]string, 0, len(m.docs))
	for k := range m.docs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func seedBook(t *testing.T, ms *mockJSONStore, book domain.Book) {
	t.Helper()
	data, err := json.Marshal(book)
	if err != nil {
		t.Fatalf("marshal seed book: %v", err)
	}
	ms.docs[domain.BookKey(book.ID)] = data
}
