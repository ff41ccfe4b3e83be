package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type mockCompleter struct {
	reply      string
	err        error
	lastSystem string
	lastUser   string
}

func (m *mockCompleter) Complete(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	m.lastSystem = systemPrompt
	m.lastUser = userPrompt
	return m.reply, m.err
}

func newTestExtractor(reply string) (*MetadataExtractor, *mockCompleter) {
	mc := &mockCompleter{reply: reply}
	return NewMetadataExtractor(mc, nil, zap.NewNop()), mc
}

func TestExtract_ParsesJSON(t *testing.T) {
	e, mc := newTestExtractor(`{"title": "Dune", "author": "Frank Herbert", "genre": "sci-fi"}`)

	meta, err := e.Extract(context.Background(), "It was the year 10191...")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if meta.Title != "Dune" || meta.Author != "Frank Herbert" {
		t.Errorf("unexpected metadata: %+v", meta)
	}
	if meta.Genre != "Sci-Fi" {
		t.Errorf("genre not normalized: %q", meta.Genre)
	}

	if mc.lastSystem != metadataSystemPrompt {
		t.Errorf("unexpected system prompt: %q", mc.lastSystem)
	}
	if !strings.Contains(mc.lastUser, "It was the year 10191...") {
		t.Error("book snippet missing from prompt")
	}
}

func TestExtract_StripsMarkdownFence(t *testing.T) {
	e, _ := newTestExtractor("```json\n{\"title\": \"Dune\", \"author\": \"Frank Herbert\", \"genre\": \"sci-fi\"}\n```")

	meta, err := e.Extract(context.Background(), "text")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if meta.Title != "Dune" {
		t.Errorf("fence not stripped: %+v", meta)
	}
}

func TestExtract_AuthorList(t *testing.T) {
	e, _ := newTestExtractor(`{"title": "T", "author": ["A One", "B Two"], "genre": "biography"}`)

	meta, err := e.Extract(context.Background(), "text")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if meta.Author != "A One, B Two" {
		t.Errorf("author list not joined: %q", meta.Author)
	}
}

func TestExtract_UnknownGenre(t *testing.T) {
	e, _ := newTestExtractor(`{"title": "T", "author": "A", "genre": "space opera"}`)

	meta, err := e.Extract(context.Background(), "text")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if meta.Genre != UnknownGenre {
		t.Errorf("unrecognized genre must map to %q, got %q", UnknownGenre, meta.Genre)
	}
}

func TestExtract_GenreCaseInsensitive(t *testing.T) {
	e, _ := newTestExtractor(`{"title": "T", "author": "A", "genre": "SCI-FI"}`)

	meta, err := e.Extract(context.Background(), "text")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if meta.Genre != "Sci-Fi" {
		t.Errorf("got %q", meta.Genre)
	}
}

func TestExtract_UnparseableReplyUsesDefaults(t *testing.T) {
	e, _ := newTestExtractor("I cannot produce JSON today.")

	meta, err := e.Extract(context.Background(), "text")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if meta.Title != UnknownTitle || meta.Author != UnknownAuthor || meta.Genre != UnknownGenre {
		t.Errorf("expected defaults, got %+v", meta)
	}
}

func TestExtract_MissingFieldsGetDefaults(t *testing.T) {
	e, _ := newTestExtractor(`{"genre": "devotional"}`)

	meta, err := e.Extract(context.Background(), "text")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if meta.Title != UnknownTitle || meta.Author != UnknownAuthor {
		t.Errorf("expected defaults, got %+v", meta)
	}
	if meta.Genre != "Devotional" {
		t.Errorf("got %q", meta.Genre)
	}
}

func TestExtract_CompletionError(t *testing.T) {
	mc := &mockCompleter{err: errors.New("provider down")}
	e := NewMetadataExtractor(mc, nil, zap.NewNop())

	if _, err := e.Extract(context.Background(), "text"); err == nil {
		t.Fatal("expected error")
	}
}

func TestExtract_EmptyText(t *testing.T) {
	e, _ := newTestExtractor(`{}`)

	if _, err := e.Extract(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestExtract_TruncatesPreview(t *testing.T) {
	e, mc := newTestExtractor(`{"title": "T", "author": "A", "genre": "sci-fi"}`)

	long := strings.Repeat("q", metadataPreviewSize*2)
	if _, err := e.Extract(context.Background(), long); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if strings.Count(mc.lastUser, "q") > metadataPreviewSize {
		t.Error("preview not truncated")
	}
}

func TestDisplayGenre(t *testing.T) {
	tests := map[string]string{
		"sci-fi":     "Sci-Fi",
		"self-help":  "Self-Help",
		"devotional": "Devotional",
		"biography":  "Biography",
	}
	for in, want := range tests {
		if got := displayGenre(in); got != want {
			t.Errorf("displayGenre(%q) = %q, want %q", in, got, want)
		}
	}
}
