package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// metadataPreviewSize caps how much of the book is sent for extraction.
const metadataPreviewSize = 3000

const metadataSystemPrompt = "You are a helpful assistant that extracts book metadata."

const metadataUserPrompt = `Given the following content from a book, extract:
- Title of the book (string)
- Author name(s) (string or list of strings)
- Genre classification (string, choose the most appropriate primary genre)

Respond ONLY with a valid JSON object containing keys: "title", "author", "genre".

Book Content Snippet:
%s`

// Fallbacks when the model response is missing or unparseable.
const (
	UnknownTitle  = "Unknown Title"
	UnknownAuthor = "Unknown Author"
	UnknownGenre  = "Unknown"
)

// DefaultKnownGenres are the shelf categories the catalog recognizes.
// Anything the model invents outside this list lands in Unknown.
var DefaultKnownGenres = []string{"self-help", "devotional", "sci-fi", "biography"}

// Metadata describes a book as extracted from its opening pages.
type Metadata struct {
	Title  string
	Author string
	Genre  string
}

// Completer generates a reply from a single-turn prompt.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// MetadataExtractor derives title, author, and genre from book text via an
// LLM, then normalizes the genre against the known list.
type MetadataExtractor struct {
	completer Completer
	genres    map[string]string // lowercased genre -> display form
	logger    *zap.Logger
}

// NewMetadataExtractor creates an extractor. An empty knownGenres uses the
// default list.
func NewMetadataExtractor(completer Completer, knownGenres []string, logger *zap.Logger) *MetadataExtractor {
	if len(knownGenres) == 0 {
		knownGenres = DefaultKnownGenres
	}
	genres := make(map[string]string, len(knownGenres))
	for _, g := range knownGenres {
		genres[strings.ToLower(g)] = displayGenre(g)
	}
	return &MetadataExtractor{completer: completer, genres: genres, logger: logger}
}

// Extract asks the model for metadata from the first pages of text. A failed
// completion is an error; an unparseable reply degrades to the Unknown
// defaults so ingestion can still proceed.
func (e *MetadataExtractor) Extract(ctx context.Context, text string) (Metadata, error) {
	preview := text
	if runes := []rune(text); len(runes) > metadataPreviewSize {
		preview = string(runes[:metadataPreviewSize])
	}
	if strings.TrimSpace(preview) == "" {
		return Metadata{}, fmt.Errorf("no text available for metadata extraction")
	}

	reply, err := e.completer.Complete(ctx, metadataSystemPrompt, fmt.Sprintf(metadataUserPrompt, preview))
	if err != nil {
		return Metadata{}, fmt.Errorf("extract metadata: %w", err)
	}

	meta := e.parseReply(reply)
	meta.Genre = e.normalizeGenre(meta.Genre)
	return meta, nil
}

// parseReply decodes the model's JSON, tolerating markdown code fences and an
// author field that arrives as either a string or a list.
func (e *MetadataExtractor) parseReply(reply string) Metadata {
	cleaned := stripCodeFence(reply)

	var raw struct {
		Title  string          `json:"title"`
		Author json.RawMessage `json:"author"`
		Genre  string          `json:"genre"`
	}
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		e.logger.Warn("Unparseable metadata reply, using defaults",
			zap.String("reply", reply), zap.Error(err))
		return Metadata{Title: UnknownTitle, Author: UnknownAuthor, Genre: UnknownGenre}
	}

	meta := Metadata{
		Title:  raw.Title,
		Author: parseAuthor(raw.Author),
		Genre:  raw.Genre,
	}
	if meta.Title == "" {
		meta.Title = UnknownTitle
	}
	if meta.Author == "" {
		meta.Author = UnknownAuthor
	}
	return meta
}

func (e *MetadataExtractor) normalizeGenre(genre string) string {
	if display, ok := e.genres[strings.ToLower(strings.TrimSpace(genre))]; ok {
		return display
	}
	return UnknownGenre
}

func parseAuthor(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, ", ")
	}
	return ""
}

// stripCodeFence unwraps a ```json ... ``` block if the model added one.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// displayGenre turns a lowercase genre key into its shelf label, keeping
// hyphenated parts capitalized ("sci-fi" becomes "Sci-Fi").
func displayGenre(g string) string {
	parts := strings.Split(strings.ToLower(g), "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "-")
}
