package ingest

import "strings"

// Chunking defaults, in runes.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// Chunker splits book text into overlapping windows for embedding.
// Overlap keeps sentences that straddle a boundary retrievable from both
// sides of the cut.
type Chunker struct {
	size    int
	overlap int
}

// NewChunker creates a chunker. Non-positive or inconsistent values fall back
// to the defaults.
func NewChunker(size, overlap int) *Chunker {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size/2 {
		overlap = DefaultChunkOverlap
		if overlap >= size/2 {
			overlap = size / 5
		}
	}
	return &Chunker{size: size, overlap: overlap}
}

// Split cuts text into chunks of at most size runes. Each cut prefers the
// last paragraph break in the window, then the last line break, then the
// last space, and falls back to a hard cut for unbroken text.
func (c *Chunker) Split(text string) []string {
	runes := []rune(text)
	var chunks []string

	start := 0
	for start < len(runes) {
		end := start + c.size
		if end >= len(runes) {
			if chunk := strings.TrimSpace(string(runes[start:])); chunk != "" {
				chunks = append(chunks, chunk)
			}
			break
		}

		cut := end
		// only honor a boundary in the back half so chunks stay close to
		// the target size
		if idx := lastBoundary(runes[start:end]); idx > c.size/2 {
			cut = start + idx
		}

		if chunk := strings.TrimSpace(string(runes[start:cut])); chunk != "" {
			chunks = append(chunks, chunk)
		}
		start = cut - c.overlap
	}
	return chunks
}

// lastBoundary returns the index just past the best split point in window,
// or -1 when the window has no break at all.
func lastBoundary(window []rune) int {
	s := string(window)
	if idx := strings.LastIndex(s, "\n\n"); idx >= 0 {
		return len([]rune(s[:idx+2]))
	}
	if idx := strings.LastIndex(s, "\n"); idx >= 0 {
		return len([]rune(s[:idx+1]))
	}
	if idx := strings.LastIndex(s, " "); idx >= 0 {
		return len([]rune(s[:idx+1]))
	}
	return -1
}
