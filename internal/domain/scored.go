package domain

// ScoredChunk is the output of exact re-ranking: a chunk's text, the title of
// the book it came from, and its cosine similarity to the query vector.
// Transient — produced by the reranker, consumed by the context assembler.
type ScoredChunk struct {
	Score  float64
	Text   string
	Source string
}
