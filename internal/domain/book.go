package domain

// KeyPrefix namespaces every key this service writes to the store.
const KeyPrefix = "pagepal:"

// Chunk is a unit of retrievable text produced once at ingestion time.
// Chunks are immutable after ingestion; the retrieval path only reads them.
type Chunk struct {
	Text      string    `json:"text"`
	Embedding []float32 `json:"embedding"`
}

// Book is a stored book record with its ordered chunks.
type Book struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	Genre    string  `json:"genre"`
	FilePath string  `json:"file_path,omitempty"`
	Chunks   []Chunk `json:"chunks,omitempty"`
}

// BookKey returns the storage key for a book record.
func BookKey(id string) string {
	return KeyPrefix + "book:" + id
}

// CandidateDoc is one document returned by the candidate oracle: the book title
// for provenance plus the chunks that survive the approximate search. The
// oracle's internal ranking is not trusted; chunks are re-scored exactly.
type CandidateDoc struct {
	Title  string
	Chunks []Chunk
}
