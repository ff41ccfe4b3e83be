package db

// KNNQuery is the input for approximate vector similarity search.
type KNNQuery struct {
	IndexName string
	// TagFilters are metadata equality constraints applied as a pre-filter
	// (@field:{value}) before the KNN clause.
	TagFilters map[string]string
	Vector     []float32
	// K is the number of entries returned by the search.
	K int
	// EFRuntime widens the HNSW candidate pool during the query. Zero means
	// the index default.
	EFRuntime    int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
