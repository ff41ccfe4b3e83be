package domain

import "errors"

var (
	// ErrBookNotFound signals a missing book record.
	ErrBookNotFound = errors.New("book not found")
	// ErrInvalidBookID signals a malformed book identifier.
	ErrInvalidBookID = errors.New("invalid book id")
	// ErrVectorDimMismatch signals a vector dimension mismatch between the
	// query embedding and a stored chunk embedding. This is a configuration
	// defect (embedding model changed under an existing index), not a
	// recoverable runtime condition.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrChatProviderError signals a chat completion provider failure.
	ErrChatProviderError = errors.New("chat provider error")
)
