package chat

import (
	"context"

	"github.com/shahtirth07/pagepal/internal/domain"
)

// Retriever produces the context block for a question. It is total and never
// fails; empty and error outcomes arrive as explanatory sentinel text.
type Retriever interface {
	Retrieve(ctx context.Context, query string, filter domain.Filter) string
}

// Completer generates a reply from a single-turn prompt.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
