package retrieval

import (
	"fmt"
	"strings"

	"github.com/shahtirth07/pagepal/internal/domain"
)

const blockSeparator = "\n\n---\n\n"

// assembleContext renders reranked chunks into the prompt context block.
// Each chunk keeps its source attribution so the model can cite the book.
// An empty input yields the fixed no-context sentinel, never an empty string.
func assembleContext(chunks []domain.ScoredChunk) string {
	if len(chunks) == 0 {
		return MsgNoContext
	}
	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		parts = append(parts, fmt.Sprintf("Context from '%s':\n%s", c.Source, c.Text))
	}
	return strings.Join(parts, blockSeparator)
}
