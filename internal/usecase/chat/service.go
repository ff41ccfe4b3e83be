// Package chat answers reader questions grounded in retrieved book context.
package chat

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/shahtirth07/pagepal/internal/domain"
)

// promptTemplate constrains the model to the retrieved context. The sentinel
// messages from retrieval flow through here too, so the model explains the
// miss instead of hallucinating an answer.
const promptTemplate = `Answer the question based only on the following context:
%s

Question: %s
Answer:`

// Service wires retrieval and completion into a question-answering flow.
type Service struct {
	retriever Retriever
	completer Completer
	logger    *zap.Logger
}

func New(retriever Retriever, completer Completer, logger *zap.Logger) *Service {
	return &Service{retriever: retriever, completer: completer, logger: logger}
}

// Answer retrieves context for the question and asks the model to answer from
// it. Only the completion call can fail.
func (s *Service) Answer(ctx context.Context, query string, filter domain.Filter) (string, error) {
	contextText := s.retriever.Retrieve(ctx, query, filter)

	prompt := fmt.Sprintf(promptTemplate, contextText, query)
	reply, err := s.completer.Complete(ctx, "", prompt)
	if err != nil {
		return "", fmt.Errorf("complete answer: %w", err)
	}

	s.logger.Debug("Answered question",
		zap.Int("context_len", len(contextText)),
		zap.Int("answer_len", len(reply)),
	)
	return strings.TrimSpace(reply), nil
}
