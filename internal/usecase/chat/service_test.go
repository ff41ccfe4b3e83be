package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/shahtirth07/pagepal/internal/domain"
)

type mockRetriever struct {
	contextText string
	lastQuery   string
	lastFilter  domain.Filter
}

func (m *mockRetriever) Retrieve(_ context.Context, query string, filter domain.Filter) string {
	m.lastQuery = query
	m.lastFilter = filter
	return m.contextText
}

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

func TestAnswer_BuildsPromptFromContext(t *testing.T) {
	retriever := &mockRetriever{contextText: "Context from 'Dune':\nthe spice must flow"}
	completer := &mockCompleter{reply: "  The spice.  "}
	svc := New(retriever, completer, zap.NewNop())

	got, err := svc.Answer(context.Background(), "what must flow?", domain.Filter{"title": "Dune"})
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if got != "The spice." {
		t.Errorf("reply not trimmed: %q", got)
	}

	if retriever.lastQuery != "what must flow?" {
		t.Errorf("query not forwarded: %q", retriever.lastQuery)
	}
	if retriever.lastFilter["title"] != "Dune" {
		t.Errorf("filter not forwarded: %v", retriever.lastFilter)
	}

	if completer.lastSystem != "" {
		t.Errorf("unexpected system prompt: %q", completer.lastSystem)
	}
	if !strings.Contains(completer.lastUser, "Answer the question based only on the following context:") {
		t.Errorf("prompt preamble missing: %q", completer.lastUser)
	}
	if !strings.Contains(completer.lastUser, "the spice must flow") {
		t.Errorf("context missing from prompt: %q", completer.lastUser)
	}
	if !strings.Contains(completer.lastUser, "Question: what must flow?\nAnswer:") {
		t.Errorf("question section malformed: %q", completer.lastUser)
	}
}

func TestAnswer_SentinelContextStillPrompts(t *testing.T) {
	retriever := &mockRetriever{
		contextText: "Could not find any potentially relevant documents in the specified book(s).",
	}
	completer := &mockCompleter{reply: "I could not find anything about that."}
	svc := New(retriever, completer, zap.NewNop())

	got, err := svc.Answer(context.Background(), "who is Paul?", nil)
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if got == "" {
		t.Error("expected a reply even with sentinel context")
	}
	if !strings.Contains(completer.lastUser, retriever.contextText) {
		t.Error("sentinel must flow into the prompt verbatim")
	}
}

func TestAnswer_CompletionError(t *testing.T) {
	retriever := &mockRetriever{contextText: "ctx"}
	completer := &mockCompleter{err: errors.New("provider down")}
	svc := New(retriever, completer, zap.NewNop())

	if _, err := svc.Answer(context.Background(), "q", nil); err == nil {
		t.Fatal("expected error")
	}
}
