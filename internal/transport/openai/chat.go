package openai

import (
	"context"
	"errors"
	"fmt"
	"math"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/shahtirth07/pagepal/internal/domain"
	"github.com/shahtirth07/pagepal/internal/metrics"
)

// ChatClient is a chat-completion provider using the OpenAI-compatible API.
type ChatClient struct {
	client      *openai.Client
	model       string
	temperature float32
	logger      *zap.Logger
}

// ChatConfig holds the chat provider settings.
type ChatConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	Logger      *zap.Logger
}

// NewChatClient creates an OpenAI-compatible chat completion provider.
func NewChatClient(cfg *ChatConfig) *ChatClient {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	// The request struct marshals temperature with omitempty, so an exact 0
	// would be dropped and the provider would fall back to its default.
	// The smallest nonzero float is the conventional stand-in for 0.
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	return &ChatClient{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: temperature,
		logger:      cfg.Logger,
	}
}

// Complete sends a single-turn prompt and returns the model's reply text.
func (c *ChatClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	var messages []openai.ChatCompletionMessage
	if systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userPrompt,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages:    messages,
	})
	if err != nil {
		metrics.ChatRequestsTotal.WithLabelValues(c.model, "error").Inc()
		return "", parseChatAPIError(err)
	}

	if len(resp.Choices) == 0 {
		metrics.ChatRequestsTotal.WithLabelValues(c.model, "error").Inc()
		return "", fmt.Errorf("empty chat completion response: %w", domain.ErrChatProviderError)
	}

	metrics.ChatRequestsTotal.WithLabelValues(c.model, "success").Inc()

	return resp.Choices[0].Message.Content, nil
}

// parseChatAPIError wraps provider failures with domain.ErrChatProviderError.
func parseChatAPIError(err error) error {
	wrap := domain.ErrChatProviderError

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("chat API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("chat API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("chat request failed: %w: %w", err, wrap)
}
