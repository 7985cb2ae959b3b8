package ai

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"telegram-ai-companion/internal/domain/ports/adapter"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.AIServiceAdapter = (*AnthropicAdapter)(nil)

// AnthropicAdapter implements adapter.AIServiceAdapter using the Messages API.
type AnthropicAdapter struct {
	client    anthropic.Client
	model     string
	maxTokens int
}

func NewAnthropicAdapter(apiKey, model string, maxTokens int) (*AnthropicAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic api key empty")
	}
	if model == "" {
		model = "claude-3-7-sonnet-20250219"
	}
	if maxTokens <= 0 {
		maxTokens = 1500
	}
	return &AnthropicAdapter{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

func (a *AnthropicAdapter) Provider() string { return "anthropic" }

func (a *AnthropicAdapter) Model() string { return a.model }

func (a *AnthropicAdapter) Chat(ctx context.Context, system string, messages []adapter.Message) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: int64(a.maxTokens),
		Messages:  toAnthropicMessages(messages),
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		sb.WriteString(block.Text)
	}
	reply := sb.String()
	if reply == "" {
		return "", errors.New("anthropic: empty response content")
	}
	return reply, nil
}

func (a *AnthropicAdapter) CountTokens(ctx context.Context, system string, messages []adapter.Message) (int, error) {
	return estimateTokens(system, messages)
}

func toAnthropicMessages(messages []adapter.Message) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(messages))
	for _, m := range messages {
		block := anthropic.NewTextBlock(m.Content)
		if strings.ToLower(m.Role) == "assistant" {
			out = append(out, anthropic.NewAssistantMessage(block))
		} else {
			out = append(out, anthropic.NewUserMessage(block))
		}
	}
	return out
}
