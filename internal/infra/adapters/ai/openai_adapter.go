package ai

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"telegram-ai-companion/internal/domain/ports/adapter"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.AIServiceAdapter = (*OpenAIAdapter)(nil)

// OpenAIAdapter implements adapter.AIServiceAdapter using Chat Completions.
type OpenAIAdapter struct {
	client    openai.Client
	model     string
	maxTokens int
}

func NewOpenAIAdapter(apiKey, model string, maxTokens int) (*OpenAIAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key empty")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	if maxTokens <= 0 {
		maxTokens = 1500
	}
	return &OpenAIAdapter{
		client:    openai.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

func (o *OpenAIAdapter) Provider() string { return "openai" }

func (o *OpenAIAdapter) Model() string { return o.model }

func (o *OpenAIAdapter) Chat(ctx context.Context, system string, messages []adapter.Message) (string, error) {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)+1)
	if system != "" {
		msgs = append(msgs, openai.SystemMessage(system))
	}
	for _, m := range messages {
		if strings.ToLower(m.Role) == "assistant" {
			msgs = append(msgs, openai.AssistantMessage(m.Content))
		} else {
			msgs = append(msgs, openai.UserMessage(m.Content))
		}
	}

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:     openai.ChatModel(o.model),
		MaxTokens: openai.Int(int64(o.maxTokens)),
		Messages:  msgs,
	})
	if err != nil {
		return "", err
	}
	for _, c := range resp.Choices {
		if c.Message.Content != "" {
			return c.Message.Content, nil
		}
	}
	return "", errors.New("openai: no choice content")
}

func (o *OpenAIAdapter) CountTokens(ctx context.Context, system string, messages []adapter.Message) (int, error) {
	return estimateTokens(system, messages)
}
