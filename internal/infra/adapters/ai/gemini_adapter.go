package ai

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"

	"telegram-ai-companion/internal/domain/ports/adapter"
)

var _ adapter.AIServiceAdapter = (*GeminiAdapter)(nil)

// GeminiAdapter implements adapter.AIServiceAdapter using the official SDK.
type GeminiAdapter struct {
	client    *genai.Client
	model     string
	maxTokens int
}

func NewGeminiAdapter(ctx context.Context, apiKey, baseURL, model string, maxTokens int) (*GeminiAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: empty api key")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	if maxTokens <= 0 {
		maxTokens = 1500
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: baseURL,
		},
	})
	if err != nil {
		return nil, err
	}
	return &GeminiAdapter{client: c, model: model, maxTokens: maxTokens}, nil
}

func (g *GeminiAdapter) Provider() string { return "gemini" }

func (g *GeminiAdapter) Model() string { return g.model }

func (g *GeminiAdapter) Chat(ctx context.Context, system string, messages []adapter.Message) (string, error) {
	if len(messages) == 0 {
		return "", errors.New("gemini: no messages")
	}
	last := messages[len(messages)-1]
	if strings.ToLower(last.Role) != "user" {
		return "", errors.New("gemini: last message must be from user")
	}
	history := toGenAIHistory(messages[:len(messages)-1])

	cfg := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(g.maxTokens),
	}
	if system != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}

	chat, err := g.client.Chats.Create(ctx, g.model, cfg, history)
	if err != nil {
		return "", err
	}

	resp, err := chat.SendMessage(ctx, genai.Part{Text: last.Content})
	if err != nil {
		return "", err
	}

	text := ""
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil && len(resp.Candidates[0].Content.Parts) > 0 {
		if t := resp.Candidates[0].Content.Parts[0].Text; t != "" {
			text = t
		}
	}
	if text == "" {
		return "", errors.New("gemini: empty response content")
	}
	return text, nil
}

func (g *GeminiAdapter) CountTokens(ctx context.Context, system string, messages []adapter.Message) (int, error) {
	// CountTokens takes []*genai.Content; the system instruction is not part
	// of the history, so fold it in via the local estimator instead.
	resp, err := g.client.Models.CountTokens(ctx, g.model, toGenAIHistory(messages), nil)
	if err != nil {
		return estimateTokens(system, messages)
	}
	sysTokens := 0
	if system != "" {
		if n, err := estimateTokens(system, nil); err == nil {
			sysTokens = n
		}
	}
	return int(resp.TotalTokens) + sysTokens, nil
}

func toGenAIHistory(msgs []adapter.Message) []*genai.Content {
	out := make([]*genai.Content, 0, len(msgs))
	for _, m := range msgs {
		role := genai.RoleUser
		if strings.ToLower(m.Role) == "assistant" {
			role = genai.RoleModel
		}
		out = append(out, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}
	return out
}
