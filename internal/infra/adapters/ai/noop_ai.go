package ai

import (
	"context"
	"log"
	"time"

	"telegram-ai-companion/internal/domain/ports/adapter"
)

var _ adapter.AIServiceAdapter = (*NoopAIAdapter)(nil)

// NoopAIAdapter implements adapter.AIServiceAdapter for local/dev testing.
// It logs messages instead of sending real AI requests.
type NoopAIAdapter struct{}

func NewNoopAIAdapter() *NoopAIAdapter {
	return &NoopAIAdapter{}
}

func (a *NoopAIAdapter) Provider() string { return "noop" }

func (a *NoopAIAdapter) Model() string { return "noop-ai-model" }

func (a *NoopAIAdapter) Chat(ctx context.Context, system string, messages []adapter.Message) (string, error) {
	// Simulate slight processing time and respect ctx
	select {
	case <-time.After(100 * time.Millisecond):
	case <-ctx.Done():
		return "", ctx.Err()
	}
	log.Printf("[noop-ai] chat with %d messages\n", len(messages))
	return "This is a noop AI response.", nil
}

func (a *NoopAIAdapter) CountTokens(ctx context.Context, system string, messages []adapter.Message) (int, error) {
	return estimateTokens(system, messages)
}
