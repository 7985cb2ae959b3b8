package adapter

import "context"

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// AIServiceAdapter is the port for LLM chat. The system prompt travels
// separately from the turn list because some providers (Anthropic, Gemini)
// do not accept a "system" role inside the history.
type AIServiceAdapter interface {
	// Chat returns the assistant text for the given system prompt and
	// ordered turns. The model identifier and output-token budget are fixed
	// at adapter construction time.
	Chat(ctx context.Context, system string, messages []Message) (string, error)

	// CountTokens returns a best-effort prompt token estimate for the
	// provided messages (provider-specific counting when available).
	CountTokens(ctx context.Context, system string, messages []Message) (int, error)

	// Provider names the backing service for logs and metrics.
	Provider() string

	// Model reports the fixed model identifier used by Chat.
	Model() string
}
