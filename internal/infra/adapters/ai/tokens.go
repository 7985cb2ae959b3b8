package ai

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"

	"telegram-ai-companion/internal/domain/ports/adapter"
)

var (
	encOnce sync.Once
	enc     *tiktoken.Tiktoken
	encErr  error
)

// estimateTokens gives a best-effort prompt token count using the cl100k_base
// BPE. It is an estimate for non-OpenAI providers but close enough for
// metrics and logs.
func estimateTokens(system string, messages []adapter.Message) (int, error) {
	encOnce.Do(func() {
		enc, encErr = tiktoken.GetEncoding("cl100k_base")
	})
	if encErr != nil {
		return 0, encErr
	}
	total := len(enc.Encode(system, nil, nil))
	for _, m := range messages {
		// 4 tokens of per-message framing, following the chat format rule of thumb
		total += len(enc.Encode(m.Content, nil, nil)) + 4
	}
	return total, nil
}
