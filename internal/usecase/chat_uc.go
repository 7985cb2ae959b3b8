// File: internal/usecase/chat_uc.go
package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"telegram-ai-companion/internal/domain"
	"telegram-ai-companion/internal/domain/model"
	"telegram-ai-companion/internal/domain/ports/adapter"
	"telegram-ai-companion/internal/domain/ports/repository"
	"telegram-ai-companion/internal/infra/logging"
	"telegram-ai-companion/internal/infra/metrics"
)

// Compile-time check
var _ ConversationUseCase = (*conversationUC)(nil)

// ConversationUseCase orchestrates one request/response exchange: user text
// plus rolling history in, assistant reply out.
type ConversationUseCase interface {
	// Respond appends the user's turn, calls the model with the system
	// prompt and the (truncated) history, and appends the assistant turn on
	// success. On failure the user's turn stays recorded and no assistant
	// turn is added.
	Respond(ctx context.Context, userID int64, text string) (string, error)

	// Reset clears the user's history.
	Reset(ctx context.Context, userID int64)
}

type conversationUC struct {
	history      repository.HistoryRepository
	ai           adapter.AIServiceAdapter
	systemPrompt string
	logger       *zerolog.Logger
	dev          bool

	// userLocks serializes Respond/Reset per user for the full duration of
	// the request, LLM round-trip included. Requests for different users run
	// in parallel.
	userLocks sync.Map // int64 -> *sync.Mutex
}

func NewConversationUseCase(history repository.HistoryRepository, ai adapter.AIServiceAdapter, systemPrompt string, logger *zerolog.Logger, dev bool) *conversationUC {
	return &conversationUC{
		history:      history,
		ai:           ai,
		systemPrompt: systemPrompt,
		logger:       logger,
		dev:          dev,
	}
}

func (c *conversationUC) lockFor(userID int64) *sync.Mutex {
	v, _ := c.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

func (c *conversationUC) Respond(ctx context.Context, userID int64, text string) (string, error) {
	log := logging.With(ctx, c.logger)
	defer logging.TraceDuration(log, "ConversationUC.Respond")()

	if strings.TrimSpace(text) == "" {
		return "", domain.ErrInvalidArgument
	}

	mu := c.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()

	c.history.Append(userID, model.NewTurn(model.RoleUser, text))

	turns := c.history.History(userID)
	msgs := make([]adapter.Message, 0, len(turns))
	for _, t := range turns {
		msgs = append(msgs, adapter.Message{Role: t.Role, Content: t.Content})
	}

	start := time.Now()
	reply, err := c.ai.Chat(ctx, c.systemPrompt, msgs)
	latencyMs := int(time.Since(start).Milliseconds())

	tokensIn, _ := c.ai.CountTokens(ctx, c.systemPrompt, msgs)
	tokensOut := 0
	if reply != "" {
		tokensOut, _ = c.ai.CountTokens(ctx, "", []adapter.Message{{Role: model.RoleAssistant, Content: reply}})
	}
	metrics.ObserveChatUsage(c.ai.Provider(), c.ai.Model(), tokensIn, tokensOut, latencyMs, err == nil)

	if err != nil {
		// The unanswered user turn stays in history; see DESIGN.md.
		log.Warn().Err(err).Int("turns", len(turns)).Msg("ai chat failed")
		return "", fmt.Errorf("ai chat: %w", err)
	}

	c.history.Append(userID, model.NewTurn(model.RoleAssistant, reply))
	log.Debug().
		Int("turns", len(turns)).
		Int("latency_ms", latencyMs).
		Str("text", logging.Redact(text, c.dev)).
		Msg("ai chat ok")
	return reply, nil
}

func (c *conversationUC) Reset(ctx context.Context, userID int64) {
	mu := c.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()
	c.history.Reset(userID)
}
