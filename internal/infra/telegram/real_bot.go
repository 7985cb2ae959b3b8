// File: internal/infra/telegram/real_bot.go
package telegram

import (
	"context"
	"errors"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"telegram-ai-companion/internal/application"
	"telegram-ai-companion/internal/config"
	"telegram-ai-companion/internal/infra/logging"
	"telegram-ai-companion/internal/infra/metrics"
	"telegram-ai-companion/internal/infra/worker"
)

// update kinds for classification and metrics.
const (
	kindCommand = "command"
	kindText    = "text"
	kindVoice   = "voice"
	kindPhoto   = "photo"
	kindOther   = "other"
)

// Poller is the inbound half of the transport: it long-polls Telegram and
// dispatches each update to the facade on a worker pool, so one user's slow
// model round-trip never stalls another user's message.
type Poller struct {
	api    *tgbotapi.BotAPI
	facade *application.BotFacade
	cfg    *config.BotConfig
	logger *zerolog.Logger

	cancelPolling context.CancelFunc
}

func NewPoller(api *tgbotapi.BotAPI, facade *application.BotFacade, cfg *config.BotConfig, logger *zerolog.Logger) (*Poller, error) {
	if api == nil {
		return nil, errors.New("bot api is nil")
	}
	if facade == nil {
		return nil, errors.New("bot facade is nil")
	}
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	return &Poller{api: api, facade: facade, cfg: cfg, logger: logger}, nil
}

// StartPolling polls for updates until ctx is canceled.
func (p *Poller) StartPolling(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = p.cfg.PollTimeout

	updates := p.api.GetUpdatesChan(u)

	ctx, cancel := context.WithCancel(ctx)
	p.cancelPolling = cancel

	pool := worker.NewPool(p.cfg.Workers, p.logger)
	pool.Start(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case update, ok := <-updates:
				if !ok {
					return
				}
				upd := update
				if err := pool.Submit(ctx, func(taskCtx context.Context) error {
					return p.handleUpdate(taskCtx, upd)
				}); err != nil {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	<-ctx.Done()
	p.api.StopReceivingUpdates()
	wg.Wait()
	pool.Stop()
	return nil
}

// StopPolling stops the polling loop gracefully.
func (p *Poller) StopPolling() {
	if p.cancelPolling != nil {
		p.cancelPolling()
	}
}

func (p *Poller) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return nil
	}

	chatID := msg.Chat.ID
	userID := msg.From.ID

	ctx = logging.WithTraceID(ctx, uuid.NewString())
	ctx = logging.WithTgID(ctx, userID)
	log := logging.With(ctx, p.logger)

	kind := classifyMessage(msg)
	metrics.IncTelegramUpdate(kind)
	log.Debug().Str("kind", kind).Msg("update received")

	switch kind {
	case kindCommand:
		return p.handleCommand(ctx, chatID, userID, msg.Command())
	case kindVoice:
		return p.facade.HandleVoice(ctx, chatID, userID, msg.Voice.FileID)
	case kindPhoto:
		// The last entry is the highest-resolution rendition.
		photo := msg.Photo[len(msg.Photo)-1]
		return p.facade.HandlePhoto(ctx, chatID, userID, photo.FileID)
	case kindText:
		return p.facade.HandleText(ctx, chatID, userID, msg.Text)
	default:
		return p.facade.HandleHelp(ctx, chatID)
	}
}

func (p *Poller) handleCommand(ctx context.Context, chatID, userID int64, command string) error {
	switch command {
	case "start":
		return p.facade.HandleStart(ctx, chatID, userID)
	case "clear":
		return p.facade.HandleClear(ctx, chatID, userID)
	case "help":
		return p.facade.HandleHelp(ctx, chatID)
	default:
		return p.facade.HandleHelp(ctx, chatID)
	}
}

func classifyMessage(msg *tgbotapi.Message) string {
	switch {
	case msg.IsCommand():
		return kindCommand
	case msg.Voice != nil:
		return kindVoice
	case len(msg.Photo) > 0:
		return kindPhoto
	case msg.Text != "":
		return kindText
	default:
		return kindOther
	}
}
