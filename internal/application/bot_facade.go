// File: internal/application/bot_facade.go
package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"telegram-ai-companion/internal/domain"
	"telegram-ai-companion/internal/domain/ports/adapter"
	"telegram-ai-companion/internal/infra/i18n"
	"telegram-ai-companion/internal/infra/logging"
	"telegram-ai-companion/internal/usecase"
)

// BotFacade composes the conversation and recognition usecases into the
// per-message flows the transport delegates to. It owns the interim-notice
// lifecycle: every notice it sends is either deleted or replaced before the
// handler returns.
type BotFacade struct {
	bot    adapter.TelegramBotAdapter
	conv   usecase.ConversationUseCase
	recog  usecase.RecognitionUseCase
	tr     *i18n.Translator
	logger *zerolog.Logger
}

func NewBotFacade(bot adapter.TelegramBotAdapter, conv usecase.ConversationUseCase, recog usecase.RecognitionUseCase, tr *i18n.Translator, logger *zerolog.Logger) *BotFacade {
	return &BotFacade{
		bot:    bot,
		conv:   conv,
		recog:  recog,
		tr:     tr,
		logger: logger,
	}
}

// HandleStart clears the user's history and greets them.
func (b *BotFacade) HandleStart(ctx context.Context, chatID, userID int64) error {
	b.conv.Reset(ctx, userID)
	_, err := b.bot.SendMessage(ctx, chatID, b.tr.T("start_welcome"))
	return err
}

func (b *BotFacade) HandleHelp(ctx context.Context, chatID int64) error {
	_, err := b.bot.SendMessage(ctx, chatID, b.tr.T("help"))
	return err
}

// HandleClear drops the user's history and confirms.
func (b *BotFacade) HandleClear(ctx context.Context, chatID, userID int64) error {
	b.conv.Reset(ctx, userID)
	_, err := b.bot.SendMessage(ctx, chatID, b.tr.T("history_cleared"))
	return err
}

// HandleText runs the text flow: interim notice, model round-trip, reply.
func (b *BotFacade) HandleText(ctx context.Context, chatID, userID int64, text string) error {
	log := logging.With(ctx, b.logger)

	noticeID, err := b.bot.SendMessage(ctx, chatID, b.tr.T("thinking"))
	if err != nil {
		return fmt.Errorf("send notice: %w", err)
	}

	reply, err := b.conv.Respond(ctx, userID, text)
	if err != nil {
		log.Error().Err(err).Msg("text flow failed")
		b.removeNotice(ctx, chatID, noticeID)
		_, _ = b.bot.SendMessage(ctx, chatID, b.tr.T("generic_error"))
		return err
	}

	b.removeNotice(ctx, chatID, noticeID)
	_, err = b.bot.SendMessage(ctx, chatID, reply)
	return err
}

// HandleVoice runs the voice flow: notice, download/transcode/transcribe,
// status edit with the transcript, model round-trip, combined reply.
func (b *BotFacade) HandleVoice(ctx context.Context, chatID, userID int64, fileID string) error {
	log := logging.With(ctx, b.logger)

	noticeID, err := b.bot.SendMessage(ctx, chatID, b.tr.T("transcribing_voice"))
	if err != nil {
		return fmt.Errorf("send notice: %w", err)
	}

	text, err := b.recog.TranscribeVoice(ctx, fileID)
	if err != nil {
		log.Warn().Err(err).Msg("voice recognition failed")
		b.removeNotice(ctx, chatID, noticeID)
		_, _ = b.bot.SendMessage(ctx, chatID, b.recognitionErrorText(err))
		return err
	}

	if err := b.bot.EditMessage(ctx, chatID, noticeID, b.tr.T("recognized_analyzing", text)); err != nil {
		log.Warn().Err(err).Msg("notice edit failed")
	}

	reply, err := b.conv.Respond(ctx, userID, text)
	if err != nil {
		log.Error().Err(err).Msg("voice flow failed")
		b.removeNotice(ctx, chatID, noticeID)
		_, _ = b.bot.SendMessage(ctx, chatID, b.tr.T("generic_error"))
		return err
	}

	b.removeNotice(ctx, chatID, noticeID)
	_, err = b.bot.SendMessage(ctx, chatID, b.tr.T("combined_reply", text, reply))
	return err
}

// HandlePhoto mirrors HandleVoice for images: OCR instead of transcription.
func (b *BotFacade) HandlePhoto(ctx context.Context, chatID, userID int64, fileID string) error {
	log := logging.With(ctx, b.logger)

	noticeID, err := b.bot.SendMessage(ctx, chatID, b.tr.T("recognizing_image"))
	if err != nil {
		return fmt.Errorf("send notice: %w", err)
	}

	text, err := b.recog.ExtractImageText(ctx, fileID)
	if err != nil {
		log.Warn().Err(err).Msg("image recognition failed")
		b.removeNotice(ctx, chatID, noticeID)
		_, _ = b.bot.SendMessage(ctx, chatID, b.recognitionErrorText(err))
		return err
	}

	if err := b.bot.EditMessage(ctx, chatID, noticeID, b.tr.T("recognized_analyzing", text)); err != nil {
		log.Warn().Err(err).Msg("notice edit failed")
	}

	reply, err := b.conv.Respond(ctx, userID, text)
	if err != nil {
		log.Error().Err(err).Msg("photo flow failed")
		b.removeNotice(ctx, chatID, noticeID)
		_, _ = b.bot.SendMessage(ctx, chatID, b.tr.T("generic_error"))
		return err
	}

	b.removeNotice(ctx, chatID, noticeID)
	_, err = b.bot.SendMessage(ctx, chatID, b.tr.T("combined_reply", text, reply))
	return err
}

// removeNotice deletes an interim notice, tolerating delivery races: a
// notice the user already dismissed must not fail the flow.
func (b *BotFacade) removeNotice(ctx context.Context, chatID int64, messageID int) {
	if err := b.bot.DeleteMessage(ctx, chatID, messageID); err != nil {
		b.logger.Debug().Err(err).Int("message_id", messageID).Msg("notice delete failed")
	}
}

// recognitionErrorText maps recognition failures to the user-facing message.
func (b *BotFacade) recognitionErrorText(err error) string {
	switch {
	case errors.Is(err, domain.ErrSpeechNotUnderstood):
		return b.tr.T("speech_not_understood")
	case errors.Is(err, domain.ErrSpeechServiceUnavailable):
		return b.tr.T("speech_service_error", err)
	case errors.Is(err, domain.ErrNoTextRecognized):
		return b.tr.T("no_text_found")
	default:
		return b.tr.T("generic_error")
	}
}
