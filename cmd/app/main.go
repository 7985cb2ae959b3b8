// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"telegram-ai-companion/internal/application"
	"telegram-ai-companion/internal/config"
	"telegram-ai-companion/internal/domain/ports/adapter"
	aiAdapters "telegram-ai-companion/internal/infra/adapters/ai"
	"telegram-ai-companion/internal/infra/adapters/ocr"
	"telegram-ai-companion/internal/infra/adapters/speech"
	httpapi "telegram-ai-companion/internal/infra/http"
	"telegram-ai-companion/internal/infra/i18n"
	"telegram-ai-companion/internal/infra/logging"
	"telegram-ai-companion/internal/infra/media"
	"telegram-ai-companion/internal/infra/memory"
	"telegram-ai-companion/internal/infra/metrics"
	"telegram-ai-companion/internal/infra/sched"
	tele "telegram-ai-companion/internal/infra/telegram"
	"telegram-ai-companion/internal/usecase"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (noop transport, verbose logs)")
	flag.Parse()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("dev mode enabled")
	}

	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)

	// ---- Locale and persona ----
	tr, err := i18n.NewTranslator(i18n.LocalesFS, cfg.Bot.Locale)
	if err != nil {
		log.Fatalf("i18n: %v", err)
	}

	// ---- AI adapter (Anthropic -> OpenAI -> Gemini) ----
	var ai adapter.AIServiceAdapter
	switch {
	case cfg.AI.AnthropicKey != "":
		ai, err = aiAdapters.NewAnthropicAdapter(cfg.AI.AnthropicKey, cfg.AI.Model, cfg.AI.MaxOutputTokens)
		if err != nil {
			log.Fatalf("anthropic adapter: %v", err)
		}
	case cfg.AI.OpenAIKey != "":
		ai, err = aiAdapters.NewOpenAIAdapter(cfg.AI.OpenAIKey, cfg.AI.Model, cfg.AI.MaxOutputTokens)
		if err != nil {
			log.Fatalf("openai adapter: %v", err)
		}
	case cfg.AI.GeminiKey != "":
		ai, err = aiAdapters.NewGeminiAdapter(ctx, cfg.AI.GeminiKey, cfg.AI.GeminiURL, cfg.AI.Model, cfg.AI.MaxOutputTokens)
		if err != nil {
			log.Fatalf("gemini adapter: %v", err)
		}
	case cfg.Runtime.Dev:
		ai = aiAdapters.NewNoopAIAdapter()
	default:
		log.Fatalf("no AI provider configured: set ANTHROPIC_API_KEY, OPENAI_API_KEY or GEMINI_API_KEY")
	}
	logger.Info().Str("provider", ai.Provider()).Str("model", ai.Model()).Msg("ai adapter ready")

	// ---- Recognition toolchain: fail fast when binaries are missing ----
	transcoder, err := media.NewFFmpegTranscoder(cfg.Media.FFmpegPath)
	if err != nil {
		log.Fatalf("ffmpeg: %v", err)
	}
	textExtractor, err := ocr.NewTesseract(cfg.OCR.TesseractPath, cfg.OCR.Languages)
	if err != nil {
		log.Fatalf("tesseract: %v", err)
	}
	recognizer := speech.NewGoogleRecognizer(cfg.Speech.Endpoint, cfg.Speech.APIKey, cfg.Speech.Language)

	// ---- History and use cases ----
	historyRepo := memory.NewHistoryRepo(cfg.Chat.MaxContextTurns)
	convUC := usecase.NewConversationUseCase(historyRepo, ai, tr.Persona(), logger, cfg.Runtime.Dev)

	// ---- Telegram ----
	api, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		log.Fatalf("telegram: %v", err)
	}
	client := tele.NewClient(api, logger)
	files := tele.NewFileClient(api)

	recogUC := usecase.NewRecognitionUseCase(files, transcoder, recognizer, textExtractor, logger)
	facade := application.NewBotFacade(client, convUC, recogUC, tr, logger)

	poller, err := tele.NewPoller(api, facade, &cfg.Bot, logger)
	if err != nil {
		log.Fatalf("telegram poller: %v", err)
	}
	go func() {
		if err := poller.StartPolling(ctx); err != nil {
			logger.Error().Err(err).Msg("telegram polling stopped")
		}
	}()

	// ---- Idle history reaper (optional) ----
	if cfg.Chat.HistoryTTLHours > 0 {
		reaper := sched.NewIdleReaper(time.Hour, time.Duration(cfg.Chat.HistoryTTLHours)*time.Hour, historyRepo, logger)
		go func() { _ = reaper.Run(ctx) }()
	}

	// ---- Ops server: /health, /metrics ----
	ops := httpapi.NewServer(cfg, logger)
	go func() {
		if err := ops.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("ops server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()
	poller.StopPolling()
	_ = ops.Shutdown(context.Background())
}
