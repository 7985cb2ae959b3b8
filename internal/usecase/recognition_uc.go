// File: internal/usecase/recognition_uc.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"telegram-ai-companion/internal/domain"
	"telegram-ai-companion/internal/domain/ports/adapter"
	"telegram-ai-companion/internal/infra/logging"
	"telegram-ai-companion/internal/infra/metrics"
)

// Compile-time check
var _ RecognitionUseCase = (*recognitionUC)(nil)

// RecognitionUseCase turns transport media references into plain text: voice
// notes through download → transcode → speech recognition, photos through
// download → OCR. Temporary files are scoped to one call and removed on every
// exit path.
type RecognitionUseCase interface {
	TranscribeVoice(ctx context.Context, fileID string) (string, error)
	ExtractImageText(ctx context.Context, fileID string) (string, error)
}

type recognitionUC struct {
	files      adapter.FileDownloader
	transcoder adapter.AudioTranscoder
	speech     adapter.SpeechTranscriber
	ocr        adapter.TextExtractor
	logger     *zerolog.Logger
}

func NewRecognitionUseCase(files adapter.FileDownloader, transcoder adapter.AudioTranscoder, speech adapter.SpeechTranscriber, ocr adapter.TextExtractor, logger *zerolog.Logger) *recognitionUC {
	return &recognitionUC{
		files:      files,
		transcoder: transcoder,
		speech:     speech,
		ocr:        ocr,
		logger:     logger,
	}
}

func (r *recognitionUC) TranscribeVoice(ctx context.Context, fileID string) (text string, err error) {
	log := logging.With(ctx, r.logger)
	defer logging.TraceDuration(log, "RecognitionUC.TranscribeVoice")()
	start := time.Now()
	defer func() {
		metrics.ObserveRecognition("voice", recognitionOutcome(err), int(time.Since(start).Milliseconds()))
	}()

	ogaPath, err := tempFile("voice-*.oga")
	if err != nil {
		return "", err
	}
	defer os.Remove(ogaPath)

	if err = r.files.DownloadFile(ctx, fileID, ogaPath); err != nil {
		return "", fmt.Errorf("download voice: %w", err)
	}

	wavPath, err := tempFile("voice-*.wav")
	if err != nil {
		return "", err
	}
	defer os.Remove(wavPath)

	if err = r.transcoder.ToWAV(ctx, ogaPath, wavPath); err != nil {
		return "", fmt.Errorf("transcode voice: %w", err)
	}

	wav, err := os.ReadFile(wavPath)
	if err != nil {
		return "", fmt.Errorf("read transcoded audio: %w", err)
	}

	text, err = r.speech.Transcribe(ctx, wav)
	if err != nil {
		return "", err
	}
	return text, nil
}

func (r *recognitionUC) ExtractImageText(ctx context.Context, fileID string) (text string, err error) {
	log := logging.With(ctx, r.logger)
	defer logging.TraceDuration(log, "RecognitionUC.ExtractImageText")()
	start := time.Now()
	defer func() {
		metrics.ObserveRecognition("image", recognitionOutcome(err), int(time.Since(start).Milliseconds()))
	}()

	imgPath, err := tempFile("photo-*.jpg")
	if err != nil {
		return "", err
	}
	defer os.Remove(imgPath)

	if err = r.files.DownloadFile(ctx, fileID, imgPath); err != nil {
		return "", fmt.Errorf("download photo: %w", err)
	}

	raw, err := r.ocr.ExtractText(ctx, imgPath)
	if err != nil {
		return "", fmt.Errorf("ocr: %w", err)
	}
	text = strings.TrimSpace(raw)
	if text == "" {
		return "", domain.ErrNoTextRecognized
	}
	return text, nil
}

// tempFile reserves a unique temp file path and returns it closed, so
// external tools can write to it.
func tempFile(pattern string) (string, error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}

func recognitionOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrSpeechNotUnderstood):
		return "not_understood"
	case errors.Is(err, domain.ErrSpeechServiceUnavailable):
		return "unavailable"
	case errors.Is(err, domain.ErrNoTextRecognized):
		return "no_text"
	default:
		return "error"
	}
}
