// File: internal/infra/telegram/file_client.go
package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-ai-companion/internal/domain/ports/adapter"
)

// Compile-time check
var _ adapter.FileDownloader = (*FileClient)(nil)

// FileClient downloads Telegram-hosted files (voice notes, photos) to local
// paths for the recognition pipeline.
type FileClient struct {
	api  *tgbotapi.BotAPI
	http *http.Client
}

func NewFileClient(api *tgbotapi.BotAPI) *FileClient {
	return &FileClient{
		api:  api,
		http: &http.Client{Timeout: 60 * time.Second},
	}
}

func (f *FileClient) DownloadFile(ctx context.Context, fileID, destPath string) error {
	file, err := f.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return fmt.Errorf("get file %s: %w", fileID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(f.api.Token), nil)
	if err != nil {
		return fmt.Errorf("build download request: %w", err)
	}
	resp, err := f.http.Do(req)
	if err != nil {
		return fmt.Errorf("download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download file %s: status %d", fileID, resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", destPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("write %s: %w", destPath, err)
	}
	return out.Close()
}
