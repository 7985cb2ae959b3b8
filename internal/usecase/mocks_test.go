// File: internal/usecase/mocks_test.go
package usecase

import (
	"context"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"telegram-ai-companion/internal/domain/ports/adapter"
)

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// fakeAI is a scriptable AI adapter used by unit tests.
type fakeAI struct {
	mu       sync.Mutex
	reply    string
	err      error
	calls    int
	seen     [][]adapter.Message
	block    chan struct{} // when set, Chat waits here before returning
	inflight int
	maxInfl  int
}

func (f *fakeAI) Provider() string { return "fake" }
func (f *fakeAI) Model() string    { return "fake-model" }

func (f *fakeAI) Chat(ctx context.Context, system string, messages []adapter.Message) (string, error) {
	f.mu.Lock()
	f.calls++
	cp := make([]adapter.Message, len(messages))
	copy(cp, messages)
	f.seen = append(f.seen, cp)
	f.inflight++
	if f.inflight > f.maxInfl {
		f.maxInfl = f.inflight
	}
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}

	f.mu.Lock()
	f.inflight--
	f.mu.Unlock()

	if f.err != nil {
		return "", f.err
	}
	if f.reply == "" {
		return "ok", nil
	}
	return f.reply, nil
}

func (f *fakeAI) CountTokens(ctx context.Context, system string, messages []adapter.Message) (int, error) {
	n := len(system)
	for _, m := range messages {
		n += len(m.Content)
	}
	return n, nil
}

// fakeDownloader writes payload into destPath and records every path it
// produced so tests can verify cleanup.
type fakeDownloader struct {
	mu      sync.Mutex
	payload []byte
	err     error
	paths   []string
}

func (f *fakeDownloader) DownloadFile(ctx context.Context, fileID, destPath string) error {
	f.mu.Lock()
	f.paths = append(f.paths, destPath)
	f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(destPath, f.payload, 0o600)
}

// fakeTranscoder copies src to dest, optionally failing.
type fakeTranscoder struct {
	mu    sync.Mutex
	err   error
	paths []string
}

func (f *fakeTranscoder) ToWAV(ctx context.Context, srcPath, destPath string) error {
	f.mu.Lock()
	f.paths = append(f.paths, destPath)
	f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}
	return os.WriteFile(destPath, data, 0o600)
}

type fakeSpeech struct {
	text string
	err  error
}

func (f *fakeSpeech) Transcribe(ctx context.Context, wav []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakeOCR struct {
	text  string
	err   error
	calls int
}

func (f *fakeOCR) ExtractText(ctx context.Context, imagePath string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}
