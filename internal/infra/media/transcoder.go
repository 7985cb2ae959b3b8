package media

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"telegram-ai-companion/internal/domain/ports/adapter"
)

// Compile-time assurance this transcoder satisfies the port
var _ adapter.AudioTranscoder = (*FFmpegTranscoder)(nil)

// FFmpegTranscoder converts Telegram voice notes (OGG/Opus) into 16 kHz mono
// linear-PCM WAV via the ffmpeg binary, resolved once at startup.
type FFmpegTranscoder struct {
	binPath string
}

func NewFFmpegTranscoder(binPath string) (*FFmpegTranscoder, error) {
	if binPath == "" {
		binPath = "ffmpeg"
	}
	resolved, err := exec.LookPath(binPath)
	if err != nil {
		return nil, fmt.Errorf("ffmpeg executable not found (%s): %w", binPath, err)
	}
	return &FFmpegTranscoder{binPath: resolved}, nil
}

func (f *FFmpegTranscoder) ToWAV(ctx context.Context, srcPath, destPath string) error {
	cmd := exec.CommandContext(ctx, f.binPath,
		"-y",
		"-i", srcPath,
		"-ar", "16000",
		"-ac", "1",
		"-f", "wav",
		destPath,
	)
	var errBuf bytes.Buffer
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg transcode: %w: %s", err, errBuf.String())
	}
	return nil
}
