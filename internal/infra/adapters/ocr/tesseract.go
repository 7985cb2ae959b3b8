package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"telegram-ai-companion/internal/domain/ports/adapter"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.TextExtractor = (*Tesseract)(nil)

// Tesseract shells out to the tesseract binary. The executable is resolved
// once at construction; a missing binary is a startup configuration error,
// not a per-request failure.
type Tesseract struct {
	binPath   string
	languages string
}

// NewTesseract resolves binPath (PATH lookup when empty) and fixes the OCR
// language set, e.g. "rus+eng".
func NewTesseract(binPath, languages string) (*Tesseract, error) {
	if binPath == "" {
		binPath = "tesseract"
	}
	resolved, err := exec.LookPath(binPath)
	if err != nil {
		return nil, fmt.Errorf("tesseract executable not found (%s): %w", binPath, err)
	}
	if languages == "" {
		languages = "eng"
	}
	return &Tesseract{binPath: resolved, languages: languages}, nil
}

func (t *Tesseract) ExtractText(ctx context.Context, imagePath string) (string, error) {
	// "stdout" makes tesseract write the recognized text to stdout instead
	// of an output file.
	cmd := exec.CommandContext(ctx, t.binPath, imagePath, "stdout", "-l", t.languages)
	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tesseract: %w: %s", err, errBuf.String())
	}
	return out.String(), nil
}
