package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"asset-verification-portal/internal/config"
)

// Engine shells out to the tesseract CLI to read text from verification
// photos. OCR is advisory: callers must treat a missing or failing engine as
// "no text extracted", never as a verification failure.
type Engine struct {
	binary    string
	languages string
}

func NewEngine(cfg *config.Config) *Engine {
	return &Engine{
		binary:    cfg.OCR.TesseractPath,
		languages: cfg.OCR.Languages,
	}
}

// Available reports whether the tesseract binary can be found.
func (e *Engine) Available() bool {
	_, err := exec.LookPath(e.binary)
	return err == nil
}

// ExtractText runs OCR over the image bytes and returns the raw recognized text.
func (e *Engine) ExtractText(ctx context.Context, image []byte) (string, error) {
	tmp, err := os.CreateTemp("", "verify-ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp image: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(image); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write temp image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp image: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.binary, tmp.Name(), "stdout", "-l", e.languages)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tesseract failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}
