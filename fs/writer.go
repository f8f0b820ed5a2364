package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/jsonextract"
)

// Ensure Writer implements jsonextract.Saver at compile time.
var _ jsonextract.Saver = (*Writer)(nil)

// Writer saves extracted text as UTF-8 files in a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// Save writes text to <base>_extracted.txt next to the other outputs.
// The file is written to a temporary name first and renamed into place, so
// a failed write never leaves a partial result behind.
func (w *Writer) Save(ctx context.Context, sourceName, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, jsonextract.OutputName(filepath.Base(sourceName), ".txt"))

	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}

	tmp := fullPath + ".tmp"
	if err := os.WriteFile(tmp, []byte(text), 0644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, fullPath); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}

	return fullPath, nil
}
