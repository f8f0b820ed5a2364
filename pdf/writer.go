// Package pdf saves extracted text as a PDF document using gofpdf.
package pdf

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/jsonextract"
	"github.com/jung-kurt/gofpdf"
)

// Ensure Writer implements jsonextract.Saver at compile time.
var _ jsonextract.Saver = (*Writer)(nil)

// Writer renders text onto A4 pages in Helvetica, one paragraph per line.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// Save writes text to <base>_extracted.pdf. Characters outside the core
// font's code page are rendered as '?'.
func (w *Writer) Save(ctx context.Context, sourceName, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, jsonextract.OutputName(filepath.Base(sourceName), ".pdf"))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(jsonextract.OutputName(filepath.Base(sourceName), ""), true)
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			pdf.Ln(5)
			continue
		}
		pdf.MultiCell(0, 5, tr(line), "", "L", false)
	}

	if err := pdf.OutputFileAndClose(fullPath); err != nil {
		return "", err
	}
	return fullPath, nil
}
