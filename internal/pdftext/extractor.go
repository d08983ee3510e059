// Package pdftext reads the plain text of CNIS documents from disk.
package pdftext

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/Veraticus/cnis-flow/internal/common"
)

// Extractor implements service.TextExtractor for PDF and plain text files.
type Extractor struct{}

// NewExtractor creates a new text extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText returns the text of a .pdf or .txt file. PDF pages are joined in
// page order, one newline between pages.
func (e *Extractor) ExtractText(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return e.extractPDF(ctx, path)
	case ".txt":
		data, err := os.ReadFile(path) //nolint:gosec // path is chosen by the user
		if err != nil {
			return "", fmt.Errorf("%w: %w", common.ErrTextExtractionFailed, err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: %s", common.ErrUnsupportedFormat, filepath.Base(path))
	}
}

func (e *Extractor) extractPDF(ctx context.Context, path string) (text string, err error) {
	// The PDF reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", common.ErrTextExtractionFailed, filepath.Base(path), r)
		}
	}()

	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrTextExtractionFailed, err)
	}
	defer func() { _ = file.Close() }()

	var content strings.Builder
	total := reader.NumPage()
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			slog.Warn("Skipping unreadable PDF page",
				"file", filepath.Base(path),
				"page", i,
				"error", err)
			continue
		}
		content.WriteString(pageText)
		content.WriteByte('\n')
	}

	slog.Debug("Extracted PDF text",
		"file", filepath.Base(path),
		"pages", total,
		"characters", content.Len())

	return content.String(), nil
}
