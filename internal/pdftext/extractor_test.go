package pdftext

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/cnis-flow/internal/common"
	"github.com/Veraticus/cnis-flow/internal/service"
)

var _ service.TextExtractor = (*Extractor)(nil)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestExtractText_PlainText(t *testing.T) {
	content := "1 123.45678.90-1 EMPRESA Empregado 01/01/2010\n"
	path := writeFile(t, "extrato.TXT", content)

	got, err := NewExtractor().ExtractText(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestExtractText_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "unsupported extension", path: writeFile(t, "extrato.docx", "x"), wantErr: common.ErrUnsupportedFormat},
		{name: "missing text file", path: filepath.Join(dir, "missing.txt"), wantErr: common.ErrTextExtractionFailed},
		{name: "missing pdf", path: filepath.Join(dir, "missing.pdf"), wantErr: common.ErrTextExtractionFailed},
		{name: "not a pdf", path: writeFile(t, "fake.pdf", "this is not a pdf"), wantErr: common.ErrTextExtractionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewExtractor().ExtractText(context.Background(), tt.path)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, got)
		})
	}
}

func TestExtractText_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExtractor().ExtractText(ctx, writeFile(t, "extrato.txt", "x"))
	assert.ErrorIs(t, err, context.Canceled)
}
