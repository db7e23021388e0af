package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resumatch/internal/errors"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	e, err := NewExtractor(context.Background(), logger)
	if err != nil {
		t.Fatalf("failed to create extractor: %v", err)
	}
	return e
}

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestSupported(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{name: "pdf", path: "resume.pdf", expected: true},
		{name: "txt", path: "resume.txt", expected: true},
		{name: "uppercase extension", path: "RESUME.PDF", expected: true},
		{name: "docx", path: "resume.docx", expected: false},
		{name: "no extension", path: "resume", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Supported(tt.path); got != tt.expected {
				t.Errorf("Supported(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestExtractFileTxt(t *testing.T) {
	e := newTestExtractor(t)

	t.Run("utf-8 content", func(t *testing.T) {
		path := writeTempFile(t, "resume.txt", []byte("Jane Doe\nPython developer\n"))
		text, err := e.ExtractFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ExtractFile() error: %v", err)
		}
		if !strings.Contains(text, "Python developer") {
			t.Errorf("extracted text missing content: %q", text)
		}
	})

	t.Run("latin-1 fallback", func(t *testing.T) {
		// 0xE9 is é in Latin-1 and invalid as a standalone UTF-8 byte
		path := writeTempFile(t, "resume.txt", []byte{'R', 0xE9, 's', 'u', 'm', 0xE9})
		text, err := e.ExtractFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ExtractFile() error: %v", err)
		}
		if text != "Résumé" {
			t.Errorf("extracted text = %q, want %q", text, "Résumé")
		}
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeTempFile(t, "resume.txt", []byte("   \n\t\n"))
		if _, err := e.ExtractFile(context.Background(), path); err == nil {
			t.Error("expected error for whitespace-only file")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := e.ExtractFile(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
		if err == nil {
			t.Fatal("expected error for missing file")
		}
		appErr, ok := err.(*errors.AppError)
		if !ok {
			t.Fatalf("expected *errors.AppError, got %T", err)
		}
		if appErr.Code != errors.ErrCodeFileNotFound {
			t.Errorf("error code = %q, want %q", appErr.Code, errors.ErrCodeFileNotFound)
		}
	})
}

func TestExtractFileUnsupported(t *testing.T) {
	e := newTestExtractor(t)

	path := writeTempFile(t, "resume.docx", []byte("not supported"))
	_, err := e.ExtractFile(context.Background(), path)
	if err == nil {
		t.Fatal("expected error for unsupported extension")
	}
	appErr, ok := err.(*errors.AppError)
	if !ok {
		t.Fatalf("expected *errors.AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeUnsupportedFileType {
		t.Errorf("error code = %q, want %q", appErr.Code, errors.ErrCodeUnsupportedFileType)
	}
}

func TestExtractFilePDFMissing(t *testing.T) {
	e := newTestExtractor(t)

	_, err := e.ExtractFile(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"))
	if err == nil {
		t.Fatal("expected error for missing PDF")
	}
}
