package ingest

import (
	"context"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"resumatch/internal/errors"
	"resumatch/internal/utils"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"
)

// SupportedExtensions lists the resume file types the extractor accepts.
var SupportedExtensions = []string{".pdf", ".txt"}

// Extractor turns resume files into plain text.
type Extractor struct {
	pdfParser *pdf.PDFParser
	logger    *errors.Logger
}

// NewExtractor creates a text extractor. The PDF parser is configured to
// return the whole document as one string rather than per-page chunks.
func NewExtractor(ctx context.Context, logger *errors.Logger) (*Extractor, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{
		ToPages: false,
	})
	if err != nil {
		return nil, errors.NewInternalError(errors.ErrCodeInvalidConfig,
			"Failed to create PDF parser", err)
	}

	return &Extractor{
		pdfParser: p,
		logger:    logger,
	}, nil
}

// Supported reports whether the file extension is an accepted resume type.
func Supported(path string) bool {
	ext := utils.GetFileExtension(path)
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// ExtractFile extracts plain text from a resume file, dispatching on the
// lowercased extension.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (string, error) {
	var text string
	var err error

	switch utils.GetFileExtension(path) {
	case ".pdf":
		text, err = e.extractPDF(ctx, path)
	case ".txt":
		text, err = extractTxt(path)
	default:
		return "", errors.NewValidationError(errors.ErrCodeUnsupportedFileType,
			"Unsupported file type, expected .pdf or .txt", nil).
			WithContext("file", path)
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", errors.NewIOError(errors.ErrCodeEmptyDocument,
			"No text could be extracted from file", nil).
			WithContext("file", path)
	}

	e.logger.Debug("Extracted resume text",
		"file", path,
		"characters", len(text))

	return text, nil
}

// ExtractReader extracts plain text from an in-memory resume, typically an
// HTTP upload. filename is only used to pick the parser and label errors.
func (e *Extractor) ExtractReader(ctx context.Context, r io.Reader, filename string) (string, error) {
	var text string
	var err error

	switch utils.GetFileExtension(filename) {
	case ".pdf":
		text, err = e.extractPDFReader(ctx, r, filename)
	case ".txt":
		var data []byte
		data, err = io.ReadAll(r)
		if err != nil {
			return "", errors.NewIOError(errors.ErrCodeFileNotReadable,
				"Cannot read uploaded text file", err).WithContext("file", filename)
		}
		text = decodeText(data)
	default:
		return "", errors.NewValidationError(errors.ErrCodeUnsupportedFileType,
			"Unsupported file type, expected .pdf or .txt", nil).
			WithContext("file", filename)
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", errors.NewIOError(errors.ErrCodeEmptyDocument,
			"No text could be extracted from file", nil).
			WithContext("file", filename)
	}

	e.logger.Debug("Extracted resume text",
		"file", filename,
		"characters", len(text))

	return text, nil
}

// extractPDF parses a PDF file and joins the returned document contents.
func (e *Extractor) extractPDF(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewIOError(errors.ErrCodeFileNotFound,
				"PDF file does not exist", err).WithContext("file", path)
		}
		return "", errors.NewIOError(errors.ErrCodeFileNotReadable,
			"Cannot open PDF file", err).WithContext("file", path)
	}
	defer func() { _ = file.Close() }()

	return e.extractPDFReader(ctx, file, path)
}

func (e *Extractor) extractPDFReader(ctx context.Context, r io.Reader, uri string) (string, error) {
	docs, err := e.pdfParser.Parse(ctx, r, einoParser.WithURI(uri))
	if err != nil {
		return "", errors.NewIOError(errors.ErrCodeFileNotReadable,
			"Failed to parse PDF", err).WithContext("file", uri)
	}
	if len(docs) == 0 {
		return "", errors.NewIOError(errors.ErrCodeEmptyDocument,
			"PDF parser returned no documents", nil).WithContext("file", uri)
	}

	var sb strings.Builder
	for _, doc := range docs {
		sb.WriteString(doc.Content)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// extractTxt reads a text file as UTF-8, falling back to a Latin-1
// reinterpretation when the bytes are not valid UTF-8.
func extractTxt(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewIOError(errors.ErrCodeFileNotFound,
				"Text file does not exist", err).WithContext("file", path)
		}
		return "", errors.NewIOError(errors.ErrCodeFileNotReadable,
			"Cannot read text file", err).WithContext("file", path)
	}

	return decodeText(data), nil
}

// decodeText interprets bytes as UTF-8, falling back to a Latin-1
// reinterpretation when they are not valid UTF-8.
func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return decodeLatin1(data)
}

// decodeLatin1 maps each byte to the Unicode code point of the same value.
func decodeLatin1(data []byte) string {
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}
