package service

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"resume-intake/internal/domain"

	"code.sajari.com/docconv"
)

// TextExtractor turns an uploaded resume into plain text.
type TextExtractor struct {
	pages   domain.PageTextExtractor
	tempDir string
	logger  domain.Logger
}

// NewTextExtractor creates a text extractor. PDFs are staged in tempDir
// (the OS default when empty) for the page engine to read.
func NewTextExtractor(pages domain.PageTextExtractor, tempDir string, logger domain.Logger) *TextExtractor {
	return &TextExtractor{
		pages:   pages,
		tempDir: tempDir,
		logger:  logger,
	}
}

// ExtractText returns the text content of doc. Only PDF and DOCX are accepted;
// anything else fails with domain.ErrUnsupportedFormat.
func (e *TextExtractor) ExtractText(ctx context.Context, doc domain.ResumeDocument) (string, error) {
	switch NormalizeMimeType(doc.MimeType) {
	case domain.MimePDF:
		return e.extractPDF(ctx, doc.Data)
	case domain.MimeDOCX:
		return e.extractDOCX(doc.Data)
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, doc.MimeType)
	}
}

func (e *TextExtractor) extractPDF(ctx context.Context, data []byte) (string, error) {
	tmp, err := os.CreateTemp(e.tempDir, "resume-*.pdf")
	if err != nil {
		return "", fmt.Errorf("%w: create: %v", domain.ErrTempFile, err)
	}
	path := tmp.Name()
	defer func() {
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			e.logger.Warn("Failed to remove temporary PDF", "path", path, "error", rmErr)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("%w: write: %v", domain.ErrTempFile, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: close: %v", domain.ErrTempFile, err)
	}

	pages, err := e.pages.ExtractPages(ctx, path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTextExtraction, err)
	}

	e.logger.Debug("PDF text extracted", "pages", len(pages), "bytes", len(data))
	return sanitizeText(strings.Join(pages, "\n")), nil
}

func (e *TextExtractor) extractDOCX(data []byte) (string, error) {
	text, _, err := docconv.ConvertDocx(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTextExtraction, err)
	}

	e.logger.Debug("DOCX text extracted", "bytes", len(data))
	return sanitizeText(text), nil
}

// NormalizeMimeType lower-cases a media type and drops its parameters.
func NormalizeMimeType(mimeType string) string {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	return mimeType
}

// ResolveMimeType picks the media type of an upload. A missing or generic
// declared type is replaced by one inferred from the filename extension.
func ResolveMimeType(declared, filename string) string {
	declared = NormalizeMimeType(declared)
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return domain.MimePDF
	case ".docx":
		return domain.MimeDOCX
	}
	if byExt := mime.TypeByExtension(filepath.Ext(filename)); byExt != "" {
		return NormalizeMimeType(byExt)
	}
	return declared
}

// sanitizeText drops NUL and other control characters Postgres text columns
// reject, keeping tabs and line breaks.
func sanitizeText(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range text {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			b.WriteRune(r)
		case r < 0x20 || r == 0x7F:
			continue
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}
