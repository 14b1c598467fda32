package service

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"resume-intake/internal/domain"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
)

// PDF page engine names accepted by NewPageTextExtractor.
const (
	PDFEngineFitz      = "fitz"
	PDFEnginePDFReader = "pdfreader"
	PDFEnginePdftotext = "pdftotext"
)

// NewPageTextExtractor returns the page engine registered under name.
// An empty name selects fitz.
func NewPageTextExtractor(name string, logger domain.Logger) (domain.PageTextExtractor, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PDFEngineFitz:
		return &FitzPageExtractor{logger: logger}, nil
	case PDFEnginePDFReader:
		return &PDFReaderPageExtractor{logger: logger}, nil
	case PDFEnginePdftotext:
		return &PdftotextPageExtractor{binary: "pdftotext"}, nil
	default:
		return nil, fmt.Errorf("unknown pdf engine %q", name)
	}
}

// FitzPageExtractor reads pages with MuPDF through go-fitz.
type FitzPageExtractor struct {
	logger domain.Logger
}

// ExtractPages implements domain.PageTextExtractor. A page that fails to
// decode contributes an empty string so page positions are kept.
func (f *FitzPageExtractor) ExtractPages(ctx context.Context, path string) ([]string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	numPages := doc.NumPage()
	pages := make([]string, 0, numPages)

	for pageNum := 0; pageNum < numPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		f.logger.Debug("PDF processing page", "page", pageNum+1, "total", numPages)
		text, err := doc.Text(pageNum)
		if err != nil {
			f.logger.Warn("Failed to extract text from page", "page", pageNum+1, "total", numPages, "error", err)
			text = ""
		}
		pages = append(pages, text)
	}

	return pages, nil
}

// PDFReaderPageExtractor reads pages with the pure Go ledongthuc/pdf reader.
type PDFReaderPageExtractor struct {
	logger domain.Logger
}

// ExtractPages implements domain.PageTextExtractor.
func (p *PDFReaderPageExtractor) ExtractPages(ctx context.Context, path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	numPages := r.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			p.logger.Warn("Failed to extract text from page", "page", i, "total", numPages, "error", err)
			text = ""
		}
		pages = append(pages, text)
	}

	return pages, nil
}

// PdftotextPageExtractor shells out to poppler's pdftotext.
type PdftotextPageExtractor struct {
	binary string
}

// ExtractPages implements domain.PageTextExtractor. Pages are separated by
// form feeds in pdftotext output.
func (p *PdftotextPageExtractor) ExtractPages(ctx context.Context, path string) ([]string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.binary, "-layout", path, "-")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pdftotext failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return splitFormFeeds(stdout.String()), nil
}

func splitFormFeeds(out string) []string {
	pages := strings.Split(out, "\f")
	if n := len(pages); n > 1 && strings.TrimSpace(pages[n-1]) == "" {
		pages = pages[:n-1]
	}
	return pages
}
