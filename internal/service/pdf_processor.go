package service

import (
	"bytes"
	"fmt"
	"strings"

	"financial-doc-classifier/internal/domain"

	"github.com/gen2brain/go-fitz"
)

// pdfHeaderWindow is how far into the stream the %PDF- marker may appear.
const pdfHeaderWindow = 1024

// PDFProcessor handles PDF text extraction
type PDFProcessor struct {
	logger domain.Logger
}

// NewPDFProcessor creates a new PDF processor
func NewPDFProcessor(logger domain.Logger) *PDFProcessor {
	return &PDFProcessor{
		logger: logger,
	}
}

// ExtractText returns the text of every page in page order, one page per line block.
func (p *PDFProcessor) ExtractText(pdfBytes []byte) (string, error) {
	return p.ExtractTextWithPageCallback(pdfBytes, nil)
}

// ExtractTextWithPageCallback is ExtractText with a hook called after each
// page (1-indexed) is read.
func (p *PDFProcessor) ExtractTextWithPageCallback(
	pdfBytes []byte,
	onPage func(pageNumber int, pageText string),
) (string, error) {
	if !hasPDFHeader(pdfBytes) {
		return "", fmt.Errorf("failed to open PDF: missing %%PDF- header")
	}

	doc, err := fitz.NewFromMemory(pdfBytes)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	numPages := doc.NumPage()
	pages := make([]string, 0, numPages)

	for pageNum := 0; pageNum < numPages; pageNum++ {
		p.logger.Debug("PDF processing page", "page", pageNum+1, "total", numPages)

		text, err := doc.Text(pageNum)
		if err != nil {
			// Keep the page slot so page order is preserved.
			p.logger.Warn("Failed to extract text from page", "page_num", pageNum+1, "total", numPages, "error", err)
			text = ""
		}
		text = sanitizeText(text)
		pages = append(pages, text)

		if onPage != nil {
			onPage(pageNum+1, strings.TrimSpace(text))
		}
	}

	return strings.TrimSpace(strings.Join(pages, "\n")), nil
}

func hasPDFHeader(b []byte) bool {
	window := b
	if len(window) > pdfHeaderWindow {
		window = window[:pdfHeaderWindow]
	}
	return bytes.Contains(window, []byte("%PDF-"))
}

// sanitizeText drops NUL and other control characters that some PDF
// producers leak into the text layer. Tab, newline and carriage return stay.
func sanitizeText(text string) string {
	var result strings.Builder
	result.Grow(len(text))

	for _, r := range text {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			result.WriteRune(r)
		case r < 0x20 || r == 0x7F:
			continue
		case r >= 0xD800 && r <= 0xDFFF:
			continue
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}
