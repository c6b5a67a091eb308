package service

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"

	"financial-doc-classifier/internal/domain"
)

// ContentExtractor dispatches an upload to the decoder for its format.
type ContentExtractor struct {
	pdf    *PDFProcessor
	logger domain.Logger
}

// NewContentExtractor creates a new content extractor
func NewContentExtractor(pdf *PDFProcessor, logger domain.Logger) *ContentExtractor {
	return &ContentExtractor{
		pdf:    pdf,
		logger: logger,
	}
}

// Extract returns the text or decoded image carried by doc. It only reads
// doc.Data and never performs I/O.
func (e *ContentExtractor) Extract(doc domain.UploadedDocument) (domain.ExtractedContent, error) {
	format, err := doc.Format()
	if err != nil {
		return domain.ExtractedContent{}, err
	}

	e.logger.Debug("Extracting content", "file", doc.Name, "format", format, "bytes", len(doc.Data))

	switch format {
	case domain.FormatPNG, domain.FormatJPG, domain.FormatJPEG:
		return decodeImage(format, doc.Data)
	case domain.FormatTXT:
		text, err := ExtractPlainText(doc.Data)
		if err != nil {
			return domain.ExtractedContent{}, extractionError("failed to read text file", err)
		}
		return domain.NewTextContent(text), nil
	case domain.FormatPDF:
		text, err := e.pdf.ExtractText(doc.Data)
		if err != nil {
			return domain.ExtractedContent{}, extractionError("failed to extract text from PDF", err)
		}
		return domain.NewTextContent(text), nil
	case domain.FormatDOCX:
		text, err := ExtractDOCXText(doc.Data)
		if err != nil {
			return domain.ExtractedContent{}, extractionError("failed to extract text from Word document", err)
		}
		return domain.NewTextContent(text), nil
	default:
		return domain.ExtractedContent{}, domain.NewClassificationError(domain.KindUnsupportedFormat, "unsupported file type: "+string(format), nil)
	}
}

func decodeImage(format domain.Format, data []byte) (domain.ExtractedContent, error) {
	var (
		img image.Image
		err error
	)
	switch format {
	case domain.FormatPNG:
		img, err = png.Decode(bytes.NewReader(data))
	case domain.FormatJPG, domain.FormatJPEG:
		img, err = jpeg.Decode(bytes.NewReader(data))
	default:
		return domain.ExtractedContent{}, domain.NewClassificationError(domain.KindUnsupportedFormat, "not an image format: "+string(format), nil)
	}
	if err != nil {
		return domain.ExtractedContent{}, extractionError("failed to decode image", err)
	}
	return domain.NewImageContent(img, format.MIMEType(), data), nil
}

func extractionError(message string, cause error) error {
	return domain.NewClassificationError(domain.KindExtraction, message, cause)
}
