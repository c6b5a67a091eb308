package domain

import (
	"path/filepath"
	"strings"
)

// Format is the closed set of upload formats the extractor understands.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatTXT  Format = "txt"
	FormatDOCX Format = "docx"
	FormatPNG  Format = "png"
	FormatJPG  Format = "jpg"
	FormatJPEG Format = "jpeg"
)

// SupportedFormats lists every accepted format in display order.
var SupportedFormats = []Format{FormatPDF, FormatPNG, FormatJPG, FormatJPEG, FormatTXT, FormatDOCX}

// ParseFormat maps a file extension (with or without the leading dot,
// any case) to a Format.
func ParseFormat(ext string) (Format, error) {
	normalized := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	switch Format(normalized) {
	case FormatPDF, FormatTXT, FormatDOCX, FormatPNG, FormatJPG, FormatJPEG:
		return Format(normalized), nil
	default:
		return "", NewClassificationError(KindUnsupportedFormat, "unsupported file type: "+displayExt(ext), nil)
	}
}

// IsImage reports whether the format yields an Image variant.
func (f Format) IsImage() bool {
	switch f {
	case FormatPNG, FormatJPG, FormatJPEG:
		return true
	default:
		return false
	}
}

// MIMEType returns the media type used when the raw bytes are forwarded.
func (f Format) MIMEType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatTXT:
		return "text/plain"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case FormatPNG:
		return "image/png"
	case FormatJPG, FormatJPEG:
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}

// UploadedDocument is an uploaded file as received from the client.
type UploadedDocument struct {
	Name string
	Data []byte
}

// NewUploadedDocument strips any path components from name.
func NewUploadedDocument(name string, data []byte) UploadedDocument {
	base := strings.TrimSpace(filepath.Base(name))
	if base == "." || base == string(filepath.Separator) {
		base = ""
	}
	return UploadedDocument{Name: base, Data: data}
}

// Extension returns the declared extension without the dot.
func (d UploadedDocument) Extension() string {
	return strings.TrimPrefix(filepath.Ext(d.Name), ".")
}

// Format resolves the declared extension.
func (d UploadedDocument) Format() (Format, error) {
	return ParseFormat(d.Extension())
}

func displayExt(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" {
		return "(none)"
	}
	if !strings.HasPrefix(ext, ".") {
		return "." + ext
	}
	return ext
}
