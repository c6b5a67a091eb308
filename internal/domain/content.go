package domain

import "image"

// ContentKind tags which variant of ExtractedContent is populated.
type ContentKind string

const (
	ContentKindText  ContentKind = "text"
	ContentKindImage ContentKind = "image"
)

// ImageContent is a decoded upload. Data keeps the original encoded bytes
// so the model receives exactly what the user sent.
type ImageContent struct {
	Pixels   image.Image
	MIMEType string
	Data     []byte
}

// ExtractedContent holds either text or an image, never both.
// Build it with NewTextContent or NewImageContent; the zero value is invalid.
type ExtractedContent struct {
	kind  ContentKind
	text  string
	image *ImageContent
}

// NewTextContent wraps extracted plain text.
func NewTextContent(text string) ExtractedContent {
	return ExtractedContent{kind: ContentKindText, text: text}
}

// NewImageContent wraps a decoded image.
func NewImageContent(pixels image.Image, mimeType string, data []byte) ExtractedContent {
	return ExtractedContent{
		kind: ContentKindImage,
		image: &ImageContent{
			Pixels:   pixels,
			MIMEType: mimeType,
			Data:     data,
		},
	}
}

// Kind returns the populated variant, or "" for the zero value.
func (c ExtractedContent) Kind() ContentKind {
	return c.kind
}

// Text returns the text variant.
func (c ExtractedContent) Text() (string, bool) {
	if c.kind != ContentKindText {
		return "", false
	}
	return c.text, true
}

// Image returns the image variant.
func (c ExtractedContent) Image() (*ImageContent, bool) {
	if c.kind != ContentKindImage || c.image == nil {
		return nil, false
	}
	return c.image, true
}

// Validate checks the exactly-one-variant invariant.
func (c ExtractedContent) Validate() error {
	switch c.kind {
	case ContentKindText:
		return nil
	case ContentKindImage:
		if c.image == nil || c.image.Pixels == nil || len(c.image.Data) == 0 {
			return ErrInvalidContent
		}
		return nil
	default:
		return ErrInvalidContent
	}
}
