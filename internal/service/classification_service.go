package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"financial-doc-classifier/internal/domain"
)

const (
	defaultMinTextLength = 10
	defaultPreviewLength = 500
)

// ClassificationServiceOptions tunes the text checks around the model call.
type ClassificationServiceOptions struct {
	MinTextLength int
	PreviewLength int
}

type classificationService struct {
	extractor  domain.ContentExtractor
	classifier domain.Classifier
	metrics    domain.MetricsRecorder
	logger     domain.Logger
	opts       ClassificationServiceOptions
}

// NewClassificationService wires the extractor and classifier together.
// metrics may be nil.
func NewClassificationService(
	extractor domain.ContentExtractor,
	classifier domain.Classifier,
	metrics domain.MetricsRecorder,
	logger domain.Logger,
	opts ClassificationServiceOptions,
) domain.ClassificationService {
	if opts.MinTextLength <= 0 {
		opts.MinTextLength = defaultMinTextLength
	}
	if opts.PreviewLength <= 0 {
		opts.PreviewLength = defaultPreviewLength
	}
	return &classificationService{
		extractor:  extractor,
		classifier: classifier,
		metrics:    metrics,
		logger:     logger,
		opts:       opts,
	}
}

// Classify extracts doc and forwards the content to the classifier.
func (s *classificationService) Classify(ctx context.Context, doc domain.UploadedDocument) (*domain.ClassificationOutcome, error) {
	format, _ := doc.Format()

	content, err := s.extractor.Extract(doc)
	if err != nil {
		s.logger.Warn("Could not process the document", "file", doc.Name, "error", err)
		s.observe(format, err, 0)
		return nil, err
	}

	outcome := &domain.ClassificationOutcome{
		FileName:    doc.Name,
		Format:      format,
		ContentKind: content.Kind(),
	}

	if text, ok := content.Text(); ok {
		trimmed := strings.TrimSpace(text)
		if utf8.RuneCountInString(trimmed) < s.opts.MinTextLength {
			err := domain.NewClassificationError(
				domain.KindExtraction,
				"could not extract sufficient text from the document; please ensure it contains readable text",
				nil,
			)
			s.logger.Warn("Insufficient text extracted", "file", doc.Name, "chars", utf8.RuneCountInString(trimmed))
			s.observe(format, err, 0)
			return nil, err
		}
		outcome.TextPreview, outcome.PreviewTruncated = preview(trimmed, s.opts.PreviewLength)
	}

	start := time.Now()
	result, err := s.classifier.Classify(ctx, content)
	elapsed := time.Since(start)
	s.observe(format, err, elapsed)
	if err != nil {
		return nil, err
	}

	outcome.Result = *result
	s.logger.Info("Document classified",
		"file", doc.Name,
		"format", format,
		"category", result.Category,
		"confidence", result.Confidence,
		"duration_ms", elapsed.Milliseconds(),
	)
	return outcome, nil
}

func (s *classificationService) observe(format domain.Format, err error, modelLatency time.Duration) {
	if s.metrics == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = string(domain.KindOf(err))
		if outcome == "" {
			outcome = "unknown"
		}
	}
	if format == "" {
		format = "unknown"
	}
	s.metrics.ObserveClassification(format, outcome, modelLatency)
}

// preview returns at most n runes of text.
func preview(text string, n int) (string, bool) {
	if utf8.RuneCountInString(text) <= n {
		return text, false
	}
	runes := []rune(text)
	return string(runes[:n]) + "...", true
}
