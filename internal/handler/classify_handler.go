package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"financial-doc-classifier/internal/domain"
	apperrors "financial-doc-classifier/pkg/errors"
)

// multipartOverhead covers boundaries and part headers around the file.
const multipartOverhead = 1 << 20

// ClassifyHandler serves the classification API.
type ClassifyHandler struct {
	service     domain.ClassificationService
	logger      domain.Logger
	maxFileSize int64
}

// NewClassifyHandler creates a new classification handler
func NewClassifyHandler(service domain.ClassificationService, logger domain.Logger, maxFileSize int64) *ClassifyHandler {
	return &ClassifyHandler{
		service:     service,
		logger:      logger,
		maxFileSize: maxFileSize,
	}
}

type classifyResponse struct {
	FileName             string  `json:"file_name"`
	Format               string  `json:"format"`
	ContentKind          string  `json:"content_kind"`
	Category             string  `json:"category"`
	Confidence           float64 `json:"confidence"`
	Explanation          string  `json:"explanation"`
	TextPreview          string  `json:"text_preview"`
	TextPreviewTruncated bool    `json:"text_preview_truncated"`
}

// Classify handles POST /api/v1/classify with a multipart "file" field.
func (h *ClassifyHandler) Classify(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeAppError(w, apperrors.NewPayloadTooLargeError(h.maxFileSize))
			return
		}
		writeAppError(w, apperrors.NewValidationError("File is required"))
		return
	}
	defer file.Close()

	if header.Size > h.maxFileSize {
		writeAppError(w, apperrors.NewPayloadTooLargeError(h.maxFileSize))
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		h.logger.Error("Failed to read upload", err, "request_id", GetRequestID(r.Context()))
		writeAppError(w, apperrors.NewInternalError("failed to read uploaded file", err))
		return
	}
	if int64(len(data)) > h.maxFileSize {
		writeAppError(w, apperrors.NewPayloadTooLargeError(h.maxFileSize))
		return
	}

	name := strings.TrimSpace(header.Filename)
	if name == "" {
		writeAppError(w, apperrors.NewValidationError("File name is required"))
		return
	}

	outcome, err := h.service.Classify(r.Context(), domain.NewUploadedDocument(name, data))
	if err != nil {
		appErr := apperrors.FromError(err)
		if appErr.StatusCode >= http.StatusInternalServerError {
			h.logger.Error("Classification failed", err, "request_id", GetRequestID(r.Context()), "file", name)
		}
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, classifyResponse{
		FileName:             outcome.FileName,
		Format:               string(outcome.Format),
		ContentKind:          string(outcome.ContentKind),
		Category:             outcome.Result.Category,
		Confidence:           outcome.Result.Confidence,
		Explanation:          outcome.Result.Explanation,
		TextPreview:          outcome.TextPreview,
		TextPreviewTruncated: outcome.PreviewTruncated,
	})
}

// Categories lists the categories the classifier can assign.
func (h *ClassifyHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": domain.Categories,
	})
}

// Formats lists the accepted upload extensions.
func (h *ClassifyHandler) Formats(w http.ResponseWriter, r *http.Request) {
	exts := make([]string, 0, len(domain.SupportedFormats))
	for _, f := range domain.SupportedFormats {
		exts = append(exts, "."+string(f))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"formats":        exts,
		"max_file_bytes": h.maxFileSize,
	})
}
