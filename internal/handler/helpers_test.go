package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"financial-doc-classifier/internal/domain"
)

func createContextWithUser(r *http.Request, user *domain.SupabaseUser) *http.Request {
	ctx := context.WithValue(r.Context(), userContextKey, user)
	return r.WithContext(ctx)
}

// newUploadRequest builds a multipart POST with a single "file" part.
func newUploadRequest(t *testing.T, filename string, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/classify", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// MockClassificationService returns a canned outcome or error.
type MockClassificationService struct {
	outcome *domain.ClassificationOutcome
	err     error
	calls   int
	lastDoc domain.UploadedDocument
}

func (m *MockClassificationService) Classify(ctx context.Context, doc domain.UploadedDocument) (*domain.ClassificationOutcome, error) {
	m.calls++
	m.lastDoc = doc
	if m.err != nil {
		return nil, m.err
	}
	return m.outcome, nil
}

// fakeModel answers every request with the same reply.
type fakeModel struct {
	reply string
	calls int
}

func (f *fakeModel) Generate(ctx context.Context, req domain.ModelRequest) (string, error) {
	f.calls++
	return f.reply, nil
}
