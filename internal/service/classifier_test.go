package service

import (
	"context"
	"errors"
	"image"
	"strings"
	"testing"

	"financial-doc-classifier/internal/domain"
)

func newTestClassifier(t *testing.T, apiKey string, model *MockModelClient) *Classifier {
	t.Helper()
	c, err := NewClassifier(ClassifierConfig{APIKey: apiKey}, model, NewMockLogger())
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	return c
}

func TestClassifier_TextRoundTrip(t *testing.T) {
	model := &MockModelClient{reply: `{"category":"invoice","confidence":0.92,"explanation":"contains invoice and total"}`}
	classifier := newTestClassifier(t, "test-key", model)

	extractor := newTestExtractor()
	content, err := extractor.Extract(domain.NewUploadedDocument("invoice.txt", []byte("INVOICE #1234 Total: $50.00")))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	result, err := classifier.Classify(context.Background(), content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Category != "invoice" {
		t.Fatalf("expected category invoice, got %q", result.Category)
	}
	if result.Confidence != 0.92 {
		t.Fatalf("expected confidence 0.92, got %v", result.Confidence)
	}
	if result.Explanation != "contains invoice and total" {
		t.Fatalf("unexpected explanation %q", result.Explanation)
	}

	if model.calls != 1 {
		t.Fatalf("expected exactly one model call, got %d", model.calls)
	}
	req := model.requests[0]
	if req.APIKey != "test-key" || req.Model != DefaultGeminiModel {
		t.Fatalf("unexpected request credentials: %+v", req)
	}
	if !strings.HasSuffix(req.Prompt, "Document text to classify:\n\nINVOICE #1234 Total: $50.00") {
		t.Fatalf("text payload not appended to prompt")
	}
	if req.Image != nil {
		t.Fatalf("text request must not carry an image")
	}
}

func TestClassifier_ImageAttachesBlob(t *testing.T) {
	model := &MockModelClient{reply: `{"category":"Receipt","confidence":0.7,"explanation":"till slip"}`}
	classifier := newTestClassifier(t, "test-key", model)

	content := domain.NewImageContent(image.NewRGBA(image.Rect(0, 0, 1, 1)), "image/png", []byte{0x89, 'P', 'N', 'G'})
	result, err := classifier.Classify(context.Background(), content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Category != "Receipt" {
		t.Fatalf("expected Receipt, got %q", result.Category)
	}

	req := model.requests[0]
	if req.Image == nil || req.Image.MIMEType != "image/png" {
		t.Fatalf("expected png blob on request")
	}
	if req.Prompt != BuildClassificationPrompt() {
		t.Fatalf("image request should send the bare instruction")
	}
}

func TestClassifier_MissingAPIKey(t *testing.T) {
	model := &MockModelClient{reply: `{}`}
	classifier := newTestClassifier(t, "   ", model)

	_, err := classifier.Classify(context.Background(), domain.NewTextContent("INVOICE #1234"))
	if domain.KindOf(err) != domain.KindAuth {
		t.Fatalf("expected %s, got %v", domain.KindAuth, err)
	}
	if model.calls != 0 {
		t.Fatalf("model must not be called without a credential, got %d calls", model.calls)
	}
}

func TestClassifier_ZeroContent(t *testing.T) {
	model := &MockModelClient{}
	classifier := newTestClassifier(t, "k", model)

	_, err := classifier.Classify(context.Background(), domain.ExtractedContent{})
	if domain.KindOf(err) != domain.KindExtraction {
		t.Fatalf("expected %s, got %v", domain.KindExtraction, err)
	}
	if model.calls != 0 {
		t.Fatalf("expected no model call")
	}
}

// TestClassifier_MalformedReplies tests strict reply validation.
// It tests:
// - Non-JSON, empty and non-object replies
// - Missing required keys
// - Wrong types and out-of-range confidence (rejected, never clamped)
func TestClassifier_MalformedReplies(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{name: "not json", reply: "not json"},
		{name: "empty", reply: "   "},
		{name: "empty fence", reply: "```json\n```"},
		{name: "array", reply: `[{"category":"Bill","confidence":0.5,"explanation":"x"}]`},
		{name: "missing category", reply: `{"confidence":0.5,"explanation":"x"}`},
		{name: "missing confidence", reply: `{"category":"Bill","explanation":"x"}`},
		{name: "missing explanation", reply: `{"category":"Bill","confidence":0.5}`},
		{name: "confidence as string", reply: `{"category":"Bill","confidence":"0.5","explanation":"x"}`},
		{name: "confidence above one", reply: `{"category":"Bill","confidence":1.5,"explanation":"x"}`},
		{name: "negative confidence", reply: `{"category":"Bill","confidence":-0.1,"explanation":"x"}`},
		{name: "blank category", reply: `{"category":"  ","confidence":0.5,"explanation":"x"}`},
		{name: "truncated", reply: `{"category":"Bill","confidence":0.5,`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classifier := newTestClassifier(t, "k", &MockModelClient{reply: tt.reply})
			result, err := classifier.Classify(context.Background(), domain.NewTextContent("some invoice text"))
			if domain.KindOf(err) != domain.KindMalformedResponse {
				t.Fatalf("expected %s, got %v", domain.KindMalformedResponse, err)
			}
			if result != nil {
				t.Fatalf("expected no partial result, got %+v", result)
			}
		})
	}
}

func TestClassifier_AcceptsFencedReplyAndExtraKeys(t *testing.T) {
	reply := "```json\n{\"category\":\"Bank Statement\",\"confidence\":1,\"explanation\":\" balances \",\"notes\":\"extra\"}\n```"
	classifier := newTestClassifier(t, "k", &MockModelClient{reply: reply})

	result, err := classifier.Classify(context.Background(), domain.NewTextContent("opening balance"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Category != "Bank Statement" || result.Confidence != 1 || result.Explanation != "balances" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestClassifier_UnknownCategoryFallsBackToOthers(t *testing.T) {
	classifier := newTestClassifier(t, "k", &MockModelClient{reply: `{"category":"Payslip","confidence":0.4,"explanation":"salary"}`})

	result, err := classifier.Classify(context.Background(), domain.NewTextContent("monthly salary slip"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Category != domain.CategoryOthers {
		t.Fatalf("expected %s, got %q", domain.CategoryOthers, result.Category)
	}
}

func TestClassifier_ModelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want domain.ErrorKind
	}{
		{name: "blocked passes through", err: domain.NewClassificationError(domain.KindContentBlocked, "blocked", nil), want: domain.KindContentBlocked},
		{name: "auth passes through", err: domain.NewClassificationError(domain.KindAuth, "denied", nil), want: domain.KindAuth},
		{name: "untyped becomes transport", err: errors.New("connection reset"), want: domain.KindTransport},
		{name: "context canceled becomes transport", err: context.Canceled, want: domain.KindTransport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classifier := newTestClassifier(t, "k", &MockModelClient{err: tt.err})
			_, err := classifier.Classify(context.Background(), domain.NewTextContent("some text here"))
			if domain.KindOf(err) != tt.want {
				t.Fatalf("expected %s, got %v", tt.want, err)
			}
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected cause to be preserved")
			}
		})
	}
}

func TestBuildClassificationPrompt_ListsEveryCategory(t *testing.T) {
	prompt := BuildClassificationPrompt()
	for _, c := range domain.Categories {
		if !strings.Contains(prompt, "**"+c.Name+"**") {
			t.Fatalf("prompt is missing category %s", c.Name)
		}
	}
	for _, key := range []string{`"category"`, `"confidence"`, `"explanation"`} {
		if !strings.Contains(prompt, key) {
			t.Fatalf("prompt is missing key %s", key)
		}
	}
}

func TestStripCodeFences(t *testing.T) {
	cases := map[string]string{
		"```json\n{}\n```": "{}",
		"```\n{}\n```":     "{}",
		"  {}  ":           "{}",
	}
	for in, want := range cases {
		if got := StripCodeFences(in); got != want {
			t.Fatalf("StripCodeFences(%q) = %q, want %q", in, got, want)
		}
	}
}
