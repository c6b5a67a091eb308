package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"financial-doc-classifier/internal/domain"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
)

// Client sends a single generation request to the Gemini API.
// A genai client is created per request from the credential on the request,
// so nothing about the key is cached between calls.
type Client struct {
	logger domain.Logger
}

// NewClient creates a new Gemini model client
func NewClient(logger domain.Logger) *Client {
	return &Client{logger: logger}
}

// Generate implements domain.ModelClient.
func (c *Client) Generate(ctx context.Context, req domain.ModelRequest) (string, error) {
	apiKey := strings.TrimSpace(req.APIKey)
	if apiKey == "" {
		return "", domain.NewClassificationError(domain.KindAuth, "Gemini API key is not configured", nil)
	}

	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", classifyError(err)
	}
	defer cl.Close()

	m := cl.GenerativeModel(strings.TrimSpace(req.Model))
	if m == nil {
		return "", domain.NewClassificationError(domain.KindTransport, "gemini: model is nil", nil)
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "application/json",
	}

	parts := []genai.Part{genai.Text(req.Prompt)}
	if req.Image != nil {
		parts = append(parts, &genai.Blob{MIMEType: req.Image.MIMEType, Data: req.Image.Data})
	}

	c.logger.Debug("Sending classification request", "model", req.Model, "parts", len(parts))

	resp, err := m.GenerateContent(ctx, parts...)
	if err != nil {
		return "", classifyError(err)
	}

	txt := firstText(resp)
	if strings.TrimSpace(txt) == "" {
		return "", domain.NewClassificationError(domain.KindMalformedResponse, "the AI returned an empty response", domain.ErrEmptyResponse)
	}
	return txt, nil
}

// classifyError maps SDK failures onto the classification error kinds.
func classifyError(err error) error {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return domain.NewClassificationError(domain.KindContentBlocked, blockedMessage(blocked), err)
	}

	if isAuthError(err) {
		return domain.NewClassificationError(domain.KindAuth, "the Gemini API rejected the credential", err)
	}

	return domain.NewClassificationError(domain.KindTransport, "failed to reach the Gemini API", err)
}

func isAuthError(err error) bool {
	apiErr, ok := apierror.FromError(err)
	if !ok {
		return false
	}
	if apiErr.Reason() == "API_KEY_INVALID" {
		return true
	}
	switch apiErr.HTTPCode() {
	case http.StatusUnauthorized, http.StatusForbidden:
		return true
	}
	if st := apiErr.GRPCStatus(); st != nil {
		switch st.Code() {
		case codes.Unauthenticated, codes.PermissionDenied:
			return true
		}
	}
	return false
}

func blockedMessage(b *genai.BlockedError) string {
	if b.PromptFeedback != nil {
		return fmt.Sprintf("the content was blocked by the AI safety filters (%s)", b.PromptFeedback.BlockReason)
	}
	if b.Candidate != nil {
		return fmt.Sprintf("the content was blocked by the AI safety filters (%s)", b.Candidate.FinishReason)
	}
	return "the content was blocked by the AI safety filters"
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		var sb strings.Builder
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				sb.WriteString(string(t))
			}
		}
		if sb.Len() > 0 {
			return sb.String()
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
