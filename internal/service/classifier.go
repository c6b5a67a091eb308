package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"financial-doc-classifier/internal/domain"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// DefaultGeminiModel is used when no model identifier is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

// ClassifierConfig carries the credential and model identifier explicitly
// so nothing is read from the process environment at call time.
type ClassifierConfig struct {
	APIKey string
	Model  string
}

// Classifier builds the classification prompt, sends it once and parses
// the reply strictly.
type Classifier struct {
	config      ClassifierConfig
	model       domain.ModelClient
	logger      domain.Logger
	instruction string
	schema      *jsonschema.Schema
}

// NewClassifier creates a new classifier
func NewClassifier(config ClassifierConfig, model domain.ModelClient, logger domain.Logger) (*Classifier, error) {
	config.APIKey = strings.TrimSpace(config.APIKey)
	config.Model = strings.TrimSpace(config.Model)
	if config.Model == "" {
		config.Model = DefaultGeminiModel
	}

	schema, err := CompileSchema(BuildClassificationJSONSchema())
	if err != nil {
		return nil, fmt.Errorf("failed to compile reply schema: %w", err)
	}

	return &Classifier{
		config:      config,
		model:       model,
		logger:      logger,
		instruction: BuildClassificationPrompt(),
		schema:      schema,
	}, nil
}

// Classify sends content to the model and returns a validated result.
func (c *Classifier) Classify(ctx context.Context, content domain.ExtractedContent) (*domain.ClassificationResult, error) {
	if c.config.APIKey == "" {
		return nil, domain.NewClassificationError(domain.KindAuth, "Gemini API key is not configured", nil)
	}
	if err := content.Validate(); err != nil {
		return nil, domain.NewClassificationError(domain.KindExtraction, "nothing to classify", err)
	}

	req := domain.ModelRequest{
		APIKey: c.config.APIKey,
		Model:  c.config.Model,
	}
	switch content.Kind() {
	case domain.ContentKindText:
		text, _ := content.Text()
		req.Prompt = buildTextPrompt(c.instruction, text)
	case domain.ContentKindImage:
		img, _ := content.Image()
		req.Prompt = c.instruction
		req.Image = img
	default:
		return nil, domain.NewClassificationError(domain.KindExtraction, "nothing to classify", domain.ErrInvalidContent)
	}

	raw, err := c.model.Generate(ctx, req)
	if err != nil {
		if domain.KindOf(err) == "" {
			err = domain.NewClassificationError(domain.KindTransport, "model request failed", err)
		}
		c.logger.Error("Classification request failed", err, "model", c.config.Model, "content_kind", content.Kind())
		return nil, err
	}

	result, err := c.parseReply(raw)
	if err != nil {
		c.logger.Error("Model returned improperly formatted data", err, "model", c.config.Model, "response", truncateForLog(raw))
		return nil, err
	}
	return result, nil
}

// parseReply turns the raw model text into a result or a MalformedResponse.
func (c *Classifier) parseReply(raw string) (*domain.ClassificationResult, error) {
	body := StripCodeFences(raw)
	if body == "" {
		return nil, malformed("the AI returned an empty response", domain.ErrEmptyResponse)
	}

	if err := ValidateJSON(c.schema, []byte(body)); err != nil {
		return nil, malformed("the AI returned improperly formatted data", err)
	}

	var result domain.ClassificationResult
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		return nil, malformed("the AI returned improperly formatted data", err)
	}
	if err := result.Validate(); err != nil {
		return nil, malformed("the AI returned an invalid classification", err)
	}

	result.Category = strings.TrimSpace(result.Category)
	if !domain.IsKnownCategory(result.Category) {
		c.logger.Warn("Model returned unknown category; using fallback", "category", result.Category, "fallback", domain.CategoryOthers)
		result.Category = domain.CategoryOthers
	}
	result.Explanation = strings.TrimSpace(result.Explanation)

	return &result, nil
}

func malformed(message string, cause error) error {
	return domain.NewClassificationError(domain.KindMalformedResponse, message, cause)
}

func truncateForLog(s string) string {
	const max = 300
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
