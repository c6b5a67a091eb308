package config

import (
	"fmt"

	"financial-doc-classifier/internal/domain"
	"financial-doc-classifier/internal/infra/gemini"
	"financial-doc-classifier/internal/infra/supabase"
	"financial-doc-classifier/internal/metrics"
	"financial-doc-classifier/internal/service"
	"financial-doc-classifier/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config                domain.Config
	Logger                domain.Logger
	Metrics               *metrics.Metrics
	Extractor             domain.ContentExtractor
	Classifier            domain.Classifier
	ClassificationService domain.ClassificationService
	// AuthService is nil when Supabase is not configured.
	AuthService domain.AuthService
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	return NewContainerWithConfig(NewConfig())
}

// NewContainerWithConfig wires every dependency from cfg.
func NewContainerWithConfig(cfg domain.Config) (*Container, error) {
	appLogger := logger.NewLogger(cfg.GetLogLevel())
	appMetrics := metrics.New()

	extractor := service.NewContentExtractor(service.NewPDFProcessor(appLogger), appLogger)

	classifier, err := service.NewClassifier(
		service.ClassifierConfig{
			APIKey: cfg.GetGeminiAPIKey(),
			Model:  cfg.GetGeminiModel(),
		},
		gemini.NewClient(appLogger),
		appLogger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create classifier: %w", err)
	}
	if cfg.GetGeminiAPIKey() == "" {
		appLogger.Warn("GEMINI_API_KEY is not set; classification requests will fail until it is configured")
	}

	classificationService := service.NewClassificationService(
		extractor,
		classifier,
		appMetrics,
		appLogger,
		service.ClassificationServiceOptions{
			MinTextLength: cfg.GetMinTextLength(),
			PreviewLength: cfg.GetPreviewLength(),
		},
	)

	container := &Container{
		Config:                cfg,
		Logger:                appLogger,
		Metrics:               appMetrics,
		Extractor:             extractor,
		Classifier:            classifier,
		ClassificationService: classificationService,
	}

	if cfg.AuthEnabled() {
		supabaseClient := supabase.NewSupabaseClient(cfg, appLogger)
		if err := supabaseClient.Initialize(); err != nil {
			return nil, fmt.Errorf("failed to initialize Supabase: %w", err)
		}
		container.AuthService = service.NewAuthService(supabaseClient, appLogger)
	}

	return container, nil
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}
