package config

import (
	"net/http"

	"pdf-summarizer/internal/domain"
	"pdf-summarizer/internal/service"
	"pdf-summarizer/pkg/logger"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Container holds all application dependencies
type Container struct {
	Config         domain.Config
	Logger         domain.Logger
	Extractor      domain.TextExtractor
	Summarizer     domain.Summarizer
	SummaryService domain.SummaryService
}

// NewContainer creates a new dependency injection container.
// It fails when the configuration is invalid, most notably when the upstream credential is missing.
func NewContainer() (*Container, error) {
	cfg, err := NewConfig()
	if err != nil {
		return nil, err
	}
	return NewContainerWithConfig(cfg), nil
}

// NewContainerWithConfig wires the services for an already loaded configuration
func NewContainerWithConfig(cfg domain.Config) *Container {
	appLogger := logger.NewLogger(cfg.GetLogLevel(), cfg.GetLogFormat())

	extractor := service.NewPDFExtractor(cfg.GetPDFEngine(), cfg.GetMaxTextLength(), appLogger)

	httpClient := &http.Client{
		Timeout:   cfg.GetUpstreamTimeout(),
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	summarizer := service.NewHuggingFaceClient(service.HuggingFaceOptions{
		Endpoint:    cfg.GetSummarizerURL(),
		APIKey:      cfg.GetAPIKey(),
		MaxLength:   cfg.GetSummaryMaxLength(),
		MinLength:   cfg.GetSummaryMinLength(),
		MaxAttempts: cfg.GetUpstreamMaxAttempts(),
		RetryDelay:  cfg.GetUpstreamRetryDelay(),
		HTTPClient:  httpClient,
	}, appLogger)

	summaryService := service.NewSummaryService(extractor, summarizer, cfg.GetMinTextLength(), appLogger)

	return &Container{
		Config:         cfg,
		Logger:         appLogger,
		Extractor:      extractor,
		Summarizer:     summarizer,
		SummaryService: summaryService,
	}
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}

// GetSummaryService returns the summarization pipeline
func (c *Container) GetSummaryService() domain.SummaryService {
	return c.SummaryService
}
