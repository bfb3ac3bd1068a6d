package config

import (
	"errors"
	"fmt"
	"time"

	"pdf-summarizer/internal/domain"
	apperrors "pdf-summarizer/pkg/errors"

	"github.com/caarlos0/env/v11"
)

// DefaultSummarizerURL is the Hugging Face inference endpoint for bart-large-cnn
const DefaultSummarizerURL = "https://api-inference.huggingface.co/models/facebook/bart-large-cnn"

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort  string `env:"PORT"          envDefault:"7000"`
	MaxFileSize int64  `env:"MAX_FILE_SIZE" envDefault:"52428800"` // 50MB
	LogLevel    string `env:"LOG_LEVEL"     envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT"    envDefault:"text"`

	SummarizerURL string `env:"SUMMARIZER_URL"`
	APIKey        string `env:"HUGGINGFACE_API_KEY"`

	MaxTextLength    int `env:"MAX_TEXT_LENGTH"    envDefault:"8000"`
	MinTextLength    int `env:"MIN_TEXT_LENGTH"    envDefault:"50"`
	SummaryMaxLength int `env:"SUMMARY_MAX_LENGTH" envDefault:"300"`
	SummaryMinLength int `env:"SUMMARY_MIN_LENGTH" envDefault:"100"`

	UpstreamTimeout     time.Duration `env:"UPSTREAM_TIMEOUT"      envDefault:"60s"`
	UpstreamMaxAttempts int           `env:"UPSTREAM_MAX_ATTEMPTS" envDefault:"3"`
	UpstreamRetryDelay  time.Duration `env:"UPSTREAM_RETRY_DELAY"  envDefault:"1s"`

	PDFEngine domain.PDFEngine `env:"PDF_ENGINE" envDefault:"fitz"`

	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:5173,http://localhost:3000,http://localhost:7000" envSeparator:","`

	TracingEnabled bool   `env:"TRACING_ENABLED"             envDefault:"false"`
	ServiceName    string `env:"SERVICE_NAME"                envDefault:"pdf-summarizer"`
	OTLPEndpoint   string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// NewConfig reads the configuration from the environment.
// A missing HUGGINGFACE_API_KEY is fatal: the service cannot do anything useful without it.
func NewConfig() (domain.Config, error) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, apperrors.NewConfigurationError("invalid environment configuration", err)
	}
	if cfg.SummarizerURL == "" {
		cfg.SummarizerURL = DefaultSummarizerURL
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *AppConfig) validate() error {
	if c.APIKey == "" {
		return apperrors.NewConfigurationError("HUGGINGFACE_API_KEY is required", domain.ErrMissingCredential)
	}

	var problems []error
	if c.MaxTextLength <= 0 {
		problems = append(problems, &domain.ValidationError{Field: "MAX_TEXT_LENGTH", Message: "must be positive"})
	}
	if c.MinTextLength < 0 || c.MinTextLength > c.MaxTextLength {
		problems = append(problems, &domain.ValidationError{Field: "MIN_TEXT_LENGTH", Message: fmt.Sprintf("must be between 0 and %d", c.MaxTextLength)})
	}
	if c.SummaryMinLength < 0 || c.SummaryMinLength > c.SummaryMaxLength {
		problems = append(problems, &domain.ValidationError{Field: "SUMMARY_MIN_LENGTH", Message: "must not exceed SUMMARY_MAX_LENGTH"})
	}
	if c.MaxFileSize <= 0 {
		problems = append(problems, &domain.ValidationError{Field: "MAX_FILE_SIZE", Message: "must be positive"})
	}
	if c.UpstreamTimeout <= 0 {
		problems = append(problems, &domain.ValidationError{Field: "UPSTREAM_TIMEOUT", Message: "must be positive"})
	}
	if c.UpstreamMaxAttempts < 1 {
		problems = append(problems, &domain.ValidationError{Field: "UPSTREAM_MAX_ATTEMPTS", Message: "must be at least 1"})
	}
	switch c.PDFEngine {
	case domain.PDFEngineFitz, domain.PDFEnginePDF:
	default:
		problems = append(problems, &domain.ValidationError{Field: "PDF_ENGINE", Message: fmt.Sprintf("unknown engine %q", c.PDFEngine)})
	}

	if len(problems) > 0 {
		return apperrors.NewConfigurationError("invalid environment configuration", errors.Join(problems...))
	}
	return nil
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetMaxFileSize returns the maximum allowed upload size in bytes
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetLogFormat returns the log output format (text or json)
func (c *AppConfig) GetLogFormat() string {
	return c.LogFormat
}

// GetSummarizerURL returns the upstream summarization endpoint
func (c *AppConfig) GetSummarizerURL() string {
	return c.SummarizerURL
}

// GetAPIKey returns the upstream bearer credential
func (c *AppConfig) GetAPIKey() string {
	return c.APIKey
}

// GetMaxTextLength returns the extraction cap in characters
func (c *AppConfig) GetMaxTextLength() int {
	return c.MaxTextLength
}

// GetMinTextLength returns the minimum amount of text worth summarizing
func (c *AppConfig) GetMinTextLength() int {
	return c.MinTextLength
}

func (c *AppConfig) GetSummaryMaxLength() int {
	return c.SummaryMaxLength
}

func (c *AppConfig) GetSummaryMinLength() int {
	return c.SummaryMinLength
}

// GetUpstreamTimeout returns the per-attempt timeout for the summarization call
func (c *AppConfig) GetUpstreamTimeout() time.Duration {
	return c.UpstreamTimeout
}

func (c *AppConfig) GetUpstreamMaxAttempts() int {
	return c.UpstreamMaxAttempts
}

func (c *AppConfig) GetUpstreamRetryDelay() time.Duration {
	return c.UpstreamRetryDelay
}

// GetPDFEngine returns the PDF library used for extraction
func (c *AppConfig) GetPDFEngine() domain.PDFEngine {
	return c.PDFEngine
}

// GetAllowedOrigins returns the CORS origin allow-list
func (c *AppConfig) GetAllowedOrigins() []string {
	return c.AllowedOrigins
}

func (c *AppConfig) GetTracingEnabled() bool {
	return c.TracingEnabled
}

func (c *AppConfig) GetServiceName() string {
	return c.ServiceName
}

// GetOTLPEndpoint returns the OTLP collector address; empty means stdout export
func (c *AppConfig) GetOTLPEndpoint() string {
	return c.OTLPEndpoint
}
