package domain

import (
	"context"
	"time"
)

// TextExtractor pulls plain text out of a PDF document.
// A failed parse is reported as an error wrapping ErrExtractionFailed.
type TextExtractor interface {
	Extract(ctx context.Context, pdfBytes []byte) (*ExtractedText, error)
}

// Summarizer sends text to the upstream summarization API.
// It never fails: upstream problems come back as an error bullet.
type Summarizer interface {
	Summarize(ctx context.Context, text string) *SummaryResult
}

// SummaryService runs the extraction -> summarization pipeline for one upload
type SummaryService interface {
	SummarizeDocument(ctx context.Context, file *UploadedFile) (*SummaryResult, error)
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetLogFormat() string
	GetSummarizerURL() string
	GetAPIKey() string
	GetMaxTextLength() int
	GetMinTextLength() int
	GetSummaryMaxLength() int
	GetSummaryMinLength() int
	GetUpstreamTimeout() time.Duration
	GetUpstreamMaxAttempts() int
	GetUpstreamRetryDelay() time.Duration
	GetPDFEngine() PDFEngine
	GetAllowedOrigins() []string
	GetTracingEnabled() bool
	GetServiceName() string
	GetOTLPEndpoint() string
}
