package handler

import (
	"context"
	"net/http"

	"pdf-summarizer/internal/domain"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger tags every request with an ID and writes an access log line
type RequestLogger struct {
	logger domain.Logger
}

func NewRequestLogger(logger domain.Logger) *RequestLogger {
	return &RequestLogger{logger: logger}
}

// Middleware reuses an incoming X-Request-ID when it is a valid UUID and mints one otherwise
func (m *RequestLogger) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		ctx := context.WithValue(r.Context(), requestIDContextKey, requestID)
		metrics := httpsnoop.CaptureMetrics(next, w, r.WithContext(ctx))

		fields := []interface{}{
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", metrics.Code,
			"bytes", metrics.Written,
			"duration_ms", metrics.Duration.Milliseconds(),
		}
		if metrics.Code >= http.StatusInternalServerError {
			m.logger.Warn("Request failed", fields...)
			return
		}
		m.logger.Info("Request handled", fields...)
	})
}
