package handler

import (
	"net/http"

	"pdf-summarizer/internal/domain"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serviceName = "pdf-summarizer"

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(
	summarizeHandler *SummarizeHandler,
	indexHandler *IndexHandler,
	logger domain.Logger,
	allowedOrigins []string,
) http.Handler {
	router := mux.NewRouter()

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": serviceName})
	}).Methods(http.MethodGet)

	router.HandleFunc("/", indexHandler.Index).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/summarize", summarizeHandler.Summarize).Methods(http.MethodPost)

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			requestIDHeader,
		},
		ExposedHeaders: []string{
			requestIDHeader,
		},
		MaxAge: 300, // Maximum value not ignored by any of major browsers
	})

	// outside mux so unmatched routes also get a request ID and a log line
	requestLogger := NewRequestLogger(logger)
	return otelhttp.NewHandler(requestLogger.Middleware(c.Handler(router)), serviceName)
}
