package handler

import (
	"embed"
	"html/template"
	"net/http"

	"pdf-summarizer/internal/domain"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type indexPage struct {
	FieldName   string
	MaxFileSize string
}

// IndexHandler serves the upload form
type IndexHandler struct {
	maxFileSize int64
	logger      domain.Logger
}

func NewIndexHandler(maxFileSize int64, logger domain.Logger) *IndexHandler {
	return &IndexHandler{
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

func (h *IndexHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page := indexPage{
		FieldName:   pdfFileField,
		MaxFileSize: formatSize(h.maxFileSize),
	}
	if err := indexTemplate.Execute(w, page); err != nil {
		h.logger.Error("Failed to render index page", err)
	}
}
