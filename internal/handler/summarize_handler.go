package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"pdf-summarizer/internal/domain"
	apperrors "pdf-summarizer/pkg/errors"
)

const (
	pdfFileField = "pdf_file"
	// multipartOverhead leaves room for boundaries and part headers around the file
	multipartOverhead = 1 << 20
)

// SummarizeHandler handles PDF uploads for summarization
type SummarizeHandler struct {
	summaryService domain.SummaryService
	maxFileSize    int64
	logger         domain.Logger
}

// NewSummarizeHandler creates a new summarize handler instance
func NewSummarizeHandler(summaryService domain.SummaryService, maxFileSize int64, logger domain.Logger) *SummarizeHandler {
	return &SummarizeHandler{
		summaryService: summaryService,
		maxFileSize:    maxFileSize,
		logger:         logger,
	}
}

// Summarize handles POST /api/summarize
func (h *SummarizeHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	upload, err := h.readUpload(w, r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	result, err := h.summaryService.SummarizeDocument(r.Context(), upload)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if result.UpstreamError {
		h.logger.Warn("Summarization upstream failed", "filename", upload.Filename, "summary", result.Bullets)
	}

	writeJSON(w, http.StatusOK, domain.SummaryResponse{
		Status:        domain.StatusSuccess,
		Summary:       result.Bullets,
		UpstreamError: result.UpstreamError,
	})
}

// readUpload takes the request from Received to Validated
func (h *SummarizeHandler) readUpload(w http.ResponseWriter, r *http.Request) (*domain.UploadedFile, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+multipartOverhead)

	file, header, err := r.FormFile(pdfFileField)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, h.tooLarge()
		}
		return nil, apperrors.NewValidationError("No file uploaded", domain.ErrMissingFile, err.Error())
	}
	defer file.Close()

	// Sanitize filename (strip any path components)
	filename := strings.TrimSpace(filepath.Base(header.Filename))
	if strings.ToLower(filepath.Ext(filename)) != ".pdf" {
		return nil, apperrors.NewValidationError("Only PDF files allowed", domain.ErrUnsupportedType, filename)
	}

	if header.Size > h.maxFileSize {
		return nil, h.tooLarge()
	}

	content, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to read upload", err)
	}
	if int64(len(content)) > h.maxFileSize {
		return nil, h.tooLarge()
	}

	h.logger.Debug("Upload accepted", "filename", filename, "size", len(content))
	return &domain.UploadedFile{Filename: filename, Content: content}, nil
}

func (h *SummarizeHandler) tooLarge() error {
	return apperrors.NewValidationError(
		fmt.Sprintf("File too large. Maximum size is %s.", formatSize(h.maxFileSize)),
		domain.ErrFileTooLarge,
	)
}

// formatSize renders a byte limit rounded up to the largest whole unit
func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%d MB", (n+1<<20-1)>>20)
	case n >= 1<<10:
		return fmt.Sprintf("%d KB", (n+1<<10-1)>>10)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}

func (h *SummarizeHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	statusCode := apperrors.GetStatusCode(err)
	requestID, _ := GetRequestIDFromContext(r)

	if statusCode >= http.StatusInternalServerError {
		h.logger.Error("Summarize request failed", err, "request_id", requestID)
		writeError(w, statusCode, "Internal server error")
		return
	}

	h.logger.Info("Summarize request rejected", "request_id", requestID, "reason", err.Error())
	writeError(w, statusCode, apperrors.GetMessage(err))
}
