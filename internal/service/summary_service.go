package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"pdf-summarizer/internal/domain"
	apperrors "pdf-summarizer/pkg/errors"
)

const (
	msgExtractionFailed = "Could not extract text from PDF"
	msgInsufficientText = "Not enough text in PDF to summarize"
)

// SummaryService implements domain.SummaryService: extract, check, summarize.
type SummaryService struct {
	extractor     domain.TextExtractor
	summarizer    domain.Summarizer
	minTextLength int
	logger        domain.Logger
}

// NewSummaryService creates a new summary service instance
func NewSummaryService(
	extractor domain.TextExtractor,
	summarizer domain.Summarizer,
	minTextLength int,
	logger domain.Logger,
) *SummaryService {
	return &SummaryService{
		extractor:     extractor,
		summarizer:    summarizer,
		minTextLength: minTextLength,
		logger:        logger,
	}
}

// SummarizeDocument extracts the text of an already validated PDF upload and
// sends it for summarization. Extraction problems are returned as 400-class
// AppErrors; upstream problems are embedded in the result instead.
func (s *SummaryService) SummarizeDocument(ctx context.Context, file *domain.UploadedFile) (*domain.SummaryResult, error) {
	extracted, err := s.extractor.Extract(ctx, file.Content)
	if err != nil {
		if errors.Is(err, domain.ErrExtractionFailed) {
			return nil, apperrors.NewExtractionError(msgExtractionFailed, err)
		}
		return nil, apperrors.NewInternalError("extraction aborted", err)
	}
	if extracted == nil || strings.TrimSpace(extracted.Content) == "" {
		s.logger.Info("PDF contains no extractable text", "filename", file.Filename)
		return nil, apperrors.NewExtractionError(msgExtractionFailed, domain.ErrExtractionFailed)
	}

	trimmedLength := utf8.RuneCountInString(strings.TrimSpace(extracted.Content))
	if trimmedLength < s.minTextLength {
		s.logger.Info("PDF text below minimum length", "filename", file.Filename, "length", trimmedLength, "min", s.minTextLength)
		return nil, apperrors.NewExtractionError(msgInsufficientText, domain.ErrInsufficientText)
	}

	s.logger.Debug("PDF text extracted",
		"filename", file.Filename,
		"pages", extracted.PageCount,
		"pages_read", extracted.PagesRead,
		"length", utf8.RuneCountInString(extracted.Content),
		"truncated", extracted.Truncated,
	)

	return s.summarizer.Summarize(ctx, extracted.Content), nil
}
