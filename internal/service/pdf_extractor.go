package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"pdf-summarizer/internal/domain"
	"pdf-summarizer/pkg/telemetry"

	"go.opentelemetry.io/otel/attribute"
)

// pageSource is an opened PDF whose pages can be read one at a time
type pageSource interface {
	NumPage() int
	// PageText returns the text of the zero-based page.
	PageText(index int) (string, error)
	Close() error
}

type pageSourceOpener func(pdfBytes []byte) (pageSource, error)

// defaultPageTimeout bounds a single page; MuPDF can spin on hostile content streams.
const defaultPageTimeout = 90 * time.Second

// PDFExtractor implements domain.TextExtractor
type PDFExtractor struct {
	engine        domain.PDFEngine
	open          pageSourceOpener
	maxTextLength int
	pageTimeout   time.Duration
	logger        domain.Logger
}

// NewPDFExtractor creates an extractor for the given engine.
// maxTextLength is the extraction cap, counted in characters.
func NewPDFExtractor(engine domain.PDFEngine, maxTextLength int, logger domain.Logger) *PDFExtractor {
	open := openFitzSource
	if engine == domain.PDFEnginePDF {
		open = openLedongthucSource
	}
	return &PDFExtractor{
		engine:        engine,
		open:          open,
		maxTextLength: maxTextLength,
		pageTimeout:   defaultPageTimeout,
		logger:        logger,
	}
}

// Extract concatenates the text of every page, in order, and truncates the
// result to the extraction cap. Pages that have no text or fail to extract
// contribute an empty string. Parsing stops as soon as the cap is exceeded.
func (e *PDFExtractor) Extract(ctx context.Context, pdfBytes []byte) (result *domain.ExtractedText, err error) {
	ctx, span := telemetry.Tracer("pdf-summarizer/service").Start(ctx, "pdf.extract")
	span.SetAttributes(
		attribute.String("pdf.engine", string(e.engine)),
		attribute.Int("pdf.size_bytes", len(pdfBytes)),
	)
	defer func() { telemetry.End(span, err) }()

	src, err := e.openSafely(pdfBytes)
	if err != nil {
		e.logger.Warn("PDF open failed", "error", err, "engine", e.engine, "size", len(pdfBytes))
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	// pending is set when a page read was abandoned; the source is closed only
	// after that read returns.
	var pending <-chan pageResult
	defer func() { closeSource(src, pending) }()

	numPages := src.NumPage()
	var sb strings.Builder
	length := 0
	pagesRead := 0

	for pageNum := 0; pageNum < numPages; pageNum++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		text, abandoned, pageErr := e.pageTextWithTimeout(ctx, src, pageNum)
		if abandoned != nil {
			pending = abandoned
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		pagesRead++
		if pageErr != nil {
			e.logger.Warn("Failed to extract text from page", "page_num", pageNum+1, "total", numPages, "error", pageErr)
			if pending != nil {
				// the engine is still busy with this page; later pages would queue behind it
				break
			}
			continue
		}

		text = sanitizeText(text)
		sb.WriteString(text)
		length += utf8.RuneCountInString(text)

		if length > e.maxTextLength {
			e.logger.Debug("Extraction cap reached", "page_num", pageNum+1, "total", numPages, "cap", e.maxTextLength)
			break
		}
	}

	content, truncated := truncateRunes(sb.String(), e.maxTextLength)
	span.SetAttributes(
		attribute.Int("pdf.page_count", numPages),
		attribute.Int("pdf.pages_read", pagesRead),
		attribute.Bool("pdf.truncated", truncated),
	)

	return &domain.ExtractedText{
		Content:   content,
		PageCount: numPages,
		PagesRead: pagesRead,
		Truncated: truncated,
	}, nil
}

// openSafely turns parser panics on malformed input into errors
func (e *PDFExtractor) openSafely(pdfBytes []byte) (src pageSource, err error) {
	defer func() {
		if r := recover(); r != nil {
			src = nil
			err = fmt.Errorf("parser panic: %v", r)
		}
	}()
	if len(pdfBytes) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	return e.open(pdfBytes)
}

type pageResult struct {
	text string
	err  error
}

// pageTextWithTimeout reads one page in its own goroutine so a hung page can be
// abandoned. For an abandoned read it returns the channel the goroutine will
// eventually report on.
func (e *PDFExtractor) pageTextWithTimeout(ctx context.Context, src pageSource, index int) (string, <-chan pageResult, error) {
	resultCh := make(chan pageResult, 1)
	go func() {
		t, err := e.pageTextSafely(src, index)
		resultCh <- pageResult{text: t, err: err}
	}()

	timer := time.NewTimer(e.pageTimeout)
	defer timer.Stop()

	select {
	case res := <-resultCh:
		return res.text, nil, res.err
	case <-timer.C:
		e.logger.Warn("PDF page extraction timeout; using empty page", "page", index+1, "timeout", e.pageTimeout)
		return "", resultCh, fmt.Errorf("timeout after %v", e.pageTimeout)
	case <-ctx.Done():
		return "", resultCh, ctx.Err()
	}
}

func closeSource(src pageSource, pending <-chan pageResult) {
	if pending == nil {
		_ = src.Close()
		return
	}
	go func() {
		<-pending
		_ = src.Close()
	}()
}

func (e *PDFExtractor) pageTextSafely(src pageSource, index int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("parser panic: %v", r)
		}
	}()
	return src.PageText(index)
}

// truncateRunes cuts s to at most max characters without splitting a UTF-8 sequence
func truncateRunes(s string, max int) (string, bool) {
	if max <= 0 {
		return "", s != ""
	}
	count := 0
	for idx := range s {
		if count == max {
			return s[:idx], true
		}
		count++
	}
	return s, false
}

// sanitizeText drops NUL and other control characters except tab, newline and
// carriage return, plus any invalid UTF-8, so the text is safe to JSON-encode.
func sanitizeText(text string) string {
	text = strings.ToValidUTF8(text, "")

	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if r == '\t' || r == '\n' || r == '\r' {
			result.WriteRune(r)
			continue
		}
		if r < 0x20 || r == 0x7F {
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}
