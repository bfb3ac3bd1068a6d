package service

import (
	"context"
	"strings"

	"pdf-summarizer/internal/domain"
)

type MockLogger struct {
	messages []string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{
		messages: []string{},
	}
}

func (m *MockLogger) Info(msg string, args ...interface{}) {
	m.messages = append(m.messages, "INFO: "+msg)
}

func (m *MockLogger) Error(msg string, err error, args ...interface{}) {
	m.messages = append(m.messages, "ERROR: "+msg+" - "+err.Error())
}

func (m *MockLogger) Debug(msg string, args ...interface{}) {
	m.messages = append(m.messages, "DEBUG: "+msg)
}

func (m *MockLogger) Warn(msg string, args ...interface{}) {
	m.messages = append(m.messages, "WARN: "+msg)
}

func (m *MockLogger) contains(substr string) bool {
	for _, msg := range m.messages {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

// fakePageSource serves canned page texts; a non-nil entry in errs fails that page.
// Pages listed in hang block until release is closed.
type fakePageSource struct {
	pages    []string
	errs     []error
	panics   map[int]bool
	hang     map[int]bool
	release  chan struct{}
	closedCh chan struct{}
	reads    int
	closed   bool
}

func (f *fakePageSource) NumPage() int {
	return len(f.pages)
}

func (f *fakePageSource) PageText(index int) (string, error) {
	if f.hang[index] {
		<-f.release
		return "", nil
	}
	f.reads++
	if f.panics[index] {
		panic("corrupt content stream")
	}
	if index < len(f.errs) && f.errs[index] != nil {
		return "", f.errs[index]
	}
	return f.pages[index], nil
}

func (f *fakePageSource) Close() error {
	f.closed = true
	if f.closedCh != nil {
		close(f.closedCh)
	}
	return nil
}

type MockExtractor struct {
	result *domain.ExtractedText
	err    error
	calls  int
}

func (m *MockExtractor) Extract(ctx context.Context, pdfBytes []byte) (*domain.ExtractedText, error) {
	m.calls++
	return m.result, m.err
}

type MockSummarizer struct {
	result   *domain.SummaryResult
	lastText string
	calls    int
}

func (m *MockSummarizer) Summarize(ctx context.Context, text string) *domain.SummaryResult {
	m.calls++
	m.lastText = text
	return m.result
}
