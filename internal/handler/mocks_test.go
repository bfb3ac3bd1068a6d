package handler

import (
	"context"
	"strings"

	"pdf-summarizer/internal/domain"
)

// Mock logger used by handler package tests.
type MockHandlerLogger struct {
	messages []string
}

func NewMockHandlerLogger() *MockHandlerLogger {
	return &MockHandlerLogger{}
}

func (l *MockHandlerLogger) Info(msg string, fields ...interface{}) {
	l.messages = append(l.messages, "INFO: "+msg)
}

func (l *MockHandlerLogger) Error(msg string, err error, fields ...interface{}) {
	l.messages = append(l.messages, "ERROR: "+msg+" - "+err.Error())
}

func (l *MockHandlerLogger) Debug(msg string, fields ...interface{}) {
	l.messages = append(l.messages, "DEBUG: "+msg)
}

func (l *MockHandlerLogger) Warn(msg string, fields ...interface{}) {
	l.messages = append(l.messages, "WARN: "+msg)
}

func (l *MockHandlerLogger) contains(substr string) bool {
	for _, msg := range l.messages {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

type MockSummaryService struct {
	result   *domain.SummaryResult
	err      error
	calls    int
	lastFile *domain.UploadedFile
}

func (m *MockSummaryService) SummarizeDocument(ctx context.Context, file *domain.UploadedFile) (*domain.SummaryResult, error) {
	m.calls++
	m.lastFile = file
	return m.result, m.err
}
