package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"pdf-summarizer/internal/domain"
	"pdf-summarizer/pkg/telemetry"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel/attribute"
)

const (
	upstreamErrorPrefix  = "Error from Hugging Face: "
	transportErrorPrefix = "API Error: "

	maxUpstreamBodyBytes = 1 << 20
	maxRetryInterval     = 30 * time.Second
)

// HuggingFaceOptions configures the inference API client
type HuggingFaceOptions struct {
	Endpoint    string
	APIKey      string
	MaxLength   int
	MinLength   int
	MaxAttempts int
	RetryDelay  time.Duration
	HTTPClient  *http.Client
}

// HuggingFaceClient implements domain.Summarizer against the Hugging Face Inference API
type HuggingFaceClient struct {
	endpoint    string
	apiKey      string
	maxLength   int
	minLength   int
	maxAttempts int
	retryDelay  time.Duration
	httpClient  *http.Client
	logger      domain.Logger
}

type inferenceParameters struct {
	MaxLength int `json:"max_length"`
	MinLength int `json:"min_length"`
}

type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
}

type inferenceResult struct {
	SummaryText string `json:"summary_text"`
}

// upstreamStatusError carries a non-200 reply so the raw body can be shown to the user
type upstreamStatusError struct {
	StatusCode int
	Body       string
}

func (e *upstreamStatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}

// NewHuggingFaceClient creates a new summarization client
func NewHuggingFaceClient(opts HuggingFaceOptions, logger domain.Logger) *HuggingFaceClient {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	maxAttempts := opts.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	retryDelay := opts.RetryDelay
	if retryDelay <= 0 {
		retryDelay = time.Second
	}
	return &HuggingFaceClient{
		endpoint:    opts.Endpoint,
		apiKey:      opts.APIKey,
		maxLength:   opts.MaxLength,
		minLength:   opts.MinLength,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
		httpClient:  httpClient,
		logger:      logger,
	}
}

// Summarize posts text to the inference endpoint and returns the summary as bullets.
// Upstream failures never surface as errors: they come back as a single error
// bullet with UpstreamError set so the caller can still answer 200.
func (c *HuggingFaceClient) Summarize(ctx context.Context, text string) *domain.SummaryResult {
	ctx, span := telemetry.Tracer("pdf-summarizer/service").Start(ctx, "summarizer.request")
	span.SetAttributes(attribute.Int("summarizer.input_chars", len(text)))

	summary, attempts, err := c.requestWithRetry(ctx, text)
	span.SetAttributes(attribute.Int("summarizer.attempts", attempts))
	telemetry.End(span, err)

	if err != nil {
		var statusErr *upstreamStatusError
		if errors.As(err, &statusErr) {
			c.logger.Warn("Summarization API returned an error", "status", statusErr.StatusCode, "attempts", attempts)
			return errorResult(upstreamErrorPrefix + statusErr.Body)
		}
		c.logger.Error("Summarization API request failed", err, "attempts", attempts)
		return errorResult(transportErrorPrefix + err.Error())
	}

	bullets := FormatBullets(summary)
	if len(bullets) == 0 {
		c.logger.Warn("Summarization API returned an empty summary", "attempts", attempts)
		return errorResult(transportErrorPrefix + "summary text is empty")
	}

	return &domain.SummaryResult{Bullets: bullets}
}

// requestWithRetry performs the POST with exponential backoff. Transport errors,
// 429 and 5xx replies are retried; everything else is permanent.
func (c *HuggingFaceClient) requestWithRetry(ctx context.Context, text string) (string, int, error) {
	payload, err := json.Marshal(inferenceRequest{
		Inputs: text,
		Parameters: inferenceParameters{
			MaxLength: c.maxLength,
			MinLength: c.minLength,
		},
	})
	if err != nil {
		return "", 0, fmt.Errorf("encode request: %w", err)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryDelay
	policy.MaxInterval = maxRetryInterval

	attempts := 0
	summary, err := backoff.Retry(ctx,
		func() (string, error) {
			attempts++
			return c.doRequest(ctx, payload)
		},
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(c.maxAttempts)),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.logger.Warn("Retrying summarization request", "error", err, "attempt", attempts, "next_in", next)
		}),
	)
	return summary, attempts, err
}

func (c *HuggingFaceClient) doRequest(ctx context.Context, payload []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", backoff.Permanent(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", backoff.Permanent(err)
		}
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		statusErr := &upstreamStatusError{StatusCode: resp.StatusCode, Body: string(body)}
		if isRetryableStatus(resp.StatusCode) {
			return "", statusErr
		}
		return "", backoff.Permanent(statusErr)
	}

	var results []inferenceResult
	if err := json.Unmarshal(body, &results); err != nil {
		return "", backoff.Permanent(fmt.Errorf("decode response: %w", err))
	}
	if len(results) == 0 {
		return "", backoff.Permanent(errors.New("response contained no results"))
	}
	return results[0].SummaryText, nil
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func errorResult(message string) *domain.SummaryResult {
	return &domain.SummaryResult{
		Bullets:       []string{message},
		UpstreamError: true,
	}
}
