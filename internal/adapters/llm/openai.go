// Package llm provides chat-completion adapters.
// Adapter implementing ports.LLMService against any OpenAI-compatible API
// (Groq by default).
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/0xcro3dile/neurobot-go/internal/domain/entities"
	"github.com/0xcro3dile/neurobot-go/internal/logger"
)

const (
	DefaultBaseURL = "https://api.groq.com/openai/v1/chat/completions"
	DefaultModel   = "llama3-70b-8192"
)

// Options configures an OpenAIAdapter.
type Options struct {
	BaseURL string
	APIKey  string
	Model   string

	// MaxRetries bounds additional attempts after the first. Zero disables
	// retrying.
	MaxRetries int
	// RetryInitialInterval is the first backoff delay; later delays grow
	// exponentially with jitter.
	RetryInitialInterval time.Duration

	HTTPClient *http.Client
}

// OpenAIAdapter implements ports.LLMService over HTTP.
type OpenAIAdapter struct {
	baseURL         string
	apiKey          string
	model           string
	maxRetries      int
	initialInterval time.Duration
	client          *http.Client
}

// NewOpenAIAdapter creates a chat-completion adapter. It fails with
// entities.ErrMissingCredential when opts.APIKey is empty.
func NewOpenAIAdapter(opts Options) (*OpenAIAdapter, error) {
	if opts.APIKey == "" {
		return nil, entities.ErrMissingCredential
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.RetryInitialInterval <= 0 {
		opts.RetryInitialInterval = 500 * time.Millisecond
	}
	if opts.HTTPClient == nil {
		// Per-call deadlines come from the caller's context.
		opts.HTTPClient = &http.Client{}
	}
	return &OpenAIAdapter{
		baseURL:         opts.BaseURL,
		apiKey:          opts.APIKey,
		model:           opts.Model,
		maxRetries:      opts.MaxRetries,
		initialInterval: opts.RetryInitialInterval,
		client:          opts.HTTPClient,
	}, nil
}

// completionRequest is the chat-completion request body.
type completionRequest struct {
	Model    string                 `json:"model"`
	Messages []entities.ChatMessage `json:"messages"`
}

// completionResponse is the subset of the chat-completion response we read.
type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// StatusError is returned for non-2xx upstream responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}

// Configured always reports true; construction requires a credential.
func (a *OpenAIAdapter) Configured() bool { return true }

// Complete sends messages and returns the first choice's content.
func (a *OpenAIAdapter) Complete(ctx context.Context, messages []entities.ChatMessage) (string, error) {
	jsonData, err := json.Marshal(completionRequest{Model: a.model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	var content string
	attempt := 0
	op := func() error {
		attempt++
		c, err := a.do(ctx, jsonData)
		if err != nil {
			var perm *backoff.PermanentError
			if errors.As(err, &perm) {
				return err
			}
			if !retryable(err) {
				return backoff.Permanent(err)
			}
			logger.Warn("chat completion attempt %d failed: %v", attempt, err)
			return err
		}
		content = c
		return nil
	}

	if err := backoff.Retry(op, a.policy(ctx)); err != nil {
		return "", err
	}
	return content, nil
}

// policy builds the retry schedule for one call. With MaxRetries zero the
// operation runs exactly once.
func (a *OpenAIAdapter) policy(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = a.initialInterval
	exp.RandomizationFactor = 0.5
	exp.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(a.maxRetries)), ctx)
}

func (a *OpenAIAdapter) do(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling upstream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(b)}
	}

	var out completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", backoff.Permanent(fmt.Errorf("decoding response: %w", err))
	}
	if len(out.Choices) == 0 {
		return "", backoff.Permanent(errors.New("upstream response has no choices"))
	}
	return out.Choices[0].Message.Content, nil
}

// retryable reports whether err is worth another attempt: transport
// failures, 429 and 5xx.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode == http.StatusTooManyRequests || se.StatusCode >= 500
	}
	return true
}
