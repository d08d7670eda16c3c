package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DeepSeekClient talks to an OpenAI-compatible chat-completions API.
// DeepSeek is the default backend; any endpoint speaking the same format
// (including OpenAI itself) works by changing BaseURL and Model.
type DeepSeekClient struct {
	baseURL    string
	model      string
	apiKey     string
	maxTokens  int
	httpClient *http.Client
}

// DeepSeekConfig configures a DeepSeekClient.
type DeepSeekConfig struct {
	BaseURL   string
	Model     string
	APIKey    string
	MaxTokens int
	Timeout   time.Duration
}

// NewDeepSeekClient creates a client. Zero-value config fields fall back to
// the DeepSeek defaults.
func NewDeepSeekClient(cfg DeepSeekConfig) *DeepSeekClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.deepseek.com"
	}
	if cfg.Model == "" {
		cfg.Model = "deepseek-chat"
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1500
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}
	return &DeepSeekClient{
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
		maxTokens:  cfg.MaxTokens,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

const maxRetries = 3

// Generate sends the system prompt plus history and returns the completion
// text. Rate-limited (429) and transient network failures are retried with
// exponential backoff; everything else fails immediately with a
// *GenerationError. If ctx has no deadline, the client's timeout is applied.
func (c *DeepSeekClient) Generate(ctx context.Context, systemPrompt string, history []Message, temperature float64) (string, error) {
	if c.apiKey == "" {
		return "", &GenerationError{Err: fmt.Errorf("API key not configured")}
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.httpClient.Timeout)
		defer cancel()
	}

	messages := make([]Message, 0, len(history)+1)
	messages = append(messages, Message{Role: "system", Content: systemPrompt})
	messages = append(messages, history...)

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", &GenerationError{Err: fmt.Errorf("marshal request: %w", err)}
	}

	var lastErr *GenerationError
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", &GenerationError{Err: ctx.Err()}
			case <-time.After(time.Duration(1<<uint(attempt-1)) * time.Second):
			}
		}
		text, genErr := c.doRequest(ctx, body)
		if genErr == nil {
			return text, nil
		}
		lastErr = genErr
		if !genErr.retryable() {
			return "", genErr
		}
	}
	return "", lastErr
}

// retryable reports whether the failure may succeed on retry: rate limits
// and transport errors, but not auth/validation failures or bad payloads.
func (e *GenerationError) retryable() bool {
	return e.Status == http.StatusTooManyRequests || e.Status == 0 && e.Err != nil && !isContextErr(e.Err)
}

func isContextErr(err error) bool {
	return err == context.Canceled || err == context.DeadlineExceeded
}

func (c *DeepSeekClient) doRequest(ctx context.Context, body []byte) (string, *GenerationError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", &GenerationError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", &GenerationError{Err: ctxErr}
		}
		return "", &GenerationError{Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &GenerationError{Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		var parsed chatResponse
		msg := string(respBody)
		if json.Unmarshal(respBody, &parsed) == nil && parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return "", &GenerationError{Status: resp.StatusCode, Err: fmt.Errorf("%s", msg)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &GenerationError{Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(parsed.Choices) == 0 {
		return "", &GenerationError{Status: resp.StatusCode, Err: fmt.Errorf("response contained no choices")}
	}
	return parsed.Choices[0].Message.Content, nil
}
