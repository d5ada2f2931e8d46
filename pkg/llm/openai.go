package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// GroqBaseURL is Groq's OpenAI compatible endpoint.
	GroqBaseURL = "https://api.groq.com/openai/v1"

	// DefaultModel is the model used when none is configured.
	DefaultModel = "llama-3.3-70b-versatile"
)

// OpenAIClient calls any OpenAI compatible /chat/completions endpoint
// (Groq, OpenAI, vLLM, Ollama).
type OpenAIClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewOpenAIClient targets baseURL (without the /chat/completions suffix).
// timeout bounds each call end to end.
func NewOpenAIClient(baseURL, apiKey, model string, timeout time.Duration) *OpenAIClient {
	if baseURL == "" {
		baseURL = GroqBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &OpenAIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Model reports the configured model name.
func (c *OpenAIClient) Model() string { return c.model }

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature *float64  `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

type apiErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// APIError is a non-2xx reply from the provider.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("llm: provider returned %d", e.StatusCode)
	}
	return fmt.Sprintf("llm: provider returned %d: %s", e.StatusCode, e.Message)
}

func (c *OpenAIClient) Chat(ctx context.Context, msgs []Message, options *SamplingOptions) (*Response, error) {
	reqBody := chatRequest{Model: c.model, Messages: msgs}
	if options != nil {
		temp := options.Temperature
		reqBody.Temperature = &temp
		reqBody.MaxTokens = options.MaxTokens
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("llm: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("llm: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("llm: request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode/100 != 2 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var body apiErrorBody
		if raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); json.Unmarshal(raw, &body) == nil {
			apiErr.Message = body.Error.Message
		}
		return nil, apiErr
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("llm: decode response: %w", err)
	}

	res := &Response{Model: out.Model}
	if len(out.Choices) > 0 {
		res.Content = out.Choices[0].Message.Content
		res.FinishReason = out.Choices[0].FinishReason
	}
	return res, nil
}
