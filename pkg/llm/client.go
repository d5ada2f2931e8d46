// Package llm talks to hosted chat-completion APIs.
package llm

import "context"

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Client sends a conversation and returns the model's reply.
type Client interface {
	Chat(ctx context.Context, messages []Message, options *SamplingOptions) (*Response, error)
}

// SamplingOptions tune one completion. Zero values leave the provider's
// defaults in place.
type SamplingOptions struct {
	Temperature float64
	MaxTokens   int
}

// Response is the first choice of a completion. Content is empty when the
// provider returned no choices.
type Response struct {
	Content      string
	FinishReason string
	Model        string
}
