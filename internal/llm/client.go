// Package llm provides the text-generation client used by the router and
// the specialist agents.
package llm

import (
	"context"
	"fmt"
)

// Message is one entry in a chat request, matching the OpenAI wire format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client generates a completion given a system prompt, prior history, and a
// sampling temperature. Implementations are network-bound and fallible; all
// failures are reported as a *GenerationError.
type Client interface {
	Generate(ctx context.Context, systemPrompt string, history []Message, temperature float64) (string, error)
}

// GenerationError is any failure calling the generation backend: network,
// auth, quota, malformed response, or timeout.
type GenerationError struct {
	// Status is the HTTP status code when the backend responded, 0 otherwise.
	Status int
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("generation failed (status %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
