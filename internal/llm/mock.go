package llm

import (
	"context"
	"sync"
)

// MockClient is a scripted Client for tests and offline development.
// Replies are returned in order; when exhausted, the last one repeats.
type MockClient struct {
	mu      sync.Mutex
	replies []string
	err     error
	calls   []MockCall
}

// MockCall records one Generate invocation.
type MockCall struct {
	SystemPrompt string
	History      []Message
	Temperature  float64
}

// NewMockClient returns a client that replies with the given strings in order.
func NewMockClient(replies ...string) *MockClient {
	return &MockClient{replies: replies}
}

// FailWith makes every subsequent Generate return err (wrapped as a
// *GenerationError when it is not one already).
func (m *MockClient) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Generate implements Client.
func (m *MockClient) Generate(_ context.Context, systemPrompt string, history []Message, temperature float64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockCall{SystemPrompt: systemPrompt, History: history, Temperature: temperature})
	if m.err != nil {
		if _, ok := m.err.(*GenerationError); ok {
			return "", m.err
		}
		return "", &GenerationError{Err: m.err}
	}
	if len(m.replies) == 0 {
		return "", &GenerationError{Err: errNoReply}
	}
	idx := len(m.calls) - 1
	if idx >= len(m.replies) {
		idx = len(m.replies) - 1
	}
	return m.replies[idx], nil
}

// Calls returns a copy of recorded invocations.
func (m *MockClient) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

var errNoReply = &scriptExhausted{}

type scriptExhausted struct{}

func (*scriptExhausted) Error() string { return "mock client has no scripted replies" }
