package llm

import (
	"context"
	"sync"
)

// Mock is a test double that returns canned responses. When Fn is set it
// takes precedence, letting tests vary behavior per request. Safe for
// concurrent use.
type Mock struct {
	Response string
	Err      error
	Fn       func(req Request) (Response, error)

	mu    sync.Mutex
	calls []Request
}

func (m *Mock) Name() string { return "mock" }

func (m *Mock) Generate(_ context.Context, req Request) (Response, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()

	if m.Fn != nil {
		return m.Fn(req)
	}
	return Response{Content: m.Response}, m.Err
}

// Calls returns a copy of the requests seen so far.
func (m *Mock) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.calls))
	copy(out, m.calls)
	return out
}
