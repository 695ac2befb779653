package llm

import (
	"context"
	"fmt"
)

// Request contains the data sent to a generation backend.
type Request struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Response contains the raw text returned by a generation backend.
type Response struct {
	Content    string
	TokensUsed int
}

// Generator produces text from a prompt. Implementations may fail or return
// empty content; callers own both cases.
type Generator interface {
	Generate(ctx context.Context, req Request) (Response, error)
	Name() string
}

// New creates a generator by provider name.
func New(provider, model string) (Generator, error) {
	switch provider {
	case "anthropic":
		return NewAnthropic(model)
	case "openai", "openrouter":
		return NewOpenAI(model)
	case "gemini", "google":
		return NewGemini(model)
	case "ollama":
		return NewOllama(model)
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
