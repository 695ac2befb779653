package llm

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/JexSrs/go-ollama"
	"github.com/sirupsen/logrus"
)

const defaultOllamaHost = "http://localhost:11434"

// Ollama implements the Generator interface for a local Ollama server.
type Ollama struct {
	client *ollama.Ollama
	model  string
}

// NewOllama creates a new Ollama generator. No API key is required.
func NewOllama(model string) (*Ollama, error) {
	host := os.Getenv("OLLAMA_HOST")
	if host == "" {
		host = defaultOllamaHost
	}

	ollamaURL, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama host URL: %w", err)
	}

	logrus.Debugf("using Ollama host %s with model %s", host, model)

	return &Ollama{
		client: ollama.New(*ollamaURL),
		model:  model,
	}, nil
}

func (o *Ollama) Name() string { return "ollama" }

// Generate sends a single-shot generation request. The Ollama client manages
// its own transport, so ctx and token limits are not threaded through.
func (o *Ollama) Generate(_ context.Context, req Request) (Response, error) {
	res, err := o.client.Generate(
		o.client.Generate.WithModel(o.model),
		o.client.Generate.WithSystem(req.System),
		o.client.Generate.WithPrompt(req.Prompt),
	)
	if err != nil {
		return Response{}, fmt.Errorf("calling Ollama generate API: %w", err)
	}

	if !res.Done {
		return Response{}, fmt.Errorf("Ollama request did not complete (unexpected streaming behavior)")
	}

	return Response{Content: strings.TrimSpace(res.Response)}, nil
}
