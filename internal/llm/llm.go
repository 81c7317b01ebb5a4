package llm

import (
	"context"
	"fmt"

	"github.com/BerylCAtieno/business-idea-generator/internal/models"
)

// Completion is one system+user exchange with a provider.
type Completion struct {
	System      string
	User        string
	Temperature float64
	// Request is the form input the prompts were built from. Only the demo
	// provider reads it.
	Request models.IdeaRequest
}

// Completer sends a completion to an LLM provider and returns the first
// choice's text as the provider sent it.
type Completer interface {
	Complete(ctx context.Context, c Completion) (string, error)
	Model() string
}

type Config struct {
	Provider         string
	APIKey           string
	BaseURL          string // openai base URL or ollama host
	Model            string
	StructuredOutput bool
}

func New(ctx context.Context, cfg Config) (Completer, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAI(cfg), nil
	case "gemini":
		g, err := NewGemini(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return g, nil
	case "ollama":
		return NewOllama(cfg)
	case "demo":
		return NewDemo(), nil
	}
	return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
}
