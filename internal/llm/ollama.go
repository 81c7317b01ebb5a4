package llm

import (
	"context"
	"fmt"
	"net/url"

	"github.com/JexSrs/go-ollama"
)

const (
	defaultOllamaHost  = "http://127.0.0.1:11434"
	defaultOllamaModel = "gemma3:latest"
)

type ollamaClient struct {
	client *ollama.Ollama
	model  string
}

func NewOllama(cfg Config) (Completer, error) {
	host := cfg.BaseURL
	if host == "" {
		host = defaultOllamaHost
	}
	ollamaURL, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultOllamaModel
	}

	return &ollamaClient{
		client: ollama.New(*ollamaURL),
		model:  model,
	}, nil
}

type ollamaResult struct {
	text string
	err  error
}

// Complete runs a single non-streaming generation at the model's default
// temperature. The SDK call takes no context, so cancellation abandons the
// in-flight call instead of aborting it.
func (oc *ollamaClient) Complete(ctx context.Context, in Completion) (string, error) {
	done := make(chan ollamaResult, 1)

	go func() {
		res, err := oc.client.Generate(
			oc.client.Generate.WithModel(oc.model),
			oc.client.Generate.WithSystem(in.System),
			oc.client.Generate.WithPrompt(in.User),
		)
		if err != nil {
			done <- ollamaResult{err: fmt.Errorf("ollama generate: %w", err)}
			return
		}
		if !res.Done {
			done <- ollamaResult{err: fmt.Errorf("ollama generate: response not finished")}
			return
		}
		done <- ollamaResult{text: res.Response}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.text, r.err
	}
}

func (oc *ollamaClient) Model() string {
	return oc.model
}
