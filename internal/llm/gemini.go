package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-2.5-flash-lite"

type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGemini connects to the Gemini API. Without a key the client is built
// unconnected and every Complete call fails.
func NewGemini(ctx context.Context, cfg Config) (*GeminiClient, error) {
	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}
	if cfg.APIKey == "" {
		return &GeminiClient{model: model}, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (g *GeminiClient) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

func (g *GeminiClient) Complete(ctx context.Context, in Completion) (string, error) {
	if g.client == nil {
		return "", errors.New("gemini client has no API key")
	}

	// A model handle per call keeps the temperature local to this request.
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(float32(in.Temperature))
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(in.System)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(in.User))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return text.String(), nil
}

func (g *GeminiClient) Model() string {
	return g.model
}
