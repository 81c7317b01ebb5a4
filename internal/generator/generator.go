package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/BerylCAtieno/business-idea-generator/internal/llm"
	"github.com/BerylCAtieno/business-idea-generator/internal/logger"
	"github.com/BerylCAtieno/business-idea-generator/internal/models"
)

const (
	DefaultTemperature = 0.7
	DefaultTimeout     = 30 * time.Second
)

type Config struct {
	// APIKeyEnv names the variable the key comes from. Empty means the
	// provider needs no credential.
	APIKeyEnv string
	APIKey    string
	Provider  string
	Timeout   time.Duration
}

type Result struct {
	Idea    models.BusinessIdea
	Outcome Outcome
}

type Service struct {
	cfg       Config
	completer llm.Completer
	recorder  OutcomeRecorder
}

type Option func(*Service)

func WithRecorder(r OutcomeRecorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

func New(cfg Config, completer llm.Completer, opts ...Option) *Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Provider == "" {
		cfg.Provider = "openai"
	}

	s := &Service{
		cfg:       cfg,
		completer: completer,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.recorder == nil {
		s.recorder = NewOTelRecorder(nil)
	}
	return s
}

// Generate asks the provider for one idea. A reply that is not a JSON idea
// is not an error: it yields the fallback idea with OutcomeFallback.
func (s *Service) Generate(ctx context.Context, req models.IdeaRequest) (Result, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Provider: s.cfg.Provider, Component: "generator"})

	if s.cfg.APIKeyEnv != "" && s.cfg.APIKey == "" {
		slog.ErrorContext(ctx, "provider credential missing", "variable", s.cfg.APIKeyEnv)
		return Result{}, &ConfigurationError{Variable: s.cfg.APIKeyEnv}
	}

	sc := logger.StartSpan(ctx, "generator.generate")
	defer sc.End()
	ctx = sc.Context()
	sc.Span().SetAttributes(
		attribute.String("llm.provider", s.cfg.Provider),
		attribute.String("llm.model", s.completer.Model()),
		attribute.String("idea.business_model", string(req.BusinessModel)),
	)

	prompt := BuildPrompt(req)

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	start := time.Now()
	raw, err := s.completer.Complete(callCtx, llm.Completion{
		System:      prompt.System,
		User:        prompt.User,
		Temperature: DefaultTemperature,
		Request:     req,
	})
	if err != nil {
		genErr := &GenerationError{Provider: s.cfg.Provider, Err: err}
		sc.RecordError(genErr)
		slog.ErrorContext(ctx, "idea generation failed",
			"error", err,
			"timeout", genErr.Timeout(),
			"duration_ms", time.Since(start).Milliseconds())
		return Result{}, genErr
	}

	raw = strings.TrimSpace(raw)

	idea, err := ParseIdea(raw)
	if err != nil {
		slog.WarnContext(ctx, "failed to parse idea output, using fallback",
			"error", err,
			"raw", logger.Truncate(raw, 2000))
		s.record(ctx, sc, OutcomeFallback)
		return Result{Idea: models.FallbackIdea(), Outcome: OutcomeFallback}, nil
	}

	slog.InfoContext(ctx, "idea generated",
		"name", idea.Name,
		"duration_ms", time.Since(start).Milliseconds())
	s.record(ctx, sc, OutcomeGenerated)
	return Result{Idea: idea, Outcome: OutcomeGenerated}, nil
}

func (s *Service) record(ctx context.Context, sc *logger.SpanContext, outcome Outcome) {
	sc.Span().SetAttributes(attribute.String("idea.outcome", string(outcome)))
	s.recorder.Record(ctx, outcome)
}

// ParseIdea decodes a provider reply. The reply must be a single JSON object
// whose fields are strings; field presence is not checked. Keys match the
// schema names exactly, so "NAME" or "Name" never stands in for "name".
func ParseIdea(raw string) (models.BusinessIdea, error) {
	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return models.BusinessIdea{}, &MalformedOutputError{Raw: raw, Err: errors.New("reply is not a JSON object")}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return models.BusinessIdea{}, &MalformedOutputError{Raw: raw, Err: err}
	}

	exact := make(map[string]json.RawMessage, len(models.SchemaFields))
	for _, key := range models.SchemaFields {
		if v, ok := fields[key]; ok {
			exact[key] = v
		}
	}
	data, err := json.Marshal(exact)
	if err != nil {
		return models.BusinessIdea{}, &MalformedOutputError{Raw: raw, Err: err}
	}

	var idea models.BusinessIdea
	if err := json.Unmarshal(data, &idea); err != nil {
		return models.BusinessIdea{}, &MalformedOutputError{Raw: raw, Err: err}
	}
	return idea, nil
}
