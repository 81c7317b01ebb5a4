package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	Port     string
	Provider string
	OpenAI   OpenAIConfig
	Gemini   GeminiConfig
	Ollama   OllamaConfig
	OTel     OTelConfig

	RequestTimeout time.Duration
}

type OpenAIConfig struct {
	APIKey           string
	BaseURL          string
	Model            string
	StructuredOutput bool
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OllamaConfig struct {
	Host  string
	Model string
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
}

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
	ProviderDemo   = "demo"
)

// Load reads configuration from the environment, loading .env first in development.
// A missing API key is not an error here: the endpoint reports it per request.
func Load() (Config, error) {
	if getEnv("IDEA_ENV", "development") == "development" {
		_ = godotenv.Load(".env")
	}

	cfg := Config{
		Env:      getEnv("IDEA_ENV", "development"),
		Port:     getEnv("PORT", "8080"),
		Provider: getEnv("IDEA_LLM_PROVIDER", ProviderOpenAI),
		OpenAI: OpenAIConfig{
			APIKey:           getEnv("OPENAI_API_KEY", ""),
			BaseURL:          getEnv("OPENAI_BASE_URL", ""),
			Model:            getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			StructuredOutput: getEnvBool("OPENAI_STRUCTURED_OUTPUT", true),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash-lite"),
		},
		Ollama: OllamaConfig{
			Host:  getEnv("OLLAMA_HOST", "http://127.0.0.1:11434"),
			Model: getEnv("OLLAMA_MODEL", "gemma3:latest"),
		},
		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "idea-generator"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
		},
		RequestTimeout: getEnvDuration("IDEA_REQUEST_TIMEOUT", 30*time.Second),
	}

	switch cfg.Provider {
	case ProviderOpenAI, ProviderGemini, ProviderOllama, ProviderDemo:
	default:
		return Config{}, fmt.Errorf("IDEA_LLM_PROVIDER %q is not supported (openai, gemini, ollama, demo)", cfg.Provider)
	}

	if cfg.RequestTimeout <= 0 {
		return Config{}, fmt.Errorf("IDEA_REQUEST_TIMEOUT must be positive")
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Credential returns the API key of the selected provider and the variable it
// is read from. Providers that need no key return an empty variable name.
func (c Config) Credential() (key, env string) {
	switch c.Provider {
	case ProviderOpenAI:
		return c.OpenAI.APIKey, "OPENAI_API_KEY"
	case ProviderGemini:
		return c.Gemini.APIKey, "GEMINI_API_KEY"
	}
	return "", ""
}

// Model returns the model identifier of the selected provider.
func (c Config) Model() string {
	switch c.Provider {
	case ProviderOpenAI:
		return c.OpenAI.Model
	case ProviderGemini:
		return c.Gemini.Model
	case ProviderOllama:
		return c.Ollama.Model
	}
	return "catalog"
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
