package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/business-idea-generator/internal/config"
	"github.com/BerylCAtieno/business-idea-generator/internal/generator"
	"github.com/BerylCAtieno/business-idea-generator/internal/llm"
	"github.com/BerylCAtieno/business-idea-generator/internal/logger"
	"github.com/BerylCAtieno/business-idea-generator/internal/server"
	"github.com/BerylCAtieno/business-idea-generator/internal/telemetry"
)

var upstreamLabels = map[string]string{
	config.ProviderOpenAI: "OpenAI",
	config.ProviderGemini: "Gemini",
	config.ProviderOllama: "Ollama",
	config.ProviderDemo:   "Demo",
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses the OTel provider in production)
	tel, err := telemetry.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if tel != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	apiKey, apiKeyEnv := cfg.Credential()
	if apiKeyEnv != "" && apiKey == "" {
		// Not fatal: every generate request answers 500 until the key is set.
		slog.WarnContext(ctx, "provider credential not set", "variable", apiKeyEnv)
	}

	completer, err := llm.New(ctx, completerConfig(cfg, apiKey))
	if err != nil {
		slog.ErrorContext(ctx, "failed to create llm client", "error", err, "provider", cfg.Provider)
		os.Exit(1)
	}
	if closer, ok := completer.(io.Closer); ok {
		defer closer.Close()
	}

	svc := generator.New(generator.Config{
		APIKeyEnv: apiKeyEnv,
		APIKey:    apiKey,
		Provider:  cfg.Provider,
		Timeout:   cfg.RequestTimeout,
	}, completer)

	routerCfg := server.RouterConfig{UpstreamLabel: upstreamLabels[cfg.Provider]}
	if cfg.OTel.Enabled() {
		routerCfg.ServiceName = cfg.OTel.ServiceName
	}
	router := server.NewRouter(svc, routerCfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Leaves room for a full provider timeout plus the response.
		WriteTimeout: cfg.RequestTimeout + 15*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting",
			"port", cfg.Port,
			"provider", cfg.Provider,
			"model", cfg.Model())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if tel != nil {
		if err := tel.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func completerConfig(cfg config.Config, apiKey string) llm.Config {
	c := llm.Config{
		Provider: cfg.Provider,
		APIKey:   apiKey,
		Model:    cfg.Model(),
	}
	switch cfg.Provider {
	case config.ProviderOpenAI:
		c.BaseURL = cfg.OpenAI.BaseURL
		c.StructuredOutput = cfg.OpenAI.StructuredOutput
	case config.ProviderOllama:
		c.BaseURL = cfg.Ollama.Host
	}
	return c
}
