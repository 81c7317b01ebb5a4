package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/business-idea-generator/internal/generator"
	"github.com/BerylCAtieno/business-idea-generator/internal/models"
)

// IdeaGenerator is the part of generator.Service the handlers use.
type IdeaGenerator interface {
	Generate(ctx context.Context, req models.IdeaRequest) (generator.Result, error)
}

type IdeaHandler struct {
	generator IdeaGenerator
	// upstreamLabel names the provider in the generic failure body.
	upstreamLabel string
}

func NewIdeaHandler(gen IdeaGenerator, upstreamLabel string) *IdeaHandler {
	if upstreamLabel == "" {
		upstreamLabel = "OpenAI"
	}
	return &IdeaHandler{generator: gen, upstreamLabel: upstreamLabel}
}

// Generate serves POST /api/generate-idea. Genuine and fallback ideas are
// both 200 responses.
func (h *IdeaHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.IdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		slog.WarnContext(ctx, "invalid idea request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.generator.Generate(ctx, req)
	if err != nil {
		var cfgErr *generator.ConfigurationError
		if errors.As(err, &cfgErr) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": cfgErr.Error()})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.upstreamLabel + " request failed"})
		return
	}

	c.Header("X-Idea-Outcome", string(result.Outcome))
	c.JSON(http.StatusOK, result.Idea)
}

// MethodNotAllowed answers any verb other than the registered one.
func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method Not Allowed"})
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
