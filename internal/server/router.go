package server

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/BerylCAtieno/business-idea-generator/internal/a2a"
	"github.com/BerylCAtieno/business-idea-generator/internal/handler"
)

type RouterConfig struct {
	// UpstreamLabel names the provider in generic failure bodies.
	UpstreamLabel string
	// ServiceName enables otelgin spans when non-empty.
	ServiceName string
}

func NewRouter(gen handler.IdeaGenerator, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoMethod(handler.MethodNotAllowed)

	// OTel span first so recovery and request logs carry the trace id.
	if cfg.ServiceName != "" {
		router.Use(otelgin.Middleware(cfg.ServiceName))
	}
	router.Use(handler.Recovery())
	router.Use(handler.RequestID())
	router.Use(handler.Logger())

	ideas := handler.NewIdeaHandler(gen, cfg.UpstreamLabel)
	agent := a2a.NewA2AHandler(gen)

	router.GET("/health", handler.Health)
	router.POST("/api/generate-idea", ideas.Generate)

	router.GET("/.well-known/agent.json", agent.ServeAgentCard)
	router.POST("/a2a/ideas", agent.HandleIdeas)

	return router
}
