package a2a

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BerylCAtieno/business-idea-generator/internal/handler"
	"github.com/BerylCAtieno/business-idea-generator/internal/logger"
	"github.com/BerylCAtieno/business-idea-generator/internal/models"
)

//go:embed agent.json
var agentCard []byte

type A2AHandler struct {
	generator handler.IdeaGenerator
}

func NewA2AHandler(gen handler.IdeaGenerator) *A2AHandler {
	return &A2AHandler{generator: gen}
}

// ServeAgentCard serves the embedded agent card.
func (h *A2AHandler) ServeAgentCard(c *gin.Context) {
	c.Data(http.StatusOK, "application/json", agentCard)
}

// HandleIdeas processes JSON-RPC message/send and agent/task calls.
func (h *A2AHandler) HandleIdeas(c *gin.Context) {
	ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{Component: "a2a"})

	var rpcReq JSONRPCRequest
	if err := c.ShouldBindJSON(&rpcReq); err != nil {
		slog.WarnContext(ctx, "failed to decode JSON-RPC request", "error", err)
		h.sendErrorResponse(c, nil, "Invalid request format", CodeParseError)
		return
	}

	if rpcReq.JSONRPC != "2.0" {
		slog.WarnContext(ctx, "invalid JSON-RPC version", "version", rpcReq.JSONRPC)
		h.sendErrorResponse(c, rpcReq.ID, "Invalid JSON-RPC version", CodeInvalidRequest)
		return
	}

	switch rpcReq.Method {
	case "message/send", "agent/task":
	default:
		h.sendErrorResponse(c, rpcReq.ID, fmt.Sprintf("Method not found: %s", rpcReq.Method), CodeMethodNotFound)
		return
	}

	var params MessageParams
	if err := json.Unmarshal(rpcReq.Params, &params); err != nil {
		slog.WarnContext(ctx, "invalid message params", "error", err)
		h.sendErrorResponse(c, rpcReq.ID, "Invalid parameters", CodeInvalidParams)
		return
	}

	taskID := params.Message.TaskID
	if taskID == "" {
		taskID = uuid.NewString()
	}

	req, err := ExtractIdeaRequest(params.Message)
	if err == nil {
		err = req.Validate()
	}
	if err != nil {
		slog.InfoContext(ctx, "idea request needs more input", "error", err)
		h.sendSuccessResponse(c, rpcReq.ID, h.createTaskResult(taskID, StateInputRequired, err.Error()))
		return
	}

	result, err := h.generator.Generate(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "idea generation failed", "error", err)
		h.sendSuccessResponse(c, rpcReq.ID, h.createTaskResult(taskID, StateFailed,
			fmt.Sprintf("Failed to generate a business idea: %v", err)))
		return
	}

	task, err := h.createSuccessTaskResult(taskID, result.Idea)
	if err != nil {
		h.sendSuccessResponse(c, rpcReq.ID, h.createTaskResult(taskID, StateFailed, err.Error()))
		return
	}
	h.sendSuccessResponse(c, rpcReq.ID, task)
}

var errNoIdeaRequest = errors.New("please send skills, interests, budget, riskTolerance and businessModel")

// ExtractIdeaRequest reads the request from the first data part, or else from
// "key: value" lines across the text parts. Unset enums keep the form defaults.
func ExtractIdeaRequest(msg Message) (models.IdeaRequest, error) {
	req := models.DefaultIdeaRequest()

	for _, part := range msg.Parts {
		if part.Kind == "data" && len(part.Data) > 0 {
			if err := json.Unmarshal(part.Data, &req); err != nil {
				return models.IdeaRequest{}, fmt.Errorf("data part is not an idea request: %w", err)
			}
			return req, nil
		}
	}

	found := false
	for _, part := range msg.Parts {
		if part.Kind != "text" {
			continue
		}
		for _, line := range strings.Split(part.Text, "\n") {
			key, value, ok := strings.Cut(line, ":")
			if !ok {
				continue
			}
			value = strings.TrimSpace(value)
			switch normalizeKey(key) {
			case "skills":
				req.Skills = value
			case "interests":
				req.Interests = value
			case "budget":
				req.Budget = value
			case "risktolerance", "risk":
				req.RiskTolerance = models.RiskTolerance(value)
			case "businessmodel", "model":
				req.BusinessModel = models.BusinessModel(value)
			default:
				continue
			}
			found = true
		}
	}

	if !found {
		return models.IdeaRequest{}, errNoIdeaRequest
	}
	return req, nil
}

func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)
}

func (h *A2AHandler) createSuccessTaskResult(taskID string, idea models.BusinessIdea) (*TaskResult, error) {
	text := idea.Markdown()
	data, err := DataPart(idea)
	if err != nil {
		return nil, fmt.Errorf("encode idea: %w", err)
	}

	return &TaskResult{
		ID:   taskID,
		Kind: "task",
		Status: TaskStatus{
			State:     StateCompleted,
			Timestamp: Timestamp(),
			Message: &Message{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.NewString(),
				TaskID:    taskID,
				Parts:     []MessagePart{TextPart(text)},
			},
		},
		Artifacts: []Artifact{
			{
				ArtifactID: uuid.NewString(),
				Name:       "Business Idea",
				Parts:      []MessagePart{TextPart(text), data},
			},
		},
	}, nil
}

func (h *A2AHandler) createTaskResult(taskID, state, text string) *TaskResult {
	return &TaskResult{
		ID:   taskID,
		Kind: "task",
		Status: TaskStatus{
			State:     state,
			Timestamp: Timestamp(),
			Message: &Message{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.NewString(),
				TaskID:    taskID,
				Parts:     []MessagePart{TextPart(text)},
			},
		},
	}
}

func (h *A2AHandler) sendSuccessResponse(c *gin.Context, id json.RawMessage, result *TaskResult) {
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

// JSON-RPC errors are sent with 200 OK.
func (h *A2AHandler) sendErrorResponse(c *gin.Context, id json.RawMessage, message string, code int) {
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &JSONRPCError{Code: code, Message: message},
	})
}
