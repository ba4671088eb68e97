// internal/chatbot/handler.go

// Package chatbot implements the chat request pipeline: retrieve CMS data,
// assemble the prompt, guard its size, call the LLM, respond.
package chatbot

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	cerrors "tourism-chatbot/internal/common/errors"
	"tourism-chatbot/internal/common/logger"
	"tourism-chatbot/internal/common/observability"
	"tourism-chatbot/internal/common/validation"
	"tourism-chatbot/internal/directus"
	"tourism-chatbot/internal/prompt"
)

// DataProvider is the retrieval dependency, satisfied by
// directus.Aggregator.
type DataProvider interface {
	Data(ctx context.Context, question string) (*directus.AggregatedData, error)
	DataCompact(ctx context.Context, question string) (map[string]directus.CollectionResult, error)
}

// Generator is the text-completion dependency, satisfied by llm.Client.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Handler struct {
	data            DataProvider
	generator       Generator
	maxPromptTokens int
	logger          logger.Logger
	obs             *observability.Observability
}

func NewHandler(data DataProvider, generator Generator, maxPromptTokens int, log logger.Logger, obs *observability.Observability) *Handler {
	if maxPromptTokens <= 0 {
		maxPromptTokens = prompt.DefaultMaxTokens
	}
	return &Handler{
		data:            data,
		generator:       generator,
		maxPromptTokens: maxPromptTokens,
		logger: log.With(map[string]interface{}{
			"component": "chatbot",
		}),
		obs: obs,
	}
}

// HandleChat runs one request through the pipeline. Per-request state only;
// every request is independent.
func (h *Handler) HandleChat(c *gin.Context) {
	start := time.Now()
	ctx := c.Request.Context()
	mode := "full"

	respond := func(status int, body interface{}) {
		c.JSON(status, body)
		if h.obs != nil {
			h.obs.RecordRequest(ctx, status, mode, time.Since(start))
		}
	}

	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		respond(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request",
			Message: "Request body must be JSON with a \"question\" field",
		})
		return
	}

	result, err := validation.ValidateChatRequest(body)
	if err != nil || !result.Valid {
		respond(http.StatusBadRequest, ErrorResponse{
			Error:   "Question is required",
			Message: "Provide a non-empty \"question\" string",
		})
		return
	}

	question, _ := body["question"].(string)
	question = strings.TrimSpace(question)
	if question == "" {
		respond(http.StatusBadRequest, ErrorResponse{
			Error:   "Question is required",
			Message: "Provide a non-empty \"question\" string",
		})
		return
	}

	h.logger.Info("processing question", map[string]interface{}{
		"questionLen": len(question),
	})

	// Step 1: full retrieval, falling back to compact on any failure.
	var promptText string
	full, err := h.data.Data(ctx, question)
	if err != nil {
		h.logger.Warn("full retrieval failed, switching to compact mode", map[string]interface{}{
			"error": err.Error(),
		})
		mode = "compact"
	}

	// Step 2: prompt assembly.
	if mode == "full" {
		promptText = prompt.BuildFull(question, full)
	} else {
		compact, cerr := h.data.DataCompact(ctx, question)
		if cerr != nil {
			h.logger.Error("compact retrieval failed", map[string]interface{}{
				"error": cerr.Error(),
			})
			respond(http.StatusInternalServerError, ErrorResponse{
				Error:   "Internal server error",
				Message: "Could not retrieve data for your question",
			})
			return
		}
		promptText = prompt.BuildCompact(question, compact)
	}

	// Step 3: size guard. Oversized prompts force a compact re-fetch and
	// rebuild regardless of which mode produced them.
	if !prompt.ValidateSize(promptText, h.maxPromptTokens) {
		h.logger.Info("prompt over size limit, rebuilding in compact mode", map[string]interface{}{
			"estimatedTokens": prompt.EstimateTokens(promptText),
			"maxTokens":       h.maxPromptTokens,
		})
		compact, cerr := h.data.DataCompact(ctx, question)
		if cerr != nil {
			respond(http.StatusInternalServerError, ErrorResponse{
				Error:   "Internal server error",
				Message: "Could not retrieve data for your question",
			})
			return
		}
		promptText = prompt.BuildCompact(question, compact)
		mode = "compact"
	}

	// Step 4: generation.
	answer, err := h.generator.Generate(ctx, promptText)
	if err != nil {
		switch cerrors.KindOf(err) {
		case cerrors.KindAuthConfig:
			respond(http.StatusInternalServerError, ErrorResponse{
				Error:   "Configuration error",
				Message: "The assistant is not configured correctly. Please try again later.",
			})
		case cerrors.KindRateLimited:
			respond(http.StatusTooManyRequests, ErrorResponse{
				Error:   "Rate limit exceeded",
				Message: "Too many requests right now. Please try again in a moment.",
			})
		default:
			respond(http.StatusInternalServerError, ErrorResponse{
				Error:   "Internal server error",
				Message: "Something went wrong while answering your question.",
			})
		}
		return
	}

	// Step 5: the generated text is returned verbatim.
	respond(http.StatusOK, ChatResponse{Answer: answer})
}

// HandleDebugDirectus exposes compact-mode sample data outside production.
func (h *Handler) HandleDebugDirectus(environment string, collections []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if environment == "production" {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
			return
		}

		sample, err := h.data.DataCompact(c.Request.Context(), c.DefaultQuery("q", "tour"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "Internal server error",
				Message: err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"collections": collections,
			"sample":      sample,
		})
	}
}
