// internal/llm/client.go

// Package llm adapts the text-completion provider behind a single Generate
// call. All provider-error classification happens here, at the boundary.
package llm

import (
	"context"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"tourism-chatbot/internal/common/config"
	cerrors "tourism-chatbot/internal/common/errors"
	"tourism-chatbot/internal/common/logger"
)

// Client wraps an OpenAI-compatible completion model.
type Client struct {
	model       llms.Model
	maxTokens   int
	temperature float64
	timeout     time.Duration
	logger      logger.Logger
}

func NewClient(cfg config.LLMConfig, log logger.Logger) (*Client, error) {
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, cerrors.NewAuthConfigError(err)
	}

	return &Client{
		model:       model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		timeout:     time.Duration(cfg.Timeout) * time.Millisecond,
		logger: log.With(map[string]interface{}{
			"component": "llm",
			"model":     cfg.Model,
		}),
	}, nil
}

// Generate sends the assembled prompt to the provider and returns the
// generated text verbatim. Failures come back as classified ChatErrors.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	callOpts := []llms.CallOption{}
	if c.maxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(c.maxTokens))
	}
	if c.temperature > 0 {
		callOpts = append(callOpts, llms.WithTemperature(c.temperature))
	}

	start := time.Now()
	answer, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt, callOpts...)
	if err != nil {
		classified := classifyProviderError(err)
		c.logger.Error("generation failed", map[string]interface{}{
			"kind":  string(classified.Kind),
			"error": err.Error(),
		})
		return "", classified
	}

	c.logger.Info("generation completed", map[string]interface{}{
		"durationMs": time.Since(start).Milliseconds(),
		"answerLen":  len(answer),
	})
	return answer, nil
}

// classifyProviderError maps a raw provider failure into the closed kind
// set. Message inspection is confined to this one function.
func classifyProviderError(err error) *cerrors.ChatError {
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "api key") ||
		strings.Contains(msg, "unauthorized") ||
		strings.Contains(msg, "invalid authentication") ||
		strings.Contains(msg, "401"):
		return cerrors.NewAuthConfigError(err)
	case strings.Contains(msg, "quota") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "429"):
		return cerrors.NewRateLimitedError(err)
	default:
		return cerrors.NewGenerationError(err)
	}
}
