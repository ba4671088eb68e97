// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"tourism-chatbot/internal/chatbot"
	"tourism-chatbot/internal/common/config"
	commonhttp "tourism-chatbot/internal/common/http"
	"tourism-chatbot/internal/common/logger"
	"tourism-chatbot/internal/common/observability"
	"tourism-chatbot/internal/directus"
	"tourism-chatbot/internal/llm"
	"tourism-chatbot/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	httpClient := commonhttp.NewClient(time.Duration(cfg.Directus.Timeout) * time.Millisecond)
	directusClient := directus.NewClient(cfg.Directus.BaseURL, cfg.Directus.Token, httpClient, log)
	aggregator := directus.NewAggregator(
		directusClient,
		cfg.Directus.CollectionList(),
		cfg.Chat.IncludeUnfilteredContext,
		log,
	)

	llmClient, err := llm.NewClient(cfg.LLM, log)
	if err != nil {
		zapLog.Fatal("failed to create LLM client", zap.Error(err))
	}

	chatHandler := chatbot.NewHandler(aggregator, llmClient, cfg.Chat.MaxPromptTokens, log, obs)

	router := server.New(server.Options{
		Chat:        chatHandler,
		Logger:      log,
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Environment,
		Collections: cfg.Directus.CollectionList(),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		zapLog.Info("server listening",
			zap.Int("port", cfg.Server.Port),
			zap.String("environment", cfg.App.Environment),
			zap.Strings("collections", cfg.Directus.CollectionList()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error during shutdown", zap.Error(err))
	}

	zapLog.Info("Server stopped gracefully")
}
