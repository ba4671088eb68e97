// internal/server/router.go

// Package server wires the HTTP surface: chat endpoint, health, debug,
// metrics, and the middleware stack.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tourism-chatbot/internal/chatbot"
	"tourism-chatbot/internal/common/logger"
)

type Options struct {
	Chat        *chatbot.Handler
	Logger      logger.Logger
	ServiceName string
	Environment string
	Collections []string
}

func New(opts Options) *gin.Engine {
	if opts.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(Recovery(opts.Logger))
	router.Use(RequestLogger(opts.Logger))
	router.Use(cors.Default())

	router.POST("/chatbot", opts.Chat.HandleChat)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   opts.ServiceName,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ready",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	router.GET("/debug/directus", opts.Chat.HandleDebugDirectus(opts.Environment, opts.Collections))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not found",
			"message": fmt.Sprintf("Route %s %s does not exist", c.Request.Method, c.Request.URL.Path),
		})
	})

	return router
}
