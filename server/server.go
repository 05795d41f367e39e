// Package server exposes the game over HTTP for the web client. Handlers
// are stateless: the client carries the full game state and chat history in
// each request, and saves go through the save store.
package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Acolyte-Luu/jp-mud/save"
	"github.com/Acolyte-Luu/jp-mud/turnlog"
	"github.com/Acolyte-Luu/jp-mud/world"
)

// LLM is the slice of the language model client the server needs.
type LLM interface {
	GenerateWorld(ctx context.Context, prompt string) (world.Raw, error)
	Narrate(ctx context.Context, input, scene string) (string, error)
	ValidateJapanese(ctx context.Context, text string) (bool, string)
}

// Server wires the engine, the save store, and the model client into a gin
// router. Turns may be nil to disable turn logging.
type Server struct {
	store *save.Store
	llm   LLM
	turns *turnlog.Logger
}

// New builds a server around its collaborators.
func New(store *save.Store, model LLM, turns *turnlog.Logger) *Server {
	return &Server{store: store, llm: model, turns: turns}
}

// Router returns the configured gin engine.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	api := router.Group("/api")
	{
		api.POST("/generate-world", s.generateWorld)
		api.POST("/process-input", s.processInput)
		api.POST("/validate-japanese", s.validateJapanese)
		api.POST("/save-state", s.saveState)
		api.POST("/load-state", s.loadState)
		api.GET("/saved-games", s.savedGames)
		api.GET("/commands", s.commands)
	}

	return router
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start),
		}
		if status >= 500 {
			slog.Error("request failed", attrs...)
		} else {
			slog.Info("request", attrs...)
		}
	}
}
