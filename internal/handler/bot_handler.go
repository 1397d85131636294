package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

const botSecretHeader = "X-Bot-Secret"

type PipelineRunner interface {
	Run(ctx context.Context)
}

// BotHandler exposes the manual trigger for the content pipeline. The
// pass runs in-process and synchronously, gated by a shared secret so
// external cron services can call it.
type BotHandler struct {
	secret string
	runner PipelineRunner
}

func NewBotHandler(secret string, runner PipelineRunner) *BotHandler {
	return &BotHandler{secret: secret, runner: runner}
}

func (h *BotHandler) Trigger(c *gin.Context) {
	if h.secret == "" {
		slog.Error("bot trigger secret not configured")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Trigger not configured"})
		return
	}

	if c.GetHeader(botSecretHeader) != h.secret {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid trigger secret"})
		return
	}

	slog.Info("manual pipeline trigger received")
	h.runner.Run(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "AI bot executed",
	})
}
