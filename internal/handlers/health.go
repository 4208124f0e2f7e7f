package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// Ready отвечает 503, пока база недоступна.
func (h *Handler) Ready(c *gin.Context) {
	if err := h.svc.Ready(c.Request.Context()); err != nil {
		h.log.Warn("readiness check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
