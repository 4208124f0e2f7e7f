package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListAuditLogs(c *gin.Context) {
	limit := 200
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	logs, err := h.svc.AuditLogs(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
