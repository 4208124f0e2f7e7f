package handlers

import (
	"net/http"

	"milestone-dashboard/internal/models"
	"milestone-dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

type titlesRequest struct {
	service.Titles
	UserID string `json:"userId"`
}

type templateRequest struct {
	Milestones []models.Milestone `json:"milestones" binding:"required"`
	UserID     string             `json:"userId"`
}

func (h *Handler) GetConfig(c *gin.Context) {
	cfg, err := h.svc.Config(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *Handler) UpdateConfig(c *gin.Context) {
	var req titlesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cfg, err := h.svc.UpdateTitles(c.Request.Context(), req.Titles, userID(c, req.UserID))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *Handler) GetTemplate(c *gin.Context) {
	template, err := h.svc.Template(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"milestones": template})
}

// UpdateTemplate сохраняет шаблон и отдаёт отчёт о том, какие проекты
// были переписаны.
func (h *Handler) UpdateTemplate(c *gin.Context) {
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	report, err := h.svc.UpdateTemplate(c.Request.Context(), req.Milestones, userID(c, req.UserID))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
