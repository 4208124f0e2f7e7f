package handlers

import (
	"net/http"

	"milestone-dashboard/internal/models"
	"milestone-dashboard/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//
// ДАШБОРД ЦЕЛИКОМ
//

// GetProjects отдаёт отделы, команды, проекты и конфиг. При ошибке UI
// ждёт хотя бы пустой список отделов.
func (h *Handler) GetProjects(c *gin.Context) {
	data, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		h.log.Error("load dashboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"departments": []models.Department{}})
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *Handler) ReplaceProjects(c *gin.Context) {
	var data models.ProjectData
	if err := c.ShouldBindJSON(&data); err != nil {
		badRequest(c, err)
		return
	}
	saved, err := h.svc.ReplaceAll(c.Request.Context(), data, userID(c, ""))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *Handler) GetProgress(c *gin.Context) {
	d, err := h.svc.Progress(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

//
// ПРОЕКТЫ
//

func (h *Handler) CreateProject(c *gin.Context) {
	var in service.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	in.UserID = userID(c, in.UserID)

	p, err := h.svc.CreateProject(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdateProject(c *gin.Context) {
	var in service.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	in.UserID = userID(c, in.UserID)

	p, err := h.svc.UpdateProject(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) DeleteProject(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.DeleteProject(c.Request.Context(), id, userID(c, "")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": models.StatusDeleted})
}

//
// ВЕХИ
//

type toggleRequest struct {
	Completed *bool  `json:"completed"`
	UserID    string `json:"userId"`
}

// ToggleMilestone: completed из тела ставится как есть, без него веха
// переключается.
func (h *Handler) ToggleMilestone(c *gin.Context) {
	var req toggleRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		badRequest(c, err)
		return
	}

	p, err := h.svc.ToggleMilestone(c.Request.Context(),
		c.Param("id"), c.Param("milestoneId"), req.Completed, userID(c, req.UserID))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) ToggleTemplateMilestone(c *gin.Context) {
	var req toggleRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		badRequest(c, err)
		return
	}

	p, err := h.svc.ToggleTemplateMilestone(c.Request.Context(),
		c.Param("id"), c.Param("templateId"), userID(c, req.UserID))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
