package handlers

import (
	"net/http"

	"milestone-dashboard/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// Режим редактирования: флаг в cookie-сессии. Это переключатель интерфейса,
// сервер сам правки им не ограничивает.

type editModeRequest struct {
	Password string `json:"password" binding:"required"`
}

func (h *Handler) GetEditMode(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"editMode": middleware.EditMode(c)})
}

func (h *Handler) EnterEditMode(c *gin.Context) {
	var req editModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword(h.editHash, []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Неверный пароль", "editMode": false})
		return
	}

	sess := sessions.Default(c)
	sess.Set(middleware.EditModeKey, true)
	if err := sess.Save(); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"editMode": true})
}

func (h *Handler) ExitEditMode(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	if err := sess.Save(); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"editMode": false})
}
