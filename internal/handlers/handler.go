package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"milestone-dashboard/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler: HTTP-слой поверх service.Service.
type Handler struct {
	svc      *service.Service
	editHash []byte
	log      *zap.Logger
}

// New принимает bcrypt-хэш пароля режима редактирования.
func New(svc *service.Service, editPasswordHash []byte, log *zap.Logger) *Handler {
	return &Handler{svc: svc, editHash: editPasswordHash, log: log}
}

// respondError переводит ошибку сервиса в HTTP-статус.
func (h *Handler) respondError(c *gin.Context, err error) {
	var rerr *service.ReconcileError
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &rerr):
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Не удалось сохранить часть проектов",
			"persisted": rerr.Persisted,
			"failed":    rerr.Failed,
		})
	default:
		h.log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка сервера"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
}

// userID: из тела запроса, иначе из заголовка X-User-Id.
func userID(c *gin.Context, fromBody string) string {
	if v := strings.TrimSpace(fromBody); v != "" {
		return v
	}
	return strings.TrimSpace(c.GetHeader("X-User-Id"))
}

// bindOptionalJSON разбирает тело, если оно есть. Пустое тело допустимо,
// в том числе chunked, где длина заранее неизвестна.
func bindOptionalJSON(c *gin.Context, dst any) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
