package server

import (
	"milestone-dashboard/internal/config"
	"milestone-dashboard/internal/handlers"
	"milestone-dashboard/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func NewRouter(cfg *config.Config, h *handlers.Handler, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log.Named("http")))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: 12 * 60 * 60, HttpOnly: true})
	r.Use(sessions.Sessions("dashboard_session", store))

	r.Use(middleware.InjectEditMode())

	// ДАШБОРД
	r.GET("/projects", h.GetProjects)
	r.PUT("/projects", h.ReplaceProjects)
	r.GET("/progress", h.GetProgress)

	// ПРОЕКТЫ И ВЕХИ
	r.POST("/projects", h.CreateProject)
	r.PUT("/projects/:id", h.UpdateProject)
	r.DELETE("/projects/:id", h.DeleteProject)
	r.PATCH("/projects/:id/milestones/:milestoneId", h.ToggleMilestone)
	r.POST("/projects/:id/template-milestones/:templateId/toggle", h.ToggleTemplateMilestone)

	// КОНФИГ И ШАБЛОН
	r.GET("/config", h.GetConfig)
	r.PUT("/config", h.UpdateConfig)
	r.GET("/config/milestones", h.GetTemplate)
	r.PUT("/config/milestones", h.UpdateTemplate)

	// ОТДЕЛЫ И КОМАНДЫ
	r.GET("/departments", h.ListDepartments)
	r.POST("/departments", h.CreateDepartment)
	r.PUT("/departments/:id", h.UpdateDepartment)
	r.DELETE("/departments/:id", h.DeleteDepartment)

	r.GET("/teams", h.ListTeams)
	r.POST("/teams", h.CreateTeam)
	r.PUT("/teams/:id", h.UpdateTeam)
	r.DELETE("/teams/:id", h.DeleteTeam)

	// РЕЖИМ РЕДАКТИРОВАНИЯ
	r.GET("/edit-mode", h.GetEditMode)
	r.POST("/edit-mode", h.EnterEditMode)
	r.DELETE("/edit-mode", h.ExitEditMode)

	// АУДИТ
	r.GET("/audit", h.ListAuditLogs)

	// ПРОВЕРКИ И МЕТРИКИ
	r.GET("/health", h.Health)
	r.GET("/readyz", h.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
