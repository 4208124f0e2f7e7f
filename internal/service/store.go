package service

import (
	"context"

	"milestone-dashboard/internal/database"
	"milestone-dashboard/internal/models"
)

// Store: то, что сервису нужно от хранилища. Реализация: *database.Store.
type Store interface {
	ListProjects(ctx context.Context, f database.Filter) ([]models.UserProject, error)
	GetProject(ctx context.Context, id string) (models.UserProject, error)
	UpsertProject(ctx context.Context, p models.UserProject) error
	SoftDeleteProject(ctx context.Context, id string) error

	ListDepartments(ctx context.Context, f database.Filter) ([]models.Department, error)
	UpsertDepartment(ctx context.Context, d models.Department) error
	SoftDeleteDepartment(ctx context.Context, id string) error

	ListTeams(ctx context.Context, f database.Filter) ([]models.Team, error)
	UpsertTeam(ctx context.Context, t models.Team) error
	SoftDeleteTeam(ctx context.Context, id string) error

	GetConfig(ctx context.Context) (models.PageConfig, error)
	SaveConfig(ctx context.Context, cfg models.PageConfig) error

	ReplaceAll(ctx context.Context, data models.ProjectData) error

	CreateAuditLog(ctx context.Context, entry models.AuditLog) error
	ListAuditLogs(ctx context.Context, limit int) ([]models.AuditLog, error)

	Ping(ctx context.Context) error
}

var _ Store = (*database.Store)(nil)
