package database

import (
	"context"

	"milestone-dashboard/internal/models"

	"go.uber.org/zap"
)

// Seed заполняет пустую БД демо-данными: отделы, группы и шаблон вех.
// Если отделы уже есть, ничего не делаем.
func Seed(ctx context.Context, s *Store, log *zap.Logger) error {
	existing, err := s.ListDepartments(ctx, Filter{IncludeDeleted: true})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	departments := []models.Department{
		{ID: "engineering", Name: "工程部"},
		{ID: "marketing", Name: "市场部"},
	}
	teams := []models.Team{
		{ID: "frontend", Name: "前端组"},
		{ID: "backend", Name: "后端组"},
		{ID: "content", Name: "内容组"},
	}

	for _, d := range departments {
		if err := s.UpsertDepartment(ctx, d); err != nil {
			return err
		}
		log.Info("seeded department", zap.String("id", d.ID))
	}
	for _, t := range teams {
		if err := s.UpsertTeam(ctx, t); err != nil {
			return err
		}
		log.Info("seeded team", zap.String("id", t.ID))
	}

	cfg, err := s.GetConfig(ctx)
	if err != nil {
		return err
	}
	if len(cfg.DefaultMilestones) == 0 {
		cfg.DefaultMilestones = []models.Milestone{
			{ID: "dm-planning", Name: "项目规划"},
			{ID: "dm-design", Name: "UI/UX设计"},
			{ID: "dm-development", Name: "开发阶段"},
			{ID: "dm-testing", Name: "测试阶段"},
			{ID: "dm-deployment", Name: "部署上线"},
		}
	}
	if err := s.SaveConfig(ctx, cfg); err != nil {
		return err
	}
	log.Info("seeded page config", zap.Int("default_milestones", len(cfg.DefaultMilestones)))
	return nil
}
