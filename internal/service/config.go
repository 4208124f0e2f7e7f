package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"milestone-dashboard/internal/metrics"
	"milestone-dashboard/internal/models"
	"milestone-dashboard/internal/reconcile"
	"milestone-dashboard/internal/state"

	"go.uber.org/zap"
)

// Titles: заголовки страницы. Пустое поле оставляет текущее значение.
type Titles struct {
	ProjectName             string `json:"projectName"`
	CompanyProgressTitle    string `json:"companyProgressTitle"`
	DepartmentProgressTitle string `json:"departmentProgressTitle"`
	TeamProgressTitle       string `json:"teamProgressTitle"`
}

// TemplateReport: что правка шаблона сделала с проектами.
type TemplateReport struct {
	Template  []models.Milestone `json:"template"`
	Diff      reconcile.Diff     `json:"diff"`
	Changed   []string           `json:"changed"`
	Persisted []string           `json:"persisted"`
	Failed    []string           `json:"failed"`
}

func (s *Service) Config(ctx context.Context) (models.PageConfig, error) {
	data, err := s.state.Snapshot(ctx)
	if err != nil {
		return models.PageConfig{}, err
	}
	if data.Config == nil {
		return models.DefaultPageConfig(), nil
	}
	return *data.Config, nil
}

func (s *Service) Template(ctx context.Context) ([]models.Milestone, error) {
	cfg, err := s.Config(ctx)
	if err != nil {
		return nil, err
	}
	return cfg.Template(), nil
}

func setIfNotEmpty(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func (s *Service) UpdateTitles(ctx context.Context, t Titles, userID string) (models.PageConfig, error) {
	var saved models.PageConfig
	err := s.state.Apply(ctx, func(data *models.ProjectData) (state.Commit, error) {
		cfg := models.DefaultPageConfig()
		if data.Config != nil {
			cfg = data.Config.Clone()
		}
		setIfNotEmpty(&cfg.ProjectName, t.ProjectName)
		setIfNotEmpty(&cfg.CompanyProgressTitle, t.CompanyProgressTitle)
		setIfNotEmpty(&cfg.DepartmentProgressTitle, t.DepartmentProgressTitle)
		setIfNotEmpty(&cfg.TeamProgressTitle, t.TeamProgressTitle)

		data.Config = &cfg
		saved = cfg
		return func(ctx context.Context) error {
			return s.call(ctx, "save_config", func(ctx context.Context) error {
				return s.store.SaveConfig(ctx, cfg)
			})
		}, nil
	})
	if err != nil {
		return models.PageConfig{}, err
	}
	s.audit(ctx, userID, "config", models.MainConfigID, "update_titles", "")
	return saved, nil
}

// UpdateTemplate заменяет шаблон вех и сводит с ним все активные проекты.
// Сначала пишутся изменённые проекты, по строке на каждый, шаблон сохраняется
// только если записались все. Неудачную правку можно просто отправить снова.
func (s *Service) UpdateTemplate(ctx context.Context, template []models.Milestone, userID string) (TemplateReport, error) {
	report := TemplateReport{Persisted: []string{}, Failed: []string{}}

	err := s.state.Apply(ctx, func(data *models.ProjectData) (state.Commit, error) {
		newT, err := reconcile.NormalizeTemplate(template, s.newTemplateID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}

		cfg := models.DefaultPageConfig()
		if data.Config != nil {
			cfg = data.Config.Clone()
		}
		res := reconcile.ApplyTemplateDiff(cfg.Template(), newT, data.UserProjects, s.newMilestoneID)

		changed := make([]models.UserProject, 0, len(res.Changed))
		for _, id := range res.Changed {
			for _, p := range res.Projects {
				if p.ID == id {
					changed = append(changed, p)
					break
				}
			}
		}

		cfg.DefaultMilestones = newT
		data.UserProjects = res.Projects
		data.Config = &cfg

		report.Template = newT
		report.Diff = res.Diff
		report.Changed = res.Changed

		return func(ctx context.Context) error {
			return s.commitTemplate(ctx, cfg, changed, &report)
		}, nil
	})
	if err != nil {
		return report, err
	}

	s.audit(ctx, userID, "template", models.MainConfigID, "update",
		fmt.Sprintf("added=%d removed=%d renamed=%d projects=%d",
			len(report.Diff.Added), len(report.Diff.Removed), len(report.Diff.Renamed), len(report.Changed)))
	return report, nil
}

func (s *Service) commitTemplate(ctx context.Context, cfg models.PageConfig, changed []models.UserProject, report *TemplateReport) error {
	var errs []error
	for _, p := range changed {
		err := s.call(ctx, "upsert_project", func(ctx context.Context) error {
			return s.store.UpsertProject(ctx, p)
		})
		if err != nil {
			report.Failed = append(report.Failed, p.ID)
			errs = append(errs, err)
			continue
		}
		report.Persisted = append(report.Persisted, p.ID)
	}
	metrics.AddReconciled("persisted", len(report.Persisted))
	metrics.AddReconciled("failed", len(report.Failed))

	if len(errs) > 0 {
		s.log.Error("template reconcile partially failed",
			zap.Strings("persisted", report.Persisted),
			zap.Strings("failed", report.Failed),
		)
		return &ReconcileError{
			Persisted: report.Persisted,
			Failed:    report.Failed,
			Err:       errors.Join(errs...),
		}
	}

	return s.call(ctx, "save_config", func(ctx context.Context) error {
		return s.store.SaveConfig(ctx, cfg)
	})
}
