package service

import (
	"context"
	"fmt"
	"strings"

	"milestone-dashboard/internal/models"
	"milestone-dashboard/internal/reconcile"
	"milestone-dashboard/internal/state"

	"go.uber.org/zap"
)

// ReplaceAll перезаписывает весь дашборд одной транзакцией хранилища.
// Записи, которых нет в data, помечаются удалёнными. Без Config остаётся
// текущий конфиг, а новый шаблон сводится с проектами, как при UpdateTemplate.
func (s *Service) ReplaceAll(ctx context.Context, in models.ProjectData, userID string) (models.ProjectData, error) {
	var saved models.ProjectData
	err := s.state.Apply(ctx, func(data *models.ProjectData) (state.Commit, error) {
		next, err := s.normalizeAll(data, in)
		if err != nil {
			return nil, err
		}
		full := next.Clone()
		*data = models.ProjectData{
			Departments:  models.ActiveDepartments(next.Departments),
			Teams:        models.ActiveTeams(next.Teams),
			UserProjects: models.ActiveProjects(next.UserProjects),
			Config:       next.Config,
		}
		saved = data.Clone()

		return func(ctx context.Context) error {
			return s.call(ctx, "replace_all", func(ctx context.Context) error {
				return s.store.ReplaceAll(ctx, full)
			})
		}, nil
	})
	if err != nil {
		return models.ProjectData{}, err
	}
	s.audit(ctx, userID, "dashboard", models.MainConfigID, "replace_all",
		fmt.Sprintf("departments=%d teams=%d projects=%d",
			len(saved.Departments), len(saved.Teams), len(saved.UserProjects)))
	return saved, nil
}

func (s *Service) normalizeAll(current *models.ProjectData, in models.ProjectData) (models.ProjectData, error) {
	next := models.ProjectData{
		Departments:  []models.Department{},
		Teams:        []models.Team{},
		UserProjects: []models.UserProject{},
	}

	seen := map[string]struct{}{}
	for _, d := range in.Departments {
		d.ID, d.Name = strings.TrimSpace(d.ID), strings.TrimSpace(d.Name)
		if d.ID == "" || d.Name == "" {
			return next, validationf("department id and name are required")
		}
		if _, dup := seen[d.ID]; dup {
			return next, validationf("duplicate department %q", d.ID)
		}
		seen[d.ID] = struct{}{}
		if d.Status == "" {
			d.Status = models.StatusActive
		}
		next.Departments = append(next.Departments, d)
	}

	seen = map[string]struct{}{}
	for _, t := range in.Teams {
		t.ID, t.Name = strings.TrimSpace(t.ID), strings.TrimSpace(t.Name)
		if t.ID == "" || t.Name == "" {
			return next, validationf("team id and name are required")
		}
		if _, dup := seen[t.ID]; dup {
			return next, validationf("duplicate team %q", t.ID)
		}
		seen[t.ID] = struct{}{}
		if t.Status == "" {
			t.Status = models.StatusActive
		}
		next.Teams = append(next.Teams, t)
	}

	if in.Config != nil {
		cfg := in.Config.Clone()
		cfg.ID = models.MainConfigID
		template, err := reconcile.NormalizeTemplate(cfg.Template(), s.newTemplateID)
		if err != nil {
			return next, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		cfg.DefaultMilestones = template
		next.Config = &cfg
	} else if current.Config != nil {
		cfg := current.Config.Clone()
		next.Config = &cfg
	} else {
		cfg := models.DefaultPageConfig()
		next.Config = &cfg
	}

	seen = map[string]struct{}{}
	for _, p := range in.UserProjects {
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			p.ID = s.newProjectID()
		}
		if _, dup := seen[p.ID]; dup {
			return next, validationf("duplicate project %q", p.ID)
		}
		seen[p.ID] = struct{}{}
		if p.Status == "" {
			p.Status = models.StatusActive
		}
		milestones, err := s.normalizeMilestones(p.Milestones)
		if err != nil {
			return next, fmt.Errorf("project %q: %w", p.ID, err)
		}
		p.Milestones = milestones
		if p.Status.Active() {
			if err := s.resolveRefs(&next, &p); err != nil {
				return next, err
			}
		}
		next.UserProjects = append(next.UserProjects, p)
	}

	// новый шаблон доходит до проектов так же, как через UpdateTemplate;
	// уже сведённые клиентом проекты повторное применение не меняет
	if in.Config != nil {
		res := reconcile.ApplyTemplateDiff(current.Template(), next.Config.Template(), next.UserProjects, s.newMilestoneID)
		next.UserProjects = res.Projects
		if len(res.Changed) > 0 {
			s.log.Info("template reconciled during replace",
				zap.Int("changed", len(res.Changed)),
				zap.Int("renamed", len(res.Diff.Renamed)),
			)
		}
	}

	return next, nil
}
