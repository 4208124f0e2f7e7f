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
)

// ProjectInput: поля проекта, которые задаёт клиент.
type ProjectInput struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Owner      string             `json:"owner"`
	Department string             `json:"department"`
	Team       string             `json:"team"`
	Milestones []models.Milestone `json:"milestones"`
	UserID     string             `json:"userId"`
}

func (s *Service) normalizeMilestones(in []models.Milestone) ([]models.Milestone, error) {
	out := make([]models.Milestone, 0, len(in))
	for _, m := range in {
		m.Name = strings.TrimSpace(m.Name)
		if m.Name == "" {
			return nil, validationf("milestone name is empty")
		}
		if m.ID == "" {
			m.ID = s.newMilestoneID()
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *Service) buildProject(data *models.ProjectData, in ProjectInput) (models.UserProject, error) {
	p := models.UserProject{
		ID:         strings.TrimSpace(in.ID),
		Name:       strings.TrimSpace(in.Name),
		Owner:      strings.TrimSpace(in.Owner),
		Department: in.Department,
		Team:       in.Team,
		UserID:     in.UserID,
		Status:     models.StatusActive,
	}
	if p.Name == "" {
		return p, validationf("project name is required")
	}
	if p.Owner == "" {
		return p, validationf("project owner is required")
	}
	milestones, err := s.normalizeMilestones(in.Milestones)
	if err != nil {
		return p, err
	}
	p.Milestones = milestones
	if err := s.resolveRefs(data, &p); err != nil {
		return p, err
	}
	return p, nil
}

// CreateProject добавляет проект и дописывает ему недостающие вехи шаблона.
func (s *Service) CreateProject(ctx context.Context, in ProjectInput) (models.UserProject, error) {
	var created models.UserProject
	err := s.state.Apply(ctx, func(data *models.ProjectData) (state.Commit, error) {
		p, err := s.buildProject(data, in)
		if err != nil {
			return nil, err
		}
		if p.ID == "" {
			p.ID = s.newProjectID()
		} else if data.ProjectIndex(p.ID) >= 0 {
			return nil, validationf("project %q already exists", p.ID)
		}
		p = reconcile.Backfill(p, data.Template(), s.newMilestoneID)

		data.UserProjects = append(data.UserProjects, p)
		created = p
		return func(ctx context.Context) error {
			return s.call(ctx, "upsert_project", func(ctx context.Context) error {
				return s.store.UpsertProject(ctx, p)
			})
		}, nil
	})
	if err != nil {
		return models.UserProject{}, err
	}
	s.audit(ctx, in.UserID, "project", created.ID, "create", "Создан проект "+created.Name)
	return created, nil
}

// UpdateProject заменяет редактируемые поля активного проекта. Если вехи
// не переданы, остаются текущие.
func (s *Service) UpdateProject(ctx context.Context, id string, in ProjectInput) (models.UserProject, error) {
	var updated models.UserProject
	err := s.state.Apply(ctx, func(data *models.ProjectData) (state.Commit, error) {
		idx := data.ProjectIndex(id)
		if idx < 0 {
			return nil, notFoundf("project %q", id)
		}
		current := data.UserProjects[idx]
		if in.Milestones == nil {
			in.Milestones = current.Milestones
		}
		if in.UserID == "" {
			in.UserID = current.UserID
		}
		in.ID = id
		p, err := s.buildProject(data, in)
		if err != nil {
			return nil, err
		}
		p.CreatedAt = current.CreatedAt

		data.UserProjects[idx] = p
		updated = p
		return func(ctx context.Context) error {
			return s.call(ctx, "upsert_project", func(ctx context.Context) error {
				return s.store.UpsertProject(ctx, p)
			})
		}, nil
	})
	if err != nil {
		return models.UserProject{}, err
	}
	s.audit(ctx, in.UserID, "project", id, "update", "Изменён проект "+updated.Name)
	return updated, nil
}

// DeleteProject: мягкое удаление проекта.
func (s *Service) DeleteProject(ctx context.Context, id, userID string) error {
	err := s.state.Apply(ctx, func(data *models.ProjectData) (state.Commit, error) {
		idx := data.ProjectIndex(id)
		if idx < 0 {
			return nil, notFoundf("project %q", id)
		}
		data.UserProjects = append(data.UserProjects[:idx], data.UserProjects[idx+1:]...)
		return func(ctx context.Context) error {
			return s.call(ctx, "delete_project", func(ctx context.Context) error {
				return s.store.SoftDeleteProject(ctx, id)
			})
		}, nil
	})
	if err != nil {
		return err
	}
	s.audit(ctx, userID, "project", id, "delete", "")
	return nil
}

// ToggleMilestone ставит флаг выполнения вехи, а при completed == nil
// переключает его.
func (s *Service) ToggleMilestone(ctx context.Context, projectID, milestoneID string, completed *bool, userID string) (models.UserProject, error) {
	var (
		updated models.UserProject
		m       models.Milestone
	)
	err := s.state.Apply(ctx, func(data *models.ProjectData) (state.Commit, error) {
		idx := data.ProjectIndex(projectID)
		if idx < 0 {
			return nil, notFoundf("project %q", projectID)
		}
		p, toggled, err := reconcile.ToggleMilestone(data.UserProjects[idx], milestoneID, completed)
		if errors.Is(err, reconcile.ErrMilestoneNotFound) {
			return nil, notFoundf("milestone %q in project %q", milestoneID, projectID)
		}
		if err != nil {
			return nil, err
		}
		data.UserProjects[idx] = p
		updated, m = p, toggled
		return func(ctx context.Context) error {
			return s.call(ctx, "upsert_project", func(ctx context.Context) error {
				return s.store.UpsertProject(ctx, p)
			})
		}, nil
	})
	if err != nil {
		return models.UserProject{}, err
	}
	metrics.IncToggle("project")
	s.audit(ctx, userID, "project", projectID, "toggle_milestone",
		fmt.Sprintf("%s: completed=%t", m.Name, m.Completed))
	return updated, nil
}

// ToggleTemplateMilestone переключает веху проекта с именем записи шаблона.
// Если такой вехи нет, она создаётся сразу выполненной.
func (s *Service) ToggleTemplateMilestone(ctx context.Context, projectID, templateID, userID string) (models.UserProject, error) {
	var (
		updated models.UserProject
		m       models.Milestone
	)
	err := s.state.Apply(ctx, func(data *models.ProjectData) (state.Commit, error) {
		idx := data.ProjectIndex(projectID)
		if idx < 0 {
			return nil, notFoundf("project %q", projectID)
		}
		template := data.Template()
		ti := models.FindByID(template, templateID)
		if ti < 0 {
			return nil, notFoundf("template milestone %q", templateID)
		}
		p, toggled := reconcile.ToggleTemplateMilestone(data.UserProjects[idx], template[ti], s.newMilestoneID)
		data.UserProjects[idx] = p
		updated, m = p, toggled
		return func(ctx context.Context) error {
			return s.call(ctx, "upsert_project", func(ctx context.Context) error {
				return s.store.UpsertProject(ctx, p)
			})
		}, nil
	})
	if err != nil {
		return models.UserProject{}, err
	}
	metrics.IncToggle("template")
	s.audit(ctx, userID, "project", projectID, "toggle_template_milestone",
		fmt.Sprintf("%s: completed=%t", m.Name, m.Completed))
	return updated, nil
}
