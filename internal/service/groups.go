package service

import (
	"context"
	"strings"

	"milestone-dashboard/internal/models"
	"milestone-dashboard/internal/state"

	"github.com/google/uuid"
)

// GroupInput: тело запроса на создание или переименование отдела/команды.
type GroupInput struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DepartmentID string `json:"departmentId"`
	UserID       string `json:"userId"`
}

func groupID(prefix, id string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return prefix + uuid.NewString()
}

//
// ОТДЕЛЫ
//

func (s *Service) Departments(ctx context.Context) ([]models.Department, error) {
	data, err := s.state.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return data.Departments, nil
}

func departmentIndex(data *models.ProjectData, id string) int {
	for i, d := range data.Departments {
		if d.ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) CreateDepartment(ctx context.Context, in GroupInput) (models.Department, error) {
	var created models.Department
	err := s.state.Apply(ctx, func(data *models.ProjectData) (state.Commit, error) {
		d := models.Department{
			ID:     groupID("dept-", in.ID),
			Name:   strings.TrimSpace(in.Name),
			Status: models.StatusActive,
		}
		if d.Name == "" {
			return nil, validationf("department name is required")
		}
		if departmentIndex(data, d.ID) >= 0 {
			return nil, validationf("department %q already exists", d.ID)
		}
		data.Departments = append(data.Departments, d)
		created = d
		return func(ctx context.Context) error {
			return s.call(ctx, "upsert_department", func(ctx context.Context) error {
				return s.store.UpsertDepartment(ctx, d)
			})
		}, nil
	})
	if err != nil {
		return models.Department{}, err
	}
	s.audit(ctx, in.UserID, "department", created.ID, "create", "Создан отдел "+created.Name)
	return created, nil
}

func (s *Service) RenameDepartment(ctx context.Context, id string, in GroupInput) (models.Department, error) {
	var renamed models.Department
	err := s.state.Apply(ctx, func(data *models.ProjectData) (state.Commit, error) {
		idx := departmentIndex(data, id)
		if idx < 0 {
			return nil, notFoundf("department %q", id)
		}
		name := strings.TrimSpace(in.Name)
		if name == "" {
			return nil, validationf("department name is required")
		}
		d := data.Departments[idx]
		d.Name = name
		data.Departments[idx] = d
		renamed = d
		return func(ctx context.Context) error {
			return s.call(ctx, "upsert_department", func(ctx context.Context) error {
				return s.store.UpsertDepartment(ctx, d)
			})
		}, nil
	})
	if err != nil {
		return models.Department{}, err
	}
	s.audit(ctx, in.UserID, "department", id, "rename", renamed.Name)
	return renamed, nil
}

// DeleteDepartment помечает отдел удалённым. Проекты ссылку сохраняют
// и просто выпадают из рейтинга отделов.
func (s *Service) DeleteDepartment(ctx context.Context, id, userID string) error {
	err := s.state.Apply(ctx, func(data *models.ProjectData) (state.Commit, error) {
		idx := departmentIndex(data, id)
		if idx < 0 {
			return nil, notFoundf("department %q", id)
		}
		data.Departments = append(data.Departments[:idx], data.Departments[idx+1:]...)
		return func(ctx context.Context) error {
			return s.call(ctx, "delete_department", func(ctx context.Context) error {
				return s.store.SoftDeleteDepartment(ctx, id)
			})
		}, nil
	})
	if err != nil {
		return err
	}
	s.audit(ctx, userID, "department", id, "delete", "")
	return nil
}

//
// КОМАНДЫ
//

func (s *Service) Teams(ctx context.Context) ([]models.Team, error) {
	data, err := s.state.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return data.Teams, nil
}

func teamIndex(data *models.ProjectData, id string) int {
	for i, t := range data.Teams {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) CreateTeam(ctx context.Context, in GroupInput) (models.Team, error) {
	var created models.Team
	err := s.state.Apply(ctx, func(data *models.ProjectData) (state.Commit, error) {
		t := models.Team{
			ID:           groupID("team-", in.ID),
			Name:         strings.TrimSpace(in.Name),
			DepartmentID: strings.TrimSpace(in.DepartmentID),
			Status:       models.StatusActive,
		}
		if t.Name == "" {
			return nil, validationf("team name is required")
		}
		if teamIndex(data, t.ID) >= 0 {
			return nil, validationf("team %q already exists", t.ID)
		}
		data.Teams = append(data.Teams, t)
		created = t
		return func(ctx context.Context) error {
			return s.call(ctx, "upsert_team", func(ctx context.Context) error {
				return s.store.UpsertTeam(ctx, t)
			})
		}, nil
	})
	if err != nil {
		return models.Team{}, err
	}
	s.audit(ctx, in.UserID, "team", created.ID, "create", "Создана команда "+created.Name)
	return created, nil
}

func (s *Service) RenameTeam(ctx context.Context, id string, in GroupInput) (models.Team, error) {
	var renamed models.Team
	err := s.state.Apply(ctx, func(data *models.ProjectData) (state.Commit, error) {
		idx := teamIndex(data, id)
		if idx < 0 {
			return nil, notFoundf("team %q", id)
		}
		name := strings.TrimSpace(in.Name)
		if name == "" {
			return nil, validationf("team name is required")
		}
		t := data.Teams[idx]
		t.Name = name
		if dep := strings.TrimSpace(in.DepartmentID); dep != "" {
			t.DepartmentID = dep
		}
		data.Teams[idx] = t
		renamed = t
		return func(ctx context.Context) error {
			return s.call(ctx, "upsert_team", func(ctx context.Context) error {
				return s.store.UpsertTeam(ctx, t)
			})
		}, nil
	})
	if err != nil {
		return models.Team{}, err
	}
	s.audit(ctx, in.UserID, "team", id, "rename", renamed.Name)
	return renamed, nil
}

func (s *Service) DeleteTeam(ctx context.Context, id, userID string) error {
	err := s.state.Apply(ctx, func(data *models.ProjectData) (state.Commit, error) {
		idx := teamIndex(data, id)
		if idx < 0 {
			return nil, notFoundf("team %q", id)
		}
		data.Teams = append(data.Teams[:idx], data.Teams[idx+1:]...)
		return func(ctx context.Context) error {
			return s.call(ctx, "delete_team", func(ctx context.Context) error {
				return s.store.SoftDeleteTeam(ctx, id)
			})
		}, nil
	})
	if err != nil {
		return err
	}
	s.audit(ctx, userID, "team", id, "delete", "")
	return nil
}
