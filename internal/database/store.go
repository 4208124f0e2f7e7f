package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"milestone-dashboard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("record not found")

// Filter: что отдавать из списков. По умолчанию только активные записи.
type Filter struct {
	IncludeDeleted bool
}

var (
	projectColumns    = []string{"name", "owner", "department", "team", "milestones", "user_id", "status", "updated_at"}
	departmentColumns = []string{"name", "status", "updated_at"}
	teamColumns       = []string{"name", "department_id", "status", "updated_at"}
	configColumns     = []string{
		"project_name", "company_progress_title", "department_progress_title",
		"team_progress_title", "default_milestones", "updated_at",
	}
)

// Store: табличное хранилище дашборда поверх gorm.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func active(q *gorm.DB, f Filter) *gorm.DB {
	if f.IncludeDeleted {
		return q
	}
	return q.Where("status <> ?", models.StatusDeleted)
}

func upsert[T any](ctx context.Context, db *gorm.DB, row *T, columns []string) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(row).Error
}

func softDelete[T any](ctx context.Context, db *gorm.DB, id string) error {
	var model T
	res := db.WithContext(ctx).Model(&model).
		Where("id = ? AND status <> ?", id, models.StatusDeleted).
		Update("status", models.StatusDeleted)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

//
// ПРОЕКТЫ
//

func (s *Store) ListProjects(ctx context.Context, f Filter) ([]models.UserProject, error) {
	var projects []models.UserProject
	err := active(s.db.WithContext(ctx), f).Order("created_at asc, id asc").Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (s *Store) GetProject(ctx context.Context, id string) (models.UserProject, error) {
	var p models.UserProject
	err := active(s.db.WithContext(ctx), Filter{}).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return p, ErrNotFound
	}
	if err != nil {
		return p, fmt.Errorf("get project %s: %w", id, err)
	}
	return p, nil
}

func (s *Store) UpsertProject(ctx context.Context, p models.UserProject) error {
	if p.Status == "" {
		p.Status = models.StatusActive
	}
	if p.Milestones == nil {
		p.Milestones = []models.Milestone{}
	}
	p.UpdatedAt = time.Now()
	if err := upsert(ctx, s.db, &p, projectColumns); err != nil {
		return fmt.Errorf("upsert project %s: %w", p.ID, err)
	}
	return nil
}

func (s *Store) SoftDeleteProject(ctx context.Context, id string) error {
	return softDelete[models.UserProject](ctx, s.db, id)
}

//
// ОТДЕЛЫ И ГРУППЫ
//

func (s *Store) ListDepartments(ctx context.Context, f Filter) ([]models.Department, error) {
	var out []models.Department
	if err := active(s.db.WithContext(ctx), f).Order("created_at asc, id asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return out, nil
}

func (s *Store) UpsertDepartment(ctx context.Context, d models.Department) error {
	if d.Status == "" {
		d.Status = models.StatusActive
	}
	d.UpdatedAt = time.Now()
	if err := upsert(ctx, s.db, &d, departmentColumns); err != nil {
		return fmt.Errorf("upsert department %s: %w", d.ID, err)
	}
	return nil
}

func (s *Store) SoftDeleteDepartment(ctx context.Context, id string) error {
	return softDelete[models.Department](ctx, s.db, id)
}

func (s *Store) ListTeams(ctx context.Context, f Filter) ([]models.Team, error) {
	var out []models.Team
	if err := active(s.db.WithContext(ctx), f).Order("created_at asc, id asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return out, nil
}

func (s *Store) UpsertTeam(ctx context.Context, t models.Team) error {
	if t.Status == "" {
		t.Status = models.StatusActive
	}
	t.UpdatedAt = time.Now()
	if err := upsert(ctx, s.db, &t, teamColumns); err != nil {
		return fmt.Errorf("upsert team %s: %w", t.ID, err)
	}
	return nil
}

func (s *Store) SoftDeleteTeam(ctx context.Context, id string) error {
	return softDelete[models.Team](ctx, s.db, id)
}

//
// КОНФИГ И ШАБЛОН
//

// GetConfig отдаёт конфиг main, а если строки ещё нет, значения по умолчанию.
func (s *Store) GetConfig(ctx context.Context) (models.PageConfig, error) {
	var cfg models.PageConfig
	err := s.db.WithContext(ctx).Where("id = ?", models.MainConfigID).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultPageConfig(), nil
	}
	if err != nil {
		return cfg, fmt.Errorf("get config: %w", err)
	}
	if cfg.DefaultMilestones == nil {
		cfg.DefaultMilestones = []models.Milestone{}
	}
	return cfg, nil
}

func (s *Store) SaveConfig(ctx context.Context, cfg models.PageConfig) error {
	cfg.ID = models.MainConfigID
	if cfg.DefaultMilestones == nil {
		cfg.DefaultMilestones = []models.Milestone{}
	}
	cfg.UpdatedAt = time.Now()
	if err := upsert(ctx, s.db, &cfg, configColumns); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

//
// ЦЕЛИКОМ
//

// ReplaceAll записывает весь дашборд одной транзакцией. Записи, которых нет
// в data, помечаются удалёнными.
func (s *Store) ReplaceAll(ctx context.Context, data models.ProjectData) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txStore := &Store{db: tx}

		deptIDs := make([]string, 0, len(data.Departments))
		for _, d := range data.Departments {
			if err := txStore.UpsertDepartment(ctx, d); err != nil {
				return err
			}
			deptIDs = append(deptIDs, d.ID)
		}
		if err := markMissingDeleted[models.Department](tx, deptIDs); err != nil {
			return fmt.Errorf("replace departments: %w", err)
		}

		teamIDs := make([]string, 0, len(data.Teams))
		for _, t := range data.Teams {
			if err := txStore.UpsertTeam(ctx, t); err != nil {
				return err
			}
			teamIDs = append(teamIDs, t.ID)
		}
		if err := markMissingDeleted[models.Team](tx, teamIDs); err != nil {
			return fmt.Errorf("replace teams: %w", err)
		}

		projectIDs := make([]string, 0, len(data.UserProjects))
		for _, p := range data.UserProjects {
			if err := txStore.UpsertProject(ctx, p); err != nil {
				return err
			}
			projectIDs = append(projectIDs, p.ID)
		}
		if err := markMissingDeleted[models.UserProject](tx, projectIDs); err != nil {
			return fmt.Errorf("replace projects: %w", err)
		}

		if data.Config != nil {
			return txStore.SaveConfig(ctx, *data.Config)
		}
		return nil
	})
}

func markMissingDeleted[T any](tx *gorm.DB, keep []string) error {
	var model T
	q := tx.Model(&model).Where("status <> ?", models.StatusDeleted)
	if len(keep) > 0 {
		q = q.Where("id NOT IN ?", keep)
	}
	return q.Update("status", models.StatusDeleted).Error
}
