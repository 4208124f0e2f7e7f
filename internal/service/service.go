// Package service: операции дашборда поверх подсчёта прогресса, сведения
// шаблона, контейнера состояния и хранилища.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"milestone-dashboard/internal/database"
	"milestone-dashboard/internal/metrics"
	"milestone-dashboard/internal/models"
	"milestone-dashboard/internal/progress"
	"milestone-dashboard/internal/reconcile"
	"milestone-dashboard/internal/state"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Options struct {
	FallbackDepartmentID string
	FallbackTeamID       string
	// StrictReferences отклоняет запись с неизвестным отделом или командой
	// вместо подстановки запасных значений.
	StrictReferences bool

	StoreTimeout time.Duration
	StateMaxAge  time.Duration
}

type Service struct {
	store Store
	state *state.Container
	opts  Options
	log   *zap.Logger

	newMilestoneID reconcile.IDFunc
	newTemplateID  reconcile.IDFunc
	newProjectID   reconcile.IDFunc
}

func New(store Store, opts Options, log *zap.Logger) *Service {
	if opts.StoreTimeout <= 0 {
		opts.StoreTimeout = 5 * time.Second
	}
	s := &Service{
		store:          store,
		opts:           opts,
		log:            log,
		newMilestoneID: reconcile.NewMilestoneID,
		newTemplateID:  reconcile.NewTemplateID,
		newProjectID:   func() string { return "p-" + uuid.NewString() },
	}
	s.state = state.New(s.load, opts.StateMaxAge, log.Named("state"))
	return s
}

// call выполняет операцию хранилища с таймаутом и одним повтором.
// database.ErrNotFound сразу отдаётся как ErrNotFound, без повтора.
func (s *Service) call(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	start := time.Now()

	var err error
	for attempt := 1; attempt <= 2; attempt++ {
		err = s.attempt(ctx, fn)
		if err == nil {
			metrics.RecordStoreOp(op, "ok", time.Since(start))
			return nil
		}
		if errors.Is(err, database.ErrNotFound) {
			metrics.RecordStoreOp(op, "not_found", time.Since(start))
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		if ctx.Err() != nil {
			break
		}
		s.log.Warn("store operation failed",
			zap.String("op", op),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}

	metrics.RecordStoreOp(op, "error", time.Since(start))
	metrics.IncPersistenceFailure(op)
	s.log.Error("store operation failed after retry", zap.String("op", op), zap.Error(err))
	return &PersistenceError{Op: op, Err: err}
}

func (s *Service) attempt(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.opts.StoreTimeout)
	defer cancel()
	return fn(ctx)
}

// load собирает снимок дашборда: только активные записи и конфиг main.
func (s *Service) load(ctx context.Context) (models.ProjectData, error) {
	var data models.ProjectData

	err := s.call(ctx, "list_departments", func(ctx context.Context) (err error) {
		data.Departments, err = s.store.ListDepartments(ctx, database.Filter{})
		return err
	})
	if err != nil {
		return data, err
	}
	err = s.call(ctx, "list_teams", func(ctx context.Context) (err error) {
		data.Teams, err = s.store.ListTeams(ctx, database.Filter{})
		return err
	})
	if err != nil {
		return data, err
	}
	err = s.call(ctx, "list_projects", func(ctx context.Context) (err error) {
		data.UserProjects, err = s.store.ListProjects(ctx, database.Filter{})
		return err
	})
	if err != nil {
		return data, err
	}
	var cfg models.PageConfig
	err = s.call(ctx, "get_config", func(ctx context.Context) (err error) {
		cfg, err = s.store.GetConfig(ctx)
		return err
	})
	if err != nil {
		return data, err
	}
	data.Config = &cfg

	if data.Departments == nil {
		data.Departments = []models.Department{}
	}
	if data.Teams == nil {
		data.Teams = []models.Team{}
	}
	if data.UserProjects == nil {
		data.UserProjects = []models.UserProject{}
	}
	return data, nil
}

// audit пишет запись журнала. Ошибка журнала операцию не отменяет.
func (s *Service) audit(ctx context.Context, userID, entity, entityID, action, details string) {
	entry := models.AuditLog{
		UserID:   userID,
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Details:  details,
	}
	if err := s.attempt(ctx, func(ctx context.Context) error {
		return s.store.CreateAuditLog(ctx, entry)
	}); err != nil {
		s.log.Warn("audit log not written",
			zap.String("entity", entity),
			zap.String("entity_id", entityID),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

// Dashboard: текущий снимок отделов, команд, проектов и конфига.
func (s *Service) Dashboard(ctx context.Context) (models.ProjectData, error) {
	return s.state.Snapshot(ctx)
}

// Refresh сбрасывает снимок и читает его из хранилища заново.
func (s *Service) Refresh(ctx context.Context) (models.ProjectData, error) {
	return s.state.Refresh(ctx)
}

func (s *Service) Progress(ctx context.Context) (progress.Dashboard, error) {
	data, err := s.state.Snapshot(ctx)
	if err != nil {
		return progress.Dashboard{}, err
	}
	return progress.Compute(data), nil
}

func (s *Service) AuditLogs(ctx context.Context, limit int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := s.call(ctx, "list_audit_logs", func(ctx context.Context) (err error) {
		logs, err = s.store.ListAuditLogs(ctx, limit)
		return err
	})
	if logs == nil {
		logs = []models.AuditLog{}
	}
	return logs, err
}

// Ready: хранилище отвечает в пределах таймаута.
func (s *Service) Ready(ctx context.Context) error {
	return s.attempt(ctx, s.store.Ping)
}
