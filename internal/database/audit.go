package database

import (
	"context"

	"milestone-dashboard/internal/models"
)

// CreateAuditLog: запись в журнал аудита.
func (s *Store) CreateAuditLog(ctx context.Context, entry models.AuditLog) error {
	return s.db.WithContext(ctx).Create(&entry).Error
}

func (s *Store) ListAuditLogs(ctx context.Context, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 200
	}
	var logs []models.AuditLog
	err := s.db.WithContext(ctx).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
