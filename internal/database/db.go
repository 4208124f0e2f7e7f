package database

import (
	"fmt"
	"time"

	"milestone-dashboard/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const (
	connectAttempts = 10
	connectDelay    = 2 * time.Second
)

// Open подключается к Postgres, повторяя попытки, пока БД поднимается.
func Open(dsn string, log *zap.Logger) (*gorm.DB, error) {
	gormLog := gormLogger.New(
		zap.NewStdLog(log.Named("gorm")),
		gormLogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	var (
		db  *gorm.DB
		err error
	)
	for i := 1; i <= connectAttempts; i++ {
		log.Info("connecting to DB", zap.Int("attempt", i), zap.Int("max_attempts", connectAttempts))

		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLog})
		if err == nil {
			log.Info("connected to DB")
			return db, nil
		}

		log.Warn("failed to connect to DB", zap.Error(err))
		if i < connectAttempts {
			time.Sleep(connectDelay)
		}
	}
	return nil, fmt.Errorf("connect to db after %d attempts: %w", connectAttempts, err)
}

// Migrate создаёт таблицы. В проде схема уже есть, это для локального
// запуска и тестов.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Department{},
		&models.Team{},
		&models.UserProject{},
		&models.PageConfig{},
		&models.AuditLog{},
	)
}
