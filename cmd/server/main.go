package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"milestone-dashboard/internal/config"
	"milestone-dashboard/internal/database"
	"milestone-dashboard/internal/handlers"
	"milestone-dashboard/internal/logger"
	"milestone-dashboard/internal/server"
	"milestone-dashboard/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if cfg.LogMode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg.DBDSN, log)
	if err != nil {
		log.Fatal("DB initialization failed", zap.Error(err))
	}
	if cfg.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			log.Fatal("DB migration failed", zap.Error(err))
		}
	}

	store := database.NewStore(db)
	if cfg.SeedDemo {
		if err := database.Seed(context.Background(), store, log); err != nil {
			log.Fatal("seeding demo data failed", zap.Error(err))
		}
	}

	svc := service.New(store, service.Options{
		FallbackDepartmentID: cfg.FallbackDepartmentID,
		FallbackTeamID:       cfg.FallbackTeamID,
		StrictReferences:     cfg.StrictReferences,
		StoreTimeout:         cfg.StoreTimeout,
		StateMaxAge:          cfg.StateMaxAge,
	}, log.Named("service"))

	editHash, err := bcrypt.GenerateFromPassword([]byte(cfg.EditPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("hashing edit password failed", zap.Error(err))
	}
	cfg.EditPassword = ""

	h := handlers.New(svc, editHash, log.Named("handlers"))
	r := server.NewRouter(cfg, h, log)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("shutdown complete")
}
