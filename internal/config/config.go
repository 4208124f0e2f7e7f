package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN         string
	ServerPort    string
	SessionSecret string
	EditPassword  string
	LogMode       string

	FallbackDepartmentID string
	FallbackTeamID       string
	StrictReferences     bool

	StoreTimeout time.Duration
	StateMaxAge  time.Duration

	AutoMigrate bool
	SeedDemo    bool
	CORSOrigins []string
}

// Load читает .env и переменные окружения; без обязательных параметров
// сервер не стартует.
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := FromEnv()
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		DBDSN:         os.Getenv("DB_DSN"),
		ServerPort:    os.Getenv("SERVER_PORT"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		EditPassword:  os.Getenv("EDIT_PASSWORD"),
		LogMode:       os.Getenv("LOG_MODE"),

		FallbackDepartmentID: os.Getenv("FALLBACK_DEPARTMENT_ID"),
		FallbackTeamID:       os.Getenv("FALLBACK_TEAM_ID"),
	}

	if cfg.DBDSN == "" {
		return nil, errors.New("DB_DSN is not set")
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("SESSION_SECRET is not set")
	}
	if cfg.EditPassword == "" {
		return nil, errors.New("EDIT_PASSWORD is not set")
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.LogMode == "" {
		cfg.LogMode = "prod"
	}
	if cfg.FallbackDepartmentID == "" {
		cfg.FallbackDepartmentID = "engineering"
	}
	if cfg.FallbackTeamID == "" {
		cfg.FallbackTeamID = "frontend"
	}

	var err error
	if cfg.StrictReferences, err = envBool("STRICT_REFERENCES", false); err != nil {
		return nil, err
	}
	if cfg.AutoMigrate, err = envBool("DB_AUTO_MIGRATE", false); err != nil {
		return nil, err
	}
	if cfg.SeedDemo, err = envBool("SEED_DEMO_DATA", false); err != nil {
		return nil, err
	}
	if cfg.StoreTimeout, err = envDuration("STORE_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.StateMaxAge, err = envDuration("STATE_MAX_AGE", 30*time.Second); err != nil {
		return nil, err
	}

	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	} else {
		cfg.CORSOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}

	return cfg, nil
}

func envBool(key string, def bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
