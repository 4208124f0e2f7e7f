package logger

import (
	"strings"

	"go.uber.org/zap"
)

// New: для "prod" JSON-логи, иначе консольный вывод.
func New(mode string) (*zap.Logger, error) {
	switch strings.ToLower(mode) {
	case "prod", "production":
		return zap.NewProduction()
	default:
		return zap.NewDevelopment()
	}
}
