// Package observability builds the structured logger and Prometheus metrics shared by the server and CLI.
package observability

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns the process logger for LOG_LEVEL.
// An unrecognized level means info. Debug switches to the development console encoder.
func NewLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	if lvl == zapcore.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder

	logger, err := cfg.Build(zap.Fields(zap.String("service", "echocity")))
	if err != nil {
		log.Printf("Warning: logger setup failed (%v), logging disabled", err)
		return zap.NewNop()
	}
	return logger
}
