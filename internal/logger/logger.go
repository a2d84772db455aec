package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap logger. level is one of debug, info, warn, error; an
// unknown level falls back to info. production selects JSON output,
// otherwise a colored console encoder is used.
func New(level string, production bool) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	invalidLevel := zapLevel.UnmarshalText([]byte(level))
	if invalidLevel != nil {
		zapLevel = zapcore.InfoLevel
	}

	var cfg zap.Config
	if production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize zap logger: %w", err)
	}

	if invalidLevel != nil {
		log.Warn("invalid log level, using info", zap.String("level", level))
	}

	return log, nil
}

// Sync flushes buffered entries. The error is dropped because stderr
// syncs fail on some terminals.
func Sync(log *zap.Logger) {
	if log != nil {
		_ = log.Sync()
	}
}
