package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		level      string
		production bool
		lowest     zapcore.Level
	}{
		{name: "development debug", level: "debug", lowest: zapcore.DebugLevel},
		{name: "production warn", level: "warn", production: true, lowest: zapcore.WarnLevel},
		{name: "invalid level falls back to info", level: "loud", lowest: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.level, tt.production)
			require.NoError(t, err)
			require.NotNil(t, log)

			assert.True(t, log.Core().Enabled(tt.lowest))
			if tt.lowest > zapcore.DebugLevel {
				assert.False(t, log.Core().Enabled(tt.lowest-1))
			}
		})
	}
}

func TestSync_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() { Sync(nil) })
}
