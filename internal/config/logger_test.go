package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name  string
		cfg   LogConfig
		level zapcore.Level
	}{
		{"console debug", LogConfig{Level: "debug", Format: FormatConsole}, zapcore.DebugLevel},
		{"json warn", LogConfig{Level: "warn", Format: FormatJSON}, zapcore.WarnLevel},
		{"unknown level", LogConfig{Level: "loud", Format: FormatConsole}, zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.cfg)
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.level))
			if tt.level > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.level-1))
			}
		})
	}
}
