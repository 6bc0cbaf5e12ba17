// SPDX-License-Identifier: MIT

package logger_test

import (
	"testing"

	"github.com/katalvlaran/skydata/internal/logger"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cfg   logger.Config
		level zapcore.Level
	}{
		{"DebugConsole", logger.Config{Level: "debug", Format: "console"}, zapcore.DebugLevel},
		{"InfoJSON", logger.Config{Level: "info", Format: "json"}, zapcore.InfoLevel},
		{"WarnConsole", logger.Config{Level: "warn", Format: "console"}, zapcore.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l, err := logger.New(&tt.cfg)
			require.NoError(t, err)
			require.True(t, l.Core().Enabled(tt.level))
			require.False(t, l.Core().Enabled(tt.level-1))
		})
	}
}

func TestNew_BadLevel(t *testing.T) {
	t.Parallel()
	_, err := logger.New(&logger.Config{Level: "loud"})
	require.Error(t, err)
}
