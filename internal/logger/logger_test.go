package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"pkg.jsn.cam/fixturegen/internal/config"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		cfg       config.LogConfig
		wantErr   bool
		wantLevel zapcore.Level
	}{
		{name: "json info", cfg: config.LogConfig{Level: "info", Format: "json"}, wantLevel: zapcore.InfoLevel},
		{name: "console debug", cfg: config.LogConfig{Level: "debug", Format: "console"}, wantLevel: zapcore.DebugLevel},
		{name: "bad level", cfg: config.LogConfig{Level: "loud", Format: "json"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			logger, err := New(&tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if !logger.Core().Enabled(tt.wantLevel) {
				t.Errorf("Level %v should be enabled", tt.wantLevel)
			}
			if tt.wantLevel > zapcore.DebugLevel && logger.Core().Enabled(zapcore.DebugLevel) {
				t.Error("Debug should be disabled")
			}
		})
	}
}
