package logger

import (
	"testing"

	"exam_prep_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		name string
		mode string
		lvl  string
		want zapcore.Level
	}{
		{"debug mode wins", "debug", "error", zapcore.DebugLevel},
		{"release uses configured level", "release", "warn", zapcore.WarnLevel},
		{"unknown level falls back to info", "release", "loud", zapcore.InfoLevel},
		{"empty level falls back to info", "release", "", zapcore.InfoLevel},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Server.Mode = tc.mode
			cfg.Log.Level = tc.lvl
			assert.Equal(t, tc.want, ParseLevel(cfg))
		})
	}
}

func TestSetLevel_ChangesAtomicLevel(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Mode = "release"
	cfg.Log.Level = "error"

	SetLevel(cfg)
	assert.Equal(t, zapcore.ErrorLevel, level.Level())

	cfg.Log.Level = "info"
	SetLevel(cfg)
	assert.Equal(t, zapcore.InfoLevel, level.Level())
}
