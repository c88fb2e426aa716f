// internal/common/logger/logger_test.go
package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"WARN", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestWrapper_FieldsAndErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).WithFields(map[string]interface{}{"taskType": "generate-career-matches"})

	log.WithError(errors.New("boom")).Error("job failed", map[string]interface{}{"jobKey": int64(7)})
	log.Debug("scored", map[string]interface{}{"b": 2, "a": 1})

	entries := logs.All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, "generate-career-matches", first["taskType"])
	assert.Equal(t, "boom", first["error"])
	assert.Equal(t, int64(7), first["jobKey"])

	fields := entries[1].Context
	require.Len(t, fields, 3)
	assert.Equal(t, "a", fields[1].Key)
	assert.Equal(t, "b", fields[2].Key)
}

func TestMapToZapFields_NamedError(t *testing.T) {
	fields := mapToZapFields(map[string]interface{}{"cause": errors.New("x")})
	require.Len(t, fields, 1)
	assert.Equal(t, zapcore.ErrorType, fields[0].Type)
	assert.Nil(t, mapToZapFields(nil))
}

func TestBuild_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worker.log")
	log, zl, err := NewFromOptions(Options{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	log.Info("catalog loaded", map[string]interface{}{"careers": 16})
	log.Debug("hidden", nil)
	_ = zl.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"careers":16`)
	assert.Contains(t, string(data), `"timestamp"`)
	assert.False(t, strings.Contains(string(data), "hidden"))
	assert.Same(t, zl, Zap(log))
}

func TestZap_NonZapLogger(t *testing.T) {
	assert.NotNil(t, Zap(nil))
	assert.NotNil(t, Zap(NewNoOpLogger()))
}
