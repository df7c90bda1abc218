package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger_Level(t *testing.T) {
	testCases := []struct {
		name         string
		level        string
		format       string
		debugEnabled bool
	}{
		{name: "debug json", level: "debug", format: "json", debugEnabled: true},
		{name: "debug console", level: " DEBUG ", format: "console", debugEnabled: true},
		{name: "info", level: "info", format: "json"},
		{name: "unknown falls back to info", level: "verbose", format: "json"},
		{name: "empty falls back to info", level: "", format: "json"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			core := NewLogger(tc.level, tc.format).sugar.Desugar().Core()
			assert.Equal(t, tc.debugEnabled, core.Enabled(zapcore.DebugLevel))
			assert.True(t, core.Enabled(zapcore.InfoLevel))
		})
	}
}

func TestLogger_With(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := &Logger{sugar: zap.New(core).Sugar()}

	reqLog := log.With("request_id", "req-1")
	reqLog.Info("HTTP request", "status", 200)
	log.Info("Server exited")

	entries := logs.All()
	require.Len(t, entries, 2)

	fields := entries[0].ContextMap()
	assert.Equal(t, "HTTP request", entries[0].Message)
	assert.Equal(t, "req-1", fields["request_id"])
	assert.EqualValues(t, 200, fields["status"])

	assert.NotContains(t, entries[1].ContextMap(), "request_id")
}
