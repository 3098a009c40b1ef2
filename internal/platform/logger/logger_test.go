package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		name     string
		logLevel string
		want     slog.Level
		ok       bool
	}{
		{name: "debug level", logLevel: "debug", want: slog.LevelDebug, ok: true},
		{name: "info level", logLevel: "info", want: slog.LevelInfo, ok: true},
		{name: "warn level", logLevel: "warn", want: slog.LevelWarn, ok: true},
		{name: "error level", logLevel: "error", want: slog.LevelError, ok: true},
		{name: "case insensitive - DEBUG", logLevel: "DEBUG", want: slog.LevelDebug, ok: true},
		{name: "unknown falls back to info", logLevel: "verbose", want: slog.LevelInfo, ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := logger.ParseLevel(tc.logLevel)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.ok, ok)
		})
	}
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	buf := &logger.TestLogBuffer{}
	l := logger.New(buf, "warn")

	l.Info("info test message")
	l.Warn("warn test message")

	assert.NotContains(t, buf.String(), "info test message")
	assert.Contains(t, buf.String(), "warn test message")
	assert.Same(t, l, slog.Default(), "New installs the logger as default")
}

func TestSetup(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	l, err := logger.Setup(config.ServerConfig{LogLevel: "error", Port: 6000})
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.False(t, l.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, l.Enabled(context.Background(), slog.LevelError))
}

func TestFromContextOrDefault(t *testing.T) {
	defaultLogger := slog.Default()
	customLogger := slog.New(slog.NewTextHandler(&logger.TestLogBuffer{}, nil))

	tests := []struct {
		name     string
		ctx      context.Context
		expected *slog.Logger
	}{
		{
			name:     "nil_context_returns_default",
			ctx:      nil,
			expected: defaultLogger,
		},
		{
			name:     "context_without_logger_returns_default",
			ctx:      context.Background(),
			expected: defaultLogger,
		},
		{
			name:     "context_with_logger_returns_context_logger",
			ctx:      logger.WithLogger(context.Background(), customLogger),
			expected: customLogger,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := logger.FromContextOrDefault(tt.ctx, defaultLogger)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestWithLogger(t *testing.T) {
	t.Run("valid_logger", func(t *testing.T) {
		customLogger := slog.New(slog.NewTextHandler(&logger.TestLogBuffer{}, nil))
		ctx := logger.WithLogger(context.Background(), customLogger)

		assert.Equal(t, customLogger, logger.FromContext(ctx))
	})

	t.Run("nil_logger_panics", func(t *testing.T) {
		assert.Panics(t, func() {
			logger.WithLogger(context.Background(), nil)
		})
	})
}

func TestTestLogBuffer_GetLogEntries(t *testing.T) {
	buf, l := logger.SetupTestLogger(t)

	l.Info("first", "key", "value")
	slog.Warn("second")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "value", entries[0]["key"])

	entry := logger.FindLogEntry(t, buf, "second")
	require.NotNil(t, entry)
	assert.Equal(t, "WARN", entry["level"])
	assert.Nil(t, logger.FindLogEntry(t, buf, "missing"))

	buf.Reset()
	assert.Empty(t, buf.String())
}
