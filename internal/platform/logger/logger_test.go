package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseLevel(tc.input)
			assert.Equal(t, tc.want, got)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSetup(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	l, err := Setup(config.ServerConfig{LogLevel: "debug"})
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Same(t, l, slog.Default())
	assert.True(t, l.Enabled(context.Background(), slog.LevelDebug))

	l, err = Setup(config.ServerConfig{LogLevel: "bogus"})
	require.NoError(t, err)
	assert.False(t, l.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, l.Enabled(context.Background(), slog.LevelInfo))
}

func TestNew_WritesJSON(t *testing.T) {
	l, buf := NewTestLogger()
	l.Info("hello", slog.String("component", "test"))

	entries, err := buf.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "hello", entries[0]["msg"])
	assert.Equal(t, "test", entries[0]["component"])
}

func TestFromContextOrDefault(t *testing.T) {
	fallback := slog.Default()
	custom, _ := NewTestLogger()

	assert.Equal(t, fallback, FromContextOrDefault(nil, fallback)) //nolint:staticcheck
	assert.Equal(t, fallback, FromContextOrDefault(context.Background(), fallback))
	assert.Equal(t, custom, FromContextOrDefault(WithLogger(context.Background(), custom), fallback))
}

func TestWithLogger(t *testing.T) {
	custom, _ := NewTestLogger()
	ctx := WithLogger(context.Background(), custom)
	assert.Equal(t, custom, FromContext(ctx))

	assert.Panics(t, func() {
		WithLogger(context.Background(), nil)
	})
}
