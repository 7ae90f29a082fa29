package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJSONLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: LevelDebug, Format: "json", Output: &buf}).
		WithComponent("store").
		With("file", "posts.json")

	ctx := WithRequestID(context.Background(), "req-1")
	logger.Error(ctx, errors.New("disk full"), "save failed", "records", 4)

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))

	assert.Equal(t, "ERROR", rec["level"])
	assert.Equal(t, "save failed", rec["msg"])
	assert.Equal(t, "store", rec["component"])
	assert.Equal(t, "req-1", rec["request_id"])
	assert.Equal(t, "disk full", rec["error"])
	assert.Equal(t, "posts.json", rec["file"])
	assert.Equal(t, float64(4), rec["records"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: LevelWarn, Format: "text", Output: &buf})

	logger.Debug(context.Background(), "hidden debug")
	logger.Info(context.Background(), "hidden info")
	assert.Zero(t, buf.Len())

	logger.Warn(context.Background(), nil, "shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().Error(context.Background(), errors.New("x"), "ignored")
	})
}
