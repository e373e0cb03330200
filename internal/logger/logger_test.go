package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContextAddsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", &buf)
	t.Cleanup(func() { Init("test") })

	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithUser(ctx, "user-1", "trainer")
	CtxWithError(ctx, "review insert failed", errors.New("boom"), "reviewee_id", "u2")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "review insert failed", entry["msg"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "user-1", entry["user_id"])
	assert.Equal(t, "trainer", entry["user_role"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "u2", entry["reviewee_id"])
	assert.Equal(t, "trainertrust", entry["service"])
}

func TestTestModeSuppressesInfo(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("test", &buf)
	t.Cleanup(func() { Init("test") })

	Info("hidden")
	WorkerLog("application_count", "reconcile", 0, time.Millisecond, errors.New("db down"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.Contains(out, "worker operation failed"), out)
	assert.Contains(t, out, "worker=application_count")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestSetLevelOverridesEnvDefault(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", &buf)
	t.Cleanup(func() { Init("test") })

	SetLevel("error")
	Warn("dropped")
	assert.Empty(t, buf.String())

	SetLevel("debug")
	Debug("kept")
	assert.Contains(t, buf.String(), `"msg":"kept"`)
}
