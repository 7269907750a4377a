package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureJSON(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := log
	t.Cleanup(func() { log = prev })

	buf := &bytes.Buffer{}
	log = slog.New(newHandler("production", buf))
	return buf
}

func TestFromContext_AddsRequestID(t *testing.T) {
	buf := captureJSON(t)

	ctx := WithRequestID(context.Background(), "req-42")
	CtxInfo(ctx, "submission stored", "id", "abc")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-42", entry["request_id"])
	assert.Equal(t, "abc", entry["id"])
	assert.Equal(t, "submission stored", entry["msg"])
}

func TestWorkerLog_ErrorLevel(t *testing.T) {
	buf := captureJSON(t)

	WorkerLog("notification_worker", "send_email", assert.AnError, "subject", "hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "notification_worker", entry["worker"])
	assert.Equal(t, assert.AnError.Error(), entry["error"])
	assert.Equal(t, "hello", entry["subject"])
}

func TestGetRequestID_Empty(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
}
