package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput() (*bytes.Buffer, func()) {
	buf := new(bytes.Buffer)

	mu.Lock()
	originalOutput := output
	originalColor := useColor
	output = buf
	useColor = false
	mu.Unlock()
	reconfigure()

	return buf, func() {
		mu.Lock()
		output = originalOutput
		useColor = originalColor
		mu.Unlock()
		reconfigure()
	}
}

func TestLevelFiltering(t *testing.T) {
	buf, cleanup := captureOutput()
	defer cleanup()

	SetLevel("WARN")
	Debug("debug message")
	Info("info message")
	Warn("warn message")
	Error("error message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")
}

func TestSetFormatJSON(t *testing.T) {
	buf, cleanup := captureOutput()
	defer cleanup()

	SetLevel("DEBUG")
	SetFormat("json")
	defer SetFormat("text")

	Info("hello", "request_id", uint32(7))

	require.Contains(t, buf.String(), `"request_id":7`)
}

func TestContextFieldsPrepended(t *testing.T) {
	buf, cleanup := captureOutput()
	defer cleanup()
	SetLevel("DEBUG")

	ctx := WithContext(context.Background(), &LogContext{
		ConnectionName: "FlightApp",
		RequestID:      42,
	})
	InfoCtx(ctx, "dispatched")

	out := buf.String()
	assert.Contains(t, out, "connection=FlightApp")
	assert.Contains(t, out, "request_id=42")
}

func TestLogContextWithRequestID(t *testing.T) {
	lc := &LogContext{ConnectionName: "A"}
	lc2 := lc.WithRequestID(9)

	require.Equal(t, uint32(0), lc.RequestID)
	require.Equal(t, uint32(9), lc2.RequestID)
	require.Equal(t, "A", lc2.ConnectionName)
}
