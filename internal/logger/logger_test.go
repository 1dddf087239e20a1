package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, raw := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(raw) == 0 {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal(raw, &m))
		out = append(out, m)
	}
	return out
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("loud"))
}

func TestSetup_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	Setup(&buf, "warn", "json")

	Info("dropped")
	Warn("kept", "k", 1)

	got := lines(t, &buf)
	require.Len(t, got, 1)
	assert.Equal(t, "kept", got[0]["msg"])
	assert.Equal(t, "wheelhub", got[0]["app"])
}

func TestWithBookingAndStateTransition(t *testing.T) {
	var buf bytes.Buffer
	Setup(&buf, "debug", "json")

	WithBooking("rental:42", "abc-123").Info("staged")
	StateTransition(context.Background(), "rental:42", "Idle", "AwaitingGateway")

	got := lines(t, &buf)
	require.Len(t, got, 2)
	assert.Equal(t, "abc-123", got[0]["correlation_id"])
	assert.Equal(t, "rental:42", got[0]["session"])
	assert.Equal(t, "AwaitingGateway", got[1]["to"])
}

func TestResultHelpers(t *testing.T) {
	var buf bytes.Buffer
	Setup(&buf, "debug", "json")

	DatabaseResult("rentals.create", 1, nil)
	ExternalServiceResult("khalti", "/epayment/lookup/", errors.New("timeout"))

	got := lines(t, &buf)
	require.Len(t, got, 2)
	assert.Equal(t, "DEBUG", got[0]["level"])
	assert.Equal(t, "ERROR", got[1]["level"])
	assert.Equal(t, "timeout", got[1]["error"])
}
