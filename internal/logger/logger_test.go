package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoWritesJSONFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stdout) })

	require.NoError(t, Init("json", "info"))
	buf.Reset()

	Info("login succeeded", map[string]any{"user_id": "1"})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "login succeeded", line["msg"])
	assert.Equal(t, "1", line["user_id"])
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stdout)
		_ = Init("json", "info")
	})

	require.NoError(t, Init("json", "error"))
	buf.Reset()

	Info("hidden", nil)
	Warn("hidden", nil)
	assert.Empty(t, buf.String())

	Error("shown", nil)
	assert.Contains(t, buf.String(), "shown")
}

func TestInitRejectsBadInput(t *testing.T) {
	assert.Error(t, Init("xml", "info"))
	assert.Error(t, Init("json", "loud"))
	require.NoError(t, Init("json", "info"))
}
