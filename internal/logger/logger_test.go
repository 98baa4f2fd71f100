package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONIncludesServiceAndStack(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "debug", FormatJSON, "moodline")

	l.Error().Stack().Err(errors.New("boom")).Msg("failed")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "moodline", line["service"])
	assert.Equal(t, "error", line["level"])
	assert.Equal(t, "boom", line["error"])
	assert.NotNil(t, line["stack"])
}

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn", FormatJSON, "")

	l.Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_InvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "loud", FormatJSON, "")

	l.Debug().Msg("hidden")
	assert.Zero(t, buf.Len())
	l.Info().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info", FormatConsole, "")

	l.Info().Str("channel", "SMS").Msg("Check-in received")
	out := buf.String()
	assert.Contains(t, out, "Check-in received")
	assert.Contains(t, out, "channel=")
	assert.NotContains(t, out, `{"level"`)
}
