package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestInfoCarriesComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.InfoLevel)

	log.Info("Loader", "image loaded", map[string]interface{}{"width": 4})

	entry := decodeLine(t, &buf)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Loader", entry["component"])
	assert.Equal(t, "image loaded", entry["message"])
	assert.EqualValues(t, 4, entry["width"])
}

func TestErrorIncludesCause(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.InfoLevel)

	log.Error("Saver", errors.New("disk full"), nil)

	entry := decodeLine(t, &buf)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "disk full", entry["error"])
}

func TestDisabledLevelsWriteNothing(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.WarnLevel)

	log.Debug("Coordinator", "ignored", map[string]interface{}{"k": "v"})
	log.Info("Coordinator", "ignored", nil)
	assert.Zero(t, buf.Len())

	log.Warning("Coordinator", "kept", nil)
	assert.NotZero(t, buf.Len())
}

func TestNopLogger(t *testing.T) {
	log := NewNop()
	log.Info("x", "y", map[string]interface{}{"a": 1})
	log.Error("x", errors.New("boom"), nil)
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"chatty":  zerolog.InfoLevel,
	}

	for name, want := range cases {
		assert.Equal(t, want, ParseLevel(name), name)
	}
}
