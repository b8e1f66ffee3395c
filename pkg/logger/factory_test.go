package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/chatgate/pkg/logger"
)

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(
		logger.WithFormat(logger.FormatJSON),
		logger.WithOutput(&buf),
		logger.WithAttr(slog.String("service", "chatgate")),
	)

	log.Info("hello", slog.Int("n", 1))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "chatgate", record["service"])
	assert.EqualValues(t, 1, record["n"])
}

func TestNewLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithLevel(slog.LevelWarn),
	)

	log.Info("dropped")
	log.Warn("kept")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "kept")
}

func TestWithEnvironment(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(
		logger.WithEnvironment("development", "chatgate"),
		logger.WithOutput(&buf),
	)

	log.Debug("visible in development")
	assert.True(t, strings.Contains(buf.String(), "visible in development"))
}

func TestWithFormatPanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() {
		logger.New(logger.WithFormat("xml"))
	})
}

func TestErrorAttr(t *testing.T) {
	attr := logger.Error(errors.New("boom"))
	assert.Equal(t, "error", attr.Key)

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}
