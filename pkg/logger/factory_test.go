package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/uploadkit/pkg/logger"
)

func TestNew_JSONDefaults(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf))

	log.Info("upload complete", slog.String("public_path", "/uploads/a.txt"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "upload complete", record["msg"])
	assert.Equal(t, "/uploads/a.txt", record["public_path"])
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf))

	log.Debug("hidden at default info level")
	assert.Zero(t, buf.Len())

	log = logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelDebug))
	log.Debug("visible now")
	assert.NotZero(t, buf.Len())
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithFormat(logger.FormatText))

	log.Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestNew_StaticAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithAttr(slog.String("service", "uploadkit")),
	)

	log.Info("tagged")
	assert.Contains(t, buf.String(), `"service":"uploadkit"`)
}

func TestNew_DevelopmentDefaults(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithDevelopment("uploadkit"), logger.WithOutput(&buf))

	log.Debug("debug is enabled in development")
	out := buf.String()
	assert.Contains(t, out, "service=uploadkit")
	assert.Contains(t, out, "env=development")
}

func TestWithFormat_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() {
		logger.New(logger.WithFormat("yaml"))
	})
}
