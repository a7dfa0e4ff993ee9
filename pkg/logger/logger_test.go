package logger

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, "warn")

	l.Debug("debug %d", 1)
	l.Info("info %d", 2)
	l.Warn("warn %d", 3)
	l.Error("error %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "debug 1")
	assert.NotContains(t, out, "info 2")
	assert.Contains(t, out, "[WARN]")
	assert.Contains(t, out, "warn 3")
	assert.Contains(t, out, "[ERROR]")
	assert.Contains(t, out, "error 4")
}

func TestLogger_UnknownLevelLogsEverything(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, "verbose")

	l.Debug("hidden?")
	assert.Contains(t, buf.String(), "hidden?")
}

func TestNewLogger_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bot.log")

	l, err := NewLogger(path, "info", false)
	require.NoError(t, err)
	defer l.Close()

	assert.NotNil(t, l.logFile)
	assert.FileExists(t, path)
}

func TestNewLogger_ConsoleOnly(t *testing.T) {
	l, err := NewLogger("", "debug", false)
	require.NoError(t, err)
	assert.Nil(t, l.logFile)
}

func TestGlobal_SetGlobal(t *testing.T) {
	prev := GetLogger()
	defer SetGlobal(prev)

	var buf bytes.Buffer
	SetGlobal(NewWriterLogger(&buf, "debug"))

	Warn("pair %s dropped", "0xabc")
	assert.Contains(t, buf.String(), "pair 0xabc dropped")

	SetGlobal(nil)
	assert.NotNil(t, GetLogger())
}
