package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initTestLogger(t *testing.T, verbose bool) (*bytes.Buffer, string) {
	t.Helper()

	logPath := filepath.Join(t.TempDir(), "logs", "test.log")
	console := &bytes.Buffer{}

	require.NoError(t, Init(console, logPath, verbose))
	t.Cleanup(Close)

	return console, logPath
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestLoggerInit(t *testing.T) {
	console, logPath := initTestLogger(t, false)

	_, err := os.Stat(logPath)
	require.NoError(t, err, "log file should be created with its directory")

	Info("Test info message")

	assert.Contains(t, console.String(), "Test info message")
	logStr := readLog(t, logPath)
	assert.Contains(t, logStr, "[INFO]")
	assert.Contains(t, logStr, "Test info message")
}

func TestLoggerLevels(t *testing.T) {
	console, logPath := initTestLogger(t, false)

	Debug("Debug message")
	Info("Info message")
	Warn("Warn message")
	Error("Error message")

	logStr := readLog(t, logPath)
	for _, marker := range []string{"[DEBUG]", "[INFO]", "[WARN]", "[ERROR]"} {
		assert.Contains(t, logStr, marker)
	}

	assert.NotContains(t, console.String(), "[DEBUG]", "console should not show DEBUG when verbose=false")
	assert.Contains(t, console.String(), "WARN: Warn message")
	assert.Contains(t, console.String(), "ERROR: Error message")
}

func TestLoggerVerbose(t *testing.T) {
	console, _ := initTestLogger(t, true)

	Debug("Debug message")

	assert.Contains(t, console.String(), "[DEBUG] Debug message")
	assert.True(t, IsVerbose())
}

func TestLoggerWithoutFile(t *testing.T) {
	console := &bytes.Buffer{}
	require.NoError(t, Init(console, "", false))
	t.Cleanup(Close)

	Info("console only")

	assert.Contains(t, console.String(), "console only")
	assert.Empty(t, GetLogFilePath())
	assert.False(t, IsVerbose())
}

func TestLogKeyValues(t *testing.T) {
	console, _ := initTestLogger(t, false)

	Log(LevelWarn, "request failed", "url", "http://localhost/client/api", "attempt", 2, "dangling")

	assert.Contains(t, console.String(), "WARN: request failed url=http://localhost/client/api attempt=2 dangling")
}

func TestLogFailure(t *testing.T) {
	console, logPath := initTestLogger(t, false)

	LogFailure("fetch listApis", errors.New("connection refused"))

	logStr := readLog(t, logPath)
	assert.Contains(t, logStr, "[FAILURE]")
	assert.Contains(t, logStr, "fetch listApis")
	assert.Contains(t, logStr, "connection refused")
	assert.NotContains(t, console.String(), "[FAILURE]", "failure details are file-only")
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.level.String())
	}
}

func TestGetLogFilePath(t *testing.T) {
	_, logPath := initTestLogger(t, false)
	assert.Equal(t, logPath, GetLogFilePath())
}
