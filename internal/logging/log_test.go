package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Console(t *testing.T) {
	var stderr bytes.Buffer
	h, err := Init(Options{Level: "debug", Path: ConsolePath, Stderr: &stderr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })

	h.Entry().Debug("hello")

	assert.Contains(t, stderr.String(), "hello")
	assert.Contains(t, stderr.String(), RunField+"="+h.RunID)
	require.Len(t, h.Sink.Lines(), 1)
	assert.Contains(t, h.Sink.String(), "msg=hello")
}

func TestInit_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "installer.log")
	h, err := Init(Options{Path: path})
	require.NoError(t, err)

	h.Entry().Info("to file")
	h.Entry().Debug("filtered")
	require.NoError(t, h.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
	assert.NotContains(t, string(data), "filtered")
}

func TestInit_InvalidLevel(t *testing.T) {
	_, err := Init(Options{Level: "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `parse log level "loud"`)
}

func TestInit_LogDirectoryBlocked(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := Init(Options{Path: filepath.Join(blocker, "logs", "installer.log")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "create log directory "+filepath.Join(blocker, "logs"))
}

func TestInit_EmptyPathKeepsMemoryOnly(t *testing.T) {
	h, err := Init(Options{})
	require.NoError(t, err)
	assert.NoError(t, h.Close())

	h.Entry().Warn("kept")
	assert.Equal(t, 1, len(h.Sink.Lines()))
}

func TestMemorySink_Bounded(t *testing.T) {
	h, err := Init(Options{})
	require.NoError(t, err)
	h.Sink = NewMemorySink(2)
	h.Logger.ReplaceHooks(make(log.LevelHooks))
	h.Logger.AddHook(h.Sink)

	for _, msg := range []string{"one", "two", "three"} {
		h.Logger.Info(msg)
	}

	lines := h.Sink.Lines()
	require.Len(t, lines, 2)
	assert.True(t, strings.Contains(lines[0], "two"))
	assert.True(t, strings.Contains(lines[1], "three"))
}
