package testutil

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "state.json")

	WriteFile(t, path, []byte("{}"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestCountEntriesAndHasEntry(t *testing.T) {
	logger, hook := NewLogger()
	logger.Debug("trace")
	logger.Error("first")
	logger.Error("second")
	logger.Warn("careful")

	assert.Equal(t, 2, CountEntries(hook, log.ErrorLevel))
	assert.Equal(t, 1, CountEntries(hook, log.DebugLevel))
	assert.True(t, HasEntry(hook, log.WarnLevel, "careful"))
	assert.False(t, HasEntry(hook, log.ErrorLevel, "careful"))
}
