package terminal

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsInteractive(t *testing.T) {
	// The value depends on how the tests are run; this only checks it does not panic.
	_ = IsInteractive()
}

func TestIsTerminal_Pipe(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer func() { _ = r.Close() }()
	defer func() { _ = w.Close() }()

	assert.False(t, IsTerminal(r))
	assert.False(t, IsTerminal(w))
	assert.False(t, IsTerminal(nil))
}
