package wizard

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/hinstaller/internal/messages"
)

func stubExpand(t *testing.T, fn func(string) (string, error)) {
	t.Helper()
	orig := expandPathFunc
	expandPathFunc = fn
	t.Cleanup(func() { expandPathFunc = orig })
}

func TestSettings_ExpandsHome(t *testing.T) {
	stubExpand(t, func(p string) (string, error) {
		return strings.Replace(p, "~", "/home/player", 1), nil
	})
	h := newHarness()
	h.ui.inputs[messages.WizardInstallDirPrompt] = " ~/games/client/ "
	h.ui.confirms[messages.WizardCreateProfilePrompt] = []bool{false}

	require.NoError(t, h.run(t, true))

	calls := h.procedure.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/home/player/games/client", calls[0].InstallDir)
	assert.False(t, calls[0].CreateProfile)
}

func TestSettings_ExpandFailure(t *testing.T) {
	stubExpand(t, func(string) (string, error) {
		return "", errors.New("no home")
	})
	h := newHarness()

	err := h.run(t, true)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "expand install directory")
	assert.Empty(t, h.procedure.calls())
}

func TestSettings_KeepsPreviousDirectory(t *testing.T) {
	h := newHarness()
	h.store.loaded = h.store.Load()
	h.store.loaded.InstallDir = "/data/client"

	require.NoError(t, h.run(t, true))

	calls := h.procedure.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/data/client", calls[0].InstallDir)
}

func TestAddons_OffersCatalog(t *testing.T) {
	h := newHarness()
	h.ui.multiSelects[messages.WizardAddonsPrompt] = []string{"optifine"}

	require.NoError(t, h.run(t, true))

	choices := h.ui.choices[messages.WizardAddonsPrompt]
	require.NotEmpty(t, choices)
	assert.Equal(t, "optifine", choices[0].Value)
	assert.Equal(t, []string{"optifine"}, h.procedure.calls()[0].Addons)
}
