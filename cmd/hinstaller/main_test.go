package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/hinstaller/internal/config"
	"github.com/conn-castle/hinstaller/internal/messages"
	"github.com/conn-castle/hinstaller/internal/testutil"
	"github.com/conn-castle/hinstaller/internal/wizard"
)

type runCall struct {
	local       bool
	optionsPath string
}

func stubRunInstaller(t *testing.T, err error) *[]runCall {
	t.Helper()
	var calls []runCall
	orig := runInstallerFunc
	runInstallerFunc = func(_ context.Context, local bool, optionsPath string, _ io.Writer, _ io.Writer) error {
		calls = append(calls, runCall{local: local, optionsPath: optionsPath})
		return err
	}
	t.Cleanup(func() { runInstallerFunc = orig })
	return &calls
}

func TestExecute_Version(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, execute([]string{"hinstaller", "--version"}, &out, &out))
	assert.Contains(t, out.String(), Version)
}

func TestExecute_Modes(t *testing.T) {
	calls := stubRunInstaller(t, nil)
	var out bytes.Buffer

	require.NoError(t, execute([]string{"hinstaller"}, &out, &out))
	require.NoError(t, execute([]string{"hinstaller", "local"}, &out, &out))
	require.NoError(t, execute([]string{"hinstaller", "REMOTE", "--options", "/etc/hinstaller.toml"}, &out, &out))

	assert.Equal(t, []runCall{
		{local: false},
		{local: true},
		{local: false, optionsPath: "/etc/hinstaller.toml"},
	}, *calls)
}

func TestExecute_InvalidMode(t *testing.T) {
	calls := stubRunInstaller(t, nil)
	var out bytes.Buffer

	err := execute([]string{"hinstaller", "offline"}, &out, &out)

	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid mode "offline"`)
	assert.Empty(t, *calls)
}

func TestExecute_TooManyArgs(t *testing.T) {
	stubRunInstaller(t, nil)
	var out bytes.Buffer

	err := execute([]string{"hinstaller", "local", "remote"}, &out, &out)

	require.Error(t, err)
}

func TestRunMain_Success(t *testing.T) {
	stubRunInstaller(t, nil)
	var out bytes.Buffer
	called := false

	runMain([]string{"hinstaller", "local"}, &out, &out, func(int) { called = true })

	assert.False(t, called)
}

func TestRunMain_Failure(t *testing.T) {
	stubRunInstaller(t, errors.New("installation did not complete"))
	var out bytes.Buffer
	code := 0

	runMain([]string{"hinstaller"}, &out, &out, func(c int) { code = c })

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "installation did not complete")
}

func TestRunMain_SilentExit(t *testing.T) {
	stubRunInstaller(t, &SilentExitError{Code: 3})
	var out bytes.Buffer
	code := 0

	runMain([]string{"hinstaller"}, &out, &out, func(c int) { code = c })

	assert.Equal(t, 3, code)
	assert.Empty(t, out.String())
}

func TestVersionString(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, BuildDate
	t.Cleanup(func() { Version, Commit, BuildDate = origVersion, origCommit, origDate })

	Version, Commit, BuildDate = "v1.0.0", "unknown", "unknown"
	assert.Equal(t, "v1.0.0", versionString())

	Commit, BuildDate = "abc123", "2024-05-01"
	assert.Equal(t, "v1.0.0 (commit abc123, built 2024-05-01)", versionString())
}

func TestMain_CallsExecute(t *testing.T) {
	origArgs := os.Args
	origExecute := executeFunc
	t.Cleanup(func() {
		os.Args = origArgs
		executeFunc = origExecute
	})
	var got []string
	executeFunc = func(args []string, _ io.Writer, _ io.Writer) error {
		got = args
		return nil
	}
	os.Args = []string{"hinstaller", "local"}

	main()

	assert.Equal(t, []string{"hinstaller", "local"}, got)
}

// acceptingUI says yes to every confirmation and keeps every default.
type acceptingUI struct{}

func (acceptingUI) Select(string, []wizard.Choice, *string) error { return nil }

func (acceptingUI) MultiSelect(string, []wizard.Choice, *[]string) error { return nil }

func (acceptingUI) Input(string, *string) error { return nil }

func (acceptingUI) Note(string, string) error { return nil }

func (acceptingUI) Confirm(_ string, value *bool) error {
	*value = true
	return nil
}

type decliningUI struct{ acceptingUI }

func (decliningUI) Confirm(title string, value *bool) error {
	*value = title != messages.WizardTermsPrompt
	return nil
}

func setupInstallerEnv(t *testing.T, ui wizard.UI) (config.Paths, string) {
	t.Helper()
	home := t.TempDir()
	paths := config.DefaultPaths(home)
	artifact := filepath.Join(home, "build", "Client-LOCAL.jar")
	testutil.WriteFile(t, artifact, []byte("jar"))

	optionsPath := filepath.Join(home, "installer.toml")
	options := strings.Join([]string{
		"[install]",
		`local_artifact = "` + filepath.ToSlash(artifact) + `"`,
		"[log]",
		`level = "debug"`,
	}, "\n")
	testutil.WriteFile(t, optionsPath, []byte(options))

	origPaths, origInteractive, origUI := userPathsFunc, isInteractiveFunc, newUIFunc
	userPathsFunc = func() (config.Paths, error) { return paths, nil }
	isInteractiveFunc = func() bool { return true }
	newUIFunc = func(io.Writer) wizard.UI { return ui }
	t.Cleanup(func() {
		userPathsFunc, isInteractiveFunc, newUIFunc = origPaths, origInteractive, origUI
	})
	return paths, optionsPath
}

func TestRunInstaller_LocalEndToEnd(t *testing.T) {
	paths, optionsPath := setupInstallerEnv(t, acceptingUI{})
	var stdout, stderr bytes.Buffer

	err := runInstaller(context.Background(), true, optionsPath, &stdout, &stderr)

	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(paths.InstallDir, "libraries", "cc", "client", "Client", "LOCAL", "Client-LOCAL.jar"))
	require.NoError(t, err)
	assert.Equal(t, "jar", string(data))
	assert.FileExists(t, paths.StatePath)
	assert.FileExists(t, paths.LogPath)
	assert.Contains(t, stdout.String(), messages.InstallSuccess)

	saved := config.NewStore(paths.StatePath, nil).Load()
	assert.True(t, saved.AcceptedTerms)
	assert.Equal(t, paths.InstallDir, saved.InstallDir)
}

func TestRunInstaller_TermsDeclined(t *testing.T) {
	paths, optionsPath := setupInstallerEnv(t, decliningUI{})
	var stdout, stderr bytes.Buffer

	err := runInstaller(context.Background(), true, optionsPath, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), messages.WizardExitWithoutInstall)
	assert.NoFileExists(t, paths.StatePath)
}

func TestRunInstaller_RequiresTerminal(t *testing.T) {
	_, optionsPath := setupInstallerEnv(t, acceptingUI{})
	isInteractiveFunc = func() bool { return false }
	var stdout, stderr bytes.Buffer

	err := runInstaller(context.Background(), true, optionsPath, &stdout, &stderr)

	assert.EqualError(t, err, messages.RootRequiresTerminal)
}

func TestRunInstaller_InvalidOptions(t *testing.T) {
	_, optionsPath := setupInstallerEnv(t, acceptingUI{})
	require.NoError(t, os.WriteFile(optionsPath, []byte("[bogus]\nkey = 1\n"), 0o644))
	var stdout, stderr bytes.Buffer

	err := runInstaller(context.Background(), true, optionsPath, &stdout, &stderr)

	require.Error(t, err)
}

func TestRunInstaller_FailurePrintsLog(t *testing.T) {
	_, optionsPath := setupInstallerEnv(t, acceptingUI{})
	require.NoError(t, os.WriteFile(optionsPath, []byte("[log]\nlevel = \"debug\"\n"), 0o644))
	var stdout, stderr bytes.Buffer

	err := runInstaller(context.Background(), true, optionsPath, &stdout, &stderr)

	require.Error(t, err)
	assert.ErrorIs(t, err, wizard.ErrInstallFailed)
	assert.Contains(t, stderr.String(), messages.RootLogTailHeader)
	assert.Contains(t, stderr.String(), messages.InstallUnexpectedLog)
}
