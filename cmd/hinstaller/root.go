package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/hinstaller/internal/config"
	"github.com/conn-castle/hinstaller/internal/install"
	"github.com/conn-castle/hinstaller/internal/logging"
	"github.com/conn-castle/hinstaller/internal/manifest"
	"github.com/conn-castle/hinstaller/internal/messages"
	"github.com/conn-castle/hinstaller/internal/terminal"
	"github.com/conn-castle/hinstaller/internal/wizard"
)

const flagOptions = "options"

var (
	isInteractiveFunc = terminal.IsInteractive
	userPathsFunc     = config.UserPaths
	newUIFunc         = func(out io.Writer) wizard.UI { return wizard.NewHuhUI(out) }
	runInstallerFunc  = runInstaller
)

func newRootCmd(stdout io.Writer, stderr io.Writer) *cobra.Command {
	var optionsPath string
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			local, err := parseMode(args)
			if err != nil {
				return err
			}
			return runInstallerFunc(cmd.Context(), local, optionsPath, stdout, stderr)
		},
	}
	cmd.Flags().StringVar(&optionsPath, flagOptions, "", messages.RootFlagOptions)
	return cmd
}

// parseMode maps the optional positional argument to local mode. The default is remote.
func parseMode(args []string) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}
	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case messages.ModeLocal:
		return true, nil
	case messages.ModeRemote:
		return false, nil
	default:
		return false, fmt.Errorf(messages.RootInvalidModeFmt, args[0], messages.ModeLocal, messages.ModeRemote)
	}
}

// runInstaller resolves options, wires the collaborators and drives the wizard to completion.
func runInstaller(ctx context.Context, local bool, optionsPath string, stdout io.Writer, stderr io.Writer) error {
	paths, err := userPathsFunc()
	if err != nil {
		return err
	}
	if optionsPath == "" {
		optionsPath = paths.OptionsPath
	}
	opts, err := config.LoadOptions(optionsPath, paths)
	if err != nil {
		return err
	}
	if !isInteractiveFunc() {
		return errors.New(messages.RootRequiresTerminal)
	}

	handle, err := logging.Init(logging.Options{Level: opts.Log.Level, Path: opts.Log.Path, Stderr: stderr})
	if err != nil {
		return err
	}
	defer func() { _ = handle.Close() }()
	logger := handle.Entry()

	fetcher := manifest.NewClient(
		manifest.WithURL(opts.Manifest.URL),
		manifest.WithHTTPClient(&http.Client{Timeout: time.Duration(opts.Manifest.Timeout)}),
	)
	controller := wizard.New(wizard.Options{
		Local:             local,
		DefaultInstallDir: opts.Install.Dir,
		LogPath:           handle.Path,
	}, wizard.Deps{
		UI:        newUIFunc(stderr),
		Surface:   terminal.NewScreen(stdout),
		Store:     config.NewStore(opts.State.Path, logger),
		Fetcher:   fetcher,
		Procedure: install.NewInstaller(opts.Install.LocalArtifact, logger),
		Log:       logger,
	})

	err = controller.Run(ctx)
	switch {
	case err == nil:
		return nil
	case wizard.IsUserExit(err):
		_, _ = color.New(color.FgYellow).Fprintln(stdout, messages.WizardExitWithoutInstall)
		return nil
	default:
		_, _ = fmt.Fprintln(stderr, messages.RootLogTailHeader)
		_, _ = fmt.Fprintln(stderr, handle.Sink.String())
		return fmt.Errorf(messages.RootInstallFailedFmt, err)
	}
}
