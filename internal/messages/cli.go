package messages

// CLI messages for the installer entry point.
const (
	// RootUse is the CLI usage line.
	RootUse = "hinstaller [local|remote]"
	// RootShort is the short description for the root command.
	RootShort = "Client installer wizard"
	RootLong  = `Walk through the client installation: load previous settings, fetch the latest
version manifest, pick options and install.

Pass "local" to install offline from a local artifact; the default is "remote".`
	RootInvalidModeFmt   = "invalid mode %q: expected %q or %q"
	RootFlagOptions      = "Path to the installer options file (TOML)"
	RootRequiresTerminal = "the installer requires an interactive terminal"
	RootInstallFailedFmt = "installation did not complete: %w"
	RootLogTailHeader    = "Installer log:"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	ModeLocal  = "local"
	ModeRemote = "remote"
)
