package messages

// Config messages for options and persisted installer state.
const (
	// ConfigReadOptionsFmt formats options file read errors.
	ConfigReadOptionsFmt       = "failed to read options %s: %w"
	ConfigInvalidOptionsFmt    = "invalid options %s: %w"
	ConfigUnknownOptionsKeyFmt = "options %s contain unrecognized keys: %w"
	ConfigEnvOverridesFmt      = "failed to apply environment overrides: %w"
	ConfigExpandPathFmt        = "failed to expand path %q: %w"
	ConfigHomeDirFmt           = "failed to resolve home directory: %w"
	ConfigManifestURLRequired  = "manifest.url is required"
	ConfigStatePathRequired    = "state.path is required"
	ConfigInstallDirRequired   = "install.dir is required"
	ConfigFetchTimeoutInvalid  = "manifest.timeout must be positive"

	ConfigLoadStateFailed   = "Failed to load previous installer config"
	ConfigSaveStateFailed   = "Failed to save current configuration"
	ConfigMarshalStateFmt   = "encode installer state: %w"
	ConfigWriteStateFmt     = "write installer state %s: %w"
	ConfigCreateStateDirFmt = "create state directory %s: %w"
	ConfigOpenLockFmt       = "open lock %s: %w"
	ConfigLockFmt           = "lock %s: %w"
	ConfigLockTimeoutFmt    = "timed out after %s waiting for state lock"
	ConfigStateDiffFmt      = "Installer state changes:\n%s"
)
