package messages

// Install procedure and pipeline messages.
const (
	InstallStarting              = "Starting installation..."
	InstallSuccess               = "Installation success"
	InstallUnexpectedErrFmt      = "Unexpected error: %s"
	InstallUnexpectedLog         = "Unexpected error occurred during installation"
	InstallFinishedCodeFmt       = "Installation finished with code %d"
	InstallConfigRequired        = "installer config is required"
	InstallVersionRequired       = "no version selected"
	InstallSystemRequired        = "install system is required"
	InstallFetcherRequired       = "install fetcher is required"
	InstallDirRequired           = "install directory is required"
	InstallCreateDirFailedFmt    = "failed to create directory %s: %w"
	InstallWriteFailedFmt        = "failed to write %s: %w"
	InstallReadFailedFmt         = "failed to read %s: %w"
	InstallEncodeProfileFmt      = "encode launcher profile: %w"
	InstallLocalArtifactRequired = "local mode requires a local artifact path"
	InstallCopyFailedFmt         = "copy %s: %w"
	InstallSavingState           = "Saving installer state"
	InstallProcedureRequired     = "install procedure is required"

	InstallStatusPreparing      = "Preparing installation directory..."
	InstallStatusDownloadingFmt = "Downloading %s..."
	InstallStatusCopyingFmt     = "Copying local artifact %s..."
	InstallStatusVerifying      = "Verifying artifact..."
	InstallStatusAddonFmt       = "Installing addon %s..."
	InstallStatusAddonsLocalFmt = "Skipping addons in local mode: %s"
	InstallStatusProfile        = "Writing launcher profile..."
	InstallStatusDone           = "Finishing up..."
	InstallErrorAddonFmt        = "Failed to install addon %s"
	InstallErrorDownload        = "Failed to download the client"
	InstallErrorVerify          = "Downloaded client failed verification"
	InstallErrorProfile         = "Failed to write launcher profile"

	DownloadStatusFmt        = "download %s: unexpected status %s"
	DownloadTooLargeFmt      = "download %s exceeds %d bytes"
	DownloadChecksumMismatch = "checksum mismatch for %s: expected %s, got %s"
	DownloadCreateTempFmt    = "create temp file: %w"
	DownloadFailedFmt        = "download %s: %w"

	DownloadOpenFileFmt  = "open %s: %w"
	DownloadHashFileFmt  = "hash %s: %w"
	DownloadSyncTempFmt  = "sync temp file: %w"
	DownloadCloseTempFmt = "close temp file: %w"
	DownloadMoveFmt      = "move %s into place: %w"
	DownloadURLRequired  = "download url is required"

	AddonUnknown      = "unknown addon"
	AddonLoadErrorFmt = "addon %s: %v"
	AddonResolveFmt   = "resolve addon url %s: %w"
)
