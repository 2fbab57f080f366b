package messages

// Manifest fetch messages.
const (
	ManifestCreateRequestErrFmt = "create manifest request: %w"
	ManifestFetchErrFmt         = "fetch manifest: %w"
	ManifestStatusFmt           = "fetch manifest: unexpected status %s"
	ManifestDecodeErrFmt        = "decode manifest: %w"
	ManifestMissingID           = "manifest missing id"
	ManifestMissingURL          = "manifest %s missing url"
	ManifestLoading             = "Loading launcher manifest asynchronously..."
	ManifestLoadFailed          = "Failed to load launcher manifest; continuing with offline defaults"
	ManifestLoadedFmt           = "Loaded manifest %s (build %d)"
	ManifestLabelFmt            = "%s (build %d)"
)
