package messages

// Logging setup errors.
const (
	LoggingParseLevelFmt = "parse log level %q: %w"
	LoggingCreateDirFmt  = "create log directory %s: %w"
)
