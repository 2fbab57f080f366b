// Package logging configures the installer's structured logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/conn-castle/hinstaller/internal/messages"
)

// ConsolePath routes log output to stderr instead of a file.
const ConsolePath = "console"

// RunField is the log field carrying the per-run identifier.
const RunField = "run"

// Options selects the log level and destination.
type Options struct {
	Level string
	// Path is a log file path, ConsolePath, or empty to keep only the in-memory sink.
	Path string
	// Stderr receives console output; defaults to os.Stderr.
	Stderr io.Writer
}

// Handle owns the configured logger and its sinks for one installer run.
type Handle struct {
	Logger *log.Logger
	Sink   *MemorySink
	RunID  string
	Path   string

	closer io.Closer
}

// Init parses the level, wires the output and attaches the in-memory sink.
func Init(opts Options) (*Handle, error) {
	level := opts.Level
	if level == "" {
		level = log.InfoLevel.String()
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf(messages.LoggingParseLevelFmt, level, err)
	}

	logger := log.New()
	logger.SetLevel(parsed)
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true, DisableColors: true})

	h := &Handle{Logger: logger, RunID: uuid.NewString(), Path: opts.Path}
	switch opts.Path {
	case "":
		logger.SetOutput(io.Discard)
	case ConsolePath:
		stderr := opts.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		logger.SetOutput(stderr)
	default:
		dir := filepath.Dir(opts.Path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf(messages.LoggingCreateDirFmt, dir, err)
		}
		rotating := &lumberjack.Logger{
			Filename:   filepath.ToSlash(opts.Path),
			MaxSize:    5, // MB
			MaxBackups: 3,
			MaxAge:     30, // days
			Compress:   true,
		}
		logger.SetOutput(rotating)
		h.closer = rotating
	}

	h.Sink = NewMemorySink(defaultSinkLines)
	logger.AddHook(h.Sink)
	return h, nil
}

// Entry returns the logger tagged with the run identifier.
func (h *Handle) Entry() *log.Entry {
	return h.Logger.WithField(RunField, h.RunID)
}

// Close releases the rotating file, if any.
func (h *Handle) Close() error {
	if h == nil || h.closer == nil {
		return nil
	}
	return h.closer.Close()
}
