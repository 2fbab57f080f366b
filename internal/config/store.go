package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	log "github.com/sirupsen/logrus"

	"github.com/conn-castle/hinstaller/internal/fsutil"
	"github.com/conn-castle/hinstaller/internal/messages"
)

// Store loads and saves InstallerConfig as JSON at a fixed path.
type Store struct {
	path string
	log  log.FieldLogger
}

// NewStore returns a Store for path logging through logger.
func NewStore(path string, logger log.FieldLogger) *Store {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Store{path: path, log: logger}
}

// Path returns the state file location.
func (s *Store) Path() string {
	return s.path
}

// Load returns the persisted config, or defaults when the file is missing or unusable.
// Failures are logged once and never returned.
func (s *Store) Load() *InstallerConfig {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.WithError(err).WithField("path", s.path).Error(messages.ConfigLoadStateFailed)
		}
		return NewInstallerConfig()
	}

	cfg := NewInstallerConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		s.log.WithError(err).WithField("path", s.path).Error(messages.ConfigLoadStateFailed)
		return NewInstallerConfig()
	}
	cfg.PreviousVersion = cfg.Version.Clone()
	return cfg
}

// Save writes the full record, replacing any previous state atomically.
func (s *Store) Save(cfg *InstallerConfig) error {
	if cfg == nil {
		cfg = NewInstallerConfig()
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf(messages.ConfigMarshalStateFmt, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf(messages.ConfigCreateStateDirFmt, dir, err)
	}

	return withFileLock(s.path+".lock", func() error {
		previous, _ := os.ReadFile(s.path)
		if diff := strings.TrimSpace(udiff.Unified("state (previous)", "state (new)", string(previous), string(data))); diff != "" {
			s.log.WithField("path", s.path).Debugf(messages.ConfigStateDiffFmt, diff)
		}
		if err := fsutil.WriteFileAtomic(s.path, data, 0o644); err != nil {
			return fmt.Errorf(messages.ConfigWriteStateFmt, s.path, err)
		}
		return nil
	})
}
