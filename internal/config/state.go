package config

import (
	"slices"

	"github.com/conn-castle/hinstaller/internal/manifest"
)

// InstallerConfig holds the user's wizard selections.
// The wizard controller owns the value; steps mutate it through a pointer.
type InstallerConfig struct {
	Version       *manifest.VersionManifest `json:"version,omitempty"`
	Addons        []string                  `json:"addons,omitempty"`
	AcceptedTerms bool                      `json:"accepted_terms"`
	InstallDir    string                    `json:"install_dir,omitempty"`
	CreateProfile bool                      `json:"create_profile"`

	// PreviousVersion is the version carried over from the last run's state file.
	PreviousVersion *manifest.VersionManifest `json:"-"`
}

// NewInstallerConfig returns the defaults used when no prior state exists.
func NewInstallerConfig() *InstallerConfig {
	return &InstallerConfig{CreateProfile: true}
}

// Clone returns a deep copy for hand-off to background work.
func (c *InstallerConfig) Clone() *InstallerConfig {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Version = c.Version.Clone()
	clone.PreviousVersion = c.PreviousVersion.Clone()
	clone.Addons = slices.Clone(c.Addons)
	return &clone
}

// HasAddon reports whether id is selected.
func (c *InstallerConfig) HasAddon(id string) bool {
	return slices.Contains(c.Addons, id)
}
