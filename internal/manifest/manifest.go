// Package manifest describes installable client versions and fetches the latest one.
package manifest

import (
	"fmt"

	"github.com/conn-castle/hinstaller/internal/messages"
)

// LocalID identifies the placeholder manifest used by offline runs.
const LocalID = "LOCAL"

// VersionManifest describes one installable client version.
// Values are treated as immutable once fetched.
type VersionManifest struct {
	ID           string `json:"id"`
	Build        int    `json:"build"`
	Artifact     string `json:"artifact"`
	URL          string `json:"url"`
	Checksum     string `json:"checksum,omitempty"`
	ChangelogURL string `json:"changelog_url,omitempty"`
	Size         int64  `json:"size,omitempty"`
	Path         string `json:"path"`
	Tweaker      string `json:"tweaker"`
	Revision     int    `json:"revision"`
}

// Local returns the sentinel manifest for offline installs.
func Local() *VersionManifest {
	return &VersionManifest{
		ID:       LocalID,
		Build:    0,
		Artifact: "cc.client:Client:" + LocalID,
		Path:     "cc/client/Client/" + LocalID + "/Client-" + LocalID + ".jar",
		Tweaker:  "cc.client.launch.ClientTweaker",
		Revision: 1,
	}
}

// IsLocal reports whether m is the offline sentinel.
func (m *VersionManifest) IsLocal() bool {
	return m != nil && m.ID == LocalID
}

// Label renders the identifier and build for prompts and logs.
func (m *VersionManifest) Label() string {
	if m == nil {
		return "none"
	}
	return fmt.Sprintf(messages.ManifestLabelFmt, m.ID, m.Build)
}

// Equal compares identity fields; two manifests for the same build and revision are equal.
func (m *VersionManifest) Equal(other *VersionManifest) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.ID == other.ID && m.Build == other.Build && m.Revision == other.Revision
}

// Clone returns a copy so callers never share a manifest they intend to modify.
func (m *VersionManifest) Clone() *VersionManifest {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}
