package config

import (
	"fmt"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/hinstaller/internal/messages"
)

// Paths holds the per-user locations the installer reads and writes.
type Paths struct {
	Home        string
	OptionsPath string
	StatePath   string
	InstallDir  string
	LogPath     string
}

var homeDirFunc = homedir.Dir

// DefaultPaths returns the default locations rooted at home.
func DefaultPaths(home string) Paths {
	return Paths{
		Home:        home,
		OptionsPath: filepath.Join(home, ".hinstaller", "installer.toml"),
		StatePath:   filepath.Join(home, "hinstaller-state.json"),
		InstallDir:  filepath.Join(home, ".hinstaller", "client"),
		LogPath:     filepath.Join(home, ".hinstaller", "installer.log"),
	}
}

// UserPaths resolves DefaultPaths for the current user.
func UserPaths() (Paths, error) {
	home, err := homeDirFunc()
	if err != nil {
		return Paths{}, fmt.Errorf(messages.ConfigHomeDirFmt, err)
	}
	return DefaultPaths(home), nil
}

// expandPath resolves a leading ~ in path.
func expandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf(messages.ConfigExpandPathFmt, path, err)
	}
	return expanded, nil
}
