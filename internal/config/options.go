package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/hinstaller/internal/manifest"
	"github.com/conn-castle/hinstaller/internal/messages"
)

// EnvPrefix namespaces the environment overrides.
const EnvPrefix = "HINSTALLER_"

// Duration is a time.Duration read from strings such as "10s".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML and env decoding.
func (d *Duration) UnmarshalText(b []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Options are the installer's runtime settings.
// Values come from defaults, then the options file, then HINSTALLER_* variables.
type Options struct {
	Manifest ManifestOptions `toml:"manifest" envPrefix:"MANIFEST_"`
	State    StateOptions    `toml:"state" envPrefix:"STATE_"`
	Install  InstallOptions  `toml:"install" envPrefix:"INSTALL_"`
	Log      LogOptions      `toml:"log" envPrefix:"LOG_"`
}

// ManifestOptions configures the remote manifest fetch.
type ManifestOptions struct {
	URL     string   `toml:"url" env:"URL"`
	Timeout Duration `toml:"timeout" env:"TIMEOUT"`
}

// StateOptions locates the persisted InstallerConfig.
type StateOptions struct {
	Path string `toml:"path" env:"PATH"`
}

// InstallOptions configures the install procedure.
type InstallOptions struct {
	Dir string `toml:"dir" env:"DIR"`
	// LocalArtifact is the client jar used by local mode.
	LocalArtifact string `toml:"local_artifact" env:"LOCAL_ARTIFACT"`
}

// LogOptions configures logging.
type LogOptions struct {
	Level string `toml:"level" env:"LEVEL"`
	Path  string `toml:"path" env:"PATH"`
}

// DefaultOptions returns the built-in settings for paths.
func DefaultOptions(paths Paths) Options {
	return Options{
		Manifest: ManifestOptions{URL: manifest.DefaultURL, Timeout: Duration(10 * time.Second)},
		State:    StateOptions{Path: paths.StatePath},
		Install:  InstallOptions{Dir: paths.InstallDir},
		Log:      LogOptions{Level: "info", Path: paths.LogPath},
	}
}

// LoadOptions reads path over the defaults and applies environment overrides.
// A missing options file is not an error.
func LoadOptions(path string, paths Paths) (Options, error) {
	return loadOptions(path, paths, nil)
}

// loadOptions is LoadOptions with an explicit environment; nil means the process environment.
func loadOptions(path string, paths Paths, environ map[string]string) (Options, error) {
	opts := DefaultOptions(paths)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := ParseOptions(data, path, &opts); err != nil {
			return Options{}, err
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Options{}, fmt.Errorf(messages.ConfigReadOptionsFmt, path, err)
	}

	if err := env.ParseWithOptions(&opts, env.Options{Prefix: EnvPrefix, Environment: environ}); err != nil {
		return Options{}, fmt.Errorf(messages.ConfigEnvOverridesFmt, err)
	}
	if err := opts.expand(); err != nil {
		return Options{}, err
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// ParseOptions decodes TOML data into opts, rejecting unknown keys.
func ParseOptions(data []byte, source string, opts *Options) error {
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(opts); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf(messages.ConfigUnknownOptionsKeyFmt, source, err)
		}
		return fmt.Errorf(messages.ConfigInvalidOptionsFmt, source, err)
	}
	return nil
}

func (o *Options) expand() error {
	for _, p := range []*string{&o.State.Path, &o.Install.Dir, &o.Install.LocalArtifact, &o.Log.Path} {
		if *p == "" {
			continue
		}
		expanded, err := expandPath(*p)
		if err != nil {
			return err
		}
		*p = expanded
	}
	return nil
}

// Validate checks required settings.
func (o Options) Validate() error {
	if strings.TrimSpace(o.Manifest.URL) == "" {
		return errors.New(messages.ConfigManifestURLRequired)
	}
	if o.Manifest.Timeout <= 0 {
		return errors.New(messages.ConfigFetchTimeoutInvalid)
	}
	if strings.TrimSpace(o.State.Path) == "" {
		return errors.New(messages.ConfigStatePathRequired)
	}
	if strings.TrimSpace(o.Install.Dir) == "" {
		return errors.New(messages.ConfigInstallDirRequired)
	}
	return nil
}
