package install

import (
	"errors"
	"fmt"
	"net/url"
	"path"

	"github.com/conn-castle/hinstaller/internal/messages"
)

// Addon is an optional component installed alongside the client.
type Addon struct {
	ID          string
	Name        string
	Description string
	// Path is resolved against the selected version's download URL.
	Path string
}

var catalog = []Addon{
	{ID: "optifine", Name: "OptiFine", Description: "Rendering and performance tweaks", Path: "addons/optifine.jar"},
	{ID: "replay", Name: "Replay Mod", Description: "Record and replay sessions", Path: "addons/replay.jar"},
	{ID: "shaders", Name: "Shader Pack", Description: "Default shader pack", Path: "addons/shaders.zip"},
}

// ErrUnknownAddon is wrapped by AddonLoadError for IDs missing from the catalog.
var ErrUnknownAddon = errors.New(messages.AddonUnknown)

// AddonLoadError reports an addon that cannot be installed.
type AddonLoadError struct {
	ID  string
	Err error
}

func (e *AddonLoadError) Error() string {
	return fmt.Sprintf(messages.AddonLoadErrorFmt, e.ID, e.Err)
}

func (e *AddonLoadError) Unwrap() error {
	return e.Err
}

// Addons returns the catalog in display order.
func Addons() []Addon {
	out := make([]Addon, len(catalog))
	copy(out, catalog)
	return out
}

// LookupAddon returns the catalog entry for id.
func LookupAddon(id string) (Addon, error) {
	for _, a := range catalog {
		if a.ID == id {
			return a, nil
		}
	}
	return Addon{}, &AddonLoadError{ID: id, Err: ErrUnknownAddon}
}

// FilterAddons splits ids into catalog entries and load errors, preserving order.
func FilterAddons(ids []string) ([]string, []error) {
	known := make([]string, 0, len(ids))
	var errs []error
	for _, id := range ids {
		if _, err := LookupAddon(id); err != nil {
			errs = append(errs, err)
			continue
		}
		known = append(known, id)
	}
	return known, errs
}

// URL resolves the addon download location against base.
func (a Addon) URL(base string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf(messages.AddonResolveFmt, a.ID, err)
	}
	ref, err := url.Parse(a.Path)
	if err != nil {
		return "", fmt.Errorf(messages.AddonResolveFmt, a.ID, err)
	}
	return baseURL.ResolveReference(ref).String(), nil
}

// FileName is the name the addon is stored under in the addons directory.
func (a Addon) FileName() string {
	return path.Base(a.Path)
}
