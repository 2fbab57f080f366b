//go:build windows

package config

// withFileLock runs fn; the state file is per-user and Windows runs skip advisory locking.
func withFileLock(_ string, fn func() error) error {
	return fn()
}
